package services

import (
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"macrotracker/internal/testutil"
)

var (
	_ UserStore        = (*testutil.UserStore)(nil)
	_ SessionStore     = (*testutil.SessionStore)(nil)
	_ ProductStore     = (*testutil.ProductStore)(nil)
	_ MealStore        = (*testutil.MealStore)(nil)
	_ ConsumptionStore = (*testutil.ConsumptionStore)(nil)
	_ AuditStore       = (*testutil.AuditStore)(nil)
)

func newAuthService(t *testing.T) (*AuthService, *testutil.Store) {
	t.Helper()
	store := testutil.New()
	svc := NewAuthService(store.Users, store.Sessions, 24*time.Hour)
	svc.SetPasswordCost(bcrypt.MinCost)
	return svc, store
}

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}
