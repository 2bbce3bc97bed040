package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"macrotracker/internal/repository"
)

func TestUserService_Approve(t *testing.T) {
	ctx := context.Background()
	auth, store := newAuthService(t)
	svc := NewUserService(store.Users, auth)

	pending := store.AddUser("carol", "carol@example.com", "pw", false, false)

	list, err := svc.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	user, err := svc.Approve(ctx, pending.ID)
	require.NoError(t, err)
	assert.True(t, user.IsApproved)

	list, err = svc.ListPending(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, _, err = auth.Login(ctx, "carol@example.com", "pw")
	assert.NoError(t, err, "approved user can log in")

	_, err = svc.Approve(ctx, 12345)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserService_List(t *testing.T) {
	ctx := context.Background()
	auth, store := newAuthService(t)
	svc := NewUserService(store.Users, auth)

	first := store.AddUser("a", "a@example.com", "pw", false, true)
	second := store.AddUser("b", "b@example.com", "pw", false, false)

	users, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, second.ID, users[0].ID, "newest first")
	assert.Equal(t, first.ID, users[1].ID)
}

func TestUserService_Create(t *testing.T) {
	ctx := context.Background()
	auth, store := newAuthService(t)
	svc := NewUserService(store.Users, auth)

	admin, err := svc.Create(ctx, "root", "Root@Example.com", "pw", true, false)
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin)
	assert.True(t, admin.IsApproved, "admins are always approved")
	assert.Equal(t, "root@example.com", admin.Email)

	_, err = svc.Create(ctx, "ROOT", "x@example.com", "pw", false, false)
	assert.ErrorIs(t, err, ErrUserExists)

	_, err = svc.Create(ctx, "", "y@example.com", "pw", false, false)
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestUserService_ResetPassword(t *testing.T) {
	ctx := context.Background()
	auth, store := newAuthService(t)
	svc := NewUserService(store.Users, auth)
	store.AddUser("bob", "bob@example.com", "old", false, true)

	user, err := svc.ResetPassword(ctx, "BOB@example.com", "new")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("new")))

	_, _, err = auth.Login(ctx, "bob@example.com", "old")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = auth.Login(ctx, "bob@example.com", "new")
	assert.NoError(t, err)

	_, err = svc.ResetPassword(ctx, "nobody@example.com", "x")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
