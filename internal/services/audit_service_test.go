package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"macrotracker/internal/testutil"
)

func TestAuditService_LogAndList(t *testing.T) {
	ctx := context.Background()
	store := testutil.New()
	svc := NewAuditService(store.Audit)
	user := store.AddUser("alice", "alice@example.com", "pw", false, true)

	svc.LogAnonymous(ctx, ActionLoginFailed, EntityUser, map[string]string{"email": "x@example.com"}, "10.0.0.1")
	svc.LogUser(ctx, user.ID, ActionLogin, EntityUser, user.ID, nil, "10.0.0.2")
	svc.LogUser(ctx, user.ID, ActionProductCreate, EntityProduct, 7, "Oats", "10.0.0.2")

	assert.Equal(t, []string{ActionLoginFailed, ActionLogin, ActionProductCreate}, store.AuditActions())

	logs, total, err := svc.List(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, logs, 2)
	assert.Equal(t, ActionProductCreate, logs[0].Action)
	assert.Equal(t, "Oats", logs[0].Details)
	assert.Equal(t, "alice", logs[0].Actor())

	logs, _, err = svc.List(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, `{"email":"x@example.com"}`, logs[0].Details)
	assert.Equal(t, "-", logs[0].Actor())

	logs, _, err = svc.List(ctx, 0, 0)
	require.NoError(t, err)
	assert.Len(t, logs, 3)
}
