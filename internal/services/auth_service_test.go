package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"macrotracker/internal/config"
	"macrotracker/internal/models"
)

func TestAuthService_HashPassword(t *testing.T) {
	svc := &AuthService{cost: bcrypt.MinCost}

	password := "testpassword123"
	hash, err := svc.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	if hash == "" {
		t.Error("HashPassword() returned empty string")
	}

	if hash == password {
		t.Error("HashPassword() returned plain password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		t.Errorf("Hash verification failed: %v", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte("wrongpassword")); err == nil {
		t.Error("Hash verification should fail for wrong password")
	}
}

func TestGenerateSessionID(t *testing.T) {
	id1, err := generateSessionID()
	if err != nil {
		t.Fatalf("generateSessionID() error = %v", err)
	}

	if len(id1) != 64 { // 32 bytes = 64 hex chars
		t.Errorf("Session ID length = %d, want 64", len(id1))
	}

	id2, err := generateSessionID()
	if err != nil {
		t.Fatalf("generateSessionID() error = %v", err)
	}

	if id1 == id2 {
		t.Error("Two generated session IDs should be different")
	}
}

func TestSessionConstants(t *testing.T) {
	if SessionCookieKey != "session_id" {
		t.Errorf("SessionCookieKey = %q, want %q", SessionCookieKey, "session_id")
	}
	if SessionDuration != 24*time.Hour {
		t.Errorf("SessionDuration = %s, want 24h", SessionDuration)
	}
	if got := NewAuthService(nil, nil, 0).SessionDuration(); got != SessionDuration {
		t.Errorf("zero duration should fall back to %s, got %s", SessionDuration, got)
	}
}

func TestAuthService_Signup(t *testing.T) {
	ctx := context.Background()

	t.Run("creates unapproved user", func(t *testing.T) {
		svc, store := newAuthService(t)

		user, err := svc.Signup(ctx, "  alice ", " Alice@Example.COM ", " secret ")
		require.NoError(t, err)

		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, "alice@example.com", user.Email)
		assert.False(t, user.IsApproved)
		assert.False(t, user.IsAdmin)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret")))
		assert.Equal(t, 1, store.UserCount())
	})

	t.Run("blank fields", func(t *testing.T) {
		svc, store := newAuthService(t)
		for _, in := range [][3]string{
			{"", "a@example.com", "pw"},
			{"a", "  ", "pw"},
			{"a", "a@example.com", "   "},
		} {
			_, err := svc.Signup(ctx, in[0], in[1], in[2])
			assert.ErrorIs(t, err, ErrMissingFields)
		}
		assert.Equal(t, 0, store.UserCount())
	})

	t.Run("duplicate email after normalization", func(t *testing.T) {
		svc, store := newAuthService(t)
		_, err := svc.Signup(ctx, "alice", "alice@example.com", "pw")
		require.NoError(t, err)

		_, err = svc.Signup(ctx, "other", "ALICE@example.com ", "pw")
		assert.ErrorIs(t, err, ErrUserExists)
		assert.Equal(t, 1, store.UserCount())
	})

	t.Run("duplicate username ignoring case", func(t *testing.T) {
		svc, store := newAuthService(t)
		_, err := svc.Signup(ctx, "alice", "alice@example.com", "pw")
		require.NoError(t, err)

		_, err = svc.Signup(ctx, "ALICE", "new@example.com", "pw")
		assert.ErrorIs(t, err, ErrUserExists)
		assert.Equal(t, 1, store.UserCount())
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	svc, store := newAuthService(t)
	approved := store.AddUser("bob", "bob@example.com", "hunter2", false, true)
	store.AddUser("carol", "carol@example.com", "hunter2", false, false)

	t.Run("success", func(t *testing.T) {
		session, user, err := svc.Login(ctx, " BOB@example.com", "hunter2")
		require.NoError(t, err)
		assert.Equal(t, approved.ID, user.ID)
		assert.Len(t, session.ID, 64)
		assert.WithinDuration(t, time.Now().Add(24*time.Hour), session.ExpiresAt, time.Minute)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "nobody@example.com", "hunter2")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "bob@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("pending user cannot obtain a session", func(t *testing.T) {
		before := store.SessionCount()
		session, _, err := svc.Login(ctx, "carol@example.com", "hunter2")
		assert.ErrorIs(t, err, ErrUserNotApproved)
		assert.Nil(t, session)
		assert.Equal(t, before, store.SessionCount())
	})

	t.Run("pending user with wrong password", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "carol@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestAuthService_ValidateSession(t *testing.T) {
	ctx := context.Background()
	svc, store := newAuthService(t)
	user := store.AddUser("bob", "bob@example.com", "pw", false, true)

	t.Run("valid", func(t *testing.T) {
		session, _, err := svc.Login(ctx, "bob@example.com", "pw")
		require.NoError(t, err)

		got, err := svc.ValidateSession(ctx, session.ID)
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := svc.ValidateSession(ctx, "missing")
		assert.ErrorIs(t, err, ErrSessionExpired)
	})

	t.Run("expired sessions are removed", func(t *testing.T) {
		require.NoError(t, store.Sessions.Create(ctx, &models.Session{
			ID: "old", UserID: user.ID, ExpiresAt: time.Now().Add(-time.Minute),
		}))

		_, err := svc.ValidateSession(ctx, "old")
		assert.ErrorIs(t, err, ErrSessionExpired)

		_, err = store.Sessions.GetByID(ctx, "old")
		assert.Error(t, err)
	})

	t.Run("extended when less than half remains", func(t *testing.T) {
		require.NoError(t, store.Sessions.Create(ctx, &models.Session{
			ID: "aging", UserID: user.ID, ExpiresAt: time.Now().Add(time.Hour),
		}))

		_, err := svc.ValidateSession(ctx, "aging")
		require.NoError(t, err)

		sess, err := store.Sessions.GetByID(ctx, "aging")
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().Add(24*time.Hour), sess.ExpiresAt, time.Minute)
	})

	t.Run("logout removes the session", func(t *testing.T) {
		session, _, err := svc.Login(ctx, "bob@example.com", "pw")
		require.NoError(t, err)
		require.NoError(t, svc.Logout(ctx, session.ID))

		_, err = svc.ValidateSession(ctx, session.ID)
		assert.ErrorIs(t, err, ErrSessionExpired)
	})
}

func TestAuthService_CleanupExpiredSessions(t *testing.T) {
	ctx := context.Background()
	svc, store := newAuthService(t)
	user := store.AddUser("bob", "bob@example.com", "pw", false, true)

	require.NoError(t, store.Sessions.Create(ctx, &models.Session{ID: "a", UserID: user.ID, ExpiresAt: time.Now().Add(-time.Hour)}))
	require.NoError(t, store.Sessions.Create(ctx, &models.Session{ID: "b", UserID: user.ID, ExpiresAt: time.Now().Add(time.Hour)}))

	n, err := svc.CleanupExpiredSessions(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, 1, store.SessionCount())
}

func TestAuthService_EnsureAdmin(t *testing.T) {
	ctx := context.Background()
	svc, store := newAuthService(t)
	cfg := config.AdminConfig{Email: "Admin@Example.com", Username: "admin", Password: "admin123"}

	created, err := svc.EnsureAdmin(ctx, cfg)
	require.NoError(t, err)
	assert.True(t, created)

	admin, err := store.Users.GetByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin)
	assert.True(t, admin.IsApproved)

	created, err = svc.EnsureAdmin(ctx, cfg)
	require.NoError(t, err)
	assert.False(t, created, "second run must not create another admin")
	assert.Equal(t, 1, store.UserCount())

	_, _, err = svc.Login(ctx, "admin@example.com", "admin123")
	assert.NoError(t, err)
}
