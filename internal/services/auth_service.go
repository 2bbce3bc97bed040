package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"macrotracker/internal/config"
	"macrotracker/internal/logging"
	"macrotracker/internal/metrics"
	"macrotracker/internal/models"
	"macrotracker/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotApproved    = errors.New("user is not approved")
	ErrSessionExpired     = errors.New("session expired")
	ErrMissingFields      = errors.New("all fields are required")
	ErrUserExists         = errors.New("username or email already exists")
)

const (
	SessionDuration  = 24 * time.Hour
	SessionCookieKey = "session_id"
)

type AuthService struct {
	users    UserStore
	sessions SessionStore
	duration time.Duration
	cost     int

	dummyOnce sync.Once
	dummyHash []byte
}

func NewAuthService(users UserStore, sessions SessionStore, duration time.Duration) *AuthService {
	if duration <= 0 {
		duration = SessionDuration
	}
	return &AuthService{
		users:    users,
		sessions: sessions,
		duration: duration,
		cost:     bcrypt.DefaultCost,
	}
}

// SetPasswordCost overrides the bcrypt cost used for new hashes.
func (s *AuthService) SetPasswordCost(cost int) {
	s.cost = cost
}

func (s *AuthService) SessionDuration() time.Duration {
	return s.duration
}

// Signup registers an unapproved, non-admin user.
func (s *AuthService) Signup(ctx context.Context, username, email, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	password = strings.TrimSpace(password)
	if username == "" || email == "" || password == "" {
		return nil, ErrMissingFields
	}

	exists, err := s.users.ExistsByEmailOrUsername(ctx, email, username)
	if err != nil {
		return nil, fmt.Errorf("check existing user: %w", err)
	}
	if exists {
		return nil, ErrUserExists
	}

	hash, err := s.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	metrics.AuthEvents.WithLabelValues(metrics.EventSignup).Inc()
	logging.Auth().WithField("user_id", user.ID).Info("User signed up")
	return user, nil
}

// Login verifies the credentials and opens a session. Unknown emails and bad
// passwords both yield ErrInvalidCredentials; the approval state is only
// revealed once the password has been verified.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.Session, *models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		bcrypt.CompareHashAndPassword(s.dummy(), []byte(password))
		metrics.AuthEvents.WithLabelValues(metrics.EventLoginFailed).Inc()
		return nil, nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, nil, fmt.Errorf("get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		metrics.AuthEvents.WithLabelValues(metrics.EventLoginFailed).Inc()
		return nil, user, ErrInvalidCredentials
	}

	if !user.IsApproved {
		metrics.AuthEvents.WithLabelValues(metrics.EventLoginPending).Inc()
		return nil, user, ErrUserNotApproved
	}

	sessionID, err := generateSessionID()
	if err != nil {
		return nil, nil, err
	}

	session := &models.Session{
		ID:        sessionID,
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(s.duration),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, nil, fmt.Errorf("create session: %w", err)
	}

	metrics.AuthEvents.WithLabelValues(metrics.EventLogin).Inc()
	logging.Auth().WithField("user_id", user.ID).Info("User logged in")
	return session, user, nil
}

func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	metrics.AuthEvents.WithLabelValues(metrics.EventLogout).Inc()
	return s.sessions.Delete(ctx, sessionID)
}

// ValidateSession resolves a session id to its user, sliding the expiry
// forward once less than half of the lifetime remains.
func (s *AuthService) ValidateSession(ctx context.Context, sessionID string) (*models.User, error) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrSessionExpired
	}
	if err != nil {
		return nil, err
	}

	if session.IsExpired() {
		if err := s.sessions.Delete(ctx, sessionID); err != nil {
			logging.Auth().WithError(err).Warn("Failed to delete expired session")
		}
		metrics.AuthEvents.WithLabelValues(metrics.EventSessionExpired).Inc()
		return nil, ErrSessionExpired
	}

	user, err := s.users.GetByID(ctx, session.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrSessionExpired
	}
	if err != nil {
		return nil, err
	}

	if !user.IsApproved {
		return nil, ErrUserNotApproved
	}

	if time.Until(session.ExpiresAt) < s.duration/2 {
		if err := s.sessions.Extend(ctx, sessionID, time.Now().Add(s.duration)); err != nil {
			logging.Auth().WithError(err).Warn("Failed to extend session")
		}
	}

	return user, nil
}

func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (s *AuthService) CleanupExpiredSessions(ctx context.Context) (int64, error) {
	return s.sessions.DeleteExpired(ctx)
}

// EnsureAdmin creates an approved administrator from cfg when no admin
// exists yet. It reports whether a user was created.
func (s *AuthService) EnsureAdmin(ctx context.Context, cfg config.AdminConfig) (bool, error) {
	hasAdmin, err := s.users.HasAdmin(ctx)
	if err != nil {
		return false, fmt.Errorf("check admin: %w", err)
	}
	if hasAdmin {
		return false, nil
	}

	hash, err := s.HashPassword(cfg.Password)
	if err != nil {
		return false, err
	}

	admin := &models.User{
		Username:     cfg.Username,
		Email:        strings.ToLower(strings.TrimSpace(cfg.Email)),
		PasswordHash: hash,
		IsAdmin:      true,
		IsApproved:   true,
	}
	if err := s.users.Create(ctx, admin); err != nil {
		return false, fmt.Errorf("create admin: %w", err)
	}

	metrics.AuthEvents.WithLabelValues(metrics.EventAdminBootstrap).Inc()
	logging.Auth().WithField("email", admin.Email).Warn("Created default admin user, change its password")
	return true, nil
}

func (s *AuthService) dummy() []byte {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), s.cost)
	})
	return s.dummyHash
}

func generateSessionID() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
