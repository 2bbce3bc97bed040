package services

import (
	"context"
	"fmt"
	"strings"

	"macrotracker/internal/models"
)

type UserService struct {
	users UserStore
	auth  *AuthService
}

func NewUserService(users UserStore, auth *AuthService) *UserService {
	return &UserService{users: users, auth: auth}
}

func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	return s.users.List(ctx)
}

// ListPending returns unapproved users, oldest signup first.
func (s *UserService) ListPending(ctx context.Context) ([]*models.User, error) {
	return s.users.ListPending(ctx)
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

// Approve marks the user approved and returns it. Approving twice is a no-op.
func (s *UserService) Approve(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.IsApproved {
		return user, nil
	}
	if err := s.users.Approve(ctx, id); err != nil {
		return nil, fmt.Errorf("approve user %d: %w", id, err)
	}
	user.IsApproved = true
	return user, nil
}

// Create adds a user outside the signup flow, optionally as an approved
// administrator.
func (s *UserService) Create(ctx context.Context, username, email, password string, admin, approved bool) (*models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	if username == "" || email == "" || password == "" {
		return nil, ErrMissingFields
	}

	exists, err := s.users.ExistsByEmailOrUsername(ctx, email, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUserExists
	}

	hash, err := s.auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		IsAdmin:      admin,
		IsApproved:   approved || admin,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) ResetPassword(ctx context.Context, email, password string) (*models.User, error) {
	if password == "" {
		return nil, ErrMissingFields
	}
	user, err := s.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	hash, err := s.auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return nil, err
	}
	user.PasswordHash = hash
	return user, nil
}
