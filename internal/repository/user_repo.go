package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"macrotracker/internal/database"
	"macrotracker/internal/models"
)

var userColumns = []string{"id", "username", "email", "password_hash", "is_admin", "is_approved", "created_at"}

type UserRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) get(ctx context.Context, where sq.Sqlizer) (*models.User, error) {
	query, args, err := r.db.SQ.Select(userColumns...).From("users").Where(where).ToSql()
	if err != nil {
		return nil, err
	}
	user := &models.User{}
	if err := r.db.GetContext(ctx, user, query, args...); err != nil {
		return nil, translate(err)
	}
	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.get(ctx, sq.Eq{"id": id})
}

// GetByEmail expects an already normalized (lowercase) address.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.get(ctx, sq.Eq{"email": email})
}

// ExistsByEmailOrUsername reports whether the email or, ignoring case, the
// username is already taken.
func (r *UserRepository) ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error) {
	var exists bool
	err := r.db.QueryRowxContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 OR lower(username) = lower($2))
	`, email, username).Scan(&exists)
	return exists, err
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query, args, err := r.db.SQ.Insert("users").
		Columns("username", "email", "password_hash", "is_admin", "is_approved").
		Values(user.Username, user.Email, user.PasswordHash, user.IsAdmin, user.IsApproved).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return err
	}
	return translate(r.db.QueryRowxContext(ctx, query, args...).Scan(&user.ID, &user.CreatedAt))
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, hash string) error {
	return affectedOne(r.db.ExecContext(ctx, `UPDATE users SET password_hash = $1 WHERE id = $2`, hash, id))
}

func (r *UserRepository) Approve(ctx context.Context, id int64) error {
	return affectedOne(r.db.ExecContext(ctx, `UPDATE users SET is_approved = TRUE WHERE id = $1`, id))
}

func (r *UserRepository) list(ctx context.Context, b sq.SelectBuilder) ([]*models.User, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	var users []*models.User
	if err := r.db.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, err
	}
	return users, nil
}

// List returns every user, newest first.
func (r *UserRepository) List(ctx context.Context) ([]*models.User, error) {
	return r.list(ctx, r.db.SQ.Select(userColumns...).From("users").OrderBy("created_at DESC", "id DESC"))
}

func (r *UserRepository) ListPending(ctx context.Context) ([]*models.User, error) {
	return r.list(ctx, r.db.SQ.Select(userColumns...).From("users").
		Where(sq.Eq{"is_approved": false}).
		OrderBy("created_at", "id"))
}

func (r *UserRepository) HasAdmin(ctx context.Context) (bool, error) {
	var exists bool
	err := r.db.QueryRowxContext(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE is_admin)`).Scan(&exists)
	return exists, err
}
