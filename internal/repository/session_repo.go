package repository

import (
	"context"
	"time"

	"macrotracker/internal/database"
	"macrotracker/internal/models"
)

type SessionRepository struct {
	db *database.DB
}

func NewSessionRepository(db *database.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) GetByID(ctx context.Context, id string) (*models.Session, error) {
	session := &models.Session{}
	err := r.db.GetContext(ctx, session, `
		SELECT id, user_id, expires_at, created_at
		FROM sessions WHERE id = $1
	`, id)
	if err != nil {
		return nil, translate(err)
	}
	return session, nil
}

func (r *SessionRepository) Create(ctx context.Context, session *models.Session) error {
	session.CreatedAt = time.Now()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sessions (id, user_id, expires_at, created_at)
		VALUES ($1, $2, $3, $4)
	`, session.ID, session.UserID, session.ExpiresAt, session.CreatedAt)
	return translate(err)
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	return err
}

func (r *SessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at < $1`, time.Now())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *SessionRepository) Extend(ctx context.Context, id string, expiresAt time.Time) error {
	_, err := r.db.ExecContext(ctx, `UPDATE sessions SET expires_at = $1 WHERE id = $2`, expiresAt, id)
	return err
}
