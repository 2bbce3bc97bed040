package repository

import (
	"context"

	"macrotracker/internal/database"
	"macrotracker/internal/models"
)

type AuditRepository struct {
	db *database.DB
}

func NewAuditRepository(db *database.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Create(ctx context.Context, log *models.AuditLog) error {
	return r.db.QueryRowxContext(ctx, `
		INSERT INTO audit_log (user_id, action, entity_type, entity_id, details, ip)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`,
		log.UserID, log.Action, log.EntityType, log.EntityID, log.Details, log.IP,
	).Scan(&log.ID, &log.CreatedAt)
}

func (r *AuditRepository) List(ctx context.Context, limit, offset int) ([]*models.AuditLog, error) {
	var logs []*models.AuditLog
	err := r.db.SelectContext(ctx, &logs, `
		SELECT a.id, a.user_id, u.username, a.action, a.entity_type, a.entity_id, a.details, a.ip, a.created_at
		FROM audit_log a
		LEFT JOIN users u ON u.id = a.user_id
		ORDER BY a.created_at DESC, a.id DESC
		LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	return logs, err
}

func (r *AuditRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM audit_log`)
	return count, err
}
