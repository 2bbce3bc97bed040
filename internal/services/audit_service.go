package services

import (
	"context"
	"encoding/json"

	"macrotracker/internal/logging"
	"macrotracker/internal/models"
)

// Action constants
const (
	ActionSignup            = "signup"
	ActionLogin             = "login"
	ActionLoginFailed       = "login_failed"
	ActionLogout            = "logout"
	ActionUserApprove       = "user_approve"
	ActionProductCreate     = "product_create"
	ActionProductDelete     = "product_delete"
	ActionMealCreate        = "meal_create"
	ActionConsumptionCreate = "consumption_create"
)

// Entity types
const (
	EntityUser        = "user"
	EntityProduct     = "product"
	EntityMeal        = "meal"
	EntityConsumption = "consumption"
)

const AuditPerPage = 50

type AuditService struct {
	repo AuditStore
}

func NewAuditService(repo AuditStore) *AuditService {
	return &AuditService{repo: repo}
}

// Log records an audit entry. Failures are logged and swallowed so that
// auditing never breaks the request that triggered it.
func (s *AuditService) Log(ctx context.Context, userID *int64, action, entityType string, entityID *int64, details interface{}, ip string) {
	var detailsStr string
	if details != nil {
		if str, ok := details.(string); ok {
			detailsStr = str
		} else {
			data, _ := json.Marshal(details)
			detailsStr = string(data)
		}
	}

	entry := &models.AuditLog{
		UserID:     userID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    detailsStr,
		IP:         ip,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		logging.Audit().WithError(err).WithField("action", action).Error("Failed to write audit log")
	}
}

func (s *AuditService) LogUser(ctx context.Context, userID int64, action, entityType string, entityID int64, details interface{}, ip string) {
	s.Log(ctx, &userID, action, entityType, &entityID, details, ip)
}

func (s *AuditService) LogAnonymous(ctx context.Context, action, entityType string, details interface{}, ip string) {
	s.Log(ctx, nil, action, entityType, nil, details, ip)
}

// List returns one page of entries, newest first, and the total count.
func (s *AuditService) List(ctx context.Context, page, perPage int) ([]*models.AuditLog, int, error) {
	if perPage <= 0 {
		perPage = AuditPerPage
	}
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * perPage

	logs, err := s.repo.List(ctx, perPage, offset)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}
