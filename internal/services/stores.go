package services

import (
	"context"
	"time"

	"macrotracker/internal/models"
	"macrotracker/internal/repository"
)

// The store interfaces are satisfied by the repository package and by the
// in-memory store used in tests. Every lookup of an owned row takes the
// owner id and reports repository.ErrNotFound for rows of other users.

type UserStore interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error)
	Create(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, id int64, hash string) error
	Approve(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*models.User, error)
	ListPending(ctx context.Context) ([]*models.User, error)
	HasAdmin(ctx context.Context) (bool, error)
}

type SessionStore interface {
	GetByID(ctx context.Context, id string) (*models.Session, error)
	Create(ctx context.Context, session *models.Session) error
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context) (int64, error)
	Extend(ctx context.Context, id string, expiresAt time.Time) error
}

type ProductStore interface {
	Create(ctx context.Context, p *models.Product) error
	GetByID(ctx context.Context, userID, id int64) (*models.Product, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.Product, error)
	Delete(ctx context.Context, userID, id int64) error
}

type MealStore interface {
	Create(ctx context.Context, m *models.Meal) error
	GetByID(ctx context.Context, userID, id int64) (*models.Meal, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.Meal, error)
	ListByUserOnDate(ctx context.Context, userID int64, day time.Time) ([]*models.Meal, error)
	ListRecentDates(ctx context.Context, userID int64, limit int) ([]time.Time, error)
}

type ConsumptionStore interface {
	Create(ctx context.Context, c *models.Consumption) error
	ListDetailsOnDate(ctx context.Context, userID int64, day time.Time) ([]*models.ConsumptionDetail, error)
	CountByProduct(ctx context.Context, userID, productID int64) (int, error)
}

type AuditStore interface {
	Create(ctx context.Context, log *models.AuditLog) error
	List(ctx context.Context, limit, offset int) ([]*models.AuditLog, error)
	Count(ctx context.Context) (int, error)
}

var (
	_ UserStore        = (*repository.UserRepository)(nil)
	_ SessionStore     = (*repository.SessionRepository)(nil)
	_ ProductStore     = (*repository.ProductRepository)(nil)
	_ MealStore        = (*repository.MealRepository)(nil)
	_ ConsumptionStore = (*repository.ConsumptionRepository)(nil)
	_ AuditStore       = (*repository.AuditRepository)(nil)
)
