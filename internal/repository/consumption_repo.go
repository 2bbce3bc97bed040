package repository

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"

	"macrotracker/internal/database"
	"macrotracker/internal/models"
)

type ConsumptionRepository struct {
	db *database.DB
}

func NewConsumptionRepository(db *database.DB) *ConsumptionRepository {
	return &ConsumptionRepository{db: db}
}

func (r *ConsumptionRepository) Create(ctx context.Context, c *models.Consumption) error {
	query, args, err := r.db.SQ.Insert("consumptions").
		Columns("user_id", "meal_id", "product_id", "quantity_g").
		Values(c.UserID, c.MealID, c.ProductID, c.QuantityG).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return err
	}
	return translate(r.db.QueryRowxContext(ctx, query, args...).Scan(&c.ID, &c.CreatedAt))
}

// ListDetailsOnDate joins the user's consumptions with their product and meal
// for every meal dated day. Meals of other users never match, even if a row
// were inconsistent.
func (r *ConsumptionRepository) ListDetailsOnDate(ctx context.Context, userID int64, day time.Time) ([]*models.ConsumptionDetail, error) {
	query, args, err := r.db.SQ.Select(
		"c.id", "c.user_id", "c.meal_id", "c.product_id", "c.quantity_g", "c.created_at",
		"p.calories_per_100g", "p.protein_g_per_100g", "p.carbs_g_per_100g", "p.fat_g_per_100g",
		"p.name AS product_name", "m.name AS meal_name", "m.date AS meal_date",
	).
		From("consumptions c").
		Join("meals m ON m.id = c.meal_id AND m.user_id = c.user_id").
		Join("products p ON p.id = c.product_id").
		Where(sq.Eq{"c.user_id": userID, "m.date": models.FormatDay(day)}).
		OrderBy("m.name", "c.created_at", "c.id").
		ToSql()
	if err != nil {
		return nil, err
	}
	var items []*models.ConsumptionDetail
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *ConsumptionRepository) CountByProduct(ctx context.Context, userID, productID int64) (int, error) {
	query, args, err := r.db.SQ.Select("COUNT(*)").From("consumptions").
		Where(sq.Eq{"user_id": userID, "product_id": productID}).
		ToSql()
	if err != nil {
		return 0, err
	}
	var n int
	err = r.db.GetContext(ctx, &n, query, args...)
	return n, err
}
