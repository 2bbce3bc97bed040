package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"macrotracker/internal/database"
	"macrotracker/internal/models"
)

var productColumns = []string{
	"id", "user_id", "name",
	"calories_per_100g", "protein_g_per_100g", "carbs_g_per_100g", "fat_g_per_100g",
}

type ProductRepository struct {
	db *database.DB
}

func NewProductRepository(db *database.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, p *models.Product) error {
	query, args, err := r.db.SQ.Insert("products").
		Columns("user_id", "name", "calories_per_100g", "protein_g_per_100g", "carbs_g_per_100g", "fat_g_per_100g").
		Values(p.UserID, p.Name, p.CaloriesPer100g, p.ProteinPer100g, p.CarbsPer100g, p.FatPer100g).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return err
	}
	return translate(r.db.QueryRowxContext(ctx, query, args...).Scan(&p.ID))
}

// GetByID returns ErrNotFound both for missing ids and for products owned by
// someone else.
func (r *ProductRepository) GetByID(ctx context.Context, userID, id int64) (*models.Product, error) {
	query, args, err := r.db.SQ.Select(productColumns...).From("products").
		Where(sq.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return nil, err
	}
	p := &models.Product{}
	if err := r.db.GetContext(ctx, p, query, args...); err != nil {
		return nil, translate(err)
	}
	return p, nil
}

func (r *ProductRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Product, error) {
	query, args, err := r.db.SQ.Select(productColumns...).From("products").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("name", "id").
		ToSql()
	if err != nil {
		return nil, err
	}
	var products []*models.Product
	if err := r.db.SelectContext(ctx, &products, query, args...); err != nil {
		return nil, err
	}
	return products, nil
}

// Delete fails with ErrForeignKey while consumptions still reference the
// product.
func (r *ProductRepository) Delete(ctx context.Context, userID, id int64) error {
	query, args, err := r.db.SQ.Delete("products").
		Where(sq.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return err
	}
	return affectedOne(r.db.ExecContext(ctx, query, args...))
}
