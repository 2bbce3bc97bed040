package repository

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"

	"macrotracker/internal/database"
	"macrotracker/internal/models"
)

var mealColumns = []string{"id", "user_id", "date", "name"}

type MealRepository struct {
	db *database.DB
}

func NewMealRepository(db *database.DB) *MealRepository {
	return &MealRepository{db: db}
}

func (r *MealRepository) Create(ctx context.Context, m *models.Meal) error {
	query, args, err := r.db.SQ.Insert("meals").
		Columns("user_id", "date", "name").
		Values(m.UserID, models.FormatDay(m.Date), m.Name).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return err
	}
	return translate(r.db.QueryRowxContext(ctx, query, args...).Scan(&m.ID))
}

func (r *MealRepository) GetByID(ctx context.Context, userID, id int64) (*models.Meal, error) {
	query, args, err := r.db.SQ.Select(mealColumns...).From("meals").
		Where(sq.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return nil, err
	}
	m := &models.Meal{}
	if err := r.db.GetContext(ctx, m, query, args...); err != nil {
		return nil, translate(err)
	}
	return m, nil
}

func (r *MealRepository) selectMeals(ctx context.Context, b sq.SelectBuilder) ([]*models.Meal, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	var meals []*models.Meal
	if err := r.db.SelectContext(ctx, &meals, query, args...); err != nil {
		return nil, err
	}
	return meals, nil
}

// ListByUser orders meals by date, newest first, then by name.
func (r *MealRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Meal, error) {
	return r.selectMeals(ctx, r.db.SQ.Select(mealColumns...).From("meals").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("date DESC", "name", "id"))
}

func (r *MealRepository) ListByUserOnDate(ctx context.Context, userID int64, day time.Time) ([]*models.Meal, error) {
	return r.selectMeals(ctx, r.db.SQ.Select(mealColumns...).From("meals").
		Where(sq.Eq{"user_id": userID, "date": models.FormatDay(day)}).
		OrderBy("name", "id"))
}

// ListRecentDates returns up to limit distinct meal dates, newest first.
func (r *MealRepository) ListRecentDates(ctx context.Context, userID int64, limit int) ([]time.Time, error) {
	query, args, err := r.db.SQ.Select("date").Distinct().From("meals").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("date DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, err
	}
	var dates []time.Time
	if err := r.db.SelectContext(ctx, &dates, query, args...); err != nil {
		return nil, err
	}
	for i, d := range dates {
		dates[i] = models.Day(d)
	}
	return dates, nil
}
