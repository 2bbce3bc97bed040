package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"macrotracker/internal/models"
)

const (
	DefaultMealName   = "Meal"
	MaxMealNameLength = 80
)

type MealService struct {
	meals MealStore
}

func NewMealService(meals MealStore) *MealService {
	return &MealService{meals: meals}
}

// Create stores a meal. A zero date means today and a blank name falls back
// to DefaultMealName.
func (s *MealService) Create(ctx context.Context, userID int64, date time.Time, name string) (*models.Meal, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultMealName
	}
	if r := []rune(name); len(r) > MaxMealNameLength {
		name = string(r[:MaxMealNameLength])
	}
	if date.IsZero() {
		date = models.Today()
	}

	m := &models.Meal{
		UserID: userID,
		Date:   models.Day(date),
		Name:   name,
	}
	if err := s.meals.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("create meal: %w", err)
	}
	return m, nil
}

func (s *MealService) Get(ctx context.Context, userID, id int64) (*models.Meal, error) {
	return s.meals.GetByID(ctx, userID, id)
}

func (s *MealService) List(ctx context.Context, userID int64) ([]*models.Meal, error) {
	return s.meals.ListByUser(ctx, userID)
}

func (s *MealService) ListOnDate(ctx context.Context, userID int64, day time.Time) ([]*models.Meal, error) {
	return s.meals.ListByUserOnDate(ctx, userID, models.Day(day))
}
