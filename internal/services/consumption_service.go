package services

import (
	"context"
	"fmt"
	"time"

	"macrotracker/internal/metrics"
	"macrotracker/internal/models"
)

type ConsumptionService struct {
	consumptions ConsumptionStore
	meals        MealStore
	products     ProductStore
}

func NewConsumptionService(consumptions ConsumptionStore, meals MealStore, products ProductStore) *ConsumptionService {
	return &ConsumptionService{
		consumptions: consumptions,
		meals:        meals,
		products:     products,
	}
}

// Create logs quantity grams of a product into a meal. Both must belong to
// userID, otherwise repository.ErrNotFound is returned.
func (s *ConsumptionService) Create(ctx context.Context, userID, mealID, productID int64, quantity float64) (*models.Consumption, error) {
	if _, err := s.meals.GetByID(ctx, userID, mealID); err != nil {
		return nil, err
	}
	if _, err := s.products.GetByID(ctx, userID, productID); err != nil {
		return nil, err
	}

	c := &models.Consumption{
		UserID:    userID,
		MealID:    mealID,
		ProductID: productID,
		QuantityG: quantity,
	}
	if err := s.consumptions.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create consumption: %w", err)
	}

	metrics.ConsumptionsLogged.Inc()
	return c, nil
}

// FormOptions returns the meals and products a consumption can reference.
func (s *ConsumptionService) FormOptions(ctx context.Context, userID int64) ([]*models.Meal, []*models.Product, error) {
	meals, err := s.meals.ListByUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	products, err := s.products.ListByUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return meals, products, nil
}

func (s *ConsumptionService) ListOnDate(ctx context.Context, userID int64, day time.Time) ([]*models.ConsumptionDetail, error) {
	return s.consumptions.ListDetailsOnDate(ctx, userID, models.Day(day))
}
