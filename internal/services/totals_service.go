package services

import (
	"context"
	"fmt"
	"time"

	"macrotracker/internal/models"
)

// HistoryLimit is the number of distinct meal dates shown in the history.
const HistoryLimit = 14

type TotalsService struct {
	consumptions ConsumptionStore
	meals        MealStore
}

func NewTotalsService(consumptions ConsumptionStore, meals MealStore) *TotalsService {
	return &TotalsService{consumptions: consumptions, meals: meals}
}

// ForDate sums the nutrients of every consumption whose meal is dated day.
// A day without consumptions yields zero totals.
func (s *TotalsService) ForDate(ctx context.Context, userID int64, day time.Time) (models.Totals, error) {
	items, err := s.consumptions.ListDetailsOnDate(ctx, userID, models.Day(day))
	if err != nil {
		return models.Totals{}, fmt.Errorf("list consumptions on %s: %w", models.FormatDay(day), err)
	}
	return models.SumTotals(items), nil
}

// History returns the totals of the most recent distinct meal dates, newest
// first. A limit outside 1..HistoryLimit means HistoryLimit.
func (s *TotalsService) History(ctx context.Context, userID int64, limit int) ([]models.DayTotals, error) {
	if limit <= 0 || limit > HistoryLimit {
		limit = HistoryLimit
	}

	dates, err := s.meals.ListRecentDates(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list meal dates: %w", err)
	}

	history := make([]models.DayTotals, 0, len(dates))
	for _, d := range dates {
		totals, err := s.ForDate(ctx, userID, d)
		if err != nil {
			return nil, err
		}
		history = append(history, models.DayTotals{Date: d, Totals: totals})
	}
	return history, nil
}
