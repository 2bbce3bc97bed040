package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"macrotracker/internal/models"
	"macrotracker/internal/repository"
)

const MaxProductNameLength = 120

var (
	ErrNameRequired = errors.New("name is required")
	ErrNameTooLong  = errors.New("name is too long")
	ErrProductInUse = errors.New("product is used by logged consumptions")
)

type ProductService struct {
	products     ProductStore
	consumptions ConsumptionStore
}

func NewProductService(products ProductStore, consumptions ConsumptionStore) *ProductService {
	return &ProductService{products: products, consumptions: consumptions}
}

// Create stores a product for userID. Nutrient values are taken as given.
func (s *ProductService) Create(ctx context.Context, userID int64, name string, per models.Per100g) (*models.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if utf8.RuneCountInString(name) > MaxProductNameLength {
		return nil, ErrNameTooLong
	}

	p := &models.Product{
		UserID:  userID,
		Name:    name,
		Per100g: per,
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return p, nil
}

func (s *ProductService) Get(ctx context.Context, userID, id int64) (*models.Product, error) {
	return s.products.GetByID(ctx, userID, id)
}

func (s *ProductService) List(ctx context.Context, userID int64) ([]*models.Product, error) {
	return s.products.ListByUser(ctx, userID)
}

// Delete removes an owned product. Products still referenced by consumptions
// are kept and ErrProductInUse is returned.
func (s *ProductService) Delete(ctx context.Context, userID, id int64) (*models.Product, error) {
	p, err := s.products.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	n, err := s.consumptions.CountByProduct(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("count consumptions: %w", err)
	}
	if n > 0 {
		return nil, ErrProductInUse
	}

	if err := s.products.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, repository.ErrForeignKey) {
			return nil, ErrProductInUse
		}
		return nil, err
	}
	return p, nil
}
