package app

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/solestride/shoe-shop/internal/catalog/domain"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

type Service struct {
	repo ProductRepo
}

func NewService(repo ProductRepo) *Service {
	return &Service{
		repo: repo,
	}
}

func (s *Service) CreateProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	p.Name = strings.TrimSpace(p.Name)
	p.Category = strings.TrimSpace(p.Category)

	if p.Name == "" || p.Category == "" {
		return domain.Product{}, ErrInvalidInput
	}
	if p.Price.IsNegative() || p.Price.IsZero() {
		return domain.Product{}, ErrInvalidInput
	}
	if p.StockQuantity < 0 {
		return domain.Product{}, ErrInvalidInput
	}

	p.InStock = p.StockQuantity > 0
	return s.repo.Create(ctx, p)
}

func (s *Service) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Product{}, ErrInvalidInput
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListFeatured(ctx context.Context) ([]domain.Product, error) {
	return s.repo.ListFeatured(ctx)
}

func (s *Service) ListByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByCategory(ctx, category)
}

func (s *Service) UpdateProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	if strings.TrimSpace(p.ID) == "" {
		return domain.Product{}, ErrInvalidInput
	}
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" || p.Price.IsNegative() || p.Price.IsZero() || p.StockQuantity < 0 {
		return domain.Product{}, ErrInvalidInput
	}

	p.InStock = p.StockQuantity > 0
	return s.repo.Update(ctx, p)
}

func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}

// SetStock replaces the stock quantity outright. There is no guard against
// a concurrent cart validating against the old figure; stock writes are
// last-write-wins.
func (s *Service) SetStock(ctx context.Context, id string, quantity int32) (domain.Product, error) {
	if strings.TrimSpace(id) == "" || quantity < 0 {
		return domain.Product{}, ErrInvalidInput
	}
	return s.repo.SetStock(ctx, id, quantity)
}

// Rate folds a new review score into the product's rating aggregate.
func Rate(p domain.Product, score decimal.Decimal) domain.Product {
	total := p.Rating.Mul(decimal.NewFromInt32(p.ReviewCount)).Add(score)
	p.ReviewCount++
	p.Rating = total.DivRound(decimal.NewFromInt32(p.ReviewCount), 2)
	return p
}
