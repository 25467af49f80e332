package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/solestride/shoe-shop/internal/order/domain"
)

var (
	ErrNotFound      = errors.New("order not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidStatus = errors.New("invalid order status")
)

type Service struct {
	repo OrderRepo
}

func NewService(repo OrderRepo) *Service {
	return &Service{repo: repo}
}

// CreateOrder persists an immutable snapshot. Monetary fields are derived
// here from the item snapshots so a caller cannot store an inconsistent
// total.
func (s *Service) CreateOrder(ctx context.Context, order domain.Order) (domain.Order, error) {
	if strings.TrimSpace(order.CustomerName) == "" || strings.TrimSpace(order.CustomerEmail) == "" {
		return domain.Order{}, fmt.Errorf("%w: customer contact is required", ErrInvalidInput)
	}
	if strings.TrimSpace(order.ShippingAddress) == "" || strings.TrimSpace(order.PaymentMethod) == "" {
		return domain.Order{}, fmt.Errorf("%w: shipping address and payment method are required", ErrInvalidInput)
	}
	if len(order.Items) == 0 {
		return domain.Order{}, fmt.Errorf("%w: order has no items", ErrInvalidInput)
	}
	if order.ShippingCost.IsNegative() || order.Tax.IsNegative() {
		return domain.Order{}, fmt.Errorf("%w: shipping and tax cannot be negative", ErrInvalidInput)
	}

	subtotal := decimal.Zero
	for i, it := range order.Items {
		if it.Quantity <= 0 {
			return domain.Order{}, fmt.Errorf("%w: item %d quantity must be positive", ErrInvalidInput, i)
		}
		if it.Price.IsNegative() {
			return domain.Order{}, fmt.Errorf("%w: item %d price cannot be negative", ErrInvalidInput, i)
		}
		subtotal = subtotal.Add(it.LineTotal())
	}

	order.Subtotal = subtotal
	order.TotalAmount = subtotal.Add(order.ShippingCost).Add(order.Tax)
	if order.Status == 0 {
		order.Status = domain.StatusProcessing
	}
	if order.OrderDate.IsZero() {
		order.OrderDate = time.Now().UTC()
	}

	return s.repo.CreateOrderTx(ctx, order)
}

func (s *Service) GetOrder(ctx context.Context, id string) (domain.Order, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Order{}, ErrInvalidInput
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return s.repo.List(ctx)
}

// UpdateStatus accepts any of the four status codes; it does not restrict
// which transitions are allowed.
func (s *Service) UpdateStatus(ctx context.Context, id string, status domain.Status) (domain.Order, error) {
	if !status.Valid() {
		return domain.Order{}, fmt.Errorf("%w: %d", ErrInvalidStatus, status)
	}
	return s.repo.UpdateStatus(ctx, id, status)
}

func (s *Service) ListByStatus(ctx context.Context, status domain.Status) ([]domain.Order, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidStatus, status)
	}
	return s.repo.ListByStatus(ctx, status)
}

func (s *Service) ListByDateRange(ctx context.Context, start, end time.Time) ([]domain.Order, error) {
	if start.IsZero() || end.IsZero() || end.Before(start) {
		return nil, fmt.Errorf("%w: bad date range", ErrInvalidInput)
	}
	return s.repo.ListByDateRange(ctx, start, end)
}

func (s *Service) Statistics(ctx context.Context) (domain.Statistics, error) {
	return s.repo.Statistics(ctx)
}
