package app

import (
	"context"
	"time"

	"github.com/solestride/shoe-shop/internal/order/domain"
)

type OrderRepo interface {
	CreateOrderTx(ctx context.Context, order domain.Order) (domain.Order, error)
	Get(ctx context.Context, id string) (domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
	ListByStatus(ctx context.Context, status domain.Status) ([]domain.Order, error)
	ListByDateRange(ctx context.Context, start, end time.Time) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.Status) (domain.Order, error)
	Statistics(ctx context.Context) (domain.Statistics, error)
}
