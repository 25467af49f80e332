package app

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/solestride/shoe-shop/internal/cart/domain"
)

type CartRepo interface {
	Get(ctx context.Context, userID string) (domain.Cart, error)
	GetOrCreate(ctx context.Context, userID string) (domain.Cart, error)
	InsertItem(ctx context.Context, cartID string, item domain.CartItem) error
	SetItemQuantity(ctx context.Context, cartID, itemID string, quantity int32) error
	RemoveItem(ctx context.Context, cartID, itemID string) error
	Clear(ctx context.Context, cartID string) error
	SetTotal(ctx context.Context, cartID string, total decimal.Decimal) error
}

type CatalogReader interface {
	GetProduct(ctx context.Context, productID string) (domain.Product, error)
}
