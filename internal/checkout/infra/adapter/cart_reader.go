package adapter

import (
	"context"

	cartapp "github.com/solestride/shoe-shop/internal/cart/app"
	checkoutapp "github.com/solestride/shoe-shop/internal/checkout/app"
)

type CartServiceReader struct {
	svc *cartapp.Service
}

func NewCartServiceReader(svc *cartapp.Service) *CartServiceReader {
	return &CartServiceReader{svc: svc}
}

var _ checkoutapp.CartReader = (*CartServiceReader)(nil)

func (r *CartServiceReader) GetCart(ctx context.Context, userID string) ([]checkoutapp.CartItem, error) {
	cart, err := r.svc.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]checkoutapp.CartItem, 0, len(cart.Items))
	for _, it := range cart.Items {
		items = append(items, checkoutapp.CartItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Size:      it.Size,
			Color:     it.Color,
		})
	}
	return items, nil
}

func (r *CartServiceReader) Clear(ctx context.Context, userID string) error {
	_, err := r.svc.ClearCart(ctx, userID)
	return err
}
