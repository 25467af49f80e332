package adapter

import (
	"context"
	"errors"

	cartapp "github.com/solestride/shoe-shop/internal/cart/app"
	cartdomain "github.com/solestride/shoe-shop/internal/cart/domain"
	catalogapp "github.com/solestride/shoe-shop/internal/catalog/app"
)

// CatalogServiceReader adapts the catalog service to the cart's product
// reader port, translating the catalog's not-found into the cart's.
type CatalogServiceReader struct {
	svc *catalogapp.Service
}

func NewCatalogServiceReader(svc *catalogapp.Service) *CatalogServiceReader {
	return &CatalogServiceReader{svc: svc}
}

var _ cartapp.CatalogReader = (*CatalogServiceReader)(nil)

func (r *CatalogServiceReader) GetProduct(ctx context.Context, productID string) (cartdomain.Product, error) {
	p, err := r.svc.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, catalogapp.ErrNotFound) || errors.Is(err, catalogapp.ErrInvalidInput) {
			return cartdomain.Product{}, cartapp.ErrProductNotFound
		}
		return cartdomain.Product{}, err
	}

	return cartdomain.Product{
		ID:            p.ID,
		Name:          p.Name,
		Price:         p.Price,
		ImageURL:      p.ImageURL,
		StockQuantity: p.StockQuantity,
	}, nil
}
