package adapter

import (
	"context"

	catalogapp "github.com/solestride/shoe-shop/internal/catalog/app"
	checkoutapp "github.com/solestride/shoe-shop/internal/checkout/app"
)

// CatalogServiceReader exposes the catalog service through the checkout's
// reader and stock-writer ports.
type CatalogServiceReader struct {
	svc *catalogapp.Service
}

func NewCatalogServiceReader(svc *catalogapp.Service) *CatalogServiceReader {
	return &CatalogServiceReader{svc: svc}
}

var (
	_ checkoutapp.CatalogReader = (*CatalogServiceReader)(nil)
	_ checkoutapp.StockWriter   = (*CatalogServiceReader)(nil)
)

func (r *CatalogServiceReader) GetProduct(ctx context.Context, productID string) (checkoutapp.Product, error) {
	p, err := r.svc.GetProduct(ctx, productID)
	if err != nil {
		return checkoutapp.Product{}, err
	}

	return checkoutapp.Product{
		ID:            p.ID,
		Name:          p.Name,
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
	}, nil
}

func (r *CatalogServiceReader) SetStock(ctx context.Context, productID string, quantity int32) error {
	_, err := r.svc.SetStock(ctx, productID, quantity)
	return err
}
