package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/solestride/shoe-shop/internal/cart/domain"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("not found")
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("not enough stock available")
)

type Service struct {
	repo    CartRepo
	catalog CatalogReader
}

func NewService(repo CartRepo, catalog CatalogReader) *Service {
	return &Service{
		repo:    repo,
		catalog: catalog,
	}
}

// GetCart returns the caller's cart, creating an empty one on first access.
func (s *Service) GetCart(ctx context.Context, userID string) (domain.Cart, error) {
	return s.repo.GetOrCreate(ctx, userID)
}

// AddItem validates the product and its stock, then either merges into an
// existing (product, size, color) line or appends a new one. The merged
// quantity is not re-checked against stock; only the added quantity is.
func (s *Service) AddItem(ctx context.Context, userID, productID string, quantity int32, size, color string) (domain.Cart, error) {
	if quantity <= 0 {
		return domain.Cart{}, fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
	}

	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return domain.Cart{}, err
	}
	if product.StockQuantity < quantity {
		return domain.Cart{}, ErrInsufficientStock
	}

	cart, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return domain.Cart{}, err
	}

	if idx := cart.FindMatch(productID, size, color); idx >= 0 {
		existing := cart.Items[idx]
		err = s.repo.SetItemQuantity(ctx, cart.ID, existing.ID, existing.Quantity+quantity)
	} else {
		err = s.repo.InsertItem(ctx, cart.ID, domain.CartItem{
			ID:        uuid.NewString(),
			ProductID: productID,
			Quantity:  quantity,
			Size:      size,
			Color:     color,
		})
	}
	if err != nil {
		return domain.Cart{}, err
	}

	return s.recompute(ctx, userID)
}

// UpdateItem replaces an item's quantity after re-checking current stock.
func (s *Service) UpdateItem(ctx context.Context, userID, itemID string, quantity int32) (domain.Cart, error) {
	if quantity <= 0 {
		return domain.Cart{}, fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
	}

	cart, err := s.repo.Get(ctx, userID)
	if err != nil {
		return domain.Cart{}, err
	}

	idx := cart.FindItem(itemID)
	if idx < 0 {
		return domain.Cart{}, fmt.Errorf("%w: item %s", ErrNotFound, itemID)
	}

	product, err := s.catalog.GetProduct(ctx, cart.Items[idx].ProductID)
	if err != nil {
		return domain.Cart{}, err
	}
	if product.StockQuantity < quantity {
		return domain.Cart{}, ErrInsufficientStock
	}

	if err := s.repo.SetItemQuantity(ctx, cart.ID, itemID, quantity); err != nil {
		return domain.Cart{}, err
	}

	return s.recompute(ctx, userID)
}

// RemoveItem drops an item by id. Removing an id that is not in the cart is
// a success returning the unchanged cart.
func (s *Service) RemoveItem(ctx context.Context, userID, itemID string) (domain.Cart, error) {
	cart, err := s.repo.Get(ctx, userID)
	if err != nil {
		return domain.Cart{}, err
	}

	if err := s.repo.RemoveItem(ctx, cart.ID, itemID); err != nil {
		return domain.Cart{}, err
	}

	return s.recompute(ctx, userID)
}

// ClearCart empties the item list and zeroes the total.
func (s *Service) ClearCart(ctx context.Context, userID string) (domain.Cart, error) {
	cart, err := s.repo.Get(ctx, userID)
	if err != nil {
		return domain.Cart{}, err
	}

	if err := s.repo.Clear(ctx, cart.ID); err != nil {
		return domain.Cart{}, err
	}

	return s.recompute(ctx, userID)
}

// recompute reloads the cart, derives the total from the live product
// prices joined at read time, and persists it. Every mutation funnels
// through here so the stored total always matches the item sum.
func (s *Service) recompute(ctx context.Context, userID string) (domain.Cart, error) {
	cart, err := s.repo.Get(ctx, userID)
	if err != nil {
		return domain.Cart{}, err
	}

	total := cart.Total()
	if err := s.repo.SetTotal(ctx, cart.ID, total); err != nil {
		return domain.Cart{}, err
	}

	cart.TotalAmount = total
	return cart, nil
}
