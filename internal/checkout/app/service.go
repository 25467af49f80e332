package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/solestride/shoe-shop/internal/checkout/domain"
)

var ErrEmptyCart = errors.New("cart is empty")

type CartItem struct {
	ProductID string
	Quantity  int32
	Size      string
	Color     string
}

type CartReader interface {
	GetCart(ctx context.Context, userID string) ([]CartItem, error)
	Clear(ctx context.Context, userID string) error
}

type Product struct {
	ID            string
	Name          string
	Price         decimal.Decimal
	StockQuantity int32
}

type CatalogReader interface {
	GetProduct(ctx context.Context, productID string) (Product, error)
}

type StockWriter interface {
	SetStock(ctx context.Context, productID string, quantity int32) error
}

type OrderDraftItem struct {
	ProductID string
	Name      string
	Price     decimal.Decimal
	Quantity  int32
	Size      string
	Color     string
}

type OrderDraft struct {
	CustomerName    string
	CustomerEmail   string
	Items           []OrderDraftItem
	ShippingCost    decimal.Decimal
	Tax             decimal.Decimal
	ShippingAddress string
	PaymentMethod   string
}

type OrderWriter interface {
	CreateOrder(ctx context.Context, draft OrderDraft) (domain.Confirmation, error)
}

type Service struct {
	cart    CartReader
	catalog CatalogReader
	stock   StockWriter
	orders  OrderWriter

	shippingFlat  decimal.Decimal
	taxRate       decimal.Decimal
	maxConcurrent int
}

func NewService(cart CartReader, catalog CatalogReader, stock StockWriter, orders OrderWriter,
	shippingFlat, taxRate decimal.Decimal, maxConcurrent int) *Service {
	if maxConcurrent <= 0 {
		maxConcurrent = 10
	}

	return &Service{
		cart:          cart,
		catalog:       catalog,
		stock:         stock,
		orders:        orders,
		shippingFlat:  shippingFlat,
		taxRate:       taxRate,
		maxConcurrent: maxConcurrent,
	}
}

// Quote prices the caller's cart at current catalog prices. Product lookups
// fan out with a bounded errgroup.
func (s *Service) Quote(ctx context.Context, userID string) (domain.Quote, error) {
	items, err := s.cart.GetCart(ctx, userID)
	if err != nil {
		return domain.Quote{}, err
	}

	if len(items) == 0 {
		return domain.Quote{}, ErrEmptyCart
	}

	lines := make([]domain.QuoteLine, len(items))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)

	for idx := range items {
		idx := idx
		g.Go(func() error {
			it := items[idx]
			if it.Quantity <= 0 {
				return fmt.Errorf("quantity must be greater than zero: %d", it.Quantity)
			}

			product, err := s.catalog.GetProduct(ctx, it.ProductID)
			if err != nil {
				return fmt.Errorf("failed to get product %s: %w", it.ProductID, err)
			}

			lines[idx] = domain.QuoteLine{
				ProductID: product.ID,
				Name:      product.Name,
				Quantity:  it.Quantity,
				Size:      it.Size,
				Color:     it.Color,
				UnitPrice: product.Price,
				LineTotal: product.Price.Mul(decimal.NewFromInt32(it.Quantity)),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return domain.Quote{}, err
	}

	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.LineTotal)
	}

	tax := subtotal.Mul(s.taxRate).Round(2)

	return domain.Quote{
		Lines:        lines,
		Subtotal:     subtotal,
		ShippingCost: s.shippingFlat,
		Tax:          tax,
		Total:        subtotal.Add(s.shippingFlat).Add(tax),
	}, nil
}

// PlaceOrder snapshots the cart into an immutable order, decrements stock
// and empties the cart. The stock write is a read-then-write with no
// conditional guard; two concurrent checkouts can both pass the same stock
// figure. A compare-and-swap form (stock_quantity = stock_quantity - n
// WHERE stock_quantity >= n) would close that, at the cost of changing the
// observable behavior.
func (s *Service) PlaceOrder(ctx context.Context, userID string, req domain.PlaceOrderRequest) (domain.Confirmation, error) {
	quote, err := s.Quote(ctx, userID)
	if err != nil {
		return domain.Confirmation{}, err
	}

	draft := OrderDraft{
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		ShippingCost:    quote.ShippingCost,
		Tax:             quote.Tax,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
	}
	for _, line := range quote.Lines {
		draft.Items = append(draft.Items, OrderDraftItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     line.UnitPrice,
			Quantity:  line.Quantity,
			Size:      line.Size,
			Color:     line.Color,
		})
	}

	conf, err := s.orders.CreateOrder(ctx, draft)
	if err != nil {
		return domain.Confirmation{}, err
	}

	for _, line := range quote.Lines {
		product, err := s.catalog.GetProduct(ctx, line.ProductID)
		if err != nil {
			return domain.Confirmation{}, fmt.Errorf("decrement stock for %s: %w", line.ProductID, err)
		}

		remaining := product.StockQuantity - line.Quantity
		if remaining < 0 {
			remaining = 0
		}
		if err := s.stock.SetStock(ctx, line.ProductID, remaining); err != nil {
			return domain.Confirmation{}, fmt.Errorf("decrement stock for %s: %w", line.ProductID, err)
		}
	}

	if err := s.cart.Clear(ctx, userID); err != nil {
		return domain.Confirmation{}, fmt.Errorf("clear cart after checkout: %w", err)
	}

	return conf, nil
}
