package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is the live catalog view attached to a cart item when the cart is
// read. It is not a snapshot; price and stock track the catalog.
type Product struct {
	ID            string
	Name          string
	Price         decimal.Decimal
	ImageURL      string
	StockQuantity int32
}

type CartItem struct {
	ID        string
	ProductID string
	Quantity  int32
	Size      string
	Color     string
	Product   Product
}

type Cart struct {
	ID          string
	UserID      string
	Items       []CartItem
	TotalAmount decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Total sums price x quantity across items using the attached live prices.
func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.Items {
		total = total.Add(it.Product.Price.Mul(decimal.NewFromInt32(it.Quantity)))
	}
	return total
}

// FindMatch returns the index of the item sharing (product, size, color),
// or -1. Two items never share the triple; additions merge instead.
func (c Cart) FindMatch(productID, size, color string) int {
	for i, it := range c.Items {
		if it.ProductID == productID && it.Size == size && it.Color == color {
			return i
		}
	}
	return -1
}

// FindItem returns the index of the item with the given id, or -1.
func (c Cart) FindItem(itemID string) int {
	for i, it := range c.Items {
		if it.ID == itemID {
			return i
		}
	}
	return -1
}
