package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the order lifecycle code. Any status may move to any other;
// there is deliberately no transition guard.
type Status int32

const (
	StatusProcessing Status = 1
	StatusShipped    Status = 2
	StatusDelivered  Status = 3
	StatusCancelled  Status = 4
)

func (s Status) Valid() bool {
	return s >= StatusProcessing && s <= StatusCancelled
}

func (s Status) String() string {
	switch s {
	case StatusProcessing:
		return "Processing"
	case StatusShipped:
		return "Shipped"
	case StatusDelivered:
		return "Delivered"
	case StatusCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// OrderItem is a value snapshot of the product at purchase time, decoupled
// from the live catalog so later price changes never alter order history.
type OrderItem struct {
	ProductID string
	Name      string
	Price     decimal.Decimal
	Quantity  int32
	Size      string
	Color     string
}

func (it OrderItem) LineTotal() decimal.Decimal {
	return it.Price.Mul(decimal.NewFromInt32(it.Quantity))
}

type Order struct {
	ID              string
	CustomerName    string
	CustomerEmail   string
	OrderDate       time.Time
	Status          Status
	Items           []OrderItem
	Subtotal        decimal.Decimal
	ShippingCost    decimal.Decimal
	Tax             decimal.Decimal
	TotalAmount     decimal.Decimal
	ShippingAddress string
	PaymentMethod   string
	TrackingNumber  string
	DeliveryDate    *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type StatusCount struct {
	Status Status
	Count  int64
}

type Statistics struct {
	TotalOrders    int64
	TotalRevenue   decimal.Decimal
	OrdersByStatus []StatusCount
}
