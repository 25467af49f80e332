package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type QuoteLine struct {
	ProductID string
	Name      string
	Quantity  int32
	Size      string
	Color     string
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}

type Quote struct {
	Lines        []QuoteLine
	Subtotal     decimal.Decimal
	ShippingCost decimal.Decimal
	Tax          decimal.Decimal
	Total        decimal.Decimal
}

type PlaceOrderRequest struct {
	CustomerName    string
	CustomerEmail   string
	ShippingAddress string
	PaymentMethod   string
}

type Confirmation struct {
	OrderID     string
	Status      int32
	TotalAmount decimal.Decimal
	OrderDate   time.Time
}
