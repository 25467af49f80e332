package rest

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/solestride/shoe-shop/internal/checkout/domain"
)

type placeOrderRequest struct {
	CustomerName    string `json:"customerName"`
	CustomerEmail   string `json:"customerEmail"`
	ShippingAddress string `json:"shippingAddress"`
	PaymentMethod   string `json:"paymentMethod"`
}

type quoteLineJSON struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Quantity  int32           `json:"quantity"`
	Size      string          `json:"size"`
	Color     string          `json:"color"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

type quoteJSON struct {
	Lines        []quoteLineJSON `json:"lines"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	ShippingCost decimal.Decimal `json:"shippingCost"`
	Tax          decimal.Decimal `json:"tax"`
	Total        decimal.Decimal `json:"total"`
}

type confirmationJSON struct {
	OrderID     string          `json:"orderId"`
	Status      int32           `json:"status"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	OrderDate   time.Time       `json:"orderDate"`
}

func toQuoteJSON(q domain.Quote) quoteJSON {
	lines := make([]quoteLineJSON, 0, len(q.Lines))
	for _, l := range q.Lines {
		lines = append(lines, quoteLineJSON{
			ProductID: l.ProductID,
			Name:      l.Name,
			Quantity:  l.Quantity,
			Size:      l.Size,
			Color:     l.Color,
			UnitPrice: l.UnitPrice,
			LineTotal: l.LineTotal,
		})
	}

	return quoteJSON{
		Lines:        lines,
		Subtotal:     q.Subtotal,
		ShippingCost: q.ShippingCost,
		Tax:          q.Tax,
		Total:        q.Total,
	}
}

func toConfirmationJSON(c domain.Confirmation) confirmationJSON {
	return confirmationJSON{
		OrderID:     c.OrderID,
		Status:      c.Status,
		TotalAmount: c.TotalAmount,
		OrderDate:   c.OrderDate,
	}
}
