package rest

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/solestride/shoe-shop/internal/order/domain"
)

type updateStatusRequest struct {
	Status int32 `json:"status"`
}

type orderItemJSON struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int32           `json:"quantity"`
	Size      string          `json:"size"`
	Color     string          `json:"color"`
}

type orderJSON struct {
	ID              string          `json:"id"`
	CustomerName    string          `json:"customerName"`
	CustomerEmail   string          `json:"customerEmail"`
	OrderDate       time.Time       `json:"orderDate"`
	Status          int32           `json:"status"`
	StatusLabel     string          `json:"statusLabel"`
	Items           []orderItemJSON `json:"items"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	ShippingCost    decimal.Decimal `json:"shippingCost"`
	Tax             decimal.Decimal `json:"tax"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	ShippingAddress string          `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
	TrackingNumber  string          `json:"trackingNumber,omitempty"`
	DeliveryDate    *time.Time      `json:"deliveryDate,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

type statusCountJSON struct {
	Status int32 `json:"status"`
	Count  int64 `json:"count"`
}

type statisticsJSON struct {
	TotalOrders    int64             `json:"totalOrders"`
	TotalRevenue   decimal.Decimal   `json:"totalRevenue"`
	OrdersByStatus []statusCountJSON `json:"ordersByStatus"`
}

func toOrderJSON(o domain.Order) orderJSON {
	items := make([]orderItemJSON, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, orderItemJSON{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price,
			Quantity:  it.Quantity,
			Size:      it.Size,
			Color:     it.Color,
		})
	}

	return orderJSON{
		ID:              o.ID,
		CustomerName:    o.CustomerName,
		CustomerEmail:   o.CustomerEmail,
		OrderDate:       o.OrderDate,
		Status:          int32(o.Status),
		StatusLabel:     o.Status.String(),
		Items:           items,
		Subtotal:        o.Subtotal,
		ShippingCost:    o.ShippingCost,
		Tax:             o.Tax,
		TotalAmount:     o.TotalAmount,
		ShippingAddress: o.ShippingAddress,
		PaymentMethod:   o.PaymentMethod,
		TrackingNumber:  o.TrackingNumber,
		DeliveryDate:    o.DeliveryDate,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

func toOrderListJSON(orders []domain.Order) []orderJSON {
	out := make([]orderJSON, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderJSON(o))
	}
	return out
}

func toStatisticsJSON(s domain.Statistics) statisticsJSON {
	byStatus := make([]statusCountJSON, 0, len(s.OrdersByStatus))
	for _, sc := range s.OrdersByStatus {
		byStatus = append(byStatus, statusCountJSON{Status: int32(sc.Status), Count: sc.Count})
	}

	return statisticsJSON{
		TotalOrders:    s.TotalOrders,
		TotalRevenue:   s.TotalRevenue,
		OrdersByStatus: byStatus,
	}
}
