package adapter

import (
	"context"

	checkoutapp "github.com/solestride/shoe-shop/internal/checkout/app"
	checkoutdomain "github.com/solestride/shoe-shop/internal/checkout/domain"
	orderapp "github.com/solestride/shoe-shop/internal/order/app"
	orderdomain "github.com/solestride/shoe-shop/internal/order/domain"
)

type OrderServiceWriter struct {
	svc *orderapp.Service
}

func NewOrderServiceWriter(svc *orderapp.Service) *OrderServiceWriter {
	return &OrderServiceWriter{svc: svc}
}

var _ checkoutapp.OrderWriter = (*OrderServiceWriter)(nil)

func (w *OrderServiceWriter) CreateOrder(ctx context.Context, draft checkoutapp.OrderDraft) (checkoutdomain.Confirmation, error) {
	items := make([]orderdomain.OrderItem, 0, len(draft.Items))
	for _, it := range draft.Items {
		items = append(items, orderdomain.OrderItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price,
			Quantity:  it.Quantity,
			Size:      it.Size,
			Color:     it.Color,
		})
	}

	order, err := w.svc.CreateOrder(ctx, orderdomain.Order{
		CustomerName:    draft.CustomerName,
		CustomerEmail:   draft.CustomerEmail,
		Items:           items,
		ShippingCost:    draft.ShippingCost,
		Tax:             draft.Tax,
		ShippingAddress: draft.ShippingAddress,
		PaymentMethod:   draft.PaymentMethod,
	})
	if err != nil {
		return checkoutdomain.Confirmation{}, err
	}

	return checkoutdomain.Confirmation{
		OrderID:     order.ID,
		Status:      int32(order.Status),
		TotalAmount: order.TotalAmount,
		OrderDate:   order.OrderDate,
	}, nil
}
