package rest

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/solestride/shoe-shop/internal/cart/domain"
)

type addItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int32  `json:"quantity"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

type updateItemRequest struct {
	Quantity int32 `json:"quantity"`
}

type cartProductJSON struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	ImageURL      string          `json:"imageUrl"`
	StockQuantity int32           `json:"stockQuantity"`
}

type cartItemJSON struct {
	ID       string          `json:"id"`
	Product  cartProductJSON `json:"product"`
	Quantity int32           `json:"quantity"`
	Size     string          `json:"size"`
	Color    string          `json:"color"`
}

type cartJSON struct {
	ID          string          `json:"id"`
	Items       []cartItemJSON  `json:"items"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

func toCartJSON(c domain.Cart) cartJSON {
	items := make([]cartItemJSON, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, cartItemJSON{
			ID: it.ID,
			Product: cartProductJSON{
				ID:            it.Product.ID,
				Name:          it.Product.Name,
				Price:         it.Product.Price,
				ImageURL:      it.Product.ImageURL,
				StockQuantity: it.Product.StockQuantity,
			},
			Quantity: it.Quantity,
			Size:     it.Size,
			Color:    it.Color,
		})
	}

	return cartJSON{
		ID:          c.ID,
		Items:       items,
		TotalAmount: c.TotalAmount,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
