package rest

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/solestride/shoe-shop/internal/catalog/domain"
)

type productJSON struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	ImageURL      string          `json:"imageUrl"`
	Discount      decimal.Decimal `json:"discount"`
	Category      string          `json:"category"`
	Sizes         []float64       `json:"sizes"`
	Colors        []string        `json:"colors"`
	InStock       bool            `json:"inStock"`
	Featured      bool            `json:"featured"`
	StockQuantity int32           `json:"stockQuantity"`
	Rating        decimal.Decimal `json:"rating"`
	ReviewCount   int32           `json:"reviewCount"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

type productRequest struct {
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	ImageURL      string          `json:"imageUrl"`
	Discount      decimal.Decimal `json:"discount"`
	Category      string          `json:"category"`
	Sizes         []float64       `json:"sizes"`
	Colors        []string        `json:"colors"`
	Featured      bool            `json:"featured"`
	StockQuantity int32           `json:"stockQuantity"`
}

type updateStockRequest struct {
	StockQuantity int32 `json:"stockQuantity"`
}

func (r productRequest) toDomain() domain.Product {
	return domain.Product{
		Name:          r.Name,
		Description:   r.Description,
		Price:         r.Price,
		ImageURL:      r.ImageURL,
		Discount:      r.Discount,
		Category:      r.Category,
		Sizes:         r.Sizes,
		Colors:        r.Colors,
		Featured:      r.Featured,
		StockQuantity: r.StockQuantity,
	}
}

func toProductJSON(p domain.Product) productJSON {
	return productJSON{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		ImageURL:      p.ImageURL,
		Discount:      p.Discount,
		Category:      p.Category,
		Sizes:         p.Sizes,
		Colors:        p.Colors,
		InStock:       p.InStock,
		Featured:      p.Featured,
		StockQuantity: p.StockQuantity,
		Rating:        p.Rating,
		ReviewCount:   p.ReviewCount,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
