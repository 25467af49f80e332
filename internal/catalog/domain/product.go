package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID            string
	Name          string
	Description   string
	Price         decimal.Decimal
	ImageURL      string
	Discount      decimal.Decimal
	Category      string
	Sizes         []float64
	Colors        []string
	InStock       bool
	Featured      bool
	StockQuantity int32
	Rating        decimal.Decimal
	ReviewCount   int32
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
