package models

import "github.com/shopspring/decimal"

func init() {
	// Prices travel as JSON numbers, matching the catalog document.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product is a read-only catalog entry.
type Product struct {
	ID    int             `json:"id" validate:"gt=0"`
	Title string          `json:"title" validate:"required"`
	Price decimal.Decimal `json:"price" validate:"gte=0"`
	Image string          `json:"image"`
	Stock int             `json:"stock" validate:"gte=0"`
}
