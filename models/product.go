package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product declares its variant axes through Sizes and Colors. An empty
// slice means the axis does not apply to the product, so a cart line for
// it never carries a selection on that axis.
type Product struct {
	ID            int             `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	Category      string          `json:"category"`
	Images        []string        `json:"images"`
	ImageIDs      []string        `json:"-"`
	Sizes         []string        `json:"sizes"`
	Colors        []string        `json:"colors"`
	StockQuantity int             `json:"stock_quantity"`
	IsActive      bool            `json:"is_active"`
	Featured      bool            `json:"featured"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// HasSize reports whether s is one of the product's declared sizes.
func (p *Product) HasSize(s string) bool {
	for _, v := range p.Sizes {
		if v == s {
			return true
		}
	}
	return false
}

// HasColor reports whether c is one of the product's declared colors.
func (p *Product) HasColor(c string) bool {
	for _, v := range p.Colors {
		if v == c {
			return true
		}
	}
	return false
}
