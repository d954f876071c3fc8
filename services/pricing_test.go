package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestShippingFee(t *testing.T) {
	tests := []struct {
		name     string
		subtotal string
		want     string
	}{
		{"zero subtotal pays flat fee", "0", "15"},
		{"below threshold pays flat fee", "199.99", "15"},
		{"exactly at threshold still pays", "200.00", "15"},
		{"just above threshold ships free", "200.01", "0"},
		{"well above threshold ships free", "250.00", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ShippingFee(d(tt.subtotal))
			assert.True(t, got.Equal(d(tt.want)), "got %s, want %s", got, tt.want)
		})
	}
}

func TestTaxAmount(t *testing.T) {
	assert.True(t, TaxAmount(d("100.00")).Equal(d("8.00")))
	assert.True(t, TaxAmount(d("0")).Equal(d("0")))
	assert.True(t, TaxAmount(d("250.00")).Equal(d("20.00")))
}

func TestQuoteFor(t *testing.T) {
	t.Run("subtotal 100 pays shipping and tax", func(t *testing.T) {
		q := QuoteFor(d("100.00"))
		assert.True(t, q.Shipping.Equal(d("15")))
		assert.True(t, q.Tax.Equal(d("8.00")))
		assert.True(t, q.GrandTotal.Equal(d("123.00")))
	})

	t.Run("subtotal 250 ships free", func(t *testing.T) {
		q := QuoteFor(d("250.00"))
		assert.True(t, q.Shipping.Equal(d("0")))
		assert.True(t, q.Tax.Equal(d("20.00")))
		assert.True(t, q.GrandTotal.Equal(d("270.00")))
	})

	t.Run("no drift over repeated cent additions", func(t *testing.T) {
		subtotal := decimal.Zero
		for i := 0; i < 1000; i++ {
			subtotal = subtotal.Add(d("0.10"))
		}
		assert.True(t, subtotal.Equal(d("100.00")))
		assert.True(t, QuoteFor(subtotal).GrandTotal.Equal(d("123.00")))
	})
}
