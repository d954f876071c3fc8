package services

import "github.com/shopspring/decimal"

// Flat-rate storefront pricing: orders strictly above the threshold ship
// free, everything else pays the flat fee; tax is a single 8% rate.
var (
	FreeShippingThreshold = decimal.NewFromInt(200)
	FlatShippingFee       = decimal.NewFromInt(15)
	TaxRate               = decimal.RequireFromString("0.08")
)

// ShippingFee is zero only when the subtotal exceeds the threshold; a
// subtotal of exactly 200.00 still pays the flat fee.
func ShippingFee(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThan(FreeShippingThreshold) {
		return decimal.Zero
	}
	return FlatShippingFee
}

func TaxAmount(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(TaxRate)
}

type Quote struct {
	Subtotal   decimal.Decimal `json:"subtotal"`
	Shipping   decimal.Decimal `json:"shipping"`
	Tax        decimal.Decimal `json:"tax"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}

func QuoteFor(subtotal decimal.Decimal) Quote {
	shipping := ShippingFee(subtotal)
	tax := TaxAmount(subtotal)
	return Quote{
		Subtotal:   subtotal,
		Shipping:   shipping,
		Tax:        tax,
		GrandTotal: subtotal.Add(shipping).Add(tax),
	}
}
