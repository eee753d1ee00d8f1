package ordering

import (
	"github.com/shopspring/decimal"
)

// PricingConfig carries the tunable pricing rules
type PricingConfig struct {
	// FreeShippingThreshold is the subtotal at or above which shipping is free
	FreeShippingThreshold decimal.Decimal
	// FlatShippingCost applies below the threshold
	FlatShippingCost decimal.Decimal
	// TaxRate is a fraction, e.g. 0.18 for 18% GST
	TaxRate decimal.Decimal
}

// DefaultPricingConfig returns the store's standard rules: flat 100 shipping,
// free at a 2000 subtotal, 18% tax.
func DefaultPricingConfig() PricingConfig {
	return PricingConfig{
		FreeShippingThreshold: decimal.NewFromInt(2000),
		FlatShippingCost:      decimal.NewFromInt(100),
		TaxRate:               decimal.NewFromFloat(0.18),
	}
}

// Pricer computes order charges from a subtotal
type Pricer struct {
	cfg PricingConfig
}

// NewPricer creates a Pricer with the given rules
func NewPricer(cfg PricingConfig) *Pricer {
	return &Pricer{cfg: cfg}
}

// Charges holds the computed cost breakdown for an order
type Charges struct {
	Shipping decimal.Decimal
	Tax      decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal
}

// Compute derives shipping, tax and the grand total for a subtotal. Tax is
// charged on the subtotal only and rounded to the nearest rupee, half away
// from zero. The threshold comparison is inclusive: a 2000 subtotal ships
// free.
func (p *Pricer) Compute(subtotal, discount decimal.Decimal) Charges {
	shipping := p.cfg.FlatShippingCost
	if subtotal.GreaterThanOrEqual(p.cfg.FreeShippingThreshold) {
		shipping = decimal.Zero
	}
	tax := subtotal.Mul(p.cfg.TaxRate).Round(0)
	total := subtotal.Add(shipping).Add(tax).Sub(discount)
	return Charges{
		Shipping: shipping,
		Tax:      tax,
		Discount: discount,
		Total:    total,
	}
}
