package cart

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/streetsneakers/sneakers-backend/pkg/config"
	"github.com/streetsneakers/sneakers-backend/pkg/enums"
)

var (
	defaultTaxRate               = decimal.RequireFromString("0.05")
	defaultFreeShippingThreshold = decimal.NewFromInt(500000)
	defaultShippingFee           = decimal.NewFromInt(30000)
)

// Policy holds the pricing knobs that differ between cart contexts.
type Policy struct {
	Kind                  enums.CartKind
	TaxRate               decimal.Decimal
	FreeShippingThreshold decimal.Decimal
	ShippingFee           decimal.Decimal
	// ClearVoucherOnZeroDiscount drops the voucher when its discount recomputes to 0 while items remain.
	ClearVoucherOnZeroDiscount bool
}

// CustomerPolicy is the storefront cart: the voucher survives a zero discount.
func CustomerPolicy() Policy {
	return Policy{
		Kind:                  enums.CartKindCustomer,
		TaxRate:               defaultTaxRate,
		FreeShippingThreshold: defaultFreeShippingThreshold,
		ShippingFee:           defaultShippingFee,
	}
}

// POSPolicy is the admin point-of-sale cart: a zero discount clears the voucher.
func POSPolicy() Policy {
	p := CustomerPolicy()
	p.Kind = enums.CartKindPOS
	p.ClearVoucherOnZeroDiscount = true
	return p
}

// PolicyFor returns the named variant for kind with pricing overridden from cfg.
func PolicyFor(kind enums.CartKind, cfg config.CartConfig) (Policy, error) {
	var p Policy
	switch kind {
	case enums.CartKindCustomer:
		p = CustomerPolicy()
	case enums.CartKindPOS:
		p = POSPolicy()
	default:
		return Policy{}, fmt.Errorf("unknown cart kind %q", kind)
	}

	overrides := []struct {
		name  string
		raw   string
		field *decimal.Decimal
	}{
		{"tax rate", cfg.TaxRate, &p.TaxRate},
		{"free shipping threshold", cfg.FreeShippingThreshold, &p.FreeShippingThreshold},
		{"shipping fee", cfg.ShippingFee, &p.ShippingFee},
	}
	for _, o := range overrides {
		if o.raw == "" {
			continue
		}
		v, err := decimal.NewFromString(o.raw)
		if err != nil {
			return Policy{}, fmt.Errorf("parsing cart %s %q: %w", o.name, o.raw, err)
		}
		if v.IsNegative() {
			return Policy{}, fmt.Errorf("cart %s must not be negative", o.name)
		}
		*o.field = v
	}
	return p, nil
}

func (p Policy) shipping(itemCount int, subtotal decimal.Decimal) decimal.Decimal {
	if itemCount == 0 || !subtotal.LessThan(p.FreeShippingThreshold) {
		return decimal.Zero
	}
	return p.ShippingFee
}
