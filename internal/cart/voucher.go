package cart

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/streetsneakers/sneakers-backend/pkg/enums"
)

var hundred = decimal.NewFromInt(100)

// Voucher is a validated discount code bound to a cart.
type Voucher struct {
	Code          string
	Type          enums.VoucherType
	Value         decimal.Decimal
	MaxDiscount   *decimal.Decimal
	MinOrderValue decimal.Decimal
}

// Qualifies reports whether subtotal meets the voucher's minimum order value.
func (v Voucher) Qualifies(subtotal decimal.Decimal) bool {
	return !subtotal.LessThan(v.MinOrderValue)
}

// Discount computes the voucher's discount against subtotal.
// Percentage discounts are capped by MaxDiscount; fixed discounts never exceed subtotal.
func (v Voucher) Discount(subtotal decimal.Decimal) decimal.Decimal {
	if !subtotal.IsPositive() {
		return decimal.Zero
	}
	switch v.Type {
	case enums.VoucherTypePercentage:
		discount := subtotal.Mul(v.Value).Div(hundred)
		if v.MaxDiscount != nil && discount.GreaterThan(*v.MaxDiscount) {
			discount = *v.MaxDiscount
		}
		return discount
	case enums.VoucherTypeFixedAmount:
		return decimal.Min(v.Value, subtotal)
	default:
		return decimal.Zero
	}
}

func (v Voucher) validate() error {
	switch {
	case strings.TrimSpace(v.Code) == "":
		return errInvalid("voucher code is required")
	case !v.Type.IsValid():
		return errInvalid("voucher type must be PERCENTAGE or FIXED_AMOUNT")
	case v.Value.IsNegative():
		return errInvalid("voucher value must not be negative")
	case v.Type == enums.VoucherTypePercentage && v.Value.GreaterThan(hundred):
		return errInvalid("percentage voucher value must be at most 100")
	case v.MaxDiscount != nil && v.MaxDiscount.IsNegative():
		return errInvalid("voucher max discount must not be negative")
	case v.MinOrderValue.IsNegative():
		return errInvalid("voucher minimum order value must not be negative")
	}
	return nil
}

func (v Voucher) clone() Voucher {
	out := v
	out.Code = strings.TrimSpace(v.Code)
	if v.MaxDiscount != nil {
		m := *v.MaxDiscount
		out.MaxDiscount = &m
	}
	return out
}
