package enums

import (
	"fmt"
	"strings"
)

// VoucherType discriminates how a voucher's value turns into a discount.
type VoucherType string

const (
	VoucherTypePercentage  VoucherType = "PERCENTAGE"
	VoucherTypeFixedAmount VoucherType = "FIXED_AMOUNT"
)

var validVoucherTypes = []VoucherType{
	VoucherTypePercentage,
	VoucherTypeFixedAmount,
}

// String implements fmt.Stringer.
func (v VoucherType) String() string {
	return string(v)
}

// IsValid reports whether the value is a known VoucherType.
func (v VoucherType) IsValid() bool {
	for _, candidate := range validVoucherTypes {
		if candidate == v {
			return true
		}
	}
	return false
}

// ParseVoucherType converts raw input into a VoucherType. Matching ignores case.
func ParseVoucherType(value string) (VoucherType, error) {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	for _, candidate := range validVoucherTypes {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid voucher type %q", value)
}
