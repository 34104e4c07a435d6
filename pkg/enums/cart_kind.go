package enums

import "fmt"

// CartKind selects the pricing policy and persistence layout of a cart.
type CartKind string

const (
	CartKindCustomer CartKind = "customer"
	CartKindPOS      CartKind = "pos"
)

var validCartKinds = []CartKind{
	CartKindCustomer,
	CartKindPOS,
}

// String implements fmt.Stringer.
func (c CartKind) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CartKind.
func (c CartKind) IsValid() bool {
	for _, candidate := range validCartKinds {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCartKind converts raw input into a CartKind.
func ParseCartKind(value string) (CartKind, error) {
	for _, candidate := range validCartKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid cart kind %q", value)
}
