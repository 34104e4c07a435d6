package enums

// CartOutcome tags what a cart mutation actually did.
type CartOutcome string

const (
	// CartOutcomeApplied means the requested change was made as asked.
	CartOutcomeApplied CartOutcome = "applied"
	// CartOutcomeNoop means there was nothing to change (unknown item, no voucher).
	CartOutcomeNoop CartOutcome = "noop"
	// CartOutcomeRemoved means the line item left the cart.
	CartOutcomeRemoved CartOutcome = "removed"
	// CartOutcomeClamped means the requested quantity was lowered to the stock ceiling.
	CartOutcomeClamped CartOutcome = "clamped"
	// CartOutcomeStockExceeded means an add was rejected because it would pass the stock ceiling.
	CartOutcomeStockExceeded CartOutcome = "stock_exceeded"
	// CartOutcomeThresholdUnmet means a voucher was refused because the subtotal is below its minimum.
	CartOutcomeThresholdUnmet CartOutcome = "threshold_unmet"
)

var validCartOutcomes = []CartOutcome{
	CartOutcomeApplied,
	CartOutcomeNoop,
	CartOutcomeRemoved,
	CartOutcomeClamped,
	CartOutcomeStockExceeded,
	CartOutcomeThresholdUnmet,
}

// String implements fmt.Stringer.
func (c CartOutcome) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CartOutcome.
func (c CartOutcome) IsValid() bool {
	for _, candidate := range validCartOutcomes {
		if candidate == c {
			return true
		}
	}
	return false
}

// Changed reports whether the outcome mutated cart contents.
func (c CartOutcome) Changed() bool {
	switch c {
	case CartOutcomeApplied, CartOutcomeRemoved, CartOutcomeClamped:
		return true
	default:
		return false
	}
}

// Rejected reports whether the outcome refused the caller's request.
func (c CartOutcome) Rejected() bool {
	return c == CartOutcomeStockExceeded || c == CartOutcomeThresholdUnmet
}
