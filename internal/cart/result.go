package cart

import (
	"github.com/streetsneakers/sneakers-backend/pkg/enums"
	pkgerrors "github.com/streetsneakers/sneakers-backend/pkg/errors"
)

// Result describes what a single mutation did.
type Result struct {
	Outcome enums.CartOutcome
	// VoucherCleared is set when the mutation dropped a previously applied voucher.
	VoucherCleared bool
	// Quantity is the touched line item's quantity afterwards; 0 when it is not in the cart.
	Quantity int
}

// Changed reports whether cart contents or the voucher were modified.
func (r Result) Changed() bool {
	return r.Outcome.Changed() || r.VoucherCleared
}

func errInvalid(msg string) error {
	return pkgerrors.New(pkgerrors.CodeValidation, msg)
}
