package cart

import (
	"strings"

	"github.com/shopspring/decimal"
)

// LineItem is one product variant in a cart. ID is the variant id, not the product id.
type LineItem struct {
	ID        string
	ProductID string

	Name      string
	Image     string
	Brand     string
	Slug      string
	ColorID   string
	ColorName string
	SizeID    string
	SizeName  string

	Price           decimal.Decimal
	OriginalPrice   *decimal.Decimal
	DiscountPercent *decimal.Decimal
	DiscountFlagged bool

	Quantity int
	Stock    *int
}

// HasDiscount reports whether the item is shown as discounted.
func (i LineItem) HasDiscount() bool {
	if i.DiscountFlagged {
		return true
	}
	return i.OriginalPrice != nil && i.OriginalPrice.GreaterThan(i.Price)
}

// LineTotal is price × quantity.
func (i LineItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// withinStock reports whether qty fits under the stock ceiling, if any.
func (i LineItem) withinStock(qty int) bool {
	return i.Stock == nil || qty <= *i.Stock
}

func (i LineItem) clone() LineItem {
	out := i
	if i.OriginalPrice != nil {
		v := *i.OriginalPrice
		out.OriginalPrice = &v
	}
	if i.DiscountPercent != nil {
		v := *i.DiscountPercent
		out.DiscountPercent = &v
	}
	if i.Stock != nil {
		v := *i.Stock
		out.Stock = &v
	}
	return out
}

// validateSnapshot checks the fields a caller must supply when adding an item.
func (i LineItem) validateSnapshot() error {
	switch {
	case strings.TrimSpace(i.ID) == "":
		return errInvalid("item id is required")
	case i.Price.IsNegative():
		return errInvalid("item price must not be negative")
	case i.Stock != nil && *i.Stock < 0:
		return errInvalid("item stock must not be negative")
	}
	return nil
}
