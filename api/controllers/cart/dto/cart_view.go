package cartdto

import (
	"github.com/shopspring/decimal"

	"github.com/streetsneakers/sneakers-backend/pkg/enums"
)

// CartView is the cart as exposed through the API. Money fields are decimal strings.
type CartView struct {
	Kind            enums.CartKind  `json:"kind"`
	Items           []CartItem      `json:"items"`
	Voucher         *VoucherView    `json:"voucher,omitempty"`
	TotalItems      int             `json:"total_items"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	Tax             decimal.Decimal `json:"tax"`
	Shipping        decimal.Decimal `json:"shipping"`
	VoucherDiscount decimal.Decimal `json:"voucher_discount"`
	Total           decimal.Decimal `json:"total"`
}

// CartItem is one line of the cart view.
type CartItem struct {
	ID              string           `json:"id"`
	ProductID       string           `json:"product_id"`
	Name            string           `json:"name"`
	Image           string           `json:"image,omitempty"`
	Brand           string           `json:"brand,omitempty"`
	Slug            string           `json:"slug,omitempty"`
	ColorID         string           `json:"color_id,omitempty"`
	ColorName       string           `json:"color_name,omitempty"`
	SizeID          string           `json:"size_id,omitempty"`
	SizeName        string           `json:"size_name,omitempty"`
	Price           decimal.Decimal  `json:"price"`
	OriginalPrice   *decimal.Decimal `json:"original_price,omitempty"`
	DiscountPercent *decimal.Decimal `json:"discount_percent,omitempty"`
	HasDiscount     bool             `json:"has_discount"`
	Quantity        int              `json:"quantity"`
	Stock           *int             `json:"stock,omitempty"`
	LineTotal       decimal.Decimal  `json:"line_total"`
}

// VoucherView is the applied voucher.
type VoucherView struct {
	Code          string            `json:"code"`
	Type          enums.VoucherType `json:"type"`
	Value         decimal.Decimal   `json:"value"`
	MaxDiscount   *decimal.Decimal  `json:"max_discount,omitempty"`
	MinOrderValue decimal.Decimal   `json:"min_order_value"`
}

// ResultView reports what a mutation did.
type ResultView struct {
	Outcome        enums.CartOutcome `json:"outcome"`
	VoucherCleared bool              `json:"voucher_cleared"`
	Quantity       int               `json:"quantity"`
}

// MutationResponse is returned by every cart write.
type MutationResponse struct {
	Result ResultView `json:"result"`
	Cart   CartView   `json:"cart"`
}
