package cartdto

// AddItemRequest adds quantity units of a catalog variant.
type AddItemRequest struct {
	VariantID string `json:"variant_id" validate:"required,slug,max=64"`
	Quantity  int    `json:"quantity" validate:"gte=1,lte=99"`
}

// UpdateQuantityRequest sets an absolute quantity; zero or less removes the line.
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required,lte=99"`
}

// ApplyVoucherRequest carries a human-entered voucher code.
type ApplyVoucherRequest struct {
	Code string `json:"code" validate:"required,slug,max=32"`
}
