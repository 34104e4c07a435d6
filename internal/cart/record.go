package cart

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/streetsneakers/sneakers-backend/pkg/enums"
)

type recordItem struct {
	ID              string           `json:"id"`
	ProductID       string           `json:"productId"`
	Name            string           `json:"name"`
	Image           string           `json:"image,omitempty"`
	Brand           string           `json:"brand,omitempty"`
	Slug            string           `json:"slug,omitempty"`
	ColorID         string           `json:"colorId,omitempty"`
	ColorName       string           `json:"colorName,omitempty"`
	SizeID          string           `json:"sizeId,omitempty"`
	SizeName        string           `json:"sizeName,omitempty"`
	Price           decimal.Decimal  `json:"price"`
	OriginalPrice   *decimal.Decimal `json:"originalPrice,omitempty"`
	DiscountPercent *decimal.Decimal `json:"discountPercent,omitempty"`
	HasDiscount     bool             `json:"hasDiscount"`
	Quantity        int              `json:"quantity"`
	Stock           *int             `json:"stock,omitempty"`
}

type recordVoucher struct {
	Code          string            `json:"code"`
	Type          enums.VoucherType `json:"type"`
	Value         decimal.Decimal   `json:"value"`
	MaxDiscount   *decimal.Decimal  `json:"maxDiscount,omitempty"`
	MinOrderValue decimal.Decimal   `json:"minOrderValue"`
}

// customerRecord mirrors the storefront layout, which also carries derived totals.
type customerRecord struct {
	Items           []recordItem    `json:"items"`
	TotalItems      int             `json:"totalItems"`
	TotalPrice      decimal.Decimal `json:"totalPrice"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	Tax             decimal.Decimal `json:"tax"`
	Shipping        decimal.Decimal `json:"shipping"`
	Total           decimal.Decimal `json:"total"`
	AppliedVoucher  *recordVoucher  `json:"appliedVoucher"`
	VoucherDiscount decimal.Decimal `json:"voucherDiscount"`
}

type posRecord struct {
	Items           []recordItem    `json:"items"`
	AppliedVoucher  *recordVoucher  `json:"appliedVoucher"`
	AppliedDiscount decimal.Decimal `json:"appliedDiscount"`
}

// storedRecord reads either layout; stored totals are ignored.
type storedRecord struct {
	Items          []recordItem   `json:"items"`
	AppliedVoucher *recordVoucher `json:"appliedVoucher"`
}

// EncodeRecord serialises s in the layout of its policy's cart kind.
func EncodeRecord(s *Store) ([]byte, error) {
	items := make([]recordItem, 0, len(s.items))
	for _, item := range s.items {
		items = append(items, toRecordItem(item))
	}
	var voucher *recordVoucher
	if s.voucher != nil {
		v := toRecordVoucher(*s.voucher)
		voucher = &v
	}

	t := s.totals
	switch s.policy.Kind {
	case enums.CartKindPOS:
		return json.Marshal(posRecord{
			Items:           items,
			AppliedVoucher:  voucher,
			AppliedDiscount: t.VoucherDiscount,
		})
	default:
		return json.Marshal(customerRecord{
			Items:           items,
			TotalItems:      t.TotalItems,
			TotalPrice:      t.Subtotal,
			Subtotal:        t.Subtotal,
			Tax:             t.Tax,
			Shipping:        t.Shipping,
			Total:           t.Total,
			AppliedVoucher:  voucher,
			VoucherDiscount: t.VoucherDiscount,
		})
	}
}

// DecodeRecord rebuilds a Store from a persisted record and recomputes its totals.
// Items that break cart invariants are dropped and quantities above stock are clamped.
// On a parse failure it returns an empty store together with the error.
func DecodeRecord(policy Policy, data []byte) (*Store, error) {
	s := NewStore(policy)
	if len(strings.TrimSpace(string(data))) == 0 {
		return s, nil
	}

	var rec storedRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return s, fmt.Errorf("decode %s cart record: %w", policy.Kind, err)
	}

	seen := make(map[string]struct{}, len(rec.Items))
	for _, raw := range rec.Items {
		item, ok := fromRecordItem(raw)
		if !ok {
			continue
		}
		if _, dup := seen[item.ID]; dup {
			continue
		}
		seen[item.ID] = struct{}{}
		s.items = append(s.items, item)
	}
	if rec.AppliedVoucher != nil {
		v := fromRecordVoucher(*rec.AppliedVoucher)
		if v.validate() == nil {
			s.voucher = &v
		}
	}
	s.recompute()
	return s, nil
}

func toRecordItem(i LineItem) recordItem {
	return recordItem{
		ID:              i.ID,
		ProductID:       i.ProductID,
		Name:            i.Name,
		Image:           i.Image,
		Brand:           i.Brand,
		Slug:            i.Slug,
		ColorID:         i.ColorID,
		ColorName:       i.ColorName,
		SizeID:          i.SizeID,
		SizeName:        i.SizeName,
		Price:           i.Price,
		OriginalPrice:   i.OriginalPrice,
		DiscountPercent: i.DiscountPercent,
		HasDiscount:     i.HasDiscount(),
		Quantity:        i.Quantity,
		Stock:           i.Stock,
	}
}

func fromRecordItem(r recordItem) (LineItem, bool) {
	item := LineItem{
		ID:              strings.TrimSpace(r.ID),
		ProductID:       r.ProductID,
		Name:            r.Name,
		Image:           r.Image,
		Brand:           r.Brand,
		Slug:            r.Slug,
		ColorID:         r.ColorID,
		ColorName:       r.ColorName,
		SizeID:          r.SizeID,
		SizeName:        r.SizeName,
		Price:           r.Price,
		OriginalPrice:   r.OriginalPrice,
		DiscountPercent: r.DiscountPercent,
		Quantity:        r.Quantity,
		Stock:           r.Stock,
	}
	// Only an explicit flag needs to survive; the price comparison is re-derived.
	item.DiscountFlagged = r.HasDiscount && !(item.OriginalPrice != nil && item.OriginalPrice.GreaterThan(item.Price))

	if item.validateSnapshot() != nil || item.Quantity <= 0 {
		return LineItem{}, false
	}
	if !item.withinStock(item.Quantity) {
		item.Quantity = *item.Stock
		if item.Quantity <= 0 {
			return LineItem{}, false
		}
	}
	return item, true
}

func toRecordVoucher(v Voucher) recordVoucher {
	return recordVoucher{
		Code:          v.Code,
		Type:          v.Type,
		Value:         v.Value,
		MaxDiscount:   v.MaxDiscount,
		MinOrderValue: v.MinOrderValue,
	}
}

func fromRecordVoucher(r recordVoucher) Voucher {
	return Voucher{
		Code:          strings.TrimSpace(r.Code),
		Type:          r.Type,
		Value:         r.Value,
		MaxDiscount:   r.MaxDiscount,
		MinOrderValue: r.MinOrderValue,
	}
}
