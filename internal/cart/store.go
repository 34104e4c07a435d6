package cart

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/streetsneakers/sneakers-backend/pkg/enums"
)

// Totals are derived from items and voucher after every mutation.
type Totals struct {
	TotalItems      int
	Subtotal        decimal.Decimal
	Tax             decimal.Decimal
	Shipping        decimal.Decimal
	VoucherDiscount decimal.Decimal
	Total           decimal.Decimal
}

// State is a read-only copy of a cart.
type State struct {
	Kind    enums.CartKind
	Items   []LineItem
	Voucher *Voucher
	Totals  Totals
}

// Store owns one cart's items and voucher and keeps its totals consistent.
// It performs no I/O and is not safe for concurrent use; Service serialises access per session.
type Store struct {
	policy  Policy
	items   []LineItem
	voucher *Voucher
	totals  Totals
}

// NewStore returns an empty cart priced with policy.
func NewStore(policy Policy) *Store {
	s := &Store{policy: policy}
	s.recompute()
	return s
}

func (s *Store) Policy() Policy { return s.policy }

func (s *Store) Totals() Totals { return s.totals }

func (s *Store) Len() int { return len(s.items) }

// Items returns a copy of the line items in insertion order.
func (s *Store) Items() []LineItem {
	out := make([]LineItem, len(s.items))
	for i, item := range s.items {
		out[i] = item.clone()
	}
	return out
}

// Item returns a copy of the line item with id.
func (s *Store) Item(id string) (LineItem, bool) {
	if idx := s.indexOf(id); idx >= 0 {
		return s.items[idx].clone(), true
	}
	return LineItem{}, false
}

// Voucher returns a copy of the applied voucher, or nil.
func (s *Store) Voucher() *Voucher {
	if s.voucher == nil {
		return nil
	}
	v := s.voucher.clone()
	return &v
}

func (s *Store) Snapshot() State {
	return State{
		Kind:    s.policy.Kind,
		Items:   s.Items(),
		Voucher: s.Voucher(),
		Totals:  s.totals,
	}
}

// AddToCart adds quantity units of item, merging with an existing line of the same id.
// A merge takes price, discount, display fields and stock from item.
// An add that would pass the stock ceiling is rejected whole with CartOutcomeStockExceeded.
func (s *Store) AddToCart(item LineItem, quantity int) (Result, error) {
	if quantity <= 0 {
		return Result{}, errInvalid("quantity must be a positive integer")
	}
	if err := item.validateSnapshot(); err != nil {
		return Result{}, err
	}

	if idx := s.indexOf(item.ID); idx >= 0 {
		existing := s.items[idx]
		if quantity > math.MaxInt-existing.Quantity {
			return Result{}, errInvalid("quantity exceeds the maximum a line can hold")
		}
		next := existing.Quantity + quantity
		// The incoming item is the fresher catalog snapshot; a missing stock keeps the old ceiling.
		merged := item.clone()
		if merged.Stock == nil {
			merged.Stock = existing.Stock
		}
		if !merged.withinStock(next) {
			return Result{Outcome: enums.CartOutcomeStockExceeded, Quantity: existing.Quantity}, nil
		}
		merged.Quantity = next
		s.items[idx] = merged
		cleared := s.recompute()
		return Result{Outcome: enums.CartOutcomeApplied, Quantity: next, VoucherCleared: cleared}, nil
	}

	if !item.withinStock(quantity) {
		return Result{Outcome: enums.CartOutcomeStockExceeded}, nil
	}
	line := item.clone()
	line.Quantity = quantity
	s.items = append(s.items, line)
	cleared := s.recompute()
	return Result{Outcome: enums.CartOutcomeApplied, Quantity: quantity, VoucherCleared: cleared}, nil
}

// RemoveFromCart drops the line with id. Unknown ids are a no-op.
func (s *Store) RemoveFromCart(id string) Result {
	idx := s.indexOf(id)
	if idx < 0 {
		return Result{Outcome: enums.CartOutcomeNoop}
	}
	s.removeAt(idx)
	cleared := s.recompute()
	return Result{Outcome: enums.CartOutcomeRemoved, VoucherCleared: cleared}
}

// UpdateQuantity sets an absolute quantity. Non-positive values remove the line;
// values above stock are clamped to it.
func (s *Store) UpdateQuantity(id string, quantity int) Result {
	idx := s.indexOf(id)
	if idx < 0 {
		return Result{Outcome: enums.CartOutcomeNoop}
	}

	outcome := enums.CartOutcomeApplied
	line := &s.items[idx]
	if quantity > 0 && !line.withinStock(quantity) {
		quantity = *line.Stock
		outcome = enums.CartOutcomeClamped
	}
	if quantity <= 0 {
		s.removeAt(idx)
		cleared := s.recompute()
		return Result{Outcome: enums.CartOutcomeRemoved, VoucherCleared: cleared}
	}

	line.Quantity = quantity
	cleared := s.recompute()
	return Result{Outcome: outcome, Quantity: quantity, VoucherCleared: cleared}
}

// ApplyVoucher binds an externally validated voucher. Below its minimum order value the
// voucher is refused and any previously applied voucher is cleared.
func (s *Store) ApplyVoucher(v Voucher) (Result, error) {
	if err := v.validate(); err != nil {
		return Result{}, err
	}
	if !v.Qualifies(s.totals.Subtotal) {
		hadVoucher := s.voucher != nil
		s.voucher = nil
		s.recompute()
		return Result{Outcome: enums.CartOutcomeThresholdUnmet, VoucherCleared: hadVoucher}, nil
	}

	applied := v.clone()
	s.voucher = &applied
	cleared := s.recompute()
	return Result{Outcome: enums.CartOutcomeApplied, VoucherCleared: cleared}, nil
}

func (s *Store) RemoveVoucher() Result {
	if s.voucher == nil {
		return Result{Outcome: enums.CartOutcomeNoop}
	}
	s.voucher = nil
	s.recompute()
	return Result{Outcome: enums.CartOutcomeApplied}
}

// ClearCart empties items and voucher; every total returns to zero.
func (s *Store) ClearCart() Result {
	if len(s.items) == 0 && s.voucher == nil {
		return Result{Outcome: enums.CartOutcomeNoop}
	}
	s.items = nil
	s.voucher = nil
	s.recompute()
	return Result{Outcome: enums.CartOutcomeApplied}
}

// recompute rebuilds totals and reports whether the voucher had to be dropped.
func (s *Store) recompute() bool {
	t := Totals{}
	for _, item := range s.items {
		t.TotalItems += item.Quantity
		t.Subtotal = t.Subtotal.Add(item.LineTotal())
	}
	t.Tax = t.Subtotal.Mul(s.policy.TaxRate)
	t.Shipping = s.policy.shipping(len(s.items), t.Subtotal)

	cleared := false
	if s.voucher != nil && !s.voucher.Qualifies(t.Subtotal) {
		s.voucher = nil
		cleared = true
	}
	if s.voucher != nil {
		t.VoucherDiscount = s.voucher.Discount(t.Subtotal)
		if s.policy.ClearVoucherOnZeroDiscount && len(s.items) > 0 && t.VoucherDiscount.IsZero() {
			s.voucher = nil
			t.VoucherDiscount = decimal.Zero
			cleared = true
		}
	}

	t.Total = t.Subtotal.Add(t.Tax).Add(t.Shipping).Sub(t.VoucherDiscount)
	s.totals = t
	return cleared
}

func (s *Store) indexOf(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) removeAt(idx int) {
	s.items = append(s.items[:idx], s.items[idx+1:]...)
}
