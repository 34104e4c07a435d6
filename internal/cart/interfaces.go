package cart

import (
	"context"

	"github.com/streetsneakers/sneakers-backend/pkg/enums"
)

// Persister is the durable slot holding one encoded record per cart.
type Persister interface {
	// Load returns nil, nil when no record exists.
	Load(ctx context.Context, kind enums.CartKind, sessionID string) ([]byte, error)
	Save(ctx context.Context, kind enums.CartKind, sessionID string, payload []byte) error
	Delete(ctx context.Context, kind enums.CartKind, sessionID string) error
}

// Locker serialises read-recompute-write cycles per cart key.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// VariantLoader resolves a product variant into a line item snapshot (quantity unset).
type VariantLoader interface {
	LoadLineItem(ctx context.Context, variantID string) (LineItem, error)
}

// VoucherValidator resolves a human-entered code into a backend-validated voucher.
type VoucherValidator interface {
	Validate(ctx context.Context, code string) (Voucher, error)
}

func lockKey(kind enums.CartKind, sessionID string) string {
	return string(kind) + ":" + sessionID
}
