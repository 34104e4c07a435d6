package repo

import (
	"context"

	"gorm.io/gorm"
)

// Base is embedded by the catalog and voucher repositories.
type Base struct {
	db *gorm.DB
}

func NewBase(db *gorm.DB) Base {
	return Base{db: db}
}

// DB returns the connection bound to ctx. A nil ctx yields the raw connection.
func (b Base) DB(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return b.db
	}
	return b.db.WithContext(ctx)
}

// WithTx returns a Base that runs every query inside tx.
func (b Base) WithTx(tx *gorm.DB) Base {
	return Base{db: tx}
}
