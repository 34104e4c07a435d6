package models

import (
	"time"

	"github.com/streetsneakers/sneakers-backend/pkg/enums"
)

// CartSnapshot stores the encoded record of one session cart.
type CartSnapshot struct {
	Key       string         `gorm:"column:key;primaryKey"`
	Kind      enums.CartKind `gorm:"column:kind;type:cart_kind;not null"`
	Payload   string         `gorm:"column:payload;type:jsonb;not null"`
	UpdatedAt time.Time      `gorm:"column:updated_at;not null;index:cart_snapshots_updated_at_idx"`
}

func (CartSnapshot) TableName() string { return "cart_snapshots" }
