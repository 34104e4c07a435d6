package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/streetsneakers/sneakers-backend/pkg/enums"
)

// Voucher is a discount code managed by the back office.
type Voucher struct {
	ID            uuid.UUID         `gorm:"column:id;type:uuid;primaryKey"`
	Code          string            `gorm:"column:code;not null;uniqueIndex:vouchers_code_key"`
	Type          enums.VoucherType `gorm:"column:type;type:voucher_type;not null"`
	Value         decimal.Decimal   `gorm:"column:value;type:numeric(14,2);not null"`
	MaxDiscount   *decimal.Decimal  `gorm:"column:max_discount;type:numeric(14,2)"`
	MinOrderValue decimal.Decimal   `gorm:"column:min_order_value;type:numeric(14,2);not null;default:0"`
	Active        bool              `gorm:"column:active;not null;default:true"`
	StartsAt      *time.Time        `gorm:"column:starts_at"`
	ExpiresAt     *time.Time        `gorm:"column:expires_at"`
	UsageLimit    *int              `gorm:"column:usage_limit"`
	UsageCount    int               `gorm:"column:usage_count;not null;default:0"`
	CreatedAt     time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

func (Voucher) TableName() string { return "vouchers" }

// BeforeCreate assigns the primary key client-side when the caller left it empty.
func (v *Voucher) BeforeCreate(*gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
