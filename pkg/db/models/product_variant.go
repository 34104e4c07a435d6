package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductVariant is one purchasable color/size combination with its display snapshot.
type ProductVariant struct {
	ID              string           `gorm:"column:id;primaryKey"`
	ProductID       string           `gorm:"column:product_id;not null;index"`
	Name            string           `gorm:"column:name;not null"`
	Image           string           `gorm:"column:image"`
	Brand           string           `gorm:"column:brand"`
	Slug            string           `gorm:"column:slug"`
	ColorID         string           `gorm:"column:color_id"`
	ColorName       string           `gorm:"column:color_name"`
	SizeID          string           `gorm:"column:size_id"`
	SizeName        string           `gorm:"column:size_name"`
	Price           decimal.Decimal  `gorm:"column:price;type:numeric(14,2);not null"`
	OriginalPrice   *decimal.Decimal `gorm:"column:original_price;type:numeric(14,2)"`
	DiscountPercent *decimal.Decimal `gorm:"column:discount_percent;type:numeric(5,2)"`
	OnSale          bool             `gorm:"column:on_sale;not null;default:false"`
	Stock           *int             `gorm:"column:stock"`
	Active          bool             `gorm:"column:active;not null;default:true"`
	CreatedAt       time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

func (ProductVariant) TableName() string { return "product_variants" }
