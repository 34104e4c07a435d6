package vouchers

import (
	"context"

	"gorm.io/gorm"

	"github.com/streetsneakers/sneakers-backend/internal/repo"
	"github.com/streetsneakers/sneakers-backend/pkg/db/models"
)

// Repository exposes persistence operations for vouchers.
type Repository struct {
	repo.Base
}

// NewRepository constructs a voucher repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// FindByCode loads a voucher by its normalised code.
func (r *Repository) FindByCode(ctx context.Context, code string) (*models.Voucher, error) {
	var voucher models.Voucher
	if err := r.DB(ctx).
		Where("code = ?", code).
		First(&voucher).Error; err != nil {
		return nil, err
	}
	return &voucher, nil
}

// Create inserts a voucher.
func (r *Repository) Create(ctx context.Context, voucher *models.Voucher) (*models.Voucher, error) {
	if err := r.DB(ctx).Create(voucher).Error; err != nil {
		return nil, err
	}
	return voucher, nil
}
