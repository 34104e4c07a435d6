package catalog

import (
	"context"

	"gorm.io/gorm"

	"github.com/streetsneakers/sneakers-backend/internal/repo"
	"github.com/streetsneakers/sneakers-backend/pkg/db/models"
)

// Repository reads product variants for cart snapshots.
type Repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// GetVariant loads an active variant by id.
func (r *Repository) GetVariant(ctx context.Context, id string) (*models.ProductVariant, error) {
	var variant models.ProductVariant
	if err := r.DB(ctx).
		Where("id = ? AND active = ?", id, true).
		First(&variant).Error; err != nil {
		return nil, err
	}
	return &variant, nil
}

// UpsertVariant creates or replaces a variant row. Used by catalog sync jobs and fixtures.
func (r *Repository) UpsertVariant(ctx context.Context, variant *models.ProductVariant) error {
	return r.DB(ctx).Save(variant).Error
}
