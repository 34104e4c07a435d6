package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/streetsneakers/sneakers-backend/internal/cart"
	"github.com/streetsneakers/sneakers-backend/pkg/db/models"
	pkgerrors "github.com/streetsneakers/sneakers-backend/pkg/errors"
)

type variantGetter interface {
	GetVariant(ctx context.Context, id string) (*models.ProductVariant, error)
}

// Loader turns catalog variants into cart line item snapshots.
type Loader struct {
	repo variantGetter
}

func NewLoader(repo variantGetter) (*Loader, error) {
	if repo == nil {
		return nil, fmt.Errorf("variant repository required")
	}
	return &Loader{repo: repo}, nil
}

// LoadLineItem returns the variant snapshot with Quantity left at zero.
func (l *Loader) LoadLineItem(ctx context.Context, variantID string) (cart.LineItem, error) {
	id := strings.TrimSpace(variantID)
	if id == "" {
		return cart.LineItem{}, pkgerrors.New(pkgerrors.CodeValidation, "variant id is required")
	}

	variant, err := l.repo.GetVariant(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return cart.LineItem{}, pkgerrors.New(pkgerrors.CodeNotFound, "product variant not found").
				WithDetails(map[string]any{"variant_id": id})
		}
		return cart.LineItem{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product variant")
	}
	return toLineItem(variant), nil
}

func toLineItem(v *models.ProductVariant) cart.LineItem {
	return cart.LineItem{
		ID:              v.ID,
		ProductID:       v.ProductID,
		Name:            v.Name,
		Image:           v.Image,
		Brand:           v.Brand,
		Slug:            v.Slug,
		ColorID:         v.ColorID,
		ColorName:       v.ColorName,
		SizeID:          v.SizeID,
		SizeName:        v.SizeName,
		Price:           v.Price,
		OriginalPrice:   v.OriginalPrice,
		DiscountPercent: v.DiscountPercent,
		DiscountFlagged: v.OnSale,
		Stock:           v.Stock,
	}
}
