package vouchers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/streetsneakers/sneakers-backend/internal/cart"
	"github.com/streetsneakers/sneakers-backend/pkg/db/models"
	pkgerrors "github.com/streetsneakers/sneakers-backend/pkg/errors"
)

type voucherFinder interface {
	FindByCode(ctx context.Context, code string) (*models.Voucher, error)
}

// Service validates voucher codes entered at checkout or the till.
type Service struct {
	repo voucherFinder
	now  func() time.Time
}

func NewService(repo voucherFinder) (*Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("voucher repository required")
	}
	return &Service{repo: repo, now: time.Now}, nil
}

// NormalizeCode trims and upper-cases a human-entered code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Validate resolves code into a cart voucher if it is active, inside its validity
// window and not used up. The minimum order value is returned, not enforced here;
// the cart decides whether its subtotal qualifies.
func (s *Service) Validate(ctx context.Context, code string) (cart.Voucher, error) {
	normalized := NormalizeCode(code)
	if normalized == "" {
		return cart.Voucher{}, pkgerrors.New(pkgerrors.CodeValidation, "voucher code is required")
	}

	row, err := s.repo.FindByCode(ctx, normalized)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return cart.Voucher{}, pkgerrors.New(pkgerrors.CodeNotFound, "voucher not found")
		}
		return cart.Voucher{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load voucher")
	}

	if reason := s.rejection(row); reason != "" {
		return cart.Voucher{}, pkgerrors.New(pkgerrors.CodeValidation, reason).
			WithDetails(map[string]any{"code": normalized})
	}

	return cart.Voucher{
		Code:          row.Code,
		Type:          row.Type,
		Value:         row.Value,
		MaxDiscount:   row.MaxDiscount,
		MinOrderValue: row.MinOrderValue,
	}, nil
}

func (s *Service) rejection(v *models.Voucher) string {
	now := s.now()
	switch {
	case !v.Active:
		return "voucher is not active"
	case v.StartsAt != nil && now.Before(*v.StartsAt):
		return "voucher is not yet valid"
	case v.ExpiresAt != nil && !now.Before(*v.ExpiresAt):
		return "voucher has expired"
	case v.UsageLimit != nil && v.UsageCount >= *v.UsageLimit:
		return "voucher usage limit reached"
	case !v.Type.IsValid():
		return "voucher type is not supported"
	}
	return ""
}
