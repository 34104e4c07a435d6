package cart

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/streetsneakers/sneakers-backend/pkg/enums"
	pkgerrors "github.com/streetsneakers/sneakers-backend/pkg/errors"
	"github.com/streetsneakers/sneakers-backend/pkg/logger"
	"github.com/streetsneakers/sneakers-backend/pkg/metrics"
)

const (
	opGetCart        = "get_cart"
	opAddItem        = "add_item"
	opUpdateQuantity = "update_quantity"
	opRemoveItem     = "remove_item"
	opApplyVoucher   = "apply_voucher"
	opRemoveVoucher  = "remove_voucher"
	opClearCart      = "clear_cart"
)

// Service exposes server-side session carts for one cart kind.
type Service interface {
	Kind() enums.CartKind
	GetCart(ctx context.Context, sessionID string) (State, error)
	AddItem(ctx context.Context, sessionID, variantID string, quantity int) (Mutation, error)
	UpdateItemQuantity(ctx context.Context, sessionID, itemID string, quantity int) (Mutation, error)
	RemoveItem(ctx context.Context, sessionID, itemID string) (Mutation, error)
	ApplyVoucher(ctx context.Context, sessionID, code string) (Mutation, error)
	RemoveVoucher(ctx context.Context, sessionID string) (Mutation, error)
	ClearCart(ctx context.Context, sessionID string) (Mutation, error)
}

// Mutation pairs a store result with the cart as it stands afterwards.
type Mutation struct {
	Result Result
	Cart   State
}

// ServiceParams wires a Service.
type ServiceParams struct {
	Policy    Policy
	Persister Persister
	Locker    Locker
	Variants  VariantLoader
	Vouchers  VoucherValidator
	Logger    *logger.Logger
	Metrics   *metrics.CartMetrics
}

type service struct {
	policy    Policy
	persister Persister
	locker    Locker
	variants  VariantLoader
	vouchers  VoucherValidator
	logg      *logger.Logger
	metrics   *metrics.CartMetrics
}

// NewService builds a session cart service backed by the provided stack.
func NewService(params ServiceParams) (Service, error) {
	if !params.Policy.Kind.IsValid() {
		return nil, fmt.Errorf("cart policy kind required")
	}
	if params.Persister == nil {
		return nil, fmt.Errorf("cart persister required")
	}
	if params.Locker == nil {
		return nil, fmt.Errorf("cart locker required")
	}
	if params.Variants == nil {
		return nil, fmt.Errorf("variant loader required")
	}
	if params.Vouchers == nil {
		return nil, fmt.Errorf("voucher validator required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		policy:    params.Policy,
		persister: params.Persister,
		locker:    params.Locker,
		variants:  params.Variants,
		vouchers:  params.Vouchers,
		logg:      params.Logger,
		metrics:   params.Metrics,
	}, nil
}

func (s *service) Kind() enums.CartKind { return s.policy.Kind }

func (s *service) GetCart(ctx context.Context, sessionID string) (State, error) {
	started := time.Now()
	if err := validateSession(sessionID); err != nil {
		return State{}, err
	}
	ctx = s.scope(ctx, sessionID)

	store, err := s.load(ctx, sessionID)
	if err != nil {
		s.observe(opGetCart, "error", started)
		return State{}, err
	}
	s.observe(opGetCart, string(enums.CartOutcomeNoop), started)
	return store.Snapshot(), nil
}

func (s *service) AddItem(ctx context.Context, sessionID, variantID string, quantity int) (Mutation, error) {
	if quantity <= 0 {
		return Mutation{}, errInvalid("quantity must be a positive integer")
	}
	variantID = strings.TrimSpace(variantID)
	if variantID == "" {
		return Mutation{}, errInvalid("variant id is required")
	}
	if err := validateSession(sessionID); err != nil {
		return Mutation{}, err
	}

	item, err := s.variants.LoadLineItem(ctx, variantID)
	if err != nil {
		return Mutation{}, dependencyErr(err, "load product variant")
	}
	return s.mutate(ctx, opAddItem, sessionID, func(_ context.Context, store *Store) (Result, error) {
		return store.AddToCart(item, quantity)
	})
}

func (s *service) UpdateItemQuantity(ctx context.Context, sessionID, itemID string, quantity int) (Mutation, error) {
	if strings.TrimSpace(itemID) == "" {
		return Mutation{}, errInvalid("item id is required")
	}
	return s.mutate(ctx, opUpdateQuantity, sessionID, func(_ context.Context, store *Store) (Result, error) {
		return store.UpdateQuantity(strings.TrimSpace(itemID), quantity), nil
	})
}

func (s *service) RemoveItem(ctx context.Context, sessionID, itemID string) (Mutation, error) {
	if strings.TrimSpace(itemID) == "" {
		return Mutation{}, errInvalid("item id is required")
	}
	return s.mutate(ctx, opRemoveItem, sessionID, func(_ context.Context, store *Store) (Result, error) {
		return store.RemoveFromCart(strings.TrimSpace(itemID)), nil
	})
}

// ApplyVoucher validates code with the backend and binds it. Validation runs under the
// session lock so the minimum-order check sees the subtotal it will be applied against.
func (s *service) ApplyVoucher(ctx context.Context, sessionID, code string) (Mutation, error) {
	if strings.TrimSpace(code) == "" {
		return Mutation{}, errInvalid("voucher code is required")
	}
	return s.mutate(ctx, opApplyVoucher, sessionID, func(ctx context.Context, store *Store) (Result, error) {
		voucher, err := s.vouchers.Validate(ctx, code)
		if err != nil {
			return Result{}, dependencyErr(err, "validate voucher")
		}
		return store.ApplyVoucher(voucher)
	})
}

func (s *service) RemoveVoucher(ctx context.Context, sessionID string) (Mutation, error) {
	return s.mutate(ctx, opRemoveVoucher, sessionID, func(_ context.Context, store *Store) (Result, error) {
		return store.RemoveVoucher(), nil
	})
}

func (s *service) ClearCart(ctx context.Context, sessionID string) (Mutation, error) {
	return s.mutate(ctx, opClearCart, sessionID, func(_ context.Context, store *Store) (Result, error) {
		return store.ClearCart(), nil
	})
}

type mutationFunc func(ctx context.Context, store *Store) (Result, error)

// mutate runs lock, load, apply, save for one session cart.
func (s *service) mutate(ctx context.Context, op, sessionID string, apply mutationFunc) (Mutation, error) {
	started := time.Now()
	if err := validateSession(sessionID); err != nil {
		return Mutation{}, err
	}
	ctx = s.scope(ctx, sessionID)

	unlock, err := s.locker.Lock(ctx, lockKey(s.policy.Kind, sessionID))
	if err != nil {
		s.observe(op, "error", started)
		if pkgerrors.As(err) != nil {
			return Mutation{}, err
		}
		return Mutation{}, pkgerrors.Wrap(pkgerrors.CodeLocked, err, "acquire cart lock")
	}
	defer unlock()

	store, err := s.load(ctx, sessionID)
	if err != nil {
		s.observe(op, "error", started)
		return Mutation{}, err
	}

	result, err := apply(ctx, store)
	if err != nil {
		s.observe(op, "error", started)
		return Mutation{}, err
	}

	if result.Changed() {
		if err := s.save(ctx, sessionID, store); err != nil {
			s.observe(op, "error", started)
			return Mutation{}, err
		}
	}

	s.observe(op, string(result.Outcome), started)
	if result.VoucherCleared {
		s.metrics.IncVoucherCleared(string(s.policy.Kind))
	}
	logCtx := s.logg.WithFields(ctx, map[string]any{
		"operation":       op,
		"outcome":         string(result.Outcome),
		"voucher_cleared": result.VoucherCleared,
		"total_items":     store.Totals().TotalItems,
	})
	if result.Outcome.Rejected() {
		s.logg.Info(logCtx, "cart mutation rejected")
	} else {
		s.logg.Debug(logCtx, "cart mutation applied")
	}

	return Mutation{Result: result, Cart: store.Snapshot()}, nil
}

// load decodes the persisted cart. Absent or undecodable records start an empty cart.
func (s *service) load(ctx context.Context, sessionID string) (*Store, error) {
	payload, err := s.persister.Load(ctx, s.policy.Kind, sessionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	if payload == nil {
		return NewStore(s.policy), nil
	}
	store, err := DecodeRecord(s.policy, payload)
	if err != nil {
		s.metrics.IncDecodeFailure(string(s.policy.Kind))
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "discarding undecodable cart record")
	}
	return store, nil
}

func (s *service) save(ctx context.Context, sessionID string, store *Store) error {
	if store.Len() == 0 && store.Voucher() == nil {
		if err := s.persister.Delete(ctx, s.policy.Kind, sessionID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete cart")
		}
		return nil
	}
	payload, err := EncodeRecord(store)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cart")
	}
	if err := s.persister.Save(ctx, s.policy.Kind, sessionID, payload); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart")
	}
	return nil
}

func (s *service) scope(ctx context.Context, sessionID string) context.Context {
	ctx = s.logg.WithSessionID(ctx, sessionID)
	return s.logg.WithCartKind(ctx, string(s.policy.Kind))
}

func (s *service) observe(op, outcome string, started time.Time) {
	s.metrics.ObserveOperation(op, string(s.policy.Kind), outcome, time.Since(started))
}

func validateSession(sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return errInvalid("cart session id is required")
	}
	return nil
}

// dependencyErr keeps typed collaborator errors and wraps everything else.
func dependencyErr(err error, msg string) error {
	if pkgerrors.As(err) != nil {
		return err
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, msg)
}
