package cart

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	cartdto "github.com/streetsneakers/sneakers-backend/api/controllers/cart/dto"
	"github.com/streetsneakers/sneakers-backend/api/middleware"
	"github.com/streetsneakers/sneakers-backend/api/responses"
	"github.com/streetsneakers/sneakers-backend/api/validators"
	cartsvc "github.com/streetsneakers/sneakers-backend/internal/cart"
	pkgerrors "github.com/streetsneakers/sneakers-backend/pkg/errors"
	"github.com/streetsneakers/sneakers-backend/pkg/logger"
)

// CartFetch returns the session's cart.
func CartFetch(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, ok := requireSession(w, r, svc, logg)
		if !ok {
			return
		}

		state, err := svc.GetCart(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartView(state))
	}
}

// CartAddItem adds a catalog variant to the cart.
func CartAddItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, ok := requireSession(w, r, svc, logg)
		if !ok {
			return
		}

		var payload cartdto.AddItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		writeMutation(r.Context(), w, logg, func(ctx context.Context) (cartsvc.Mutation, error) {
			return svc.AddItem(ctx, sessionID, strings.TrimSpace(payload.VariantID), payload.Quantity)
		})
	}
}

// CartUpdateItem sets the quantity of a line item.
func CartUpdateItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, ok := requireSession(w, r, svc, logg)
		if !ok {
			return
		}
		itemID, err := itemIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload cartdto.UpdateQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		writeMutation(r.Context(), w, logg, func(ctx context.Context) (cartsvc.Mutation, error) {
			return svc.UpdateItemQuantity(ctx, sessionID, itemID, *payload.Quantity)
		})
	}
}

// CartRemoveItem drops a line item.
func CartRemoveItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, ok := requireSession(w, r, svc, logg)
		if !ok {
			return
		}
		itemID, err := itemIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		writeMutation(r.Context(), w, logg, func(ctx context.Context) (cartsvc.Mutation, error) {
			return svc.RemoveItem(ctx, sessionID, itemID)
		})
	}
}

// CartApplyVoucher validates and applies a voucher code.
func CartApplyVoucher(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, ok := requireSession(w, r, svc, logg)
		if !ok {
			return
		}

		var payload cartdto.ApplyVoucherRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		writeMutation(r.Context(), w, logg, func(ctx context.Context) (cartsvc.Mutation, error) {
			return svc.ApplyVoucher(ctx, sessionID, payload.Code)
		})
	}
}

// CartRemoveVoucher detaches the applied voucher.
func CartRemoveVoucher(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, ok := requireSession(w, r, svc, logg)
		if !ok {
			return
		}
		writeMutation(r.Context(), w, logg, func(ctx context.Context) (cartsvc.Mutation, error) {
			return svc.RemoveVoucher(ctx, sessionID)
		})
	}
}

// CartClear empties the cart.
func CartClear(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, ok := requireSession(w, r, svc, logg)
		if !ok {
			return
		}
		writeMutation(r.Context(), w, logg, func(ctx context.Context) (cartsvc.Mutation, error) {
			return svc.ClearCart(ctx, sessionID)
		})
	}
}

// writeMutation always answers 200 for a completed operation; rejections such as
// stock_exceeded are reported through result.outcome, not the status code.
func writeMutation(ctx context.Context, w http.ResponseWriter, logg *logger.Logger, run func(context.Context) (cartsvc.Mutation, error)) {
	mutation, err := run(ctx)
	if err != nil {
		responses.WriteError(ctx, logg, w, err)
		return
	}
	responses.WriteSuccess(w, newMutationResponse(mutation))
}

func requireSession(w http.ResponseWriter, r *http.Request, svc cartsvc.Service, logg *logger.Logger) (string, bool) {
	if svc == nil {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
		return "", false
	}
	sessionID := middleware.CartSessionFromContext(r.Context())
	if sessionID == "" {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "cart session missing").
			WithDetails(map[string]any{"header": middleware.CartSessionHeader}))
		return "", false
	}
	return sessionID, true
}

func itemIDParam(r *http.Request) (string, error) {
	itemID := validators.SanitizeString(chi.URLParam(r, "itemId"), 64)
	if itemID == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "item id is required")
	}
	return itemID, nil
}
