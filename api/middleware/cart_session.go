package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/streetsneakers/sneakers-backend/api/responses"
	pkgerrors "github.com/streetsneakers/sneakers-backend/pkg/errors"
	"github.com/streetsneakers/sneakers-backend/pkg/logger"
)

// CartSessionHeader carries the opaque cart session id in both directions.
const CartSessionHeader = "X-Cart-Session"

const maxCartSessionLen = 128

// CartSession resolves the caller's cart session id, minting one when the header is absent.
// The resolved id is echoed back so clients can persist it.
func CartSession(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := strings.TrimSpace(r.Header.Get(CartSessionHeader))
			if sessionID == "" {
				sessionID = uuid.NewString()
			} else if !validSessionID(sessionID) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid cart session id").
					WithDetails(map[string]any{"header": CartSessionHeader}))
				return
			}

			w.Header().Set(CartSessionHeader, sessionID)

			ctx := WithCartSession(r.Context(), sessionID)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sessionID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func validSessionID(value string) bool {
	if len(value) > maxCartSessionLen {
		return false
	}
	for _, c := range value {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
		default:
			return false
		}
	}
	return true
}
