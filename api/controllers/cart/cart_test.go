package cart

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartdto "github.com/streetsneakers/sneakers-backend/api/controllers/cart/dto"
	"github.com/streetsneakers/sneakers-backend/api/middleware"
	cartsvc "github.com/streetsneakers/sneakers-backend/internal/cart"
	"github.com/streetsneakers/sneakers-backend/pkg/enums"
	pkgerrors "github.com/streetsneakers/sneakers-backend/pkg/errors"
	"github.com/streetsneakers/sneakers-backend/pkg/logger"
)

type catalogStub map[string]cartsvc.LineItem

func (c catalogStub) LoadLineItem(_ context.Context, id string) (cartsvc.LineItem, error) {
	item, ok := c[id]
	if !ok {
		return cartsvc.LineItem{}, pkgerrors.New(pkgerrors.CodeNotFound, "product variant not found")
	}
	return item, nil
}

type voucherStub map[string]cartsvc.Voucher

func (v voucherStub) Validate(_ context.Context, code string) (cartsvc.Voucher, error) {
	voucher, ok := v[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return cartsvc.Voucher{}, pkgerrors.New(pkgerrors.CodeNotFound, "voucher not found")
	}
	return voucher, nil
}

func intPtr(v int) *int { return &v }

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	svc, err := cartsvc.NewService(cartsvc.ServiceParams{
		Policy:    cartsvc.CustomerPolicy(),
		Persister: cartsvc.NewMemoryPersister(),
		Locker:    cartsvc.NewLocalLocker(),
		Variants: catalogStub{
			"jordan-1-42": {ID: "jordan-1-42", ProductID: "jordan-1", Name: "Jordan 1", Price: decimal.NewFromInt(200000), Stock: intPtr(3)},
		},
		Vouchers: voucherStub{
			"FIX50K": {Code: "FIX50K", Type: enums.VoucherTypeFixedAmount, Value: decimal.NewFromInt(50000), MinOrderValue: decimal.NewFromInt(300000)},
		},
		Logger: logger.Nop(),
	})
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Use(middleware.CartSession(nil))
	r.Get("/cart", CartFetch(svc, nil))
	r.Delete("/cart", CartClear(svc, nil))
	r.Post("/cart/items", CartAddItem(svc, nil))
	r.Patch("/cart/items/{itemId}", CartUpdateItem(svc, nil))
	r.Delete("/cart/items/{itemId}", CartRemoveItem(svc, nil))
	r.Post("/cart/voucher", CartApplyVoucher(svc, nil))
	r.Delete("/cart/voucher", CartRemoveVoucher(svc, nil))
	return r
}

func call(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	req.Header.Set(middleware.CartSessionHeader, "sess-1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeMutation(t *testing.T, rec *httptest.ResponseRecorder) cartdto.MutationResponse {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var envelope struct {
		Data cartdto.MutationResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
	return envelope.Data
}

func TestCartHandlersFlow(t *testing.T) {
	h := newTestRouter(t)

	added := decodeMutation(t, call(t, h, http.MethodPost, "/cart/items", `{"variant_id":"jordan-1-42","quantity":2}`))
	assert.Equal(t, enums.CartOutcomeApplied, added.Result.Outcome)
	assert.Equal(t, 2, added.Result.Quantity)
	assert.Equal(t, 2, added.Cart.TotalItems)
	assert.True(t, added.Cart.Subtotal.Equal(decimal.NewFromInt(400000)))
	assert.True(t, added.Cart.Shipping.Equal(decimal.NewFromInt(30000)))

	over := decodeMutation(t, call(t, h, http.MethodPost, "/cart/items", `{"variant_id":"jordan-1-42","quantity":2}`))
	assert.Equal(t, enums.CartOutcomeStockExceeded, over.Result.Outcome)
	assert.Equal(t, 2, over.Cart.TotalItems)

	voucher := decodeMutation(t, call(t, h, http.MethodPost, "/cart/voucher", `{"code":"fix50k"}`))
	assert.Equal(t, enums.CartOutcomeApplied, voucher.Result.Outcome)
	require.NotNil(t, voucher.Cart.Voucher)
	assert.True(t, voucher.Cart.VoucherDiscount.Equal(decimal.NewFromInt(50000)))

	clamped := decodeMutation(t, call(t, h, http.MethodPatch, "/cart/items/jordan-1-42", `{"quantity":1}`))
	assert.Equal(t, enums.CartOutcomeApplied, clamped.Result.Outcome)
	assert.True(t, clamped.Result.VoucherCleared)
	assert.Nil(t, clamped.Cart.Voucher)

	removed := decodeMutation(t, call(t, h, http.MethodDelete, "/cart/items/jordan-1-42", ""))
	assert.Equal(t, enums.CartOutcomeRemoved, removed.Result.Outcome)
	assert.Empty(t, removed.Cart.Items)

	rec := call(t, h, http.MethodGet, "/cart", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "sess-1", rec.Header().Get(middleware.CartSessionHeader))
	var fetched struct {
		Data cartdto.CartView `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&fetched))
	assert.Equal(t, enums.CartKindCustomer, fetched.Data.Kind)
	assert.True(t, fetched.Data.Total.IsZero())
}

func TestCartHandlersSerializeMoneyAsStrings(t *testing.T) {
	h := newTestRouter(t)
	rec := call(t, h, http.MethodPost, "/cart/items", `{"variant_id":"jordan-1-42","quantity":1}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"subtotal":"200000"`)
	assert.Contains(t, rec.Body.String(), `"outcome":"applied"`)
}

func TestCartHandlersErrors(t *testing.T) {
	h := newTestRouter(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"unknown variant", http.MethodPost, "/cart/items", `{"variant_id":"nope","quantity":1}`, http.StatusNotFound},
		{"zero quantity", http.MethodPost, "/cart/items", `{"variant_id":"jordan-1-42","quantity":0}`, http.StatusBadRequest},
		{"missing quantity", http.MethodPatch, "/cart/items/jordan-1-42", `{}`, http.StatusBadRequest},
		{"unknown voucher", http.MethodPost, "/cart/voucher", `{"code":"NOPE"}`, http.StatusNotFound},
		{"malformed voucher", http.MethodPost, "/cart/voucher", `{"code":"no pe"}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		rec := call(t, h, tt.method, tt.path, tt.body)
		assert.Equal(t, tt.status, rec.Code, tt.name)
	}
}

func TestCartHandlersRequireService(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req = req.WithContext(middleware.WithCartSession(req.Context(), "sess-1"))
	rec := httptest.NewRecorder()
	CartFetch(nil, nil).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = httptest.NewRecorder()
	CartFetch(&noopService{}, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cart", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

type noopService struct{ cartsvc.Service }
