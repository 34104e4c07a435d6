package routes

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streetsneakers/sneakers-backend/api/middleware"
	"github.com/streetsneakers/sneakers-backend/internal/cart"
	"github.com/streetsneakers/sneakers-backend/pkg/config"
	"github.com/streetsneakers/sneakers-backend/pkg/logger"
	"github.com/streetsneakers/sneakers-backend/pkg/metrics"
)

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

type memoryRedis struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemoryRedis() *memoryRedis { return &memoryRedis{data: map[string]string{}} }

func (m *memoryRedis) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return "", goredis.Nil
	}
	return v, nil
}

func (m *memoryRedis) Set(_ context.Context, key string, value any, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = fmt.Sprint(value)
	return nil
}

func (m *memoryRedis) SetNX(_ context.Context, key string, value any, _ time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.data[key]; ok {
		return false, nil
	}
	m.data[key] = fmt.Sprint(value)
	return true, nil
}

func (m *memoryRedis) Del(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func (m *memoryRedis) IdempotencyKey(scope, id string) string { return "idem:" + scope + ":" + id }

func (m *memoryRedis) Ping(context.Context) error { return nil }

type catalogStub struct{}

func (catalogStub) LoadLineItem(_ context.Context, id string) (cart.LineItem, error) {
	stock := 10
	return cart.LineItem{ID: id, ProductID: "p-" + id, Name: id, Price: decimal.NewFromInt(100000), Stock: &stock}, nil
}

type vouchersStub struct{}

func (vouchersStub) Validate(context.Context, string) (cart.Voucher, error) {
	return cart.Voucher{}, fmt.Errorf("vouchers disabled in router tests")
}

func newCartService(t *testing.T, policy cart.Policy, m *metrics.CartMetrics) cart.Service {
	t.Helper()
	svc, err := cart.NewService(cart.ServiceParams{
		Policy:    policy,
		Persister: cart.NewMemoryPersister(),
		Locker:    cart.NewLocalLocker(),
		Variants:  catalogStub{},
		Vouchers:  vouchersStub{},
		Logger:    logger.Nop(),
		Metrics:   m,
	})
	require.NoError(t, err)
	return svc
}

func newTestRouter(t *testing.T, redis RedisDeps) http.Handler {
	t.Helper()
	reg := prometheus.NewRegistry()
	m := metrics.NewCartMetrics(reg)
	cfg := &config.Config{App: config.AppConfig{Env: "test"}}
	return NewRouter(cfg, logger.Nop(), stubPinger{}, redis,
		newCartService(t, cart.CustomerPolicy(), m),
		newCartService(t, cart.POSPolicy(), m),
		reg)
}

func serve(h http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouterHealth(t *testing.T) {
	h := newTestRouter(t, newMemoryRedis())
	assert.Equal(t, http.StatusOK, serve(h, http.MethodGet, "/health/live", "", nil).Code)
	assert.Equal(t, http.StatusOK, serve(h, http.MethodGet, "/health/ready", "", nil).Code)
}

func TestRouterCartRoutesAreMounted(t *testing.T) {
	h := newTestRouter(t, newMemoryRedis())
	session := map[string]string{middleware.CartSessionHeader: "sess-router"}

	for _, base := range []string{"/api/v1/cart", "/api/admin/v1/pos/cart"} {
		rec := serve(h, http.MethodGet, base, "", session)
		assert.Equal(t, http.StatusOK, rec.Code, base)
		assert.Equal(t, "sess-router", rec.Header().Get(middleware.CartSessionHeader), base)

		rec = serve(h, http.MethodDelete, base+"/voucher", "", session)
		assert.Equal(t, http.StatusOK, rec.Code, base)
		assert.Contains(t, rec.Body.String(), `"outcome":"noop"`, base)
	}
}

func TestRouterAddItemRequiresIdempotencyKey(t *testing.T) {
	h := newTestRouter(t, newMemoryRedis())
	session := map[string]string{middleware.CartSessionHeader: "sess-idem"}
	body := `{"variant_id":"dunk-low-41","quantity":1}`

	rec := serve(h, http.MethodPost, "/api/v1/cart/items", body, session)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	withKey := map[string]string{middleware.CartSessionHeader: "sess-idem", "Idempotency-Key": "k1"}
	first := serve(h, http.MethodPost, "/api/v1/cart/items", body, withKey)
	require.Equal(t, http.StatusOK, first.Code, first.Body.String())
	replay := serve(h, http.MethodPost, "/api/v1/cart/items", body, withKey)
	require.Equal(t, http.StatusOK, replay.Code)
	assert.Equal(t, "true", replay.Header().Get("Idempotent-Replayed"))

	cartRec := serve(h, http.MethodGet, "/api/v1/cart", "", session)
	assert.Contains(t, cartRec.Body.String(), `"total_items":1`)
}

func TestRouterWithoutRedisSkipsIdempotency(t *testing.T) {
	h := newTestRouter(t, nil)
	rec := serve(h, http.MethodPost, "/api/admin/v1/pos/cart/items", `{"variant_id":"a","quantity":1}`,
		map[string]string{middleware.CartSessionHeader: "till-1"})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouterExposesMetrics(t *testing.T) {
	h := newTestRouter(t, newMemoryRedis())
	serve(h, http.MethodGet, "/api/v1/cart", "", map[string]string{middleware.CartSessionHeader: "sess-m"})

	rec := serve(h, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "streetsneakers_cart_operations_total")
}
