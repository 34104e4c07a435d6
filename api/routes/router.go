package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/streetsneakers/sneakers-backend/api/controllers"
	cartcontrollers "github.com/streetsneakers/sneakers-backend/api/controllers/cart"
	"github.com/streetsneakers/sneakers-backend/api/middleware"
	"github.com/streetsneakers/sneakers-backend/internal/cart"
	"github.com/streetsneakers/sneakers-backend/pkg/config"
	"github.com/streetsneakers/sneakers-backend/pkg/logger"
	"github.com/streetsneakers/sneakers-backend/pkg/redis"
)

// RedisDeps is the slice of the Redis client the router needs.
type RedisDeps interface {
	redis.IdempotencyStore
	redis.Pinger
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP controllers.Pinger,
	redisClient RedisDeps,
	customerCart cart.Service,
	posCart cart.Service,
	gatherer prometheus.Gatherer,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	deps := map[string]controllers.Pinger{"db": dbP}
	if redisClient != nil {
		deps["redis"] = redisClient
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	var idem redis.IdempotencyStore
	if redisClient != nil {
		idem = redisClient
	}

	r.Route("/api/v1/cart", func(r chi.Router) {
		mountCart(r, customerCart, idem, logg)
	})

	// POS carts are opened by staff terminals; authentication is handled upstream of this service.
	r.Route("/api/admin/v1/pos/cart", func(r chi.Router) {
		mountCart(r, posCart, idem, logg)
	})

	return r
}

func mountCart(r chi.Router, svc cart.Service, idem redis.IdempotencyStore, logg *logger.Logger) {
	r.Use(middleware.CartSession(logg))

	r.Get("/", cartcontrollers.CartFetch(svc, logg))
	r.Delete("/", cartcontrollers.CartClear(svc, logg))
	r.Route("/items", func(r chi.Router) {
		// route-level so the full pattern is resolved when the rule is matched
		r.With(middleware.Idempotency(idem, logg)).Post("/", cartcontrollers.CartAddItem(svc, logg))
		r.Patch("/{itemId}", cartcontrollers.CartUpdateItem(svc, logg))
		r.Delete("/{itemId}", cartcontrollers.CartRemoveItem(svc, logg))
	})
	r.Route("/voucher", func(r chi.Router) {
		r.Post("/", cartcontrollers.CartApplyVoucher(svc, logg))
		r.Delete("/", cartcontrollers.CartRemoveVoucher(svc, logg))
	})
}
