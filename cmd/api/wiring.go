package main

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/streetsneakers/sneakers-backend/internal/cart"
	"github.com/streetsneakers/sneakers-backend/pkg/config"
	"github.com/streetsneakers/sneakers-backend/pkg/enums"
	"github.com/streetsneakers/sneakers-backend/pkg/logger"
	"github.com/streetsneakers/sneakers-backend/pkg/metrics"
	"github.com/streetsneakers/sneakers-backend/pkg/redis"
)

type cartStack struct {
	cfg      config.CartConfig
	db       *gorm.DB
	redis    *redis.Client
	variants cart.VariantLoader
	vouchers cart.VoucherValidator
	logg     *logger.Logger
	metrics  *metrics.CartMetrics
}

func (s cartStack) persister() (cart.Persister, error) {
	switch s.cfg.StoreKind() {
	case config.CartStoreRedis:
		if s.redis == nil {
			return nil, fmt.Errorf("cart store %q needs a redis client", config.CartStoreRedis)
		}
		return cart.NewRedisPersister(s.redis, s.cfg.SessionTTL)
	case config.CartStorePostgres:
		if s.db == nil {
			return nil, fmt.Errorf("cart store %q needs a database", config.CartStorePostgres)
		}
		return cart.NewSnapshotRepository(s.db), nil
	case config.CartStoreMemory:
		return cart.NewMemoryPersister(), nil
	}
	return nil, fmt.Errorf("unknown cart store %q", s.cfg.Store)
}

func (s cartStack) locker() (cart.Locker, error) {
	switch s.cfg.LockerKind() {
	case config.CartLockerRedis:
		if s.redis == nil {
			return nil, fmt.Errorf("cart locker %q needs a redis client", config.CartLockerRedis)
		}
		return cart.NewRedisLocker(s.redis, s.cfg.LockTTL, s.cfg.LockRetryInterval, s.cfg.LockMaxRetries)
	case config.CartLockerLocal:
		return cart.NewLocalLocker(), nil
	}
	return nil, fmt.Errorf("unknown cart locker %q", s.cfg.Locker)
}

// services builds the customer and POS carts over one shared persister and locker.
// Keys are namespaced by cart kind so the two never collide.
func (s cartStack) services() (customer cart.Service, pos cart.Service, err error) {
	persister, err := s.persister()
	if err != nil {
		return nil, nil, err
	}
	locker, err := s.locker()
	if err != nil {
		return nil, nil, err
	}

	build := func(kind enums.CartKind) (cart.Service, error) {
		policy, err := cart.PolicyFor(kind, s.cfg)
		if err != nil {
			return nil, err
		}
		return cart.NewService(cart.ServiceParams{
			Policy:    policy,
			Persister: persister,
			Locker:    locker,
			Variants:  s.variants,
			Vouchers:  s.vouchers,
			Logger:    s.logg,
			Metrics:   s.metrics,
		})
	}

	if customer, err = build(enums.CartKindCustomer); err != nil {
		return nil, nil, fmt.Errorf("customer cart: %w", err)
	}
	if pos, err = build(enums.CartKindPOS); err != nil {
		return nil, nil, fmt.Errorf("pos cart: %w", err)
	}
	return customer, pos, nil
}
