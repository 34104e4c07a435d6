package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"

	pkgerrors "github.com/streetsneakers/sneakers-backend/pkg/errors"
)

var errLockHeld = errors.New("cart lock held by another request")

// LocalLocker hands out one in-process lock per key. Entries are reference counted
// so idle keys do not accumulate.
type LocalLocker struct {
	mu      sync.Mutex
	entries map[string]*localEntry
}

type localEntry struct {
	slot chan struct{}
	refs int
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{entries: make(map[string]*localEntry)}
}

// Lock blocks until key is free or ctx is done.
func (l *LocalLocker) Lock(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	entry, ok := l.entries[key]
	if !ok {
		entry = &localEntry{slot: make(chan struct{}, 1)}
		l.entries[key] = entry
	}
	entry.refs++
	l.mu.Unlock()

	select {
	case entry.slot <- struct{}{}:
	case <-ctx.Done():
		l.release(key, entry)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-entry.slot
			l.release(key, entry)
		})
	}, nil
}

func (l *LocalLocker) release(key string, entry *localEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	entry.refs--
	if entry.refs == 0 {
		delete(l.entries, key)
	}
}

// size is the number of keys currently tracked.
func (l *LocalLocker) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

type redisLockStore interface {
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	DelIfValue(ctx context.Context, key, value string) (bool, error)
	LockKey(scope string, parts ...string) string
}

// RedisLocker implements Locker across replicas with SETNX plus an owner token.
// Acquisition polls at a constant interval until maxRetries is spent.
type RedisLocker struct {
	client     redisLockStore
	ttl        time.Duration
	interval   time.Duration
	maxRetries uint64
}

func NewRedisLocker(client redisLockStore, ttl, interval time.Duration, maxRetries int) (*RedisLocker, error) {
	if client == nil {
		return nil, errors.New("redis client required for cart locker")
	}
	if ttl <= 0 {
		return nil, errors.New("cart lock ttl must be positive")
	}
	if interval <= 0 {
		interval = 50 * time.Millisecond
	}
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &RedisLocker{client: client, ttl: ttl, interval: interval, maxRetries: uint64(maxRetries)}, nil
}

func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	fullKey := l.client.LockKey("cart", key)
	owner := uuid.NewString()

	backoff := retry.WithMaxRetries(l.maxRetries, retry.NewConstant(l.interval))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		ok, err := l.client.SetNX(ctx, fullKey, owner, l.ttl)
		if err != nil {
			return err
		}
		if !ok {
			return retry.RetryableError(errLockHeld)
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, errLockHeld):
			return nil, pkgerrors.New(pkgerrors.CodeLocked, "cart is being updated by another request")
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return nil, err
		default:
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "acquire cart lock")
		}
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			// The request context may already be cancelled; release on a short detached one.
			releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
			defer cancel()
			_ = l.release(releaseCtx, fullKey, owner)
		})
	}, nil
}

// release deletes the key only while this owner still holds it.
func (l *RedisLocker) release(ctx context.Context, key, owner string) error {
	if _, err := l.client.DelIfValue(ctx, key, owner); err != nil {
		return fmt.Errorf("release cart lock: %w", err)
	}
	return nil
}
