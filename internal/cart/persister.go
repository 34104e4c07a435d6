package cart

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/streetsneakers/sneakers-backend/pkg/enums"
	"github.com/streetsneakers/sneakers-backend/pkg/redis"
)

type redisStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CartKey(kind, sessionID string) string
}

// RedisPersister keeps each cart record under ss:cart:<kind>:<session> with a sliding TTL.
type RedisPersister struct {
	client redisStore
	ttl    time.Duration
}

func NewRedisPersister(client redisStore, ttl time.Duration) (*RedisPersister, error) {
	if client == nil {
		return nil, errors.New("redis client required")
	}
	return &RedisPersister{client: client, ttl: ttl}, nil
}

func (p *RedisPersister) Load(ctx context.Context, kind enums.CartKind, sessionID string) ([]byte, error) {
	raw, err := p.client.Get(ctx, p.client.CartKey(string(kind), sessionID))
	if err != nil {
		if redis.IsNil(err) {
			return nil, nil
		}
		return nil, err
	}
	return []byte(raw), nil
}

func (p *RedisPersister) Save(ctx context.Context, kind enums.CartKind, sessionID string, payload []byte) error {
	return p.client.Set(ctx, p.client.CartKey(string(kind), sessionID), string(payload), p.ttl)
}

func (p *RedisPersister) Delete(ctx context.Context, kind enums.CartKind, sessionID string) error {
	return p.client.Del(ctx, p.client.CartKey(string(kind), sessionID))
}

// MemoryPersister keeps records in process memory. Records do not survive a restart.
type MemoryPersister struct {
	mu      sync.RWMutex
	records map[string][]byte
}

func NewMemoryPersister() *MemoryPersister {
	return &MemoryPersister{records: make(map[string][]byte)}
}

func (p *MemoryPersister) Load(_ context.Context, kind enums.CartKind, sessionID string) ([]byte, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	payload, ok := p.records[lockKey(kind, sessionID)]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), payload...), nil
}

func (p *MemoryPersister) Save(_ context.Context, kind enums.CartKind, sessionID string, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.records[lockKey(kind, sessionID)] = append([]byte(nil), payload...)
	return nil
}

func (p *MemoryPersister) Delete(_ context.Context, kind enums.CartKind, sessionID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.records, lockKey(kind, sessionID))
	return nil
}
