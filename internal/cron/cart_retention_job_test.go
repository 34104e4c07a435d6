package cron

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/streetsneakers/sneakers-backend/internal/cart"
	"github.com/streetsneakers/sneakers-backend/pkg/enums"
	"github.com/streetsneakers/sneakers-backend/pkg/logger"
)

type fakeStaleRepo struct {
	remaining int64
	calls     int
	cutoff    time.Time
	failAt    int
}

func (f *fakeStaleRepo) DeleteStaleBefore(_ context.Context, cutoff time.Time, limit int) (int64, error) {
	f.calls++
	f.cutoff = cutoff
	if f.failAt > 0 && f.calls == f.failAt {
		return 0, errors.New("deadlock detected")
	}
	n := int64(limit)
	if f.remaining < n {
		n = f.remaining
	}
	f.remaining -= n
	return n, nil
}

func newRetentionJob(t *testing.T, repo staleCartRepo, batch, maxBatches int) *cartRetentionJob {
	t.Helper()
	job, err := NewCartRetentionJob(CartRetentionJobParams{
		Logger:     logger.Nop(),
		Repository: repo,
		Retention:  7,
		BatchSize:  batch,
		MaxBatches: maxBatches,
	})
	require.NoError(t, err)
	j := job.(*cartRetentionJob)
	j.now = func() time.Time { return time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC) }
	return j
}

func TestCartRetentionJobDeletesInBatches(t *testing.T) {
	repo := &fakeStaleRepo{remaining: 25}
	job := newRetentionJob(t, repo, 10, 100)

	require.NoError(t, job.Run(context.Background()))
	assert.Equal(t, 3, repo.calls)
	assert.Zero(t, repo.remaining)
	assert.Equal(t, time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC), repo.cutoff)
	assert.Equal(t, "cart-retention", job.Name())
}

func TestCartRetentionJobStopsAtBatchCap(t *testing.T) {
	repo := &fakeStaleRepo{remaining: 100}
	job := newRetentionJob(t, repo, 10, 2)

	require.NoError(t, job.Run(context.Background()))
	assert.Equal(t, 2, repo.calls)
	assert.Equal(t, int64(80), repo.remaining)
}

func TestCartRetentionJobSurfacesRepositoryErrors(t *testing.T) {
	repo := &fakeStaleRepo{remaining: 100, failAt: 2}
	job := newRetentionJob(t, repo, 10, 100)

	err := job.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 10 rows")
}

func TestCartRetentionJobRequiresDependencies(t *testing.T) {
	_, err := NewCartRetentionJob(CartRetentionJobParams{Repository: &fakeStaleRepo{}})
	assert.Error(t, err)
	_, err = NewCartRetentionJob(CartRetentionJobParams{Logger: logger.Nop()})
	assert.Error(t, err)
}

func TestCartRetentionJobAgainstSnapshotTable(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Exec(`
CREATE TABLE cart_snapshots (
  key TEXT PRIMARY KEY,
  kind TEXT NOT NULL,
  payload TEXT NOT NULL,
  updated_at DATETIME NOT NULL
);`).Error)

	stale := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	fresh := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, db.Exec(`INSERT INTO cart_snapshots (key, kind, payload, updated_at) VALUES (?, ?, ?, ?)`,
			cart.StorageKey(enums.CartKindCustomer, fmt.Sprintf("old-%d", i)), "customer", "{}", stale).Error)
	}
	require.NoError(t, db.Exec(`INSERT INTO cart_snapshots (key, kind, payload, updated_at) VALUES (?, ?, ?, ?)`,
		cart.StorageKey(enums.CartKindPOS, "till-1"), "pos", "{}", fresh).Error)

	job := newRetentionJob(t, cart.NewSnapshotRepository(db), 2, 100)
	require.NoError(t, job.Run(context.Background()))

	var keys []string
	require.NoError(t, db.Raw(`SELECT key FROM cart_snapshots`).Scan(&keys).Error)
	assert.Equal(t, []string{cart.StorageKey(enums.CartKindPOS, "till-1")}, keys)
}
