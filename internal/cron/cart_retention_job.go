package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/streetsneakers/sneakers-backend/pkg/logger"
)

const (
	cartRetentionDays       = 30
	cartRetentionBatchSize  = 500
	cartRetentionMaxBatches = 200
)

// CartRetentionJobParams configure the abandoned-cart purge.
type CartRetentionJobParams struct {
	Logger     *logger.Logger
	Repository staleCartRepo
	Retention  int
	BatchSize  int
	MaxBatches int
}

type staleCartRepo interface {
	DeleteStaleBefore(ctx context.Context, cutoff time.Time, limit int) (int64, error)
}

// NewCartRetentionJob purges persisted carts that have not been touched within the retention window.
// Redis-backed carts expire through their key TTL and never reach this job.
func NewCartRetentionJob(params CartRetentionJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Repository == nil {
		return nil, fmt.Errorf("cart snapshot repository required")
	}
	retention := params.Retention
	if retention <= 0 {
		retention = cartRetentionDays
	}
	batch := params.BatchSize
	if batch <= 0 {
		batch = cartRetentionBatchSize
	}
	maxBatches := params.MaxBatches
	if maxBatches <= 0 {
		maxBatches = cartRetentionMaxBatches
	}
	return &cartRetentionJob{
		logg:       params.Logger,
		repo:       params.Repository,
		retention:  retention,
		batch:      batch,
		maxBatches: maxBatches,
		now:        time.Now,
	}, nil
}

type cartRetentionJob struct {
	logg       *logger.Logger
	repo       staleCartRepo
	retention  int
	batch      int
	maxBatches int
	now        func() time.Time
}

func (j *cartRetentionJob) Name() string { return "cart-retention" }

// Run deletes in bounded batches so one cycle never holds a long table lock.
func (j *cartRetentionJob) Run(ctx context.Context) error {
	cutoff := j.now().UTC().Add(-time.Duration(j.retention) * 24 * time.Hour)
	var (
		deleted int64
		batches int
	)
	for batches < j.maxBatches {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("cart retention: %w", err)
		}
		rows, err := j.repo.DeleteStaleBefore(ctx, cutoff, j.batch)
		if err != nil {
			return fmt.Errorf("cart retention after %d rows: %w", deleted, err)
		}
		batches++
		deleted += rows
		if rows < int64(j.batch) {
			break
		}
	}
	logCtx := j.logg.WithFields(ctx, map[string]any{
		"cutoff":         cutoff,
		"retention_days": j.retention,
		"batches":        batches,
		"rows_deleted":   deleted,
	})
	if batches == j.maxBatches {
		j.logg.Warn(logCtx, "cart retention hit batch cap; remaining rows deferred to next cycle")
		return nil
	}
	j.logg.Info(logCtx, "cart retention cleanup complete")
	return nil
}
