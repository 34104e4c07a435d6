package cart

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/streetsneakers/sneakers-backend/pkg/db/models"
	"github.com/streetsneakers/sneakers-backend/pkg/enums"
)

// SnapshotRepository persists cart records in the cart_snapshots table.
type SnapshotRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewSnapshotRepository binds the repository to the provided GORM handle.
func NewSnapshotRepository(db *gorm.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db, now: time.Now}
}

// StorageKey is the primary key of a session cart row.
func StorageKey(kind enums.CartKind, sessionID string) string {
	return "ss:cart:" + lockKey(kind, sessionID)
}

func (r *SnapshotRepository) Load(ctx context.Context, kind enums.CartKind, sessionID string) ([]byte, error) {
	var row models.CartSnapshot
	err := r.db.WithContext(ctx).
		Where(&models.CartSnapshot{Key: StorageKey(kind, sessionID)}).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return []byte(row.Payload), nil
}

// Save upserts the record and bumps updated_at, which the retention job keys on.
func (r *SnapshotRepository) Save(ctx context.Context, kind enums.CartKind, sessionID string, payload []byte) error {
	row := models.CartSnapshot{
		Key:       StorageKey(kind, sessionID),
		Kind:      kind,
		Payload:   string(payload),
		UpdatedAt: r.now().UTC(),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"kind", "payload", "updated_at"}),
		}).
		Create(&row).Error
}

func (r *SnapshotRepository) Delete(ctx context.Context, kind enums.CartKind, sessionID string) error {
	return r.db.WithContext(ctx).
		Where(&models.CartSnapshot{Key: StorageKey(kind, sessionID)}).
		Delete(&models.CartSnapshot{}).Error
}

// DeleteStaleBefore removes up to limit rows last written before cutoff, oldest first.
func (r *SnapshotRepository) DeleteStaleBefore(ctx context.Context, cutoff time.Time, limit int) (int64, error) {
	if limit <= 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).Exec(
		`DELETE FROM cart_snapshots WHERE key IN (
			SELECT key FROM cart_snapshots WHERE updated_at < ? ORDER BY updated_at LIMIT ?
		)`,
		cutoff.UTC(), limit,
	)
	return res.RowsAffected, res.Error
}
