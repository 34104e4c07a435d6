package repo

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	return conn
}

type ctxKey struct{}

func TestBaseDBBindsContext(t *testing.T) {
	db := newTestDB(t)
	base := NewBase(db)

	ctx := context.WithValue(context.Background(), ctxKey{}, "value")
	withCtx := base.DB(ctx)
	require.NotNil(t, withCtx)
	require.NotNil(t, withCtx.Statement)
	assert.Equal(t, ctx, withCtx.Statement.Context)

	//nolint:staticcheck // nil context returns the raw handle
	assert.Same(t, db, base.DB(nil))
}

func TestBaseWithTxUsesTransaction(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Exec(`CREATE TABLE marks (id INTEGER PRIMARY KEY)`).Error)
	base := NewBase(db)

	err := db.Transaction(func(tx *gorm.DB) error {
		txBase := base.WithTx(tx)
		if err := txBase.DB(context.Background()).Exec(`INSERT INTO marks (id) VALUES (1)`).Error; err != nil {
			return err
		}
		return fmt.Errorf("rollback")
	})
	require.Error(t, err)

	var count int64
	require.NoError(t, base.DB(context.Background()).Table("marks").Count(&count).Error)
	assert.Zero(t, count)
}
