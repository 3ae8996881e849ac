package storage

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/creativemotion/smartspace/storage/db"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func upsertAt(t *testing.T, queries *db.Queries, sku string, updatedAt time.Time) db.WarehouseStock {
	t.Helper()
	rec, err := queries.UpsertStock(context.Background(), db.UpsertStockParams{
		ID:                ulid.Make().String(),
		Sku:               sku,
		QuantityPrimary:   1,
		QuantitySecondary: 0,
		CreatedAt:         updatedAt,
		UpdatedAt:         updatedAt,
	})
	require.NoError(t, err)
	return rec
}

func TestListStaleStock(t *testing.T) {
	_, queries, cleanup, err := NewTestDB()
	require.NoError(t, err)
	defer cleanup()

	now := time.Now().UTC()
	upsertAt(t, queries, "FRESH", now)
	upsertAt(t, queries, "OLD", now.Add(-72*time.Hour))
	upsertAt(t, queries, "OLDER", now.Add(-96*time.Hour))

	stale, err := queries.ListStaleStock(context.Background(), now.Add(-48*time.Hour))
	require.NoError(t, err)

	require.Len(t, stale, 2)
	// Oldest first.
	assert.Equal(t, "OLDER", stale[0].Sku)
	assert.Equal(t, "OLD", stale[1].Sku)
}

func TestGetStockBySku_NotFound(t *testing.T) {
	_, queries, cleanup, err := NewTestDB()
	require.NoError(t, err)
	defer cleanup()

	_, err = queries.GetStockBySku(context.Background(), "MISSING")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestDeleteStock(t *testing.T) {
	_, queries, cleanup, err := NewTestDB()
	require.NoError(t, err)
	defer cleanup()

	upsertAt(t, queries, "DOOMED", time.Now())
	require.NoError(t, queries.DeleteStock(context.Background(), "DOOMED"))

	_, err = queries.GetStockBySku(context.Background(), "DOOMED")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	count, err := queries.CountStock(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
}
