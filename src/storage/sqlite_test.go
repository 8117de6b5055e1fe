package storage

import (
	"io"
	"path/filepath"
	"testing"
	"time"

	"stock-lens/src/interfaces"
	"stock-lens/src/logger"
	"stock-lens/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ interfaces.IDatabase = (*AsyncSQLiteDB)(nil)
	_ interfaces.IDatabase = (*PostgresDB)(nil)
	_ interfaces.IDatabase = NoopDB{}
)

func newTestSQLite(t *testing.T, retentionDays int) *AsyncSQLiteDB {
	cfg := &models.MConfig{Storage: models.MStorageConfig{
		DBType:        "sqlite",
		DBPath:        filepath.Join(t.TempDir(), "lookups.db"),
		RetentionDays: retentionDays,
	}}
	log := logger.NewLogger(nil, "test")
	log.SetOutput(io.Discard)

	db, err := NewAsyncSQLiteDB(cfg, log)
	require.NoError(t, err)
	require.NoError(t, db.Initialize())
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSQLiteSaveAndRecent(t *testing.T) {
	db := newTestSQLite(t, 0)
	base := time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, db.SaveLookup(models.MLookupRecord{
		ID: "a", RawTicker: "2330", Symbol: "2330.TW", Candidates: []string{"2330.TW"}, CreatedAt: base,
	}))
	require.NoError(t, db.SaveLookup(models.MLookupRecord{
		ID: "b", RawTicker: "xxxx", Candidates: []string{"XXXX.TW", "XXXX.TWO", "XXXX"},
		Error: "no price data for XXXX", CreatedAt: base.Add(time.Minute),
	}))

	recs, err := db.RecentLookups(10)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, "b", recs[0].ID)
	assert.Equal(t, []string{"XXXX.TW", "XXXX.TWO", "XXXX"}, recs[0].Candidates)
	assert.Equal(t, "no price data for XXXX", recs[0].Error)
	assert.Equal(t, "2330.TW", recs[1].Symbol)
	assert.True(t, base.Equal(recs[1].CreatedAt))

	limited, err := db.RecentLookups(1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestSQLiteInitializeIsIdempotent(t *testing.T) {
	db := newTestSQLite(t, 0)
	require.NoError(t, db.SaveLookup(models.MLookupRecord{ID: "a", RawTicker: "2330", CreatedAt: time.Now()}))
	require.NoError(t, db.createTables())

	recs, err := db.RecentLookups(5)
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}

func TestSQLiteCleanupOldData(t *testing.T) {
	db := newTestSQLite(t, 7)
	now := time.Now().UTC()

	require.NoError(t, db.SaveLookup(models.MLookupRecord{ID: "old", RawTicker: "2317", CreatedAt: now.AddDate(0, 0, -30)}))
	require.NoError(t, db.SaveLookup(models.MLookupRecord{ID: "new", RawTicker: "2603", CreatedAt: now}))
	require.NoError(t, db.CleanupOldData())

	recs, err := db.RecentLookups(10)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "new", recs[0].ID)
}
