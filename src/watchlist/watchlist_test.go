package watchlist

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"stock-lens/src/logger"
	"stock-lens/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeQuoter struct {
	mu    sync.Mutex
	calls []string
}

func (q *fakeQuoter) Quote(_ context.Context, raw string) models.MWatchItem {
	q.mu.Lock()
	q.calls = append(q.calls, raw)
	q.mu.Unlock()

	item := models.MWatchItem{Code: raw, Symbol: raw + ".TW"}
	if raw == "9999" {
		msg := "no price data for 9999"
		item.Error = &msg
		item.Symbol = raw
		return item
	}
	price := 100.0
	item.Price = &price
	return item
}

type fakeExchanger struct {
	mu        sync.Mutex
	snapshots []*models.MWatchlistSnapshot
}

func (e *fakeExchanger) Broadcast(s *models.MWatchlistSnapshot) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.snapshots = append(e.snapshots, s)
}

func (e *fakeExchanger) UpdateAllDatas(*models.MWatchlistSnapshot) {}

func (e *fakeExchanger) Start() error { return nil }

func (e *fakeExchanger) Stop() error { return nil }

func (e *fakeExchanger) count() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.snapshots)
}

func testConfig(symbols ...string) *models.MConfig {
	return &models.MConfig{
		Resolver: models.MResolverConfig{Delimiter: ".", PrimarySuffix: ".TW", SecondarySuffix: ".TWO"},
		Watchlist: models.MWatchlistConfig{
			Symbols:        symbols,
			Cron:           "0 0 0 1 1 *",
			TimeoutSeconds: 5,
		},
	}
}

func quietLogger() *logger.Logger {
	l := logger.NewLogger(nil, "Watchlist")
	l.SetOutput(io.Discard)
	return l
}

// -----------------------------------------------------------------------------

func TestRefreshKeepsConfiguredOrder(t *testing.T) {
	q := &fakeQuoter{}
	ex := &fakeExchanger{}
	w := NewWatchlist(testConfig("2330", "9999", "2317", "2330"), q, ex, quietLogger())
	w.now = func() time.Time { return time.UnixMilli(1700000000000) }

	snap := w.Refresh(context.Background())

	require.Len(t, snap.Items, 3)
	assert.Equal(t, "2330", snap.Items[0].Code)
	assert.Equal(t, "9999", snap.Items[1].Code)
	assert.NotNil(t, snap.Items[1].Error)
	assert.Equal(t, "2317", snap.Items[2].Code)
	assert.Equal(t, int64(1700000000000), snap.Timestamp)
	assert.Equal(t, "UPDATE", snap.Type)

	assert.Same(t, snap, w.Snapshot())
	assert.Equal(t, 1, ex.count())
	assert.Len(t, q.calls, 3)
}

func TestSnapshotBeforeRefresh(t *testing.T) {
	w := NewWatchlist(testConfig("2330"), &fakeQuoter{}, nil, quietLogger())

	snap := w.Snapshot()
	assert.Equal(t, "INITIAL", snap.Type)
	assert.NotNil(t, snap.Items)
	assert.Empty(t, snap.Items)
}

func TestStartRunsInitialRefresh(t *testing.T) {
	ex := &fakeExchanger{}
	w := NewWatchlist(testConfig("2330"), &fakeQuoter{}, ex, quietLogger())

	require.NoError(t, w.Start())
	defer w.Stop()

	assert.Eventually(t, func() bool { return ex.count() == 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestStartRejectsBadCron(t *testing.T) {
	cfg := testConfig("2330")
	cfg.Watchlist.Cron = "not a schedule"
	w := NewWatchlist(cfg, &fakeQuoter{}, nil, quietLogger())

	assert.Error(t, w.Start())
}

func TestEmptyWatchlistRefresh(t *testing.T) {
	w := NewWatchlist(testConfig(), &fakeQuoter{}, nil, quietLogger())

	snap := w.Refresh(context.Background())
	assert.NotNil(t, snap.Items)
	assert.Empty(t, snap.Items)
}

func TestUpdateSymbols(t *testing.T) {
	q := &fakeQuoter{}
	cfg := testConfig("2330")
	cfg.Watchlist.RespectMarketOpen = true
	w := NewWatchlist(cfg, q, nil, quietLogger())

	w.UpdateSymbols([]string{"2603", " ", "2603", "2317"})
	assert.Equal(t, []string{"2603", "2317"}, w.Symbols())
	assert.Len(t, w.Scheduler.Calendars, 2)

	snap := w.Refresh(context.Background())
	require.Len(t, snap.Items, 2)
	assert.Equal(t, "2603", snap.Items[0].Code)
}

func TestCalendarSymbolsUsePrimarySuffix(t *testing.T) {
	w := NewWatchlist(testConfig("2330", "6488.TWO", "aapl"), &fakeQuoter{}, nil, quietLogger())

	assert.Equal(t, []string{"2330.TW", "6488.TWO", "AAPL.TW"}, w.calendarSymbols())
}

func TestMaintenanceJobRegistered(t *testing.T) {
	w := NewWatchlist(testConfig("2330"), &fakeQuoter{}, nil, quietLogger())

	require.NoError(t, w.AddMaintenance("0 0 3 * * *", "cleanup", func() error { return nil }))
	assert.Len(t, w.Cron.Entries(), 1)
	assert.Error(t, w.AddMaintenance("bogus", "cleanup", func() error { return nil }))
}
