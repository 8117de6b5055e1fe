package watchlist

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"stock-lens/src/interfaces"
	"stock-lens/src/logger"
	"stock-lens/src/models"
	"stock-lens/src/utils"

	"github.com/robfig/cron/v3"
)

// maxConcurrentQuotes bounds provider calls made by one refresh.
const maxConcurrentQuotes = 4

// Quoter produces one overview line for a raw ticker.
type Quoter interface {
	Quote(ctx context.Context, raw string) models.MWatchItem
}

// -----------------------------------------------------------------------------

// Watchlist refreshes the configured tickers on a cron schedule and pushes
// each snapshot to the exchanger.
type Watchlist struct {
	Config    *models.MConfig
	Quoter    Quoter
	Exchanger interfaces.IDataExchanger
	Scheduler *utils.MarketScheduler
	Cron      *cron.Cron
	Logger    *logger.Logger

	mu       sync.RWMutex
	tickers  []string
	latest   *models.MWatchlistSnapshot
	running  sync.Mutex
	ctx      context.Context
	cancel   context.CancelFunc
	now      func() time.Time
	entryIDs []cron.EntryID
}

// -----------------------------------------------------------------------------

// NewWatchlist builds an idle watchlist; call Start to schedule it.
// exchanger may be nil.
func NewWatchlist(cfg *models.MConfig, quoter Quoter, exchanger interfaces.IDataExchanger, log *logger.Logger) *Watchlist {
	ctx, cancel := context.WithCancel(context.Background())

	w := &Watchlist{
		Config:    cfg,
		Quoter:    quoter,
		Exchanger: exchanger,
		Cron:      cron.New(cron.WithSeconds()),
		Logger:    log,
		tickers:   dedupe(cfg.Watchlist.Symbols),
		latest: &models.MWatchlistSnapshot{
			Type:  "INITIAL",
			Items: []models.MWatchItem{},
		},
		ctx:    ctx,
		cancel: cancel,
		now:    time.Now,
	}
	if cfg.Watchlist.RespectMarketOpen {
		w.Scheduler = utils.NewMarketScheduler(w.calendarSymbols(), log.Named("MarketScheduler"))
	}
	return w
}

// -----------------------------------------------------------------------------

// Start registers the refresh job and runs one refresh immediately.
func (w *Watchlist) Start() error {
	id, err := w.Cron.AddFunc(w.Config.Watchlist.Cron, w.scheduledRefresh)
	if err != nil {
		return fmt.Errorf("register watchlist job %q: %w", w.Config.Watchlist.Cron, err)
	}
	w.entryIDs = append(w.entryIDs, id)

	w.Cron.Start()
	w.Logger.Info("Watchlist scheduler started (%s, %d symbols)", w.Config.Watchlist.Cron, len(w.symbols()))

	go w.Refresh(w.ctx)
	return nil
}

// -----------------------------------------------------------------------------

// AddMaintenance schedules a housekeeping job on the same cron.
func (w *Watchlist) AddMaintenance(spec, name string, job func() error) error {
	id, err := w.Cron.AddFunc(spec, func() {
		if err := job(); err != nil {
			w.Logger.Error("Maintenance job %s failed: %v", name, err)
			return
		}
		w.Logger.Debug("Maintenance job %s done", name)
	})
	if err != nil {
		return fmt.Errorf("register maintenance job %s: %w", name, err)
	}
	w.entryIDs = append(w.entryIDs, id)
	return nil
}

// -----------------------------------------------------------------------------

// Stop cancels in-flight refreshes and waits for running jobs.
func (w *Watchlist) Stop() {
	w.cancel()
	<-w.Cron.Stop().Done()
	w.Logger.Info("Watchlist scheduler stopped")
}

// -----------------------------------------------------------------------------

// UpdateSymbols replaces the tracked tickers. The next refresh uses them.
func (w *Watchlist) UpdateSymbols(symbols []string) {
	w.mu.Lock()
	w.tickers = dedupe(symbols)
	w.mu.Unlock()

	if w.Scheduler != nil {
		w.Scheduler.UpdateSymbols(w.calendarSymbols())
	}
	w.Logger.Info("Watchlist now tracks %d symbols", len(w.symbols()))
}

// -----------------------------------------------------------------------------

// Symbols returns the tracked tickers.
func (w *Watchlist) Symbols() []string {
	return w.symbols()
}

// -----------------------------------------------------------------------------

// Snapshot returns the latest refresh result.
func (w *Watchlist) Snapshot() *models.MWatchlistSnapshot {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.latest
}

// -----------------------------------------------------------------------------

func (w *Watchlist) scheduledRefresh() {
	if w.Scheduler != nil && !w.Scheduler.AnyMarketOpen() {
		w.Logger.Debug("All watchlist markets closed, skipping refresh")
		return
	}
	w.Refresh(w.ctx)
}

// -----------------------------------------------------------------------------

// Refresh quotes every symbol, stores the snapshot and broadcasts it.
// Concurrent calls are serialized.
func (w *Watchlist) Refresh(ctx context.Context) *models.MWatchlistSnapshot {
	w.running.Lock()
	defer w.running.Unlock()

	ctx, cancel := context.WithTimeout(ctx, time.Duration(w.Config.Watchlist.TimeoutSeconds)*time.Second)
	defer cancel()

	symbols := w.symbols()
	items := make([]models.MWatchItem, len(symbols))

	var wg sync.WaitGroup
	sem := make(chan struct{}, maxConcurrentQuotes)
	for i, sym := range symbols {
		wg.Add(1)
		go func(i int, sym string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			items[i] = w.Quoter.Quote(ctx, sym)
		}(i, sym)
	}
	wg.Wait()

	failed := 0
	for _, item := range items {
		if item.Error != nil {
			failed++
		}
	}

	snapshot := &models.MWatchlistSnapshot{
		Type:      "UPDATE",
		Items:     items,
		Timestamp: w.now().UnixMilli(),
	}

	w.mu.Lock()
	w.latest = snapshot
	w.mu.Unlock()

	if w.Exchanger != nil {
		w.Exchanger.Broadcast(snapshot)
	}

	w.Logger.Info("Watchlist refreshed: %d symbols, %d failed", len(items), failed)
	return snapshot
}

// -----------------------------------------------------------------------------

func (w *Watchlist) symbols() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return append([]string(nil), w.tickers...)
}

// -----------------------------------------------------------------------------

func dedupe(symbols []string) []string {
	out := make([]string, 0, len(symbols))
	seen := make(map[string]bool)
	for _, sym := range symbols {
		sym = strings.TrimSpace(sym)
		if sym == "" || seen[sym] {
			continue
		}
		seen[sym] = true
		out = append(out, sym)
	}
	return out
}

// -----------------------------------------------------------------------------

// calendarSymbols qualifies bare tickers with the primary suffix so they map
// to the preferred market's calendar.
func (w *Watchlist) calendarSymbols() []string {
	symbols := w.symbols()
	for i, sym := range symbols {
		if !strings.Contains(sym, w.Config.Resolver.Delimiter) {
			symbols[i] = strings.ToUpper(strings.TrimSpace(sym)) + w.Config.Resolver.PrimarySuffix
		}
	}
	return symbols
}
