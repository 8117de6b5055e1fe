package analysis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stock-lens/src/helpers"
	"stock-lens/src/interfaces"
	"stock-lens/src/logger"
	"stock-lens/src/models"

	"github.com/google/uuid"
)

// LookupFacade runs the full lookup pipeline for one ticker.
type LookupFacade struct {
	Config     *models.MConfig
	Provider   interfaces.IDataProvider
	Resolver   *SymbolResolver
	Normalizer *PriceNormalizer
	Aggregator *FundamentalsAggregator
	Tables     *TableBuilder
	Recorder   interfaces.ILookupRecorder
	Logger     *logger.Logger

	now func() time.Time
}

// -----------------------------------------------------------------------------

// NewLookupFacade wires the engine. recorder may be nil.
func NewLookupFacade(cfg *models.MConfig, provider interfaces.IDataProvider, recorder interfaces.ILookupRecorder, log *logger.Logger) *LookupFacade {
	normalizer := NewPriceNormalizer()
	return &LookupFacade{
		Config:     cfg,
		Provider:   provider,
		Resolver:   NewSymbolResolver(cfg, provider, normalizer, log.Named("SymbolResolver")),
		Normalizer: normalizer,
		Aggregator: NewFundamentalsAggregator(cfg.Windows.MaxPoints, log.Named("Fundamentals")),
		Tables:     &TableBuilder{},
		Recorder:   recorder,
		Logger:     log,
		now:        time.Now,
	}
}

// -----------------------------------------------------------------------------

// Lookup never fails: a resolution failure is reported in the payload's
// error field and fundamentals failures leave their entries empty.
func (f *LookupFacade) Lookup(ctx context.Context, raw string) *models.MLookupPayload {
	payload := &models.MLookupPayload{
		Symbol: NormalizeTicker(raw),
		Bars:   []models.MBar{},
		Fundamentals: models.MFundamentals{
			Info:   map[string]any{},
			Series: map[string][]models.MSeriesPoint{},
		},
	}

	res, err := f.Resolver.Resolve(ctx, raw)
	f.record(raw, res, err)
	if err != nil {
		msg := helpers.Describe(err)
		payload.Error = &msg
		f.Logger.Info("Lookup %q failed: %s", raw, msg)
		return payload
	}

	// 1. Prices
	payload.Symbol = res.Symbol
	payload.Bars = res.Prices.Bars
	summary := f.Normalizer.Summarize(res.Prices)
	payload.LastClose = summary.LastClose
	payload.LastChange = summary.LastChange
	payload.LastChangePct = summary.LastChangePct

	// 2. Company info
	info, err := f.Provider.FetchCompanyInfo(ctx, res.Symbol)
	if err != nil {
		f.Logger.Warning("Company info for %s unavailable: %v", res.Symbol, err)
		info = models.MCompanyInfo{}
	}
	payload.CompanyName = CompanyName(info)

	// 3. Statements
	set := models.MStatementSet{
		Income:   f.statement(ctx, res.Symbol, models.StatementIncome),
		Balance:  f.statement(ctx, res.Symbol, models.StatementBalance),
		CashFlow: f.statement(ctx, res.Symbol, models.StatementCashFlow),
	}

	// 4. Fundamentals
	payload.Fundamentals = f.Aggregator.Aggregate(set, info)
	return payload
}

// -----------------------------------------------------------------------------

// Table resolves raw and renders one statement for display.
func (f *LookupFacade) Table(ctx context.Context, raw string, kind models.StatementKind, maxRows, maxCols int, transpose bool) (*models.MStatementTable, error) {
	if ParseStatementKind(string(kind)) == "" {
		return nil, helpers.NewValidationError(fmt.Sprintf("unknown statement %q", kind))
	}

	res, err := f.Resolver.Resolve(ctx, raw)
	if err != nil {
		return nil, err
	}

	stmt, err := f.fetchStatement(ctx, res.Symbol, kind)
	if err != nil {
		return nil, err
	}

	table := f.Tables.Build(stmt, maxRows, maxCols, transpose)
	if table == nil {
		return nil, helpers.NewEmptyResultError(fmt.Sprintf("%s %s statement", res.Symbol, kind))
	}
	return table, nil
}

// -----------------------------------------------------------------------------

// Quote resolves raw and returns the overview line used by the watchlist.
func (f *LookupFacade) Quote(ctx context.Context, raw string) models.MWatchItem {
	item := models.MWatchItem{Code: NormalizeTicker(raw), Symbol: NormalizeTicker(raw)}

	res, err := f.Resolver.Resolve(ctx, raw)
	if err != nil {
		msg := helpers.Describe(err)
		item.Error = &msg
		return item
	}

	item.Symbol = res.Symbol
	summary := f.Normalizer.Summarize(res.Prices)
	item.Price = summary.LastClose
	item.Change = summary.LastChange
	item.ChangePct = summary.LastChangePct

	if info, err := f.Provider.FetchCompanyInfo(ctx, res.Symbol); err == nil {
		item.Name = CompanyName(info)
	} else {
		f.Logger.Debug("No name for %s: %v", res.Symbol, err)
	}
	return item
}

// -----------------------------------------------------------------------------

// ParseStatementKind returns "" for an unknown name.
func ParseStatementKind(s string) models.StatementKind {
	switch models.StatementKind(s) {
	case models.StatementIncome, models.StatementBalance, models.StatementCashFlow:
		return models.StatementKind(s)
	}
	return ""
}

// -----------------------------------------------------------------------------

func (f *LookupFacade) statement(ctx context.Context, symbol string, kind models.StatementKind) *models.MStatement {
	stmt, err := f.fetchStatement(ctx, symbol, kind)
	if err != nil {
		f.Logger.Warning("%s statement for %s unavailable: %v", kind, symbol, err)
		return nil
	}
	return stmt
}

func (f *LookupFacade) fetchStatement(ctx context.Context, symbol string, kind models.StatementKind) (*models.MStatement, error) {
	switch kind {
	case models.StatementIncome:
		return f.Provider.FetchQuarterlyIncomeStatement(ctx, symbol)
	case models.StatementBalance:
		return f.Provider.FetchQuarterlyBalanceSheet(ctx, symbol)
	case models.StatementCashFlow:
		return f.Provider.FetchQuarterlyCashFlow(ctx, symbol)
	}
	return nil, helpers.NewValidationError(fmt.Sprintf("unknown statement %q", kind))
}

// -----------------------------------------------------------------------------

func (f *LookupFacade) record(raw string, res *models.MResolution, err error) {
	if f.Recorder == nil {
		return
	}

	rec := models.MLookupRecord{
		ID:        uuid.NewString(),
		RawTicker: raw,
		CreatedAt: f.now().UTC(),
	}
	if res != nil {
		rec.Symbol = res.Symbol
		rec.Candidates = res.Tried
	}
	if err != nil {
		rec.Error = helpers.Describe(err)
		var nf *helpers.NotFoundError
		if errors.As(err, &nf) {
			rec.Candidates = nf.Candidates
		}
	}

	if saveErr := f.Recorder.SaveLookup(rec); saveErr != nil {
		f.Logger.Warning("Failed to record lookup %q: %v", raw, saveErr)
	}
}
