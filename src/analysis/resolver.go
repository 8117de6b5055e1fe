package analysis

import (
	"context"
	"fmt"
	"strings"

	"stock-lens/src/helpers"
	"stock-lens/src/interfaces"
	"stock-lens/src/logger"
	"stock-lens/src/models"
)

// SymbolResolver turns a user ticker into a symbol the provider knows.
type SymbolResolver struct {
	Provider   interfaces.IDataProvider
	Normalizer *PriceNormalizer
	Logger     *logger.Logger

	Delimiter       string
	PrimarySuffix   string
	SecondarySuffix string
	Period          string
	Interval        string
}

// -----------------------------------------------------------------------------

func NewSymbolResolver(cfg *models.MConfig, provider interfaces.IDataProvider, normalizer *PriceNormalizer, log *logger.Logger) *SymbolResolver {
	return &SymbolResolver{
		Provider:        provider,
		Normalizer:      normalizer,
		Logger:          log,
		Delimiter:       cfg.Resolver.Delimiter,
		PrimarySuffix:   cfg.Resolver.PrimarySuffix,
		SecondarySuffix: cfg.Resolver.SecondarySuffix,
		Period:          cfg.Provider.Period,
		Interval:        cfg.Provider.Interval,
	}
}

// -----------------------------------------------------------------------------

// NormalizeTicker uppercases and trims a raw ticker.
func NormalizeTicker(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// -----------------------------------------------------------------------------

// Candidates expands a raw ticker in market-preference order.
func (r *SymbolResolver) Candidates(raw string) (models.MCandidates, error) {
	ticker := NormalizeTicker(raw)
	if ticker == "" {
		return nil, helpers.NewValidationError("ticker is empty")
	}

	if r.Delimiter != "" && strings.Contains(ticker, r.Delimiter) {
		return models.MCandidates{ticker}, nil
	}

	ordered := []string{ticker + r.PrimarySuffix, ticker + r.SecondarySuffix, ticker}
	seen := make(map[string]bool, len(ordered))
	candidates := make(models.MCandidates, 0, len(ordered))
	for _, c := range ordered {
		if seen[c] {
			continue
		}
		seen[c] = true
		candidates = append(candidates, c)
	}
	return candidates, nil
}

// -----------------------------------------------------------------------------

// Resolve queries candidates in order and stops at the first one whose price
// history normalizes. Any failure on a candidate moves on to the next one.
func (r *SymbolResolver) Resolve(ctx context.Context, raw string) (*models.MResolution, error) {
	candidates, err := r.Candidates(raw)
	if err != nil {
		return nil, err
	}

	tried := make([]string, 0, len(candidates))
	for _, symbol := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("resolve %s: %w", NormalizeTicker(raw), err)
		}
		tried = append(tried, symbol)

		rawTable, err := r.Provider.FetchPriceHistory(ctx, symbol, r.Period, r.Interval)
		if err != nil {
			r.Logger.Debug("Candidate %s failed: %v", symbol, err)
			continue
		}

		table, err := r.Normalizer.Normalize(rawTable, symbol)
		if err != nil {
			r.Logger.Debug("Candidate %s rejected: %v", symbol, err)
			continue
		}

		r.Logger.Debug("Resolved %s -> %s", NormalizeTicker(raw), symbol)
		return &models.MResolution{
			Symbol:     symbol,
			Candidates: candidates,
			Tried:      tried,
			Prices:     table,
		}, nil
	}

	return nil, helpers.NewNotFoundError(
		fmt.Sprintf("no price data for %s", NormalizeTicker(raw)),
		candidates,
	)
}
