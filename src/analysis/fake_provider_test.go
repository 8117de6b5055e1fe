package analysis

import (
	"context"
	"errors"
	"io"
	"time"

	"stock-lens/src/helpers"
	"stock-lens/src/logger"
	"stock-lens/src/models"
)

var errTransport = errors.New("connection reset")

type fakeProvider struct {
	prices   map[string]*models.MRawPriceTable
	priceErr map[string]error
	info     models.MCompanyInfo
	infoErr  error
	income   *models.MStatement
	balance  *models.MStatement
	cashflow *models.MStatement
	calls    []string
}

func (p *fakeProvider) Name() string { return "fake" }

func (p *fakeProvider) FetchPriceHistory(_ context.Context, symbol, _, _ string) (*models.MRawPriceTable, error) {
	p.calls = append(p.calls, symbol)
	if err, ok := p.priceErr[symbol]; ok {
		return nil, helpers.NewProviderFailure("fake", "history", symbol, err)
	}
	return p.prices[symbol], nil
}

func (p *fakeProvider) FetchCompanyInfo(_ context.Context, symbol string) (models.MCompanyInfo, error) {
	if p.infoErr != nil {
		return nil, helpers.NewProviderFailure("fake", "info", symbol, p.infoErr)
	}
	return p.info, nil
}

func (p *fakeProvider) FetchQuarterlyIncomeStatement(context.Context, string) (*models.MStatement, error) {
	return p.income, nil
}

func (p *fakeProvider) FetchQuarterlyBalanceSheet(context.Context, string) (*models.MStatement, error) {
	return p.balance, nil
}

func (p *fakeProvider) FetchQuarterlyCashFlow(context.Context, string) (*models.MStatement, error) {
	return p.cashflow, nil
}

// -----------------------------------------------------------------------------

func testConfig() *models.MConfig {
	return &models.MConfig{
		Name: "test",
		Host: "localhost",
		Port: 8080,
		Provider: models.MProviderConfig{
			Name:     "fake",
			Period:   "6mo",
			Interval: "1d",
		},
		Resolver: models.MResolverConfig{
			Delimiter:       ".",
			PrimarySuffix:   ".TW",
			SecondarySuffix: ".TWO",
		},
		Windows: models.MWindowConfig{MaxPoints: 8, MaxTableRows: 8, MaxTableCols: 12, Transpose: true},
	}
}

func quietLogger() *logger.Logger {
	l := logger.NewLogger(nil, "test")
	l.SetOutput(io.Discard)
	return l
}

// flatPrices builds a flat table with open=high=low=close.
func flatPrices(dates []string, closes []float64) *models.MRawPriceTable {
	raw := &models.MRawOHLCV{Columns: map[string][]any{}}
	for i, d := range dates {
		t, err := time.Parse("2006-01-02", d)
		if err != nil {
			panic(err)
		}
		raw.Index = append(raw.Index, t)
		for _, f := range []string{models.FieldOpen, models.FieldHigh, models.FieldLow, models.FieldClose} {
			raw.Columns[f] = append(raw.Columns[f], closes[i])
		}
		raw.Columns[models.FieldVolume] = append(raw.Columns[models.FieldVolume], int64(1000))
	}
	return &models.MRawPriceTable{Kind: models.PriceTableFlat, Flat: raw}
}

func emptyPrices() *models.MRawPriceTable {
	return &models.MRawPriceTable{
		Kind: models.PriceTableFlat,
		Flat: &models.MRawOHLCV{Columns: map[string][]any{
			models.FieldOpen: {}, models.FieldHigh: {}, models.FieldLow: {}, models.FieldClose: {}, models.FieldVolume: {},
		}},
	}
}
