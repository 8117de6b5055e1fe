package analysis

import (
	"context"
	"errors"
	"testing"

	"stock-lens/src/helpers"
	"stock-lens/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newResolver(p *fakeProvider) *SymbolResolver {
	return NewSymbolResolver(testConfig(), p, NewPriceNormalizer(), quietLogger())
}

func TestCandidates(t *testing.T) {
	r := newResolver(&fakeProvider{})

	tests := []struct {
		raw  string
		want models.MCandidates
	}{
		{"2330", models.MCandidates{"2330.TW", "2330.TWO", "2330"}},
		{"  aapl ", models.MCandidates{"AAPL.TW", "AAPL.TWO", "AAPL"}},
		{"2330.tw", models.MCandidates{"2330.TW"}},
		{"6488.TWO", models.MCandidates{"6488.TWO"}},
		{"brk.b", models.MCandidates{"BRK.B"}},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := r.Candidates(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCandidatesEmptyTicker(t *testing.T) {
	r := newResolver(&fakeProvider{})
	_, err := r.Candidates("   ")
	assert.ErrorIs(t, err, helpers.ErrValidation)
}

func TestCandidatesDeduplicates(t *testing.T) {
	r := newResolver(&fakeProvider{})
	r.PrimarySuffix = ""
	got, err := r.Candidates("2330")
	require.NoError(t, err)
	assert.Equal(t, models.MCandidates{"2330", "2330.TWO"}, got)
}

func TestResolvePrimaryShortCircuits(t *testing.T) {
	p := &fakeProvider{prices: map[string]*models.MRawPriceTable{
		"2330.TW":  flatPrices([]string{"2024-01-02"}, []float64{600}),
		"2330.TWO": flatPrices([]string{"2024-01-02"}, []float64{1}),
	}}

	res, err := newResolver(p).Resolve(context.Background(), "2330")
	require.NoError(t, err)
	assert.Equal(t, "2330.TW", res.Symbol)
	assert.Equal(t, []string{"2330.TW"}, p.calls)
	assert.Equal(t, []string{"2330.TW"}, res.Tried)
	require.Len(t, res.Prices.Bars, 1)
	assert.Equal(t, 600.0, res.Prices.Bars[0].Close)
}

func TestResolveFallsBackToSecondary(t *testing.T) {
	p := &fakeProvider{prices: map[string]*models.MRawPriceTable{
		"2330.TW":  emptyPrices(),
		"2330.TWO": flatPrices([]string{"2024-01-02"}, []float64{55}),
	}}

	res, err := newResolver(p).Resolve(context.Background(), "2330")
	require.NoError(t, err)
	assert.Equal(t, "2330.TWO", res.Symbol)
	assert.Equal(t, []string{"2330.TW", "2330.TWO"}, p.calls)
}

func TestResolveContinuesAfterProviderError(t *testing.T) {
	p := &fakeProvider{
		priceErr: map[string]error{"AAPL.TW": errTransport, "AAPL.TWO": errTransport},
		prices:   map[string]*models.MRawPriceTable{"AAPL": flatPrices([]string{"2024-01-02"}, []float64{190})},
	}

	res, err := newResolver(p).Resolve(context.Background(), "aapl")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", res.Symbol)
	assert.Equal(t, []string{"AAPL.TW", "AAPL.TWO", "AAPL"}, res.Tried)
}

func TestResolveNotFoundListsCandidates(t *testing.T) {
	p := &fakeProvider{
		priceErr: map[string]error{"XXXX.TWO": errTransport},
		prices:   map[string]*models.MRawPriceTable{"XXXX.TW": emptyPrices()},
	}

	_, err := newResolver(p).Resolve(context.Background(), "XXXX")
	require.Error(t, err)
	assert.ErrorIs(t, err, helpers.ErrNotFound)

	var nf *helpers.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, []string{"XXXX.TW", "XXXX.TWO", "XXXX"}, nf.Candidates)
	assert.Contains(t, helpers.Describe(err), "XXXX.TW, XXXX.TWO, XXXX")
	assert.Equal(t, []string{"XXXX.TW", "XXXX.TWO", "XXXX"}, p.calls)
}

func TestResolveQualifiedTickerSingleCandidate(t *testing.T) {
	p := &fakeProvider{}
	_, err := newResolver(p).Resolve(context.Background(), "2330.tw")
	require.Error(t, err)
	assert.Equal(t, []string{"2330.TW"}, p.calls)
}

func TestResolveCancelledContext(t *testing.T) {
	p := &fakeProvider{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newResolver(p).Resolve(ctx, "2330")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, p.calls)
}
