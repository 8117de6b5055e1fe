package analysis

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"stock-lens/src/analysis/core"
	"stock-lens/src/helpers"
	"stock-lens/src/models"
)

// PriceNormalizer coerces provider price tables into canonical bars.
type PriceNormalizer struct {
	Places int32
}

// -----------------------------------------------------------------------------

func NewPriceNormalizer() *PriceNormalizer {
	return &PriceNormalizer{Places: core.PricePlaces}
}

// -----------------------------------------------------------------------------

type datedBar struct {
	at  time.Time
	bar models.MBar
}

// Normalize flattens, validates, coerces and orders a raw price table.
func (n *PriceNormalizer) Normalize(raw *models.MRawPriceTable, symbol string) (*models.MOHLCVTable, error) {
	if raw == nil {
		return nil, helpers.NewEmptyResultError(symbol)
	}

	// 1. Flatten
	var flat *models.MRawOHLCV
	switch raw.Kind {
	case models.PriceTableFlat:
		flat = raw.Flat
	case models.PriceTableMultiSymbol:
		slice, ok := raw.PerSymbol[symbol]
		if !ok {
			return nil, helpers.NewNotFoundError(fmt.Sprintf("%s: not present in multi-symbol table", symbol), nil)
		}
		flat = slice
	default:
		return nil, fmt.Errorf("%s: unknown price table kind %d", symbol, raw.Kind)
	}
	if flat == nil {
		return nil, helpers.NewEmptyResultError(symbol)
	}

	// 2. Required fields
	var missing []string
	for _, field := range models.RequiredPriceFields {
		if _, ok := flat.Columns[field]; !ok {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return nil, helpers.NewIncompleteDataError(symbol, missing)
	}

	// 3. Row-level all-or-nothing coercion
	rows := make([]datedBar, 0, len(flat.Index))
	for i, at := range flat.Index {
		bar, ok := n.coerceRow(flat, i)
		if !ok {
			continue
		}
		bar.Date = at.Format(core.DateLayout)
		rows = append(rows, datedBar{at: at, bar: bar})
	}

	// 4. Empty
	if len(rows) == 0 {
		return nil, helpers.NewEmptyResultError(symbol)
	}

	// 5. Ascending, last row wins on a repeated date
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].at.Before(rows[j].at) })

	bars := make([]models.MBar, 0, len(rows))
	for _, r := range rows {
		if len(bars) > 0 && bars[len(bars)-1].Date == r.bar.Date {
			bars[len(bars)-1] = r.bar
			continue
		}
		bars = append(bars, r.bar)
	}

	return &models.MOHLCVTable{Symbol: symbol, Bars: bars}, nil
}

// -----------------------------------------------------------------------------

func (n *PriceNormalizer) coerceRow(flat *models.MRawOHLCV, i int) (models.MBar, bool) {
	var values [5]float64
	for k, field := range models.RequiredPriceFields {
		col := flat.Columns[field]
		if i >= len(col) {
			return models.MBar{}, false
		}
		v, ok := coerceFloat(col[i])
		if !ok {
			return models.MBar{}, false
		}
		values[k] = v
	}

	return models.MBar{
		Open:   core.Round(values[0], n.Places),
		High:   core.Round(values[1], n.Places),
		Low:    core.Round(values[2], n.Places),
		Close:  core.Round(values[3], n.Places),
		Volume: int64(math.Round(values[4])),
	}, true
}

// -----------------------------------------------------------------------------

// Summarize derives last close and day-over-day change from the tail.
func (n *PriceNormalizer) Summarize(table *models.MOHLCVTable) models.MPriceSummary {
	var summary models.MPriceSummary
	if table == nil || len(table.Bars) == 0 {
		return summary
	}

	bars := table.Bars
	last := bars[len(bars)-1].Close
	summary.LastClose = &last

	if len(bars) < 2 {
		return summary
	}

	prev := bars[len(bars)-2].Close
	change, pct := core.CalculateChange(last, prev)
	summary.LastChange = &change
	summary.LastChangePct = pct
	return summary
}

// -----------------------------------------------------------------------------

// coerceFloat accepts the cell types a provider table may carry.
func coerceFloat(v any) (float64, bool) {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int64:
		f = float64(x)
	case json.Number:
		parsed, err := x.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(x), ",", "")
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	return f, core.IsFinite(f)
}
