package analysis

import (
	"sort"

	"stock-lens/src/analysis/core"
	"stock-lens/src/models"
)

// SeriesBuilder extracts chart series from statements.
type SeriesBuilder struct{}

// -----------------------------------------------------------------------------

// Build extracts the numerator row as a series, optionally divided by
// ratio.Denominator. It returns nil when the metric is absent or empty;
// returned values are always finite and ascending by period.
func (b *SeriesBuilder) Build(stmt *models.MStatement, numerator []string, maxPoints int, ratio *models.MRatioSpec) []models.MSeriesPoint {
	if maxPoints <= 0 {
		return nil
	}

	// 1. Numerator
	num, err := LocateRow(stmt, numerator)
	if err != nil {
		return nil
	}

	// 2. Periods with a numerator value
	points := make([]models.MSeriesPoint, 0, len(num.Values))
	for _, period := range sortedPeriods(num.Values) {
		v := num.Values[period]
		if !core.IsFinite(v) {
			continue
		}
		points = append(points, models.MSeriesPoint{Period: period, Value: v})
	}

	// 3-4. Ratio restricted to the numerator's periods
	if ratio != nil && len(ratio.Denominator) > 0 {
		den, err := LocateRow(stmt, ratio.Denominator)
		if err != nil {
			return nil
		}

		kept := points[:0]
		for _, p := range points {
			d, ok := den.Values[p.Period]
			if !ok {
				continue
			}
			q, ok := core.Ratio(p.Value, d, ratio.AsPercent)
			if !ok {
				continue
			}
			kept = append(kept, models.MSeriesPoint{Period: p.Period, Value: q})
		}
		points = kept
	}

	// 5. Canonical periods; a repeated period keeps the later value
	merged := make([]models.MSeriesPoint, 0, len(points))
	for _, p := range points {
		if !core.IsFinite(p.Value) {
			continue
		}
		period := core.CanonicalPeriod(p.Period)
		if n := len(merged); n > 0 && merged[n-1].Period == period {
			merged[n-1].Value = p.Value
			continue
		}
		merged = append(merged, models.MSeriesPoint{Period: period, Value: p.Value})
	}

	// 6. Trailing window
	out := merged
	if len(out) > maxPoints {
		out = out[len(out)-maxPoints:]
	}

	// 7. Built but empty is absent
	if len(out) == 0 {
		return nil
	}
	return out
}

// -----------------------------------------------------------------------------

// BuildRatio builds the series described entirely by spec.
func (b *SeriesBuilder) BuildRatio(stmt *models.MStatement, spec models.MRatioSpec, maxPoints int) []models.MSeriesPoint {
	return b.Build(stmt, spec.Numerator, maxPoints, &spec)
}

// -----------------------------------------------------------------------------

func sortedPeriods(values map[string]float64) []string {
	periods := make([]string, 0, len(values))
	for p := range values {
		periods = append(periods, p)
	}
	sort.Slice(periods, func(i, j int) bool {
		return core.ComparePeriods(periods[i], periods[j]) < 0
	})
	return periods
}
