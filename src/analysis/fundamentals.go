package analysis

import (
	"strings"

	"stock-lens/src/analysis/core"
	"stock-lens/src/logger"
	"stock-lens/src/models"
)

// FundamentalsAggregator assembles the fundamentals section of a payload.
type FundamentalsAggregator struct {
	Series    *SeriesBuilder
	MaxPoints int
	Logger    *logger.Logger
}

// -----------------------------------------------------------------------------

func NewFundamentalsAggregator(maxPoints int, log *logger.Logger) *FundamentalsAggregator {
	return &FundamentalsAggregator{
		Series:    &SeriesBuilder{},
		MaxPoints: maxPoints,
		Logger:    log,
	}
}

// -----------------------------------------------------------------------------

// Aggregate builds every catalog metric independently; a missing or failing
// metric is null and does not affect the others.
func (a *FundamentalsAggregator) Aggregate(set models.MStatementSet, info models.MCompanyInfo) models.MFundamentals {
	series := make(map[string][]models.MSeriesPoint, len(FundamentalsCatalog))
	for _, metric := range FundamentalsCatalog {
		series[metric.Name] = a.buildMetric(set.Get(metric.Statement), metric)
	}

	return models.MFundamentals{
		Info:   a.ConvertInfo(info),
		Series: series,
	}
}

// -----------------------------------------------------------------------------

func (a *FundamentalsAggregator) buildMetric(stmt *models.MStatement, metric MetricSpec) (points []models.MSeriesPoint) {
	defer func() {
		if r := recover(); r != nil {
			a.Logger.Error("Metric %s failed: %v", metric.Name, r)
			points = nil
		}
	}()

	if metric.Ratio != nil {
		return a.Series.BuildRatio(stmt, *metric.Ratio, a.MaxPoints)
	}
	return a.Series.Build(stmt, metric.Labels, a.MaxPoints, nil)
}

// -----------------------------------------------------------------------------

// ConvertInfo copies catalog fields, converting fractions to percent.
// Text fields keep non-empty strings; every other field must coerce to a
// finite number or is left out.
func (a *FundamentalsAggregator) ConvertInfo(info models.MCompanyInfo) map[string]any {
	out := make(map[string]any)
	for _, field := range InfoCatalog {
		raw, ok := info[field.Key]
		if !ok || raw == nil {
			continue
		}

		if field.Text {
			if s, isString := raw.(string); isString {
				if s = strings.TrimSpace(s); s != "" {
					out[field.Key] = s
				}
			}
			continue
		}

		v, ok := coerceFloat(raw)
		if !ok {
			continue
		}
		if field.Percent {
			if v, ok = core.FractionToPercent(v); !ok {
				continue
			}
		}
		out[field.Key] = v
	}
	return out
}

// -----------------------------------------------------------------------------

// CompanyName prefers the long name.
func CompanyName(info models.MCompanyInfo) *string {
	for _, key := range []string{"longName", "shortName"} {
		if s, ok := info[key].(string); ok && strings.TrimSpace(s) != "" {
			name := strings.TrimSpace(s)
			return &name
		}
	}
	return nil
}
