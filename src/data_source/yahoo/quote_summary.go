package yahoo

import (
	"context"
	"fmt"
	"strings"

	"stock-lens/src/models"

	"github.com/tidwall/gjson"
)

// quoteSummaryModules are merged in this order; the first module to
// report a field wins.
var quoteSummaryModules = []string{
	"price",
	"summaryDetail",
	"defaultKeyStatistics",
	"financialData",
	"assetProfile",
}

// -----------------------------------------------------------------------------

func (s *YahooFinanceSource) fetchQuoteSummary(ctx context.Context, symbol string) (models.MCompanyInfo, error) {
	var body []byte
	for attempt := 0; attempt < 2; attempt++ {
		crumb, err := s.session.get(ctx)
		if err != nil {
			return nil, err
		}

		params := map[string]string{
			"modules": strings.Join(quoteSummaryModules, ","),
			"crumb":   crumb,
		}
		body, err = s.Network.Get(ctx, s.endpoint("/v10/finance/quoteSummary/%s", symbol), params)
		if err == nil {
			break
		}
		if !isUnauthorized(err) || attempt == 1 {
			return nil, err
		}
		s.Logger.Info("Crumb rejected, refreshing session")
		s.session.invalidate()
	}

	return parseQuoteSummary(body)
}

// -----------------------------------------------------------------------------

// parseQuoteSummary flattens module fields. Formatted numbers
// ({"raw": 1, "fmt": "1"}) keep their raw value; empty objects are dropped.
func parseQuoteSummary(body []byte) (models.MCompanyInfo, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("invalid quoteSummary json")
	}

	root := gjson.GetBytes(body, "quoteSummary")
	if errDesc := root.Get("error.description"); errDesc.Exists() {
		return nil, fmt.Errorf("yahoo api error: %s", errDesc.String())
	}

	result := root.Get("result.0")
	if !result.Exists() {
		return nil, fmt.Errorf("empty quoteSummary result")
	}

	info := models.MCompanyInfo{}
	for _, module := range quoteSummaryModules {
		result.Get(module).ForEach(func(key, value gjson.Result) bool {
			name := key.String()
			if _, taken := info[name]; taken {
				return true
			}
			if v, ok := scalar(value); ok {
				info[name] = v
			}
			return true
		})
	}
	return info, nil
}

// -----------------------------------------------------------------------------

func scalar(value gjson.Result) (any, bool) {
	switch value.Type {
	case gjson.Number:
		return value.Float(), true
	case gjson.String:
		return value.String(), true
	case gjson.True, gjson.False:
		return value.Bool(), true
	case gjson.JSON:
		if raw := value.Get("raw"); raw.Type == gjson.Number {
			return raw.Float(), true
		}
	}
	return nil, false
}
