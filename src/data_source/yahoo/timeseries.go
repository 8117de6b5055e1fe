package yahoo

import (
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode"

	"stock-lens/src/models"

	"github.com/tidwall/gjson"
)

const quarterlyPrefix = "quarterly"

// timeseriesStart is the earliest period requested from the timeseries API.
var timeseriesStart = time.Date(2016, time.December, 31, 0, 0, 0, 0, time.UTC)

// statementKeys lists the timeseries types per statement, in display order.
var statementKeys = map[models.StatementKind][]string{
	models.StatementIncome: {
		"TotalRevenue",
		"OperatingRevenue",
		"CostOfRevenue",
		"GrossProfit",
		"OperatingExpense",
		"OperatingIncome",
		"TotalOperatingIncomeAsReported",
		"PretaxIncome",
		"TaxProvision",
		"NetIncome",
		"NetIncomeCommonStockholders",
		"NetIncomeFromContinuingOperationNetMinorityInterest",
		"BasicEPS",
		"DilutedEPS",
		"EBITDA",
	},
	models.StatementBalance: {
		"TotalAssets",
		"CurrentAssets",
		"CashAndCashEquivalents",
		"Inventory",
		"TotalLiabilitiesNetMinorityInterest",
		"CurrentLiabilities",
		"TotalDebt",
		"StockholdersEquity",
		"TotalEquityGrossMinorityInterest",
	},
	models.StatementCashFlow: {
		"OperatingCashFlow",
		"CashFlowFromContinuingOperatingActivities",
		"InvestingCashFlow",
		"FinancingCashFlow",
		"CapitalExpenditure",
		"FreeCashFlow",
		"EndCashPosition",
	},
}

// -----------------------------------------------------------------------------

// parseTimeseries builds a statement with rows in keys order and periods
// newest first. Types without any reported value are left out.
func parseTimeseries(body []byte, keys []string) (*models.MStatement, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("invalid timeseries json")
	}

	root := gjson.GetBytes(body, "timeseries")
	if errDesc := root.Get("error.description"); errDesc.Exists() {
		return nil, fmt.Errorf("yahoo api error: %s", errDesc.String())
	}

	values := make(map[string]map[string]float64)
	for _, result := range root.Get("result").Array() {
		typ := result.Get("meta.type.0").String()
		key := strings.TrimPrefix(typ, quarterlyPrefix)
		if key == typ {
			continue
		}

		for _, entry := range result.Get(typ).Array() {
			if entry.Type == gjson.Null {
				continue
			}
			date := entry.Get("asOfDate").String()
			raw := entry.Get("reportedValue.raw")
			if date == "" || raw.Type != gjson.Number {
				continue
			}
			if values[key] == nil {
				values[key] = make(map[string]float64)
			}
			values[key][date] = raw.Float()
		}
	}

	stmt := &models.MStatement{}
	seen := make(map[string]bool)
	for _, key := range keys {
		row, ok := values[key]
		if !ok {
			continue
		}
		stmt.Rows = append(stmt.Rows, models.MStatementRow{Label: splitCamel(key), Values: row})
		for date := range row {
			if !seen[date] {
				seen[date] = true
				stmt.Periods = append(stmt.Periods, date)
			}
		}
	}

	// asOfDate is ISO so string order is chronological.
	sort.Sort(sort.Reverse(sort.StringSlice(stmt.Periods)))
	return stmt, nil
}

// -----------------------------------------------------------------------------

// splitCamel turns "NetIncomeCommonStockholders" into
// "Net Income Common Stockholders" and "BasicEPS" into "Basic EPS".
func splitCamel(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				b.WriteRune(' ')
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}
