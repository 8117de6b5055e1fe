package yahoo

import (
	"encoding/json"
	"fmt"
	"time"
	_ "time/tzdata" // exchange zones on hosts without zoneinfo

	"stock-lens/src/models"
)

type YahooChartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Currency             string  `json:"currency"`
				Symbol               string  `json:"symbol"`
				ExchangeName         string  `json:"exchangeName"`
				InstrumentType       string  `json:"instrumentType"`
				Gmtoffset            int     `json:"gmtoffset"`
				Timezone             string  `json:"timezone"`
				ExchangeTimezoneName string  `json:"exchangeTimezoneName"`
				RegularMarketPrice   float64 `json:"regularMarketPrice"`
				ChartPreviousClose   float64 `json:"chartPreviousClose"`
				DataGranularity      string  `json:"dataGranularity"`
				Range                string  `json:"range"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					High   []*float64 `json:"high"` // null when the exchange skipped a bar
					Low    []*float64 `json:"low"`
					Open   []*float64 `json:"open"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// -----------------------------------------------------------------------------

// parseChartResponse maps a chart payload onto a flat raw table. Null cells
// stay nil; coercion and row filtering belong to the normalizer.
func parseChartResponse(symbol string, data []byte) (*models.MRawPriceTable, error) {
	var resp YahooChartResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("json unmarshal failed: %w", err)
	}

	if resp.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s - %s", resp.Chart.Error.Code, resp.Chart.Error.Description)
	}

	if len(resp.Chart.Result) == 0 {
		return nil, fmt.Errorf("no result in response for %s", symbol)
	}

	result := resp.Chart.Result[0]
	loc := exchangeLocation(result.Meta.ExchangeTimezoneName, result.Meta.Gmtoffset)

	raw := &models.MRawOHLCV{
		Index:   make([]time.Time, len(result.Timestamp)),
		Columns: map[string][]any{},
	}
	for i, ts := range result.Timestamp {
		raw.Index[i] = time.Unix(ts, 0).In(loc)
	}

	// No quote block means the fields are missing, not empty.
	if len(result.Indicators.Quote) > 0 {
		quote := result.Indicators.Quote[0]
		raw.Columns[models.FieldOpen] = cells(quote.Open)
		raw.Columns[models.FieldHigh] = cells(quote.High)
		raw.Columns[models.FieldLow] = cells(quote.Low)
		raw.Columns[models.FieldClose] = cells(quote.Close)
		raw.Columns[models.FieldVolume] = cells(quote.Volume)
	}

	return &models.MRawPriceTable{Kind: models.PriceTableFlat, Flat: raw}, nil
}

// -----------------------------------------------------------------------------

func cells(values []*float64) []any {
	out := make([]any, len(values))
	for i, v := range values {
		if v != nil {
			out[i] = *v
		}
	}
	return out
}

// -----------------------------------------------------------------------------

func exchangeLocation(name string, gmtoffset int) *time.Location {
	if name != "" {
		if loc, err := time.LoadLocation(name); err == nil {
			return loc
		}
	}
	return time.FixedZone("exchange", gmtoffset)
}
