package models

import "time"

// PriceTableKind tags the shape of a raw price response.
type PriceTableKind int

const (
	// PriceTableFlat is a single-level table keyed by field only.
	PriceTableFlat PriceTableKind = iota
	// PriceTableMultiSymbol is a two-level (field x symbol) table.
	PriceTableMultiSymbol
)

// Required OHLCV field names.
const (
	FieldOpen   = "Open"
	FieldHigh   = "High"
	FieldLow    = "Low"
	FieldClose  = "Close"
	FieldVolume = "Volume"
)

// RequiredPriceFields lists the columns every price table must carry.
var RequiredPriceFields = []string{FieldOpen, FieldHigh, FieldLow, FieldClose, FieldVolume}

// MRawOHLCV is a provider price table before coercion.
// Columns cells may be nil, float64, int64, json.Number or string.
type MRawOHLCV struct {
	Index   []time.Time
	Columns map[string][]any
}

// MRawPriceTable is the tagged variant returned by a provider.
type MRawPriceTable struct {
	Kind      PriceTableKind
	Flat      *MRawOHLCV
	PerSymbol map[string]*MRawOHLCV
}

// MBar is one normalized trading day.
type MBar struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

// MOHLCVTable is ordered by date ascending with no duplicate dates.
type MOHLCVTable struct {
	Symbol string
	Bars   []MBar
}

// MPriceSummary holds values derived from the tail of a price table.
// A nil field means the value is undefined.
type MPriceSummary struct {
	LastClose     *float64
	LastChange    *float64
	LastChangePct *float64
}
