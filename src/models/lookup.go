package models

import "time"

// MCompanyInfo holds descriptive and valuation fields as returned by the provider.
type MCompanyInfo map[string]any

// MCandidates is the ordered, duplicate-free list of symbols derived from a ticker.
type MCandidates []string

// MResolution is the outcome of a successful symbol resolution.
type MResolution struct {
	Symbol     string
	Candidates MCandidates
	Tried      []string
	Prices     *MOHLCVTable
}

// MFundamentals is the fundamentals section of a lookup payload.
type MFundamentals struct {
	Info   map[string]any            `json:"info"`
	Series map[string][]MSeriesPoint `json:"series"`
}

// -----------------------------------------------------------------------------
// Lookup payload consumed by the rendering layer
// -----------------------------------------------------------------------------

type MLookupPayload struct {
	Symbol        string        `json:"symbol"`
	Error         *string       `json:"error"`
	Bars          []MBar        `json:"bars"`
	LastClose     *float64      `json:"lastClose"`
	LastChange    *float64      `json:"lastChange"`
	LastChangePct *float64      `json:"lastChangePct"`
	CompanyName   *string       `json:"companyName"`
	Fundamentals  MFundamentals `json:"fundamentals"`
}

// MLookupRecord is one row of the lookup outcome log.
type MLookupRecord struct {
	ID         string    `json:"id"`
	RawTicker  string    `json:"raw_ticker"`
	Symbol     string    `json:"symbol"`
	Candidates []string  `json:"candidates"`
	Error      string    `json:"error"`
	CreatedAt  time.Time `json:"created_at"`
}
