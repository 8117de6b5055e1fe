package models

// MWatchItem is one line of the watchlist overview.
type MWatchItem struct {
	Code      string   `json:"code"`
	Symbol    string   `json:"symbol"`
	Name      *string  `json:"name"`
	Price     *float64 `json:"price"`
	Change    *float64 `json:"change"`
	ChangePct *float64 `json:"changePct"`
	Error     *string  `json:"error"`
}

// -----------------------------------------------------------------------------
// Watchlist snapshot pushed to websocket clients
// -----------------------------------------------------------------------------

type MWatchlistSnapshot struct {
	Type      string       `json:"type"` // "INITIAL" or "UPDATE"
	Items     []MWatchItem `json:"items"`
	Timestamp int64        `json:"timestamp"`
}

// MSubscribeCommand for client messages
type MSubscribeCommand struct {
	Command string   `json:"command"`
	Symbols []string `json:"symbols"`
}
