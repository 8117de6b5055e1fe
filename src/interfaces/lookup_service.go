package interfaces

import (
	"context"

	"stock-lens/src/models"
)

// -----------------------------------------------------------------------------
// ILookupService is the lookup pipeline as seen by the transports (HTTP, gRPC).
// -----------------------------------------------------------------------------

type ILookupService interface {

	// Lookup never fails; resolution errors are reported in the payload.
	Lookup(ctx context.Context, raw string) *models.MLookupPayload

	// Table renders one quarterly statement for display.
	Table(ctx context.Context, raw string, kind models.StatementKind, maxRows, maxCols int, transpose bool) (*models.MStatementTable, error)
}

// -----------------------------------------------------------------------------
// IWatchlist exposes the overview snapshot and on-demand refresh.
// -----------------------------------------------------------------------------

type IWatchlist interface {
	Snapshot() *models.MWatchlistSnapshot
	Refresh(ctx context.Context) *models.MWatchlistSnapshot
}
