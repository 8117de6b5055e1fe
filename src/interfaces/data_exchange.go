package interfaces

import "stock-lens/src/models"

// -----------------------------------------------------------------------------
// IDataExchanger shares watchlist snapshots with external listeners (Server/Push).
// -----------------------------------------------------------------------------

type IDataExchanger interface {
	// Broadcast pushes a snapshot to connected listeners and stores it.
	Broadcast(snapshot *models.MWatchlistSnapshot)

	// UpdateAllDatas updates the internal state without broadcasting
	UpdateAllDatas(snapshot *models.MWatchlistSnapshot)

	// Start the server
	Start() error

	// Stop the server gracefully
	Stop() error
}
