package interfaces

import "stock-lens/src/models"

// -----------------------------------------------------------------------------
// IDatabase defines the contract for the lookup outcome log.
// -----------------------------------------------------------------------------

type IDatabase interface {

	// -----------------------------------------------------------------------------

	// Initialize sets up the database schema and tables.
	Initialize() error

	// -----------------------------------------------------------------------------

	// SaveLookup appends one lookup outcome.
	SaveLookup(record models.MLookupRecord) error

	// -----------------------------------------------------------------------------

	// RecentLookups returns the latest outcomes, newest first.
	RecentLookups(limit int) ([]models.MLookupRecord, error)

	// -----------------------------------------------------------------------------

	// CleanupOldData removes outcomes older than the retention policy.
	CleanupOldData() error

	// -----------------------------------------------------------------------------

	// Close the database connection
	Close() error
}
