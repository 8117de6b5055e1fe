package interfaces

import "stock-lens/src/models"

// ILookupRecorder receives lookup outcomes. IDatabase satisfies it.
type ILookupRecorder interface {
	SaveLookup(record models.MLookupRecord) error
}
