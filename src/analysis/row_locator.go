package analysis

import (
	"fmt"
	"strings"

	"stock-lens/src/helpers"
	"stock-lens/src/models"
)

// ErrRowNotFound is returned when no accepted label names a statement row.
var ErrRowNotFound = fmt.Errorf("statement row %w", helpers.ErrNotFound)

// -----------------------------------------------------------------------------

// LocateRow returns the row named by the first label, in caller order, that
// the statement carries.
func LocateRow(stmt *models.MStatement, labels []string) (*models.MStatementRow, error) {
	if stmt == nil {
		return nil, notFoundRow(labels)
	}

	index := make(map[string]int, len(stmt.Rows))
	for i, row := range stmt.Rows {
		if _, dup := index[row.Label]; !dup {
			index[row.Label] = i
		}
	}

	for _, label := range labels {
		if i, ok := index[label]; ok {
			return &stmt.Rows[i], nil
		}
	}
	return nil, notFoundRow(labels)
}

func notFoundRow(labels []string) error {
	return &helpers.NotFoundError{
		StockLensError: helpers.StockLensError{
			Message: fmt.Sprintf("no row among [%s]", strings.Join(labels, ", ")),
			Cause:   ErrRowNotFound,
		},
	}
}
