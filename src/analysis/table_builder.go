package analysis

import (
	"stock-lens/src/analysis/core"
	"stock-lens/src/models"
)

// TableBuilder renders a statement for display.
type TableBuilder struct{}

// -----------------------------------------------------------------------------

// Build reorients and truncates a statement, keeping source order. When
// transpose is set periods become rows and line items become columns.
// A limit <= 0 keeps everything on that axis.
func (b *TableBuilder) Build(stmt *models.MStatement, maxRows, maxCols int, transpose bool) *models.MStatementTable {
	if stmt.IsEmpty() {
		return nil
	}

	labels := make([]string, len(stmt.Rows))
	for i, row := range stmt.Rows {
		labels[i] = row.Label
	}

	if transpose {
		periods := head(stmt.Periods, maxRows)
		rowIdx := head(indexes(len(stmt.Rows)), maxCols)

		table := &models.MStatementTable{
			Columns: make([]string, len(rowIdx)),
			Rows:    make([]models.MTableRow, 0, len(periods)),
		}
		for c, ri := range rowIdx {
			table.Columns[c] = labels[ri]
		}
		for _, period := range periods {
			cells := make([]*float64, len(rowIdx))
			for c, ri := range rowIdx {
				cells[c] = cell(stmt.Rows[ri].Values, period)
			}
			table.Rows = append(table.Rows, models.MTableRow{Period: core.CanonicalPeriod(period), Cells: cells})
		}
		return table
	}

	periods := head(stmt.Periods, maxCols)
	rowIdx := head(indexes(len(stmt.Rows)), maxRows)

	table := &models.MStatementTable{
		Columns: make([]string, len(periods)),
		Rows:    make([]models.MTableRow, 0, len(rowIdx)),
	}
	for c, period := range periods {
		table.Columns[c] = core.CanonicalPeriod(period)
	}
	for _, ri := range rowIdx {
		cells := make([]*float64, len(periods))
		for c, period := range periods {
			cells[c] = cell(stmt.Rows[ri].Values, period)
		}
		table.Rows = append(table.Rows, models.MTableRow{Period: labels[ri], Cells: cells})
	}
	return table
}

// -----------------------------------------------------------------------------

// cell returns nil for an absent or non-finite value.
func cell(values map[string]float64, period string) *float64 {
	v, ok := values[period]
	if !ok || !core.IsFinite(v) {
		return nil
	}
	return &v
}

func head[T any](s []T, n int) []T {
	if n <= 0 || n >= len(s) {
		return s
	}
	return s[:n]
}

func indexes(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
