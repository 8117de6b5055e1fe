package models

// StatementKind names one of the quarterly reports.
type StatementKind string

const (
	StatementIncome   StatementKind = "income"
	StatementBalance  StatementKind = "balance"
	StatementCashFlow StatementKind = "cashflow"
)

// MStatementRow is one line item. A period missing from Values is an
// absent cell; a non-finite value is a cell the provider could not parse.
type MStatementRow struct {
	Label  string
	Values map[string]float64
}

// MStatement is a line-item-major quarterly report.
type MStatement struct {
	Periods []string
	Rows    []MStatementRow
}

// IsEmpty reports whether there is nothing to display.
func (s *MStatement) IsEmpty() bool {
	return s == nil || len(s.Rows) == 0 || len(s.Periods) == 0
}

// MStatementSet groups the three reports fetched for one symbol.
type MStatementSet struct {
	Income   *MStatement
	Balance  *MStatement
	CashFlow *MStatement
}

// Get returns the statement of the given kind.
func (s MStatementSet) Get(kind StatementKind) *MStatement {
	switch kind {
	case StatementIncome:
		return s.Income
	case StatementBalance:
		return s.Balance
	case StatementCashFlow:
		return s.CashFlow
	}
	return nil
}

// MRatioSpec derives a series by dividing two located rows.
type MRatioSpec struct {
	Numerator   []string
	Denominator []string
	AsPercent   bool
}

// MSeriesPoint is one chart point. Value is always finite.
type MSeriesPoint struct {
	Period string  `json:"period"`
	Value  float64 `json:"value"`
}

// MTableRow holds the cells of one display row; nil cells have no value.
type MTableRow struct {
	Period string     `json:"period"`
	Cells  []*float64 `json:"cells"`
}

// MStatementTable is the display form of a statement.
type MStatementTable struct {
	Columns []string    `json:"columns"`
	Rows    []MTableRow `json:"rows"`
}
