package analysis

import (
	"math"
	"testing"

	"stock-lens/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func incomeStatement() *models.MStatement {
	return &models.MStatement{
		Periods: []string{"2024-06-30", "2024-03-31", "2023-12-31"},
		Rows: []models.MStatementRow{
			{Label: "Total Revenue", Values: map[string]float64{"2024-06-30": 300, "2024-03-31": 200, "2023-12-31": 100}},
			{Label: "Gross Profit", Values: map[string]float64{"2024-06-30": 150, "2024-03-31": math.NaN()}},
			{Label: "Net Income", Values: map[string]float64{"2024-06-30": 50, "2024-03-31": 40, "2023-12-31": 30}},
		},
	}
}

func TestTableTransposed(t *testing.T) {
	table := (&TableBuilder{}).Build(incomeStatement(), 2, 2, true)
	require.NotNil(t, table)

	assert.Equal(t, []string{"Total Revenue", "Gross Profit"}, table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "2024-06-30", table.Rows[0].Period)
	assert.Equal(t, "2024-03-31", table.Rows[1].Period)

	require.Len(t, table.Rows[0].Cells, 2)
	assert.Equal(t, 300.0, *table.Rows[0].Cells[0])
	assert.Equal(t, 150.0, *table.Rows[0].Cells[1])
	assert.Nil(t, table.Rows[1].Cells[1])
}

func TestTableUntransposed(t *testing.T) {
	table := (&TableBuilder{}).Build(incomeStatement(), 3, 3, false)
	require.NotNil(t, table)

	assert.Equal(t, []string{"2024-06-30", "2024-03-31", "2023-12-31"}, table.Columns)
	require.Len(t, table.Rows, 3)
	assert.Equal(t, "Gross Profit", table.Rows[1].Period)
	assert.Nil(t, table.Rows[1].Cells[1])
	assert.Nil(t, table.Rows[1].Cells[2])
	assert.Equal(t, 30.0, *table.Rows[2].Cells[2])
}

func TestTableNoLimitKeepsEverything(t *testing.T) {
	table := (&TableBuilder{}).Build(incomeStatement(), 0, 0, true)
	require.NotNil(t, table)
	assert.Len(t, table.Columns, 3)
	assert.Len(t, table.Rows, 3)
}

func TestTableEmptyStatement(t *testing.T) {
	b := &TableBuilder{}
	assert.Nil(t, b.Build(nil, 8, 12, true))
	assert.Nil(t, b.Build(&models.MStatement{}, 8, 12, true))
}
