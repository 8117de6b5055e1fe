package core

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComparePeriodsPutsUndatedLabelsLast(t *testing.T) {
	periods := []string{"TTM", "2024-03-31", "FY2023", "2023-12-31T00:00:00Z", "2024/06/30"}
	sort.Slice(periods, func(i, j int) bool { return ComparePeriods(periods[i], periods[j]) < 0 })

	assert.Equal(t, []string{"2023-12-31T00:00:00Z", "2024-03-31", "2024/06/30", "FY2023", "TTM"}, periods)
}

func TestCanonicalPeriod(t *testing.T) {
	assert.Equal(t, "2024-03-31", CanonicalPeriod("2024-03-31T00:00:00Z"))
	assert.Equal(t, "2024-06-30", CanonicalPeriod("20240630"))
	assert.Equal(t, "TTM", CanonicalPeriod("TTM"))
}
