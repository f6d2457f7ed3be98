package profiling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rehabengine/domain/dataset"
)

func TestSummarizeTable(t *testing.T) {
	tbl := &dataset.Table{
		Name:    "inmate_profiles",
		Headers: []string{"inmate_id", "behavior_score", "parole_eligibility_date"},
		Rows: [][]string{
			{"INM000000", "40", "2026-01-01"},
			{"INM000001", "60", ""},
			{"INM000002", "80", "2026-03-01"},
		},
	}

	summary := SummarizeTable(tbl)
	assert.Equal(t, 3, summary.RowCount)
	require.Len(t, summary.Columns, 3)

	id := summary.Columns[0]
	assert.False(t, id.Numeric)
	assert.Equal(t, 3, id.DistinctCount)

	behavior := summary.Columns[1]
	require.True(t, behavior.Numeric)
	assert.InDelta(t, 60.0, *behavior.Mean, 1e-9)
	assert.InDelta(t, 60.0, *behavior.Median, 1e-9)
	assert.InDelta(t, 40.0, *behavior.Min, 1e-9)
	assert.InDelta(t, 80.0, *behavior.Max, 1e-9)

	dates := summary.Columns[2]
	assert.False(t, dates.Numeric)
	assert.Equal(t, 2, dates.NonEmpty)
}

func TestSummarizeEmptyColumnNotNumeric(t *testing.T) {
	tbl := &dataset.Table{
		Name:    "t",
		Headers: []string{"empty"},
		Rows:    [][]string{{""}, {""}},
	}

	summary := SummarizeTable(tbl)
	assert.False(t, summary.Columns[0].Numeric)
	assert.Nil(t, summary.Columns[0].Mean)
}
