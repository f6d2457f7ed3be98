// Package profiling computes per-column summary statistics for rendered
// dataset tables.
package profiling

import (
	"strconv"

	"github.com/montanaflynn/stats"

	"rehabengine/domain/dataset"
)

// ColumnSummary describes one column of a table. Numeric fields are nil for
// non-numeric columns.
type ColumnSummary struct {
	Name          string   `json:"name"`
	Count         int      `json:"count"`
	NonEmpty      int      `json:"non_empty"`
	DistinctCount int      `json:"distinct_count"`
	Numeric       bool     `json:"numeric"`
	Mean          *float64 `json:"mean,omitempty"`
	Median        *float64 `json:"median,omitempty"`
	StdDev        *float64 `json:"std_dev,omitempty"`
	Min           *float64 `json:"min,omitempty"`
	Max           *float64 `json:"max,omitempty"`
}

// TableSummary is the profile of one table.
type TableSummary struct {
	Table    string          `json:"table"`
	RowCount int             `json:"row_count"`
	Columns  []ColumnSummary `json:"columns"`
}

// SummarizeTable profiles every column. A column counts as numeric when all
// its non-empty values parse as floats and at least one value is present.
func SummarizeTable(t *dataset.Table) TableSummary {
	summary := TableSummary{
		Table:    t.Name,
		RowCount: len(t.Rows),
		Columns:  make([]ColumnSummary, 0, len(t.Headers)),
	}

	for col, name := range t.Headers {
		cs := ColumnSummary{Name: name, Count: len(t.Rows)}

		distinct := make(map[string]bool)
		values := make([]float64, 0, len(t.Rows))
		numeric := true
		for _, row := range t.Rows {
			v := row[col]
			if v == "" {
				continue
			}
			cs.NonEmpty++
			distinct[v] = true
			if numeric {
				f, err := strconv.ParseFloat(v, 64)
				if err != nil {
					numeric = false
					continue
				}
				values = append(values, f)
			}
		}
		cs.DistinctCount = len(distinct)
		cs.Numeric = numeric && len(values) > 0

		if cs.Numeric {
			data := stats.Float64Data(values)
			if mean, err := data.Mean(); err == nil {
				cs.Mean = &mean
			}
			if median, err := data.Median(); err == nil {
				cs.Median = &median
			}
			if sd, err := data.StandardDeviation(); err == nil {
				cs.StdDev = &sd
			}
			if min, err := data.Min(); err == nil {
				cs.Min = &min
			}
			if max, err := data.Max(); err == nil {
				cs.Max = &max
			}
		}

		summary.Columns = append(summary.Columns, cs)
	}

	return summary
}

// SummarizeSnapshot profiles every table in generation order.
func SummarizeSnapshot(s *dataset.Snapshot) []TableSummary {
	out := make([]TableSummary, 0, len(dataset.TableNames))
	for _, name := range dataset.TableNames {
		if t, ok := s.Tables[name]; ok {
			out = append(out, SummarizeTable(t))
		}
	}
	return out
}
