// Package feature turns dataset rows into ordered numeric vectors for the
// prediction tasks, and derives the training labels the offline models were
// fit against. Rows may come from the generator or from uploaded files; both
// use the same string-keyed representation.
package feature

import (
	"fmt"
	"strconv"

	"rehabengine/domain/core"
)

// Row is one table row keyed by column name. Values are strings as rendered
// or uploaded.
type Row map[string]string

// Float parses a named column as float64.
func (r Row) Float(name string) (float64, error) {
	raw, ok := r[name]
	if !ok || raw == "" {
		return 0, core.NewMissingFeatureError(name)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not numeric", core.ErrMissingFeature, name, raw)
	}
	return v, nil
}

// Column describes one position in a task's feature vector.
type Column struct {
	Name     string
	Optional bool    // missing value falls back to Default instead of erroring
	Default  float64 // used only when Optional
	Min, Max float64 // inclusive bounds, applied only when HasRange
	HasRange bool
	// Encode maps a categorical raw value to a numeric code. When set it
	// replaces float parsing for this column.
	Encode func(raw string) (float64, error)
}

// Spec is a task's ordered feature layout. Column order is part of the model
// artifact contract and must not change between training and scoring.
type Spec struct {
	Task    Task
	Columns []Column
}

// Names returns the column names in vector order.
func (s Spec) Names() []string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name
	}
	return names
}

// Vector extracts the task's ordered feature vector from a row. A missing or
// non-numeric required column is a validation error; a missing optional
// column takes its documented default. Out-of-range values are rejected.
func (s Spec) Vector(row Row) ([]float64, error) {
	out := make([]float64, len(s.Columns))
	for i, col := range s.Columns {
		raw, present := row[col.Name]
		if !present || raw == "" {
			if !col.Optional {
				return nil, core.NewMissingFeatureError(col.Name)
			}
			out[i] = col.Default
			continue
		}

		var v float64
		var err error
		if col.Encode != nil {
			v, err = col.Encode(raw)
		} else {
			v, err = row.Float(col.Name)
		}
		if err != nil {
			return nil, err
		}
		if col.HasRange && (v < col.Min || v > col.Max) {
			return nil, core.NewOutOfRangeError(col.Name, v, col.Min, col.Max)
		}
		out[i] = v
	}
	return out, nil
}
