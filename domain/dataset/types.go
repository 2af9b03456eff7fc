package dataset

import (
	"math"

	"sixsigma/domain/core"
)

// Table is a column-oriented dataset handed to the quality engine.
// Row order is preserved: control charts treat it as time sequence.
type Table struct {
	Name    string
	Columns []string
	Rows    int

	// Numeric holds parsed numeric columns; cells that failed to parse
	// are NaN. Text holds everything else verbatim.
	Numeric map[string][]float64
	Text    map[string][]string
}

// NewTable creates an empty table with the given name.
func NewTable(name string) *Table {
	return &Table{
		Name:    name,
		Numeric: make(map[string][]float64),
		Text:    make(map[string][]string),
	}
}

// NumericColumn returns the non-NaN values of a column in row order.
func (t *Table) NumericColumn(name string) ([]float64, error) {
	raw, ok := t.Numeric[name]
	if !ok {
		return nil, core.ErrColumnNotFound
	}
	values := make([]float64, 0, len(raw))
	for _, v := range raw {
		if !math.IsNaN(v) {
			values = append(values, v)
		}
	}
	return values, nil
}

// IntColumn returns a numeric column rounded to integers, for defect
// and opportunity counts.
func (t *Table) IntColumn(name string) ([]int, error) {
	values, err := t.NumericColumn(name)
	if err != nil {
		return nil, err
	}
	ints := make([]int, len(values))
	for i, v := range values {
		ints[i] = int(math.Round(v))
	}
	return ints, nil
}

// NumericColumns lists the columns that parsed as numeric.
func (t *Table) NumericColumns() []string {
	names := make([]string, 0, len(t.Numeric))
	for _, col := range t.Columns {
		if _, ok := t.Numeric[col]; ok {
			names = append(names, col)
		}
	}
	return names
}
