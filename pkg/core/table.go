package core

import (
	"fmt"
	"slices"
)

// InfoColumn is the reserved raw-payload column name. It carries the
// exchange's original record verbatim and is dropped during normalization,
// never exposed downstream.
const InfoColumn = "info"

// Table is a flat, column-oriented container: a set of named columns of
// equal length, one row per logical record. Column order is preserved.
type Table struct {
	cols []string
	data map[string][]Value
	rows int
}

// NewTable creates an empty table with zero columns and zero rows.
func NewTable() *Table {
	return &Table{data: make(map[string][]Value)}
}

// AddColumn appends a named column. The first column fixes the row count;
// every subsequent column must match it. Adding a duplicate column name or
// a column of mismatched length returns an error.
func (t *Table) AddColumn(name string, values []Value) error {
	if _, exists := t.data[name]; exists {
		return fmt.Errorf("column %q already exists", name)
	}
	if len(t.cols) > 0 && len(values) != t.rows {
		return fmt.Errorf("column %q has %d values, table has %d rows", name, len(values), t.rows)
	}
	t.cols = append(t.cols, name)
	t.data[name] = values
	t.rows = len(values)
	return nil
}

// SetColumn replaces the values of an existing column, or appends a new
// column when the name is not present.
func (t *Table) SetColumn(name string, values []Value) error {
	if _, exists := t.data[name]; !exists {
		return t.AddColumn(name, values)
	}
	if len(values) != t.rows {
		return fmt.Errorf("column %q has %d values, table has %d rows", name, len(values), t.rows)
	}
	t.data[name] = values
	return nil
}

// DropColumn removes a column by name. Dropping an absent column is a no-op.
func (t *Table) DropColumn(name string) {
	if _, exists := t.data[name]; !exists {
		return
	}
	delete(t.data, name)
	for i, c := range t.cols {
		if c == name {
			t.cols = append(t.cols[:i], t.cols[i+1:]...)
			break
		}
	}
	if len(t.cols) == 0 {
		t.rows = 0
	}
}

// Columns returns the column names in order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.cols))
	copy(out, t.cols)
	return out
}

// HasColumn reports whether the named column exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.data[name]
	return ok
}

// Column returns the values of the named column.
func (t *Table) Column(name string) ([]Value, bool) {
	v, ok := t.data[name]
	return v, ok
}

// Cell returns the value at the given column and row.
func (t *Table) Cell(name string, row int) (Value, bool) {
	col, ok := t.data[name]
	if !ok || row < 0 || row >= len(col) {
		return Nil(), false
	}
	return col[row], true
}

// NumRows returns the row count.
func (t *Table) NumRows() int {
	return t.rows
}

// NumColumns returns the column count.
func (t *Table) NumColumns() int {
	return len(t.cols)
}

// Row materializes a single row as an ordered mapping of column name to
// cell value.
func (t *Table) Row(i int) *Mapping {
	m := NewMapping()
	for _, c := range t.cols {
		m.Set(c, t.data[c][i])
	}
	return m
}

// Clone returns a deep copy of the table structure. Cell values are shared;
// they are immutable by convention.
func (t *Table) Clone() *Table {
	out := NewTable()
	for _, c := range t.cols {
		vals := make([]Value, len(t.data[c]))
		copy(vals, t.data[c])
		out.cols = append(out.cols, c)
		out.data[c] = vals
	}
	out.rows = t.rows
	return out
}

// Equal reports whether two tables hold identical columns, order, and values.
func (t *Table) Equal(other *Table) bool {
	if t.rows != other.rows || !slices.Equal(t.cols, other.cols) {
		return false
	}
	for _, c := range t.cols {
		a, b := t.data[c], other.data[c]
		for i := range a {
			if !a[i].Equal(b[i]) {
				return false
			}
		}
	}
	return true
}

// Concat vertically concatenates tables holding the same column set into a
// single table. Column order follows the first table.
func Concat(tables ...*Table) (*Table, error) {
	if len(tables) == 0 {
		return NewTable(), nil
	}
	first := tables[0]
	out := NewTable()
	for _, c := range first.cols {
		var vals []Value
		for _, t := range tables {
			col, ok := t.data[c]
			if !ok {
				return nil, fmt.Errorf("column %q missing from concatenated table", c)
			}
			vals = append(vals, col...)
		}
		if err := out.AddColumn(c, vals); err != nil {
			return nil, err
		}
	}
	for _, t := range tables[1:] {
		if len(t.cols) != len(first.cols) {
			return nil, fmt.Errorf("concatenated tables have mismatched column sets")
		}
	}
	return out, nil
}

// Repeat builds a column of n copies of v, used when broadcasting metadata
// onto every row of a table.
func Repeat(v Value, n int) []Value {
	out := make([]Value, n)
	for i := range out {
		out[i] = v
	}
	return out
}
