package database

import (
	"bytes"
	"encoding/json"
)

// Row is a single result row. Column order is the order reported by the
// result metadata and is preserved when marshalled to JSON.
type Row struct {
	columns []string
	values  []any
}

// NewRow pairs column names with values. Both slices must have the same length.
func NewRow(columns []string, values []any) Row {
	return Row{columns: columns, values: values}
}

// Columns returns the column names in result order
func (r Row) Columns() []string {
	return r.columns
}

// Values returns the column values in result order
func (r Row) Values() []any {
	return r.values
}

// Get returns the value of the named column
func (r Row) Get(column string) (any, bool) {
	for i, c := range r.columns {
		if c == column {
			return r.values[i], true
		}
	}
	return nil, false
}

// String returns the named column as a string, or "" when absent or not a string
func (r Row) String(column string) string {
	v, _ := r.Get(column)
	s, _ := v.(string)
	return s
}

// MarshalJSON writes the row as an object with keys in column order
func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, column := range r.columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(column)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(r.values[i])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// RowSet is an ordered sequence of rows
type RowSet []Row
