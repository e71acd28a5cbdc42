package ana

import (
	"fmt"
	"strings"
	"time"
)

// ColumnKind selects how a column's text is typed after extraction.
type ColumnKind int

const (
	KindText ColumnKind = iota
	KindDate
)

// dateLayouts are the timestamp shapes the service emits across operations.
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"02/01/2006 15:04:05",
	"02/01/2006",
}

// Column renames one source field to an output column.
type Column struct {
	Source   string
	Name     string
	Kind     ColumnKind
	Optional bool
}

// Schema is the per-endpoint element path, column selection and index.
type Schema struct {
	Path    string
	Columns []Column
	Index   string
}

// Fields lists the child elements the extractor must read for this schema.
func (s Schema) Fields() []Field {
	fields := make([]Field, len(s.Columns))
	for i, c := range s.Columns {
		fields[i] = Field{Name: c.Source, Optional: c.Optional}
	}
	return fields
}

func (s Schema) indexColumn() (Column, bool) {
	for _, c := range s.Columns {
		if c.Name == s.Index {
			return c, true
		}
	}
	return Column{}, false
}

// Row is one output row keyed by output column name.
type Row struct {
	values map[string]string
	times  map[string]time.Time
}

// Get returns the text of column, or "" when the column is unknown.
func (r Row) Get(column string) string {
	return r.values[column]
}

// Lookup returns the text of column and whether the row has it.
func (r Row) Lookup(column string) (string, bool) {
	v, ok := r.values[column]
	return v, ok
}

// Time returns the parsed value of a date column. It is false for text
// columns and for date columns whose text was empty.
func (r Row) Time(column string) (time.Time, bool) {
	t, ok := r.times[column]
	return t, ok
}

// Map returns a copy of the row's text values.
func (r Row) Map() map[string]string {
	out := make(map[string]string, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out
}

// Table is a renamed, column-selected set of rows indexed by one column.
// Rows keep the service's document order.
type Table struct {
	columns []string
	index   string
	keys    []string
	rows    []Row
}

// Reshape renames and selects record fields through schema, types the date
// columns and indexes the result. It builds nothing when any row fails.
func Reshape(records []Record, schema Schema) (*Table, error) {
	idxCol, ok := schema.indexColumn()
	if !ok {
		return nil, fmt.Errorf("schema index %q is not one of its columns", schema.Index)
	}

	columns := make([]string, 0, len(schema.Columns)-1)
	for _, c := range schema.Columns {
		if c.Name != schema.Index {
			columns = append(columns, c.Name)
		}
	}

	t := &Table{
		columns: columns,
		index:   schema.Index,
		keys:    make([]string, 0, len(records)),
		rows:    make([]Row, 0, len(records)),
	}

	for i, rec := range records {
		key, ok := rec[idxCol.Source]
		if !ok {
			return nil, fmt.Errorf("%w: row %d has no %q", ErrMissingIndex, i, idxCol.Source)
		}

		row := Row{values: make(map[string]string, len(schema.Columns))}
		for _, c := range schema.Columns {
			text := rec[c.Source]
			row.values[c.Name] = text
			if c.Kind != KindDate || strings.TrimSpace(text) == "" {
				continue
			}
			ts, err := parseDate(text)
			if err != nil {
				return nil, fmt.Errorf("row %d column %s: %w", i, c.Name, err)
			}
			if row.times == nil {
				row.times = make(map[string]time.Time)
			}
			row.times[c.Name] = ts
		}

		t.keys = append(t.keys, key)
		t.rows = append(t.rows, row)
	}
	return t, nil
}

func parseDate(text string) (time.Time, error) {
	text = strings.TrimSpace(text)
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, text); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, text)
}

// Columns returns the non-index output columns in schema order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// Index names the column the table is keyed by.
func (t *Table) Index() string { return t.index }

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Keys returns the index value of every row, in row order.
func (t *Table) Keys() []string {
	out := make([]string, len(t.keys))
	copy(out, t.keys)
	return out
}

// Rows returns the rows in document order.
func (t *Table) Rows() []Row {
	out := make([]Row, len(t.rows))
	copy(out, t.rows)
	return out
}

// Lookup returns the first row whose index equals key. Index values are not
// guaranteed unique by the service.
func (t *Table) Lookup(key string) (Row, bool) {
	for i, k := range t.keys {
		if k == key {
			return t.rows[i], true
		}
	}
	return Row{}, false
}
