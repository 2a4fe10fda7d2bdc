// Package landing reads the per-entity snapshots written by ingestion and
// exposes them as schema-inferred tables of loosely typed records.
package landing

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
)

// Record is one landing row keyed by column name. Values are nil, string,
// bool, json.Number or a Go numeric type.
type Record map[string]any

// Table is the landing view of one entity.
type Table struct {
	Entity  string
	Columns []string // sorted
	Rows    []Record

	seen map[string]struct{}
}

// NewTable builds a table from rows, inferring columns from their keys.
func NewTable(entity string, rows ...Record) *Table {
	t := &Table{Entity: entity}
	for _, r := range rows {
		t.Append(r)
	}
	return t
}

// Append adds a row and registers any new columns.
func (t *Table) Append(r Record) {
	if t.seen == nil {
		t.seen = make(map[string]struct{})
	}
	added := false
	for k := range r {
		if _, ok := t.seen[k]; !ok {
			t.seen[k] = struct{}{}
			t.Columns = append(t.Columns, k)
			added = true
		}
	}
	if added {
		sort.Strings(t.Columns)
	}
	t.Rows = append(t.Rows, r)
}

// Empty reports whether the table is structurally empty (no columns).
func (t *Table) Empty() bool {
	return t == nil || len(t.Columns) == 0
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// HasColumn reports whether name is one of the table's columns.
func (t *Table) HasColumn(name string) bool {
	if t == nil {
		return false
	}
	_, ok := t.seen[name]
	return ok
}

// ---- Value coercion ----

// String returns v as a string. Numbers are formatted; nil and other types
// report false.
func String(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case json.Number:
		return x.String(), true
	case int:
		return strconv.Itoa(x), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	}
	return "", false
}

// Float returns v as a float64 when it is numeric.
func Float(v any) (float64, bool) {
	switch x := v.(type) {
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	}
	return 0, false
}

// Int returns v as an int when it is an integral number.
func Int(v any) (int, bool) {
	switch x := v.(type) {
	case int:
		return x, true
	case int64:
		return int(x), true
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return int(n), true
		}
	}
	f, ok := Float(v)
	if !ok || f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int(f), true
}

// IsNull reports whether a column value counts as missing.
func IsNull(v any) bool {
	if v == nil {
		return true
	}
	if f, ok := v.(float64); ok && math.IsNaN(f) {
		return true
	}
	return false
}
