package sample

import (
	"sort"
	"strconv"
	"strings"
)

// Value is a single metadata cell: either a string or a number.
// Missing cells are not represented by a Value at all; they are simply
// absent from the sample's row.
type Value struct {
	text    string
	num     float64
	numeric bool
}

// String returns a textual value.
func String(s string) Value { return Value{text: s} }

// Number returns a numeric value.
func Number(f float64) Value {
	return Value{text: strconv.FormatFloat(f, 'g', -1, 64), num: f, numeric: true}
}

// ParseValue interprets a raw table cell. Cells that parse as a float become
// numbers, everything else stays text. Surrounding whitespace is dropped.
func ParseValue(raw string) Value {
	raw = strings.TrimSpace(raw)
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return Number(f)
	}
	return String(raw)
}

// IsNumeric reports whether v holds a number.
func (v Value) IsNumeric() bool { return v.numeric }

// Float returns the numeric value; ok is false for text values.
func (v Value) Float() (f float64, ok bool) { return v.num, v.numeric }

// String returns the canonical text form of v. It is also the identity used
// when counting distinct values.
func (v Value) String() string { return v.text }

// Row holds one sample's metadata keyed by column name.
type Row map[string]Value

// Metadata maps sample IDs to their metadata rows.
type Metadata map[ID]Row

// Columns returns the sorted union of column names across all rows.
func (m Metadata) Columns() []string {
	seen := make(map[string]struct{})
	for _, row := range m {
		for col := range row {
			seen[col] = struct{}{}
		}
	}
	cols := make([]string, 0, len(seen))
	for col := range seen {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	return cols
}

// HasColumn reports whether any row carries col.
func (m Metadata) HasColumn(col string) bool {
	for _, row := range m {
		if _, ok := row[col]; ok {
			return true
		}
	}
	return false
}

// Rows returns the rows found for ids, in the order of ids. Samples without
// a row are skipped.
func (m Metadata) Rows(ids []ID) []Row {
	var rows []Row
	for _, id := range ids {
		if row, ok := m[id]; ok {
			rows = append(rows, row)
		}
	}
	return rows
}
