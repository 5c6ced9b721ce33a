package dataio

import (
	"strconv"
	"strings"
)

// Column kinds reported by Table.Kinds.
const (
	KindNumeric = "numeric"
	KindText    = "text"
)

// Table is an in-memory dataset with named columns and ordered rows.
// Cells keep their original text so a load/save round trip is lossless.
type Table struct {
	Columns []string
	Rows    [][]string
}

// NumRows returns the number of data rows (header excluded).
func (t *Table) NumRows() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// NumCols returns the number of columns.
func (t *Table) NumCols() int {
	if t == nil {
		return 0
	}
	return len(t.Columns)
}

// ColumnIndex returns the position of the named column, or -1.
// Matching is exact first, then case-insensitive.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	for i, c := range t.Columns {
		if strings.EqualFold(strings.TrimSpace(c), strings.TrimSpace(name)) {
			return i
		}
	}
	return -1
}

// Column returns a copy of the cells in the named column.
func (t *Table) Column(name string) ([]string, bool) {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return nil, false
	}
	out := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row[idx]
	}
	return out, true
}

// Kinds infers a kind per column: numeric when every non-empty cell parses
// as a float and at least one cell is present, text otherwise.
func (t *Table) Kinds() []string {
	kinds := make([]string, len(t.Columns))
	for j := range t.Columns {
		seen := 0
		numeric := true
		for _, row := range t.Rows {
			v := strings.TrimSpace(row[j])
			if v == "" {
				continue
			}
			seen++
			if _, err := strconv.ParseFloat(v, 64); err != nil {
				numeric = false
				break
			}
		}
		if numeric && seen > 0 {
			kinds[j] = KindNumeric
		} else {
			kinds[j] = KindText
		}
	}
	return kinds
}

// Head returns up to n leading rows.
func (t *Table) Head(n int) [][]string {
	if n > len(t.Rows) {
		n = len(t.Rows)
	}
	if n < 0 {
		n = 0
	}
	return t.Rows[:n]
}

// Subset returns a new table holding the given rows in the given order.
// Row slices are shared with the receiver.
func (t *Table) Subset(rows []int) *Table {
	out := &Table{Columns: append([]string(nil), t.Columns...), Rows: make([][]string, len(rows))}
	for i, r := range rows {
		out.Rows[i] = t.Rows[r]
	}
	return out
}

// Equal reports whether both tables have identical columns and cells.
func (t *Table) Equal(o *Table) bool {
	if t == nil || o == nil {
		return t == o
	}
	if len(t.Columns) != len(o.Columns) || len(t.Rows) != len(o.Rows) {
		return false
	}
	for i := range t.Columns {
		if t.Columns[i] != o.Columns[i] {
			return false
		}
	}
	for i := range t.Rows {
		if len(t.Rows[i]) != len(o.Rows[i]) {
			return false
		}
		for j := range t.Rows[i] {
			if t.Rows[i][j] != o.Rows[i][j] {
				return false
			}
		}
	}
	return true
}
