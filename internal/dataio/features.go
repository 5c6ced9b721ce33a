package dataio

import (
	"fmt"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// XY splits t into a numeric feature matrix and a binary label vector.
// Columns named in drop are skipped. Every remaining column must be numeric
// and every label must be 0 or 1.
func XY(t *Table, label string, drop []string) (*mat.Dense, []int, []string, error) {
	if t == nil {
		return nil, nil, nil, ErrNilTable
	}
	li := t.ColumnIndex(label)
	if li < 0 {
		return nil, nil, nil, fmt.Errorf("label column %q not found", label)
	}
	if t.NumRows() == 0 {
		return nil, nil, nil, fmt.Errorf("table has no rows")
	}
	skip := map[int]bool{li: true}
	for _, d := range drop {
		if d = strings.TrimSpace(d); d == "" {
			continue
		}
		j := t.ColumnIndex(d)
		if j < 0 {
			return nil, nil, nil, fmt.Errorf("drop column %q not found", d)
		}
		skip[j] = true
	}
	var cols []int
	var names []string
	for j, c := range t.Columns {
		if skip[j] {
			continue
		}
		cols = append(cols, j)
		names = append(names, c)
	}
	if len(cols) == 0 {
		return nil, nil, nil, fmt.Errorf("no feature columns left after dropping %v", drop)
	}

	n := t.NumRows()
	X := mat.NewDense(n, len(cols), nil)
	y := make([]int, n)
	for i, row := range t.Rows {
		lv, err := parseLabel(row[li])
		if err != nil {
			return nil, nil, nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		y[i] = lv
		for k, j := range cols {
			v, err := strconv.ParseFloat(strings.TrimSpace(row[j]), 64)
			if err != nil {
				return nil, nil, nil, fmt.Errorf("row %d: feature %q: %q is not numeric", i+1, t.Columns[j], row[j])
			}
			X.Set(i, k, v)
		}
	}
	return X, y, names, nil
}

func parseLabel(s string) (int, error) {
	v := strings.TrimSpace(s)
	switch strings.ToLower(v) {
	case "true":
		return 1, nil
	case "false":
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || (f != 0 && f != 1) {
		return 0, fmt.Errorf("label %q is not 0 or 1", s)
	}
	return int(f), nil
}
