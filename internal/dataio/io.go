package dataio

import (
	"fmt"
	"io"
	"os"
)

// IO performs fail-soft loads and saves: failures are reported on Out and
// never returned to the caller.
type IO struct {
	Out io.Writer
}

var std = &IO{Out: os.Stdout}

// LoadData reads path into a Table. On failure it prints a diagnostic and
// returns nil, which callers must check before use.
func (d *IO) LoadData(path string, opts ...ReadOption) *Table {
	t, err := ReadCSV(path, opts...)
	if err != nil {
		fmt.Fprintf(d.out(), "Error loading data: %v\n", err)
		return nil
	}
	return t
}

// SaveData writes t to path without an index column. On failure it prints a
// diagnostic and returns normally.
func (d *IO) SaveData(t *Table, path string, opts ...WriteOption) {
	if err := WriteCSV(t, path, opts...); err != nil {
		fmt.Fprintf(d.out(), "Error saving data: %v\n", err)
		return
	}
	fmt.Fprintf(d.out(), "Data saved to %s\n", path)
}

func (d *IO) out() io.Writer {
	if d == nil || d.Out == nil {
		return os.Stdout
	}
	return d.Out
}

// LoadData is IO.LoadData reporting to standard output.
func LoadData(path string) *Table { return std.LoadData(path) }

// SaveData is IO.SaveData reporting to standard output.
func SaveData(t *Table, path string) { std.SaveData(t, path) }
