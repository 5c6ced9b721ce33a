package dataio

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/KaramelBytes/fraudeval/internal/utils"
	"go.uber.org/zap"
)

// ErrNilTable is returned when a nil table is passed to a write.
var ErrNilTable = errors.New("no table to save")

// IOError is a recoverable data-access failure from ReadCSV or WriteCSV.
type IOError struct {
	Op   string // load|save
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e == nil || e.Err == nil {
		return "data io error"
	}
	return e.Err.Error()
}

func (e *IOError) Unwrap() error { return e.Err }

type readOptions struct {
	delim rune
}

// ReadOption customizes ReadCSV.
type ReadOption func(*readOptions)

// WithDelimiter forces the field delimiter instead of sniffing it from the file name.
func WithDelimiter(r rune) ReadOption {
	return func(o *readOptions) { o.delim = r }
}

// WriteOption customizes WriteCSV.
type WriteOption func(*readOptions)

// WithOutputDelimiter sets the delimiter used by WriteCSV.
func WithOutputDelimiter(r rune) WriteOption {
	return func(o *readOptions) { o.delim = r }
}

// ReadCSV reads a delimited file with a header row into a Table.
func ReadCSV(path string, opts ...ReadOption) (*Table, error) {
	o := readOptions{}
	for _, fn := range opts {
		fn(&o)
	}
	if o.delim == 0 {
		o.delim = DelimiterFor(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Op: "load", Path: path, Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = o.delim
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &IOError{Op: "load", Path: path, Err: fmt.Errorf("%s: no columns to parse from file", path)}
		}
		return nil, &IOError{Op: "load", Path: path, Err: fmt.Errorf("read header: %w", err)}
	}
	if len(header) == 1 && strings.TrimSpace(header[0]) == "" {
		return nil, &IOError{Op: "load", Path: path, Err: fmt.Errorf("%s: no columns to parse from file", path)}
	}
	// Excel-exported files may carry a UTF-8 BOM on the first header cell.
	header[0] = strings.TrimPrefix(header[0], "\ufeff")
	ncol := len(header)
	t := &Table{Columns: append([]string(nil), header...)}
	for line := 2; ; line++ {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, &IOError{Op: "load", Path: path, Err: fmt.Errorf("read row %d: %w", line-1, err)}
		}
		switch {
		case len(rec) > ncol:
			return nil, &IOError{Op: "load", Path: path, Err: fmt.Errorf("line %d: expected %d fields, saw %d", line, ncol, len(rec))}
		case len(rec) < ncol:
			tmp := make([]string, ncol)
			copy(tmp, rec)
			rec = tmp
		}
		t.Rows = append(t.Rows, rec)
	}
	zap.L().Debug("loaded table", zap.String("path", path), zap.Int("rows", t.NumRows()), zap.Int("cols", t.NumCols()))
	return t, nil
}

// WriteCSV writes the table with its header and without a row-index column.
// The file is replaced atomically.
func WriteCSV(t *Table, path string, opts ...WriteOption) error {
	if t == nil {
		return &IOError{Op: "save", Path: path, Err: ErrNilTable}
	}
	o := readOptions{}
	for _, fn := range opts {
		fn(&o)
	}
	if o.delim == 0 {
		o.delim = DelimiterFor(path)
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = o.delim
	if err := writeRecord(w, &buf, t.Columns); err != nil {
		return &IOError{Op: "save", Path: path, Err: fmt.Errorf("write header: %w", err)}
	}
	for i, row := range t.Rows {
		if len(row) != len(t.Columns) {
			return &IOError{Op: "save", Path: path, Err: fmt.Errorf("row %d has %d fields, header has %d", i+1, len(row), len(t.Columns))}
		}
		if err := writeRecord(w, &buf, row); err != nil {
			return &IOError{Op: "save", Path: path, Err: fmt.Errorf("write row %d: %w", i+1, err)}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return &IOError{Op: "save", Path: path, Err: fmt.Errorf("flush csv: %w", err)}
	}
	if err := utils.SafeWriteFile(path, buf.Bytes()); err != nil {
		return &IOError{Op: "save", Path: path, Err: err}
	}
	zap.L().Debug("saved table", zap.String("path", path), zap.Int("rows", t.NumRows()))
	return nil
}

// writeRecord writes rec through w. csv.Writer emits a lone empty field as a
// blank line, which csv.Reader skips, so that record is quoted by hand.
func writeRecord(w *csv.Writer, buf *bytes.Buffer, rec []string) error {
	if len(rec) != 1 || rec[0] != "" {
		return w.Write(rec)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	if w.UseCRLF {
		buf.WriteString("\"\"\r\n")
	} else {
		buf.WriteString("\"\"\n")
	}
	return nil
}

// DelimiterFor returns the delimiter implied by the file extension: tab for
// .tsv and .tab, comma otherwise.
func DelimiterFor(path string) rune {
	name := strings.ToLower(path)
	if strings.HasSuffix(name, ".tsv") || strings.HasSuffix(name, ".tab") {
		return '\t'
	}
	return ','
}
