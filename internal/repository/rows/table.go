// Package rows reads and writes the CSV row formats of the pipeline.
// All output is UTF-8 with a leading byte-order mark; readers require
// a header row, address cells by column name, and ignore unknown
// columns.
package rows

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/lexikit/packgen/internal/domain"
)

const bom = "\ufeff"

// Table is a parsed CSV file: a header and name-addressable records.
type Table struct {
	header  []string
	columns map[string]int
	records []map[string]string
}

// Read parses a CSV document. The header row is required; a BOM is
// tolerated and stripped. Short rows are padded with empty cells.
func Read(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, domain.ErrMissingHeader
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], bom)
	}

	t := &Table{header: header, columns: make(map[string]int, len(header))}
	for i, name := range header {
		name = strings.TrimSpace(strings.ToLower(name))
		header[i] = name
		if name == "" {
			return nil, fmt.Errorf("%w: empty column name at %d", domain.ErrMissingHeader, i)
		}
		t.columns[name] = i
	}

	for {
		cells, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(t.records)+2, err)
		}
		rec := make(map[string]string, len(header))
		for name, idx := range t.columns {
			if idx < len(cells) {
				rec[name] = cells[idx]
			}
		}
		t.records = append(t.records, rec)
	}
	return t, nil
}

// Header returns the lowercased column names in file order.
func (t *Table) Header() []string { return t.header }

// HasColumn reports whether the named column exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.columns[strings.ToLower(name)]
	return ok
}

// Records returns the rows as name-addressable maps.
func (t *Table) Records() []map[string]string { return t.records }

// Writer emits BOM-prefixed CSV with a header row.
type Writer struct {
	cw     *csv.Writer
	header []string
}

// NewWriter writes the BOM and header immediately.
func NewWriter(w io.Writer, header []string) (*Writer, error) {
	if _, err := io.WriteString(w, bom); err != nil {
		return nil, fmt.Errorf("write bom: %w", err)
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	return &Writer{cw: cw, header: header}, nil
}

// Write emits one row.
func (w *Writer) Write(cells []string) error {
	if len(cells) != len(w.header) {
		return fmt.Errorf("row has %d cells, header has %d", len(cells), len(w.header))
	}
	if err := w.cw.Write(cells); err != nil {
		return fmt.Errorf("write row: %w", err)
	}
	return nil
}

// Flush completes the document.
func (w *Writer) Flush() error {
	w.cw.Flush()
	if err := w.cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
