package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/JonMunkholm/datatable/internal/datatable"
)

// ErrNoHeader is returned for CSV input without a header row.
var ErrNoHeader = errors.New("csv has no header row")

// CSVTable is a CSV file decoded into records.
type CSVTable struct {
	Keys    []string // Column keys derived from the header, in file order
	Headers []string // Header cells as written
	Rows    []datatable.Record
}

// Columns returns one sortable column per header.
func (t *CSVTable) Columns() []datatable.Column[datatable.Record] {
	cols := make([]datatable.Column[datatable.Record], len(t.Keys))
	for i, key := range t.Keys {
		cols[i] = datatable.MapColumn(key, t.Headers[i], true)
	}
	return cols
}

// ReadCSV decodes CSV from r. A UTF-8 BOM is skipped and invalid UTF-8 is
// replaced before parsing. Cells are typed with ParseCell; short rows leave
// the missing fields nil.
func ReadCSV(r io.Reader) (*CSVTable, error) {
	decoded := transform.NewReader(r, unicode.UTF8BOM.NewDecoder())

	cr := csv.NewReader(decoded)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	t := &CSVTable{
		Keys:    make([]string, len(header)),
		Headers: make([]string, len(header)),
	}
	seen := make(map[string]int)
	for i, h := range header {
		h = CleanCell(h)
		if h == "" {
			h = fmt.Sprintf("Column %d", i+1)
		}
		base := ColumnKey(h)
		if base == "" {
			base = fmt.Sprintf("col_%d", i+1)
		}
		key := base
		if n := seen[base]; n > 0 {
			key = fmt.Sprintf("%s_%d", base, n+1)
		}
		seen[base]++
		t.Keys[i] = key
		t.Headers[i] = h
	}

	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", line, err)
		}

		row := make(datatable.Record, len(t.Keys))
		for i, key := range t.Keys {
			if i < len(rec) {
				row[key] = ParseCell(rec[i])
			} else {
				row[key] = nil
			}
		}
		t.Rows = append(t.Rows, row)
	}

	return t, nil
}

// ReadCSVFile opens and decodes path.
func ReadCSVFile(path string) (*CSVTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return t, nil
}

// ColumnKey converts a header like "Sales Amount" to "sales_amount".
func ColumnKey(header string) string {
	var b strings.Builder
	underscore := false
	for _, r := range strings.ToLower(strings.TrimSpace(header)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			underscore = false
		case b.Len() > 0 && !underscore:
			b.WriteByte('_')
			underscore = true
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}
