// Package tabread provides streaming row readers over the spreadsheet
// formats the master code importer accepts: CSV, XLSX and XLSB. All cells
// are surfaced as untyped strings; interpretation belongs to the
// normalizer.
package tabread

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned by Open for file extensions outside
// {csv, xlsx, xlsb}. It fails fast, before any store mutation.
var ErrUnsupportedFormat = errors.New("unsupported file format: only .csv, .xlsx, .xlsb are supported")

// ErrNoHeader is returned by Open when the source has no header row at
// all (zero-byte file or empty sheet).
var ErrNoHeader = errors.New("missing header row")

// Reader streams one tabular source row by row.
type Reader interface {
	// Columns returns the header row, as read from the first line/row.
	Columns() []string
	// Read returns the next data row aligned to Columns: short rows are
	// padded with empty cells, and cells beyond the header width are
	// dropped (headerless trailing cells have no column name to live
	// under). Returns io.EOF when exhausted.
	Read() ([]string, error)
	Close() error
}

// Ext returns the lowercased extension of filename without the dot.
func Ext(filename string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
}

// Open dispatches on the file extension and returns a streaming Reader.
// sheet selects the worksheet for Excel sources (name or zero-based index,
// empty means first sheet) and is ignored for CSV.
//
// XLSB is accepted by the extension gate but shares the Excel reader;
// binary workbooks that the reader cannot open surface as a parse error,
// not as ErrUnsupportedFormat.
func Open(path, sheet string) (Reader, error) {
	switch Ext(path) {
	case "csv":
		return openCSV(path)
	case "xlsx", "xlsb":
		return openExcel(path, sheet)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(path))
	}
}

// alignRow pads or truncates row to exactly n cells.
func alignRow(row []string, n int) []string {
	if len(row) == n {
		return row
	}
	out := make([]string, n)
	copy(out, row)
	return out
}
