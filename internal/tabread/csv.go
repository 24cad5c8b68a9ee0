package tabread

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// csvReader streams a CSV file, first record treated as the header.
type csvReader struct {
	file    *os.File
	reader  *csv.Reader
	columns []string
}

func openCSV(path string) (*csvReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // master files are ragged in the wild

	header, err := r.Read()
	if err == io.EOF {
		f.Close()
		return nil, fmt.Errorf("read csv header: %w", ErrNoHeader)
	}
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	return &csvReader{file: f, reader: r, columns: header}, nil
}

func (r *csvReader) Columns() []string { return r.columns }

func (r *csvReader) Read() ([]string, error) {
	rec, err := r.reader.Read()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, fmt.Errorf("read csv row: %w", err)
	}
	return alignRow(rec, len(r.columns)), nil
}

func (r *csvReader) Close() error { return r.file.Close() }
