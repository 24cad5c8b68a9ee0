package tabread

import (
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// excelReader streams one worksheet of an Excel workbook.
type excelReader struct {
	file    *excelize.File
	rows    *excelize.Rows
	columns []string
}

func openExcel(path, sheet string) (*excelReader, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}

	name, err := resolveSheet(f, sheet)
	if err != nil {
		f.Close()
		return nil, err
	}

	rows, err := f.Rows(name)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("open sheet %q: %w", name, err)
	}

	if !rows.Next() {
		rows.Close()
		f.Close()
		return nil, fmt.Errorf("sheet %q: %w", name, ErrNoHeader)
	}
	header, err := rows.Columns()
	if err != nil {
		rows.Close()
		f.Close()
		return nil, fmt.Errorf("read header row: %w", err)
	}

	return &excelReader{file: f, rows: rows, columns: header}, nil
}

// resolveSheet accepts a sheet name or a zero-based index; empty selects
// the first sheet.
func resolveSheet(f *excelize.File, sheet string) (string, error) {
	list := f.GetSheetList()
	if len(list) == 0 {
		return "", fmt.Errorf("workbook has no sheets")
	}
	if sheet == "" {
		return list[0], nil
	}
	if idx, err := strconv.Atoi(sheet); err == nil {
		if idx < 0 || idx >= len(list) {
			return "", fmt.Errorf("sheet index %d out of range (workbook has %d sheets)", idx, len(list))
		}
		return list[idx], nil
	}
	for _, name := range list {
		if name == sheet {
			return name, nil
		}
	}
	return "", fmt.Errorf("sheet %q not found", sheet)
}

func (r *excelReader) Columns() []string { return r.columns }

func (r *excelReader) Read() ([]string, error) {
	if !r.rows.Next() {
		if err := r.rows.Error(); err != nil {
			return nil, fmt.Errorf("read sheet row: %w", err)
		}
		return nil, io.EOF
	}
	row, err := r.rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read sheet row: %w", err)
	}
	return alignRow(row, len(r.columns)), nil
}

func (r *excelReader) Close() error {
	if err := r.rows.Close(); err != nil {
		r.file.Close()
		return err
	}
	return r.file.Close()
}
