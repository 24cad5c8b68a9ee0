package tabread

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestExt(t *testing.T) {
	tests := map[string]string{
		"codes.csv":       "csv",
		"CODES.XLSX":      "xlsx",
		"a/b/codes.xlsb":  "xlsb",
		"noext":           "",
		"weird.tar.gz":    "gz",
	}
	for in, want := range tests {
		if got := Ext(in); got != want {
			t.Errorf("Ext(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestOpen_UnsupportedFormat(t *testing.T) {
	path := writeTempFile(t, "codes.txt", "code,name\n")

	_, err := Open(path, "")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestOpenCSV_ReadsHeaderAndRows(t *testing.T) {
	path := writeTempFile(t, "codes.csv",
		"코드,명칭,단가\nA100,진찰료,\"15,500\"\nB200,주사료,9000\n")

	r, err := Open(path, "")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer r.Close()

	if !reflect.DeepEqual(r.Columns(), []string{"코드", "명칭", "단가"}) {
		t.Errorf("columns = %v", r.Columns())
	}

	row, err := r.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !reflect.DeepEqual(row, []string{"A100", "진찰료", "15,500"}) {
		t.Errorf("row 1 = %v", row)
	}

	if _, err := r.Read(); err != nil {
		t.Fatalf("Read row 2: %v", err)
	}
	if _, err := r.Read(); err != io.EOF {
		t.Fatalf("err = %v, want io.EOF", err)
	}
}

func TestOpenCSV_RaggedRowsAligned(t *testing.T) {
	path := writeTempFile(t, "ragged.csv", "a,b,c\n1,2\n1,2,3,4\n")

	r, err := Open(path, "")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer r.Close()

	row, err := r.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !reflect.DeepEqual(row, []string{"1", "2", ""}) {
		t.Errorf("row = %v, want short row padded to header width", row)
	}

	row, err = r.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !reflect.DeepEqual(row, []string{"1", "2", "3"}) {
		t.Errorf("row = %v, want cells beyond the header width dropped", row)
	}
}

func TestOpenCSV_NoHeader(t *testing.T) {
	path := writeTempFile(t, "empty.csv", "")

	_, err := Open(path, "")
	if !errors.Is(err, ErrNoHeader) {
		t.Fatalf("err = %v, want ErrNoHeader", err)
	}
}

func writeXLSXFixture(t *testing.T, rows [][]string) string {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		for j, cell := range row {
			name, _ := excelize.CoordinatesToCellName(j+1, i+1)
			if err := f.SetCellStr(sheet, name, cell); err != nil {
				t.Fatalf("set cell: %v", err)
			}
		}
	}
	path := filepath.Join(t.TempDir(), "fixture.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save xlsx: %v", err)
	}
	return path
}

func TestOpenXLSX_ReadsSheet(t *testing.T) {
	path := writeXLSXFixture(t, [][]string{
		{"코드", "명칭", "단가"},
		{"A100", "진찰료", "15,500"},
		{"B200", "주사료", "9000"},
	})

	r, err := Open(path, "")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer r.Close()

	if !reflect.DeepEqual(r.Columns(), []string{"코드", "명칭", "단가"}) {
		t.Errorf("columns = %v", r.Columns())
	}

	var rows [][]string
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Read: %v", err)
		}
		rows = append(rows, row)
	}
	if len(rows) != 2 {
		t.Fatalf("read %d data rows, want 2", len(rows))
	}
	if rows[0][0] != "A100" || rows[1][2] != "9000" {
		t.Errorf("rows = %v", rows)
	}
}

func TestOpenXLSX_SheetSelection(t *testing.T) {
	path := writeXLSXFixture(t, [][]string{{"code"}, {"X1"}})

	if _, err := Open(path, "0"); err != nil {
		t.Errorf("open by index 0: %v", err)
	}
	if _, err := Open(path, "Sheet1"); err != nil {
		t.Errorf("open by name: %v", err)
	}
	if _, err := Open(path, "5"); err == nil {
		t.Error("expected error for out-of-range sheet index")
	}
	if _, err := Open(path, "Nope"); err == nil {
		t.Error("expected error for unknown sheet name")
	}
}

func TestOpenXLSB_AcceptedButUnreadableSurfacesParseError(t *testing.T) {
	// The extension gate accepts .xlsb; an actual binary workbook fails at
	// open with a parse error, not ErrUnsupportedFormat.
	path := writeTempFile(t, "codes.xlsb", "not a real workbook")

	_, err := Open(path, "")
	if err == nil {
		t.Fatal("expected parse error")
	}
	if errors.Is(err, ErrUnsupportedFormat) {
		t.Fatal("xlsb must pass the extension gate")
	}
}
