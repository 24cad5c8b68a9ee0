package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/gyeh/clinsam/internal/mapping"
)

func TestLoadAliases_EmptyPathReturnsDefaults(t *testing.T) {
	var c Config
	aliases, err := c.LoadAliases()
	if err != nil {
		t.Fatalf("LoadAliases: %v", err)
	}
	if !reflect.DeepEqual(aliases, mapping.DefaultAliases) {
		t.Error("expected the built-in alias table unchanged")
	}
}

func TestLoadAliases_OverrideMergesOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "aliases.yaml")
	os.WriteFile(path, []byte("price:\n  - 청구금액\n  - 단가\n"), 0644)

	c := Config{AliasFile: path}
	aliases, err := c.LoadAliases()
	if err != nil {
		t.Fatalf("LoadAliases: %v", err)
	}
	if !reflect.DeepEqual(aliases[mapping.FieldPrice], []string{"청구금액", "단가"}) {
		t.Errorf("price aliases = %v, want the override list", aliases[mapping.FieldPrice])
	}
	if !reflect.DeepEqual(aliases[mapping.FieldCode], mapping.DefaultAliases[mapping.FieldCode]) {
		t.Error("unlisted fields must keep their defaults")
	}
}

func TestLoadAliases_MissingFile(t *testing.T) {
	c := Config{AliasFile: "/nonexistent/aliases.yaml"}
	if _, err := c.LoadAliases(); err == nil {
		t.Fatal("expected error for missing alias file")
	}
}

func TestValidateImport(t *testing.T) {
	file := filepath.Join(t.TempDir(), "m.csv")
	os.WriteFile(file, []byte("x\n"), 0644)

	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{FilePath: file, Category: "ACT"}, false},
		{"missing file flag", Config{Category: "ACT"}, true},
		{"nonexistent file", Config{FilePath: "/nope.csv", Category: "ACT"}, true},
		{"bad category", Config{FilePath: file, Category: "FOO"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.ValidateImport(); (err != nil) != tt.wantErr {
				t.Errorf("ValidateImport() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateExport(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"note mode", Config{OutPath: "out", NoteID: 7}, false},
		{"range mode", Config{OutPath: "out", DateFrom: "2024-01-01", DateTo: "2024-01-31"}, false},
		{"missing out", Config{NoteID: 7}, true},
		{"note and range together", Config{OutPath: "out", NoteID: 7, DateFrom: "2024-01-01", DateTo: "2024-01-31"}, true},
		{"half a range", Config{OutPath: "out", DateFrom: "2024-01-01"}, true},
		{"neither mode", Config{OutPath: "out"}, true},
		{"bad date", Config{OutPath: "out", DateFrom: "01/01/2024", DateTo: "2024-01-31"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.ValidateExport(); (err != nil) != tt.wantErr {
				t.Errorf("ValidateExport() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestExportRange(t *testing.T) {
	c := Config{DateFrom: "2024-01-01", DateTo: "2024-01-31"}
	from, to, err := c.ExportRange()
	if err != nil {
		t.Fatalf("ExportRange: %v", err)
	}
	if from.Day() != 1 || to.Day() != 31 {
		t.Errorf("range = %v..%v", from, to)
	}

	c = Config{DateFrom: "bogus", DateTo: "2024-01-31"}
	if _, _, err := c.ExportRange(); err == nil {
		t.Error("expected error for unparseable --from")
	}
	c = Config{DateFrom: "2024-01-01", DateTo: "bogus"}
	if _, _, err := c.ExportRange(); err == nil {
		t.Error("expected error for unparseable --to")
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-03-05")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if d.Year() != 2024 || d.Month() != 3 || d.Day() != 5 {
		t.Errorf("parsed %v", d)
	}
	if _, err := ParseDate("2024-3-5"); err == nil {
		t.Error("expected error for non-padded date")
	}
}
