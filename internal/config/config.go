package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gyeh/clinsam/internal/mapping"
	"github.com/gyeh/clinsam/internal/model"
)

// DefaultProviderID is used when no provider id is configured. It is a
// placeholder, not a real billing identifier.
const DefaultProviderID = "11111111"

// Config holds all runtime configuration for a samload run.
type Config struct {
	DSN        string
	LogFormat  string // "text" or "json"
	ProviderID string

	// import / plan
	FilePath  string
	Sheet     string
	Category  string
	AliasFile string
	BatchSize int

	// export
	OutPath  string
	NoteID   int64
	DateFrom string
	DateTo   string
}

// aliasFile is the on-disk YAML structure for alias-table overrides.
// Fields left empty fall back to the built-in alias lists.
type aliasFile struct {
	Code         []string `yaml:"code"`
	Name         []string `yaml:"name"`
	Price        []string `yaml:"price"`
	Unit         []string `yaml:"unit"`
	CategoryHint []string `yaml:"category_hint"`
}

// LoadAliases reads the alias override file and merges it over the
// defaults. An empty path returns the defaults unchanged.
func (c *Config) LoadAliases() (map[string][]string, error) {
	if c.AliasFile == "" {
		return mapping.DefaultAliases, nil
	}

	data, err := os.ReadFile(c.AliasFile)
	if err != nil {
		return nil, fmt.Errorf("read alias file: %w", err)
	}
	var af aliasFile
	if err := yaml.Unmarshal(data, &af); err != nil {
		return nil, fmt.Errorf("parse alias file: %w", err)
	}

	aliases := make(map[string][]string, len(mapping.DefaultAliases))
	for field, defaults := range mapping.DefaultAliases {
		aliases[field] = defaults
	}
	for field, override := range map[string][]string{
		mapping.FieldCode:         af.Code,
		mapping.FieldName:         af.Name,
		mapping.FieldPrice:        af.Price,
		mapping.FieldUnit:         af.Unit,
		mapping.FieldCategoryHint: af.CategoryHint,
	} {
		if len(override) > 0 {
			aliases[field] = override
		}
	}
	return aliases, nil
}

// ValidateImport checks the fields the import and plan commands need.
func (c *Config) ValidateImport() error {
	if c.FilePath == "" {
		return fmt.Errorf("--file is required")
	}
	if _, err := os.Stat(c.FilePath); err != nil {
		return fmt.Errorf("file not accessible: %w", err)
	}
	if !model.ValidCategory(c.Category) {
		return fmt.Errorf("invalid category %q (want one of ACT, DRG, DX, ETC)", c.Category)
	}
	return nil
}

// ValidateExport checks the export invocation: exactly one of --note or a
// full --from/--to range, plus an output path.
func (c *Config) ValidateExport() error {
	if c.OutPath == "" {
		return fmt.Errorf("--out is required")
	}
	hasRange := c.DateFrom != "" || c.DateTo != ""
	if c.NoteID != 0 && hasRange {
		return fmt.Errorf("--note and --from/--to are mutually exclusive")
	}
	if c.NoteID == 0 {
		if c.DateFrom == "" || c.DateTo == "" {
			return fmt.Errorf("--note or both --from and --to must be provided")
		}
		if _, err := ParseDate(c.DateFrom); err != nil {
			return fmt.Errorf("--from: %w", err)
		}
		if _, err := ParseDate(c.DateTo); err != nil {
			return fmt.Errorf("--to: %w", err)
		}
	}
	return nil
}

// ExportRange parses the configured --from/--to dates. Only meaningful in
// range mode (NoteID unset).
func (c *Config) ExportRange() (time.Time, time.Time, error) {
	from, err := ParseDate(c.DateFrom)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("--from: %w", err)
	}
	to, err := ParseDate(c.DateTo)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("--to: %w", err)
	}
	return from, to, nil
}

// RequireDSN checks that a connection string is configured.
func (c *Config) RequireDSN() error {
	if c.DSN == "" {
		return fmt.Errorf("--dsn or DATABASE_URL is required")
	}
	return nil
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return t, nil
}
