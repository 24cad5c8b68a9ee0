package normalize

import (
	"strconv"
	"strings"
)

// CleanPrice parses a unit price cell into whole currency units.
// Thousands-separator commas are stripped, the remainder is parsed as a
// decimal and truncated toward zero. Missing or unparseable values yield
// nil rather than an error: an unknown price is a valid state for a
// master code.
func CleanPrice(raw string) *int64 {
	s := strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	v := int64(f)
	return &v
}
