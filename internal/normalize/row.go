package normalize

import (
	"strings"

	"github.com/gyeh/clinsam/internal/mapping"
	"github.com/gyeh/clinsam/internal/model"
)

// Row converts one raw spreadsheet row into a MasterItem using the resolved
// column mapping. It returns ok=false when the row must be skipped: code or
// name empty after trimming. That is deliberate tolerance for blank and
// footer rows, not an error.
//
// Every original column lands in RawFields (trimmed value, or nil when
// blank) regardless of which fields were mapped.
func Row(raw map[string]string, m map[string]string, userCategory model.Category) (model.MasterItem, bool) {
	code := strings.TrimSpace(raw[m[mapping.FieldCode]])
	name := strings.TrimSpace(raw[m[mapping.FieldName]])
	if code == "" || name == "" {
		return model.MasterItem{}, false
	}

	item := model.MasterItem{
		Code:     code,
		Name:     name,
		Category: OverrideCategory(userCategory, raw[m[mapping.FieldCategoryHint]]),
	}

	if col, ok := m[mapping.FieldPrice]; ok {
		item.Price = CleanPrice(raw[col])
	}
	if col, ok := m[mapping.FieldUnit]; ok {
		if unit := strings.TrimSpace(raw[col]); unit != "" {
			item.Unit = &unit
		}
	}

	item.RawFields = make(map[string]*string, len(raw))
	for key, value := range raw {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			v := trimmed
			item.RawFields[key] = &v
		} else {
			item.RawFields[key] = nil
		}
	}
	return item, true
}
