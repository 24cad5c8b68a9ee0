package normalize

import (
	"strings"

	"github.com/gyeh/clinsam/internal/model"
)

// Keyword sets for the category hint column. Precedence is drug >
// diagnosis > procedure > user default; this order mirrors the source
// system's evaluation order and must not be re-derived.
var (
	drugKeywords      = []string{"약", "Drug", "DRG"}
	diagnosisKeywords = []string{"진단", "KCD", "DX"}
	procedureKeywords = []string{"행위", "수가", "Procedure"}
)

// OverrideCategory returns the category for a row given the user-selected
// default and the row's hint cell. The hint is matched by substring
// against the keyword sets; an empty hint keeps the user default.
func OverrideCategory(userCategory model.Category, hint string) model.Category {
	hint = strings.TrimSpace(hint)
	if hint == "" {
		return userCategory
	}
	if containsAny(hint, drugKeywords) {
		return model.CategoryDrug
	}
	if containsAny(hint, diagnosisKeywords) {
		return model.CategoryDiagnosis
	}
	if containsAny(hint, procedureKeywords) {
		return model.CategoryProcedure
	}
	return userCategory
}

func containsAny(s string, tokens []string) bool {
	for _, tok := range tokens {
		if strings.Contains(s, tok) {
			return true
		}
	}
	return false
}
