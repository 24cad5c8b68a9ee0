// Package mapping resolves which physical spreadsheet column feeds each
// logical master-code field. Source files come from several agencies with
// unpredictable header names, so resolution works from an alias table.
package mapping

import "strings"

// Logical field keys resolved by ResolveMapping.
const (
	FieldCode         = "code"
	FieldName         = "name"
	FieldPrice        = "price"
	FieldUnit         = "unit"
	FieldCategoryHint = "category_hint"
)

// Fields lists the logical fields in resolution order.
var Fields = []string{FieldCode, FieldName, FieldPrice, FieldUnit, FieldCategoryHint}

// DefaultAliases maps each logical field to its known header aliases, in
// priority order. These cover the HIRA/KCD master tables this importer is
// normally fed with.
var DefaultAliases = map[string][]string{
	FieldCode:         {"코드", "항목코드", "수가코드", "약가코드", "진단코드", "코드값", "코드번호", "CODE"},
	FieldName:         {"명칭", "항목명", "품목명", "성분명", "산정명칭", "항목명칭", "NAME"},
	FieldPrice:        {"금액", "수가(원)", "약가", "단가", "가격", "가격(원)", "PRICE"},
	FieldUnit:         {"단위", "용량", "회수", "횟수", "규격", "UNIT"},
	FieldCategoryHint: {"구분", "분류", "급여구분", "항목구분"},
}

// ResolveMapping matches header cells against alias candidates and returns
// logical field -> physical header. Matching is case-insensitive and
// whitespace-trimmed; for each field the candidates are tried in declared
// order and the first hit wins. Unmatched fields are simply absent from the
// result — callers skip those attributes rather than failing the import.
//
// Two logical fields can resolve to the same header if the alias table says
// so; no conflict check is performed (known limitation, matches the source
// system).
func ResolveMapping(header []string, aliases map[string][]string) map[string]string {
	lowered := make([]string, len(header))
	for i, h := range header {
		lowered[i] = strings.ToLower(strings.TrimSpace(h))
	}

	mapping := make(map[string]string, len(aliases))
	for field, candidates := range aliases {
		for _, alias := range candidates {
			want := strings.ToLower(strings.TrimSpace(alias))
			for i, cell := range lowered {
				if cell == want {
					mapping[field] = header[i]
					break
				}
			}
			if _, ok := mapping[field]; ok {
				break
			}
		}
	}
	return mapping
}
