package model

// Category is a master code category.
type Category string

const (
	CategoryProcedure Category = "ACT"
	CategoryDrug      Category = "DRG"
	CategoryDiagnosis Category = "DX"
	CategoryEtc       Category = "ETC"
)

// AllCategories lists the valid master code categories in canonical order.
var AllCategories = []Category{
	CategoryProcedure,
	CategoryDrug,
	CategoryDiagnosis,
	CategoryEtc,
}

// ValidCategory reports whether s names a known category.
func ValidCategory(s string) bool {
	for _, c := range AllCategories {
		if string(c) == s {
			return true
		}
	}
	return false
}

// ItemType is a prescription line type as recorded on the clinical side.
type ItemType string

const (
	ItemDrug ItemType = "DRUG"
	ItemProc ItemType = "PROC"
	ItemTest ItemType = "TEST"
)

// LineType is a claim line type in the SAM grammar.
type LineType string

const (
	LineDrug LineType = "DRUG"
	LineProc LineType = "PROC"
)

// CategoryForItemType maps a prescription item type to the master code
// category it is priced under. Test orders are billed as procedures.
func CategoryForItemType(t ItemType) Category {
	switch t {
	case ItemDrug:
		return CategoryDrug
	case ItemProc, ItemTest:
		return CategoryProcedure
	default:
		return CategoryProcedure
	}
}

// LineTypeForItemType maps a prescription item type to its claim line type.
func LineTypeForItemType(t ItemType) LineType {
	if t == ItemDrug {
		return LineDrug
	}
	return LineProc
}
