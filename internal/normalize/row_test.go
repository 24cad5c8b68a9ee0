package normalize

import (
	"testing"

	"github.com/gyeh/clinsam/internal/mapping"
	"github.com/gyeh/clinsam/internal/model"
)

func testMapping() map[string]string {
	return map[string]string{
		mapping.FieldCode:         "코드",
		mapping.FieldName:         "명칭",
		mapping.FieldPrice:        "단가",
		mapping.FieldUnit:         "단위",
		mapping.FieldCategoryHint: "구분",
	}
}

func TestRow_Valid(t *testing.T) {
	raw := map[string]string{
		"코드": " A100 ",
		"명칭": "기본진찰료",
		"단가": "15,500",
		"단위": "회",
		"구분": "",
		"비고": "footer text",
	}

	item, ok := Row(raw, testMapping(), model.CategoryProcedure)
	if !ok {
		t.Fatal("expected row to normalize")
	}
	if item.Code != "A100" || item.Name != "기본진찰료" {
		t.Errorf("code/name = %q/%q", item.Code, item.Name)
	}
	if item.Category != model.CategoryProcedure {
		t.Errorf("category = %s, want ACT", item.Category)
	}
	if item.Price == nil || *item.Price != 15500 {
		t.Errorf("price = %v, want 15500", item.Price)
	}
	if item.Unit == nil || *item.Unit != "회" {
		t.Errorf("unit = %v, want 회", item.Unit)
	}
}

func TestRow_SkipOnMissingCodeOrName(t *testing.T) {
	m := testMapping()

	if _, ok := Row(map[string]string{"코드": "", "명칭": "x"}, m, model.CategoryProcedure); ok {
		t.Error("row with empty code should be skipped")
	}
	if _, ok := Row(map[string]string{"코드": "A1", "명칭": "   "}, m, model.CategoryProcedure); ok {
		t.Error("row with blank name should be skipped")
	}
}

func TestRow_UnmappedOptionalFields(t *testing.T) {
	m := map[string]string{
		mapping.FieldCode: "코드",
		mapping.FieldName: "명칭",
	}
	raw := map[string]string{"코드": "B2", "명칭": "주사료", "단가": "9,000"}

	item, ok := Row(raw, m, model.CategoryProcedure)
	if !ok {
		t.Fatal("expected row to normalize")
	}
	if item.Price != nil {
		t.Errorf("price = %d, want nil when price column is unmapped", *item.Price)
	}
	if item.Unit != nil {
		t.Errorf("unit = %q, want nil", *item.Unit)
	}
}

func TestRow_HintOverridesUserCategory(t *testing.T) {
	raw := map[string]string{"코드": "D1", "명칭": "타이레놀", "구분": "약제"}

	item, ok := Row(raw, testMapping(), model.CategoryProcedure)
	if !ok {
		t.Fatal("expected row to normalize")
	}
	if item.Category != model.CategoryDrug {
		t.Errorf("category = %s, want DRG from hint", item.Category)
	}
}

func TestRow_RawFieldsPreserveEveryColumn(t *testing.T) {
	raw := map[string]string{
		"코드":  "C3",
		"명칭":  "견인치료",
		"단가":  "",
		"참고":  " note ",
		"빈칸":  "   ",
	}

	item, ok := Row(raw, testMapping(), model.CategoryProcedure)
	if !ok {
		t.Fatal("expected row to normalize")
	}
	if len(item.RawFields) != len(raw) {
		t.Fatalf("raw fields = %d columns, want %d", len(item.RawFields), len(raw))
	}
	if v := item.RawFields["참고"]; v == nil || *v != "note" {
		t.Errorf("raw[참고] = %v, want trimmed \"note\"", v)
	}
	if item.RawFields["단가"] != nil {
		t.Error("blank cell should be preserved as nil")
	}
	if item.RawFields["빈칸"] != nil {
		t.Error("whitespace-only cell should be preserved as nil")
	}
}
