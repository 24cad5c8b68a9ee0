package sam

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/gyeh/clinsam/internal/model"
)

func sampleClaim() model.Claim {
	days := 3
	amount := int64(3000)
	return model.Claim{
		ProviderID: "11111111",
		PatientRID: "20240101-0001",
		VisitDate:  time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		PrimaryDx:  "E11.9",
		SubDx:      []string{"I10", "J20.9"},
		Lines: []model.ClaimLine{
			{LineType: model.LineDrug, Code: "A001", Qty: 2, Days: &days, Amount: &amount},
			{LineType: model.LineProc, Code: "X99", Qty: 1},
		},
	}
}

func TestRenderClaim(t *testing.T) {
	got := RenderClaim(sampleClaim())
	want := strings.Join([]string{
		"H|11111111|20240101-0001|2024-03-05|E11.9|I10,J20.9",
		"L|DRUG|A001|2|3|3000",
		"L|PROC|X99|1||",
		"T|2",
	}, "\n")
	if got != want {
		t.Errorf("RenderClaim =\n%s\nwant\n%s", got, want)
	}
}

func TestRenderClaim_EmptyVisit(t *testing.T) {
	c := model.Claim{
		ProviderID: "11111111",
		PatientRID: "r",
		VisitDate:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	want := "H|11111111|r|2024-01-01||\nT|0"
	if got := RenderClaim(c); got != want {
		t.Errorf("RenderClaim =\n%s\nwant\n%s", got, want)
	}
}

func TestRenderClaim_FractionalQty(t *testing.T) {
	c := model.Claim{
		ProviderID: "p", PatientRID: "r",
		VisitDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Lines:     []model.ClaimLine{{LineType: model.LineDrug, Code: "D1", Qty: 0.5}},
	}
	got := RenderClaim(c)
	if !strings.Contains(got, "L|DRUG|D1|0.5||") {
		t.Errorf("fractional qty not rendered compactly:\n%s", got)
	}
}

func TestRenderFile_SeparatorBetweenClaims(t *testing.T) {
	a := sampleClaim()
	b := sampleClaim()
	b.PatientRID = "20240101-0002"
	b.Lines = nil

	got := RenderFile([]model.Claim{a, b})
	parts := strings.Split(got, "\n"+Separator+"\n")
	if len(parts) != 2 {
		t.Fatalf("split on separator gave %d parts, want 2", len(parts))
	}
	if parts[0] != RenderClaim(a) || parts[1] != RenderClaim(b) {
		t.Error("joined parts do not round-trip individual renderings")
	}
	if strings.Count(got, Separator) != 1 {
		t.Errorf("separator appears %d times, want 1", strings.Count(got, Separator))
	}
}

func TestRenderFile_SingleClaimHasNoSeparator(t *testing.T) {
	got := RenderFile([]model.Claim{sampleClaim()})
	if strings.Contains(got, Separator) {
		t.Errorf("single-claim file must not contain a separator:\n%s", got)
	}
}

func TestWriteClaimFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out", "nested")
	c := sampleClaim()

	path, err := WriteClaimFile(c, dir)
	if err != nil {
		t.Fatalf("WriteClaimFile: %v", err)
	}

	pattern := regexp.MustCompile(`^SAM_20240101-0001_2024-03-05_\d{14}\.sam$`)
	if base := filepath.Base(path); !pattern.MatchString(base) {
		t.Errorf("filename %q does not match SAM_<rid>_<date>_<timestamp>.sam", base)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != RenderClaim(c) {
		t.Errorf("file content =\n%s\nwant single-claim rendering", data)
	}
}
