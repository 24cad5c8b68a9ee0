package sam

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gyeh/clinsam/internal/model"
)

// WriteClaimFile writes the single-claim rendering of c as UTF-8 text under
// outDir (created if absent), named
//
//	SAM_<patientRID>_<visitDate>_<timestamp>.sam
//
// The wall-clock timestamp has seconds resolution, so repeated exports for
// the same patient and day within one second collide (known limitation).
func WriteClaimFile(c model.Claim, outDir string) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	name := fmt.Sprintf("SAM_%s_%s_%s.sam",
		c.PatientRID,
		c.VisitDate.Format("2006-01-02"),
		time.Now().Format("20060102150405"),
	)
	path := filepath.Join(outDir, name)

	if err := os.WriteFile(path, []byte(RenderClaim(c)), 0o644); err != nil {
		return "", fmt.Errorf("write claim file: %w", err)
	}
	return path, nil
}
