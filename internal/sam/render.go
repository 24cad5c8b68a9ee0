// Package sam serializes claims into the pipe-delimited SAM flat-file
// grammar:
//
//	H|<providerId>|<patientRID>|<visitDate>|<primaryDx>|<subDx,...>
//	L|<lineType>|<code>|<qty>|<days>|<amount>
//	T|<lineCount>
//
// One record per physical line; multi-claim files join per-claim
// renderings with a line containing exactly "---".
package sam

import (
	"strconv"
	"strings"

	"github.com/gyeh/clinsam/internal/model"
)

// Separator is the line placed between claims in a multi-claim file.
const Separator = "---"

// RenderClaim serializes one claim. The header and tail lines are always
// present; L lines are omitted entirely for a claim with no lines, and the
// tail count equals the number of L lines actually emitted.
func RenderClaim(c model.Claim) string {
	var b strings.Builder

	b.WriteString("H|")
	b.WriteString(c.ProviderID)
	b.WriteByte('|')
	b.WriteString(c.PatientRID)
	b.WriteByte('|')
	b.WriteString(c.VisitDate.Format("2006-01-02"))
	b.WriteByte('|')
	b.WriteString(c.PrimaryDx)
	b.WriteByte('|')
	b.WriteString(strings.Join(c.SubDx, ","))

	for _, line := range c.Lines {
		b.WriteByte('\n')
		b.WriteString(strings.Join([]string{
			"L",
			string(line.LineType),
			line.Code,
			formatFloat(line.Qty),
			formatOptInt(line.Days),
			formatOptInt64(line.Amount),
		}, "|"))
	}

	b.WriteString("\nT|")
	b.WriteString(strconv.Itoa(len(c.Lines)))
	return b.String()
}

// RenderFile serializes many claims into one multi-claim document.
func RenderFile(claims []model.Claim) string {
	parts := make([]string, len(claims))
	for i, c := range claims {
		parts[i] = RenderClaim(c)
	}
	return strings.Join(parts, "\n"+Separator+"\n")
}

// formatFloat renders integral values without a decimal point and
// non-integral ones in compact form with no trailing zeros.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Absent numeric fields render as an empty string between delimiters.
func formatOptInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func formatOptInt64(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}
