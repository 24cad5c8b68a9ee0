package model

import "time"

// ClaimLine is one billable line within a claim.
// Days is only set for DRUG lines; Amount is nil when no unit price could
// be resolved (an unpriced line, not a zero-priced one).
type ClaimLine struct {
	LineType LineType
	Code     string
	Qty      float64
	Days     *int
	Amount   *int64
}

// Claim is one clinical visit expressed as a billing record. It is a view
// materialized for export: constructed on demand from the visit's current
// diagnosis/prescription state and never persisted.
type Claim struct {
	ProviderID string
	PatientRID string
	VisitDate  time.Time // date component only
	PrimaryDx  string
	SubDx      []string
	Lines      []ClaimLine
}
