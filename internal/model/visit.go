package model

import "time"

// ClinicalNote is the read model for one visit/encounter, with its
// diagnoses and prescriptions loaded in store order.
type ClinicalNote struct {
	ID            int64
	PatientRID    string
	VisitDate     time.Time
	PrimaryICD    string
	Diagnoses     []DiagnosisEntry
	Prescriptions []Prescription
}

// DiagnosisEntry is one diagnosis code attached to a note.
type DiagnosisEntry struct {
	ID   int64
	Code string
	Name string
}

// Prescription is one prescribed item (drug, procedure, or test order)
// attached to a note.
type Prescription struct {
	ID       int64
	ItemType ItemType
	Code     string
	Name     string
	Qty      float64
	Days     int
}
