package model

import "time"

// MasterItem is one billable code's canonical attributes.
// Price and Unit are nil when unknown; RawFields preserves every original
// spreadsheet column verbatim for audit traceability.
type MasterItem struct {
	ID        int64
	Code      string
	Name      string
	Category  Category
	Price     *int64
	Unit      *string
	RawFields map[string]*string
}

// ImportBatch records one file-import operation's provenance
// (a row in master_uploads).
type ImportBatch struct {
	ID         int64
	Filename   string
	Filetype   string
	UploadedAt time.Time
	TotalRows  int
	Notes      string
}
