package model

import "time"

// ImportSummary captures metrics from a single master file import run.
type ImportSummary struct {
	Filename     string
	Filetype     string
	BatchID      int64
	IngestRunID  string
	Mapping      map[string]string
	RowsRead     int64
	RowsSkipped  int64
	RowsInserted int64
	RowsUpdated  int64
	Duration     time.Duration
}
