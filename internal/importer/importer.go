// Package importer streams a master code spreadsheet into the store in
// bounded batches, upserting by (code, category) and recording provenance.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gyeh/clinsam/internal/db"
	"github.com/gyeh/clinsam/internal/mapping"
	"github.com/gyeh/clinsam/internal/model"
	"github.com/gyeh/clinsam/internal/normalize"
	"github.com/gyeh/clinsam/internal/tabread"
)

// DefaultBatchSize bounds how many rows are processed per transaction.
// Batch boundaries only affect transaction granularity, never per-row
// outcomes.
const DefaultBatchSize = 5000

// ErrEmptyInput is returned when the file has no data rows, whether it
// carries a lone header or nothing at all.
var ErrEmptyInput = errors.New("empty input: no data rows")

// PipelineError wraps an error with the phase where it occurred.
type PipelineError struct {
	Phase string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Phase, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Options configures one import run.
type Options struct {
	FilePath  string
	Sheet     string
	Category  model.Category
	Aliases   map[string][]string // nil means mapping.DefaultAliases
	BatchSize int                 // <=0 means DefaultBatchSize
}

// Run imports one master code file. The extension gate runs before any
// store mutation; after that a provenance batch row is created up front
// and finalized with either `inserted=<n>, updated=<n>` or an error
// description. Each row batch commits in its own transaction, so a
// mid-file failure keeps earlier batches committed and is surfaced
// through the batch notes rather than by rolling back progress.
func Run(ctx context.Context, store *db.Store, log zerolog.Logger, opts Options) (*model.ImportSummary, error) {
	start := time.Now()

	filename := filepath.Base(opts.FilePath)
	ext := tabread.Ext(opts.FilePath)
	switch ext {
	case "csv", "xlsx", "xlsb":
	default:
		return nil, &PipelineError{Phase: "open", Err: fmt.Errorf("%w: %s", tabread.ErrUnsupportedFormat, filename)}
	}

	batchSize := opts.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	aliases := opts.Aliases
	if aliases == nil {
		aliases = mapping.DefaultAliases
	}

	runID := uuid.New()
	log.Info().
		Str("file", filename).
		Str("run_id", runID.String()).
		Str("category", string(opts.Category)).
		Msg("starting master import")

	batch, err := store.CreateImportBatch(ctx, filename, ext)
	if err != nil {
		return nil, &PipelineError{Phase: "provenance", Err: err}
	}

	summary := &model.ImportSummary{
		Filename:    filename,
		Filetype:    ext,
		BatchID:     batch.ID,
		IngestRunID: runID.String(),
	}

	err = runBatches(ctx, store, log, opts, aliases, batchSize, summary)

	notes := fmt.Sprintf("inserted=%d, updated=%d", summary.RowsInserted, summary.RowsUpdated)
	if err != nil {
		notes = fmt.Sprintf("error: %v (%s so far)", err, notes)
	}
	if ferr := store.FinalizeImportBatch(ctx, batch.ID, int(summary.RowsRead), notes); ferr != nil {
		log.Warn().Err(ferr).Int64("batch_id", batch.ID).Msg("failed to finalize import batch")
	}

	summary.Duration = time.Since(start)
	if err != nil {
		return summary, err
	}

	log.Info().
		Int64("rows_read", summary.RowsRead).
		Int64("rows_skipped", summary.RowsSkipped).
		Int64("inserted", summary.RowsInserted).
		Int64("updated", summary.RowsUpdated).
		Str("duration", summary.Duration.String()).
		Msg("master import complete")
	return summary, nil
}

// runBatches streams the file and upserts rows batch by batch. The column
// mapping is resolved once from the header and reused for every batch.
func runBatches(ctx context.Context, store *db.Store, log zerolog.Logger, opts Options, aliases map[string][]string, batchSize int, summary *model.ImportSummary) error {
	reader, err := tabread.Open(opts.FilePath, opts.Sheet)
	if err != nil {
		if errors.Is(err, tabread.ErrNoHeader) {
			return &PipelineError{Phase: "read", Err: ErrEmptyInput}
		}
		return &PipelineError{Phase: "open", Err: err}
	}
	defer reader.Close()

	columns := reader.Columns()
	m := mapping.ResolveMapping(columns, aliases)
	summary.Mapping = m
	log.Info().Interface("mapping", m).Msg("column mapping resolved")

	buf := make([]map[string]string, 0, batchSize)
	for {
		row, readErr := reader.Read()
		if readErr != nil && readErr != io.EOF {
			return &PipelineError{Phase: "read", Err: readErr}
		}
		if readErr == nil {
			raw := make(map[string]string, len(columns))
			for i, col := range columns {
				raw[col] = row[i]
			}
			buf = append(buf, raw)
		}

		if len(buf) == batchSize || (readErr == io.EOF && len(buf) > 0) {
			if err := upsertBatch(ctx, store, log, opts.Category, m, buf, summary); err != nil {
				return err
			}
			buf = buf[:0]
		}
		if readErr == io.EOF {
			break
		}
	}

	if summary.RowsRead == 0 {
		return &PipelineError{Phase: "read", Err: ErrEmptyInput}
	}
	return nil
}

// upsertBatch normalizes and writes one batch inside a single transaction.
// Rows missing code or name are counted as skipped, never failed.
func upsertBatch(ctx context.Context, store *db.Store, log zerolog.Logger, category model.Category, m map[string]string, rows []map[string]string, summary *model.ImportSummary) error {
	tx, err := store.Pool().Begin(ctx)
	if err != nil {
		return &PipelineError{Phase: "upsert", Err: fmt.Errorf("begin batch: %w", err)}
	}
	defer tx.Rollback(ctx)

	var inserted, updated, skipped int64
	for _, raw := range rows {
		summary.RowsRead++

		item, ok := normalize.Row(raw, m, category)
		if !ok {
			skipped++
			continue
		}

		wasInsert, err := store.UpsertMasterItem(ctx, tx, item)
		if err != nil {
			return &PipelineError{Phase: "upsert", Err: err}
		}
		if wasInsert {
			inserted++
		} else {
			updated++
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return &PipelineError{Phase: "upsert", Err: fmt.Errorf("commit batch: %w", err)}
	}

	summary.RowsInserted += inserted
	summary.RowsUpdated += updated
	summary.RowsSkipped += skipped
	if skipped > 0 {
		log.Warn().
			Int64("skipped", skipped).
			Int("batch_rows", len(rows)).
			Msg("rows skipped (missing code or name)")
	}
	log.Info().
		Int64("inserted", inserted).
		Int64("updated", updated).
		Int("batch_rows", len(rows)).
		Msg("batch committed")
	return nil
}
