package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gyeh/clinsam/internal/model"
	embedsql "github.com/gyeh/clinsam/internal/sql"
)

// Store wraps a pgx pool with the query surface the pipeline needs.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore wraps pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Pool exposes the underlying pool for transaction management.
func (s *Store) Pool() *pgxpool.Pool { return s.pool }

// CreateImportBatch inserts a master_uploads provenance row with zero
// counts; FinalizeImportBatch fills them in when the run ends.
func (s *Store) CreateImportBatch(ctx context.Context, filename, filetype string) (*model.ImportBatch, error) {
	b := &model.ImportBatch{Filename: filename, Filetype: filetype}
	err := s.pool.QueryRow(ctx, embedsql.CreateUpload, filename, filetype).
		Scan(&b.ID, &b.UploadedAt)
	if err != nil {
		return nil, fmt.Errorf("create import batch: %w", err)
	}
	return b, nil
}

// FinalizeImportBatch records the final row count and notes on the batch.
func (s *Store) FinalizeImportBatch(ctx context.Context, id int64, totalRows int, notes string) error {
	if _, err := s.pool.Exec(ctx, embedsql.FinalizeUpload, id, totalRows, notes); err != nil {
		return fmt.Errorf("finalize import batch %d: %w", id, err)
	}
	return nil
}

// UpsertMasterItem inserts or updates one master code within tx, keyed by
// (code, category). Returns whether the row was newly inserted.
func (s *Store) UpsertMasterItem(ctx context.Context, tx pgx.Tx, item model.MasterItem) (bool, error) {
	raw, err := json.Marshal(item.RawFields)
	if err != nil {
		return false, fmt.Errorf("marshal raw fields: %w", err)
	}

	var inserted bool
	err = tx.QueryRow(ctx, embedsql.UpsertMasterItem,
		item.Code, string(item.Category), item.Name, item.Price, item.Unit, raw,
	).Scan(&inserted)
	if err != nil {
		return false, fmt.Errorf("upsert master item %s/%s: %w", item.Category, item.Code, err)
	}
	return inserted, nil
}

// MasterItemByCode fetches one master code record by its (category, code)
// identity. Returns ErrNotFound when the code is not registered.
func (s *Store) MasterItemByCode(ctx context.Context, category model.Category, code string) (*model.MasterItem, error) {
	var it model.MasterItem
	var raw []byte
	err := s.pool.QueryRow(ctx, embedsql.MasterItemByCode, string(category), code).
		Scan(&it.ID, &it.Code, &it.Name, &it.Category, &it.Price, &it.Unit, &raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("master item %s/%s: %w", category, code, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch master item %s/%s: %w", category, code, err)
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &it.RawFields); err != nil {
			return nil, fmt.Errorf("decode raw fields for %s/%s: %w", category, code, err)
		}
	}
	return &it, nil
}

// MasterItemsByCodes bulk-fetches price rows for one category. Only the
// fields the price resolver needs are populated.
func (s *Store) MasterItemsByCodes(ctx context.Context, category model.Category, codes []string) ([]model.MasterItem, error) {
	rows, err := s.pool.Query(ctx, embedsql.MasterItemsByCodes, string(category), codes)
	if err != nil {
		return nil, fmt.Errorf("master items by codes: %w", err)
	}
	defer rows.Close()

	var items []model.MasterItem
	for rows.Next() {
		var it model.MasterItem
		if err := rows.Scan(&it.Code, &it.Category, &it.Price); err != nil {
			return nil, fmt.Errorf("scan master item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// MasterItems returns full master code records, optionally filtered by
// category (nil means all), ordered by category then code.
func (s *Store) MasterItems(ctx context.Context, category *model.Category) ([]model.MasterItem, error) {
	var cat *string
	if category != nil {
		c := string(*category)
		cat = &c
	}

	rows, err := s.pool.Query(ctx, embedsql.MasterItemsAll, cat)
	if err != nil {
		return nil, fmt.Errorf("list master items: %w", err)
	}
	defer rows.Close()

	var items []model.MasterItem
	for rows.Next() {
		var it model.MasterItem
		var raw []byte
		if err := rows.Scan(&it.ID, &it.Code, &it.Name, &it.Category, &it.Price, &it.Unit, &raw); err != nil {
			return nil, fmt.Errorf("scan master item: %w", err)
		}
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &it.RawFields); err != nil {
				return nil, fmt.Errorf("decode raw fields for %s/%s: %w", it.Category, it.Code, err)
			}
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
