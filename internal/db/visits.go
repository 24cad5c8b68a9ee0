package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/gyeh/clinsam/internal/model"
	embedsql "github.com/gyeh/clinsam/internal/sql"
)

// ErrNotFound signals that a requested record does not exist.
var ErrNotFound = errors.New("not found")

// NoteByID fetches one clinical note with its diagnoses and prescriptions.
// Returns ErrNotFound when the id does not exist.
func (s *Store) NoteByID(ctx context.Context, id int64) (*model.ClinicalNote, error) {
	var n model.ClinicalNote
	err := s.pool.QueryRow(ctx, embedsql.NoteByID, id).
		Scan(&n.ID, &n.PatientRID, &n.VisitDate, &n.PrimaryICD)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("clinical note %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch clinical note %d: %w", id, err)
	}

	if err := s.loadNoteChildren(ctx, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

// NotesByDateRange fetches all notes with visit dates in [from, to]
// inclusive (date component), ordered by visit date then note id.
func (s *Store) NotesByDateRange(ctx context.Context, from, to time.Time) ([]*model.ClinicalNote, error) {
	rows, err := s.pool.Query(ctx, embedsql.NotesByRange, from, to)
	if err != nil {
		return nil, fmt.Errorf("notes by date range: %w", err)
	}
	defer rows.Close()

	var notes []*model.ClinicalNote
	for rows.Next() {
		var n model.ClinicalNote
		if err := rows.Scan(&n.ID, &n.PatientRID, &n.VisitDate, &n.PrimaryICD); err != nil {
			return nil, fmt.Errorf("scan clinical note: %w", err)
		}
		notes = append(notes, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, n := range notes {
		if err := s.loadNoteChildren(ctx, n); err != nil {
			return nil, err
		}
	}
	return notes, nil
}

// loadNoteChildren populates diagnoses (newest first, the store's default
// ordering) and prescriptions (insertion order).
func (s *Store) loadNoteChildren(ctx context.Context, n *model.ClinicalNote) error {
	rows, err := s.pool.Query(ctx, embedsql.DiagnosesByNote, n.ID)
	if err != nil {
		return fmt.Errorf("diagnoses for note %d: %w", n.ID, err)
	}
	defer rows.Close()
	for rows.Next() {
		var d model.DiagnosisEntry
		if err := rows.Scan(&d.ID, &d.Code, &d.Name); err != nil {
			return fmt.Errorf("scan diagnosis: %w", err)
		}
		n.Diagnoses = append(n.Diagnoses, d)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	prows, err := s.pool.Query(ctx, embedsql.PrescriptionsByNote, n.ID)
	if err != nil {
		return fmt.Errorf("prescriptions for note %d: %w", n.ID, err)
	}
	defer prows.Close()
	for prows.Next() {
		var p model.Prescription
		if err := prows.Scan(&p.ID, &p.ItemType, &p.Code, &p.Name, &p.Qty, &p.Days); err != nil {
			return fmt.Errorf("scan prescription: %w", err)
		}
		n.Prescriptions = append(n.Prescriptions, p)
	}
	return prows.Err()
}
