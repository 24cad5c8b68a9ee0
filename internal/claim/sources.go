// Package claim assembles priced claim records from clinical visits.
package claim

import (
	"context"
	"time"

	"github.com/gyeh/clinsam/internal/model"
)

// PriceSource is the master code store read contract used for pricing.
type PriceSource interface {
	MasterItemsByCodes(ctx context.Context, category model.Category, codes []string) ([]model.MasterItem, error)
}

// VisitSource is the clinical store read contract.
type VisitSource interface {
	NoteByID(ctx context.Context, id int64) (*model.ClinicalNote, error)
	NotesByDateRange(ctx context.Context, from, to time.Time) ([]*model.ClinicalNote, error)
}
