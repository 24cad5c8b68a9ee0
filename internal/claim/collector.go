package claim

import (
	"context"
	"strings"
	"time"

	"github.com/gyeh/clinsam/internal/model"
)

// Collector materializes Claim value objects from clinical visits. The
// provider id is fixed at construction so collection stays a pure function
// of store state.
type Collector struct {
	providerID string
	prices     PriceSource
	visits     VisitSource
}

// NewCollector returns a Collector reading through the given sources.
func NewCollector(providerID string, prices PriceSource, visits VisitSource) *Collector {
	return &Collector{providerID: providerID, prices: prices, visits: visits}
}

// CollectNote builds the claim for a single clinical note. A missing note
// id propagates the store's not-found error unchanged.
func (c *Collector) CollectNote(ctx context.Context, noteID int64) (*model.Claim, error) {
	note, err := c.visits.NoteByID(ctx, noteID)
	if err != nil {
		return nil, err
	}
	prices, err := buildPriceMap(ctx, c.prices, []*model.ClinicalNote{note})
	if err != nil {
		return nil, err
	}
	claim := c.noteToClaim(note, prices)
	return &claim, nil
}

// CollectRange builds claims for every visit in [from, to] inclusive,
// ordered by visit date then note id ascending. Prices are resolved with
// one bulk lookup per category across the whole range.
func (c *Collector) CollectRange(ctx context.Context, from, to time.Time) ([]model.Claim, error) {
	notes, err := c.visits.NotesByDateRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	prices, err := buildPriceMap(ctx, c.prices, notes)
	if err != nil {
		return nil, err
	}

	claims := make([]model.Claim, 0, len(notes))
	for _, note := range notes {
		claims = append(claims, c.noteToClaim(note, prices))
	}
	return claims, nil
}

// noteToClaim flattens one note into a claim. A visit with no diagnoses
// and no codable prescriptions still yields a valid, emittable claim.
func (c *Collector) noteToClaim(note *model.ClinicalNote, prices priceMap) model.Claim {
	primaryDx := strings.TrimSpace(note.PrimaryICD)
	var subDx []string

	// When the note has no explicit primary diagnosis, the first diagnosis
	// entry (store default ordering) is promoted. Secondary codes are
	// deduplicated and never repeat the primary.
	for _, diag := range note.Diagnoses {
		code := strings.TrimSpace(diag.Code)
		if code == "" {
			continue
		}
		if primaryDx == "" {
			primaryDx = code
			continue
		}
		if code != primaryDx && !containsString(subDx, code) {
			subDx = append(subDx, code)
		}
	}

	var lines []model.ClaimLine
	for _, rx := range note.Prescriptions {
		code := strings.TrimSpace(rx.Code)
		if code == "" {
			// Lines without a usable code are dropped, not emitted unpriced.
			continue
		}

		qty := rx.Qty
		if qty == 0 {
			qty = 1
		}

		var days *int
		if rx.ItemType == model.ItemDrug {
			d := rx.Days
			days = &d
		}

		lines = append(lines, model.ClaimLine{
			LineType: model.LineTypeForItemType(rx.ItemType),
			Code:     code,
			Qty:      qty,
			Days:     days,
			Amount:   resolveAmount(rx, prices),
		})
	}

	y, m, d := note.VisitDate.Date()
	return model.Claim{
		ProviderID: c.providerID,
		PatientRID: note.PatientRID,
		VisitDate:  time.Date(y, m, d, 0, 0, 0, 0, note.VisitDate.Location()),
		PrimaryDx:  primaryDx,
		SubDx:      subDx,
		Lines:      lines,
	}
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
