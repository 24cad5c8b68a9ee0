package claim

import (
	"context"
	"strings"

	"github.com/gyeh/clinsam/internal/model"
)

// priceKey identifies a master code for pricing lookups.
type priceKey struct {
	Category model.Category
	Code     string
}

// priceMap holds resolved unit prices. A key may map to nil: the code
// exists but carries no price.
type priceMap map[priceKey]*int64

// buildPriceMap batch-resolves unit prices for every codable prescription
// across the given notes: one store lookup per distinct category, however
// many lines the visits carry. Blank codes are excluded entirely.
func buildPriceMap(ctx context.Context, src PriceSource, notes []*model.ClinicalNote) (priceMap, error) {
	codesByCategory := make(map[model.Category]map[string]struct{})
	for _, note := range notes {
		for _, rx := range note.Prescriptions {
			code := strings.TrimSpace(rx.Code)
			if code == "" {
				continue
			}
			cat := model.CategoryForItemType(rx.ItemType)
			if codesByCategory[cat] == nil {
				codesByCategory[cat] = make(map[string]struct{})
			}
			codesByCategory[cat][code] = struct{}{}
		}
	}

	prices := make(priceMap)
	for cat, codeSet := range codesByCategory {
		codes := make([]string, 0, len(codeSet))
		for code := range codeSet {
			codes = append(codes, code)
		}
		items, err := src.MasterItemsByCodes(ctx, cat, codes)
		if err != nil {
			return nil, err
		}
		for _, it := range items {
			prices[priceKey{Category: it.Category, Code: it.Code}] = it.Price
		}
	}
	return prices, nil
}

// resolveAmount computes the line amount for a prescription:
// floor(unitPrice * qty * days), where qty defaults to 1 when zero or
// negative and the days multiplier applies to DRUG lines only (also
// defaulting to 1). A code with no resolvable unit price yields nil —
// the line is unpriced, never priced at zero.
func resolveAmount(rx model.Prescription, prices priceMap) *int64 {
	code := strings.TrimSpace(rx.Code)
	if code == "" {
		return nil
	}

	key := priceKey{Category: model.CategoryForItemType(rx.ItemType), Code: code}
	unitPrice, ok := prices[key]
	if !ok || unitPrice == nil {
		return nil
	}

	qty := rx.Qty
	if qty <= 0 {
		qty = 1
	}

	total := float64(*unitPrice) * qty

	if rx.ItemType == model.ItemDrug {
		days := rx.Days
		if days <= 0 {
			days = 1
		}
		total *= float64(days)
	}

	amount := int64(total)
	return &amount
}
