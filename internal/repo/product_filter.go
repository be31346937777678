package repo

import (
	"strings"

	"github.com/rogerio-castellano/inventory-keeper/internal/models"
)

// ProductFilter selects products for a search. Nil bounds are ignored.
type ProductFilter struct {
	// Query matches a case-insensitive substring of the code or the name.
	Query    string
	MinPrice *float64
	MaxPrice *float64
	MinQty   *int
	MaxQty   *int
	Offset   *int
	Limit    *int
}

func matchesFilter(p models.Product, pf ProductFilter) bool {
	if q := strings.ToLower(strings.TrimSpace(pf.Query)); q != "" &&
		!strings.Contains(strings.ToLower(p.Code), q) &&
		!strings.Contains(strings.ToLower(p.Name), q) {
		return false
	}
	if pf.MinPrice != nil && p.Price < *pf.MinPrice {
		return false
	}
	if pf.MaxPrice != nil && p.Price > *pf.MaxPrice {
		return false
	}
	if pf.MinQty != nil && p.Quantity < *pf.MinQty {
		return false
	}
	if pf.MaxQty != nil && p.Quantity > *pf.MaxQty {
		return false
	}
	return true
}

// Filter returns the requested page of matching products in code order, together
// with the total number of matches.
func (r *InMemoryProductRepository) Filter(pf ProductFilter) ([]models.Product, int) {
	filtered := []models.Product{}
	for _, p := range r.List() {
		if matchesFilter(p, pf) {
			filtered = append(filtered, p)
		}
	}

	// If offset is greater than the number of filtered products, return empty slice
	if pf.Offset != nil && *pf.Offset > len(filtered) {
		return []models.Product{}, len(filtered)
	}

	start := 0
	if pf.Offset != nil {
		start = clamp(*pf.Offset, 0, len(filtered))
	}

	end := len(filtered)
	if pf.Limit != nil && *pf.Limit > 0 {
		end = clamp(start+*pf.Limit, start, len(filtered))
	}

	return filtered[start:end], len(filtered)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
