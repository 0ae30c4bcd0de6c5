// Package query derives an ordered view over a record snapshot. It is a
// pure transform: no I/O and no mutation of the input slice.
package query

import (
	"sort"
	"strings"

	"github.com/hansollee/matzip/internal/models"
)

// SortMode selects the comparator used to order the filtered view.
type SortMode string

const (
	// SortLatest orders by creation time, newest first.
	SortLatest SortMode = "latest"
	// SortRatingHigh orders by rating, highest first.
	SortRatingHigh SortMode = "rating-high"
)

// Filter is the current search/sort state driving the derived view.
type Filter struct {
	SearchTerm string
	SortBy     SortMode
}

// Apply returns a new slice holding the records that match the filter, in
// the filter's sort order. Records match when the search term appears
// case-insensitively in either the food name or the restaurant name; an
// empty term matches everything. Ties keep their input order (stable sort).
func Apply(records []models.FoodRecord, f Filter) []models.FoodRecord {
	term := strings.ToLower(strings.TrimSpace(f.SearchTerm))

	out := make([]models.FoodRecord, 0, len(records))
	for _, rec := range records {
		if term == "" || matches(rec, term) {
			out = append(out, rec)
		}
	}

	switch f.SortBy {
	case SortRatingHigh:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Rating > out[j].Rating
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	}

	return out
}

func matches(rec models.FoodRecord, term string) bool {
	return strings.Contains(strings.ToLower(rec.FoodName), term) ||
		strings.Contains(strings.ToLower(rec.RestaurantName), term)
}
