package query

import (
	"testing"
	"time"

	"github.com/hansollee/matzip/internal/models"
)

func rec(id int64, food, restaurant string, rating float64, createdAt time.Time) models.FoodRecord {
	return models.FoodRecord{
		ID:             id,
		FoodName:       food,
		RestaurantName: restaurant,
		Rating:         rating,
		CreatedAt:      createdAt,
	}
}

func ids(records []models.FoodRecord) []int64 {
	out := make([]int64, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func TestApplyFilterMatchesEitherField(t *testing.T) {
	now := time.Now()
	records := []models.FoodRecord{
		rec(1, "Kimchi Stew", "Seoul Kitchen", 4, now),
		rec(2, "Bibimbap", "Kimchi House", 5, now),
		rec(3, "Pasta", "Trattoria", 3, now),
	}

	got := Apply(records, Filter{SearchTerm: "kimchi"})
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(got))
	}
	for _, r := range got {
		if r.ID == 3 {
			t.Error("record 3 matches neither field, should be excluded")
		}
	}
}

func TestApplyFilterCaseInsensitive(t *testing.T) {
	records := []models.FoodRecord{
		rec(1, "TONKATSU", "", 4, time.Now()),
	}

	if got := Apply(records, Filter{SearchTerm: "tonkatsu"}); len(got) != 1 {
		t.Errorf("expected case-insensitive match, got %d records", len(got))
	}
	if got := Apply(records, Filter{SearchTerm: "KatSu"}); len(got) != 1 {
		t.Errorf("expected substring match, got %d records", len(got))
	}
}

func TestApplyEmptyTermPassesAll(t *testing.T) {
	records := []models.FoodRecord{
		rec(1, "A", "", 1, time.Now()),
		rec(2, "", "", 2, time.Now()),
	}

	if got := Apply(records, Filter{}); len(got) != 2 {
		t.Errorf("expected all records with empty term, got %d", len(got))
	}
}

func TestApplySortLatest(t *testing.T) {
	base := time.Now()
	records := []models.FoodRecord{
		rec(1, "a", "", 0, base.Add(-2*time.Hour)),
		rec(2, "b", "", 0, base),
		rec(3, "c", "", 0, base.Add(-1*time.Hour)),
	}

	got := ids(Apply(records, Filter{SortBy: SortLatest}))
	want := []int64{2, 3, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
}

func TestApplySortRatingHigh(t *testing.T) {
	now := time.Now()
	records := []models.FoodRecord{
		rec(1, "a", "", 2.5, now),
		rec(2, "b", "", 5, now),
		rec(3, "c", "", 4, now),
	}

	got := ids(Apply(records, Filter{SortBy: SortRatingHigh}))
	want := []int64{2, 3, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
}

func TestApplySortIsStable(t *testing.T) {
	now := time.Now()
	records := []models.FoodRecord{
		rec(1, "a", "", 4, now),
		rec(2, "b", "", 4, now),
		rec(3, "c", "", 4, now),
	}

	got := ids(Apply(records, Filter{SortBy: SortRatingHigh}))
	want := []int64{1, 2, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("equal ratings must keep input order, expected %v, got %v", want, got)
		}
	}

	got = ids(Apply(records, Filter{SortBy: SortLatest}))
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("equal timestamps must keep input order, expected %v, got %v", want, got)
		}
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	base := time.Now()
	records := []models.FoodRecord{
		rec(1, "a", "", 1, base.Add(-time.Hour)),
		rec(2, "b", "", 2, base),
	}

	Apply(records, Filter{SortBy: SortLatest})

	if records[0].ID != 1 || records[1].ID != 2 {
		t.Error("input slice order changed")
	}
}
