package stats

import (
	"math"
	"testing"
	"time"

	"github.com/hansollee/matzip/internal/constants"
	"github.com/hansollee/matzip/internal/models"
)

var testNow = time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)

func onDay(t *testing.T, daysAgo int) models.FoodRecord {
	t.Helper()
	return models.FoodRecord{
		Date:     testNow.AddDate(0, 0, -daysAgo).Format(constants.DateFormat),
		FoodName: "test",
	}
}

func TestAverageRating(t *testing.T) {
	if got := AverageRating(nil); got != 0 {
		t.Errorf("expected 0 for empty set, got %v", got)
	}

	records := []models.FoodRecord{
		{Rating: 3},
		{Rating: 4.5},
		{Rating: 5},
	}
	want := (3 + 4.5 + 5) / 3.0
	if got := AverageRating(records); math.Abs(got-want) > 1e-9 {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestCountWithin(t *testing.T) {
	records := []models.FoodRecord{
		onDay(t, 0),
		onDay(t, 3),
		onDay(t, 7),
		onDay(t, 8),
		{Date: "not-a-date"},
	}

	// The boundary day exactly 7 days ago is inside the window.
	if got := CountWithin(records, testNow, 7); got != 3 {
		t.Errorf("expected 3 records in trailing 7 days, got %d", got)
	}
}

func TestStreakDays(t *testing.T) {
	tests := []struct {
		name    string
		daysAgo []int
		want    int
	}{
		{"empty", nil, 0},
		{"three consecutive days ending today", []int{0, 1, 2}, 3},
		{"only three days ago", []int{3}, 0},
		{"yesterday and day before, today missing", []int{1, 2}, 2},
		{"today then gap", []int{0, 2}, 1},
		{"today only", []int{0}, 1},
		{"yesterday only", []int{1}, 1},
		{"two days ago only", []int{2}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var records []models.FoodRecord
			for _, d := range tt.daysAgo {
				records = append(records, onDay(t, d))
			}
			if got := StreakDays(records, testNow); got != tt.want {
				t.Errorf("expected streak %d, got %d", tt.want, got)
			}
		})
	}
}

func TestStreakDaysDeduplicatesSameDay(t *testing.T) {
	records := []models.FoodRecord{
		onDay(t, 0),
		onDay(t, 0),
		onDay(t, 0),
		onDay(t, 1),
	}

	if got := StreakDays(records, testNow); got != 2 {
		t.Errorf("multiple records on one day must count once, expected 2, got %d", got)
	}
}

func TestSummarize(t *testing.T) {
	records := []models.FoodRecord{
		func() models.FoodRecord { r := onDay(t, 0); r.Rating = 4; return r }(),
		func() models.FoodRecord { r := onDay(t, 1); r.Rating = 2; return r }(),
		func() models.FoodRecord { r := onDay(t, 10); r.Rating = 3; return r }(),
	}

	got := Summarize(records, testNow)
	if got.Total != 3 {
		t.Errorf("expected total 3, got %d", got.Total)
	}
	if got.RecentCount != 2 {
		t.Errorf("expected 2 recent records, got %d", got.RecentCount)
	}
	if want := 3.0; math.Abs(got.AverageRating-want) > 1e-9 {
		t.Errorf("expected average %v, got %v", want, got.AverageRating)
	}
	if got.StreakDays != 2 {
		t.Errorf("expected streak 2, got %d", got.StreakDays)
	}
}
