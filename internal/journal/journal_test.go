package journal

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hansollee/matzip/internal/models"
	"github.com/hansollee/matzip/internal/query"
	"github.com/hansollee/matzip/internal/storage"
)

func setupJournal(t *testing.T) *Journal {
	t.Helper()

	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "matzip.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return New(store)
}

func sampleRecord() models.FoodRecord {
	return models.FoodRecord{
		Date:           "2025-06-10",
		Time:           "12:30",
		RestaurantName: "Han River Diner",
		FoodName:       "Naengmyeon",
		Rating:         4.5,
		Review:         "cold and perfect",
	}
}

func TestCreateRoundTrip(t *testing.T) {
	j := setupJournal(t)

	in := sampleRecord()
	id, err := j.Create(in, "")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := j.Load(context.Background(), id)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if got.FoodName != in.FoodName || got.RestaurantName != in.RestaurantName ||
		got.Date != in.Date || got.Rating != in.Rating || got.Review != in.Review {
		t.Errorf("loaded record differs from input: %+v", got)
	}
	if got.ID != id {
		t.Errorf("expected id %d, got %d", id, got.ID)
	}
	if got.CreatedAt.IsZero() || got.UpdatedAt.Before(got.CreatedAt) {
		t.Errorf("bad timestamps: created=%v updated=%v", got.CreatedAt, got.UpdatedAt)
	}
}

func TestCreateValidation(t *testing.T) {
	j := setupJournal(t)

	tests := []struct {
		name   string
		mutate func(*models.FoodRecord)
		want   string
	}{
		{"missing food name", func(r *models.FoodRecord) { r.FoodName = "  " }, "food name"},
		{"missing date", func(r *models.FoodRecord) { r.Date = "" }, "date"},
		{"bad date", func(r *models.FoodRecord) { r.Date = "June 10" }, "invalid date"},
		{"bad time", func(r *models.FoodRecord) { r.Time = "noon" }, "invalid time"},
		{"rating too high", func(r *models.FoodRecord) { r.Rating = 5.5 }, "rating"},
		{"rating negative", func(r *models.FoodRecord) { r.Rating = -1 }, "rating"},
		{"review too long", func(r *models.FoodRecord) { r.Review = strings.Repeat("a", 2001) }, "review"},
		{"negative price", func(r *models.FoodRecord) { p := int64(-100); r.Price = &p }, "price"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := sampleRecord()
			tt.mutate(&rec)
			_, err := j.Create(rec, "")
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestCreateDefaultsBlankTime(t *testing.T) {
	j := setupJournal(t)

	rec := sampleRecord()
	rec.Time = ""
	id, err := j.Create(rec, "")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := j.Load(context.Background(), id)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.Time == "" {
		t.Fatal("expected a defaulted time, got empty")
	}
	if _, err := time.Parse("15:04", got.Time); err != nil {
		t.Errorf("defaulted time %q is not HH:MM: %v", got.Time, err)
	}
}

func TestUpdateRejectsClearedTime(t *testing.T) {
	j := setupJournal(t)

	id, err := j.Create(sampleRecord(), "")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	empty := ""
	err = j.Update(id, models.RecordPatch{Time: &empty}, "")
	if err == nil || !strings.Contains(err.Error(), "time") {
		t.Errorf("expected a time error, got %v", err)
	}

	got, err := j.Load(context.Background(), id)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.Time != "12:30" {
		t.Errorf("stored time changed to %q", got.Time)
	}
}

func TestUpdateRestampsUpdatedAt(t *testing.T) {
	j := setupJournal(t)

	id, err := j.Create(sampleRecord(), "")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	before, err := j.Load(context.Background(), id)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	time.Sleep(5 * time.Millisecond)

	rating := 5.0
	if err := j.Update(id, models.RecordPatch{Rating: &rating}, ""); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	after, err := j.Load(context.Background(), id)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if after.Rating != 5 {
		t.Errorf("expected rating 5, got %v", after.Rating)
	}
	if !after.UpdatedAt.After(before.UpdatedAt) {
		t.Errorf("updatedAt not advanced: before=%v after=%v", before.UpdatedAt, after.UpdatedAt)
	}
	if !after.CreatedAt.Equal(before.CreatedAt) {
		t.Errorf("createdAt changed: before=%v after=%v", before.CreatedAt, after.CreatedAt)
	}
}

func TestUpdateMissingRecord(t *testing.T) {
	j := setupJournal(t)

	rating := 3.0
	err := j.Update(999, models.RecordPatch{Rating: &rating}, "")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	j := setupJournal(t)

	id, err := j.Create(sampleRecord(), "")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := j.Delete(id); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := j.Load(context.Background(), id); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := j.Delete(id); err != nil {
		t.Errorf("second delete must not fail, got %v", err)
	}
}

func TestLoadHonorsCancellation(t *testing.T) {
	j := setupJournal(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := j.Load(ctx, 1)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestSearchFiltersAndTalliesKeyword(t *testing.T) {
	j := setupJournal(t)

	for _, name := range []string{"Bibimbap", "Bulgogi", "Pasta"} {
		rec := sampleRecord()
		rec.FoodName = name
		if _, err := j.Create(rec, ""); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	got, err := j.Search(query.Filter{SearchTerm: "b"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 matches for 'b', got %d", len(got))
	}

	if _, err := j.Search(query.Filter{SearchTerm: "b"}); err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	keywords, err := j.store.GetKeywords(10)
	if err != nil {
		t.Fatalf("GetKeywords failed: %v", err)
	}
	if len(keywords) != 1 || keywords[0].Keyword != "b" || keywords[0].Count != 2 {
		t.Errorf("expected keyword 'b' tallied twice, got %+v", keywords)
	}
}

func TestStats(t *testing.T) {
	j := setupJournal(t)

	today := time.Now().Format("2006-01-02")
	rec := sampleRecord()
	rec.Date = today
	if _, err := j.Create(rec, ""); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	summary, err := j.Stats(time.Now())
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if summary.Total != 1 || summary.StreakDays != 1 {
		t.Errorf("unexpected summary: %+v", summary)
	}
}
