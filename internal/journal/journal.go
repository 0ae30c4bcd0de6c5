// Package journal is the lifecycle layer between command handlers and the
// record store. It validates input, encodes photos into their stored form,
// and keeps search-keyword bookkeeping out of the callers.
package journal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hansollee/matzip/internal/constants"
	"github.com/hansollee/matzip/internal/models"
	"github.com/hansollee/matzip/internal/photo"
	"github.com/hansollee/matzip/internal/query"
	"github.com/hansollee/matzip/internal/stats"
	"github.com/hansollee/matzip/internal/storage"
)

type Journal struct {
	store storage.Provider
}

func New(store storage.Provider) *Journal {
	return &Journal{store: store}
}

// Create validates a new record, encodes the photo at photoPath when one is
// given, and persists it. Returns the store-assigned id. A record always
// carries a meal time: a blank one defaults to the current clock, matching
// the entry form's pre-filled value.
func (j *Journal) Create(rec models.FoodRecord, photoPath string) (int64, error) {
	if rec.Time == "" {
		rec.Time = time.Now().Format(constants.TimeFormat)
	}
	if err := validate(rec); err != nil {
		return 0, err
	}

	if photoPath != "" {
		encoded, err := photo.EncodeFile(photoPath)
		if err != nil {
			return 0, err
		}
		rec.Photo = encoded
	}

	return j.store.AddRecord(rec)
}

// Update applies a partial patch to an existing record. A patch photo path
// is encoded before storage. Missing ids return storage.ErrNotFound.
func (j *Journal) Update(id int64, patch models.RecordPatch, photoPath string) error {
	if err := validatePatch(patch); err != nil {
		return err
	}

	if photoPath != "" {
		encoded, err := photo.EncodeFile(photoPath)
		if err != nil {
			return err
		}
		patch.Photo = &encoded
	}

	return j.store.UpdateRecord(id, patch)
}

// Delete removes a record. Deleting a missing id is not an error.
func (j *Journal) Delete(id int64) error {
	return j.store.DeleteRecord(id)
}

// Load fetches one record, honoring cancellation: when ctx ends before the
// store answers, the late result is dropped and ctx's error is returned.
func (j *Journal) Load(ctx context.Context, id int64) (models.FoodRecord, error) {
	type result struct {
		rec models.FoodRecord
		err error
	}

	ch := make(chan result, 1)
	go func() {
		rec, err := j.store.GetRecord(id)
		ch <- result{rec, err}
	}()

	select {
	case <-ctx.Done():
		return models.FoodRecord{}, ctx.Err()
	case res := <-ch:
		return res.rec, res.err
	}
}

// Search returns the filtered, ordered view of all records. Non-empty
// search terms are tallied for future ranking; a tally failure never fails
// the search itself.
func (j *Journal) Search(f query.Filter) ([]models.FoodRecord, error) {
	records, err := j.store.GetAllRecords()
	if err != nil {
		return nil, err
	}

	if term := strings.TrimSpace(f.SearchTerm); term != "" {
		_ = j.store.TouchKeyword(strings.ToLower(term))
	}

	return query.Apply(records, f), nil
}

// Stats summarizes the collection against the given reference time.
func (j *Journal) Stats(now time.Time) (stats.Summary, error) {
	records, err := j.store.GetAllRecords()
	if err != nil {
		return stats.Summary{}, err
	}
	return stats.Summarize(records, now), nil
}

// Watch exposes the store's live record feed.
func (j *Journal) Watch(ctx context.Context) (<-chan []models.FoodRecord, error) {
	return j.store.WatchRecords(ctx)
}

func validate(rec models.FoodRecord) error {
	if strings.TrimSpace(rec.FoodName) == "" {
		return fmt.Errorf("food name is required")
	}
	if rec.Date == "" {
		return fmt.Errorf("date is required")
	}
	if _, err := time.Parse(constants.DateFormat, rec.Date); err != nil {
		return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", rec.Date)
	}
	if rec.Time == "" {
		return fmt.Errorf("time is required")
	}
	if _, err := time.Parse(constants.TimeFormat, rec.Time); err != nil {
		return fmt.Errorf("invalid time %q, expected HH:MM", rec.Time)
	}
	if err := validateRating(rec.Rating); err != nil {
		return err
	}
	if err := validateReview(rec.Review); err != nil {
		return err
	}
	if rec.Price != nil && *rec.Price < 0 {
		return fmt.Errorf("price must not be negative")
	}
	return nil
}

func validatePatch(patch models.RecordPatch) error {
	if patch.FoodName != nil && strings.TrimSpace(*patch.FoodName) == "" {
		return fmt.Errorf("food name cannot be cleared")
	}
	if patch.Date != nil {
		if _, err := time.Parse(constants.DateFormat, *patch.Date); err != nil {
			return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", *patch.Date)
		}
	}
	if patch.Time != nil {
		if *patch.Time == "" {
			return fmt.Errorf("time cannot be cleared")
		}
		if _, err := time.Parse(constants.TimeFormat, *patch.Time); err != nil {
			return fmt.Errorf("invalid time %q, expected HH:MM", *patch.Time)
		}
	}
	if patch.Rating != nil {
		if err := validateRating(*patch.Rating); err != nil {
			return err
		}
	}
	if patch.Review != nil {
		if err := validateReview(*patch.Review); err != nil {
			return err
		}
	}
	if patch.Price != nil && *patch.Price < 0 {
		return fmt.Errorf("price must not be negative")
	}
	return nil
}

func validateRating(rating float64) error {
	if rating < constants.RatingMin || rating > constants.RatingMax {
		return fmt.Errorf("rating must be between %g and %g", float64(constants.RatingMin), float64(constants.RatingMax))
	}
	return nil
}

func validateReview(review string) error {
	if len([]rune(review)) > constants.ReviewMaxLen {
		return fmt.Errorf("review must be at most %d characters", constants.ReviewMaxLen)
	}
	return nil
}
