package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/hansollee/matzip/internal/constants"
	"github.com/hansollee/matzip/internal/models"
)

// RecordFormModel holds the text state of the record-entry form. Everything
// is a string until submission; parsing happens in toRecord.
type RecordFormModel struct {
	Food       string
	Restaurant string
	Date       string
	Time       string
	Rating     string
	Category   string
	Price      string
	Review     string
}

func newRecordFormModel(rec models.FoodRecord) *RecordFormModel {
	f := &RecordFormModel{
		Food:       rec.FoodName,
		Restaurant: rec.RestaurantName,
		Date:       rec.Date,
		Time:       rec.Time,
		Category:   rec.Category,
		Review:     rec.Review,
	}
	if rec.Date == "" {
		f.Date = time.Now().Format(constants.DateFormat)
	}
	if rec.Time == "" {
		f.Time = time.Now().Format(constants.TimeFormat)
	}
	if rec.Rating > 0 {
		f.Rating = strconv.FormatFloat(rec.Rating, 'f', -1, 64)
	}
	if rec.Price != nil {
		f.Price = strconv.FormatInt(*rec.Price, 10)
	}
	return f
}

// newRecordForm builds the two-step entry form: the essentials first, then
// the optional details.
func newRecordForm(f *RecordFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("What did you eat?").
				Value(&f.Food).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("food name is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Restaurant").
				Value(&f.Restaurant),
			huh.NewInput().
				Title("Date (YYYY-MM-DD)").
				Value(&f.Date).
				Validate(func(s string) error {
					if _, err := time.Parse(constants.DateFormat, s); err != nil {
						return fmt.Errorf("expected YYYY-MM-DD")
					}
					return nil
				}),
			huh.NewInput().
				Title("Time (HH:MM)").
				Value(&f.Time).
				Validate(func(s string) error {
					if s == "" {
						return nil
					}
					if _, err := time.Parse(constants.TimeFormat, s); err != nil {
						return fmt.Errorf("expected HH:MM")
					}
					return nil
				}),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Rating (0-5)").
				Value(&f.Rating).
				Validate(func(s string) error {
					if s == "" {
						return nil
					}
					r, err := strconv.ParseFloat(s, 64)
					if err != nil || r < constants.RatingMin || r > constants.RatingMax {
						return fmt.Errorf("expected a number between 0 and 5")
					}
					return nil
				}),
			huh.NewInput().
				Title("Category (optional)").
				Value(&f.Category),
			huh.NewInput().
				Title("Price (optional)").
				Value(&f.Price).
				Validate(func(s string) error {
					if s == "" {
						return nil
					}
					p, err := strconv.ParseInt(s, 10, 64)
					if err != nil || p < 0 {
						return fmt.Errorf("expected a non-negative whole number")
					}
					return nil
				}),
			huh.NewText().
				Title("Review (optional)").
				CharLimit(constants.ReviewMaxLen).
				Value(&f.Review),
		),
	)
}

// toRecord converts the submitted form back into a record. Field-level
// validators have already run, so parse failures here are treated as zero.
func (f *RecordFormModel) toRecord() models.FoodRecord {
	rec := models.FoodRecord{
		FoodName:       strings.TrimSpace(f.Food),
		RestaurantName: strings.TrimSpace(f.Restaurant),
		Date:           f.Date,
		Time:           f.Time,
		Category:       strings.TrimSpace(f.Category),
		Review:         f.Review,
	}
	if r, err := strconv.ParseFloat(f.Rating, 64); err == nil {
		rec.Rating = r
	}
	if p, err := strconv.ParseInt(f.Price, 10, 64); err == nil {
		rec.Price = &p
	}
	return rec
}

// toPatch expresses the form as a full-field patch against an existing
// record.
func (f *RecordFormModel) toPatch() models.RecordPatch {
	rec := f.toRecord()
	patch := models.RecordPatch{
		FoodName:       &rec.FoodName,
		RestaurantName: &rec.RestaurantName,
		Date:           &rec.Date,
		Rating:         &rec.Rating,
		Category:       &rec.Category,
		Review:         &rec.Review,
	}
	// A blanked time field keeps the stored time rather than clearing it.
	if rec.Time != "" {
		patch.Time = &rec.Time
	}
	if rec.Price != nil {
		patch.Price = rec.Price
	}
	return patch
}
