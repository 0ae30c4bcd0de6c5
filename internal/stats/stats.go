// Package stats computes aggregate metrics over the record collection.
// Every function is pure and takes an explicit reference time, so the
// calendar-boundary behavior is fully testable.
package stats

import (
	"sort"
	"time"

	"github.com/hansollee/matzip/internal/constants"
	"github.com/hansollee/matzip/internal/models"
)

// Summary bundles the four derived metrics shown on the journal overview.
type Summary struct {
	Total         int
	RecentCount   int
	AverageRating float64
	StreakDays    int
}

// Summarize computes all metrics against the given reference time.
func Summarize(records []models.FoodRecord, now time.Time) Summary {
	return Summary{
		Total:         len(records),
		RecentCount:   CountWithin(records, now, constants.RecentWindowDays),
		AverageRating: AverageRating(records),
		StreakDays:    StreakDays(records, now),
	}
}

// AverageRating is the arithmetic mean of all ratings, 0 for an empty set.
func AverageRating(records []models.FoodRecord) float64 {
	if len(records) == 0 {
		return 0
	}

	var sum float64
	for _, rec := range records {
		sum += rec.Rating
	}
	return sum / float64(len(records))
}

// CountWithin counts records whose visit date falls in the trailing
// windowDays-day window ending at now, inclusive of exactly windowDays ago.
// Records with an unparseable date are skipped.
func CountWithin(records []models.FoodRecord, now time.Time, windowDays int) int {
	today := normalize(now)
	cutoff := today.AddDate(0, 0, -windowDays)

	count := 0
	for _, rec := range records {
		day, ok := recordDay(rec)
		if !ok {
			continue
		}
		if !day.Before(cutoff) && !day.After(today) {
			count++
		}
	}
	return count
}

// StreakDays counts consecutive calendar days with at least one record,
// walking backward from the most recent recorded day. A streak survives
// today not being logged yet, but breaks once the most recent entry is two
// or more days old.
func StreakDays(records []models.FoodRecord, now time.Time) int {
	seen := make(map[time.Time]struct{})
	for _, rec := range records {
		if day, ok := recordDay(rec); ok {
			seen[day] = struct{}{}
		}
	}
	if len(seen) == 0 {
		return 0
	}

	days := make([]time.Time, 0, len(seen))
	for day := range seen {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].After(days[j])
	})

	today := normalize(now)
	if daysBetween(days[0], today) > 1 {
		return 0
	}

	streak := 1
	for i := 1; i < len(days); i++ {
		if daysBetween(days[i], days[i-1]) != 1 {
			break
		}
		streak++
	}
	return streak
}

// recordDay parses the visit date into a normalized calendar day.
func recordDay(rec models.FoodRecord) (time.Time, bool) {
	day, err := time.Parse(constants.DateFormat, rec.Date)
	if err != nil {
		return time.Time{}, false
	}
	return day, true
}

func normalize(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysBetween(earlier, later time.Time) int {
	return int(later.Sub(earlier).Hours() / 24)
}
