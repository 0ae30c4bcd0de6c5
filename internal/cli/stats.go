package cli

import (
	"fmt"
	"time"

	"github.com/hansollee/matzip/internal/constants"
)

type StatsCmd struct{}

func (c *StatsCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	summary, err := ctx.Journal.Stats(time.Now())
	if err != nil {
		return err
	}

	fmt.Println("Journal statistics:")
	fmt.Printf("  Total records:   %d\n", summary.Total)
	fmt.Printf("  Last %d days:     %d\n", constants.RecentWindowDays, summary.RecentCount)
	fmt.Printf("  Average rating:  %.1f\n", summary.AverageRating)
	fmt.Printf("  Streak:          %d day(s)\n", summary.StreakDays)

	return nil
}
