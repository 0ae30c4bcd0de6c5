package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

type WatchCmd struct{}

// Run streams the record list: the current snapshot first, then a fresh one
// after every write, until interrupted. Writes by another matzip process
// sharing this store are picked up by polling, so they may lag by up to the
// poll interval.
func (c *WatchCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	watchCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ch, err := ctx.Journal.Watch(watchCtx)
	if err != nil {
		return err
	}

	fmt.Println("Watching records (Ctrl-C to stop)...")
	for snapshot := range ch {
		fmt.Printf("--- %d record(s) ---\n", len(snapshot))
		for _, rec := range snapshot {
			fmt.Printf("  #%-4d %s  %s  %s\n", rec.ID, rec.Date, formatRating(rec.Rating), rec.FoodName)
		}
	}

	return nil
}
