package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hansollee/matzip/internal/backup"
	"github.com/hansollee/matzip/internal/journal"
	"github.com/hansollee/matzip/internal/logger"
	"github.com/hansollee/matzip/internal/models"
	"github.com/hansollee/matzip/internal/storage"
)

type Context struct {
	Store   storage.Provider
	Journal *journal.Journal
}

// loadStore opens the storage and runs the scheduled backup check. Write
// commands call this before touching the journal.
func loadStore(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	maybeAutoBackup(ctx)
	return nil
}

// maybeAutoBackup snapshots the storage when the configured cadence says
// one is overdue. Failures are logged, never surfaced: a missed backup must
// not block the user's command.
func maybeAutoBackup(ctx *Context) {
	cfg, err := ctx.Store.GetSettings()
	if err != nil {
		logger.Warn("auto-backup: failed to read settings", "err", err)
		return
	}

	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	due, err := mgr.Due(cfg.BackupCadenceDays, time.Now())
	if err != nil {
		logger.Warn("auto-backup: failed to check cadence", "err", err)
		return
	}
	if !due {
		return
	}

	path, err := mgr.Create()
	if err != nil {
		logger.Warn("auto-backup: snapshot failed", "err", err)
		return
	}
	logger.Info("auto-backup: snapshot created", "path", path)
}

func parseRecordID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid record id: %s", s)
	}
	return id, nil
}

func formatPrice(price *int64) string {
	if price == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *price)
}

func formatRating(rating float64) string {
	full := int(rating)
	var b strings.Builder
	for i := 0; i < 5; i++ {
		if i < full {
			b.WriteString("★")
		} else {
			b.WriteString("☆")
		}
	}
	return fmt.Sprintf("%s %.1f", b.String(), rating)
}

func formatLocation(loc models.Location) string {
	if !loc.HasPlace() {
		return "-"
	}
	if loc.PlaceName != "" {
		return fmt.Sprintf("%s (%s)", loc.PlaceName, loc.Address)
	}
	return loc.Address
}
