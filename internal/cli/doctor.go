package cli

import (
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/hansollee/matzip/internal/backup"
	"github.com/hansollee/matzip/internal/constants"
	"github.com/hansollee/matzip/internal/keyring"
	"github.com/hansollee/matzip/internal/migration"
	"github.com/hansollee/matzip/internal/storage"
	"github.com/hansollee/matzip/migrations"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false

	if err := checkStoreReachable(ctx); err != nil {
		fmt.Printf("FAIL  storage reachable: %v\n", err)
		hasError = true
	} else {
		fmt.Println("ok    storage reachable")

		if err := checkSchemaVersion(ctx); err != nil {
			fmt.Printf("FAIL  schema version: %v\n", err)
			hasError = true
		} else {
			fmt.Println("ok    schema version")
		}

		if err := checkSettingsRow(ctx); err != nil {
			fmt.Printf("FAIL  settings row: %v\n", err)
			hasError = true
		} else {
			fmt.Println("ok    settings row")
		}
	}

	if err := checkBackupsPresent(ctx); err != nil {
		fmt.Printf("warn  backups: %v\n", err)
	} else {
		fmt.Println("ok    backups present")
	}

	if keyring.IsAvailable() {
		if _, err := keyring.GetAPIKey(); err != nil {
			fmt.Println("warn  place search: no API key stored (run 'matzip apikey set')")
		} else {
			fmt.Println("ok    place-search API key stored")
		}
	} else {
		fmt.Println("warn  OS keyring unavailable, place search disabled")
	}

	if n, err := countOtherInstances(); err != nil {
		fmt.Printf("warn  process check: %v\n", err)
	} else if n > 0 {
		fmt.Printf("warn  %d other matzip process(es) running against this profile\n", n)
	} else {
		fmt.Println("ok    no competing matzip processes")
	}

	if err := checkClock(); err != nil {
		fmt.Printf("FAIL  clock: %v\n", err)
		hasError = true
	} else {
		fmt.Println("ok    clock sane")
	}

	fmt.Println()
	if hasError {
		return fmt.Errorf("diagnostics found problems")
	}
	fmt.Println("All checks passed")
	return nil
}

func checkStoreReachable(ctx *Context) error {
	return ctx.Store.Load()
}

func checkSchemaVersion(ctx *Context) error {
	sqlStore, ok := ctx.Store.(*storage.SQLiteStore)
	if !ok {
		// The JSON backend has no schema version to validate.
		return nil
	}

	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return err
	}

	runner := migration.NewRunner(sqlStore.GetDB(), subFS)
	if err := runner.ValidateVersion(); err != nil {
		return err
	}

	current, err := runner.GetCurrentVersion()
	if err != nil {
		return err
	}
	latest, err := runner.GetLatestVersion()
	if err != nil {
		return err
	}
	if current < latest {
		return fmt.Errorf("pending migrations: at %d, latest is %d (run 'matzip init')", current, latest)
	}
	return nil
}

func checkSettingsRow(ctx *Context) error {
	cfg, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}
	if cfg.InstallID == "" {
		return fmt.Errorf("settings row has no install id")
	}
	return nil
}

func checkBackupsPresent(ctx *Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.List()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups yet (run 'matzip backup create')")
	}

	newest := backups[0].Timestamp
	if age := time.Since(newest); age > 30*24*time.Hour {
		return fmt.Errorf("newest backup is %d days old", int(age.Hours()/24))
	}
	return nil
}

// countOtherInstances scans the process table for other matzip binaries.
func countOtherInstances() (int, error) {
	processes, err := ps.Processes()
	if err != nil {
		return 0, err
	}

	self := os.Getpid()
	count := 0
	for _, p := range processes {
		if p.Pid() == self {
			continue
		}
		name := strings.TrimSuffix(p.Executable(), ".exe")
		if name == constants.AppName {
			count++
		}
	}
	return count, nil
}

func checkClock() error {
	now := time.Now()
	if now.Year() < 2024 {
		return fmt.Errorf("system clock reports %s, which is in the past", now.Format("2006-01-02"))
	}
	if _, offset := now.Zone(); offset < -14*3600 || offset > 14*3600 {
		return fmt.Errorf("timezone offset %d seconds is out of range", offset)
	}
	return nil
}
