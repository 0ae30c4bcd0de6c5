package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/hansollee/matzip/internal/cli"
	"github.com/hansollee/matzip/internal/journal"
	"github.com/hansollee/matzip/internal/logger"
	"github.com/hansollee/matzip/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Storage file path (.db for SQLite, .json for a plain file)." type:"path" default:"~/.config/matzip/matzip.db"`
	Debug   bool   `help:"Enable debug logging to stderr."`

	Init     cli.InitCmd     `cmd:"" help:"Initialize matzip storage."`
	Tui      cli.TuiCmd      `cmd:"" help:"Launch the interactive journal." default:"1"`
	Add      cli.AddCmd      `cmd:"" help:"Log a meal."`
	List     cli.ListCmd     `cmd:"" help:"List records."`
	Show     cli.ShowCmd     `cmd:"" help:"Show one record in full."`
	Edit     cli.EditCmd     `cmd:"" help:"Edit a record."`
	Delete   cli.DeleteCmd   `cmd:"" help:"Delete a record."`
	Stats    cli.StatsCmd    `cmd:"" help:"Show journal statistics."`
	Watch    cli.WatchCmd    `cmd:"" help:"Stream the record list as it changes."`
	Place    cli.PlaceCmd    `cmd:"" help:"Search for a place."`
	Feedback cli.FeedbackCmd `cmd:"" help:"Send feedback to the developers."`
	Doctor   cli.DoctorCmd   `cmd:"" help:"Run diagnostics."`
	Settings struct {
		Show cli.SettingsShowCmd `cmd:"" help:"Show current settings." default:"1"`
		Set  cli.SettingsSetCmd  `cmd:"" help:"Change settings."`
	} `cmd:"" help:"Manage settings."`
	Backup struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Create a backup now."`
		List    cli.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage backups."`
	Apikey struct {
		Set    cli.ApiKeySetCmd    `cmd:"" help:"Store the place-search API key."`
		Show   cli.ApiKeyShowCmd   `cmd:"" help:"Show the stored API key (masked)."`
		Delete cli.ApiKeyDeleteCmd `cmd:"" help:"Remove the stored API key."`
	} `cmd:"" help:"Manage the place-search API key."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("matzip"),
		kong.Description("Personal food journal: log meals, browse your history, keep the streak alive"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: filepath.Dir(CLI.Config),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to initialize logging: %v\n", err)
	}

	var store storage.Provider
	if strings.HasSuffix(CLI.Config, ".json") {
		store = storage.NewJSONStore(CLI.Config)
	} else {
		store = storage.NewSQLiteStore(CLI.Config)
	}

	appCtx := &cli.Context{
		Store:   store,
		Journal: journal.New(store),
	}

	err := ctx.Run(appCtx)
	if closeErr := store.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "matzip: %v\n", err)
		os.Exit(1)
	}
}
