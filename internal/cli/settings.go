package cli

import "fmt"

type SettingsShowCmd struct{}

func (c *SettingsShowCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	cfg, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}

	fmt.Println("Settings:")
	fmt.Printf("  Notifications:   %v\n", cfg.NotificationsEnabled)
	fmt.Printf("  Daily reminder:  %v\n", cfg.DailyReminder)
	fmt.Printf("  Location:        %v\n", cfg.LocationEnabled)
	fmt.Printf("  Usage reports:   %v\n", cfg.UsageReports)
	fmt.Printf("  Theme:           %s\n", cfg.Theme)
	fmt.Printf("  Language:        %s\n", cfg.Language)
	fmt.Printf("  Backup cadence:  every %d day(s)\n", cfg.BackupCadenceDays)
	fmt.Printf("  Install id:      %s\n", cfg.InstallID)

	return nil
}

type SettingsSetCmd struct {
	Notifications *bool   `help:"Enable or disable notifications."`
	DailyReminder *bool   `help:"Enable or disable the daily reminder."`
	Location      *bool   `help:"Enable or disable location lookups."`
	UsageReports  *bool   `help:"Enable or disable anonymous usage reports."`
	Theme         *string `help:"Display theme (dark|light)."`
	Language      *string `help:"Display language code, e.g. ko, en."`
	BackupEvery   *int    `help:"Backup cadence in days, 0 disables scheduled backups."`
}

func (c *SettingsSetCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	cfg, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}

	changed := false
	if c.Notifications != nil {
		cfg.NotificationsEnabled = *c.Notifications
		changed = true
	}
	if c.DailyReminder != nil {
		cfg.DailyReminder = *c.DailyReminder
		changed = true
	}
	if c.Location != nil {
		cfg.LocationEnabled = *c.Location
		changed = true
	}
	if c.UsageReports != nil {
		cfg.UsageReports = *c.UsageReports
		changed = true
	}
	if c.Theme != nil {
		cfg.Theme = *c.Theme
		changed = true
	}
	if c.Language != nil {
		cfg.Language = *c.Language
		changed = true
	}
	if c.BackupEvery != nil {
		if *c.BackupEvery < 0 {
			return fmt.Errorf("backup cadence must not be negative")
		}
		cfg.BackupCadenceDays = *c.BackupEvery
		changed = true
	}

	if !changed {
		fmt.Println("Nothing to change")
		return nil
	}

	if err := ctx.Store.SaveSettings(cfg); err != nil {
		return err
	}

	fmt.Println("Settings updated")
	return nil
}
