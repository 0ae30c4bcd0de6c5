package models

import "time"

// Settings is the per-install configuration. Exactly one persisted row
// exists; the store creates the default row on first init and never a
// second one.
type Settings struct {
	NotificationsEnabled bool      `json:"notifications_enabled"` // master notification switch
	DailyReminder        bool      `json:"daily_reminder"`        // remind when no record logged today
	LocationEnabled      bool      `json:"location_enabled"`      // allow place-search lookups
	UsageReports         bool      `json:"usage_reports"`         // allow anonymous usage reporting
	Theme                string    `json:"theme"`                 // "dark" | "light"
	Language             string    `json:"language"`              // BCP 47 tag, e.g. "ko", "en"
	BackupCadenceDays    int       `json:"backup_cadence_days"`   // 0 disables scheduled backups
	InstallID            string    `json:"install_id"`            // uuid, assigned once at init
	UpdatedAt            time.Time `json:"updated_at"`
}
