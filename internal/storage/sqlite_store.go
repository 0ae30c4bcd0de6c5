package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/hansollee/matzip/internal/constants"
	"github.com/hansollee/matzip/internal/migration"
	"github.com/hansollee/matzip/internal/models"
	"github.com/hansollee/matzip/migrations"
)

// sortableTimeLayout is RFC 3339 with a fixed-width nanosecond field.
// RFC3339Nano trims trailing zeros, which breaks lexicographic ordering on
// the TEXT timestamp columns ("...00Z" sorts after "...00.5Z"); the padded
// form keeps string order equal to time order. Reads still parse with
// RFC3339Nano, which accepts both forms.
const sortableTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

type SQLiteStore struct {
	path string
	db   *sql.DB
	feed *feed
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
		feed: newFeed(),
	}
}

func (s *SQLiteStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Seed the settings singleton only when the row is absent; a second
	// row must never be created.
	if _, err := s.GetSettings(); errors.Is(err, ErrNotFound) {
		if err := s.SaveSettings(defaultSettings()); err != nil {
			return fmt.Errorf("failed to save default settings: %w", err)
		}
	} else if err != nil {
		return err
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'matzip init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	return s.validateSchemaVersion()
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) runMigrations() error {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return fmt.Errorf("failed to access sqlite migrations: %w", err)
	}

	runner := migration.NewRunner(s.db, subFS)
	_, err = runner.ApplyMigrations(nil)
	return err
}

func (s *SQLiteStore) validateSchemaVersion() error {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return fmt.Errorf("failed to access sqlite migrations: %w", err)
	}

	return migration.NewRunner(s.db, subFS).ValidateVersion()
}

func defaultSettings() models.Settings {
	return models.Settings{
		NotificationsEnabled: true,
		DailyReminder:        false,
		LocationEnabled:      true,
		UsageReports:         false,
		Theme:                constants.DefaultTheme,
		Language:             constants.DefaultLanguage,
		BackupCadenceDays:    constants.DefaultBackupCadenceDays,
		InstallID:            uuid.New().String(),
	}
}

func (s *SQLiteStore) GetSettings() (models.Settings, error) {
	row := s.db.QueryRow(`
		SELECT notifications_enabled, daily_reminder, location_enabled, usage_reports,
		       theme, language, backup_cadence_days, install_id, updated_at
		FROM user_settings WHERE id = 1`)

	var cfg models.Settings
	var updatedAt string
	err := row.Scan(
		&cfg.NotificationsEnabled, &cfg.DailyReminder, &cfg.LocationEnabled, &cfg.UsageReports,
		&cfg.Theme, &cfg.Language, &cfg.BackupCadenceDays, &cfg.InstallID, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Settings{}, ErrNotFound
		}
		return models.Settings{}, err
	}

	cfg.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt)
	if err != nil {
		return models.Settings{}, fmt.Errorf("failed to parse settings updated_at: %w", err)
	}

	return cfg, nil
}

func (s *SQLiteStore) SaveSettings(cfg models.Settings) error {
	// The install id is assigned once; keep the stored one on later saves.
	if cfg.InstallID == "" {
		if existing, err := s.GetSettings(); err == nil {
			cfg.InstallID = existing.InstallID
		} else {
			cfg.InstallID = uuid.New().String()
		}
	}
	cfg.UpdatedAt = time.Now()

	_, err := s.db.Exec(`
		INSERT INTO user_settings (
			id, notifications_enabled, daily_reminder, location_enabled, usage_reports,
			theme, language, backup_cadence_days, install_id, updated_at
		) VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			notifications_enabled = excluded.notifications_enabled,
			daily_reminder = excluded.daily_reminder,
			location_enabled = excluded.location_enabled,
			usage_reports = excluded.usage_reports,
			theme = excluded.theme,
			language = excluded.language,
			backup_cadence_days = excluded.backup_cadence_days,
			install_id = excluded.install_id,
			updated_at = excluded.updated_at`,
		cfg.NotificationsEnabled, cfg.DailyReminder, cfg.LocationEnabled, cfg.UsageReports,
		cfg.Theme, cfg.Language, cfg.BackupCadenceDays, cfg.InstallID,
		cfg.UpdatedAt.Format(sortableTimeLayout))
	return err
}

func (s *SQLiteStore) WatchRecords(ctx context.Context) (<-chan []models.FoodRecord, error) {
	ch, err := watchRecords(ctx, s.feed, s.GetAllRecords)
	if err != nil {
		return nil, err
	}

	// In-process writes signal the feed directly; writes from other matzip
	// processes only show up in SQLite's data_version counter, so poll it
	// for as long as this watcher lives.
	pollExternal(ctx, s.feed, externalPollInterval, s.dataVersion)
	return ch, nil
}

// dataVersion moves whenever a connection other than the one answering the
// query commits a change to the database file, which covers writes from
// other processes.
func (s *SQLiteStore) dataVersion() (int64, error) {
	var v int64
	err := s.db.QueryRow("PRAGMA data_version").Scan(&v)
	return v, err
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}

func (s *SQLiteStore) GetDB() *sql.DB {
	return s.db
}
