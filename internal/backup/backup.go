// Package backup snapshots the journal database into a rotating backup
// directory next to it, and restores verified snapshots in place.
package backup

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const (
	// MaxBackups is how many snapshots are kept before rotation.
	MaxBackups = 14

	backupDirName = "backups"
	filePrefix    = "matzip-"

	timestampLayout = "20060102-150405"
)

// Info describes one backup snapshot on disk.
type Info struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Manager snapshots and restores one storage file. Both the SQLite and the
// JSON backend are supported; SQLite snapshots go through VACUUM INTO so a
// live database is copied consistently.
type Manager struct {
	storePath string
	backupDir string
}

func NewManager(storePath string) *Manager {
	return &Manager{
		storePath: storePath,
		backupDir: filepath.Join(filepath.Dir(storePath), backupDirName),
	}
}

func (m *Manager) BackupDir() string {
	return m.backupDir
}

func (m *Manager) isSQLite() bool {
	return !strings.HasSuffix(m.storePath, ".json")
}

func (m *Manager) suffix() string {
	if m.isSQLite() {
		return ".db"
	}
	return ".json"
}

// Create writes a new snapshot and rotates old ones. Returns the snapshot
// path.
func (m *Manager) Create() (string, error) {
	path, err := m.snapshot()
	if err != nil {
		return "", err
	}

	if err := m.rotate(); err != nil {
		// The snapshot itself succeeded; rotation failure is not fatal.
		fmt.Fprintf(os.Stderr, "warning: failed to rotate old backups: %v\n", err)
	}

	return path, nil
}

func (m *Manager) snapshot() (string, error) {
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	if _, err := os.Stat(m.storePath); os.IsNotExist(err) {
		return "", fmt.Errorf("storage does not exist: %s", m.storePath)
	}

	dest, err := m.uniquePath(time.Now())
	if err != nil {
		return "", err
	}

	if m.isSQLite() {
		if err := m.vacuumInto(dest); err != nil {
			return "", fmt.Errorf("failed to snapshot database: %w", err)
		}
	} else {
		if err := copyFile(m.storePath, dest); err != nil {
			return "", fmt.Errorf("failed to snapshot storage: %w", err)
		}
	}

	return dest, nil
}

func (m *Manager) uniquePath(now time.Time) (string, error) {
	base := filePrefix + now.Format(timestampLayout)

	path := filepath.Join(m.backupDir, base+m.suffix())
	for counter := 1; ; counter++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path, nil
		}
		if counter > 100 {
			return "", fmt.Errorf("failed to generate unique backup filename")
		}
		path = filepath.Join(m.backupDir, fmt.Sprintf("%s-%d%s", base, counter, m.suffix()))
	}
}

// vacuumInto produces a compacted, consistent copy of a live database.
func (m *Manager) vacuumInto(dest string) error {
	db, err := sql.Open("sqlite", m.storePath+"?mode=ro")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count); err != nil {
		return fmt.Errorf("database appears to be corrupted: %w", err)
	}

	if _, err := db.Exec("VACUUM INTO ?", dest); err != nil {
		// VACUUM INTO needs SQLite 3.27+; fall back to a plain copy.
		return copyFile(m.storePath, dest)
	}
	return nil
}

// List returns all snapshots, newest first.
func (m *Manager) List() ([]Info, error) {
	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Info{}, nil
		}
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var backups []Info
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		ts, ok := parseBackupName(entry.Name(), m.suffix())
		if !ok {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		backups = append(backups, Info{
			Path:      filepath.Join(m.backupDir, entry.Name()),
			Timestamp: ts,
			Size:      info.Size(),
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})

	return backups, nil
}

func parseBackupName(name, suffix string) (time.Time, bool) {
	if !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, suffix) {
		return time.Time{}, false
	}

	stamp := strings.TrimSuffix(strings.TrimPrefix(name, filePrefix), suffix)
	// Strip a collision counter suffix if one is present.
	if len(stamp) > len(timestampLayout) {
		stamp = stamp[:len(timestampLayout)]
	}

	ts, err := time.Parse(timestampLayout, stamp)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

func (m *Manager) rotate() error {
	backups, err := m.List()
	if err != nil {
		return err
	}

	for i := MaxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
	}
	return nil
}

// Due reports whether a new snapshot is needed given the configured cadence
// in days. Cadence 0 disables scheduled backups.
func (m *Manager) Due(cadenceDays int, now time.Time) (bool, error) {
	if cadenceDays <= 0 {
		return false, nil
	}

	backups, err := m.List()
	if err != nil {
		return false, err
	}
	if len(backups) == 0 {
		return true, nil
	}

	return now.Sub(backups[0].Timestamp) >= time.Duration(cadenceDays)*24*time.Hour, nil
}

// Restore replaces the storage file with a verified snapshot. The current
// file is snapshotted first so a restore is never destructive, and the swap
// itself is an atomic rename.
func (m *Manager) Restore(backupPath string) error {
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return fmt.Errorf("backup file does not exist: %s", backupPath)
	}

	if err := m.verify(backupPath); err != nil {
		return fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}

	if _, err := os.Stat(m.storePath); err == nil {
		if _, err := m.snapshot(); err != nil {
			return fmt.Errorf("failed to back up current storage before restore: %w", err)
		}
	}

	tempPath := m.storePath + ".restore.tmp"
	if err := copyFile(backupPath, tempPath); err != nil {
		return fmt.Errorf("failed to copy backup file: %w", err)
	}

	if err := os.Rename(tempPath, m.storePath); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to restore storage: %w", err)
	}

	return nil
}

func (m *Manager) verify(path string) error {
	if !m.isSQLite() {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if !json.Valid(data) {
			return fmt.Errorf("not a valid JSON document")
		}
		return nil
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()

	var count int
	return db.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.ReadFrom(in); err != nil {
		return err
	}
	return out.Sync()
}
