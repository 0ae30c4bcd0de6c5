package storage

import (
	"context"
	"errors"

	"github.com/hansollee/matzip/internal/models"
)

// ErrNotFound is returned when a record id does not exist. Getting a
// missing record is a normal outcome, not a failure; callers should test
// with errors.Is.
var ErrNotFound = errors.New("record not found")

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings (singleton row, created on Init)
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Records. AddRecord ignores any caller-supplied ID/CreatedAt/UpdatedAt
	// and returns the assigned id; UpdateRecord restamps UpdatedAt and
	// fails for a missing id; DeleteRecord is idempotent.
	AddRecord(models.FoodRecord) (int64, error)
	GetRecord(id int64) (models.FoodRecord, error)
	GetAllRecords() ([]models.FoodRecord, error) // ordered by CreatedAt desc
	UpdateRecord(id int64, patch models.RecordPatch) error
	DeleteRecord(id int64) error

	// WatchRecords is a live query over the records collection: the channel
	// receives the current snapshot immediately and a fresh snapshot after
	// every write, until ctx is cancelled (the channel is then closed).
	WatchRecords(ctx context.Context) (<-chan []models.FoodRecord, error)

	// Search keywords
	TouchKeyword(keyword string) error
	GetKeywords(limit int) ([]models.SearchKeyword, error)

	// Utils
	GetConfigPath() string
}
