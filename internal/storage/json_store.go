package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/hansollee/matzip/internal/models"
)

// jsonDoc is the on-disk layout of the JSON backend. Record ids are
// assigned from NextRecordID so they stay unique across deletions, matching
// the SQLite auto-increment behavior.
type jsonDoc struct {
	Version       int                             `json:"version"`
	Settings      models.Settings                 `json:"settings"`
	NextRecordID  int64                           `json:"next_record_id"`
	Records       map[string]models.FoodRecord    `json:"records"`
	NextKeywordID int64                           `json:"next_keyword_id"`
	Keywords      map[string]models.SearchKeyword `json:"keywords"`
}

// JSONStore is the file-backed alternative to the SQLite store, selected by
// a .json config path. The mutex covers the watcher goroutine's reloads;
// concurrent processes sharing one path still race on the file itself
// (last writer wins).
type JSONStore struct {
	path string
	mu   sync.RWMutex
	doc  *jsonDoc
	feed *feed
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
		feed: newFeed(),
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	cfg := defaultSettings()
	cfg.UpdatedAt = time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = &jsonDoc{
		Version:       1,
		Settings:      cfg,
		NextRecordID:  1,
		Records:       make(map[string]models.FoodRecord),
		NextKeywordID: 1,
		Keywords:      make(map[string]models.SearchKeyword),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'matzip init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	doc := &jsonDoc{}
	if err := json.Unmarshal(data, doc); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	if doc.Records == nil {
		doc.Records = make(map[string]models.FoodRecord)
	}
	if doc.Keywords == nil {
		doc.Keywords = make(map[string]models.SearchKeyword)
	}
	if doc.NextRecordID < 1 {
		doc.NextRecordID = 1
	}
	if doc.NextKeywordID < 1 {
		doc.NextKeywordID = 1
	}

	s.mu.Lock()
	s.doc = doc
	s.mu.Unlock()
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) GetSettings() (models.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.doc == nil {
		return models.Settings{}, fmt.Errorf("storage not loaded")
	}
	return s.doc.Settings, nil
}

func (s *JSONStore) SaveSettings(cfg models.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return fmt.Errorf("storage not loaded")
	}
	if cfg.InstallID == "" {
		cfg.InstallID = s.doc.Settings.InstallID
	}
	cfg.UpdatedAt = time.Now()
	s.doc.Settings = cfg
	return s.save()
}

func (s *JSONStore) AddRecord(rec models.FoodRecord) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return 0, fmt.Errorf("storage not loaded")
	}

	now := time.Now()
	rec.ID = s.doc.NextRecordID
	rec.CreatedAt = now
	rec.UpdatedAt = now

	s.doc.Records[strconv.FormatInt(rec.ID, 10)] = rec
	s.doc.NextRecordID++

	if err := s.save(); err != nil {
		return 0, err
	}

	s.feed.notify()
	return rec.ID, nil
}

func (s *JSONStore) GetRecord(id int64) (models.FoodRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.doc == nil {
		return models.FoodRecord{}, fmt.Errorf("storage not loaded")
	}

	rec, ok := s.doc.Records[strconv.FormatInt(id, 10)]
	if !ok {
		return models.FoodRecord{}, ErrNotFound
	}
	return rec, nil
}

func (s *JSONStore) GetAllRecords() ([]models.FoodRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.doc == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	records := make([]models.FoodRecord, 0, len(s.doc.Records))
	for _, rec := range s.doc.Records {
		records = append(records, rec)
	}

	sort.Slice(records, func(i, j int) bool {
		if !records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].CreatedAt.After(records[j].CreatedAt)
		}
		return records[i].ID > records[j].ID
	})

	return records, nil
}

func (s *JSONStore) UpdateRecord(id int64, patch models.RecordPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return fmt.Errorf("storage not loaded")
	}

	existing, ok := s.doc.Records[strconv.FormatInt(id, 10)]
	if !ok {
		return ErrNotFound
	}

	rec := patch.Apply(existing)
	rec.UpdatedAt = time.Now()
	s.doc.Records[strconv.FormatInt(id, 10)] = rec

	if err := s.save(); err != nil {
		return err
	}

	s.feed.notify()
	return nil
}

func (s *JSONStore) DeleteRecord(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return fmt.Errorf("storage not loaded")
	}

	key := strconv.FormatInt(id, 10)
	if _, ok := s.doc.Records[key]; !ok {
		return nil
	}
	delete(s.doc.Records, key)

	if err := s.save(); err != nil {
		return err
	}

	s.feed.notify()
	return nil
}

func (s *JSONStore) WatchRecords(ctx context.Context) (<-chan []models.FoodRecord, error) {
	// Each snapshot rereads the file so a change written by another matzip
	// process is reflected, not just signalled.
	snapshot := func() ([]models.FoodRecord, error) {
		if err := s.Load(); err != nil {
			return nil, err
		}
		return s.GetAllRecords()
	}

	ch, err := watchRecords(ctx, s.feed, snapshot)
	if err != nil {
		return nil, err
	}

	pollExternal(ctx, s.feed, externalPollInterval, s.fingerprint)
	return ch, nil
}

// fingerprint folds the storage file's mtime and size into one value that
// moves on every completed write.
func (s *JSONStore) fingerprint() (int64, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		return 0, err
	}
	return info.ModTime().UnixNano() + info.Size(), nil
}

func (s *JSONStore) TouchKeyword(keyword string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return fmt.Errorf("storage not loaded")
	}

	kw, ok := s.doc.Keywords[keyword]
	if !ok {
		kw = models.SearchKeyword{ID: s.doc.NextKeywordID, Keyword: keyword}
		s.doc.NextKeywordID++
	}
	kw.Count++
	kw.LastUsed = time.Now()
	s.doc.Keywords[keyword] = kw

	return s.save()
}

func (s *JSONStore) GetKeywords(limit int) ([]models.SearchKeyword, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.doc == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	keywords := make([]models.SearchKeyword, 0, len(s.doc.Keywords))
	for _, kw := range s.doc.Keywords {
		keywords = append(keywords, kw)
	}

	sort.Slice(keywords, func(i, j int) bool {
		if keywords[i].Count != keywords[j].Count {
			return keywords[i].Count > keywords[j].Count
		}
		return keywords[i].LastUsed.After(keywords[j].LastUsed)
	})

	if limit > 0 && len(keywords) > limit {
		keywords = keywords[:limit]
	}

	return keywords, nil
}

// GetConfigPath returns the path to the underlying storage file.
func (s *JSONStore) GetConfigPath() string {
	return s.path
}
