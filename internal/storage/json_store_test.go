package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/hansollee/matzip/internal/models"
)

func setupJSONStore(t *testing.T) *JSONStore {
	t.Helper()

	store := NewJSONStore(filepath.Join(t.TempDir(), "matzip.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func TestJSONInitRefusesExisting(t *testing.T) {
	store := setupJSONStore(t)

	again := NewJSONStore(store.GetConfigPath())
	if err := again.Init(); err == nil {
		t.Error("expected error initializing over an existing file")
	}
}

func TestJSONPersistsAcrossInstances(t *testing.T) {
	store := setupJSONStore(t)

	id, err := store.AddRecord(testRecord())
	if err != nil {
		t.Fatalf("AddRecord failed: %v", err)
	}

	reopened := NewJSONStore(store.GetConfigPath())
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	got, err := reopened.GetRecord(id)
	if err != nil {
		t.Fatalf("GetRecord failed: %v", err)
	}
	if got.FoodName != "Kalguksu" {
		t.Errorf("unexpected record: %+v", got)
	}

	// Ids keep increasing after a reload, never reusing a deleted id.
	if err := reopened.DeleteRecord(id); err != nil {
		t.Fatalf("DeleteRecord failed: %v", err)
	}
	id2, err := reopened.AddRecord(testRecord())
	if err != nil {
		t.Fatalf("AddRecord failed: %v", err)
	}
	if id2 <= id {
		t.Errorf("expected id above %d, got %d", id, id2)
	}
}

func TestJSONDeleteIsIdempotent(t *testing.T) {
	store := setupJSONStore(t)

	id, err := store.AddRecord(testRecord())
	if err != nil {
		t.Fatalf("AddRecord failed: %v", err)
	}

	if err := store.DeleteRecord(id); err != nil {
		t.Fatalf("DeleteRecord failed: %v", err)
	}
	if err := store.DeleteRecord(id); err != nil {
		t.Errorf("second delete must not fail: %v", err)
	}
	if _, err := store.GetRecord(id); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestJSONUpdateRecord(t *testing.T) {
	store := setupJSONStore(t)

	id, err := store.AddRecord(testRecord())
	if err != nil {
		t.Fatalf("AddRecord failed: %v", err)
	}
	before, _ := store.GetRecord(id)

	time.Sleep(5 * time.Millisecond)

	name := "Mandu"
	if err := store.UpdateRecord(id, models.RecordPatch{FoodName: &name}); err != nil {
		t.Fatalf("UpdateRecord failed: %v", err)
	}

	after, err := store.GetRecord(id)
	if err != nil {
		t.Fatalf("GetRecord failed: %v", err)
	}
	if after.FoodName != "Mandu" {
		t.Errorf("patch not applied: %+v", after)
	}
	if !after.UpdatedAt.After(before.UpdatedAt) {
		t.Errorf("updatedAt not advanced")
	}
	if !after.CreatedAt.Equal(before.CreatedAt) {
		t.Errorf("createdAt changed")
	}
}

func TestJSONSettings(t *testing.T) {
	store := setupJSONStore(t)

	cfg, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if cfg.InstallID == "" {
		t.Error("expected seeded install id")
	}

	cfg.Language = "en"
	if err := store.SaveSettings(cfg); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}

	got, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if got.Language != "en" {
		t.Errorf("expected language en, got %q", got.Language)
	}
}

func TestJSONWatchSeesOtherInstanceWrites(t *testing.T) {
	store := setupJSONStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := store.WatchRecords(ctx)
	if err != nil {
		t.Fatalf("WatchRecords failed: %v", err)
	}

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("no initial snapshot")
	}

	// A second store on the same file stands in for another matzip process;
	// only the file changes, never the watcher's in-process feed.
	other := NewJSONStore(store.GetConfigPath())
	if err := other.Load(); err != nil {
		t.Fatalf("failed to open second instance: %v", err)
	}
	if _, err := other.AddRecord(testRecord()); err != nil {
		t.Fatalf("AddRecord via second instance failed: %v", err)
	}

	deadline := time.After(5 * time.Second)
	for {
		select {
		case snap := <-ch:
			if len(snap) == 1 {
				return
			}
		case <-deadline:
			t.Fatal("write from second instance never delivered")
		}
	}
}

func TestJSONWatchRecords(t *testing.T) {
	store := setupJSONStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := store.WatchRecords(ctx)
	if err != nil {
		t.Fatalf("WatchRecords failed: %v", err)
	}

	select {
	case snap := <-ch:
		if len(snap) != 0 {
			t.Errorf("expected empty snapshot, got %d", len(snap))
		}
	case <-time.After(time.Second):
		t.Fatal("no initial snapshot")
	}

	if _, err := store.AddRecord(testRecord()); err != nil {
		t.Fatalf("AddRecord failed: %v", err)
	}

	select {
	case snap := <-ch:
		if len(snap) != 1 {
			t.Errorf("expected 1 record, got %d", len(snap))
		}
	case <-time.After(time.Second):
		t.Fatal("no snapshot after write")
	}
}
