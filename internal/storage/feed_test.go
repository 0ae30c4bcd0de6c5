package storage

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hansollee/matzip/internal/models"
)

func TestWatchRecordsWriteDuringSetup(t *testing.T) {
	f := newFeed()

	// The first snapshot call stands in for a write committing while the
	// watcher is still being set up: the notification it fires must be
	// answered with a fresh snapshot, not lost.
	calls := 0
	snapshot := func() ([]models.FoodRecord, error) {
		calls++
		if calls == 1 {
			f.notify()
			return nil, nil
		}
		return []models.FoodRecord{{ID: 1, FoodName: "Kimbap"}}, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := watchRecords(ctx, f, snapshot)
	if err != nil {
		t.Fatalf("watchRecords failed: %v", err)
	}

	select {
	case snap := <-ch:
		if len(snap) != 0 {
			t.Errorf("expected empty initial snapshot, got %d records", len(snap))
		}
	case <-time.After(time.Second):
		t.Fatal("no initial snapshot delivered")
	}

	select {
	case snap := <-ch:
		if len(snap) != 1 {
			t.Errorf("expected 1 record in the re-delivered snapshot, got %d", len(snap))
		}
	case <-time.After(time.Second):
		t.Fatal("write during watcher setup was never re-delivered")
	}
}

func TestWatchRecordsFirstSnapshotError(t *testing.T) {
	f := newFeed()
	boom := errors.New("records unavailable")

	_, err := watchRecords(context.Background(), f, func() ([]models.FoodRecord, error) {
		return nil, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected snapshot error, got %v", err)
	}

	f.mu.Lock()
	n := len(f.subs)
	f.mu.Unlock()
	if n != 0 {
		t.Errorf("failed watch left %d subscriber(s) registered", n)
	}
}

func TestPollExternalNotifiesOnFingerprintChange(t *testing.T) {
	f := newFeed()
	sig := f.subscribe()
	defer f.unsubscribe(sig)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var fp atomic.Int64
	fp.Store(1)
	pollExternal(ctx, f, time.Millisecond, func() (int64, error) {
		return fp.Load(), nil
	})

	select {
	case <-sig:
		t.Fatal("signalled before the fingerprint changed")
	case <-time.After(20 * time.Millisecond):
	}

	fp.Store(2)
	select {
	case <-sig:
	case <-time.After(time.Second):
		t.Fatal("fingerprint change never signalled")
	}
}
