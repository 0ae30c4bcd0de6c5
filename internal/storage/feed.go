package storage

import (
	"context"
	"sync"
	"time"

	"github.com/hansollee/matzip/internal/models"
)

// externalPollInterval bounds how stale a watcher can be with respect to
// writes made by another process sharing the storage file.
const externalPollInterval = 500 * time.Millisecond

// feed fans out change notifications to live-query subscribers. Each
// subscriber owns a buffered signal channel; notify never blocks on a slow
// subscriber (a pending signal already covers any number of writes).
type feed struct {
	mu   sync.Mutex
	subs map[chan struct{}]struct{}
}

func newFeed() *feed {
	return &feed{subs: make(map[chan struct{}]struct{})}
}

func (f *feed) subscribe() chan struct{} {
	ch := make(chan struct{}, 1)
	f.mu.Lock()
	f.subs[ch] = struct{}{}
	f.mu.Unlock()
	return ch
}

func (f *feed) unsubscribe(ch chan struct{}) {
	f.mu.Lock()
	delete(f.subs, ch)
	f.mu.Unlock()
}

func (f *feed) notify() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for ch := range f.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// pollExternal bridges writes from other processes into the feed: it reads
// a cheap storage fingerprint every interval and signals subscribers when
// the fingerprint moves. A spurious signal only costs one re-snapshot, so
// the fingerprint may over-report changes but must never under-report them.
func pollExternal(ctx context.Context, f *feed, interval time.Duration, fingerprint func() (int64, error)) {
	last, lastErr := fingerprint()

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				cur, err := fingerprint()
				if err != nil {
					lastErr = err
					continue
				}
				if lastErr != nil || cur != last {
					last, lastErr = cur, nil
					f.notify()
				}
			}
		}
	}()
}

// watchRecords implements the live-query contract shared by all backends:
// the returned channel carries the current snapshot immediately and a fresh
// snapshot after every write, until ctx is cancelled. The channel is closed
// on cancellation so a late result is never delivered.
//
// Subscription happens before the first snapshot so a write landing in
// between is signalled rather than lost; the worst case is one redundant
// re-snapshot.
func watchRecords(ctx context.Context, f *feed, snapshot func() ([]models.FoodRecord, error)) (<-chan []models.FoodRecord, error) {
	sig := f.subscribe()

	first, err := snapshot()
	if err != nil {
		f.unsubscribe(sig)
		return nil, err
	}

	out := make(chan []models.FoodRecord, 1)
	out <- first

	go func() {
		defer close(out)
		defer f.unsubscribe(sig)
		for {
			select {
			case <-ctx.Done():
				return
			case <-sig:
				recs, err := snapshot()
				if err != nil {
					// Skip this delivery; the next write signals again.
					continue
				}
				select {
				case out <- recs:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}
