package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type recordingRemover struct {
	mu      sync.Mutex
	removed []string
	fail    map[string]bool
}

func (r *recordingRemover) remove(path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail[path] {
		return errors.New("permission denied")
	}
	r.removed = append(r.removed, path)
	return nil
}

func (r *recordingRemover) wait(t *testing.T, want int) []string {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		r.mu.Lock()
		n := len(r.removed)
		got := append([]string(nil), r.removed...)
		r.mu.Unlock()
		if n >= want {
			return got
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d removals", want)
	return nil
}

func TestFileCleaner_RemovesEnqueuedFiles(t *testing.T) {
	rec := &recordingRemover{}
	cleaner := NewFileCleaner(rec.remove, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	cleaner.Start(ctx)

	cleaner.Enqueue("uploads/1-a.jpg", "uploads/2-b.png")

	removed := rec.wait(t, 2)
	seen := map[string]bool{}
	for _, p := range removed {
		seen[p] = true
	}
	if !seen["uploads/1-a.jpg"] || !seen["uploads/2-b.png"] {
		t.Fatalf("unexpected removals: %v", removed)
	}
}

func TestFileCleaner_FailureDoesNotStopOthers(t *testing.T) {
	rec := &recordingRemover{fail: map[string]bool{"uploads/bad.jpg": true}}
	cleaner := NewFileCleaner(rec.remove, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	cleaner.Start(ctx)

	cleaner.Enqueue("uploads/bad.jpg", "uploads/good.jpg")

	removed := rec.wait(t, 1)
	if removed[len(removed)-1] != "uploads/good.jpg" {
		t.Fatalf("expected good.jpg removed despite bad.jpg failing, got %v", removed)
	}
}

func TestFileCleaner_EnqueueNeverReturnsError(t *testing.T) {
	// Enqueue has no error path at all: the fire-and-forget contract is
	// encoded in the signature. This test pins the non-blocking behaviour for
	// a batch that fits the buffer even when no worker is running yet.
	cleaner := NewFileCleaner(func(string) error { return nil }, zerolog.Nop())

	done := make(chan struct{})
	go func() {
		cleaner.Enqueue("a", "b", "c", "d")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("Enqueue blocked with buffer capacity available")
	}
}

func TestFileCleaner_DefaultRemover(t *testing.T) {
	cleaner := NewFileCleaner(nil, zerolog.Nop())
	if cleaner.remove == nil {
		t.Fatalf("expected default remover")
	}
}
