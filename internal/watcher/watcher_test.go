package watcher

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

type recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *recorder) record(kind, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, kind+":"+name)
}

func (r *recorder) has(want string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.events {
		if e == want {
			return true
		}
	}
	return false
}

// startWatcher runs Watch on a fresh directory until the test ends.
func startWatcher(t *testing.T, setup func(dir string)) (string, *recorder) {
	t.Helper()
	dir := t.TempDir()
	if setup != nil {
		setup(dir)
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	rec := &recorder{}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := Watch(ctx, dir, 20*time.Millisecond, logger, rec.record); err != nil {
			t.Errorf("Watch: %v", err)
		}
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	time.Sleep(100 * time.Millisecond)
	return dir, rec
}

// eventually polls fn every tick until it returns true or timeout elapses.
func eventually(t *testing.T, timeout, tick time.Duration, fn func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if fn() {
			return
		}
		time.Sleep(tick)
	}
	t.Error(msg)
}

func TestWatcher_NewFileReportsListing(t *testing.T) {
	dir, rec := startWatcher(t, nil)

	_ = os.WriteFile(filepath.Join(dir, "new.txt"), []byte("hello\n"), 0o644)

	eventually(t, 5*time.Second, 20*time.Millisecond, func() bool {
		return rec.has(KindListing + ":")
	}, "expected listing event for new file")
}

func TestWatcher_WriteReportsFile(t *testing.T) {
	dir, rec := startWatcher(t, func(dir string) {
		_ = os.WriteFile(filepath.Join(dir, "a.txt"), []byte("one\n"), 0o644)
	})

	f, err := os.OpenFile(filepath.Join(dir, "a.txt"), os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatal(err)
	}
	_, _ = f.WriteString("two\n")
	_ = f.Close()

	eventually(t, 5*time.Second, 20*time.Millisecond, func() bool {
		return rec.has(KindWritten + ":a.txt")
	}, "expected written:a.txt")
}

func TestWatcher_RemoveReportsListing(t *testing.T) {
	dir, rec := startWatcher(t, func(dir string) {
		_ = os.WriteFile(filepath.Join(dir, "del.txt"), []byte("bye\n"), 0o644)
	})

	_ = os.Remove(filepath.Join(dir, "del.txt"))

	eventually(t, 5*time.Second, 20*time.Millisecond, func() bool {
		return rec.has(KindListing + ":")
	}, "expected listing event for removed file")
}

func TestWatcher_IgnoresDotFiles(t *testing.T) {
	dir, rec := startWatcher(t, nil)

	_ = os.WriteFile(filepath.Join(dir, ".tilde-tmp-123"), []byte("x"), 0o644)
	time.Sleep(300 * time.Millisecond)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.events) != 0 {
		t.Errorf("unexpected events: %v", rec.events)
	}
}

func TestWatcher_MissingDir(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	err := Watch(context.Background(), filepath.Join(t.TempDir(), "missing"), 0, logger, func(string, string) {})
	if err == nil {
		t.Error("expected error watching a missing directory")
	}
}
