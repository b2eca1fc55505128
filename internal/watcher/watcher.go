// Package watcher reports external changes to the notes directory.
package watcher

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Event kinds passed to EventCallback.
const (
	KindListing = "listing" // entries added, removed or renamed
	KindWritten = "written" // an existing file's content changed
)

// DefaultDebounce is the quiet period before a burst of events is reported.
const DefaultDebounce = 150 * time.Millisecond

// EventCallback is called with the kind of change and, for KindWritten, the
// file name relative to the notes directory.
type EventCallback func(kind string, name string)

// Watch starts an fsnotify watcher on dir and reports changes to cb until
// ctx is cancelled. Bursts are debounced: listing changes are coalesced into
// one KindListing call, writes into one KindWritten call per file.
// Dot-files (including in-progress atomic writes) are ignored.
func Watch(ctx context.Context, dir string, debounce time.Duration, logger *slog.Logger, cb EventCallback) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(dir); err != nil {
		return err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	logger.Info("watcher: started", slog.String("dir", dir))

	var (
		timer   *time.Timer
		timerCh <-chan time.Time
		listing bool
		written = make(map[string]struct{})
	)
	schedule := func() {
		if timer == nil {
			timer = time.NewTimer(debounce)
			timerCh = timer.C
		} else {
			timer.Reset(debounce)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			logger.Info("watcher: stopped")
			return nil

		case <-timerCh:
			if listing {
				logger.Debug("watcher: listing changed")
				cb(KindListing, "")
			}
			for name := range written {
				logger.Debug("watcher: file written", slog.String("name", name))
				cb(KindWritten, name)
			}
			listing = false
			clear(written)

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			name := filepath.Base(ev.Name)
			if filepath.Dir(ev.Name) != filepath.Clean(dir) || strings.HasPrefix(name, ".") {
				continue
			}

			switch {
			case ev.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0:
				// An atomic rewrite lands as a Create of the final name,
				// so the file content may have changed too.
				listing = true
				if ev.Op&fsnotify.Create != 0 {
					written[name] = struct{}{}
				}
				schedule()
			case ev.Op&fsnotify.Write != 0:
				written[name] = struct{}{}
				schedule()
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}
