// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/starford/tilde/internal/apperr"
	"github.com/starford/tilde/internal/noteservice"
	"github.com/starford/tilde/internal/storage"
	"github.com/starford/tilde/internal/tui"
	"github.com/starford/tilde/internal/watcher"
)

func build(opts []Option) (*application, error) {
	app := &application{}
	for _, opt := range opts {
		opt(app)
	}
	if app.config == nil {
		return nil, fmt.Errorf("config is required")
	}
	return app, nil
}

// newLogger creates the structured JSON logger. Unless an output override is
// given, the log is appended to the configured log file.
func newLogger(app *application) (*slog.Logger, func(), error) {
	cfg := app.config.App
	out := app.logOutput
	closeFn := func() {}
	if out == nil {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out = f
		closeFn = func() { _ = f.Close() }
	}
	logger := slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	return logger, closeFn, nil
}

func openStore(app *application, logger *slog.Logger) (*storage.FS, error) {
	store, err := storage.NewFS(app.config.Notes.Path, logger)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}
	return store, nil
}

// Run starts the terminal note browser with the given options and blocks
// until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts ...Option) error {
	app, err := build(opts)
	if err != nil {
		return err
	}
	cfg := app.config

	logger, closeLog, err := newLogger(app)
	if err != nil {
		return err
	}
	defer closeLog()
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("notes_path", cfg.Notes.Path),
		slog.Bool("watch", cfg.Notes.Watch),
		slog.String("log_level", cfg.App.LogLevel.String()))

	store, err := openStore(app, logger)
	if err != nil {
		return err
	}

	session, err := noteservice.Open(store, logger)
	if err != nil {
		if errors.Is(err, apperr.ErrEmptyDirectory) {
			return fmt.Errorf("no notes in %s: %w", store.Root(), err)
		}
		return fmt.Errorf("open session: %w", err)
	}

	// SIGINT reaches the program as ctrl+c while the terminal is in raw mode.
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGTERM)
	defer cancel()

	g, gCtx := errgroup.WithContext(ctx)
	runCtx, stop := context.WithCancel(gCtx)
	defer stop()

	program := tea.NewProgram(tui.New(session, logger),
		tea.WithAltScreen(),
		tea.WithContext(runCtx),
	)

	if cfg.Notes.Watch {
		g.Go(func() error {
			err := watcher.Watch(runCtx, store.Root(), watcher.DefaultDebounce, logger, func(kind, name string) {
				switch kind {
				case watcher.KindListing:
					program.Send(tui.DirChangedMsg{})
				case watcher.KindWritten:
					program.Send(tui.FileChangedMsg{Name: name})
				}
			})
			if err != nil {
				// The browser still works without live updates.
				logger.Warn("watcher unavailable", slog.String("error", err.Error()))
			}
			return nil
		})
	}

	g.Go(func() error {
		defer stop()
		logger.Info("Starting note browser", slog.String("dir", store.Root()))
		if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return fmt.Errorf("tui: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Note browser stopped")
	return nil
}

// runCommand sets up logging and storage for a one-shot command.
func runCommand(opts []Option, fn func(store *storage.FS) error) error {
	app, err := build(opts)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(app)
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := openStore(app, logger)
	if err != nil {
		return err
	}
	return fn(store)
}
