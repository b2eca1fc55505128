// Package noteservice wires two selection models, one over the notes
// directory and one over the open note's lines, to the line store.
package noteservice

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/starford/tilde/internal/apperr"
	"github.com/starford/tilde/internal/checksum"
	"github.com/starford/tilde/internal/lines"
	"github.com/starford/tilde/internal/models"
	"github.com/starford/tilde/internal/selection"
	"github.com/starford/tilde/internal/storage"
)

// Focus names the pane that receives navigation keys.
type Focus int

const (
	FocusFileList Focus = iota
	FocusContent
)

// Mode is the input mode of the content pane.
type Mode int

const (
	ModeNormal Mode = iota
	ModeEditing
)

// ErrNotEditing is returned when committing without an edit in progress.
var ErrNotEditing = errors.New("session: no edit in progress")

// ErrEditDiscarded is returned when the note being edited disappears.
var ErrEditDiscarded = errors.New("edit discarded")

// StyledLine is a note line paired with its derived style.
type StyledLine struct {
	Text  string
	Style models.Style
}

// Session is the browsing state of one notes directory. It is not safe for
// concurrent use; a single control loop owns it.
type Session struct {
	store  storage.Provider
	logger *slog.Logger

	files    *selection.Model[string]
	content  *selection.Model[string]
	checksum string // of the open note as last loaded, "" if unreadable

	focus Focus
	mode  Mode
}

// Open lists the notes directory and loads its first file. An empty
// directory is a precondition failure reported as apperr.ErrEmptyDirectory.
func Open(store storage.Provider, logger *slog.Logger) (*Session, error) {
	if logger == nil {
		logger = slog.Default()
	}
	names, err := store.ListDirectory()
	if err != nil {
		return nil, fmt.Errorf("session: list notes: %w", err)
	}
	if len(names) == 0 {
		return nil, apperr.ErrEmptyDirectory
	}
	s := &Session{
		store:   store,
		logger:  logger,
		files:   selection.New(names, true),
		content: selection.New[string](nil, false),
	}
	s.content.Replace(s.load(names[0]))
	logger.Info("session: opened", slog.Int("files", len(names)), slog.String("file", names[0]))
	return s, nil
}

// load reads a note best-effort and remembers its checksum.
func (s *Session) load(name string) []string {
	n, err := s.store.Load(name)
	if err != nil {
		s.logger.Warn("session: load failed", slog.String("file", name), slog.String("error", err.Error()))
		s.checksum = ""
		return []string{}
	}
	s.checksum = n.Checksum
	s.logger.Debug("session: loaded", slog.String("path", n.Path), slog.Int("lines", n.Len()))
	return n.Lines
}

// CurrentFile returns the name of the open note.
func (s *Session) CurrentFile() string {
	name, _ := s.files.Current()
	return name
}

// Files returns the directory listing.
func (s *Session) Files() []string { return s.files.Items() }

// FileCursor returns the cursor of the file list.
func (s *Session) FileCursor() selection.Cursor { return s.files.Cursor() }

// LineCursor returns the cursor of the content list.
func (s *Session) LineCursor() selection.Cursor { return s.content.Cursor() }

// Focus returns the focused pane.
func (s *Session) Focus() Focus { return s.focus }

// Mode returns the input mode.
func (s *Session) Mode() Mode { return s.mode }

// Lines returns the open note's lines tagged with their style.
func (s *Session) Lines() []StyledLine {
	items := s.content.Items()
	out := make([]StyledLine, len(items))
	for i, l := range items {
		out[i] = StyledLine{Text: l, Style: lines.StyleOf(l)}
	}
	return out
}

// NextFile selects the next note and loads it.
func (s *Session) NextFile() {
	s.files.Next()
	s.reload()
}

// PreviousFile selects the previous note and loads it.
func (s *Session) PreviousFile() {
	s.files.Previous()
	s.reload()
}

func (s *Session) reload() {
	s.content.Replace(s.load(s.CurrentFile()))
}

// FocusContent moves focus to the content pane and highlights a line.
func (s *Session) FocusContent() {
	s.focus = FocusContent
	s.content.Next()
}

// FocusFiles moves focus back to the file list, dropping the line highlight.
func (s *Session) FocusFiles() {
	s.focus = FocusFileList
	s.mode = ModeNormal
	s.content.Unselect()
}

// NextLine moves the line cursor down, wrapping at the end.
func (s *Session) NextLine() { s.content.Next() }

// PreviousLine moves the line cursor up, wrapping at the start.
func (s *Session) PreviousLine() { s.content.Previous() }

// BeginEdit enters editing mode and returns the stored text of the current
// line, prefix included. An unselected cursor is pinned to the first line so
// the commit targets the line that was shown.
func (s *Session) BeginEdit() (string, error) {
	text, err := s.content.Current()
	if err != nil {
		return "", fmt.Errorf("session: edit %s: %w", s.CurrentFile(), err)
	}
	if !s.content.Cursor().IsSelected() {
		_ = s.content.Select(0)
	}
	s.mode = ModeEditing
	return text, nil
}

// CancelEdit discards the edit in progress.
func (s *Session) CancelEdit() {
	s.mode = ModeNormal
}

// CommitEdit persists text as the current line. Whatever the outcome the
// session returns to normal mode; on failure the edit is discarded and the
// error returned for reporting.
func (s *Session) CommitEdit(text string) error {
	if s.mode != ModeEditing {
		return ErrNotEditing
	}
	s.mode = ModeNormal

	idx, ok := s.content.CurrentIndex()
	if !ok {
		return fmt.Errorf("session: commit: %w", apperr.ErrLineOutOfRange)
	}
	name := s.CurrentFile()
	if err := s.store.WriteLineAt(name, idx, text); err != nil {
		s.logger.Error("session: commit failed",
			slog.String("file", name), slog.Int("line", idx), slog.String("error", err.Error()))
		return fmt.Errorf("session: commit: %w", err)
	}

	if err := s.content.ReplaceKeepingIndex(s.load(name), idx); err != nil {
		s.logger.Warn("session: reload after commit lost selection",
			slog.String("file", name), slog.String("error", err.Error()))
	}
	s.logger.Info("session: line committed", slog.String("file", name), slog.Int("line", idx))
	return nil
}

// Rescan re-lists the notes directory after an external change. The open
// note stays selected if it still exists; otherwise the first file is
// opened; an edit in progress on it is dropped and ErrEditDiscarded
// returned. An empty listing keeps the previous one and returns
// apperr.ErrEmptyDirectory.
func (s *Session) Rescan() error {
	names, err := s.store.ListDirectory()
	if err != nil {
		return fmt.Errorf("session: rescan: %w", err)
	}
	if len(names) == 0 {
		return fmt.Errorf("session: rescan: %w", apperr.ErrEmptyDirectory)
	}

	current := s.CurrentFile()
	s.files.Replace(names)
	for i, n := range names {
		if n == current {
			_ = s.files.Select(i)
			return nil
		}
	}

	_ = s.files.Select(0)
	s.reload()
	if s.mode == ModeEditing {
		s.logger.Warn("session: edited file disappeared", slog.String("file", current))
		s.mode = ModeNormal
		return fmt.Errorf("session: rescan: %s removed: %w", current, ErrEditDiscarded)
	}
	return nil
}

// Refresh reloads the open note if name refers to it and its content changed
// on disk. The line cursor is kept when it is still in range. It is a no-op
// while editing and reports whether the note was reloaded.
func (s *Session) Refresh(name string) bool {
	if s.mode == ModeEditing || name != s.CurrentFile() {
		return false
	}
	data, err := s.store.Read(name)
	if err == nil && checksum.Matches(data, s.checksum) {
		return false
	}

	idx, selected := s.content.CurrentIndex()
	fresh := s.load(name)
	if !selected {
		s.content.Replace(fresh)
		return true
	}
	if err := s.content.ReplaceKeepingIndex(fresh, idx); err != nil {
		s.logger.Debug("session: refresh dropped selection", slog.String("file", name))
	}
	return true
}
