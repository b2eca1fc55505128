// Package tui is the terminal front end of tilde: a bubbletea program that
// renders a noteservice.Session and dispatches keys to it.
package tui

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/starford/tilde/internal/noteservice"
)

// DirChangedMsg reports that entries were added to or removed from the
// notes directory.
type DirChangedMsg struct{}

// FileChangedMsg reports that the named notes file was written externally.
type FileChangedMsg struct {
	Name string
}

// Model is the bubbletea model of the note browser.
type Model struct {
	session *noteservice.Session
	keys    KeyMap
	help    help.Model
	input   textinput.Model
	logger  *slog.Logger

	width  int
	height int

	status    string
	statusErr bool
}

// New creates the browser model over an open session.
func New(session *noteservice.Session, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}
	ti := textinput.New()
	ti.Prompt = ""
	return Model{
		session: session,
		keys:    keys,
		help:    help.New(),
		input:   ti,
		logger:  logger,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Session returns the underlying session.
func (m Model) Session() *noteservice.Session {
	return m.session
}

// Status returns the current status-line message, if any.
func (m Model) Status() string {
	return m.status
}

// EditBuffer returns the in-progress edit text and the cursor offset in it.
func (m Model) EditBuffer() (string, int) {
	return m.input.Value(), m.input.Position()
}

func (m *Model) setStatus(msg string, isErr bool) {
	m.status = msg
	m.statusErr = isErr
}
