package tui

import (
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/starford/tilde/internal/noteservice"
)

// Update implements tea.Model. Every message is handled to completion before
// the next one, so at most one line edit is ever in flight.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(m.contentWidth()-2, 1)
		return m, nil

	case DirChangedMsg:
		wasEditing := m.session.Mode() == noteservice.ModeEditing
		err := m.session.Rescan()
		if wasEditing && m.session.Mode() != noteservice.ModeEditing {
			m.input.Blur()
			m.input.Reset()
		}
		if err != nil {
			m.logger.Warn("tui: rescan failed", slog.String("error", err.Error()))
			m.setStatus(err.Error(), true)
		}
		return m, nil

	case FileChangedMsg:
		if m.session.Refresh(msg.Name) {
			m.setStatus(fmt.Sprintf("%s changed on disk, reloaded", msg.Name), false)
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
		if m.session.Mode() == noteservice.ModeEditing {
			return m.updateEditing(msg)
		}
		m.setStatus("", false)
		if m.session.Focus() == noteservice.FocusFileList {
			return m.updateFileList(msg)
		}
		return m.updateContent(msg)
	}

	return m, nil
}

func (m Model) updateFileList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Down):
		m.session.NextFile()
	case key.Matches(msg, m.keys.Up):
		m.session.PreviousFile()
	case key.Matches(msg, m.keys.Enter):
		m.session.FocusContent()
	}
	return m, nil
}

func (m Model) updateContent(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Edit):
		text, err := m.session.BeginEdit()
		if err != nil {
			m.setStatus(err.Error(), true)
			return m, nil
		}
		m.input.SetValue(text)
		m.input.CursorEnd()
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.Back):
		m.session.FocusFiles()
	case key.Matches(msg, m.keys.Down):
		m.session.NextLine()
	case key.Matches(msg, m.keys.Up):
		m.session.PreviousLine()
	}
	return m, nil
}

func (m Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Commit):
		err := m.session.CommitEdit(m.input.Value())
		m.input.Blur()
		m.input.Reset()
		if err != nil {
			m.setStatus("edit discarded: "+err.Error(), true)
			return m, nil
		}
		m.setStatus("saved "+m.session.CurrentFile(), false)
		return m, nil
	case key.Matches(msg, m.keys.Cancel):
		m.session.CancelEdit()
		m.input.Blur()
		m.input.Reset()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}
