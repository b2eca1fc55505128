package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/starford/tilde/internal/lines"
	"github.com/starford/tilde/internal/models"
	"github.com/starford/tilde/internal/noteservice"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	inputHeight   = 3
)

var (
	accent = lipgloss.Color("#34EBAE")

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))
	focusedPaneStyle = paneStyle.BorderForeground(accent)

	titleStyle      = lipgloss.NewStyle().Bold(true)
	highlightStyle  = lipgloss.NewStyle().Background(accent).Foreground(lipgloss.Color("#000000"))
	dimmedHighlight = lipgloss.NewStyle().Background(lipgloss.Color("#141414")).Foreground(accent)
	struckStyle     = lipgloss.NewStyle().Strikethrough(true)
	emphasizedStyle = lipgloss.NewStyle().Bold(true)
	plainStyle      = lipgloss.NewStyle()
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F"))
	infoStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// View implements tea.Model: file list on the left (30%), note lines on the
// right (70%), an input box under the lines while editing and a status line.
func (m Model) View() string {
	width, height := m.size()
	bodyHeight := max(height-1, 3)

	left := m.renderFiles(m.filesWidth(), bodyHeight)

	var right string
	if m.session.Mode() == noteservice.ModeEditing {
		contentHeight := max(bodyHeight-inputHeight, 3)
		right = lipgloss.JoinVertical(lipgloss.Left,
			m.renderContent(m.contentWidth(), contentHeight),
			m.renderInput(m.contentWidth()),
		)
	} else {
		right = m.renderContent(m.contentWidth(), bodyHeight)
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderStatus(width))
}

func (m Model) size() (int, int) {
	w, h := m.width, m.height
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}
	return w, h
}

func (m Model) filesWidth() int {
	w, _ := m.size()
	return w * 30 / 100
}

func (m Model) contentWidth() int {
	w, _ := m.size()
	return w - m.filesWidth()
}

// pane draws a bordered box of the given outer size around a title and rows.
func pane(style lipgloss.Style, width, height int, title string, rows []string) string {
	innerW := max(width-2, 1)
	innerH := max(height-2, 1)
	body := append([]string{titleStyle.MaxWidth(innerW).Render(title)}, rows...)
	if len(body) > innerH {
		body = body[:innerH]
	}
	return style.Width(innerW).Height(innerH).Render(strings.Join(body, "\n"))
}

// window returns the [start, end) range of n rows to draw in height rows so
// that cursor is visible.
func window(n, cursor, height int) (int, int) {
	if height <= 0 {
		return 0, 0
	}
	start := 0
	if cursor >= height {
		start = cursor - height + 1
	}
	return start, min(n, start+height)
}

func (m Model) renderFiles(width, height int) string {
	files := m.session.Files()
	cursor, selected := m.session.FileCursor().Index()
	highlight := highlightStyle
	style := focusedPaneStyle
	if m.session.Focus() != noteservice.FocusFileList {
		highlight = dimmedHighlight
		style = paneStyle
	}

	innerW := max(width-2, 1)
	start, end := window(len(files), cursor, max(height-3, 0))
	rows := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		st := plainStyle
		if selected && i == cursor {
			st = highlight
		}
		rows = append(rows, st.MaxWidth(innerW).Render(files[i]))
	}
	return pane(style, width, height, "Notes", rows)
}

func lineStyle(s models.Style) lipgloss.Style {
	switch s {
	case models.Struck:
		return struckStyle
	case models.Emphasized:
		return emphasizedStyle
	default:
		return plainStyle
	}
}

func (m Model) renderContent(width, height int) string {
	ls := m.session.Lines()
	cursor, selected := m.session.LineCursor().Index()
	style := paneStyle
	if m.session.Focus() == noteservice.FocusContent {
		style = focusedPaneStyle
	}

	innerW := max(width-2, 1)
	start, end := window(len(ls), cursor, max(height-3, 0))
	rows := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		st := lineStyle(ls[i].Style)
		if selected && i == cursor {
			st = st.Inherit(highlightStyle)
		}
		rows = append(rows, st.MaxWidth(innerW).Render(lines.Display(ls[i].Text)))
	}
	return pane(style, width, height, m.session.CurrentFile(), rows)
}

func (m Model) renderInput(width int) string {
	innerW := max(width-2, 1)
	return focusedPaneStyle.Width(innerW).Render(m.input.View())
}

func (m Model) renderStatus(width int) string {
	if m.status != "" {
		st := infoStyle
		if m.statusErr {
			st = errorStyle
		}
		return st.MaxWidth(width).Render(m.status)
	}
	return m.help.ShortHelpView(m.contextHelp())
}

func (m Model) contextHelp() []key.Binding {
	switch {
	case m.session.Mode() == noteservice.ModeEditing:
		return []key.Binding{m.keys.Commit, m.keys.Cancel}
	case m.session.Focus() == noteservice.FocusContent:
		return []key.Binding{m.keys.Down, m.keys.Up, m.keys.Edit, m.keys.Back}
	default:
		return m.keys.ShortHelp()
	}
}
