package notice

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wildprogrammer1000/codeconnect/internal/theme"
)

// DismissAfter is how long a notice stays visible before auto-dismissing.
var DismissAfter = 6000 * time.Millisecond

// dismissMsg fires when a notice's display duration elapses. The
// generation guard keeps a stale timer from clearing a newer notice.
type dismissMsg struct {
	generation int
}

// Model renders the single active notice, if any.
type Model struct {
	current    *Notice
	generation int
	width      int
}

// New creates an empty notice model.
func New(width int) Model {
	return Model{width: width}
}

// Update handles notice messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ShowMsg:
		n := msg.Notice
		m.current = &n
		m.generation++
		gen := m.generation
		return m, tea.Tick(DismissAfter, func(time.Time) tea.Msg {
			return dismissMsg{generation: gen}
		})

	case dismissMsg:
		if msg.generation == m.generation {
			m.current = nil
		}
		return m, nil
	}
	return m, nil
}

// Dismiss clears the visible notice immediately (explicit close).
func (m *Model) Dismiss() {
	m.current = nil
	m.generation++
}

// Visible reports whether a notice is currently shown.
func (m Model) Visible() bool {
	return m.current != nil
}

// Current returns the visible notice, or nil.
func (m Model) Current() *Notice {
	return m.current
}

// SetWidth updates the render width.
func (m *Model) SetWidth(width int) {
	m.width = width
}

// View renders the notice bar, or an empty string when nothing is visible.
func (m Model) View() string {
	if m.current == nil {
		return ""
	}
	style := theme.SeverityStyle(string(m.current.Severity))
	return style.Width(m.width).Render(m.current.Message)
}
