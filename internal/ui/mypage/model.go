package mypage

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wildprogrammer1000/codeconnect/internal/api"
	"github.com/wildprogrammer1000/codeconnect/internal/keys"
	"github.com/wildprogrammer1000/codeconnect/internal/notice"
	"github.com/wildprogrammer1000/codeconnect/internal/session"
	"github.com/wildprogrammer1000/codeconnect/internal/theme"
)

// LoggedOutMsg is dispatched after a successful sign-out. The parent
// clears the session, drops the stored credential, and navigates home.
type LoggedOutMsg struct{}

// CloseMsg signals the parent to leave the my-page view.
type CloseMsg struct{}

// logoutResultMsg carries the sign-out outcome.
type logoutResultMsg struct {
	err error
}

// Model is the account overview view.
type Model struct {
	svc     api.Service
	session *session.Store
	keys    *keys.KeyMap
	width   int
	height  int
}

// New creates a new my-page model.
func New(svc api.Service, sess *session.Store, k *keys.KeyMap, width, height int) Model {
	return Model{
		svc:     svc,
		session: sess,
		keys:    k,
		width:   width,
		height:  height,
	}
}

// Update handles messages for the my-page view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case logoutResultMsg:
		if msg.err != nil {
			return m, notice.Show("Sign-out failed.", notice.SeverityError)
		}
		return m, func() tea.Msg { return LoggedOutMsg{} }

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Back):
			return m, func() tea.Msg { return CloseMsg{} }

		case key.Matches(msg, m.keys.Select):
			if !m.session.SignedIn() {
				return m, nil
			}
			return m, m.logout()
		}
	}
	return m, nil
}

// logout calls the sign-out endpoint.
func (m Model) logout() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		err := svc.Logout(context.Background())
		return logoutResultMsg{err: err}
	}
}

// View renders the account overview.
func (m Model) View() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)
	b.WriteString(titleStyle.Render("My Page"))
	b.WriteString("\n\n")

	if user := m.session.Current(); user != nil {
		b.WriteString(fmt.Sprintf("User ID:  %s\n", user.UserID))
		b.WriteString(fmt.Sprintf("Nickname: %s\n", user.Nickname))
		b.WriteString("\n")
		b.WriteString(theme.HelpStyle.Render("enter sign out | esc back"))
	} else {
		b.WriteString("Sign in to see your account details.\n")
		b.WriteString("\n")
		b.WriteString(theme.HelpStyle.Render("esc back"))
	}

	return theme.PanelStyle.
		Width(m.width - 4).
		Render(b.String())
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
