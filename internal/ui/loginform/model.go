package loginform

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/wildprogrammer1000/codeconnect/internal/api"
	"github.com/wildprogrammer1000/codeconnect/internal/model"
	"github.com/wildprogrammer1000/codeconnect/internal/notice"
	"github.com/wildprogrammer1000/codeconnect/internal/theme"
)

// LoggedInMsg is dispatched when sign-in succeeded. The parent replaces
// the session with this user and navigates home.
type LoggedInMsg struct {
	User *model.User
}

// CancelMsg is dispatched when the user backs out of the form.
type CancelMsg struct{}

// GoRegisterMsg asks the parent to switch to the registration form.
type GoRegisterMsg struct{}

// loginResultMsg carries the backend's response to the sign-in call.
type loginResultMsg struct {
	user *model.User
	err  error
}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	username string
	password string
}

// Model is the Bubble Tea model for the sign-in form.
type Model struct {
	form   *huh.Form
	fb     *formBindings
	svc    api.Service
	width  int
	height int
}

// New creates a new sign-in form model.
func New(svc api.Service, width, height int) Model {
	return Model{
		fb:     &formBindings{},
		svc:    svc,
		width:  width,
		height: height,
	}
}

// Start resets and initializes the form.
func (m *Model) Start() tea.Cmd {
	m.fb.username = ""
	m.fb.password = ""
	m.form = m.buildForm()
	return m.form.Init()
}

func (m *Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("User ID").
				Placeholder("your login id").
				Value(&m.fb.username).
				Validate(validateRequired("User ID")),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.fb.password).
				Validate(validateRequired("Password")),
		),
	).WithWidth(m.formWidth())
}

// Update handles messages for the sign-in form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		if msg.err != nil {
			m.form = m.buildForm()
			return m, tea.Batch(
				m.form.Init(),
				notice.Show("Sign-in failed.", notice.SeverityError),
			)
		}
		user := msg.user
		return m, func() tea.Msg { return LoggedInMsg{User: user} }

	case tea.KeyMsg:
		if msg.String() == "ctrl+g" {
			return m, func() tea.Msg { return GoRegisterMsg{} }
		}
	}

	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.submitCmd()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// submitCmd calls the sign-in endpoint with the drafted credentials.
func (m Model) submitCmd() tea.Cmd {
	svc := m.svc
	username := m.fb.username
	password := m.fb.password
	return func() tea.Msg {
		user, err := svc.Login(context.Background(), username, password)
		return loginResultMsg{user: user, err: err}
	}
}

// View renders the sign-in form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render("Sign In") + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) formWidth() int {
	w := m.width - 8
	if w < 40 {
		w = 40
	}
	return w
}

func validateRequired(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}
