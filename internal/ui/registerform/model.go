// Package registerform implements account registration. The login id and
// password rules are checked locally before any network call; the nickname
// must pass the backend's availability check before the account is created.
package registerform

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/wildprogrammer1000/codeconnect/internal/api"
	"github.com/wildprogrammer1000/codeconnect/internal/model"
	"github.com/wildprogrammer1000/codeconnect/internal/notice"
	"github.com/wildprogrammer1000/codeconnect/internal/theme"
	"github.com/wildprogrammer1000/codeconnect/internal/validate"
)

// RegisteredMsg is dispatched when registration succeeded. The parent
// replaces the session with this user and navigates home.
type RegisteredMsg struct {
	User *model.User
}

// CancelMsg is dispatched when the user backs out of the form.
type CancelMsg struct{}

// nicknameCheckedMsg carries the backend's availability verdict. Message
// is backend-provided and surfaced to the user either way.
type nicknameCheckedMsg struct {
	available bool
	message   string
	err       error
}

// registerResultMsg carries the backend's response to the register call.
type registerResultMsg struct {
	user *model.User
	err  error
}

type formBindings struct {
	username string
	password string
	nickname string
}

// Model is the Bubble Tea model for the registration form.
type Model struct {
	form   *huh.Form
	fb     *formBindings
	svc    api.Service
	width  int
	height int
}

// New creates a new registration form model.
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
	m.fb.nickname = ""
	m.form = m.buildForm()
	return m.form.Init()
}

func (m *Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("User ID").
				Placeholder("at least 8 characters").
				Value(&m.fb.username).
				Validate(validate.Username),
			huh.NewInput().
				Title("Password").
				Description("At least 8 characters with letters and digits.").
				EchoMode(huh.EchoModePassword).
				Value(&m.fb.password).
				Validate(validate.Password),
			huh.NewInput().
				Title("Nickname").
				Placeholder("display name").
				Value(&m.fb.nickname).
				Validate(validateNickname),
		),
	).WithWidth(m.formWidth())
}

func validateNickname(s string) error {
	if s == "" {
		return errors.New("nickname is required")
	}
	return nil
}

// Update handles messages for the registration form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case nicknameCheckedMsg:
		if msg.err != nil {
			m.form = m.buildForm()
			return m, tea.Batch(
				m.form.Init(),
				notice.Show("Nickname check failed.", notice.SeverityError),
			)
		}
		if !msg.available {
			// Registration is refused until the nickname check passes.
			m.form = m.buildForm()
			return m, tea.Batch(
				m.form.Init(),
				notice.Show(msg.message, notice.SeverityError),
			)
		}
		return m, m.registerCmd()

	case registerResultMsg:
		if msg.err != nil {
			m.form = m.buildForm()
			return m, tea.Batch(
				m.form.Init(),
				notice.Show("Registration failed.", notice.SeverityError),
			)
		}
		user := msg.user
		return m, func() tea.Msg { return RegisteredMsg{User: user} }
	}

	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		// Local rules already passed via field validators; ask the backend
		// about the nickname before creating the account.
		return m, m.checkNicknameCmd()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

func (m Model) checkNicknameCmd() tea.Cmd {
	svc := m.svc
	nickname := m.fb.nickname
	return func() tea.Msg {
		available, message, err := svc.CheckNickname(context.Background(), nickname)
		return nicknameCheckedMsg{available: available, message: message, err: err}
	}
}

func (m Model) registerCmd() tea.Cmd {
	svc := m.svc
	username := m.fb.username
	password := m.fb.password
	nickname := m.fb.nickname
	return func() tea.Msg {
		user, err := svc.Register(context.Background(), username, password, nickname)
		return registerResultMsg{user: user, err: err}
	}
}

// View renders the registration form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render("Create Account") + "\n" + m.form.View()

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
