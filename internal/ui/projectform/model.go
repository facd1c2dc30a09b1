// Package projectform implements the project create/edit form. Both modes
// share one form; edit mode prefills from a single-project fetch. The
// destination URL is validated locally before any call is made.
package projectform

import (
	"context"
	"errors"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/wildprogrammer1000/codeconnect/internal/api"
	"github.com/wildprogrammer1000/codeconnect/internal/model"
	"github.com/wildprogrammer1000/codeconnect/internal/notice"
	"github.com/wildprogrammer1000/codeconnect/internal/session"
	"github.com/wildprogrammer1000/codeconnect/internal/theme"
	"github.com/wildprogrammer1000/codeconnect/internal/validate"
)

// SavedMsg is dispatched after a successful create or update.
type SavedMsg struct {
	Edited bool
}

// CancelMsg is dispatched when the user backs out of the form.
type CancelMsg struct{}

// GoLoginMsg asks the parent to redirect to the sign-in form because no
// session exists.
type GoLoginMsg struct{}

// projectLoadedMsg carries the prefill fetch for edit mode.
type projectLoadedMsg struct {
	project *model.Project
	err     error
}

// saveResultMsg carries the create/update outcome.
type saveResultMsg struct {
	err    error
	edited bool
}

type formBindings struct {
	title         string
	url           string
	description   string
	thumbnailPath string
}

// Model is the Bubble Tea model for the project create/edit form.
type Model struct {
	form     *huh.Form
	fb       *formBindings
	svc      api.Service
	session  *session.Store
	editMode bool
	editID   int
	width    int
	height   int
}

// New creates a new project form model.
func New(svc api.Service, sess *session.Store, width, height int) Model {
	return Model{
		fb:      &formBindings{},
		svc:     svc,
		session: sess,
		width:   width,
		height:  height,
	}
}

// StartCreate initializes the form for registering a new project.
func (m *Model) StartCreate() tea.Cmd {
	m.editMode = false
	m.editID = 0
	m.fb.title = ""
	m.fb.url = ""
	m.fb.description = ""
	m.fb.thumbnailPath = ""
	m.form = m.buildForm()
	return m.form.Init()
}

// StartEdit fetches the project and initializes the form prefilled.
func (m *Model) StartEdit(projectID int) tea.Cmd {
	m.editMode = true
	m.editID = projectID
	svc := m.svc
	return func() tea.Msg {
		project, err := svc.GetProject(context.Background(), projectID)
		return projectLoadedMsg{project: project, err: err}
	}
}

func (m *Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Placeholder("Project name").
				Value(&m.fb.title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("title is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Project URL").
				Placeholder("https://example.com/my-project").
				Value(&m.fb.url).
				Validate(validate.ProjectURL),
			huh.NewText().
				Title("Description").
				Placeholder("What does it do?").
				Value(&m.fb.description).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("description is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Thumbnail").
				Placeholder("path to an image file (optional)").
				Value(&m.fb.thumbnailPath).
				Validate(validateThumbnail),
		),
	).WithWidth(m.formWidth())
}

// validateThumbnail checks that the optional thumbnail path points at a
// readable file.
func validateThumbnail(s string) error {
	if s == "" {
		return nil
	}
	if _, err := os.Stat(s); err != nil {
		return errors.New("file not found")
	}
	return nil
}

// Update handles messages for the project form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case projectLoadedMsg:
		if msg.err != nil || msg.project == nil {
			return m, tea.Batch(
				func() tea.Msg { return CancelMsg{} },
				notice.Show("Failed to load the project.", notice.SeverityError),
			)
		}
		m.fb.title = msg.project.Title
		m.fb.url = msg.project.URL
		m.fb.description = msg.project.Description
		m.fb.thumbnailPath = ""
		m.form = m.buildForm()
		return m, m.form.Init()

	case saveResultMsg:
		if msg.err != nil {
			m.form = m.buildForm()
			return m, tea.Batch(m.form.Init(), saveErrorNotice(msg.err))
		}
		edited := msg.edited
		return m, func() tea.Msg { return SavedMsg{Edited: edited} }
	}

	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m.submit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// saveErrorNotice maps a save failure to its user-facing notice. The
// duplicate-name conflict gets its own text; everything else is generic.
func saveErrorNotice(err error) tea.Cmd {
	if errors.Is(err, api.ErrConflict) {
		return notice.Show("A project with that name already exists.", notice.SeverityError)
	}
	return notice.Show("Failed to save the project.", notice.SeverityError)
}

// submit builds the draft and sends the create or update request. A
// missing session redirects to sign-in instead of calling the backend.
func (m Model) submit() (Model, tea.Cmd) {
	user := m.session.Current()
	if user == nil {
		return m, tea.Batch(
			func() tea.Msg { return GoLoginMsg{} },
			notice.Show("Login required.", notice.SeverityWarning),
		)
	}

	draft := model.ProjectDraft{
		ID:            m.editID,
		Title:         m.fb.title,
		UserID:        user.UserID,
		URL:           m.fb.url,
		ThumbnailPath: m.fb.thumbnailPath,
		Description:   m.fb.description,
	}

	svc := m.svc
	edited := m.editMode
	return m, func() tea.Msg {
		var err error
		if edited {
			err = svc.UpdateProject(context.Background(), draft)
		} else {
			err = svc.CreateProject(context.Background(), draft)
		}
		return saveResultMsg{err: err, edited: edited}
	}
}

// View renders the project form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "Register Project"
	if m.editMode {
		titleText = "Edit Project"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render(titleText) + "\n" + m.form.View()

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
