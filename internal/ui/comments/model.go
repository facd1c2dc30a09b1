// Package comments implements the per-project comment panel. The panel
// never patches its cache: the comment list is refetched wholesale after
// every mutation, because ordering correctness matters more than saving a
// round trip.
package comments

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/wildprogrammer1000/codeconnect/internal/api"
	"github.com/wildprogrammer1000/codeconnect/internal/keys"
	"github.com/wildprogrammer1000/codeconnect/internal/model"
	"github.com/wildprogrammer1000/codeconnect/internal/notice"
	"github.com/wildprogrammer1000/codeconnect/internal/session"
	"github.com/wildprogrammer1000/codeconnect/internal/theme"
	"github.com/wildprogrammer1000/codeconnect/internal/validate"
)

// CloseMsg signals the parent to close the comment panel.
type CloseMsg struct{}

// CountChangedMsg tells the parent that this project's comment count may
// have changed, so the feed can refetch that single project.
type CountChangedMsg struct {
	ProjectID int
}

// commentsLoadedMsg is sent when the comment list has been fetched.
type commentsLoadedMsg struct {
	comments []model.Comment
	err      error
}

type commentAddedMsg struct{ err error }

type commentDeletedMsg struct{ err error }

type panelMode int

const (
	modeBrowse panelMode = iota
	modeConfirmDelete
)

type formBindings struct {
	confirm bool
}

// Model is the comment panel view component.
type Model struct {
	svc         api.Service
	session     *session.Store
	keys        *keys.KeyMap
	project     model.Project
	comments    []model.Comment
	input       textinput.Model
	selectedIdx int
	mode        panelMode
	confirmForm *huh.Form
	fb          *formBindings
	deleteID    int
	width       int
	height      int
}

// New creates a new comment panel model.
func New(svc api.Service, sess *session.Store, k *keys.KeyMap, width, height int) Model {
	in := textinput.New()
	in.Placeholder = "write a comment..."
	in.Prompt = "> "
	in.CharLimit = validate.MaxCommentLength
	in.Width = width - 6

	return Model{
		svc:     svc,
		session: sess,
		keys:    k,
		input:   in,
		fb:      &formBindings{},
		width:   width,
		height:  height,
	}
}

// Open points the panel at a project and loads its comments.
func (m *Model) Open(p model.Project) tea.Cmd {
	m.project = p
	m.comments = nil
	m.selectedIdx = 0
	m.mode = modeBrowse
	m.input.Reset()
	return tea.Batch(m.loadComments(), m.input.Focus())
}

// Project returns the project the panel is open on.
func (m Model) Project() model.Project {
	return m.project
}

// Comments returns the cached comment list, for tests.
func (m Model) Comments() []model.Comment {
	return m.comments
}

// loadComments refetches the whole comment list for the open project.
func (m Model) loadComments() tea.Cmd {
	svc := m.svc
	id := m.project.ID
	return func() tea.Msg {
		comments, err := svc.ListComments(context.Background(), id)
		return commentsLoadedMsg{comments: comments, err: err}
	}
}

// Update handles messages for the comment panel.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case commentsLoadedMsg:
		if msg.err != nil {
			return m, notice.Show("Failed to load comments.", notice.SeverityError)
		}
		m.comments = msg.comments
		if m.selectedIdx >= len(m.comments) {
			m.selectedIdx = 0
		}
		return m, nil

	case commentAddedMsg:
		if msg.err != nil {
			return m, notice.Show("Failed to submit comment.", notice.SeverityError)
		}
		m.input.Reset()
		return m, tea.Batch(
			m.loadComments(),
			m.notifyCountChanged(),
			notice.Show("Comment added.", notice.SeveritySuccess),
		)

	case commentDeletedMsg:
		if msg.err != nil {
			return m, notice.Show("Failed to delete comment.", notice.SeverityError)
		}
		return m, tea.Batch(
			m.loadComments(),
			m.notifyCountChanged(),
			notice.Show("Comment deleted.", notice.SeveritySuccess),
		)

	case tea.KeyMsg:
		if m.mode == modeConfirmDelete {
			return m.updateConfirm(msg)
		}
		return m.handleKey(msg)
	}

	if m.mode == modeConfirmDelete {
		return m.updateConfirm(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		return m, func() tea.Msg { return CloseMsg{} }

	case key.Matches(msg, m.keys.Select):
		return m.submit()

	case msg.String() == "ctrl+k":
		if m.selectedIdx > 0 {
			m.selectedIdx--
		}
		return m, nil

	case msg.String() == "ctrl+j":
		if m.selectedIdx < len(m.comments)-1 {
			m.selectedIdx++
		}
		return m, nil

	case msg.String() == "ctrl+d":
		return m.requestDelete()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit validates the drafted comment locally and posts it. Validation
// failures raise a notice without contacting the backend.
func (m Model) submit() (Model, tea.Cmd) {
	user := m.session.Current()
	if user == nil {
		return m, notice.Show("Login required.", notice.SeverityWarning)
	}

	content := m.input.Value()
	if strings.TrimSpace(content) == "" {
		return m, notice.Show("Enter a comment first.", notice.SeverityWarning)
	}
	if err := validate.CommentContent(content); err != nil {
		return m, notice.Show("Comments must be 300 characters or fewer.", notice.SeverityWarning)
	}

	svc := m.svc
	id := m.project.ID
	userID := user.UserID
	return m, func() tea.Msg {
		err := svc.AddComment(context.Background(), id, userID, content)
		return commentAddedMsg{err: err}
	}
}

// requestDelete opens the confirm dialog for the selected comment, own
// comments only.
func (m Model) requestDelete() (Model, tea.Cmd) {
	if len(m.comments) == 0 || m.selectedIdx >= len(m.comments) {
		return m, nil
	}
	c := m.comments[m.selectedIdx]
	user := m.session.Current()
	if user == nil || user.UserID != c.UserID {
		return m, nil
	}

	m.deleteID = c.ID
	m.fb.confirm = false
	m.confirmForm = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Delete this comment?").
				Affirmative("Delete").
				Negative("Cancel").
				Value(&m.fb.confirm),
		),
	).WithWidth(m.width - 4)
	m.mode = modeConfirmDelete
	return m, m.confirmForm.Init()
}

func (m Model) updateConfirm(msg tea.Msg) (Model, tea.Cmd) {
	if m.confirmForm == nil {
		m.mode = modeBrowse
		return m, nil
	}
	mdl, cmd := m.confirmForm.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.confirmForm = f
	}
	if m.confirmForm.State == huh.StateCompleted {
		m.mode = modeBrowse
		if m.fb.confirm {
			svc := m.svc
			id := m.deleteID
			return m, func() tea.Msg {
				err := svc.DeleteComment(context.Background(), id)
				return commentDeletedMsg{err: err}
			}
		}
		return m, nil
	}
	if m.confirmForm.State == huh.StateAborted {
		m.mode = modeBrowse
		return m, nil
	}
	return m, cmd
}

func (m Model) notifyCountChanged() tea.Cmd {
	id := m.project.ID
	return func() tea.Msg {
		return CountChangedMsg{ProjectID: id}
	}
}

// View renders the comment panel.
func (m Model) View() string {
	if m.mode == modeConfirmDelete && m.confirmForm != nil {
		return m.confirmForm.View()
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)
	b.WriteString(titleStyle.Render(fmt.Sprintf("Comments · %s", m.project.Title)))
	b.WriteString("\n\n")

	if len(m.comments) == 0 {
		b.WriteString(theme.HelpStyle.Render("No comments yet."))
		b.WriteString("\n")
	}

	user := m.session.Current()
	for i, c := range m.comments {
		line := fmt.Sprintf("%s: %s", c.Nickname, c.Content)
		meta := relativeTime(c.CreatedAt)
		if user != nil && user.UserID == c.UserID {
			meta += " · yours"
			line = theme.OwnerStyle.Render(line)
		}
		if i == m.selectedIdx {
			line = "› " + line
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
		b.WriteString("  " + theme.HelpStyle.Render(meta))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.input.View())

	return theme.PanelStyle.
		Width(m.width - 4).
		Render(b.String())
}

// SetSize updates the panel dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = width - 6
}
