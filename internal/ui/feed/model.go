// Package feed implements the project feed: a cached collection rendered
// as a list, with item-level patches applied from mutation responses
// instead of wholesale refetches.
package feed

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/wildprogrammer1000/codeconnect/internal/api"
	"github.com/wildprogrammer1000/codeconnect/internal/keys"
	"github.com/wildprogrammer1000/codeconnect/internal/model"
	"github.com/wildprogrammer1000/codeconnect/internal/notice"
	"github.com/wildprogrammer1000/codeconnect/internal/session"
	"github.com/wildprogrammer1000/codeconnect/internal/theme"
)

// ProjectsLoadedMsg is sent when the project feed has been fetched.
type ProjectsLoadedMsg struct {
	Projects []model.Project
	Err      error
}

// OpenCommentsMsg asks the parent to open the comment panel for a project.
type OpenCommentsMsg struct {
	Project model.Project
}

// EditRequestMsg asks the parent to open the project form in edit mode.
type EditRequestMsg struct {
	ProjectID int
}

// likeResultMsg carries the backend's authoritative snapshot after a
// like toggle, or the error when the toggle failed.
type likeResultMsg struct {
	project *model.Project
	err     error
}

// countRefreshedMsg carries the fresh single-project fetch issued after a
// comment mutation changed a project's comment count.
type countRefreshedMsg struct {
	project *model.Project
	err     error
}

// deleteResultMsg reports the outcome of a project delete.
type deleteResultMsg struct {
	err error
}

type feedMode int

const (
	modeList feedMode = iota
	modeConfirmDelete
)

type formBindings struct {
	confirm bool
}

// Model is the project feed view component.
type Model struct {
	list        list.Model
	svc         api.Service
	session     *session.Store
	keys        *keys.KeyMap
	projects    []model.Project
	mode        feedMode
	confirmForm *huh.Form
	fb          *formBindings
	deleteID    int
	width       int
	height      int
}

// New creates a new feed model.
func New(svc api.Service, sess *session.Store, k *keys.KeyMap, width, height int) Model {
	delegate := list.NewDefaultDelegate()
	l := list.New([]list.Item{}, delegate, width, height-2)
	l.Title = "Code Connect"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	return Model{
		list:    l,
		svc:     svc,
		session: sess,
		keys:    k,
		fb:      &formBindings{},
		width:   width,
		height:  height,
	}
}

// Init returns a command that loads the initial feed.
func (m Model) Init() tea.Cmd {
	return m.LoadProjects()
}

// LoadProjects returns a command that fetches the whole project feed.
func (m Model) LoadProjects() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		projects, err := svc.ListProjects(context.Background())
		return ProjectsLoadedMsg{Projects: projects, Err: err}
	}
}

// RefreshCount returns a command that refetches a single project by id to
// pick up its fresh comment count. Comment responses do not embed the
// count, so this follow-up fetch is the only way to obtain it.
func (m Model) RefreshCount(projectID int) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		project, err := svc.GetProject(context.Background(), projectID)
		return countRefreshedMsg{project: project, err: err}
	}
}

// Projects returns the cached collection, for the parent and for tests.
func (m Model) Projects() []model.Project {
	return m.projects
}

// SelectedProject returns the currently highlighted project.
func (m Model) SelectedProject() (model.Project, bool) {
	item, ok := m.list.SelectedItem().(ProjectItem)
	if !ok {
		return model.Project{}, false
	}
	return item.Project, true
}

// Update handles messages for the feed view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ProjectsLoadedMsg:
		if msg.Err != nil {
			return m, notice.Show("Failed to load projects.", notice.SeverityError)
		}
		m.projects = msg.Projects
		items := make([]list.Item, len(msg.Projects))
		for i, p := range msg.Projects {
			items[i] = ProjectItem{Project: p}
		}
		cmd := m.list.SetItems(items)
		return m, cmd

	case likeResultMsg:
		if msg.err != nil {
			// Every like failure is reported as a missing session,
			// whatever the actual cause.
			return m, notice.Show("Login required.", notice.SeverityError)
		}
		cmd := m.patchLike(msg.project)
		return m, cmd

	case countRefreshedMsg:
		if msg.err != nil || msg.project == nil {
			return m, nil
		}
		cmd := m.patchCommentCount(msg.project)
		return m, cmd

	case deleteResultMsg:
		if msg.err != nil {
			return m, notice.Show("Failed to delete project.", notice.SeverityError)
		}
		// A delete is not a patch: refetch the whole collection.
		return m, tea.Batch(
			m.LoadProjects(),
			notice.Show("Project deleted.", notice.SeveritySuccess),
		)

	case tea.KeyMsg:
		if m.mode == modeConfirmDelete {
			return m.updateConfirm(msg)
		}
		return m.handleListKey(msg)
	}

	if m.mode == modeConfirmDelete {
		return m.updateConfirm(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// patchLike replaces the liked/like_count of exactly the entry whose id
// matches the snapshot; all other entries are untouched.
func (m *Model) patchLike(p *model.Project) tea.Cmd {
	if p == nil {
		return nil
	}
	for i := range m.projects {
		if m.projects[i].ID == p.ID {
			m.projects[i].Liked = p.Liked
			m.projects[i].LikeCount = p.LikeCount
			return m.list.SetItem(i, ProjectItem{Project: m.projects[i]})
		}
	}
	return nil
}

// patchCommentCount replaces the comment_count of exactly the entry whose
// id matches the fetched project.
func (m *Model) patchCommentCount(p *model.Project) tea.Cmd {
	for i := range m.projects {
		if m.projects[i].ID == p.ID {
			m.projects[i].CommentCount = p.CommentCount
			return m.list.SetItem(i, ProjectItem{Project: m.projects[i]})
		}
	}
	return nil
}

// handleListKey processes key input in list mode.
func (m Model) handleListKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Like):
		p, ok := m.SelectedProject()
		if !ok {
			return m, nil
		}
		return m, m.toggleLike(p)

	case key.Matches(msg, m.keys.Comments):
		p, ok := m.SelectedProject()
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg { return OpenCommentsMsg{Project: p} }

	case key.Matches(msg, m.keys.Refresh):
		return m, m.LoadProjects()

	case key.Matches(msg, m.keys.Edit):
		p, ok := m.SelectedProject()
		if !ok || !m.isOwner(p) {
			return m, nil
		}
		return m, func() tea.Msg { return EditRequestMsg{ProjectID: p.ID} }

	case key.Matches(msg, m.keys.Delete):
		p, ok := m.SelectedProject()
		if !ok || !m.isOwner(p) {
			return m, nil
		}
		m.deleteID = p.ID
		m.fb.confirm = false
		m.confirmForm = m.buildConfirmForm(p.Title)
		m.mode = modeConfirmDelete
		return m, m.confirmForm.Init()
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// toggleLike sends the like mutation with the desired new state. Nothing
// is applied locally until the backend confirms.
func (m Model) toggleLike(p model.Project) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		project, err := svc.ToggleLike(context.Background(), p.ID, !p.Liked)
		return likeResultMsg{project: project, err: err}
	}
}

// deleteProject sends the delete mutation.
func (m Model) deleteProject(id int) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		err := svc.DeleteProject(context.Background(), id)
		return deleteResultMsg{err: err}
	}
}

// isOwner reports whether the signed-in user owns the given project.
func (m Model) isOwner(p model.Project) bool {
	u := m.session.Current()
	return u != nil && u.UserID == p.UserID
}

func (m Model) buildConfirmForm(title string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete project %q?", title)).
				Affirmative("Yes, delete").
				Negative("Cancel").
				Value(&m.fb.confirm),
		),
	).WithWidth(m.width - 4)
}

func (m Model) updateConfirm(msg tea.Msg) (Model, tea.Cmd) {
	if m.confirmForm == nil {
		m.mode = modeList
		return m, nil
	}
	mdl, cmd := m.confirmForm.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.confirmForm = f
	}
	if m.confirmForm.State == huh.StateCompleted {
		m.mode = modeList
		if m.fb.confirm {
			return m, m.deleteProject(m.deleteID)
		}
		return m, nil
	}
	if m.confirmForm.State == huh.StateAborted {
		m.mode = modeList
		return m, nil
	}
	return m, cmd
}

// View renders the feed.
func (m Model) View() string {
	if m.mode == modeConfirmDelete && m.confirmForm != nil {
		return m.confirmForm.View()
	}
	return m.list.View()
}

// SetSize updates the feed dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
}
