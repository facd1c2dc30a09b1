package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wildprogrammer1000/codeconnect/internal/api"
	"github.com/wildprogrammer1000/codeconnect/internal/keys"
	"github.com/wildprogrammer1000/codeconnect/internal/notice"
	"github.com/wildprogrammer1000/codeconnect/internal/session"
	"github.com/wildprogrammer1000/codeconnect/internal/ui"
	"github.com/wildprogrammer1000/codeconnect/internal/ui/comments"
	"github.com/wildprogrammer1000/codeconnect/internal/ui/feed"
	helpview "github.com/wildprogrammer1000/codeconnect/internal/ui/help"
	"github.com/wildprogrammer1000/codeconnect/internal/ui/loginform"
	"github.com/wildprogrammer1000/codeconnect/internal/ui/mypage"
	"github.com/wildprogrammer1000/codeconnect/internal/ui/projectform"
	"github.com/wildprogrammer1000/codeconnect/internal/ui/registerform"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewFeed ViewState = iota
	ViewLogin
	ViewRegister
	ViewProjectCreate
	ViewProjectEdit
	ViewComments
	ViewMyPage
	ViewHelp
)

// Deps carries everything the root model needs. SaveCredential and
// ClearCredential persist/remove the ambient session credential between
// runs; either may be nil (e.g. in tests).
type Deps struct {
	Service         api.Service
	Session         *session.Store
	SaveCredential  func() error
	ClearCredential func() error
}

// Model is the root Bubble Tea model that manages view routing, the
// session store, and the notice bar.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	svc          api.Service
	session      *session.Store
	saveCred     func() error
	clearCred    func() error
	keys         *keys.KeyMap

	feedView     feed.Model
	commentsView comments.Model
	loginView    loginform.Model
	registerView registerform.Model
	projectForm  projectform.Model
	myPageView   mypage.Model
	helpView     helpview.Model
	notices      notice.Model

	ready bool
}

// New creates the root application model.
func New(d Deps) Model {
	k := keys.DefaultKeyMap()

	return Model{
		currentView:  ViewFeed,
		svc:          d.Service,
		session:      d.Session,
		saveCred:     d.SaveCredential,
		clearCred:    d.ClearCredential,
		keys:         k,
		feedView:     feed.New(d.Service, d.Session, k, 80, 24),
		commentsView: comments.New(d.Service, d.Session, k, 80, 24),
		loginView:    loginform.New(d.Service, 80, 24),
		registerView: registerform.New(d.Service, 80, 24),
		projectForm:  projectform.New(d.Service, d.Session, 80, 24),
		myPageView:   mypage.New(d.Service, d.Session, k, 80, 24),
		helpView:     helpview.New(k, 80, 24),
		notices:      notice.New(80),
	}
}

// Init loads the feed and runs the first session check.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.feedView.Init(),
		session.CheckCmd(m.svc),
	)
}

// CurrentView returns the active view, for tests.
func (m Model) CurrentView() ViewState {
	return m.currentView
}

// Notices exposes the notice model, for tests.
func (m Model) Notices() notice.Model {
	return m.notices
}

// navigate switches the active view and re-validates the session, once
// per view change. The check's result is applied whenever it arrives
// (last-write-wins; no cancellation of a prior in-flight check).
func (m *Model) navigate(v ViewState) tea.Cmd {
	m.previousView = m.currentView
	m.currentView = v
	return session.CheckCmd(m.svc)
}

// goHome returns to the feed and refetches it.
func (m *Model) goHome() tea.Cmd {
	return tea.Batch(
		m.navigate(ViewFeed),
		m.feedView.LoadProjects(),
	)
}

// Update handles messages and dispatches to the active view. Every
// message also passes through the notice model so show/dismiss timing
// works regardless of the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var noticeCmd tea.Cmd
	m.notices, noticeCmd = m.notices.Update(msg)

	next, cmd := m.dispatch(msg)
	if noticeCmd == nil {
		return next, cmd
	}
	return next, tea.Batch(noticeCmd, cmd)
}

func (m Model) dispatch(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		contentWidth := m.layout.ContentWidth()
		contentHeight := m.layout.ContentHeight()
		m.feedView.SetSize(contentWidth, contentHeight)
		m.commentsView.SetSize(contentWidth, contentHeight)
		m.loginView.SetSize(contentWidth, contentHeight)
		m.registerView.SetSize(contentWidth, contentHeight)
		m.projectForm.SetSize(contentWidth, contentHeight)
		m.myPageView.SetSize(contentWidth, contentHeight)
		m.helpView.SetSize(contentWidth, contentHeight)
		m.notices.SetWidth(msg.Width)
		// Forward to the active view so huh forms can lay themselves out.
		return m.updateActiveView(msg)

	case session.CheckedMsg:
		// Replace wholesale with whatever the most recently received
		// check carried. Failure means "not signed in", never "retry".
		m.session.Replace(msg.User)
		return m, nil

	case feed.OpenCommentsMsg:
		cmd := m.commentsView.Open(msg.Project)
		return m, tea.Batch(m.navigate(ViewComments), cmd)

	case feed.EditRequestMsg:
		cmd := m.projectForm.StartEdit(msg.ProjectID)
		return m, tea.Batch(m.navigate(ViewProjectEdit), cmd)

	case comments.CloseMsg:
		return m, m.navigate(ViewFeed)

	case comments.CountChangedMsg:
		// The comment response does not embed the fresh count; refetch
		// the single affected project and patch it into the feed.
		return m, m.feedView.RefreshCount(msg.ProjectID)

	case loginform.LoggedInMsg:
		m.session.Replace(msg.User)
		return m, tea.Batch(
			m.goHome(),
			m.persistCredential(),
			notice.Show("Signed in!", notice.SeveritySuccess),
		)

	case loginform.CancelMsg:
		return m, m.navigate(ViewFeed)

	case loginform.GoRegisterMsg:
		cmd := m.registerView.Start()
		return m, tea.Batch(m.navigate(ViewRegister), cmd)

	case registerform.RegisteredMsg:
		m.session.Replace(msg.User)
		return m, tea.Batch(
			m.goHome(),
			m.persistCredential(),
			notice.Show("Account created!", notice.SeveritySuccess),
		)

	case registerform.CancelMsg:
		return m, m.navigate(ViewFeed)

	case projectform.SavedMsg:
		text := "Project registered!"
		if msg.Edited {
			text = "Project updated!"
		}
		return m, tea.Batch(
			m.goHome(),
			notice.Show(text, notice.SeveritySuccess),
		)

	case projectform.CancelMsg:
		return m, m.navigate(ViewFeed)

	case projectform.GoLoginMsg:
		cmd := m.loginView.Start()
		return m, tea.Batch(m.navigate(ViewLogin), cmd)

	case mypage.LoggedOutMsg:
		m.session.Replace(nil)
		return m, tea.Batch(
			m.goHome(),
			m.dropCredential(),
			notice.Show("Signed out.", notice.SeveritySuccess),
		)

	case mypage.CloseMsg:
		return m, m.navigate(ViewFeed)

	case tea.KeyMsg:
		if handled, next, cmd := m.handleGlobalKey(msg); handled {
			return next, cmd
		}
	}

	return m.updateActiveView(msg)
}

// handleGlobalKey processes keys that work outside of text entry. Views
// with focused inputs (forms, comment panel) receive all keys untouched.
func (m Model) handleGlobalKey(msg tea.KeyMsg) (bool, Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return true, m, tea.Quit
	}

	switch m.currentView {
	case ViewFeed, ViewMyPage, ViewHelp:
	default:
		return false, m, nil
	}

	switch msg.String() {
	case "q":
		if m.currentView == ViewFeed {
			return true, m, tea.Quit
		}

	case "?":
		if m.currentView == ViewHelp {
			return true, m, m.navigate(m.previousView)
		}
		return true, m, m.navigate(ViewHelp)

	case "esc":
		if m.currentView == ViewHelp {
			return true, m, m.navigate(m.previousView)
		}

	case "x":
		m.notices.Dismiss()
		return true, m, nil

	case "i":
		if m.currentView == ViewFeed && !m.session.SignedIn() {
			cmd := m.loginView.Start()
			return true, m, tea.Batch(m.navigate(ViewLogin), cmd)
		}

	case "m":
		if m.currentView == ViewFeed {
			return true, m, m.navigate(ViewMyPage)
		}

	case "n":
		if m.currentView != ViewFeed {
			break
		}
		if !m.session.SignedIn() {
			cmd := m.loginView.Start()
			return true, m, tea.Batch(
				m.navigate(ViewLogin),
				cmd,
				notice.Show("Login required.", notice.SeverityWarning),
			)
		}
		cmd := m.projectForm.StartCreate()
		return true, m, tea.Batch(m.navigate(ViewProjectCreate), cmd)
	}

	return false, m, nil
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewFeed:
		m.feedView, cmd = m.feedView.Update(msg)
	case ViewComments:
		m.commentsView, cmd = m.commentsView.Update(msg)
	case ViewLogin:
		m.loginView, cmd = m.loginView.Update(msg)
	case ViewRegister:
		m.registerView, cmd = m.registerView.Update(msg)
	case ViewProjectCreate, ViewProjectEdit:
		m.projectForm, cmd = m.projectForm.Update(msg)
	case ViewMyPage:
		m.myPageView, cmd = m.myPageView.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	}

	return m, cmd
}

// persistCredential stores the ambient session cookie for the next run.
func (m Model) persistCredential() tea.Cmd {
	save := m.saveCred
	if save == nil {
		return nil
	}
	return func() tea.Msg {
		_ = save()
		return nil
	}
}

// dropCredential removes the stored session cookie.
func (m Model) dropCredential() tea.Cmd {
	clear := m.clearCred
	if clear == nil {
		return nil
	}
	return func() tea.Msg {
		_ = clear()
		return nil
	}
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader("Code Connect", m.identity())
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.keyHints(), m.notices.View())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewFeed:
		return m.feedView.View()
	case ViewComments:
		return m.commentsView.View()
	case ViewLogin:
		return m.loginView.View()
	case ViewRegister:
		return m.registerView.View()
	case ViewProjectCreate, ViewProjectEdit:
		return m.projectForm.View()
	case ViewMyPage:
		return m.myPageView.View()
	case ViewHelp:
		return m.helpView.View()
	default:
		return ""
	}
}

// identity returns the session label for the header's right side.
func (m Model) identity() string {
	if user := m.session.Current(); user != nil {
		return user.Nickname
	}
	return "not signed in"
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	switch m.currentView {
	case ViewComments:
		return "enter send | ctrl+j/ctrl+k select | ctrl+d delete | esc back"
	case ViewLogin:
		return "enter submit | ctrl+g register | esc cancel"
	case ViewRegister:
		return "enter submit | esc cancel"
	case ViewProjectCreate, ViewProjectEdit:
		return "enter submit | esc cancel"
	case ViewMyPage:
		return "enter sign out | esc back"
	case ViewHelp:
		return "? close help | esc back"
	default:
		if m.session.SignedIn() {
			return "l like | c comments | n new | e edit | d delete | r refresh | m my page | ? help | q quit"
		}
		return "l like | c comments | r refresh | i sign in | ? help | q quit"
	}
}
