package app

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wildprogrammer1000/codeconnect/internal/model"
	"github.com/wildprogrammer1000/codeconnect/internal/notice"
	"github.com/wildprogrammer1000/codeconnect/internal/session"
	"github.com/wildprogrammer1000/codeconnect/internal/ui/comments"
	"github.com/wildprogrammer1000/codeconnect/internal/ui/feed"
	"github.com/wildprogrammer1000/codeconnect/internal/ui/loginform"
	"github.com/wildprogrammer1000/codeconnect/internal/ui/mypage"
	"github.com/wildprogrammer1000/codeconnect/tests/testutil"
)

func newApp(svc *testutil.FakeService) (Model, *session.Store) {
	sess := session.NewStore()
	m := New(Deps{Service: svc, Session: sess})
	return m, sess
}

// update runs root Update and narrows the returned tea.Model back down.
func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	root, ok := next.(Model)
	require.True(t, ok)
	return root, cmd
}

func TestSessionCheckReplacesWholesale(t *testing.T) {
	svc := &testutil.FakeService{}
	m, sess := newApp(svc)

	alice := &model.User{ID: 1, UserID: "alice123", Nickname: "Alice"}
	m, _ = update(t, m, session.CheckedMsg{User: alice})
	assert.Equal(t, alice, sess.Current())

	// A later check that failed signs the user out; there is no sequencing
	// guard, whichever result lands last wins.
	m, _ = update(t, m, session.CheckedMsg{User: nil})
	assert.Nil(t, sess.Current())
}

func TestLoggedInNavigatesHome(t *testing.T) {
	alice := &model.User{ID: 1, UserID: "alice123", Nickname: "Alice"}
	svc := &testutil.FakeService{User: alice}

	saved := 0
	sess := session.NewStore()
	m := New(Deps{
		Service:        svc,
		Session:        sess,
		SaveCredential: func() error { saved++; return nil },
	})

	m, cmd := update(t, m, loginform.LoggedInMsg{User: alice})

	assert.Equal(t, ViewFeed, m.CurrentView())
	assert.Equal(t, alice, sess.Current())

	msgs := testutil.Drain(cmd)
	assert.Equal(t, 1, saved, "credential persisted once")
	assert.Equal(t, 1, svc.CallCount("ListProjects"), "feed refetched on returning home")
	assert.Equal(t, 1, svc.CallCount("CurrentUser"), "navigation re-checks the session")

	var shown *notice.ShowMsg
	for _, msg := range msgs {
		if s, ok := msg.(notice.ShowMsg); ok {
			shown = &s
		}
	}
	require.NotNil(t, shown)
	assert.Equal(t, "Signed in!", shown.Notice.Message)
}

func TestLoggedOutClearsSessionAndCredential(t *testing.T) {
	svc := &testutil.FakeService{}

	cleared := 0
	sess := session.NewStore()
	sess.Replace(&model.User{ID: 1, UserID: "alice123", Nickname: "Alice"})
	m := New(Deps{
		Service:         svc,
		Session:         sess,
		ClearCredential: func() error { cleared++; return nil },
	})

	m, cmd := update(t, m, mypage.LoggedOutMsg{})

	assert.Nil(t, sess.Current())
	assert.Equal(t, ViewFeed, m.CurrentView())

	var shown *notice.ShowMsg
	for _, msg := range testutil.Drain(cmd) {
		if s, ok := msg.(notice.ShowMsg); ok {
			shown = &s
		}
	}
	assert.Equal(t, 1, cleared)
	require.NotNil(t, shown)
	assert.Equal(t, "Signed out.", shown.Notice.Message)
}

func TestNavigationFiresSessionCheck(t *testing.T) {
	svc := &testutil.FakeService{}
	m, _ := newApp(svc)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'m'}})
	assert.Equal(t, ViewMyPage, m.CurrentView())

	msgs := testutil.Drain(cmd)
	assert.Equal(t, 1, svc.CallCount("CurrentUser"))

	var checked bool
	for _, msg := range msgs {
		if _, ok := msg.(session.CheckedMsg); ok {
			checked = true
		}
	}
	assert.True(t, checked)
}

func TestNewProjectRequiresSignIn(t *testing.T) {
	svc := &testutil.FakeService{}
	m, _ := newApp(svc)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	assert.Equal(t, ViewLogin, m.CurrentView())

	var shown *notice.ShowMsg
	for _, msg := range testutil.Drain(cmd) {
		if s, ok := msg.(notice.ShowMsg); ok {
			shown = &s
		}
	}
	require.NotNil(t, shown)
	assert.Equal(t, "Login required.", shown.Notice.Message)
	assert.Equal(t, notice.SeverityWarning, shown.Notice.Severity)
}

func TestNewProjectOpensFormWhenSignedIn(t *testing.T) {
	svc := &testutil.FakeService{}
	m, sess := newApp(svc)
	sess.Replace(&model.User{ID: 1, UserID: "alice123", Nickname: "Alice"})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	assert.Equal(t, ViewProjectCreate, m.CurrentView())
}

func TestHelpToggleReturnsToPreviousView(t *testing.T) {
	svc := &testutil.FakeService{}
	m, _ := newApp(svc)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	assert.Equal(t, ViewHelp, m.CurrentView())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	assert.Equal(t, ViewFeed, m.CurrentView())
}

func TestOpenCommentsLoadsPanel(t *testing.T) {
	svc := &testutil.FakeService{
		CommentList: []model.Comment{{ID: 1, UserID: "bob45678", Content: "hi"}},
	}
	m, _ := newApp(svc)

	p := model.Project{ID: 7, Title: "Alpha"}
	m, cmd := update(t, m, feed.OpenCommentsMsg{Project: p})

	assert.Equal(t, ViewComments, m.CurrentView())
	testutil.Drain(cmd)
	assert.Equal(t, 1, svc.CallCount("ListComments"))
}

func TestCommentCountChangeRefetchesProject(t *testing.T) {
	svc := &testutil.FakeService{
		Project: &model.Project{ID: 7, CommentCount: 3},
	}
	m, _ := newApp(svc)

	_, cmd := update(t, m, comments.CountChangedMsg{ProjectID: 7})
	testutil.Drain(cmd)
	assert.Equal(t, 1, svc.CallCount("GetProject"))
}

func TestDismissKeyClearsNotice(t *testing.T) {
	svc := &testutil.FakeService{}
	m, _ := newApp(svc)

	// The show message flows through the root so any view can raise it.
	next, _ := m.Update(notice.ShowMsg{Notice: notice.Notice{
		Message: "Signed in!", Severity: notice.SeveritySuccess,
	}})
	m = next.(Model)
	require.True(t, m.Notices().Visible())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	assert.False(t, m.Notices().Visible())
}
