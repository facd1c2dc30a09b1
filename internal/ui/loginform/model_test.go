package loginform

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wildprogrammer1000/codeconnect/internal/model"
	"github.com/wildprogrammer1000/codeconnect/internal/notice"
	"github.com/wildprogrammer1000/codeconnect/tests/testutil"
)

func TestSubmitCallsLogin(t *testing.T) {
	svc := &testutil.FakeService{
		LoginUser: &model.User{ID: 1, UserID: "alice123", Nickname: "Alice"},
	}
	m := New(svc, 80, 24)
	m.Start()

	m.fb.username = "alice123"
	m.fb.password = "secretpass1"

	msgs := testutil.Drain(m.submitCmd())
	require.Len(t, msgs, 1)

	assert.Equal(t, 1, svc.CallCount("Login"))
	assert.Equal(t, "alice123", svc.LastLogin.Username)
	assert.Equal(t, "secretpass1", svc.LastLogin.Password)

	result, ok := msgs[0].(loginResultMsg)
	require.True(t, ok)
	require.NoError(t, result.err)
	assert.Equal(t, "Alice", result.user.Nickname)
}

func TestLoginSuccessEmitsLoggedIn(t *testing.T) {
	svc := &testutil.FakeService{}
	m := New(svc, 80, 24)
	m.Start()

	alice := &model.User{ID: 1, UserID: "alice123", Nickname: "Alice"}
	_, cmd := m.Update(loginResultMsg{user: alice})

	msgs := testutil.Drain(cmd)
	require.Len(t, msgs, 1)
	logged, ok := msgs[0].(LoggedInMsg)
	require.True(t, ok)
	assert.Equal(t, alice, logged.User)
}

func TestLoginFailureRebuildsFormAndNotifies(t *testing.T) {
	svc := &testutil.FakeService{}
	m := New(svc, 80, 24)
	m.Start()

	m, cmd := m.Update(loginResultMsg{err: errors.New("bad credentials")})
	require.NotNil(t, m.form, "form must be usable again after a failure")

	var shown *notice.ShowMsg
	for _, msg := range testutil.Drain(cmd) {
		if s, ok := msg.(notice.ShowMsg); ok {
			shown = &s
		}
	}
	require.NotNil(t, shown)
	assert.Equal(t, "Sign-in failed.", shown.Notice.Message)
	assert.Equal(t, notice.SeverityError, shown.Notice.Severity)
}

func TestCtrlGSwitchesToRegister(t *testing.T) {
	svc := &testutil.FakeService{}
	m := New(svc, 80, 24)
	m.Start()

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlG})
	msgs := testutil.Drain(cmd)
	require.Len(t, msgs, 1)
	_, ok := msgs[0].(GoRegisterMsg)
	assert.True(t, ok)
}
