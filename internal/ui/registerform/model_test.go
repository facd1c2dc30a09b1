package registerform

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wildprogrammer1000/codeconnect/internal/model"
	"github.com/wildprogrammer1000/codeconnect/internal/notice"
	"github.com/wildprogrammer1000/codeconnect/tests/testutil"
)

func newModel(svc *testutil.FakeService) Model {
	m := New(svc, 80, 24)
	m.Start()
	m.fb.username = "alice123"
	m.fb.password = "secretpass1"
	m.fb.nickname = "Alice"
	return m
}

func TestAvailableNicknameProceedsToRegister(t *testing.T) {
	svc := &testutil.FakeService{
		RegisterUser: &model.User{ID: 1, UserID: "alice123", Nickname: "Alice"},
	}
	m := newModel(svc)

	_, cmd := m.Update(nicknameCheckedMsg{available: true, message: "Available."})
	msgs := testutil.Drain(cmd)

	require.Equal(t, 1, svc.CallCount("Register"))
	assert.Equal(t, "alice123", svc.LastRegister.Username)
	assert.Equal(t, "secretpass1", svc.LastRegister.Password)
	assert.Equal(t, "Alice", svc.LastRegister.Nickname)

	require.Len(t, msgs, 1)
	result, ok := msgs[0].(registerResultMsg)
	require.True(t, ok)
	require.NoError(t, result.err)
	assert.Equal(t, "Alice", result.user.Nickname)
}

func TestTakenNicknameRefusesRegistration(t *testing.T) {
	svc := &testutil.FakeService{}
	m := newModel(svc)

	m, cmd := m.Update(nicknameCheckedMsg{available: false, message: "Nickname already in use."})

	assert.Equal(t, 0, svc.CallCount("Register"))
	require.NotNil(t, m.form)

	var shown *notice.ShowMsg
	for _, msg := range testutil.Drain(cmd) {
		if s, ok := msg.(notice.ShowMsg); ok {
			shown = &s
		}
	}
	require.NotNil(t, shown)
	assert.Equal(t, "Nickname already in use.", shown.Notice.Message)
	assert.Equal(t, notice.SeverityError, shown.Notice.Severity)
}

func TestNicknameCheckErrorNotifies(t *testing.T) {
	svc := &testutil.FakeService{}
	m := newModel(svc)

	_, cmd := m.Update(nicknameCheckedMsg{err: errors.New("boom")})

	assert.Equal(t, 0, svc.CallCount("Register"))

	var shown *notice.ShowMsg
	for _, msg := range testutil.Drain(cmd) {
		if s, ok := msg.(notice.ShowMsg); ok {
			shown = &s
		}
	}
	require.NotNil(t, shown)
	assert.Equal(t, "Nickname check failed.", shown.Notice.Message)
}

func TestRegisterSuccessEmitsRegistered(t *testing.T) {
	svc := &testutil.FakeService{}
	m := newModel(svc)

	alice := &model.User{ID: 1, UserID: "alice123", Nickname: "Alice"}
	_, cmd := m.Update(registerResultMsg{user: alice})

	msgs := testutil.Drain(cmd)
	require.Len(t, msgs, 1)
	registered, ok := msgs[0].(RegisteredMsg)
	require.True(t, ok)
	assert.Equal(t, alice, registered.User)
}

func TestRegisterFailureNotifies(t *testing.T) {
	svc := &testutil.FakeService{}
	m := newModel(svc)

	m, cmd := m.Update(registerResultMsg{err: errors.New("conflict")})
	require.NotNil(t, m.form)

	var shown *notice.ShowMsg
	for _, msg := range testutil.Drain(cmd) {
		if s, ok := msg.(notice.ShowMsg); ok {
			shown = &s
		}
	}
	require.NotNil(t, shown)
	assert.Equal(t, "Registration failed.", shown.Notice.Message)
}

func TestCheckNicknameCmdSendsDraftedNickname(t *testing.T) {
	svc := &testutil.FakeService{NicknameAvailable: true}
	m := newModel(svc)

	msgs := testutil.Drain(m.checkNicknameCmd())
	require.Len(t, msgs, 1)

	checked, ok := msgs[0].(nicknameCheckedMsg)
	require.True(t, ok)
	assert.True(t, checked.available)
	assert.Equal(t, 1, svc.CallCount("CheckNickname"))
}
