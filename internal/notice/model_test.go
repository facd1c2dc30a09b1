package notice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func show(t *testing.T, m Model, message string, severity Severity) Model {
	t.Helper()
	m, cmd := m.Update(ShowMsg{Notice: Notice{Message: message, Severity: severity}})
	require.NotNil(t, cmd, "showing a notice must schedule its dismissal")
	return m
}

func TestShowAndAutoDismiss(t *testing.T) {
	m := New(80)
	assert.False(t, m.Visible())

	m = show(t, m, "Signed in!", SeveritySuccess)
	require.True(t, m.Visible())
	assert.Equal(t, "Signed in!", m.Current().Message)
	assert.Equal(t, SeveritySuccess, m.Current().Severity)

	m, _ = m.Update(dismissMsg{generation: 1})
	assert.False(t, m.Visible())
}

func TestNewNoticeSupersedesCurrent(t *testing.T) {
	m := New(80)
	m = show(t, m, "first", SeverityInfo)
	m = show(t, m, "second", SeverityError)

	require.True(t, m.Visible())
	assert.Equal(t, "second", m.Current().Message)
}

func TestStaleTimerDoesNotClearNewerNotice(t *testing.T) {
	m := New(80)
	m = show(t, m, "first", SeverityInfo)
	m = show(t, m, "second", SeverityError)

	// The first notice's timer fires after it was superseded.
	m, _ = m.Update(dismissMsg{generation: 1})
	require.True(t, m.Visible())
	assert.Equal(t, "second", m.Current().Message)

	// The current notice's own timer still clears it.
	m, _ = m.Update(dismissMsg{generation: 2})
	assert.False(t, m.Visible())
}

func TestExplicitDismiss(t *testing.T) {
	m := New(80)
	m = show(t, m, "gone soon", SeverityWarning)

	m.Dismiss()
	assert.False(t, m.Visible())

	// The orphaned timer is a no-op after an explicit dismissal.
	m, _ = m.Update(dismissMsg{generation: 1})
	assert.False(t, m.Visible())
}

func TestViewEmptyWhenNothingVisible(t *testing.T) {
	m := New(80)
	assert.Empty(t, m.View())

	m = show(t, m, "hello", SeverityInfo)
	assert.Contains(t, m.View(), "hello")
}
