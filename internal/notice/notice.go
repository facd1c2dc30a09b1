// Package notice implements the transient status message channel: a
// process-wide queue of depth one, where a new notice supersedes whatever
// is currently visible.
package notice

import tea "github.com/charmbracelet/bubbletea"

// Severity classifies a notice for styling and triage.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Notice is a single transient user-facing status message.
type Notice struct {
	Message  string
	Severity Severity
}

// ShowMsg asks the root model to display a notice.
type ShowMsg struct {
	Notice Notice
}

// Show returns a command that raises a notice.
func Show(message string, severity Severity) tea.Cmd {
	return func() tea.Msg {
		return ShowMsg{Notice: Notice{Message: message, Severity: severity}}
	}
}
