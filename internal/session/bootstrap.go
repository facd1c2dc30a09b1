package session

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wildprogrammer1000/codeconnect/internal/api"
	"github.com/wildprogrammer1000/codeconnect/internal/model"
)

// CheckedMsg carries the result of a "who am I" check. User is nil when
// the check failed for any reason: network error, unauthenticated, or a
// server error all count as "not signed in", never as a transient fault.
type CheckedMsg struct {
	User *model.User
}

// CheckCmd issues a "who am I" request carrying the ambient credential.
// It fires once per view change (the initial load included). No retry and
// no sequencing token: a stale response arriving late simply overwrites
// the session with whatever it contains. Rapid navigation can therefore
// apply a stale result; this last-write-wins behavior is deliberate.
func CheckCmd(svc api.Service) tea.Cmd {
	return func() tea.Msg {
		user, err := svc.CurrentUser(context.Background())
		if err != nil {
			return CheckedMsg{User: nil}
		}
		return CheckedMsg{User: user}
	}
}
