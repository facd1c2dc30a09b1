package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wildprogrammer1000/codeconnect/internal/api"
	"github.com/wildprogrammer1000/codeconnect/internal/app"
	"github.com/wildprogrammer1000/codeconnect/internal/credential"
	"github.com/wildprogrammer1000/codeconnect/internal/model"
	"github.com/wildprogrammer1000/codeconnect/internal/session"
)

func main() {
	cfg, err := model.LoadConfig(model.DefaultConfigPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "codeconnect: %v\n", err)
		os.Exit(1)
	}

	client, err := api.NewClient(cfg.Server.BaseURL, cfg.Timeout())
	if err != nil {
		fmt.Fprintf(os.Stderr, "codeconnect: %v\n", err)
		os.Exit(1)
	}

	// Seed the cookie jar with the credential from the previous run, if
	// any. The session itself is re-validated against the backend on
	// startup; a stale cookie simply fails that check.
	if cookie, err := credential.Get(credential.KeySessionCookie); err == nil {
		client.SetSessionCookie(cookie)
	}

	root := app.New(app.Deps{
		Service: client,
		Session: session.NewStore(),
		SaveCredential: func() error {
			return credential.Set(credential.KeySessionCookie, client.SessionCookie())
		},
		ClearCredential: func() error {
			return credential.Delete(credential.KeySessionCookie)
		},
	})

	p := tea.NewProgram(root, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "codeconnect: %v\n", err)
		os.Exit(1)
	}
}
