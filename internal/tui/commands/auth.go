// Package commands provides Bubble Tea commands for TUI operations.
package commands

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/crema-dev/crema/internal/auth"
	"github.com/crema-dev/crema/internal/tui"
)

// CheckAuthCmd restores a persisted session, if any, by validating the
// stored token against the server.
func CheckAuthCmd(ctx context.Context, store *auth.Store) tea.Cmd {
	return func() tea.Msg {
		store.Rehydrate(ctx)
		return tui.AuthCheckedMsg{Snapshot: store.Snapshot()}
	}
}

// LoginCmd attempts a login with the given credentials.
func LoginCmd(ctx context.Context, store *auth.Store, email, password string) tea.Cmd {
	return func() tea.Msg {
		result := store.Login(ctx, email, password)
		return tui.LoginResultMsg{Result: result, Snapshot: store.Snapshot()}
	}
}

// RegisterCmd attempts to create an account and sign in.
func RegisterCmd(ctx context.Context, store *auth.Store, name, email, password, confirmation string) tea.Cmd {
	return func() tea.Msg {
		result := store.Register(ctx, name, email, password, confirmation)
		return tui.RegisterResultMsg{Result: result, Snapshot: store.Snapshot()}
	}
}

// LogoutCmd tears down the session. The local session is gone when the
// message arrives even if the server call failed.
func LogoutCmd(ctx context.Context, store *auth.Store) tea.Cmd {
	return func() tea.Msg {
		store.Logout(ctx)
		return tui.LogoutDoneMsg{}
	}
}
