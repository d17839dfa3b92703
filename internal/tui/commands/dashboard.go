package commands

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/crema-dev/crema/internal/dashboard"
	"github.com/crema-dev/crema/internal/tui"
)

// LoadDashboardCmd fetches the aggregated analytics.
func LoadDashboardCmd(ctx context.Context, svc *dashboard.Service) tea.Cmd {
	return func() tea.Msg {
		data, err := svc.Load(ctx)
		return tui.DashboardLoadedMsg{Data: data, Err: err}
	}
}
