package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/crema-dev/crema/internal/api"
	"github.com/crema-dev/crema/internal/dashboard"
	"github.com/crema-dev/crema/internal/tui"
)

// ReloadDashboardMsg asks the app to refetch the dashboard analytics.
type ReloadDashboardMsg struct{}

// DashboardModel is the view model for the analytics overview.
type DashboardModel struct {
	data    *dashboard.Data
	loading bool
	errMsg  string
	width   int
	height  int
}

// NewDashboardModel creates the dashboard view in its loading state.
func NewDashboardModel(width, height int) DashboardModel {
	return DashboardModel{loading: true, width: width, height: height}
}

// Capturing reports whether the view wants all key input. The dashboard
// is read-only, so it never does.
func (m DashboardModel) Capturing() bool {
	return false
}

// Update handles messages for the dashboard view.
func (m DashboardModel) Update(msg tea.Msg) (DashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tui.DashboardLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.errMsg = api.ErrorMessage(msg.Err, "Failed to load dashboard")
			return m, nil
		}
		m.errMsg = ""
		m.data = msg.Data
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "r" {
			m.loading = true
			return m, func() tea.Msg { return ReloadDashboardMsg{} }
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

// View renders the dashboard view.
func (m DashboardModel) View() string {
	var b strings.Builder
	b.WriteString(tui.TitleStyle.Render("Dashboard"))
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString(tui.DimStyle.Render("Loading dashboard..."))
	case m.errMsg != "":
		b.WriteString(tui.ErrorStyle.Render(m.errMsg))
	case m.data == nil:
		b.WriteString(tui.DimStyle.Render("No data."))
	default:
		m.renderData(&b)
	}

	b.WriteString("\n\n")
	b.WriteString(tui.DimStyle.Render("r: refresh"))
	return b.String()
}

func (m DashboardModel) renderData(b *strings.Builder) {
	d := m.data

	if d.Partial {
		b.WriteString(tui.WarningStyle.Render("Some analytics are unavailable; showing locally computed values."))
		b.WriteString("\n\n")
	}

	if d.Summary != nil {
		c := d.Summary.Counts
		b.WriteString(fmt.Sprintf("Beans %d   Grinders %d   Sessions %d   Shots %d\n\n",
			c.Beans, c.Grinders, c.Sessions, c.Shots))
	}

	if d.Optimal != nil {
		o := d.Optimal
		b.WriteString(tui.TitleStyle.Render("Optimal shots"))
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("%d of %d shots inside ratio %.1f–%.1f and %d–%ds\n\n",
			o.OptimalShotCount, o.TotalShots, o.RatioMin, o.RatioMax, o.TimeMinSeconds, o.TimeMaxSeconds))
	}

	if len(d.Comparisons) > 0 {
		b.WriteString(tui.TitleStyle.Render("Beans compared"))
		b.WriteString("\n")
		b.WriteString(tui.DimStyle.Render(fmt.Sprintf("%-24s %6s %7s %7s %7s", "bean", "shots", "ratio", "flow", "time")))
		b.WriteString("\n")
		for _, c := range d.Comparisons {
			b.WriteString(fmt.Sprintf("%-24s %6d %7.2f %7.2f %7.1f\n",
				c.BeanName, c.ShotCount, c.AvgExtractionRatio, c.AvgFlowRate, c.AvgTimeSeconds))
		}
		b.WriteString("\n")
	}

	if len(d.Trends) > 0 {
		b.WriteString(tui.TitleStyle.Render("Recent extractions"))
		b.WriteString("\n")
		trends := d.Trends
		if len(trends) > 10 {
			trends = trends[len(trends)-10:]
		}
		for _, p := range trends {
			b.WriteString(fmt.Sprintf("%-12s %-22s ratio %5.2f  flow %5.2f\n",
				p.Date, p.BeanName, p.ExtractionRatio, p.FlowRate))
		}
	}
}
