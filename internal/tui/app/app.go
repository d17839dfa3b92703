// Package app wires the crema views into the root Bubble Tea model:
// it gates everything behind authentication, cycles the resource tabs,
// and dispatches the commands the views ask for.
package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/crema-dev/crema/internal/api"
	"github.com/crema-dev/crema/internal/auth"
	"github.com/crema-dev/crema/internal/dashboard"
	"github.com/crema-dev/crema/internal/log"
	"github.com/crema-dev/crema/internal/tui"
	"github.com/crema-dev/crema/internal/tui/commands"
	"github.com/crema-dev/crema/internal/tui/views"
)

type tabID int

const (
	tabDashboard tabID = iota
	tabBeans
	tabGrinders
	tabSessions
)

var tabTitles = []string{"Dashboard", "Beans", "Grinders", "Sessions"}

// App is the root model. While the persisted session is being checked
// it shows a placeholder; unauthenticated users only ever see the
// sign-in and registration views.
type App struct {
	client *api.Client
	store  *auth.Store
	svc    *dashboard.Service
	logger *log.Logger

	checking     bool
	authed       bool
	showRegister bool

	login    views.LoginModel
	register views.RegisterModel
	dash     views.DashboardModel
	beans    views.BeansModel
	grinders views.GrindersModel
	sessions views.SessionsModel

	active tabID

	// loadCancel aborts the active tab's in-flight requests when the
	// user switches away.
	loadCtx    context.Context
	loadCancel context.CancelFunc

	width  int
	height int
}

// New creates the root model. logger may be nil.
func New(client *api.Client, store *auth.Store, svc *dashboard.Service, logger *log.Logger) *App {
	a := &App{
		client:   client,
		store:    store,
		svc:      svc,
		logger:   logger,
		checking: true,
		width:    80,
		height:   24,
	}
	a.login = views.NewLoginModel(a.width, a.height)
	a.register = views.NewRegisterModel(a.width, a.height)
	a.resetTabs()
	a.loadCtx, a.loadCancel = context.WithCancel(context.Background())
	return a
}

// Run starts the program and wires the expired-session hook so a 401
// from any request sends the user back to sign-in exactly once.
func Run(a *App) error {
	if !tui.IsTTY() {
		return tui.Run(a)
	}
	p := tea.NewProgram(a, tea.WithAltScreen())
	a.client.SetUnauthorizedHook(func() {
		if a.store.Invalidate() {
			p.Send(tui.SessionExpiredMsg{})
		}
	})
	_, err := p.Run()
	return err
}

func (a *App) resetTabs() {
	a.dash = views.NewDashboardModel(a.width, a.height)
	a.beans = views.NewBeansModel(a.width, a.height)
	a.grinders = views.NewGrindersModel(a.width, a.height)
	a.sessions = views.NewSessionsModel(a.width, a.height, a.svc.Optimal())
	a.active = tabDashboard
}

// newLoadCtx cancels any in-flight tab loads and starts a fresh scope.
func (a *App) newLoadCtx() context.Context {
	if a.loadCancel != nil {
		a.loadCancel()
	}
	a.loadCtx, a.loadCancel = context.WithCancel(context.Background())
	return a.loadCtx
}

// Init checks for a persisted session before showing anything.
func (a *App) Init() tea.Cmd {
	return commands.CheckAuthCmd(a.newLoadCtx(), a.store)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a.broadcast(msg)

	case tea.KeyMsg:
		return a.handleKey(msg)

	case tui.AuthCheckedMsg:
		a.checking = false
		if msg.Snapshot.IsAuthenticated {
			return a.enterApp()
		}
		return a, nil

	case views.SubmitLoginMsg:
		return a, commands.LoginCmd(a.newLoadCtx(), a.store, msg.Email, msg.Password)

	case tui.LoginResultMsg:
		if msg.Result.Success {
			return a.enterApp()
		}
		a.login.SetResult(false, msg.Result.Error)
		return a, nil

	case views.SubmitRegisterMsg:
		return a, commands.RegisterCmd(a.newLoadCtx(), a.store, msg.Name, msg.Email, msg.Password, msg.Confirmation)

	case tui.RegisterResultMsg:
		if msg.Result.Success {
			return a.enterApp()
		}
		a.register.SetResult(false, msg.Result.Error, msg.Result.Details)
		return a, nil

	case views.SwitchToRegisterMsg:
		a.showRegister = true
		a.register = views.NewRegisterModel(a.width, a.height)
		return a, a.register.Init()

	case views.SwitchToLoginMsg:
		a.showRegister = false
		a.login = views.NewLoginModel(a.width, a.height)
		return a, a.login.Init()

	case tui.SessionExpiredMsg:
		a.signOut("Your session has expired. Please sign in again.")
		return a, nil

	case tui.LogoutDoneMsg:
		a.signOut("")
		return a, nil

	// View intents that need the API client.
	case views.ReloadDashboardMsg:
		return a, commands.LoadDashboardCmd(a.newLoadCtx(), a.svc)
	case views.ReloadBeansMsg:
		return a, commands.LoadBeansCmd(a.newLoadCtx(), a.client)
	case views.SaveBeanMsg:
		return a, commands.SaveBeanCmd(a.loadCtx, a.client, msg.Bean)
	case views.DeleteBeanMsg:
		return a, commands.DeleteBeanCmd(a.loadCtx, a.client, msg.ID)
	case views.LoadBeanSessionsMsg:
		return a, commands.LoadBeanSessionsCmd(a.loadCtx, a.client, msg.BeanID)
	case views.ReloadGrindersMsg:
		return a, commands.LoadGrindersCmd(a.newLoadCtx(), a.client)
	case views.SaveGrinderMsg:
		return a, commands.SaveGrinderCmd(a.loadCtx, a.client, msg.Grinder)
	case views.DeleteGrinderMsg:
		return a, commands.DeleteGrinderCmd(a.loadCtx, a.client, msg.ID)
	case views.ReloadSessionsMsg:
		return a, commands.LoadSessionsCmd(a.newLoadCtx(), a.client)
	case views.SaveSessionMsg:
		return a, commands.SaveSessionCmd(a.loadCtx, a.client, msg.Session)
	case views.DeleteSessionMsg:
		return a, commands.DeleteSessionCmd(a.loadCtx, a.client, msg.ID)
	case views.LoadShotsMsg:
		return a, commands.LoadShotsCmd(a.loadCtx, a.client, msg.SessionID)
	case views.SaveShotMsg:
		return a, commands.SaveShotCmd(a.loadCtx, a.client, msg.Shot)
	case views.DeleteShotMsg:
		return a, commands.DeleteShotCmd(a.loadCtx, a.client, msg.SessionID, msg.ID)
	}

	// Everything else (load results, blink ticks) goes to whichever
	// views care; results carry their own routing.
	a.logResult(msg)
	return a.broadcast(msg)
}

// logResult records load and mutation outcomes in the event log.
func (a *App) logResult(msg tea.Msg) {
	if a.logger == nil {
		return
	}
	switch msg := msg.(type) {
	case tui.BeansLoadedMsg:
		a.logLoad("bean", len(msg.Beans), msg.Err)
	case tui.GrindersLoadedMsg:
		a.logLoad("grinder", len(msg.Grinders), msg.Err)
	case tui.SessionsLoadedMsg:
		a.logLoad("session", len(msg.Sessions), msg.Err)
	case tui.BeanSessionsLoadedMsg:
		a.logLoad("session", len(msg.Sessions), msg.Err)
	case tui.ShotsLoadedMsg:
		a.logLoad("shot", len(msg.Shots), msg.Err)
	case tui.BeanSavedMsg:
		var id int64
		if msg.Bean != nil {
			id = msg.Bean.ID
		}
		a.logSave("bean", id, msg.Created, msg.Err)
	case tui.GrinderSavedMsg:
		var id int64
		if msg.Grinder != nil {
			id = msg.Grinder.ID
		}
		a.logSave("grinder", id, msg.Created, msg.Err)
	case tui.SessionSavedMsg:
		var id int64
		if msg.Session != nil {
			id = msg.Session.ID
		}
		a.logSave("session", id, msg.Created, msg.Err)
	case tui.ShotSavedMsg:
		var id int64
		if msg.Shot != nil {
			id = msg.Shot.ID
		}
		a.logSave("shot", id, msg.Created, msg.Err)
	case tui.BeanDeletedMsg:
		a.logDelete("bean", msg.ID, msg.Err)
	case tui.GrinderDeletedMsg:
		a.logDelete("grinder", msg.ID, msg.Err)
	case tui.SessionDeletedMsg:
		a.logDelete("session", msg.ID, msg.Err)
	case tui.ShotDeletedMsg:
		a.logDelete("shot", msg.ID, msg.Err)
	case tui.DashboardLoadedMsg:
		if msg.Err != nil {
			_ = a.logger.Append(log.Event{Event: log.EventAPIError, Entity: "dashboard", Error: msg.Err.Error()})
		} else {
			_ = a.logger.Append(log.Event{Event: log.EventDashboardLoad})
		}
	}
}

func (a *App) logLoad(entity string, count int, err error) {
	if err != nil {
		_ = a.logger.Append(log.Event{Event: log.EventAPIError, Entity: entity, Error: err.Error()})
		return
	}
	_ = a.logger.Append(log.Event{Event: log.EventListLoaded, Entity: entity, Count: count})
}

func (a *App) logSave(entity string, id int64, created bool, err error) {
	if err != nil {
		_ = a.logger.Append(log.Event{Event: log.EventAPIError, Entity: entity, Error: err.Error()})
		return
	}
	event := log.EventItemUpdated
	if created {
		event = log.EventItemCreated
	}
	_ = a.logger.Append(log.Event{Event: event, Entity: entity, ID: id})
}

func (a *App) logDelete(entity string, id int64, err error) {
	if err != nil {
		_ = a.logger.Append(log.Event{Event: log.EventAPIError, Entity: entity, Error: err.Error()})
		return
	}
	_ = a.logger.Append(log.Event{Event: log.EventItemDeleted, Entity: entity, ID: id})
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := tui.DefaultKeyMap
	if key.Matches(msg, keys.CtrlC) {
		if a.loadCancel != nil {
			a.loadCancel()
		}
		return a, tea.Quit
	}
	if a.checking {
		return a, nil
	}

	if !a.authed {
		if a.showRegister {
			var cmd tea.Cmd
			a.register, cmd = a.register.Update(msg)
			return a, cmd
		}
		var cmd tea.Cmd
		a.login, cmd = a.login.Update(msg)
		return a, cmd
	}

	if !a.activeCapturing() {
		switch {
		case key.Matches(msg, keys.Tab):
			return a.switchTab(1)
		case msg.String() == "shift+tab":
			return a.switchTab(-1)
		case msg.String() == "ctrl+l":
			return a, commands.LogoutCmd(a.newLoadCtx(), a.store)
		}
	}
	return a.routeToActive(msg)
}

func (a *App) switchTab(delta int) (tea.Model, tea.Cmd) {
	n := tabID(len(tabTitles))
	a.active = (a.active + tabID(delta) + n) % n
	return a, a.loadActive()
}

// loadActive dispatches the load command for the focused tab, aborting
// whatever the previous tab still had in flight.
func (a *App) loadActive() tea.Cmd {
	ctx := a.newLoadCtx()
	switch a.active {
	case tabDashboard:
		return commands.LoadDashboardCmd(ctx, a.svc)
	case tabBeans:
		return commands.LoadBeansCmd(ctx, a.client)
	case tabGrinders:
		return commands.LoadGrindersCmd(ctx, a.client)
	case tabSessions:
		return commands.LoadSessionsCmd(ctx, a.client)
	}
	return nil
}

func (a *App) enterApp() (tea.Model, tea.Cmd) {
	a.authed = true
	a.showRegister = false
	a.resetTabs()
	return a, a.loadActive()
}

func (a *App) signOut(banner string) {
	a.authed = false
	a.showRegister = false
	if a.loadCancel != nil {
		a.loadCancel()
	}
	a.login = views.NewLoginModel(a.width, a.height)
	if banner != "" {
		a.login.SetResult(false, banner)
	}
}

func (a *App) activeCapturing() bool {
	switch a.active {
	case tabBeans:
		return a.beans.Capturing()
	case tabGrinders:
		return a.grinders.Capturing()
	case tabSessions:
		return a.sessions.Capturing()
	}
	return false
}

func (a *App) routeToActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.active {
	case tabDashboard:
		a.dash, cmd = a.dash.Update(msg)
	case tabBeans:
		a.beans, cmd = a.beans.Update(msg)
	case tabGrinders:
		a.grinders, cmd = a.grinders.Update(msg)
	case tabSessions:
		a.sessions, cmd = a.sessions.Update(msg)
	}
	return a, cmd
}

// broadcast forwards a message to every view so result messages reach
// their owner even when the user has already switched tabs.
func (a *App) broadcast(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	a.login, cmd = a.login.Update(msg)
	cmds = append(cmds, cmd)
	a.register, cmd = a.register.Update(msg)
	cmds = append(cmds, cmd)
	a.dash, cmd = a.dash.Update(msg)
	cmds = append(cmds, cmd)
	a.beans, cmd = a.beans.Update(msg)
	cmds = append(cmds, cmd)
	a.grinders, cmd = a.grinders.Update(msg)
	cmds = append(cmds, cmd)
	a.sessions, cmd = a.sessions.Update(msg)
	cmds = append(cmds, cmd)

	return a, tea.Batch(cmds...)
}

// View implements tea.Model.
func (a *App) View() string {
	if a.checking {
		return tui.BoxStyle.Render(tui.DimStyle.Render("Checking session..."))
	}
	if !a.authed {
		if a.showRegister {
			return a.register.View()
		}
		return a.login.View()
	}

	var b strings.Builder
	b.WriteString(a.renderTabs())
	b.WriteString("\n\n")

	switch a.active {
	case tabDashboard:
		b.WriteString(a.dash.View())
	case tabBeans:
		b.WriteString(a.beans.View())
	case tabGrinders:
		b.WriteString(a.grinders.View())
	case tabSessions:
		b.WriteString(a.sessions.View())
	}

	b.WriteString("\n")
	b.WriteString(a.renderStatusBar())
	return b.String()
}

func (a *App) renderTabs() string {
	parts := make([]string, len(tabTitles))
	for i, title := range tabTitles {
		if tabID(i) == a.active {
			parts[i] = tui.ActiveTabStyle.Render(title)
		} else {
			parts[i] = tui.InactiveTabStyle.Render(title)
		}
	}
	return strings.Join(parts, " ")
}

func (a *App) renderStatusBar() string {
	who := ""
	if snap := a.store.Snapshot(); snap.User != nil {
		who = snap.User.Email
	}
	left := fmt.Sprintf("crema — %s", who)
	right := "tab: switch   ctrl+l: sign out   ctrl+c: exit"
	return tui.StatusBarStyle.Render(left + "   " + right)
}
