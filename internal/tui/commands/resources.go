package commands

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/crema-dev/crema/internal/api"
	"github.com/crema-dev/crema/internal/lists"
	"github.com/crema-dev/crema/internal/model"
	"github.com/crema-dev/crema/internal/tui"
)

// LoadBeansCmd fetches the bean list.
func LoadBeansCmd(ctx context.Context, client *api.Client) tea.Cmd {
	return func() tea.Msg {
		beans, err := client.ListBeans(ctx)
		return tui.BeansLoadedMsg{Beans: beans, Err: err}
	}
}

// SaveBeanCmd creates or updates a bean depending on whether it has an
// id yet.
func SaveBeanCmd(ctx context.Context, client *api.Client, bean model.Bean) tea.Cmd {
	return func() tea.Msg {
		if bean.ID == 0 {
			created, err := client.CreateBean(ctx, bean)
			return tui.BeanSavedMsg{Bean: created, Created: true, Err: err}
		}
		updated, err := client.UpdateBean(ctx, bean.ID, bean)
		return tui.BeanSavedMsg{Bean: updated, Err: err}
	}
}

// DeleteBeanCmd deletes a bean by id.
func DeleteBeanCmd(ctx context.Context, client *api.Client, id int64) tea.Cmd {
	return func() tea.Msg {
		err := client.DeleteBean(ctx, id)
		return tui.BeanDeletedMsg{ID: id, Err: err}
	}
}

// LoadBeanSessionsCmd fetches the calibration sessions recorded for one
// bean, most recent first.
func LoadBeanSessionsCmd(ctx context.Context, client *api.Client, beanID int64) tea.Cmd {
	return func() tea.Msg {
		sessions, err := client.SessionsForBean(ctx, beanID)
		if err != nil {
			return tui.BeanSessionsLoadedMsg{BeanID: beanID, Err: err}
		}
		sessions = lists.FilterSessions(sessions, lists.SessionFilter{})
		return tui.BeanSessionsLoadedMsg{BeanID: beanID, Sessions: sessions}
	}
}

// LoadGrindersCmd fetches the grinder list.
func LoadGrindersCmd(ctx context.Context, client *api.Client) tea.Cmd {
	return func() tea.Msg {
		grinders, err := client.ListGrinders(ctx)
		return tui.GrindersLoadedMsg{Grinders: grinders, Err: err}
	}
}

// SaveGrinderCmd creates or updates a grinder.
func SaveGrinderCmd(ctx context.Context, client *api.Client, grinder model.Grinder) tea.Cmd {
	return func() tea.Msg {
		if grinder.ID == 0 {
			created, err := client.CreateGrinder(ctx, grinder)
			return tui.GrinderSavedMsg{Grinder: created, Created: true, Err: err}
		}
		updated, err := client.UpdateGrinder(ctx, grinder.ID, grinder)
		return tui.GrinderSavedMsg{Grinder: updated, Err: err}
	}
}

// DeleteGrinderCmd deletes a grinder by id.
func DeleteGrinderCmd(ctx context.Context, client *api.Client, id int64) tea.Cmd {
	return func() tea.Msg {
		err := client.DeleteGrinder(ctx, id)
		return tui.GrinderDeletedMsg{ID: id, Err: err}
	}
}

// LoadSessionsCmd fetches sessions together with the bean and grinder
// lists, then enriches each session with its bean and grinder for
// display. Bean or grinder fetch failures degrade to unenriched rows
// rather than failing the load.
func LoadSessionsCmd(ctx context.Context, client *api.Client) tea.Cmd {
	return func() tea.Msg {
		sessions, err := client.ListSessions(ctx)
		if err != nil {
			return tui.SessionsLoadedMsg{Err: err}
		}
		beans, _ := client.ListBeans(ctx)
		grinders, _ := client.ListGrinders(ctx)
		sessions = lists.EnrichSessions(ctx, sessions, beans, grinders, client)
		return tui.SessionsLoadedMsg{Sessions: sessions, Beans: beans, Grinders: grinders}
	}
}

// SaveSessionCmd creates or updates a calibration session.
func SaveSessionCmd(ctx context.Context, client *api.Client, session model.CalibrationSession) tea.Cmd {
	return func() tea.Msg {
		if session.ID == 0 {
			created, err := client.CreateSession(ctx, session)
			return tui.SessionSavedMsg{Session: created, Created: true, Err: err}
		}
		updated, err := client.UpdateSession(ctx, session.ID, session)
		return tui.SessionSavedMsg{Session: updated, Err: err}
	}
}

// DeleteSessionCmd deletes a calibration session by id.
func DeleteSessionCmd(ctx context.Context, client *api.Client, id int64) tea.Cmd {
	return func() tea.Msg {
		err := client.DeleteSession(ctx, id)
		return tui.SessionDeletedMsg{ID: id, Err: err}
	}
}

// LoadShotsCmd fetches the shots recorded under one session, ordered by
// shot number.
func LoadShotsCmd(ctx context.Context, client *api.Client, sessionID int64) tea.Cmd {
	return func() tea.Msg {
		shots, err := client.ListShots(ctx, sessionID)
		return tui.ShotsLoadedMsg{SessionID: sessionID, Shots: lists.SortShots(shots), Err: err}
	}
}

// SaveShotCmd creates or updates a shot under its session.
func SaveShotCmd(ctx context.Context, client *api.Client, shot model.Shot) tea.Cmd {
	return func() tea.Msg {
		if shot.ID == 0 {
			created, err := client.CreateShot(ctx, shot.CalibrationSessionID, shot)
			return tui.ShotSavedMsg{Shot: created, Created: true, Err: err}
		}
		updated, err := client.UpdateShot(ctx, shot.CalibrationSessionID, shot.ID, shot)
		return tui.ShotSavedMsg{Shot: updated, Err: err}
	}
}

// DeleteShotCmd deletes a shot under its session.
func DeleteShotCmd(ctx context.Context, client *api.Client, sessionID, id int64) tea.Cmd {
	return func() tea.Msg {
		err := client.DeleteShot(ctx, sessionID, id)
		return tui.ShotDeletedMsg{SessionID: sessionID, ID: id, Err: err}
	}
}
