// Package tui implements the terminal user interface using Bubble Tea.
package tui

import (
	"github.com/crema-dev/crema/internal/auth"
	"github.com/crema-dev/crema/internal/dashboard"
	"github.com/crema-dev/crema/internal/model"
)

// ============================================================================
// Auth Messages
// ============================================================================

// AuthCheckedMsg reports the outcome of restoring a persisted session
// at startup.
type AuthCheckedMsg struct {
	Snapshot auth.Snapshot
}

// LoginResultMsg reports the outcome of a login attempt.
type LoginResultMsg struct {
	Result   auth.Result
	Snapshot auth.Snapshot
}

// RegisterResultMsg reports the outcome of a registration attempt.
type RegisterResultMsg struct {
	Result   auth.Result
	Snapshot auth.Snapshot
}

// LogoutDoneMsg signals that logout teardown finished; the session is
// gone regardless of whether the server call succeeded.
type LogoutDoneMsg struct{}

// SessionExpiredMsg signals that the server rejected the stored
// credentials. The app returns to the login view exactly once per
// expiry.
type SessionExpiredMsg struct{}

// ============================================================================
// Bean Messages
// ============================================================================

// BeansLoadedMsg delivers the bean list.
type BeansLoadedMsg struct {
	Beans []model.Bean
	Err   error
}

// BeanSavedMsg delivers a created or updated bean.
type BeanSavedMsg struct {
	Bean    *model.Bean
	Created bool
	Err     error
}

// BeanDeletedMsg confirms a bean deletion.
type BeanDeletedMsg struct {
	ID  int64
	Err error
}

// BeanSessionsLoadedMsg delivers the sessions recorded for one bean,
// for the bean list's drill-down.
type BeanSessionsLoadedMsg struct {
	BeanID   int64
	Sessions []model.CalibrationSession
	Err      error
}

// ============================================================================
// Grinder Messages
// ============================================================================

// GrindersLoadedMsg delivers the grinder list.
type GrindersLoadedMsg struct {
	Grinders []model.Grinder
	Err      error
}

// GrinderSavedMsg delivers a created or updated grinder.
type GrinderSavedMsg struct {
	Grinder *model.Grinder
	Created bool
	Err     error
}

// GrinderDeletedMsg confirms a grinder deletion.
type GrinderDeletedMsg struct {
	ID  int64
	Err error
}

// ============================================================================
// Session Messages
// ============================================================================

// SessionsLoadedMsg delivers the calibration-session list, enriched
// with bean and grinder context, together with the lists used to
// populate the session form's pickers.
type SessionsLoadedMsg struct {
	Sessions []model.CalibrationSession
	Beans    []model.Bean
	Grinders []model.Grinder
	Err      error
}

// SessionSavedMsg delivers a created or updated calibration session.
type SessionSavedMsg struct {
	Session *model.CalibrationSession
	Created bool
	Err     error
}

// SessionDeletedMsg confirms a session deletion.
type SessionDeletedMsg struct {
	ID  int64
	Err error
}

// ============================================================================
// Shot Messages
// ============================================================================

// ShotsLoadedMsg delivers the shots recorded under one session.
type ShotsLoadedMsg struct {
	SessionID int64
	Shots     []model.Shot
	Err       error
}

// ShotSavedMsg delivers a created or updated shot.
type ShotSavedMsg struct {
	Shot    *model.Shot
	Created bool
	Err     error
}

// ShotDeletedMsg confirms a shot deletion.
type ShotDeletedMsg struct {
	SessionID int64
	ID        int64
	Err       error
}

// ============================================================================
// Dashboard Messages
// ============================================================================

// DashboardLoadedMsg delivers the aggregated dashboard data.
type DashboardLoadedMsg struct {
	Data *dashboard.Data
	Err  error
}

// ============================================================================
// Utility Messages
// ============================================================================

// ErrorMsg is a generic error message for unrecoverable errors.
type ErrorMsg struct {
	Err error
}
