package views

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/crema-dev/crema/internal/api"
	"github.com/crema-dev/crema/internal/config"
	"github.com/crema-dev/crema/internal/dashboard"
	"github.com/crema-dev/crema/internal/lists"
	"github.com/crema-dev/crema/internal/model"
	"github.com/crema-dev/crema/internal/tui"
)

// ReloadSessionsMsg asks the app to refetch sessions with their bean
// and grinder context.
type ReloadSessionsMsg struct{}

// SaveSessionMsg asks the app to persist a validated session.
type SaveSessionMsg struct {
	Session model.CalibrationSession
}

// DeleteSessionMsg asks the app to delete a session after confirmation.
type DeleteSessionMsg struct {
	ID int64
}

// LoadShotsMsg asks the app to fetch one session's shots.
type LoadShotsMsg struct {
	SessionID int64
}

// SaveShotMsg asks the app to persist a validated shot.
type SaveShotMsg struct {
	Shot model.Shot
}

// DeleteShotMsg asks the app to delete a shot after confirmation.
type DeleteShotMsg struct {
	SessionID int64
	ID        int64
}

type sessionsMode int

const (
	sessionsList sessionsMode = iota
	sessionsSearch
	sessionsFilter
	sessionsForm
	sessionsConfirm
	shotsList
	shotsForm
	shotsConfirm
)

// SessionsModel is the view model for calibration sessions and the
// shots recorded under them.
type SessionsModel struct {
	sessions []model.CalibrationSession
	beans    []model.Bean
	grinders []model.Grinder
	cursor   int

	filter     lists.SessionFilter
	search     textinput.Model
	filterForm tui.Form

	form      tui.Form
	editingID int64
	deleting  *model.CalibrationSession

	// Shot drill-down state.
	active       *model.CalibrationSession
	shots        []model.Shot
	shotCursor   int
	shotForm     tui.Form
	shotEditing  int64
	shotNumber   int // fixed once the shot exists; only new shots pick one
	shotDeleting *model.Shot
	shotsLoading bool

	mode    sessionsMode
	optimal config.OptimalConfig
	loading bool
	errMsg  string
	width   int
	height  int
}

// NewSessionsModel creates the sessions view in its loading state. The
// optimal window is used to mark shots that landed inside it.
func NewSessionsModel(width, height int, optimal config.OptimalConfig) SessionsModel {
	search := textinput.New()
	search.Placeholder = "search sessions..."
	search.CharLimit = 150
	search.Width = 40

	return SessionsModel{
		search:  search,
		optimal: optimal,
		loading: true,
		width:   width,
		height:  height,
	}
}

// Capturing reports whether the view wants all key input.
func (m SessionsModel) Capturing() bool {
	return m.mode != sessionsList
}

func (m SessionsModel) visible() []model.CalibrationSession {
	return lists.FilterSessions(m.sessions, m.filter)
}

// Update handles messages for the sessions view.
func (m SessionsModel) Update(msg tea.Msg) (SessionsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tui.SessionsLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.errMsg = api.ErrorMessage(msg.Err, "Failed to load sessions")
			return m, nil
		}
		m.errMsg = ""
		m.sessions = msg.Sessions
		m.beans = msg.Beans
		m.grinders = msg.Grinders
		m.clampCursor()
		return m, nil

	case tui.SessionSavedMsg:
		return m.applySaved(msg)

	case tui.SessionDeletedMsg:
		if msg.Err != nil {
			m.errMsg = api.ErrorMessage(msg.Err, "Failed to delete session")
			return m, nil
		}
		m.sessions = lists.RemoveByID(m.sessions, msg.ID, sessionID)
		m.clampCursor()
		return m, nil

	case tui.ShotsLoadedMsg:
		if m.active == nil || msg.SessionID != m.active.ID {
			return m, nil
		}
		m.shotsLoading = false
		if msg.Err != nil {
			m.errMsg = api.ErrorMessage(msg.Err, "Failed to load shots")
			return m, nil
		}
		m.errMsg = ""
		m.shots = msg.Shots
		if m.shotCursor >= len(m.shots) {
			m.shotCursor = 0
		}
		return m, nil

	case tui.ShotSavedMsg:
		return m.applyShotSaved(msg)

	case tui.ShotDeletedMsg:
		if msg.Err != nil {
			m.errMsg = api.ErrorMessage(msg.Err, "Failed to delete shot")
			return m, nil
		}
		m.shots = lists.RemoveByID(m.shots, msg.ID, shotID)
		if m.shotCursor >= len(m.shots) && m.shotCursor > 0 {
			m.shotCursor--
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m.updateInputs(msg)
}

func (m SessionsModel) handleKey(msg tea.KeyMsg) (SessionsModel, tea.Cmd) {
	switch m.mode {
	case sessionsSearch:
		switch msg.String() {
		case tui.KeyEnter, tui.KeyEsc:
			if msg.String() == tui.KeyEsc {
				m.search.SetValue("")
			}
			m.filter.Term = m.search.Value()
			m.search.Blur()
			m.mode = sessionsList
			m.cursor = 0
			return m, nil
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		m.filter.Term = m.search.Value()
		return m, cmd

	case sessionsFilter:
		switch msg.String() {
		case tui.KeyEsc:
			m.mode = sessionsList
			return m, nil
		case tui.KeyTab, tui.KeyDown:
			m.filterForm.Next()
			return m, nil
		case "shift+tab", tui.KeyUp:
			m.filterForm.Prev()
			return m, nil
		case tui.KeyEnter:
			m.filter.StartDate = m.filterForm.Value("start_date")
			m.filter.EndDate = m.filterForm.Value("end_date")
			m.mode = sessionsList
			m.cursor = 0
			return m, nil
		}
		var cmd tea.Cmd
		m.filterForm, cmd = m.filterForm.Update(msg)
		return m, cmd

	case sessionsForm:
		switch msg.String() {
		case tui.KeyEsc:
			m.mode = sessionsList
			return m, nil
		case tui.KeyTab, tui.KeyDown:
			m.form.Next()
			return m, nil
		case "shift+tab", tui.KeyUp:
			m.form.Prev()
			return m, nil
		case tui.KeyEnter:
			return m.submitForm()
		}
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd

	case sessionsConfirm:
		switch msg.String() {
		case "y", "Y":
			id := m.deleting.ID
			m.deleting = nil
			m.mode = sessionsList
			return m, func() tea.Msg { return DeleteSessionMsg{ID: id} }
		case "n", "N", tui.KeyEsc:
			m.deleting = nil
			m.mode = sessionsList
			return m, nil
		}
		return m, nil

	case shotsList:
		return m.handleShotsKey(msg)

	case shotsForm:
		switch msg.String() {
		case tui.KeyEsc:
			m.mode = shotsList
			return m, nil
		case tui.KeyTab, tui.KeyDown:
			m.shotForm.Next()
			return m, nil
		case "shift+tab", tui.KeyUp:
			m.shotForm.Prev()
			return m, nil
		case tui.KeyEnter:
			return m.submitShotForm()
		}
		var cmd tea.Cmd
		m.shotForm, cmd = m.shotForm.Update(msg)
		return m, cmd

	case shotsConfirm:
		switch msg.String() {
		case "y", "Y":
			id := m.shotDeleting.ID
			sessionID := m.active.ID
			m.shotDeleting = nil
			m.mode = shotsList
			return m, func() tea.Msg { return DeleteShotMsg{SessionID: sessionID, ID: id} }
		case "n", "N", tui.KeyEsc:
			m.shotDeleting = nil
			m.mode = shotsList
			return m, nil
		}
		return m, nil
	}

	// Session list mode.
	visible := m.visible()
	switch msg.String() {
	case tui.KeyUp, "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case tui.KeyDown, "j":
		if m.cursor < len(visible)-1 {
			m.cursor++
		}
	case tui.KeyEnter:
		if m.cursor < len(visible) {
			session := visible[m.cursor]
			m.active = &session
			m.shots = nil
			m.shotCursor = 0
			m.shotsLoading = true
			m.mode = shotsList
			return m, func() tea.Msg { return LoadShotsMsg{SessionID: session.ID} }
		}
	case "/":
		m.mode = sessionsSearch
		m.search.Focus()
		return m, textinput.Blink
	case "f":
		m.openFilterForm()
		return m, textinput.Blink
	case "n":
		m.openForm(model.DefaultSession())
		return m, textinput.Blink
	case "e":
		if m.cursor < len(visible) {
			m.openForm(model.DraftFromSession(visible[m.cursor]))
			return m, textinput.Blink
		}
	case "d":
		if m.cursor < len(visible) {
			session := visible[m.cursor]
			m.deleting = &session
			m.mode = sessionsConfirm
		}
	case "r":
		m.loading = true
		return m, func() tea.Msg { return ReloadSessionsMsg{} }
	}
	return m, nil
}

func (m SessionsModel) handleShotsKey(msg tea.KeyMsg) (SessionsModel, tea.Cmd) {
	switch msg.String() {
	case tui.KeyEsc:
		m.active = nil
		m.mode = sessionsList
		return m, nil
	case tui.KeyUp, "k":
		if m.shotCursor > 0 {
			m.shotCursor--
		}
	case tui.KeyDown, "j":
		if m.shotCursor < len(m.shots)-1 {
			m.shotCursor++
		}
	case "n":
		d := model.DefaultShot()
		d.CalibrationSessionID = m.active.ID
		next := lists.NextShotNumber(m.shots)
		d.ShotNumber = &next
		m.openShotForm(d)
		return m, textinput.Blink
	case "e":
		if m.shotCursor < len(m.shots) {
			m.openShotForm(model.DraftFromShot(m.shots[m.shotCursor]))
			return m, textinput.Blink
		}
	case "d":
		if m.shotCursor < len(m.shots) {
			shot := m.shots[m.shotCursor]
			m.shotDeleting = &shot
			m.mode = shotsConfirm
		}
	case "r":
		m.shotsLoading = true
		sessionID := m.active.ID
		return m, func() tea.Msg { return LoadShotsMsg{SessionID: sessionID} }
	}
	return m, nil
}

func (m *SessionsModel) openFilterForm() {
	m.filterForm = tui.NewForm("Filter by date",
		tui.TextField("start_date", "Start date (YYYY-MM-DD)", ""),
		tui.TextField("end_date", "End date (YYYY-MM-DD)", ""),
	)
	m.filterForm.SetValue("start_date", m.filter.StartDate)
	m.filterForm.SetValue("end_date", m.filter.EndDate)
	m.mode = sessionsFilter
}

func (m *SessionsModel) openForm(d model.SessionDraft) {
	m.editingID = d.ID

	title := "New session"
	if d.ID != 0 {
		title = "Edit session"
	}
	m.form = tui.NewForm(title,
		tui.TextField("bean_id", "Bean (name)", ""),
		tui.TextField("grinder_id", "Grinder (name)", ""),
		tui.TextField("session_date", "Session date (YYYY-MM-DD)", ""),
		tui.TextField("notes", "Notes", ""),
	)
	if bean := findBeanByID(m.beans, d.BeanID); bean != nil {
		m.form.SetValue("bean_id", bean.Name)
	}
	if grinder := findGrinderByID(m.grinders, d.GrinderID); grinder != nil {
		m.form.SetValue("grinder_id", grinder.Name)
	}
	m.form.SetValue("session_date", d.SessionDate)
	m.form.SetValue("notes", d.Notes)
	m.mode = sessionsForm
}

func (m SessionsModel) submitForm() (SessionsModel, tea.Cmd) {
	beanName := m.form.Value("bean_id")
	grinderName := m.form.Value("grinder_id")

	d := model.SessionDraft{
		ID:          m.editingID,
		SessionDate: m.form.Value("session_date"),
		Notes:       m.form.Value("notes"),
	}
	if bean := findBeanByName(m.beans, beanName); bean != nil {
		d.BeanID = bean.ID
	}
	if grinder := findGrinderByName(m.grinders, grinderName); grinder != nil {
		d.GrinderID = grinder.ID
	}

	errs := model.ValidateSession(d)
	if beanName != "" && d.BeanID == 0 {
		errs = overrideError(errs, "bean_id", "Unknown bean")
	}
	if grinderName != "" && d.GrinderID == 0 {
		errs = overrideError(errs, "grinder_id", "Unknown grinder")
	}
	m.form.SetErrors(errs)
	if len(errs) > 0 {
		return m, nil
	}

	session := d.Session()
	return m, func() tea.Msg { return SaveSessionMsg{Session: session} }
}

func (m SessionsModel) applySaved(msg tui.SessionSavedMsg) (SessionsModel, tea.Cmd) {
	if msg.Err != nil {
		// The overlay stays open either way so the user can retry.
		if fields := api.FieldErrors(msg.Err); fields != nil {
			m.form.SetServerErrors(fields)
		} else {
			m.form.SetSubmitError(api.ErrorMessage(msg.Err, "Failed to save session"))
		}
		return m, nil
	}

	saved := *msg.Session
	saved = enrichOne(saved, m.beans, m.grinders)
	if msg.Created {
		m.sessions = lists.MergeCreated(m.sessions, saved)
	} else {
		m.sessions = lists.MergeUpdated(m.sessions, saved, sessionID)
	}
	m.errMsg = ""
	m.mode = sessionsList
	return m, nil
}

func (m *SessionsModel) openShotForm(d model.ShotDraft) {
	m.shotEditing = d.ID
	m.shotNumber = 0
	if d.ShotNumber != nil {
		m.shotNumber = *d.ShotNumber
	}

	// The number identifies the shot within its session and cannot be
	// changed after creation, so the edit form leaves it out of the
	// editable fields and shows it in the title instead.
	fields := []tui.Field{
		tui.TextField("grind_setting", "Grind setting", ""),
		tui.TextField("dose", "Dose (g)", ""),
		tui.TextField("yield", "Yield (g)", ""),
		tui.TextField("time_seconds", "Time (seconds)", ""),
		tui.TextField("water_temperature", "Water temperature (°C, optional)", ""),
		tui.TextField("taste_notes", "Taste notes", ""),
		tui.TextField("action_taken", "Action taken", ""),
	}
	title := "New shot"
	if d.ID != 0 {
		title = fmt.Sprintf("Edit shot #%d", m.shotNumber)
	} else {
		fields = append([]tui.Field{tui.TextField("shot_number", "Shot number", "")}, fields...)
	}
	m.shotForm = tui.NewForm(title, fields...)
	if d.ID == 0 && d.ShotNumber != nil {
		m.shotForm.SetValue("shot_number", strconv.Itoa(*d.ShotNumber))
	}
	m.shotForm.SetValue("grind_setting", d.GrindSetting)
	if d.Dose != nil {
		m.shotForm.SetValue("dose", formatFloat(*d.Dose))
	}
	if d.Yield != nil {
		m.shotForm.SetValue("yield", formatFloat(*d.Yield))
	}
	if d.TimeSeconds != nil {
		m.shotForm.SetValue("time_seconds", strconv.Itoa(*d.TimeSeconds))
	}
	if d.WaterTemperature != nil {
		m.shotForm.SetValue("water_temperature", formatFloat(*d.WaterTemperature))
	}
	m.shotForm.SetValue("taste_notes", d.TasteNotes)
	m.shotForm.SetValue("action_taken", d.ActionTaken)
	m.mode = shotsForm
}

func (m SessionsModel) submitShotForm() (SessionsModel, tea.Cmd) {
	d := model.ShotDraft{
		ID:                   m.shotEditing,
		CalibrationSessionID: m.active.ID,
		GrindSetting:         m.shotForm.Value("grind_setting"),
		TasteNotes:           m.shotForm.Value("taste_notes"),
		ActionTaken:          m.shotForm.Value("action_taken"),
	}

	var errs []model.FieldError
	if m.shotEditing != 0 {
		number := m.shotNumber
		d.ShotNumber = &number
	} else {
		d.ShotNumber, errs = parseIntField(m.shotForm.Value("shot_number"), "shot_number", "Shot number", errs)
	}
	d.Dose, errs = parseFloatField(m.shotForm.Value("dose"), "dose", "Dose", errs)
	d.Yield, errs = parseFloatField(m.shotForm.Value("yield"), "yield", "Yield", errs)
	d.TimeSeconds, errs = parseIntField(m.shotForm.Value("time_seconds"), "time_seconds", "Time", errs)
	d.WaterTemperature, errs = parseFloatField(m.shotForm.Value("water_temperature"), "water_temperature", "Water temperature", errs)

	for _, e := range model.ValidateShot(d) {
		errs = appendUnlessSet(errs, e)
	}
	if m.shotEditing == 0 && d.ShotNumber != nil && lists.ShotNumberTaken(m.shots, *d.ShotNumber) {
		errs = append(errs, model.FieldError{Field: "shot_number", Message: "Shot number already used in this session"})
	}

	m.shotForm.SetErrors(errs)
	if len(errs) > 0 {
		return m, nil
	}

	shot := d.Shot()
	return m, func() tea.Msg { return SaveShotMsg{Shot: shot} }
}

func (m SessionsModel) applyShotSaved(msg tui.ShotSavedMsg) (SessionsModel, tea.Cmd) {
	if msg.Err != nil {
		// The overlay stays open either way so the user can retry.
		if fields := api.FieldErrors(msg.Err); fields != nil {
			m.shotForm.SetServerErrors(fields)
		} else {
			m.shotForm.SetSubmitError(api.ErrorMessage(msg.Err, "Failed to save shot"))
		}
		return m, nil
	}
	if msg.Created {
		m.shots = lists.MergeCreated(m.shots, *msg.Shot)
	} else {
		m.shots = lists.MergeUpdated(m.shots, *msg.Shot, shotID)
	}
	m.shots = lists.SortShots(m.shots)
	m.errMsg = ""
	m.mode = shotsList
	return m, nil
}

func (m *SessionsModel) clampCursor() {
	if n := len(m.visible()); m.cursor >= n && n > 0 {
		m.cursor = n - 1
	} else if n == 0 {
		m.cursor = 0
	}
}

func sessionID(s model.CalibrationSession) int64 { return s.ID }
func shotID(s model.Shot) int64                  { return s.ID }

func findBeanByID(beans []model.Bean, id int64) *model.Bean {
	for i := range beans {
		if beans[i].ID == id {
			return &beans[i]
		}
	}
	return nil
}

func findBeanByName(beans []model.Bean, name string) *model.Bean {
	for i := range beans {
		if strings.EqualFold(beans[i].Name, name) {
			return &beans[i]
		}
	}
	return nil
}

func findGrinderByID(grinders []model.Grinder, id int64) *model.Grinder {
	for i := range grinders {
		if grinders[i].ID == id {
			return &grinders[i]
		}
	}
	return nil
}

func findGrinderByName(grinders []model.Grinder, name string) *model.Grinder {
	for i := range grinders {
		if strings.EqualFold(grinders[i].Name, name) {
			return &grinders[i]
		}
	}
	return nil
}

// enrichOne resolves the saved session's bean and grinder from the
// local lists so a fresh save renders with names immediately.
func enrichOne(s model.CalibrationSession, beans []model.Bean, grinders []model.Grinder) model.CalibrationSession {
	enriched := lists.EnrichSessions(context.Background(), []model.CalibrationSession{s}, beans, grinders, nil)
	return enriched[0]
}

// overrideError replaces the message for one field, or appends when the
// field carries no error yet.
func overrideError(errs []model.FieldError, field, message string) []model.FieldError {
	for i := range errs {
		if errs[i].Field == field {
			errs[i].Message = message
			return errs
		}
	}
	return append(errs, model.FieldError{Field: field, Message: message})
}

// appendUnlessSet keeps the first error reported per field, so parse
// errors win over the validator's required-field messages.
func appendUnlessSet(errs []model.FieldError, e model.FieldError) []model.FieldError {
	for i := range errs {
		if errs[i].Field == e.Field {
			return errs
		}
	}
	return append(errs, e)
}

func parseIntField(value, field, label string, errs []model.FieldError) (*int, []model.FieldError) {
	if value == "" {
		return nil, errs
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return nil, append(errs, model.FieldError{Field: field, Message: label + " must be a number"})
	}
	return &n, errs
}

func parseFloatField(value, field, label string, errs []model.FieldError) (*float64, []model.FieldError) {
	if value == "" {
		return nil, errs
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, append(errs, model.FieldError{Field: field, Message: label + " must be a number"})
	}
	return &f, errs
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// View renders the sessions view.
func (m SessionsModel) View() string {
	switch m.mode {
	case sessionsForm:
		return tui.BoxStyle.Width(min(m.width-4, 64)).Render(m.form.View())
	case sessionsFilter:
		return tui.BoxStyle.Width(min(m.width-4, 64)).Render(m.filterForm.View())
	case sessionsConfirm:
		if m.deleting != nil {
			prompt := fmt.Sprintf("Delete session from %s? (y/n)", m.deleting.SessionDate)
			return tui.BoxStyle.Render(tui.WarningStyle.Render(prompt))
		}
	case shotsForm:
		return tui.BoxStyle.Width(min(m.width-4, 64)).Render(m.shotForm.View())
	case shotsConfirm:
		if m.shotDeleting != nil {
			prompt := fmt.Sprintf("Delete shot #%d? (y/n)", m.shotDeleting.ShotNumber)
			return tui.BoxStyle.Render(tui.WarningStyle.Render(prompt))
		}
	case shotsList:
		return m.viewShots()
	}
	return m.viewList()
}

func (m SessionsModel) viewList() string {
	var b strings.Builder
	b.WriteString(tui.TitleStyle.Render("Calibration sessions"))
	b.WriteString("\n\n")

	if m.mode == sessionsSearch {
		b.WriteString(m.search.View())
		b.WriteString("\n\n")
	} else if m.filter.Term != "" || m.filter.StartDate != "" || m.filter.EndDate != "" {
		b.WriteString(tui.DimStyle.Render(describeFilter(m.filter)))
		b.WriteString("\n\n")
	}

	visible := m.visible()
	switch {
	case m.loading:
		b.WriteString(tui.DimStyle.Render("Loading sessions..."))
	case len(visible) == 0:
		b.WriteString(tui.DimStyle.Render("No sessions match. Press 'n' to add one."))
	default:
		for i, s := range visible {
			beanName, grinderName := "?", "?"
			if s.Bean != nil {
				beanName = s.Bean.Name
			}
			if s.Grinder != nil {
				grinderName = s.Grinder.Name
			}
			line := fmt.Sprintf("%-12s %-22s %-20s", s.SessionDate, beanName, grinderName)
			if i == m.cursor {
				b.WriteString(tui.SelectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(tui.ErrorStyle.Render(m.errMsg))
	}

	b.WriteString("\n\n")
	b.WriteString(tui.DimStyle.Render("enter: shots   n: new   e: edit   d: delete   /: search   f: dates   r: refresh"))
	return b.String()
}

func (m SessionsModel) viewShots() string {
	var b strings.Builder

	title := "Shots"
	if m.active != nil {
		if m.active.Bean != nil {
			title = fmt.Sprintf("Shots — %s, %s", m.active.Bean.Name, m.active.SessionDate)
		} else {
			title = fmt.Sprintf("Shots — %s", m.active.SessionDate)
		}
	}
	b.WriteString(tui.TitleStyle.Render(title))
	b.WriteString("\n\n")

	switch {
	case m.shotsLoading:
		b.WriteString(tui.DimStyle.Render("Loading shots..."))
	case len(m.shots) == 0:
		b.WriteString(tui.DimStyle.Render("No shots yet. Press 'n' to record one."))
	default:
		for i, s := range m.shots {
			mark := tui.MarkOff
			if dashboard.InOptimalWindow(s, m.optimal) {
				mark = tui.MarkOK
			}
			line := fmt.Sprintf("#%-3d grind %-8s %5.1fg in / %5.1fg out / %3ds",
				s.ShotNumber, s.GrindSetting, s.Dose, s.Yield, s.TimeSeconds)
			if i == m.shotCursor {
				b.WriteString(tui.SelectedStyle.Render("> "+line) + " " + mark)
			} else {
				b.WriteString("  " + line + " " + mark)
			}
			b.WriteString("\n")
		}
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(tui.ErrorStyle.Render(m.errMsg))
	}

	b.WriteString("\n\n")
	b.WriteString(tui.DimStyle.Render("n: new   e: edit   d: delete   r: refresh   esc: back"))
	return b.String()
}

func describeFilter(f lists.SessionFilter) string {
	var parts []string
	if f.Term != "" {
		parts = append(parts, "filter: "+f.Term)
	}
	if f.StartDate != "" {
		parts = append(parts, "from "+f.StartDate)
	}
	if f.EndDate != "" {
		parts = append(parts, "to "+f.EndDate)
	}
	return strings.Join(parts, "   ")
}

func (m SessionsModel) updateInputs(msg tea.Msg) (SessionsModel, tea.Cmd) {
	var cmd tea.Cmd
	switch m.mode {
	case sessionsSearch:
		m.search, cmd = m.search.Update(msg)
	case sessionsFilter:
		m.filterForm, cmd = m.filterForm.Update(msg)
	case sessionsForm:
		m.form, cmd = m.form.Update(msg)
	case shotsForm:
		m.shotForm, cmd = m.shotForm.Update(msg)
	}
	return m, cmd
}
