package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/crema-dev/crema/internal/api"
	"github.com/crema-dev/crema/internal/lists"
	"github.com/crema-dev/crema/internal/model"
	"github.com/crema-dev/crema/internal/tui"
)

// ReloadBeansMsg asks the app to refetch the bean list.
type ReloadBeansMsg struct{}

// SaveBeanMsg asks the app to persist a validated bean.
type SaveBeanMsg struct {
	Bean model.Bean
}

// DeleteBeanMsg asks the app to delete a bean after confirmation.
type DeleteBeanMsg struct {
	ID int64
}

// LoadBeanSessionsMsg asks the app to fetch one bean's sessions.
type LoadBeanSessionsMsg struct {
	BeanID int64
}

type beansMode int

const (
	beansList beansMode = iota
	beansSearch
	beansForm
	beansConfirm
	beansSessions
)

// BeansModel is the view model for the bean list and its edit overlay.
type BeansModel struct {
	beans  []model.Bean
	cursor int
	tab    lists.BeanTab
	term   string
	search textinput.Model

	mode      beansMode
	form      tui.Form
	isBlend   bool
	editingID int64
	deleting  *model.Bean

	// Session drill-down state.
	activeBean      *model.Bean
	beanSessions    []model.CalibrationSession
	sessionsLoading bool

	loading bool
	errMsg  string
	width   int
	height  int
}

// NewBeansModel creates the bean view in its loading state.
func NewBeansModel(width, height int) BeansModel {
	search := textinput.New()
	search.Placeholder = "search beans..."
	search.CharLimit = 150
	search.Width = 40

	return BeansModel{
		tab:     lists.BeanTabAll,
		search:  search,
		loading: true,
		width:   width,
		height:  height,
	}
}

// Capturing reports whether the view wants all key input, which blocks
// the app-level tab switching while a form or search is open.
func (m BeansModel) Capturing() bool {
	return m.mode != beansList
}

// visible applies the search term and tab filter.
func (m BeansModel) visible() []model.Bean {
	return lists.FilterBeans(m.beans, m.term, m.tab)
}

// Update handles messages for the bean view.
func (m BeansModel) Update(msg tea.Msg) (BeansModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tui.BeansLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.errMsg = api.ErrorMessage(msg.Err, "Failed to load beans")
			return m, nil
		}
		m.errMsg = ""
		m.beans = msg.Beans
		m.clampCursor()
		return m, nil

	case tui.BeanSavedMsg:
		return m.applySaved(msg)

	case tui.BeanSessionsLoadedMsg:
		if m.activeBean == nil || msg.BeanID != m.activeBean.ID {
			return m, nil
		}
		m.sessionsLoading = false
		if msg.Err != nil {
			m.errMsg = api.ErrorMessage(msg.Err, "Failed to load sessions")
			return m, nil
		}
		m.errMsg = ""
		m.beanSessions = msg.Sessions
		return m, nil

	case tui.BeanDeletedMsg:
		if msg.Err != nil {
			m.errMsg = api.ErrorMessage(msg.Err, "Failed to delete bean")
			return m, nil
		}
		m.beans = lists.RemoveByID(m.beans, msg.ID, beanID)
		m.clampCursor()
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

func (m BeansModel) handleKey(msg tea.KeyMsg) (BeansModel, tea.Cmd) {
	switch m.mode {
	case beansSearch:
		switch msg.String() {
		case tui.KeyEnter, tui.KeyEsc:
			if msg.String() == tui.KeyEsc {
				m.search.SetValue("")
			}
			m.term = m.search.Value()
			m.search.Blur()
			m.mode = beansList
			m.cursor = 0
			return m, nil
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		m.term = m.search.Value()
		return m, cmd

	case beansForm:
		switch msg.String() {
		case tui.KeyEsc:
			m.mode = beansList
			return m, nil
		case tui.KeyTab, tui.KeyDown:
			m.form.Next()
			return m, nil
		case "shift+tab", tui.KeyUp:
			m.form.Prev()
			return m, nil
		case "ctrl+b":
			m.isBlend = !m.isBlend
			m.form.Fields[1].Label = originLabel(m.isBlend)
			return m, nil
		case tui.KeyEnter:
			return m.submitForm()
		}
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd

	case beansConfirm:
		switch msg.String() {
		case "y", "Y":
			id := m.deleting.ID
			m.deleting = nil
			m.mode = beansList
			return m, func() tea.Msg { return DeleteBeanMsg{ID: id} }
		case "n", "N", tui.KeyEsc:
			// Declined: the list is left untouched.
			m.deleting = nil
			m.mode = beansList
			return m, nil
		}
		return m, nil

	case beansSessions:
		switch msg.String() {
		case tui.KeyEsc:
			m.activeBean = nil
			m.beanSessions = nil
			m.mode = beansList
			return m, nil
		case "r":
			m.sessionsLoading = true
			beanID := m.activeBean.ID
			return m, func() tea.Msg { return LoadBeanSessionsMsg{BeanID: beanID} }
		}
		return m, nil
	}

	// List mode.
	visible := m.visible()
	switch {
	case msg.String() == tui.KeyUp || msg.String() == "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case msg.String() == tui.KeyDown || msg.String() == "j":
		if m.cursor < len(visible)-1 {
			m.cursor++
		}
	case msg.String() == tui.KeyEnter:
		if m.cursor < len(visible) {
			bean := visible[m.cursor]
			m.activeBean = &bean
			m.beanSessions = nil
			m.sessionsLoading = true
			m.mode = beansSessions
			return m, func() tea.Msg { return LoadBeanSessionsMsg{BeanID: bean.ID} }
		}
	case msg.String() == "/":
		m.mode = beansSearch
		m.search.Focus()
		return m, textinput.Blink
	case msg.String() == "f":
		m.tab = nextBeanTab(m.tab)
		m.cursor = 0
	case msg.String() == "n":
		m.openForm(model.DefaultBean())
		return m, textinput.Blink
	case msg.String() == "e":
		if m.cursor < len(visible) {
			m.openForm(model.DraftFromBean(visible[m.cursor]))
			return m, textinput.Blink
		}
	case msg.String() == "d":
		if m.cursor < len(visible) {
			bean := visible[m.cursor]
			m.deleting = &bean
			m.mode = beansConfirm
		}
	case msg.String() == "r":
		m.loading = true
		return m, func() tea.Msg { return ReloadBeansMsg{} }
	}
	return m, nil
}

func (m *BeansModel) openForm(d model.BeanDraft) {
	m.editingID = d.ID
	m.isBlend = d.IsBlend

	title := "New bean"
	if d.ID != 0 {
		title = "Edit bean"
	}
	m.form = tui.NewForm(title,
		tui.TextField("name", "Name", ""),
		tui.TextField("origin", originLabel(d.IsBlend), ""),
		tui.TextField("roastery", "Roastery", ""),
		tui.TextField("roast_level", "Roast level (light/medium/dark)", ""),
		tui.TextField("roast_date", "Roast date (YYYY-MM-DD)", ""),
		tui.TextField("notes", "Notes", ""),
	)
	m.form.SetValue("name", d.Name)
	if d.IsBlend {
		m.form.SetValue("origin", model.JoinOrigins(d.BlendOrigins))
	} else {
		m.form.SetValue("origin", d.Origin)
	}
	m.form.SetValue("roastery", d.Roastery)
	m.form.SetValue("roast_level", d.RoastLevel)
	m.form.SetValue("roast_date", d.RoastDate)
	m.form.SetValue("notes", d.Notes)
	m.mode = beansForm
}

func originLabel(isBlend bool) string {
	if isBlend {
		return "Origins (comma separated, ctrl+b: single origin)"
	}
	return "Origin (ctrl+b: mark as blend)"
}

func (m BeansModel) submitForm() (BeansModel, tea.Cmd) {
	d := model.BeanDraft{
		ID:         m.editingID,
		Name:       m.form.Value("name"),
		Roastery:   m.form.Value("roastery"),
		RoastLevel: strings.ToLower(m.form.Value("roast_level")),
		RoastDate:  m.form.Value("roast_date"),
		Notes:      m.form.Value("notes"),
		IsBlend:    m.isBlend,
	}
	if m.isBlend {
		d.BlendOrigins = model.SplitOrigins(m.form.Value("origin"))
	} else {
		d.Origin = m.form.Value("origin")
	}

	errs := model.ValidateBean(d)
	m.form.SetErrors(errs)
	if len(errs) > 0 {
		return m, nil
	}

	bean := d.Bean()
	return m, func() tea.Msg { return SaveBeanMsg{Bean: bean} }
}

func (m BeansModel) applySaved(msg tui.BeanSavedMsg) (BeansModel, tea.Cmd) {
	if msg.Err != nil {
		// The overlay stays open either way so the user can retry.
		if fields := api.FieldErrors(msg.Err); fields != nil {
			m.form.SetServerErrors(fields)
		} else {
			m.form.SetSubmitError(api.ErrorMessage(msg.Err, "Failed to save bean"))
		}
		return m, nil
	}
	if msg.Created {
		m.beans = lists.MergeCreated(m.beans, *msg.Bean)
	} else {
		m.beans = lists.MergeUpdated(m.beans, *msg.Bean, beanID)
	}
	m.errMsg = ""
	m.mode = beansList
	return m, nil
}

func (m *BeansModel) clampCursor() {
	if n := len(m.visible()); m.cursor >= n && n > 0 {
		m.cursor = n - 1
	} else if n == 0 {
		m.cursor = 0
	}
}

func beanID(b model.Bean) int64 { return b.ID }

func nextBeanTab(tab lists.BeanTab) lists.BeanTab {
	for i, t := range lists.BeanTabs {
		if t == tab {
			return lists.BeanTabs[(i+1)%len(lists.BeanTabs)]
		}
	}
	return lists.BeanTabAll
}

// View renders the bean view.
func (m BeansModel) View() string {
	if m.mode == beansForm {
		return tui.BoxStyle.Width(min(m.width-4, 64)).Render(m.form.View())
	}
	if m.mode == beansConfirm && m.deleting != nil {
		prompt := fmt.Sprintf("Delete bean %q? (y/n)", m.deleting.Name)
		return tui.BoxStyle.Render(tui.WarningStyle.Render(prompt))
	}
	if m.mode == beansSessions {
		return m.viewSessions()
	}

	var b strings.Builder
	b.WriteString(tui.TitleStyle.Render("Beans"))
	b.WriteString("  ")
	b.WriteString(renderBeanTabs(m.tab))
	b.WriteString("\n\n")

	if m.mode == beansSearch {
		b.WriteString(m.search.View())
		b.WriteString("\n\n")
	} else if m.term != "" {
		b.WriteString(tui.DimStyle.Render("filter: " + m.term))
		b.WriteString("\n\n")
	}

	switch {
	case m.loading:
		b.WriteString(tui.DimStyle.Render("Loading beans..."))
	case len(m.visible()) == 0:
		b.WriteString(tui.DimStyle.Render("No beans yet. Press 'n' to add one."))
	default:
		for i, bean := range m.visible() {
			line := fmt.Sprintf("%-24s %-20s %-8s", bean.Name, bean.Origin, bean.RoastLevel)
			if bean.IsBlend {
				line += " " + tui.MarkBlend
			}
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
	b.WriteString(tui.DimStyle.Render("enter: sessions   n: new   e: edit   d: delete   /: search   f: filter   r: refresh"))
	return b.String()
}

// viewSessions renders the read-only list of sessions this bean was
// dialed in over.
func (m BeansModel) viewSessions() string {
	var b strings.Builder

	title := "Sessions"
	if m.activeBean != nil {
		title = fmt.Sprintf("Sessions — %s", m.activeBean.Name)
	}
	b.WriteString(tui.TitleStyle.Render(title))
	b.WriteString("\n\n")

	switch {
	case m.sessionsLoading:
		b.WriteString(tui.DimStyle.Render("Loading sessions..."))
	case len(m.beanSessions) == 0:
		b.WriteString(tui.DimStyle.Render("No sessions recorded for this bean yet."))
	default:
		for _, s := range m.beanSessions {
			grinderName := "?"
			if s.Grinder != nil {
				grinderName = s.Grinder.Name
			}
			line := fmt.Sprintf("%-12s %-20s %s", s.SessionDate, grinderName, s.Notes)
			b.WriteString("  " + strings.TrimRight(line, " "))
			b.WriteString("\n")
		}
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(tui.ErrorStyle.Render(m.errMsg))
	}

	b.WriteString("\n\n")
	b.WriteString(tui.DimStyle.Render("r: refresh   esc: back"))
	return b.String()
}

func renderBeanTabs(active lists.BeanTab) string {
	parts := make([]string, 0, len(lists.BeanTabs))
	for _, t := range lists.BeanTabs {
		if t == active {
			parts = append(parts, tui.ActiveTabStyle.Render(string(t)))
		} else {
			parts = append(parts, tui.InactiveTabStyle.Render(string(t)))
		}
	}
	return strings.Join(parts, " ")
}

func (m BeansModel) updateInputs(msg tea.Msg) (BeansModel, tea.Cmd) {
	var cmd tea.Cmd
	switch m.mode {
	case beansSearch:
		m.search, cmd = m.search.Update(msg)
	case beansForm:
		m.form, cmd = m.form.Update(msg)
	}
	return m, cmd
}
