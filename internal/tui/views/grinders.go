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

// ReloadGrindersMsg asks the app to refetch the grinder list.
type ReloadGrindersMsg struct{}

// SaveGrinderMsg asks the app to persist a validated grinder.
type SaveGrinderMsg struct {
	Grinder model.Grinder
}

// DeleteGrinderMsg asks the app to delete a grinder after confirmation.
type DeleteGrinderMsg struct {
	ID int64
}

type grindersMode int

const (
	grindersList grindersMode = iota
	grindersSearch
	grindersForm
	grindersConfirm
)

// GrindersModel is the view model for the grinder list and its edit
// overlay.
type GrindersModel struct {
	grinders []model.Grinder
	cursor   int
	term     string
	search   textinput.Model

	mode      grindersMode
	form      tui.Form
	editingID int64
	deleting  *model.Grinder

	loading bool
	errMsg  string
	width   int
	height  int
}

// NewGrindersModel creates the grinder view in its loading state.
func NewGrindersModel(width, height int) GrindersModel {
	search := textinput.New()
	search.Placeholder = "search grinders..."
	search.CharLimit = 150
	search.Width = 40

	return GrindersModel{
		search:  search,
		loading: true,
		width:   width,
		height:  height,
	}
}

// Capturing reports whether the view wants all key input.
func (m GrindersModel) Capturing() bool {
	return m.mode != grindersList
}

func (m GrindersModel) visible() []model.Grinder {
	return lists.FilterGrinders(m.grinders, m.term)
}

// Update handles messages for the grinder view.
func (m GrindersModel) Update(msg tea.Msg) (GrindersModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tui.GrindersLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.errMsg = api.ErrorMessage(msg.Err, "Failed to load grinders")
			return m, nil
		}
		m.errMsg = ""
		m.grinders = msg.Grinders
		m.clampCursor()
		return m, nil

	case tui.GrinderSavedMsg:
		return m.applySaved(msg)

	case tui.GrinderDeletedMsg:
		if msg.Err != nil {
			m.errMsg = api.ErrorMessage(msg.Err, "Failed to delete grinder")
			return m, nil
		}
		m.grinders = lists.RemoveByID(m.grinders, msg.ID, grinderID)
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

func (m GrindersModel) handleKey(msg tea.KeyMsg) (GrindersModel, tea.Cmd) {
	switch m.mode {
	case grindersSearch:
		switch msg.String() {
		case tui.KeyEnter, tui.KeyEsc:
			if msg.String() == tui.KeyEsc {
				m.search.SetValue("")
			}
			m.term = m.search.Value()
			m.search.Blur()
			m.mode = grindersList
			m.cursor = 0
			return m, nil
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		m.term = m.search.Value()
		return m, cmd

	case grindersForm:
		switch msg.String() {
		case tui.KeyEsc:
			m.mode = grindersList
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

	case grindersConfirm:
		switch msg.String() {
		case "y", "Y":
			id := m.deleting.ID
			m.deleting = nil
			m.mode = grindersList
			return m, func() tea.Msg { return DeleteGrinderMsg{ID: id} }
		case "n", "N", tui.KeyEsc:
			m.deleting = nil
			m.mode = grindersList
			return m, nil
		}
		return m, nil
	}

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
	case "/":
		m.mode = grindersSearch
		m.search.Focus()
		return m, textinput.Blink
	case "n":
		m.openForm(model.GrinderDraft{})
		return m, textinput.Blink
	case "e":
		if m.cursor < len(visible) {
			m.openForm(model.DraftFromGrinder(visible[m.cursor]))
			return m, textinput.Blink
		}
	case "d":
		if m.cursor < len(visible) {
			grinder := visible[m.cursor]
			m.deleting = &grinder
			m.mode = grindersConfirm
		}
	case "r":
		m.loading = true
		return m, func() tea.Msg { return ReloadGrindersMsg{} }
	}
	return m, nil
}

func (m *GrindersModel) openForm(d model.GrinderDraft) {
	m.editingID = d.ID

	title := "New grinder"
	if d.ID != 0 {
		title = "Edit grinder"
	}
	m.form = tui.NewForm(title,
		tui.TextField("name", "Name", ""),
		tui.TextField("model", "Model", ""),
		tui.TextField("notes", "Notes", ""),
	)
	m.form.SetValue("name", d.Name)
	m.form.SetValue("model", d.Model)
	m.form.SetValue("notes", d.Notes)
	m.mode = grindersForm
}

func (m GrindersModel) submitForm() (GrindersModel, tea.Cmd) {
	d := model.GrinderDraft{
		ID:    m.editingID,
		Name:  m.form.Value("name"),
		Model: m.form.Value("model"),
		Notes: m.form.Value("notes"),
	}

	errs := model.ValidateGrinder(d)
	m.form.SetErrors(errs)
	if len(errs) > 0 {
		return m, nil
	}

	grinder := d.Grinder()
	return m, func() tea.Msg { return SaveGrinderMsg{Grinder: grinder} }
}

func (m GrindersModel) applySaved(msg tui.GrinderSavedMsg) (GrindersModel, tea.Cmd) {
	if msg.Err != nil {
		// The overlay stays open either way so the user can retry.
		if fields := api.FieldErrors(msg.Err); fields != nil {
			m.form.SetServerErrors(fields)
		} else {
			m.form.SetSubmitError(api.ErrorMessage(msg.Err, "Failed to save grinder"))
		}
		return m, nil
	}
	if msg.Created {
		m.grinders = lists.MergeCreated(m.grinders, *msg.Grinder)
	} else {
		m.grinders = lists.MergeUpdated(m.grinders, *msg.Grinder, grinderID)
	}
	m.errMsg = ""
	m.mode = grindersList
	return m, nil
}

func (m *GrindersModel) clampCursor() {
	if n := len(m.visible()); m.cursor >= n && n > 0 {
		m.cursor = n - 1
	} else if n == 0 {
		m.cursor = 0
	}
}

func grinderID(g model.Grinder) int64 { return g.ID }

// View renders the grinder view.
func (m GrindersModel) View() string {
	if m.mode == grindersForm {
		return tui.BoxStyle.Width(min(m.width-4, 64)).Render(m.form.View())
	}
	if m.mode == grindersConfirm && m.deleting != nil {
		prompt := fmt.Sprintf("Delete grinder %q? (y/n)", m.deleting.Name)
		return tui.BoxStyle.Render(tui.WarningStyle.Render(prompt))
	}

	var b strings.Builder
	b.WriteString(tui.TitleStyle.Render("Grinders"))
	b.WriteString("\n\n")

	if m.mode == grindersSearch {
		b.WriteString(m.search.View())
		b.WriteString("\n\n")
	} else if m.term != "" {
		b.WriteString(tui.DimStyle.Render("filter: " + m.term))
		b.WriteString("\n\n")
	}

	switch {
	case m.loading:
		b.WriteString(tui.DimStyle.Render("Loading grinders..."))
	case len(m.visible()) == 0:
		b.WriteString(tui.DimStyle.Render("No grinders yet. Press 'n' to add one."))
	default:
		for i, g := range m.visible() {
			line := fmt.Sprintf("%-24s %-20s", g.Name, g.Model)
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
	b.WriteString(tui.DimStyle.Render("n: new   e: edit   d: delete   /: search   r: refresh"))
	return b.String()
}

func (m GrindersModel) updateInputs(msg tea.Msg) (GrindersModel, tea.Cmd) {
	var cmd tea.Cmd
	switch m.mode {
	case grindersSearch:
		m.search, cmd = m.search.Update(msg)
	case grindersForm:
		m.form, cmd = m.form.Update(msg)
	}
	return m, cmd
}
