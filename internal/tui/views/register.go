package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/crema-dev/crema/internal/model"
	"github.com/crema-dev/crema/internal/tui"
)

// SubmitRegisterMsg is sent when the user submits the registration form.
type SubmitRegisterMsg struct {
	Name         string
	Email        string
	Password     string
	Confirmation string
}

// SwitchToLoginMsg is sent when the user wants the sign-in form back.
type SwitchToLoginMsg struct{}

// RegisterModel is the view model for the account-creation screen.
type RegisterModel struct {
	form    tui.Form
	loading bool
	errMsg  string
	width   int
	height  int
}

// NewRegisterModel creates the registration view.
func NewRegisterModel(width, height int) RegisterModel {
	form := tui.NewForm("Create account",
		tui.TextField("name", "Name", ""),
		tui.TextField("email", "Email", "you@example.com"),
		tui.TextField("password", "Password", "at least 8 characters"),
		tui.TextField("password_confirmation", "Confirm password", ""),
	)
	form.Fields[2].Input.EchoMode = textinput.EchoPassword
	form.Fields[3].Input.EchoMode = textinput.EchoPassword
	return RegisterModel{form: form, width: width, height: height}
}

// Init returns the initial command for the registration view.
func (m RegisterModel) Init() tea.Cmd {
	return textinput.Blink
}

// SetResult applies the outcome of a registration attempt. Server-side
// field errors land under their inputs; anything else becomes the
// banner message.
func (m *RegisterModel) SetResult(success bool, errMsg string, fields map[string][]string) {
	m.loading = false
	if success {
		return
	}
	m.errMsg = errMsg
	m.form.SetServerErrors(fields)
}

// Update handles messages for the registration view.
func (m RegisterModel) Update(msg tea.Msg) (RegisterModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}
		switch msg.String() {
		case tui.KeyTab, tui.KeyDown:
			m.form.Next()
			return m, nil
		case "shift+tab", tui.KeyUp:
			m.form.Prev()
			return m, nil
		case tui.KeyEnter:
			return m.submit()
		case tui.KeyEsc:
			return m, func() tea.Msg { return SwitchToLoginMsg{} }
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

func (m RegisterModel) submit() (RegisterModel, tea.Cmd) {
	name := m.form.Value("name")
	email := m.form.Value("email")
	password := m.form.Value("password")
	confirmation := m.form.Value("password_confirmation")

	var errs []model.FieldError
	if name == "" {
		errs = append(errs, model.FieldError{Field: "name", Message: "Name is required"})
	}
	if email == "" {
		errs = append(errs, model.FieldError{Field: "email", Message: "Email is required"})
	}
	switch {
	case password == "":
		errs = append(errs, model.FieldError{Field: "password", Message: "Password is required"})
	case len(password) < 8:
		errs = append(errs, model.FieldError{Field: "password", Message: "Password must be at least 8 characters"})
	}
	if confirmation != password {
		errs = append(errs, model.FieldError{Field: "password_confirmation", Message: "Passwords do not match"})
	}
	m.form.SetErrors(errs)
	if len(errs) > 0 {
		return m, nil
	}

	m.loading = true
	m.errMsg = ""
	return m, func() tea.Msg {
		return SubmitRegisterMsg{Name: name, Email: email, Password: password, Confirmation: confirmation}
	}
}

// View renders the registration view.
func (m RegisterModel) View() string {
	var b strings.Builder

	b.WriteString(m.form.View())
	b.WriteString("\n")

	if m.loading {
		b.WriteString(tui.DimStyle.Render("Creating account..."))
		b.WriteString("\n")
	}
	if m.errMsg != "" {
		b.WriteString(tui.ErrorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(tui.DimStyle.Render("esc: back to sign in   ctrl+c: exit"))

	return tui.BoxStyle.Width(min(m.width-4, 60)).Render(b.String())
}
