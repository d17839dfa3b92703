// Package views provides the TUI view components for crema.
package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/crema-dev/crema/internal/model"
	"github.com/crema-dev/crema/internal/tui"
)

// SubmitLoginMsg is sent when the user submits the login form.
type SubmitLoginMsg struct {
	Email    string
	Password string
}

// SwitchToRegisterMsg is sent when the user wants the registration form.
type SwitchToRegisterMsg struct{}

// LoginModel is the view model for the sign-in screen.
type LoginModel struct {
	form    tui.Form
	loading bool
	errMsg  string
	width   int
	height  int
}

// NewLoginModel creates the sign-in view.
func NewLoginModel(width, height int) LoginModel {
	form := tui.NewForm("Sign in",
		tui.TextField("email", "Email", "you@example.com"),
		tui.TextField("password", "Password", ""),
	)
	form.Fields[1].Input.EchoMode = textinput.EchoPassword
	return LoginModel{form: form, width: width, height: height}
}

// Init returns the initial command for the login view.
func (m LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

// SetResult applies the outcome of a login attempt.
func (m *LoginModel) SetResult(success bool, errMsg string) {
	m.loading = false
	if !success {
		m.errMsg = errMsg
	}
}

// Update handles messages for the login view.
func (m LoginModel) Update(msg tea.Msg) (LoginModel, tea.Cmd) {
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
		case "ctrl+r":
			return m, func() tea.Msg { return SwitchToRegisterMsg{} }
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

func (m LoginModel) submit() (LoginModel, tea.Cmd) {
	email := m.form.Value("email")
	password := m.form.Value("password")

	var errs []model.FieldError
	if email == "" {
		errs = append(errs, model.FieldError{Field: "email", Message: "Email is required"})
	}
	if password == "" {
		errs = append(errs, model.FieldError{Field: "password", Message: "Password is required"})
	}
	m.form.SetErrors(errs)
	if len(errs) > 0 {
		return m, nil
	}

	m.loading = true
	m.errMsg = ""
	return m, func() tea.Msg {
		return SubmitLoginMsg{Email: email, Password: password}
	}
}

// View renders the login view.
func (m LoginModel) View() string {
	var b strings.Builder

	b.WriteString(m.form.View())
	b.WriteString("\n")

	if m.loading {
		b.WriteString(tui.DimStyle.Render("Signing in..."))
		b.WriteString("\n")
	}
	if m.errMsg != "" {
		b.WriteString(tui.ErrorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(tui.DimStyle.Render("ctrl+r: create an account   ctrl+c: exit"))

	return tui.BoxStyle.Width(min(m.width-4, 60)).Render(b.String())
}
