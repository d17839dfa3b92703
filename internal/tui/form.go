package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/crema-dev/crema/internal/model"
)

// Field is one labelled input in a Form. Key ties the input to the
// validation error field names.
type Field struct {
	Key         string
	Label       string
	Input       textinput.Model
	Placeholder string
}

// Form is a vertical stack of labelled text inputs with focus cycling
// and per-field validation errors. Views embed it for their create and
// edit overlays.
type Form struct {
	Title  string
	Fields []Field

	focus       int
	errors      map[string]string
	submitError string
}

// NewForm builds a form from (key, label, placeholder) triples and
// focuses the first field.
func NewForm(title string, fields ...Field) Form {
	for i := range fields {
		ti := textinput.New()
		ti.Placeholder = fields[i].Placeholder
		ti.CharLimit = 200
		ti.Width = 40
		fields[i].Input = ti
	}
	if len(fields) > 0 {
		fields[0].Input.Focus()
	}
	return Form{Title: title, Fields: fields}
}

// TextField is a convenience constructor for NewForm.
func TextField(key, label, placeholder string) Field {
	return Field{Key: key, Label: label, Placeholder: placeholder}
}

// Value returns the trimmed value of the field with the given key.
func (f *Form) Value(key string) string {
	for i := range f.Fields {
		if f.Fields[i].Key == key {
			return strings.TrimSpace(f.Fields[i].Input.Value())
		}
	}
	return ""
}

// SetValue sets the value of the field with the given key.
func (f *Form) SetValue(key, value string) {
	for i := range f.Fields {
		if f.Fields[i].Key == key {
			f.Fields[i].Input.SetValue(value)
			return
		}
	}
}

// SetErrors replaces the form's validation errors. One message is kept
// per field; clearing is done by passing nil. A fresh validation pass
// supersedes any earlier submit error.
func (f *Form) SetErrors(errs []model.FieldError) {
	f.submitError = ""
	if len(errs) == 0 {
		f.errors = nil
		return
	}
	f.errors = make(map[string]string, len(errs))
	for _, e := range errs {
		if _, exists := f.errors[e.Field]; !exists {
			f.errors[e.Field] = e.Message
		}
	}
}

// SetServerErrors merges server-side field errors keyed by field name.
func (f *Form) SetServerErrors(fields map[string][]string) {
	if len(fields) == 0 {
		return
	}
	if f.errors == nil {
		f.errors = make(map[string]string, len(fields))
	}
	for field, msgs := range fields {
		if len(msgs) > 0 {
			f.errors[field] = msgs[0]
		}
	}
}

// SetSubmitError records a save failure that is not tied to one field.
// The form stays open so the user can retry.
func (f *Form) SetSubmitError(msg string) {
	f.submitError = msg
}

// SubmitError returns the current save failure, if any.
func (f *Form) SubmitError() string {
	return f.submitError
}

// HasErrors reports whether any field currently carries an error.
func (f *Form) HasErrors() bool {
	return len(f.errors) > 0
}

// Next moves focus to the following field, wrapping around.
func (f *Form) Next() {
	f.move(1)
}

// Prev moves focus to the preceding field, wrapping around.
func (f *Form) Prev() {
	f.move(-1)
}

func (f *Form) move(delta int) {
	if len(f.Fields) == 0 {
		return
	}
	f.Fields[f.focus].Input.Blur()
	f.focus = (f.focus + delta + len(f.Fields)) % len(f.Fields)
	f.Fields[f.focus].Input.Focus()
}

// Update forwards the message to the focused input.
func (f Form) Update(msg tea.Msg) (Form, tea.Cmd) {
	if len(f.Fields) == 0 {
		return f, nil
	}
	var cmd tea.Cmd
	f.Fields[f.focus].Input, cmd = f.Fields[f.focus].Input.Update(msg)
	return f, cmd
}

// View renders the form with labels, inputs and any field errors.
func (f Form) View() string {
	var b strings.Builder

	if f.Title != "" {
		b.WriteString(TitleStyle.Render(f.Title))
		b.WriteString("\n\n")
	}

	for i := range f.Fields {
		field := &f.Fields[i]
		b.WriteString(field.Label)
		b.WriteString("\n")
		b.WriteString(field.Input.View())
		b.WriteString("\n")
		if msg, ok := f.errors[field.Key]; ok {
			b.WriteString(FieldErrorStyle.Render(msg))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if f.submitError != "" {
		b.WriteString(ErrorStyle.Render(f.submitError))
		b.WriteString("\n\n")
	}

	b.WriteString(DimStyle.Render("tab/shift+tab: fields   enter: save   esc: cancel"))
	return b.String()
}
