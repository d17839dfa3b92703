package views

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/crema-dev/crema/internal/api"
	"github.com/crema-dev/crema/internal/model"
	"github.com/crema-dev/crema/internal/tui"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func loadedBeansModel(t *testing.T) BeansModel {
	t.Helper()
	m := NewBeansModel(80, 24)
	m, _ = m.Update(tui.BeansLoadedMsg{Beans: []model.Bean{
		{ID: 1, Name: "Yirgacheffe", Origin: "Ethiopia", RoastLevel: "light"},
		{ID: 2, Name: "Santos", Origin: "Brazil", RoastLevel: "medium"},
	}})
	return m
}

func TestDeclinedDeleteLeavesListUnchanged(t *testing.T) {
	m := loadedBeansModel(t)

	m, _ = m.Update(keyMsg("d"))
	if m.mode != beansConfirm {
		t.Fatalf("mode after 'd': got %d, want confirm", m.mode)
	}

	m, cmd := m.Update(keyMsg("n"))
	if cmd != nil {
		t.Error("declining the confirmation should not emit a command")
	}
	if m.mode != beansList {
		t.Errorf("mode after decline: got %d, want list", m.mode)
	}
	if len(m.beans) != 2 {
		t.Errorf("bean count after decline: got %d, want 2", len(m.beans))
	}
}

func TestConfirmedDeleteEmitsDeleteMsg(t *testing.T) {
	m := loadedBeansModel(t)

	m, _ = m.Update(keyMsg("d"))
	m, cmd := m.Update(keyMsg("y"))
	if cmd == nil {
		t.Fatal("confirming should emit a command")
	}
	msg, ok := cmd().(DeleteBeanMsg)
	if !ok {
		t.Fatalf("command message: got %T, want DeleteBeanMsg", cmd())
	}
	if msg.ID != 1 {
		t.Errorf("deleted id: got %d, want 1", msg.ID)
	}
	// The row disappears only once the server confirms.
	if len(m.beans) != 2 {
		t.Errorf("bean count before server confirm: got %d, want 2", len(m.beans))
	}

	m, _ = m.Update(tui.BeanDeletedMsg{ID: 1})
	if len(m.beans) != 1 || m.beans[0].ID != 2 {
		t.Errorf("bean list after confirm: got %v", m.beans)
	}
}

func TestEmptyFormBlocksSave(t *testing.T) {
	m := loadedBeansModel(t)

	m, _ = m.Update(keyMsg("n"))
	if m.mode != beansForm {
		t.Fatalf("mode after 'n': got %d, want form", m.mode)
	}

	m, cmd := m.Update(keyMsg("enter"))
	if cmd != nil {
		t.Error("submitting an empty form should not emit a command")
	}
	if m.mode != beansForm {
		t.Errorf("invalid form should stay open, mode: got %d", m.mode)
	}
	if !m.form.HasErrors() {
		t.Error("form should carry validation errors")
	}
}

func TestSubmitErrorKeepsBeanFormOpen(t *testing.T) {
	m := loadedBeansModel(t)

	m, _ = m.Update(keyMsg("n"))
	m.form.SetValue("name", "Kochere")
	m.form.SetValue("origin", "Ethiopia")
	m.form.SetValue("roast_level", "medium")
	m, cmd := m.Update(keyMsg("enter"))
	if cmd == nil {
		t.Fatal("valid form should emit a save")
	}

	m, _ = m.Update(tui.BeanSavedMsg{Err: &api.APIError{Status: 500}})
	if m.mode != beansForm {
		t.Errorf("form closed on submit error, mode: got %d", m.mode)
	}
	if m.form.SubmitError() == "" {
		t.Error("submit error not surfaced in the form")
	}
	if len(m.beans) != 2 {
		t.Errorf("bean count after failed save: got %d, want 2", len(m.beans))
	}
}

func TestEnterOpensBeanSessions(t *testing.T) {
	m := loadedBeansModel(t)

	m, cmd := m.Update(keyMsg("enter"))
	if m.mode != beansSessions {
		t.Fatalf("mode after enter: got %d, want bean sessions", m.mode)
	}
	if cmd == nil {
		t.Fatal("entering a bean should request its sessions")
	}
	msg, ok := cmd().(LoadBeanSessionsMsg)
	if !ok || msg.BeanID != 1 {
		t.Errorf("load request: got %#v", cmd())
	}

	grinder := model.Grinder{ID: 20, Name: "Niche Zero"}
	m, _ = m.Update(tui.BeanSessionsLoadedMsg{BeanID: 1, Sessions: []model.CalibrationSession{
		{ID: 5, BeanID: 1, SessionDate: "2024-03-01", Grinder: &grinder},
	}})
	view := m.View()
	if !strings.Contains(view, "2024-03-01") || !strings.Contains(view, "Niche Zero") {
		t.Errorf("drill-down view missing session row:\n%s", view)
	}

	m, _ = m.Update(keyMsg("esc"))
	if m.mode != beansList {
		t.Errorf("mode after esc: got %d, want list", m.mode)
	}
}

func TestSavedBeanMergesWithoutRefetch(t *testing.T) {
	m := loadedBeansModel(t)

	created := model.Bean{ID: 3, Name: "House Blend", Origin: "Ethiopia, Brazil", IsBlend: true}
	m, _ = m.Update(tui.BeanSavedMsg{Bean: &created, Created: true})
	if len(m.beans) != 3 {
		t.Fatalf("bean count after create: got %d, want 3", len(m.beans))
	}

	updated := model.Bean{ID: 2, Name: "Santos Reserve", Origin: "Brazil", RoastLevel: "dark"}
	m, _ = m.Update(tui.BeanSavedMsg{Bean: &updated})
	if len(m.beans) != 3 {
		t.Fatalf("bean count after update: got %d, want 3", len(m.beans))
	}
	if m.beans[1].Name != "Santos Reserve" {
		t.Errorf("updated row: got %q", m.beans[1].Name)
	}
}
