package views

import (
	"strings"
	"testing"

	"github.com/crema-dev/crema/internal/api"
	"github.com/crema-dev/crema/internal/config"
	"github.com/crema-dev/crema/internal/model"
	"github.com/crema-dev/crema/internal/tui"
)

func testWindow() config.OptimalConfig {
	return config.OptimalConfig{RatioMin: 1.8, RatioMax: 2.2, TimeMinSeconds: 25, TimeMaxSeconds: 30}
}

func loadedSessionsModel(t *testing.T) SessionsModel {
	t.Helper()
	bean := model.Bean{ID: 10, Name: "Yirgacheffe"}
	grinder := model.Grinder{ID: 20, Name: "Niche Zero"}

	m := NewSessionsModel(80, 24, testWindow())
	m, _ = m.Update(tui.SessionsLoadedMsg{
		Sessions: []model.CalibrationSession{
			{ID: 1, BeanID: 10, GrinderID: 20, SessionDate: "2024-01-10", Bean: &bean, Grinder: &grinder},
		},
		Beans:    []model.Bean{bean},
		Grinders: []model.Grinder{grinder},
	})
	return m
}

func TestEnterOpensShotsAndRequestsLoad(t *testing.T) {
	m := loadedSessionsModel(t)

	m, cmd := m.Update(keyMsg("enter"))
	if m.mode != shotsList {
		t.Fatalf("mode after enter: got %d, want shots list", m.mode)
	}
	if cmd == nil {
		t.Fatal("entering a session should request its shots")
	}
	msg, ok := cmd().(LoadShotsMsg)
	if !ok || msg.SessionID != 1 {
		t.Errorf("load request: got %#v", cmd())
	}
}

func TestNewShotPrefillsGapNumber(t *testing.T) {
	m := loadedSessionsModel(t)
	m, _ = m.Update(keyMsg("enter"))
	m, _ = m.Update(tui.ShotsLoadedMsg{SessionID: 1, Shots: []model.Shot{
		{ID: 1, CalibrationSessionID: 1, ShotNumber: 1},
		{ID: 2, CalibrationSessionID: 1, ShotNumber: 2},
		{ID: 3, CalibrationSessionID: 1, ShotNumber: 4},
	}})

	m, _ = m.Update(keyMsg("n"))
	if m.mode != shotsForm {
		t.Fatalf("mode after 'n': got %d, want shot form", m.mode)
	}
	if got := m.shotForm.Value("shot_number"); got != "3" {
		t.Errorf("prefilled shot number: got %q, want \"3\"", got)
	}
}

func TestDuplicateShotNumberBlocksSave(t *testing.T) {
	m := loadedSessionsModel(t)
	m, _ = m.Update(keyMsg("enter"))
	m, _ = m.Update(tui.ShotsLoadedMsg{SessionID: 1, Shots: []model.Shot{
		{ID: 1, CalibrationSessionID: 1, ShotNumber: 1},
	}})

	m, _ = m.Update(keyMsg("n"))
	m.shotForm.SetValue("shot_number", "1")
	m.shotForm.SetValue("grind_setting", "10")
	m.shotForm.SetValue("dose", "18")
	m.shotForm.SetValue("yield", "36")
	m.shotForm.SetValue("time_seconds", "28")

	m, cmd := m.Update(keyMsg("enter"))
	if cmd != nil {
		t.Error("duplicate shot number should not emit a save")
	}
	if m.mode != shotsForm {
		t.Errorf("form should stay open, mode: got %d", m.mode)
	}
}

func TestEditKeepsShotNumber(t *testing.T) {
	m := loadedSessionsModel(t)
	m, _ = m.Update(keyMsg("enter"))
	m, _ = m.Update(tui.ShotsLoadedMsg{SessionID: 1, Shots: []model.Shot{
		{ID: 1, CalibrationSessionID: 1, ShotNumber: 1, GrindSetting: "10", Dose: 18, Yield: 36, TimeSeconds: 28},
	}})

	m, _ = m.Update(keyMsg("e"))
	if m.mode != shotsForm {
		t.Fatalf("mode after 'e': got %d, want shot form", m.mode)
	}
	if got := m.shotForm.Value("shot_number"); got != "" {
		t.Errorf("edit form exposes a shot number field with %q", got)
	}

	// Whatever is typed lands in the editable fields, never the number.
	m, _ = m.Update(keyMsg("7"))
	m, cmd := m.Update(keyMsg("enter"))
	if cmd == nil {
		t.Fatal("valid edit should emit a save")
	}
	msg, ok := cmd().(SaveShotMsg)
	if !ok {
		t.Fatalf("command message: got %T, want SaveShotMsg", cmd())
	}
	if msg.Shot.ShotNumber != 1 {
		t.Errorf("shot number after edit: got %d, want 1", msg.Shot.ShotNumber)
	}
}

func TestShotSubmitErrorKeepsFormOpen(t *testing.T) {
	m := loadedSessionsModel(t)
	m, _ = m.Update(keyMsg("enter"))
	m, _ = m.Update(tui.ShotsLoadedMsg{SessionID: 1})

	m, _ = m.Update(keyMsg("n"))
	m.shotForm.SetValue("grind_setting", "10")
	m.shotForm.SetValue("dose", "18")
	m.shotForm.SetValue("yield", "36")
	m.shotForm.SetValue("time_seconds", "28")
	m, cmd := m.Update(keyMsg("enter"))
	if cmd == nil {
		t.Fatal("valid form should emit a save")
	}

	m, _ = m.Update(tui.ShotSavedMsg{Err: &api.APIError{Status: 500}})
	if m.mode != shotsForm {
		t.Errorf("form closed on submit error, mode: got %d", m.mode)
	}
	if m.shotForm.SubmitError() == "" {
		t.Error("submit error not surfaced in the form")
	}
}

func TestShotListMarksOptimalWindow(t *testing.T) {
	m := loadedSessionsModel(t)
	m, _ = m.Update(keyMsg("enter"))
	m, _ = m.Update(tui.ShotsLoadedMsg{SessionID: 1, Shots: []model.Shot{
		{ID: 1, ShotNumber: 1, Dose: 18, Yield: 36, TimeSeconds: 28}, // ratio 2.0, inside
		{ID: 2, ShotNumber: 2, Dose: 18, Yield: 45, TimeSeconds: 40}, // ratio 2.5, outside
	}})

	view := m.View()
	if !strings.Contains(view, "✓") {
		t.Error("shot inside the window not marked")
	}
	if !strings.Contains(view, "○") {
		t.Error("shot outside the window not marked")
	}
}

func TestUnknownBeanNameBlocksSessionSave(t *testing.T) {
	m := loadedSessionsModel(t)

	m, _ = m.Update(keyMsg("n"))
	if m.mode != sessionsForm {
		t.Fatalf("mode after 'n': got %d, want session form", m.mode)
	}
	m.form.SetValue("bean_id", "No Such Bean")
	m.form.SetValue("grinder_id", "Niche Zero")
	m.form.SetValue("session_date", "2024-02-01")

	m, cmd := m.Update(keyMsg("enter"))
	if cmd != nil {
		t.Error("unknown bean should not emit a save")
	}
	if !m.form.HasErrors() {
		t.Error("form should carry an error for the unknown bean")
	}
}

func TestValidSessionSubmitEmitsSave(t *testing.T) {
	m := loadedSessionsModel(t)

	m, _ = m.Update(keyMsg("n"))
	m.form.SetValue("bean_id", "yirgacheffe") // case-insensitive match
	m.form.SetValue("grinder_id", "Niche Zero")
	m.form.SetValue("session_date", "2024-02-01")

	_, cmd := m.Update(keyMsg("enter"))
	if cmd == nil {
		t.Fatal("valid form should emit a save")
	}
	msg, ok := cmd().(SaveSessionMsg)
	if !ok {
		t.Fatalf("command message: got %T, want SaveSessionMsg", cmd())
	}
	if msg.Session.BeanID != 10 || msg.Session.GrinderID != 20 {
		t.Errorf("resolved ids: got bean %d grinder %d", msg.Session.BeanID, msg.Session.GrinderID)
	}
	if msg.Session.SessionDate != "2024-02-01" {
		t.Errorf("session date: got %q", msg.Session.SessionDate)
	}
}
