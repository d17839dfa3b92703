package model

import (
	"strings"
	"testing"
)

func TestValidateSessionRequiredFields(t *testing.T) {
	errs := ByField(ValidateSession(SessionDraft{}))

	want := map[string]string{
		"bean_id":      "Bean is required",
		"grinder_id":   "Grinder is required",
		"session_date": "Session date is required",
	}
	for field, msg := range want {
		if errs[field] != msg {
			t.Errorf("%s: got %q, want %q", field, errs[field], msg)
		}
	}
}

func TestValidateSessionDate(t *testing.T) {
	d := SessionDraft{BeanID: 1, GrinderID: 2, SessionDate: "2024-06-01"}
	if errs := ValidateSession(d); len(errs) != 0 {
		t.Fatalf("valid session rejected: %v", errs)
	}

	d.SessionDate = "yesterday"
	errs := ByField(ValidateSession(d))
	if errs["session_date"] != "Invalid session date" {
		t.Errorf("session_date error: got %q", errs["session_date"])
	}
}

func TestValidateGrinder(t *testing.T) {
	if errs := ValidateGrinder(GrinderDraft{Name: "Niche Zero"}); len(errs) != 0 {
		t.Fatalf("valid grinder rejected: %v", errs)
	}

	errs := ByField(ValidateGrinder(GrinderDraft{Model: strings.Repeat("m", 151)}))
	if errs["name"] != "Name is required" {
		t.Errorf("name error: got %q", errs["name"])
	}
	if errs["model"] != "Model must be less than 150 characters" {
		t.Errorf("model error: got %q", errs["model"])
	}
}

func TestParseDateLayouts(t *testing.T) {
	for _, s := range []string{"2024-01-31", "2024-01-31T10:00:00Z", "2024-01-31 10:00:00"} {
		if _, ok := ParseDate(s); !ok {
			t.Errorf("ParseDate(%q) failed", s)
		}
	}
	if _, ok := ParseDate("31/01/2024"); ok {
		t.Error("ParseDate accepted unsupported layout")
	}
}
