package model

import "strings"

// Grinder is a coffee grinder as persisted by the API.
type Grinder struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Model     string `json:"model"`
	Notes     string `json:"notes"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// GrinderDraft is the edit-form view of a Grinder.
type GrinderDraft struct {
	ID    int64
	Name  string
	Model string
	Notes string
}

// DefaultGrinder returns the template draft used to initialize create forms.
func DefaultGrinder() GrinderDraft {
	return GrinderDraft{}
}

// DraftFromGrinder builds an edit draft from a persisted grinder.
func DraftFromGrinder(g Grinder) GrinderDraft {
	return GrinderDraft{ID: g.ID, Name: g.Name, Model: g.Model, Notes: g.Notes}
}

// Grinder converts the draft into the payload submitted to the API.
func (d GrinderDraft) Grinder() Grinder {
	return Grinder{ID: d.ID, Name: d.Name, Model: d.Model, Notes: d.Notes}
}

// ValidateGrinder checks a grinder draft and returns one error per
// offending field.
func ValidateGrinder(d GrinderDraft) []FieldError {
	var errs []FieldError

	if strings.TrimSpace(d.Name) == "" {
		errs = append(errs, FieldError{"name", "Name is required"})
	} else if len(d.Name) > 150 {
		errs = append(errs, FieldError{"name", "Name must be less than 150 characters"})
	}

	if len(d.Model) > 150 {
		errs = append(errs, FieldError{"model", "Model must be less than 150 characters"})
	}

	return errs
}
