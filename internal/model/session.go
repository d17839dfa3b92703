package model

// CalibrationSession groups the shots pulled with one bean/grinder pairing
// on a given date. The Bean and Grinder objects are attached client-side
// after lookups; the list endpoint does not always embed them.
type CalibrationSession struct {
	ID          int64  `json:"id"`
	BeanID      int64  `json:"bean_id"`
	GrinderID   int64  `json:"grinder_id"`
	UserID      int64  `json:"user_id,omitempty"`
	SessionDate string `json:"session_date"`
	Notes       string `json:"notes"`
	CreatedAt   string `json:"created_at,omitempty"`
	UpdatedAt   string `json:"updated_at,omitempty"`

	// Denormalized for display only, never submitted.
	Bean    *Bean    `json:"bean,omitempty"`
	Grinder *Grinder `json:"grinder,omitempty"`
}

// SessionDraft is the edit-form view of a CalibrationSession.
type SessionDraft struct {
	ID          int64
	BeanID      int64
	GrinderID   int64
	SessionDate string
	Notes       string
}

// DefaultSession returns the template draft used to initialize create forms.
func DefaultSession() SessionDraft {
	return SessionDraft{}
}

// DraftFromSession builds an edit draft from a persisted session.
func DraftFromSession(s CalibrationSession) SessionDraft {
	return SessionDraft{
		ID:          s.ID,
		BeanID:      s.BeanID,
		GrinderID:   s.GrinderID,
		SessionDate: s.SessionDate,
		Notes:       s.Notes,
	}
}

// Session converts the draft into the payload submitted to the API.
func (d SessionDraft) Session() CalibrationSession {
	return CalibrationSession{
		ID:          d.ID,
		BeanID:      d.BeanID,
		GrinderID:   d.GrinderID,
		SessionDate: d.SessionDate,
		Notes:       d.Notes,
	}
}

// ValidateSession checks a session draft and returns one error per
// offending field.
func ValidateSession(d SessionDraft) []FieldError {
	var errs []FieldError

	if d.BeanID == 0 {
		errs = append(errs, FieldError{"bean_id", "Bean is required"})
	}
	if d.GrinderID == 0 {
		errs = append(errs, FieldError{"grinder_id", "Grinder is required"})
	}
	if d.SessionDate == "" {
		errs = append(errs, FieldError{"session_date", "Session date is required"})
	} else if !validDate(d.SessionDate) {
		errs = append(errs, FieldError{"session_date", "Invalid session date"})
	}

	return errs
}
