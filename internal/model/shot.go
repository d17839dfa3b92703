package model

import "strings"

// Shot is one espresso extraction attempt recorded with its brewing
// parameters and outcome notes.
type Shot struct {
	ID                   int64    `json:"id"`
	CalibrationSessionID int64    `json:"calibration_session_id"`
	ShotNumber           int      `json:"shot_number"`
	GrindSetting         string   `json:"grind_setting"`
	Dose                 float64  `json:"dose"`
	Yield                float64  `json:"yield"`
	TimeSeconds          int      `json:"time_seconds"`
	WaterTemperature     *float64 `json:"water_temperature,omitempty"`
	TasteNotes           string   `json:"taste_notes"`
	ActionTaken          string   `json:"action_taken"`
	CreatedAt            string   `json:"created_at,omitempty"`
	UpdatedAt            string   `json:"updated_at,omitempty"`

	// Derived metrics, present only when the server computes them.
	// Consumers fall back to deriving ratio and flow from dose, yield
	// and time when these are absent.
	ExtractionYield *float64 `json:"extraction_yield,omitempty"`
	ExtractionRatio *float64 `json:"extraction_ratio,omitempty"`
	FlowRate        *float64 `json:"flow_rate,omitempty"`
}

// ShotDraft is the edit-form view of a Shot. Numeric fields are pointers
// so an emptied input is distinguishable from zero: forms coerce raw text
// to a number or nil.
type ShotDraft struct {
	ID                   int64
	CalibrationSessionID int64
	ShotNumber           *int
	GrindSetting         string
	Dose                 *float64
	Yield                *float64
	TimeSeconds          *int
	WaterTemperature     *float64
	TasteNotes           string
	ActionTaken          string
}

// DefaultShot returns the template draft used to initialize create forms.
// The caller pre-seeds the session id and the next available shot number.
func DefaultShot() ShotDraft {
	n := 1
	return ShotDraft{ShotNumber: &n}
}

// DraftFromShot builds an edit draft from a persisted shot.
func DraftFromShot(s Shot) ShotDraft {
	num := s.ShotNumber
	dose := s.Dose
	yield := s.Yield
	secs := s.TimeSeconds
	d := ShotDraft{
		ID:                   s.ID,
		CalibrationSessionID: s.CalibrationSessionID,
		ShotNumber:           &num,
		GrindSetting:         s.GrindSetting,
		Dose:                 &dose,
		Yield:                &yield,
		TimeSeconds:          &secs,
		TasteNotes:           s.TasteNotes,
		ActionTaken:          s.ActionTaken,
	}
	if s.WaterTemperature != nil {
		temp := *s.WaterTemperature
		d.WaterTemperature = &temp
	}
	return d
}

// Shot converts the draft into the payload submitted to the API. Call
// only after validation; nil numeric fields become zero values.
func (d ShotDraft) Shot() Shot {
	s := Shot{
		ID:                   d.ID,
		CalibrationSessionID: d.CalibrationSessionID,
		GrindSetting:         d.GrindSetting,
		TasteNotes:           d.TasteNotes,
		ActionTaken:          d.ActionTaken,
		WaterTemperature:     d.WaterTemperature,
	}
	if d.ShotNumber != nil {
		s.ShotNumber = *d.ShotNumber
	}
	if d.Dose != nil {
		s.Dose = *d.Dose
	}
	if d.Yield != nil {
		s.Yield = *d.Yield
	}
	if d.TimeSeconds != nil {
		s.TimeSeconds = *d.TimeSeconds
	}
	return s
}

// ValidateShot checks a shot draft and returns one error per offending
// field.
func ValidateShot(d ShotDraft) []FieldError {
	var errs []FieldError

	if d.CalibrationSessionID == 0 {
		errs = append(errs, FieldError{"calibration_session_id", "Session is required"})
	}

	switch {
	case d.ShotNumber == nil:
		errs = append(errs, FieldError{"shot_number", "Shot number is required"})
	case *d.ShotNumber < 1:
		errs = append(errs, FieldError{"shot_number", "Shot number must be a positive number"})
	}

	if strings.TrimSpace(d.GrindSetting) == "" {
		errs = append(errs, FieldError{"grind_setting", "Grind setting is required"})
	}

	switch {
	case d.Dose == nil:
		errs = append(errs, FieldError{"dose", "Dose is required"})
	case *d.Dose <= 0:
		errs = append(errs, FieldError{"dose", "Dose must be a positive number"})
	case *d.Dose > 999.99:
		errs = append(errs, FieldError{"dose", "Dose must be less than or equal to 999.99"})
	}

	switch {
	case d.Yield == nil:
		errs = append(errs, FieldError{"yield", "Yield is required"})
	case *d.Yield <= 0:
		errs = append(errs, FieldError{"yield", "Yield must be a positive number"})
	case *d.Yield > 999.99:
		errs = append(errs, FieldError{"yield", "Yield must be less than or equal to 999.99"})
	}

	switch {
	case d.TimeSeconds == nil:
		errs = append(errs, FieldError{"time_seconds", "Time (seconds) is required"})
	case *d.TimeSeconds <= 0:
		errs = append(errs, FieldError{"time_seconds", "Time must be a positive number"})
	}

	if d.WaterTemperature != nil {
		switch {
		case *d.WaterTemperature <= 0:
			errs = append(errs, FieldError{"water_temperature", "Water temperature must be a positive number"})
		case *d.WaterTemperature > 100:
			errs = append(errs, FieldError{"water_temperature", "Water temperature should be below 100°C (boiling point)"})
		}
	}

	return errs
}
