package model

import "testing"

func validShotDraft() ShotDraft {
	num := 1
	dose := 18.0
	yield := 36.0
	secs := 28
	return ShotDraft{
		CalibrationSessionID: 7,
		ShotNumber:           &num,
		GrindSetting:         "2.5",
		Dose:                 &dose,
		Yield:                &yield,
		TimeSeconds:          &secs,
	}
}

func TestValidateShotAcceptsValidDraft(t *testing.T) {
	if errs := ValidateShot(validShotDraft()); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestValidateShotRequiredFields(t *testing.T) {
	errs := ByField(ValidateShot(ShotDraft{}))

	want := map[string]string{
		"calibration_session_id": "Session is required",
		"shot_number":            "Shot number is required",
		"grind_setting":          "Grind setting is required",
		"dose":                   "Dose is required",
		"yield":                  "Yield is required",
		"time_seconds":           "Time (seconds) is required",
	}
	for field, msg := range want {
		if errs[field] != msg {
			t.Errorf("%s: got %q, want %q", field, errs[field], msg)
		}
	}
}

func TestValidateShotRanges(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ShotDraft)
		field   string
		message string
	}{
		{"zero shot number", func(d *ShotDraft) { n := 0; d.ShotNumber = &n }, "shot_number", "Shot number must be a positive number"},
		{"zero dose", func(d *ShotDraft) { v := 0.0; d.Dose = &v }, "dose", "Dose must be a positive number"},
		{"oversized dose", func(d *ShotDraft) { v := 1000.0; d.Dose = &v }, "dose", "Dose must be less than or equal to 999.99"},
		{"negative yield", func(d *ShotDraft) { v := -1.0; d.Yield = &v }, "yield", "Yield must be a positive number"},
		{"oversized yield", func(d *ShotDraft) { v := 1000.0; d.Yield = &v }, "yield", "Yield must be less than or equal to 999.99"},
		{"zero time", func(d *ShotDraft) { v := 0; d.TimeSeconds = &v }, "time_seconds", "Time must be a positive number"},
		{"cold water", func(d *ShotDraft) { v := 0.0; d.WaterTemperature = &v }, "water_temperature", "Water temperature must be a positive number"},
		{"boiling water", func(d *ShotDraft) { v := 100.5; d.WaterTemperature = &v }, "water_temperature", "Water temperature should be below 100°C (boiling point)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validShotDraft()
			tt.mutate(&d)
			errs := ByField(ValidateShot(d))
			if errs[tt.field] != tt.message {
				t.Errorf("%s: got %q, want %q", tt.field, errs[tt.field], tt.message)
			}
		})
	}
}

func TestValidateShotBoundaryValues(t *testing.T) {
	d := validShotDraft()
	dose := 999.99
	yield := 999.99
	temp := 100.0
	d.Dose = &dose
	d.Yield = &yield
	d.WaterTemperature = &temp

	if errs := ValidateShot(d); len(errs) != 0 {
		t.Errorf("boundary values should be accepted, got %v", errs)
	}
}

func TestValidateShotTemperatureOptional(t *testing.T) {
	d := validShotDraft()
	d.WaterTemperature = nil
	if errs := ValidateShot(d); len(errs) != 0 {
		t.Errorf("missing temperature should be accepted, got %v", errs)
	}
}

func TestShotDraftRoundTrip(t *testing.T) {
	temp := 93.5
	s := Shot{
		ID:                   3,
		CalibrationSessionID: 7,
		ShotNumber:           4,
		GrindSetting:         "2.5",
		Dose:                 18,
		Yield:                36,
		TimeSeconds:          28,
		WaterTemperature:     &temp,
		TasteNotes:           "balanced",
		ActionTaken:          "none",
	}

	got := DraftFromShot(s).Shot()
	if got.ShotNumber != 4 || got.Dose != 18 || got.Yield != 36 || got.TimeSeconds != 28 {
		t.Errorf("numeric round trip: got %+v", got)
	}
	if got.WaterTemperature == nil || *got.WaterTemperature != 93.5 {
		t.Errorf("temperature round trip: got %v", got.WaterTemperature)
	}
}
