package model

import (
	"strings"
	"testing"
)

func validSingleOrigin() BeanDraft {
	d := DefaultBean()
	d.Name = "Yirgacheffe"
	d.Origin = "Ethiopia"
	return d
}

func TestValidateBeanAcceptsValidSingleOrigin(t *testing.T) {
	if errs := ValidateBean(validSingleOrigin()); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestValidateBeanRequiresName(t *testing.T) {
	d := validSingleOrigin()
	d.Name = "   "
	errs := ByField(ValidateBean(d))
	if errs["name"] != "Name is required" {
		t.Errorf("name error: got %q", errs["name"])
	}
}

func TestValidateBeanNameLength(t *testing.T) {
	d := validSingleOrigin()
	d.Name = strings.Repeat("x", 151)
	errs := ByField(ValidateBean(d))
	if errs["name"] != "Name must be less than 150 characters" {
		t.Errorf("name error: got %q", errs["name"])
	}

	d.Name = strings.Repeat("x", 150)
	if errs := ValidateBean(d); len(errs) != 0 {
		t.Errorf("150-char name should be accepted, got %v", errs)
	}
}

func TestValidateBeanRequiresOriginForSingleOrigin(t *testing.T) {
	d := validSingleOrigin()
	d.Origin = ""
	errs := ByField(ValidateBean(d))
	if errs["origin"] != "Origin is required" {
		t.Errorf("origin error: got %q", errs["origin"])
	}
}

func TestValidateBeanBlendRequiresOneOrigin(t *testing.T) {
	d := DefaultBean()
	d.Name = "House Blend"
	d.IsBlend = true
	d.BlendOrigins = []string{"", "  "}

	errs := ByField(ValidateBean(d))
	if errs["origin"] != "At least one origin is required for blends" {
		t.Errorf("origin error: got %q", errs["origin"])
	}

	d.BlendOrigins = []string{"Ethiopia", ""}
	if errs := ValidateBean(d); len(errs) != 0 {
		t.Errorf("one non-empty origin should be enough, got %v", errs)
	}
}

func TestValidateBeanBlendCombinedLength(t *testing.T) {
	d := DefaultBean()
	d.Name = "Big Blend"
	d.IsBlend = true
	d.BlendOrigins = []string{strings.Repeat("a", 80), strings.Repeat("b", 80)}

	errs := ByField(ValidateBean(d))
	if errs["origin"] != "Origin must be less than 150 characters" {
		t.Errorf("origin error: got %q", errs["origin"])
	}
}

func TestValidateBeanRoastLevel(t *testing.T) {
	d := validSingleOrigin()
	for _, level := range RoastLevels {
		d.RoastLevel = level
		if errs := ValidateBean(d); len(errs) != 0 {
			t.Errorf("level %q should be valid, got %v", level, errs)
		}
	}

	d.RoastLevel = "charcoal"
	errs := ByField(ValidateBean(d))
	if errs["roast_level"] != "Invalid roast level" {
		t.Errorf("roast_level error: got %q", errs["roast_level"])
	}
}

func TestValidateBeanRoastDate(t *testing.T) {
	d := validSingleOrigin()
	d.RoastDate = "2024-03-15"
	if errs := ValidateBean(d); len(errs) != 0 {
		t.Errorf("valid date rejected: %v", errs)
	}

	d.RoastDate = "not-a-date"
	errs := ByField(ValidateBean(d))
	if errs["roast_date"] != "Invalid roast date" {
		t.Errorf("roast_date error: got %q", errs["roast_date"])
	}
}

func TestBlendOriginRoundTrip(t *testing.T) {
	d := DefaultBean()
	d.Name = "Morning Blend"
	d.IsBlend = true
	d.BlendOrigins = []string{"Ethiopia", "Brazil"}

	bean := d.Bean()
	if bean.Origin != "Ethiopia, Brazil" {
		t.Fatalf("joined origin: got %q, want %q", bean.Origin, "Ethiopia, Brazil")
	}

	reopened := DraftFromBean(bean)
	if len(reopened.BlendOrigins) != 2 ||
		reopened.BlendOrigins[0] != "Ethiopia" ||
		reopened.BlendOrigins[1] != "Brazil" {
		t.Errorf("reconstructed origins: got %v", reopened.BlendOrigins)
	}
}

func TestDraftFromBlendWithoutOrigin(t *testing.T) {
	d := DraftFromBean(Bean{Name: "Mystery", IsBlend: true})
	if len(d.BlendOrigins) != 1 || d.BlendOrigins[0] != "" {
		t.Errorf("expected single empty origin slot, got %v", d.BlendOrigins)
	}
}

func TestJoinOriginsDropsEmptyEntries(t *testing.T) {
	got := JoinOrigins([]string{" Kenya ", "", "Colombia", "  "})
	if got != "Kenya, Colombia" {
		t.Errorf("JoinOrigins: got %q", got)
	}
}

func TestDefaultBeanRoastLevel(t *testing.T) {
	if d := DefaultBean(); d.RoastLevel != RoastMedium {
		t.Errorf("default roast level: got %q, want %q", d.RoastLevel, RoastMedium)
	}
}
