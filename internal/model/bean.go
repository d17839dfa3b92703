package model

import "strings"

// Roast levels accepted by the API.
const (
	RoastLight  = "light"
	RoastMedium = "medium"
	RoastDark   = "dark"
)

// RoastLevels lists the valid roast levels in display order.
var RoastLevels = []string{RoastLight, RoastMedium, RoastDark}

// Bean is a coffee bean product as persisted by the API. A blend stores
// its origins joined into the single origin field.
type Bean struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Origin     string `json:"origin"`
	Roastery   string `json:"roastery"`
	RoastLevel string `json:"roast_level"`
	RoastDate  string `json:"roast_date,omitempty"`
	Notes      string `json:"notes"`
	IsBlend    bool   `json:"is_blend"`
	CreatedAt  string `json:"created_at,omitempty"`
	UpdatedAt  string `json:"updated_at,omitempty"`
}

// BeanDraft is the edit-form view of a Bean. BlendOrigins exists only
// while editing; it collapses into Origin before submission and is
// reconstructed from Origin when editing an existing blend.
type BeanDraft struct {
	ID           int64
	Name         string
	Origin       string
	BlendOrigins []string
	Roastery     string
	RoastLevel   string
	RoastDate    string
	Notes        string
	IsBlend      bool
}

// DefaultBean returns the template draft used to initialize create forms.
func DefaultBean() BeanDraft {
	return BeanDraft{RoastLevel: RoastMedium}
}

// DraftFromBean builds an edit draft from a persisted bean, splitting a
// blend's stored origin back into its origin list.
func DraftFromBean(b Bean) BeanDraft {
	d := BeanDraft{
		ID:         b.ID,
		Name:       b.Name,
		Origin:     b.Origin,
		Roastery:   b.Roastery,
		RoastLevel: b.RoastLevel,
		RoastDate:  b.RoastDate,
		Notes:      b.Notes,
		IsBlend:    b.IsBlend,
	}
	if d.RoastLevel == "" {
		d.RoastLevel = RoastMedium
	}
	if b.IsBlend {
		d.BlendOrigins = SplitOrigins(b.Origin)
		if len(d.BlendOrigins) == 0 {
			d.BlendOrigins = []string{""}
		}
	}
	return d
}

// JoinOrigins encodes a blend origin list into the persisted origin
// string, dropping empty entries.
func JoinOrigins(origins []string) string {
	var kept []string
	for _, o := range origins {
		if s := strings.TrimSpace(o); s != "" {
			kept = append(kept, s)
		}
	}
	return strings.Join(kept, ", ")
}

// SplitOrigins decodes a persisted origin string back into the blend
// origin list.
func SplitOrigins(origin string) []string {
	if strings.TrimSpace(origin) == "" {
		return nil
	}
	parts := strings.Split(origin, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			origins = append(origins, s)
		}
	}
	return origins
}

// Bean converts the draft into the payload submitted to the API. For a
// blend the origin list is collapsed into the origin field.
func (d BeanDraft) Bean() Bean {
	origin := d.Origin
	if d.IsBlend {
		origin = JoinOrigins(d.BlendOrigins)
	}
	return Bean{
		ID:         d.ID,
		Name:       d.Name,
		Origin:     origin,
		Roastery:   d.Roastery,
		RoastLevel: d.RoastLevel,
		RoastDate:  d.RoastDate,
		Notes:      d.Notes,
		IsBlend:    d.IsBlend,
	}
}

// ValidateBean checks a bean draft and returns one error per offending
// field. An empty result means the draft is submittable.
func ValidateBean(d BeanDraft) []FieldError {
	var errs []FieldError

	if strings.TrimSpace(d.Name) == "" {
		errs = append(errs, FieldError{"name", "Name is required"})
	} else if len(d.Name) > 150 {
		errs = append(errs, FieldError{"name", "Name must be less than 150 characters"})
	}

	if d.IsBlend {
		joined := JoinOrigins(d.BlendOrigins)
		if joined == "" {
			errs = append(errs, FieldError{"origin", "At least one origin is required for blends"})
		} else if len(joined) > 150 {
			errs = append(errs, FieldError{"origin", "Origin must be less than 150 characters"})
		}
	} else {
		if strings.TrimSpace(d.Origin) == "" {
			errs = append(errs, FieldError{"origin", "Origin is required"})
		} else if len(d.Origin) > 150 {
			errs = append(errs, FieldError{"origin", "Origin must be less than 150 characters"})
		}
	}

	if len(d.Roastery) > 150 {
		errs = append(errs, FieldError{"roastery", "Roastery must be less than 150 characters"})
	}

	valid := false
	for _, level := range RoastLevels {
		if d.RoastLevel == level {
			valid = true
			break
		}
	}
	if !valid {
		errs = append(errs, FieldError{"roast_level", "Invalid roast level"})
	}

	if d.RoastDate != "" && !validDate(d.RoastDate) {
		errs = append(errs, FieldError{"roast_date", "Invalid roast date"})
	}

	return errs
}
