package lists

import (
	"strings"

	"github.com/crema-dev/crema/internal/model"
)

// FilterGrinders applies the search term: a case-insensitive substring
// match over name, model and notes.
func FilterGrinders(grinders []model.Grinder, term string) []model.Grinder {
	needle := strings.ToLower(term)

	out := make([]model.Grinder, 0, len(grinders))
	for _, g := range grinders {
		if matchesAny(needle, g.Name, g.Model, g.Notes) {
			out = append(out, g)
		}
	}
	return out
}
