package lists

import (
	"strings"

	"github.com/crema-dev/crema/internal/model"
)

// BeanTab partitions the bean list on is_blend.
type BeanTab string

const (
	BeanTabAll          BeanTab = "all"
	BeanTabSingleOrigin BeanTab = "single-origin"
	BeanTabBlend        BeanTab = "blend"
)

// BeanTabs lists the tabs in display order.
var BeanTabs = []BeanTab{BeanTabAll, BeanTabSingleOrigin, BeanTabBlend}

// FilterBeans applies the search term and tab filter. The search is a
// case-insensitive substring match over name, roastery, origin and
// notes; an empty term matches everything.
func FilterBeans(beans []model.Bean, term string, tab BeanTab) []model.Bean {
	needle := strings.ToLower(term)

	out := make([]model.Bean, 0, len(beans))
	for _, b := range beans {
		if !matchesAny(needle, b.Name, b.Roastery, b.Origin, b.Notes) {
			continue
		}
		switch tab {
		case BeanTabSingleOrigin:
			if b.IsBlend {
				continue
			}
		case BeanTabBlend:
			if !b.IsBlend {
				continue
			}
		}
		out = append(out, b)
	}
	return out
}

func matchesAny(needle string, fields ...string) bool {
	if needle == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}
