package lists

import (
	"context"
	"sort"
	"strings"

	"github.com/crema-dev/crema/internal/model"
)

// SessionFilter is the combined session-list filter. The date range is
// inclusive on both ends and applied before the search term.
type SessionFilter struct {
	Term      string
	StartDate string
	EndDate   string
}

// Resolver fetches a single bean or grinder by id. The API client
// satisfies this; EnrichSessions uses it as the fallback when a session
// references data missing from the already-fetched lists.
type Resolver interface {
	GetBean(ctx context.Context, id int64) (*model.Bean, error)
	GetGrinder(ctx context.Context, id int64) (*model.Grinder, error)
}

// FilterSessions applies the date range, then the search term, then
// sorts by session date descending (most recent first). The search
// matches the resolved bean name, resolved grinder name, session date
// and notes; sessions must be enriched first for bean/grinder matching
// to work.
func FilterSessions(sessions []model.CalibrationSession, f SessionFilter) []model.CalibrationSession {
	needle := strings.ToLower(f.Term)

	out := make([]model.CalibrationSession, 0, len(sessions))
	for _, s := range sessions {
		if !inDateRange(s.SessionDate, f.StartDate, f.EndDate) {
			continue
		}
		beanName := ""
		if s.Bean != nil {
			beanName = s.Bean.Name
		}
		grinderName := ""
		if s.Grinder != nil {
			grinderName = s.Grinder.Name
		}
		if !matchesAny(needle, beanName, grinderName, s.SessionDate, s.Notes) {
			continue
		}
		out = append(out, s)
	}

	sort.SliceStable(out, func(i, j int) bool {
		ti, iok := model.ParseDate(out[i].SessionDate)
		tj, jok := model.ParseDate(out[j].SessionDate)
		if iok != jok {
			return iok // parseable dates before unparseable ones
		}
		return ti.After(tj)
	})

	return out
}

// inDateRange reports whether date falls inside the inclusive
// [start, end] range. Empty bounds are open; an unparseable session
// date is outside any bounded range.
func inDateRange(date, start, end string) bool {
	if start == "" && end == "" {
		return true
	}
	t, ok := model.ParseDate(date)
	if !ok {
		return false
	}
	if start != "" {
		if s, ok := model.ParseDate(start); ok && t.Before(s) {
			return false
		}
	}
	if end != "" {
		if e, ok := model.ParseDate(end); ok && t.After(e) {
			return false
		}
	}
	return true
}

// EnrichSessions attaches the related Bean and Grinder to each session
// for display, resolving ids against the already-fetched lists. On a
// cache miss (a session referencing data not yet in the local lists) it
// falls back to a direct fetch by id through r; fetch failures leave
// that side nil rather than failing the list.
func EnrichSessions(ctx context.Context, sessions []model.CalibrationSession, beans []model.Bean, grinders []model.Grinder, r Resolver) []model.CalibrationSession {
	beansByID := make(map[int64]model.Bean, len(beans))
	for _, b := range beans {
		beansByID[b.ID] = b
	}
	grindersByID := make(map[int64]model.Grinder, len(grinders))
	for _, g := range grinders {
		grindersByID[g.ID] = g
	}

	out := make([]model.CalibrationSession, len(sessions))
	copy(out, sessions)
	for i := range out {
		s := &out[i]

		if s.Bean == nil {
			if b, ok := beansByID[s.BeanID]; ok {
				bean := b
				s.Bean = &bean
			} else if r != nil {
				if b, err := r.GetBean(ctx, s.BeanID); err == nil {
					s.Bean = b
				}
			}
		}

		if s.Grinder == nil {
			if g, ok := grindersByID[s.GrinderID]; ok {
				grinder := g
				s.Grinder = &grinder
			} else if r != nil {
				if g, err := r.GetGrinder(ctx, s.GrinderID); err == nil {
					s.Grinder = g
				}
			}
		}
	}
	return out
}
