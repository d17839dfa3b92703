// Package dashboard loads and aggregates the analytics shown on the
// dashboard view. The /visualization endpoints are authoritative; when
// one of them fails the service degrades to client-side aggregation
// over the raw shot data instead of failing the whole dashboard.
package dashboard

import (
	"context"
	"sync"

	"github.com/crema-dev/crema/internal/api"
	"github.com/crema-dev/crema/internal/config"
	"github.com/crema-dev/crema/internal/model"
)

// DetailedShot is a shot joined with the session and bean context needed
// for aggregation and display.
type DetailedShot struct {
	model.Shot
	SessionDate string
	BeanName    string
	BeanOrigin  string
	GrinderName string
}

// Data is everything the dashboard view renders. Any section may be
// empty when both its endpoint and the client-side fallback failed.
type Data struct {
	Summary     *api.SummaryStats
	Trends      []api.TrendPoint
	Comparisons []api.BeanComparison
	Optimal     *api.OptimalParameters
	Shots       []DetailedShot

	// Partial is set when at least one section could not be loaded
	// from the server and was filled from local aggregation or left
	// empty.
	Partial bool
}

// Service fetches dashboard data from the API.
type Service struct {
	client  *api.Client
	optimal config.OptimalConfig
}

// NewService returns a dashboard service. The optimal thresholds are
// the client-side fallback used when the server does not report its
// own.
func NewService(client *api.Client, optimal config.OptimalConfig) *Service {
	return &Service{client: client, optimal: optimal}
}

// Optimal returns the configured optimal-window thresholds.
func (s *Service) Optimal() config.OptimalConfig {
	return s.optimal
}

// Load fetches all dashboard sections concurrently. A failed section
// does not fail the load: the service falls back to aggregating raw
// shots locally and marks the result partial. Load only errors when
// nothing at all could be fetched.
func (s *Service) Load(ctx context.Context) (*Data, error) {
	var (
		wg   sync.WaitGroup
		data Data

		summaryErr     error
		trendsErr      error
		comparisonsErr error
		optimalErr     error
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		data.Summary, summaryErr = s.client.SummaryStats(ctx)
	}()
	go func() {
		defer wg.Done()
		data.Trends, trendsErr = s.client.ExtractionTrends(ctx)
	}()
	go func() {
		defer wg.Done()
		data.Comparisons, comparisonsErr = s.client.ComparativeAnalysis(ctx)
	}()
	go func() {
		defer wg.Done()
		data.Optimal, optimalErr = s.client.OptimalParameters(ctx)
	}()
	wg.Wait()

	needFallback := trendsErr != nil || comparisonsErr != nil || optimalErr != nil || summaryErr != nil
	if needFallback {
		data.Partial = true

		shots, sessions, err := s.shotsWithDetails(ctx)
		if err != nil && summaryErr != nil && trendsErr != nil && comparisonsErr != nil && optimalErr != nil {
			// Nothing loaded at all; surface the shot fetch error as
			// the representative failure.
			return nil, err
		}
		data.Shots = shots

		if summaryErr != nil {
			data.Summary = summaryFromLocal(sessions, shots)
		}
		if trendsErr != nil {
			data.Trends = TrendPoints(shots)
		}
		if comparisonsErr != nil {
			data.Comparisons = BeanAverages(shots)
		}
		if optimalErr != nil {
			data.Optimal = OptimalFromShots(shots, s.optimal)
		}
	}

	return &data, nil
}

// summaryFromLocal rebuilds the overview sections that can be derived
// from raw sessions and shots. Bean and grinder totals count the
// distinct names seen in the walked sessions, which undercounts
// entities never used in a session.
func summaryFromLocal(sessions []model.CalibrationSession, shots []DetailedShot) *api.SummaryStats {
	beans := make(map[int64]bool)
	grinders := make(map[int64]bool)
	for _, s := range sessions {
		if s.BeanID != 0 {
			beans[s.BeanID] = true
		}
		if s.GrinderID != 0 {
			grinders[s.GrinderID] = true
		}
	}
	return &api.SummaryStats{
		Counts: api.EntityCounts{
			Beans:    len(beans),
			Grinders: len(grinders),
			Sessions: len(sessions),
			Shots:    len(shots),
		},
		MonthlyActivity: MonthlyActivityFrom(sessions, shots),
	}
}

// shotsWithDetails walks every session and collects its shots joined
// with the session's bean and grinder context. A session whose shot
// fetch fails is skipped rather than failing the walk.
func (s *Service) shotsWithDetails(ctx context.Context) ([]DetailedShot, []model.CalibrationSession, error) {
	sessions, err := s.client.ListSessions(ctx)
	if err != nil {
		return nil, nil, err
	}

	var out []DetailedShot
	for _, sess := range sessions {
		shots, err := s.client.ListShots(ctx, sess.ID)
		if err != nil {
			continue
		}
		beanName, beanOrigin, grinderName := "", "", ""
		if sess.Bean != nil {
			beanName = sess.Bean.Name
			beanOrigin = sess.Bean.Origin
		}
		if sess.Grinder != nil {
			grinderName = sess.Grinder.Name
		}
		for _, shot := range shots {
			out = append(out, DetailedShot{
				Shot:        shot,
				SessionDate: sess.SessionDate,
				BeanName:    beanName,
				BeanOrigin:  beanOrigin,
				GrinderName: grinderName,
			})
		}
	}
	return out, sessions, nil
}
