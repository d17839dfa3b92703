package dashboard

import (
	"math"
	"sort"
	"strconv"

	"github.com/crema-dev/crema/internal/api"
	"github.com/crema-dev/crema/internal/config"
	"github.com/crema-dev/crema/internal/model"
)

// Round2 rounds to two decimal places, matching how the server reports
// averaged metrics.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Ratio returns the shot's brew ratio, preferring the server-computed
// value and deriving yield/dose when it is absent.
func Ratio(s model.Shot) float64 {
	if s.ExtractionRatio != nil {
		return *s.ExtractionRatio
	}
	if s.Dose <= 0 {
		return 0
	}
	return s.Yield / s.Dose
}

// Flow returns the shot's flow rate in g/s, preferring the
// server-computed value and deriving yield/time when it is absent.
func Flow(s model.Shot) float64 {
	if s.FlowRate != nil {
		return *s.FlowRate
	}
	if s.TimeSeconds <= 0 {
		return 0
	}
	return s.Yield / float64(s.TimeSeconds)
}

// TrendPoints builds the extraction-trend series from raw shots,
// ordered by session date ascending. Used when the trends endpoint is
// unavailable.
func TrendPoints(shots []DetailedShot) []api.TrendPoint {
	ordered := make([]DetailedShot, len(shots))
	copy(ordered, shots)
	sort.SliceStable(ordered, func(i, j int) bool {
		ti, iok := model.ParseDate(ordered[i].SessionDate)
		tj, jok := model.ParseDate(ordered[j].SessionDate)
		if iok != jok {
			return iok
		}
		return ti.Before(tj)
	})

	points := make([]api.TrendPoint, 0, len(ordered))
	for _, s := range ordered {
		p := api.TrendPoint{
			Date:            s.SessionDate,
			BeanName:        s.BeanName,
			ExtractionRatio: Round2(Ratio(s.Shot)),
			FlowRate:        Round2(Flow(s.Shot)),
		}
		if s.ExtractionYield != nil {
			p.ExtractionYield = Round2(*s.ExtractionYield)
		}
		points = append(points, p)
	}
	return points
}

// BeanAverages groups shots by bean and averages their metrics, sorted
// by bean name for stable output. Used when the comparative-analysis
// endpoint is unavailable. Grind settings contribute to the average
// only when they parse as numbers.
func BeanAverages(shots []DetailedShot) []api.BeanComparison {
	type acc struct {
		count      int
		ratio      float64
		flow       float64
		time       float64
		yield      float64
		yieldCount int
		grind      float64
		grindCount int
	}

	byBean := make(map[string]*acc)
	for _, s := range shots {
		a := byBean[s.BeanName]
		if a == nil {
			a = &acc{}
			byBean[s.BeanName] = a
		}
		a.count++
		a.ratio += Ratio(s.Shot)
		a.flow += Flow(s.Shot)
		a.time += float64(s.TimeSeconds)
		if s.ExtractionYield != nil {
			a.yield += *s.ExtractionYield
			a.yieldCount++
		}
		if g, err := strconv.ParseFloat(s.GrindSetting, 64); err == nil {
			a.grind += g
			a.grindCount++
		}
	}

	names := make([]string, 0, len(byBean))
	for name := range byBean {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]api.BeanComparison, 0, len(names))
	for _, name := range names {
		a := byBean[name]
		n := float64(a.count)
		c := api.BeanComparison{
			BeanName:           name,
			ShotCount:          a.count,
			AvgExtractionRatio: Round2(a.ratio / n),
			AvgFlowRate:        Round2(a.flow / n),
			AvgTimeSeconds:     Round2(a.time / n),
		}
		if a.yieldCount > 0 {
			c.AvgExtractionYield = Round2(a.yield / float64(a.yieldCount))
		}
		if a.grindCount > 0 {
			c.AvgGrindSetting = Round2(a.grind / float64(a.grindCount))
		}
		out = append(out, c)
	}
	return out
}

// InOptimalWindow reports whether the shot's ratio and time both fall
// inside the configured window. The bounds are inclusive.
func InOptimalWindow(s model.Shot, cfg config.OptimalConfig) bool {
	r := Ratio(s)
	if r < cfg.RatioMin || r > cfg.RatioMax {
		return false
	}
	return s.TimeSeconds >= cfg.TimeMinSeconds && s.TimeSeconds <= cfg.TimeMaxSeconds
}

// OptimalFromShots counts shots inside the configured window. Used when
// the optimal-parameters endpoint is unavailable.
func OptimalFromShots(shots []DetailedShot, cfg config.OptimalConfig) *api.OptimalParameters {
	p := &api.OptimalParameters{
		TotalShots:     len(shots),
		RatioMin:       cfg.RatioMin,
		RatioMax:       cfg.RatioMax,
		TimeMinSeconds: cfg.TimeMinSeconds,
		TimeMaxSeconds: cfg.TimeMaxSeconds,
	}
	for _, s := range shots {
		if InOptimalWindow(s.Shot, cfg) {
			p.OptimalShotCount++
		}
	}
	return p
}

// MonthlyActivityFrom buckets sessions and shots into year-month labels,
// ordered chronologically. Sessions or shots with unparseable dates are
// dropped from the series.
func MonthlyActivityFrom(sessions []model.CalibrationSession, shots []DetailedShot) *api.MonthlyActivity {
	sessionsByMonth := make(map[string]int)
	shotsByMonth := make(map[string]int)

	for _, s := range sessions {
		if t, ok := model.ParseDate(s.SessionDate); ok {
			sessionsByMonth[t.Format("2006-01")]++
		}
	}
	for _, s := range shots {
		if t, ok := model.ParseDate(s.SessionDate); ok {
			shotsByMonth[t.Format("2006-01")]++
		}
	}

	labels := make([]string, 0, len(sessionsByMonth))
	for month := range sessionsByMonth {
		labels = append(labels, month)
	}
	for month := range shotsByMonth {
		if _, seen := sessionsByMonth[month]; !seen {
			labels = append(labels, month)
		}
	}
	sort.Strings(labels)

	activity := &api.MonthlyActivity{Labels: labels}
	for _, month := range labels {
		activity.Sessions = append(activity.Sessions, sessionsByMonth[month])
		activity.Shots = append(activity.Shots, shotsByMonth[month])
	}
	return activity
}
