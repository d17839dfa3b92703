package api

import "github.com/crema-dev/crema/internal/model"

// Types for the read-only /visualization endpoints. These mirror the
// server's dashboard payloads; every field is optional on the wire and
// consumers substitute empty series when a section is missing.

// EntityCounts holds the total number of each entity.
type EntityCounts struct {
	Beans    int `json:"beans"`
	Grinders int `json:"grinders"`
	Sessions int `json:"sessions"`
	Shots    int `json:"shots"`
}

// BeanStat is a per-bean session statistic.
type BeanStat struct {
	BeanName     string `json:"bean_name"`
	SessionCount int    `json:"session_count"`
}

// GrinderStat is a per-grinder usage statistic.
type GrinderStat struct {
	GrinderName string `json:"grinder_name"`
	UsageCount  int    `json:"usage_count"`
}

// MonthlyActivity is the month-bucketed session/shot series. Labels,
// Sessions and Shots are parallel slices.
type MonthlyActivity struct {
	Labels   []string `json:"labels"`
	Sessions []int    `json:"sessions"`
	Shots    []int    `json:"shots"`
}

// ShotAverages are mean brewing parameters across shots.
type ShotAverages struct {
	Dose        float64 `json:"dose"`
	Yield       float64 `json:"yield"`
	Time        float64 `json:"time"`
	Temperature float64 `json:"temperature"`
}

// ShotPerformance bundles averages with the most recent session's shots.
type ShotPerformance struct {
	Averages         *ShotAverages `json:"averages"`
	LastSessionShots []model.Shot  `json:"last_session_shots"`
}

// TasteProfile summarizes taste-note analysis.
type TasteProfile struct {
	CommonFlavors    []string       `json:"common_flavors"`
	FlavorCategories map[string]int `json:"flavor_categories"`
}

// SummaryStats is the payload of GET /visualization/summary-stats.
type SummaryStats struct {
	Counts          EntityCounts               `json:"counts"`
	User            *model.User                `json:"user"`
	BeanStats       []BeanStat                 `json:"bean_stats"`
	GrinderStats    []GrinderStat              `json:"grinder_stats"`
	MonthlyActivity *MonthlyActivity           `json:"monthly_activity"`
	ShotPerformance *ShotPerformance           `json:"shot_performance"`
	TasteProfile    *TasteProfile              `json:"taste_profile"`
	RecentSessions  []model.CalibrationSession `json:"recent_sessions"`
}

// TrendPoint is one shot's derived metrics in the extraction-trends
// series.
type TrendPoint struct {
	Date            string  `json:"date"`
	BeanName        string  `json:"bean_name"`
	ExtractionYield float64 `json:"extraction_yield"`
	ExtractionRatio float64 `json:"extraction_ratio"`
	FlowRate        float64 `json:"flow_rate"`
}

// BeanComparison is one bean's averaged metrics in the comparative
// analysis.
type BeanComparison struct {
	BeanName           string  `json:"bean_name"`
	ShotCount          int     `json:"shot_count"`
	AvgExtractionYield float64 `json:"avg_extraction_yield"`
	AvgExtractionRatio float64 `json:"avg_extraction_ratio"`
	AvgFlowRate        float64 `json:"avg_flow_rate"`
	AvgTimeSeconds     float64 `json:"avg_time_seconds"`
	AvgGrindSetting    float64 `json:"avg_grind_setting"`
}

// OptimalParameters is the payload of GET /visualization/optimal-parameters.
type OptimalParameters struct {
	OptimalShotCount int     `json:"optimal_shot_count"`
	TotalShots       int     `json:"total_shots"`
	RatioMin         float64 `json:"ratio_min"`
	RatioMax         float64 `json:"ratio_max"`
	TimeMinSeconds   int     `json:"time_min_seconds"`
	TimeMaxSeconds   int     `json:"time_max_seconds"`
}
