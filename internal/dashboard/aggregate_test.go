package dashboard

import (
	"testing"

	"github.com/crema-dev/crema/internal/config"
	"github.com/crema-dev/crema/internal/model"
)

func shot(dose, yield float64, seconds int) model.Shot {
	return model.Shot{Dose: dose, Yield: yield, TimeSeconds: seconds}
}

func TestRatioPrefersServerValue(t *testing.T) {
	s := shot(18, 36, 28)
	if got := Ratio(s); got != 2.0 {
		t.Errorf("derived ratio: got %v, want 2.0", got)
	}

	server := 1.95
	s.ExtractionRatio = &server
	if got := Ratio(s); got != 1.95 {
		t.Errorf("server ratio: got %v, want 1.95", got)
	}
}

func TestRatioZeroDose(t *testing.T) {
	if got := Ratio(shot(0, 36, 28)); got != 0 {
		t.Errorf("zero dose: got %v, want 0", got)
	}
}

func TestFlowDerived(t *testing.T) {
	if got := Flow(shot(18, 36, 30)); got != 1.2 {
		t.Errorf("derived flow: got %v, want 1.2", got)
	}
	if got := Flow(shot(18, 36, 0)); got != 0 {
		t.Errorf("zero time: got %v, want 0", got)
	}
}

func TestRound2(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{1.234, 1.23},
		{1.236, 1.24},
		{2.0/3.0 + 1, 1.67},
		{2, 2},
	}
	for _, tt := range tests {
		if got := Round2(tt.in); got != tt.want {
			t.Errorf("Round2(%v): got %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestTrendPointsSortedByDate(t *testing.T) {
	shots := []DetailedShot{
		{Shot: shot(18, 36, 28), SessionDate: "2024-02-01", BeanName: "B"},
		{Shot: shot(18, 36, 28), SessionDate: "2024-01-01", BeanName: "A"},
	}

	points := TrendPoints(shots)
	if len(points) != 2 {
		t.Fatalf("point count: got %d, want 2", len(points))
	}
	if points[0].Date != "2024-01-01" || points[1].Date != "2024-02-01" {
		t.Errorf("order: got %s, %s", points[0].Date, points[1].Date)
	}
	if points[0].ExtractionRatio != 2.0 {
		t.Errorf("ratio: got %v, want 2.0", points[0].ExtractionRatio)
	}
}

func TestBeanAveragesGroupsAndRounds(t *testing.T) {
	shots := []DetailedShot{
		{Shot: model.Shot{Dose: 18, Yield: 36, TimeSeconds: 25, GrindSetting: "10"}, BeanName: "Yirgacheffe"},
		{Shot: model.Shot{Dose: 18, Yield: 27, TimeSeconds: 35, GrindSetting: "12"}, BeanName: "Yirgacheffe"},
		{Shot: model.Shot{Dose: 20, Yield: 40, TimeSeconds: 30, GrindSetting: "fine"}, BeanName: "Santos"},
	}

	got := BeanAverages(shots)
	if len(got) != 2 {
		t.Fatalf("group count: got %d, want 2", len(got))
	}
	// Sorted by name: Santos first.
	if got[0].BeanName != "Santos" || got[1].BeanName != "Yirgacheffe" {
		t.Fatalf("order: got %s, %s", got[0].BeanName, got[1].BeanName)
	}

	y := got[1]
	if y.ShotCount != 2 {
		t.Errorf("shot count: got %d, want 2", y.ShotCount)
	}
	if y.AvgExtractionRatio != 1.75 { // (2.0 + 1.5) / 2
		t.Errorf("avg ratio: got %v, want 1.75", y.AvgExtractionRatio)
	}
	if y.AvgTimeSeconds != 30 {
		t.Errorf("avg time: got %v, want 30", y.AvgTimeSeconds)
	}
	if y.AvgGrindSetting != 11 {
		t.Errorf("avg grind: got %v, want 11", y.AvgGrindSetting)
	}

	// Non-numeric grind settings contribute nothing.
	if got[0].AvgGrindSetting != 0 {
		t.Errorf("non-numeric grind: got %v, want 0", got[0].AvgGrindSetting)
	}
}

func TestOptimalFromShotsInclusiveWindow(t *testing.T) {
	cfg := config.OptimalConfig{RatioMin: 1.8, RatioMax: 2.2, TimeMinSeconds: 25, TimeMaxSeconds: 30}
	shots := []DetailedShot{
		{Shot: shot(18, 36, 25)},   // ratio 2.0, time on lower bound: optimal
		{Shot: shot(10, 22, 30)},   // ratio 2.2 on upper bound: optimal
		{Shot: shot(18, 45, 28)},   // ratio 2.5: not optimal
		{Shot: shot(18, 36, 35)},   // time out of window: not optimal
	}

	p := OptimalFromShots(shots, cfg)
	if p.TotalShots != 4 {
		t.Errorf("total: got %d, want 4", p.TotalShots)
	}
	if p.OptimalShotCount != 2 {
		t.Errorf("optimal count: got %d, want 2", p.OptimalShotCount)
	}
	if p.RatioMin != 1.8 || p.TimeMaxSeconds != 30 {
		t.Errorf("thresholds not carried: %+v", p)
	}
}

func TestMonthlyActivityBuckets(t *testing.T) {
	sessions := []model.CalibrationSession{
		{SessionDate: "2024-01-05"},
		{SessionDate: "2024-01-20"},
		{SessionDate: "2024-03-01"},
		{SessionDate: "not a date"},
	}
	shots := []DetailedShot{
		{SessionDate: "2024-01-05"},
		{SessionDate: "2024-02-10"},
	}

	got := MonthlyActivityFrom(sessions, shots)
	wantLabels := []string{"2024-01", "2024-02", "2024-03"}
	if len(got.Labels) != len(wantLabels) {
		t.Fatalf("labels: got %v, want %v", got.Labels, wantLabels)
	}
	for i, want := range wantLabels {
		if got.Labels[i] != want {
			t.Errorf("label %d: got %s, want %s", i, got.Labels[i], want)
		}
	}
	if got.Sessions[0] != 2 || got.Sessions[1] != 0 || got.Sessions[2] != 1 {
		t.Errorf("session series: got %v", got.Sessions)
	}
	if got.Shots[0] != 1 || got.Shots[1] != 1 || got.Shots[2] != 0 {
		t.Errorf("shot series: got %v", got.Shots)
	}
}
