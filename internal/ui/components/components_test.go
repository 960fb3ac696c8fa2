package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/lotto-dashboard-tui/internal/models"
)

func testStats() models.NumberStats {
	stats := make(models.NumberStats, models.MaxNumber)
	for n := models.MinNumber; n <= models.MaxNumber; n++ {
		stats[n] = models.NumberStat{Number: n, Frequency: n % 7, Gap: n % 5}
	}
	return stats
}

func TestSpinner_Methods(t *testing.T) {
	s := NewSpinner("Init")
	if s.Label() != "Init" {
		t.Errorf("Label = %q, want Init", s.Label())
	}

	s.SetLabel("Loading")
	if s.Label() != "Loading" {
		t.Errorf("Label = %s, want Loading", s.Label())
	}

	if s.View() == "" {
		t.Error("View returned empty")
	}
	if !strings.Contains(s.ViewWithLabel(), "Loading") {
		t.Error("ViewWithLabel should contain the label")
	}
	if s.Init() == nil || s.Tick() == nil {
		t.Error("Init and Tick should return commands")
	}

	tick, ok := s.Tick()().(spinner.TickMsg)
	if !ok {
		t.Fatal("Tick should produce a spinner.TickMsg")
	}
	if _, cmd := s.Update(tick); cmd == nil {
		t.Error("Update should schedule the next tick")
	}
}

func TestRenderSpinnerCentered(t *testing.T) {
	s := NewSpinner("Fitting")
	out := RenderSpinnerCentered(s, 40, 5)
	if lipgloss.Height(out) != 5 {
		t.Errorf("Height = %d, want 5", lipgloss.Height(out))
	}
}

func TestRenderLineChart(t *testing.T) {
	if out := RenderLineChart(nil, 40, 5, "x"); !strings.Contains(out, "No data") {
		t.Error("Empty chart should say no data")
	}
	out := RenderLineChart([]float64{1, 3, 2, 5}, 40, 5, "sums")
	if !strings.Contains(out, "sums") {
		t.Error("Chart should include caption")
	}
}

func TestRenderNumberChart(t *testing.T) {
	if out := RenderNumberChart(nil, 40, 5); !strings.Contains(out, "No data") {
		t.Error("Empty chart should say no data")
	}
	out := RenderNumberChart(testStats(), 60, 6)
	if !strings.Contains(out, "frequency") {
		t.Error("Chart should include caption")
	}
}

func TestRenderBarChart(t *testing.T) {
	if RenderBarChart(nil, nil, 40, "") != "" {
		t.Error("Empty bar chart should render nothing")
	}
	out := RenderBarChart([]float64{1, 2}, []string{"a", "bb"}, 40, " %.0f")
	if lines := strings.Split(out, "\n"); len(lines) != 2 {
		t.Errorf("Bar chart lines = %d, want 2", len(lines))
	}
	if !strings.Contains(out, "bb") {
		t.Error("Bar chart should include labels")
	}
}

func TestRenderNumberHeatmap(t *testing.T) {
	out := RenderNumberHeatmap(testStats())
	if lines := strings.Split(out, "\n"); len(lines) != 5 {
		t.Errorf("Heatmap rows = %d, want 5", len(lines))
	}
	if !strings.Contains(out, "45") {
		t.Error("Heatmap should include number 45")
	}

	if RenderNumberHeatmap(models.NumberStats{}) == "" {
		t.Error("Heatmap of empty stats should still render the grid")
	}
}

func TestRenderSparkline(t *testing.T) {
	if RenderSparkline(nil, 10) != "" {
		t.Error("Empty sparkline should be empty")
	}

	out := RenderSparkline([]float64{1, 2, 3, 4, 5, 6, 7, 8}, 4)
	if got := len([]rune(out)); got != 4 {
		t.Errorf("Sparkline width = %d, want 4", got)
	}
	if !strings.HasSuffix(out, "█") {
		t.Errorf("Largest value should render as a full block, got %q", out)
	}

	flat := RenderSparkline([]float64{3, 3, 3}, 10)
	if flat != "▁▁▁" {
		t.Errorf("Flat sparkline = %q", flat)
	}
}

func TestRenderLegend(t *testing.T) {
	out := RenderLegend([]LegendItem{
		{Label: "frequency", Color: ChartFrequencyColor},
		{Label: "gap", Color: ChartGapColor},
	})
	if !strings.Contains(out, "frequency") || !strings.Contains(out, "gap") {
		t.Errorf("Legend = %q", out)
	}
}

func TestProgressBar(t *testing.T) {
	p := NewProgressBar(20)
	p.SetLabel("Fitting")

	if cmd := p.SetProgress(5, 10); cmd == nil {
		t.Error("SetProgress should animate")
	}
	if p.Percent() != 0.5 {
		t.Errorf("Percent = %v, want 0.5", p.Percent())
	}

	p.SetProgress(20, 10)
	if p.Percent() != 1 {
		t.Errorf("Percent should clamp to 1, got %v", p.Percent())
	}

	p.SetProgress(1, 0)
	if p.Percent() != 0 {
		t.Errorf("Percent with zero total = %v, want 0", p.Percent())
	}

	p.SetWidth(30)
	if !strings.Contains(p.View(), "Fitting") {
		t.Error("View should include the label")
	}
}

func TestRenderRatioTable(t *testing.T) {
	if out := RenderRatioTable(nil, 40); !strings.Contains(out, "No data") {
		t.Error("Empty table should say no data")
	}

	entries := []models.RatioEntry{
		{Label: "3:3", Ratio: 0.5},
		{Label: "4:2", Ratio: 0.25},
		{Label: "2:4", Ratio: 0.25},
	}
	out := RenderRatioTable(entries, 50)
	if lines := strings.Split(out, "\n"); len(lines) != 3 {
		t.Errorf("Ratio table lines = %d, want 3", len(lines))
	}
	if !strings.Contains(out, "50.0%") {
		t.Error("Ratio table should show percentages")
	}
}

func TestRenderGradientBar(t *testing.T) {
	if RenderGradientBar(50, 0) != "" {
		t.Error("Zero width bar should be empty")
	}
	out := RenderGradientBar(50, 10)
	if lipgloss.Width(out) != 10 {
		t.Errorf("Bar width = %d, want 10", lipgloss.Width(out))
	}
}

func TestHexToRGB(t *testing.T) {
	if got := hexToRGB("#ff8000"); got != [3]int{255, 128, 0} {
		t.Errorf("hexToRGB = %v", got)
	}
	if got := hexToRGB("zz"); got != [3]int{0, 0, 0} {
		t.Errorf("Invalid hex should map to black, got %v", got)
	}
	if got := interpolateColor("#000000", "#ffffff", 0); got != "#000000" {
		t.Errorf("interpolateColor at 0 = %s", got)
	}
}

func TestRenderBalls(t *testing.T) {
	if !strings.Contains(RenderBall(7), "7") {
		t.Error("Ball should show its number")
	}
	if !strings.Contains(RenderBall(0), "--") {
		t.Error("Absent number should render as placeholder")
	}

	d := models.Draw{Number: 1, Winning: [6]int{1, 2, 3, 4, 5, 0}, Bonus: 9}
	out := RenderDraw(d)
	if !strings.Contains(out, "+  9") {
		t.Errorf("Draw should include the bonus, got %q", out)
	}
	if strings.Contains(RenderDraw(models.Draw{Winning: [6]int{1, 2, 3, 4, 5, 6}}), "+") {
		t.Error("Draw without bonus should not show one")
	}
}

func TestRenderCombinationAgainst(t *testing.T) {
	d := models.Draw{Number: 1, Winning: [6]int{1, 2, 3, 4, 5, 6}, Bonus: 7}
	out := RenderCombinationAgainst(models.Combination{1, 2, 7, 20, 30, 40}, d)
	if !strings.Contains(out, "[ 1]") || !strings.Contains(out, "( 7)") || !strings.Contains(out, " 40 ") {
		t.Errorf("Unexpected rendering %q", out)
	}
}

func TestRenderTally(t *testing.T) {
	h := models.NewHitTally()
	h[models.TierFifth] = 3
	out := RenderTally(h)
	for _, want := range []string{"1st:0", "5th:3"} {
		if !strings.Contains(out, want) {
			t.Errorf("Tally %q missing %q", out, want)
		}
	}
}
