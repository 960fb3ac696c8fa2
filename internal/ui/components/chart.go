// Package components provides reusable UI components for the TUI.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/j-veylop/lotto-dashboard-tui/internal/models"
	"github.com/j-veylop/lotto-dashboard-tui/internal/ui/styles"
)

// Chart colors.
var (
	ChartFrequencyColor = lipgloss.Color("#ff6b6b")
	ChartGapColor       = lipgloss.Color("#4285f4")
	ChartPrimaryColor   = lipgloss.Color("#7D56F4")
)

const (
	minChartWidth  = 20
	minChartHeight = 3
)

// RenderLineChart creates a single-series ASCII line chart.
func RenderLineChart(data []float64, width, height int, caption string) string {
	if len(data) == 0 {
		return styles.HelpStyle.Render("No data available")
	}

	return asciigraph.Plot(data,
		asciigraph.Height(max(height, minChartHeight)),
		asciigraph.Width(max(width, minChartWidth)),
		asciigraph.Caption(caption),
	)
}

// RenderNumberChart plots frequency and gap for numbers 1..45 on one graph.
func RenderNumberChart(stats models.NumberStats, width, height int) string {
	if len(stats) == 0 {
		return styles.HelpStyle.Render("No data available")
	}

	return asciigraph.PlotMany([][]float64{stats.Frequencies(), stats.Gaps()},
		asciigraph.Height(max(height, minChartHeight)),
		asciigraph.Width(max(width, minChartWidth)),
		asciigraph.Caption("numbers 1-45: frequency (red) and gap (blue)"),
		asciigraph.SeriesColors(
			asciigraph.Red,
			asciigraph.Blue,
		),
	)
}

// RenderBarChart creates a simple horizontal bar chart.
func RenderBarChart(values []float64, labels []string, width int, format string) string {
	if len(values) == 0 {
		return ""
	}
	if format == "" {
		format = " %.1f"
	}

	maxVal := 0.0
	for _, v := range values {
		maxVal = max(maxVal, v)
	}
	if maxVal == 0 {
		maxVal = 1
	}

	maxLabelLen := 0
	for _, l := range labels {
		maxLabelLen = max(maxLabelLen, len(l))
	}

	barWidth := max(width-maxLabelLen-10, 10)

	lines := make([]string, 0, len(values))
	for i, v := range values {
		label := ""
		if i < len(labels) {
			label = labels[i]
		}

		barLen := max(int((v/maxVal)*float64(barWidth)), 0)
		bar := lipgloss.NewStyle().Foreground(ChartPrimaryColor).Render(strings.Repeat("█", barLen))

		lines = append(lines, fmt.Sprintf("%*s │%s%s", maxLabelLen, label, bar, fmt.Sprintf(format, v)))
	}

	return strings.Join(lines, "\n")
}

// HeatmapBlocks are Unicode block characters for heatmaps (low to high intensity).
var HeatmapBlocks = []rune{'░', '▒', '▓', '█'}

// RenderNumberHeatmap lays numbers 1..45 out in rows of ten, shaded by
// frequency relative to the most drawn number.
func RenderNumberHeatmap(stats models.NumberStats) string {
	maxFreq := 0
	for _, st := range stats {
		maxFreq = max(maxFreq, st.Frequency)
	}
	if maxFreq == 0 {
		maxFreq = 1
	}

	var b strings.Builder
	for n := models.MinNumber; n <= models.MaxNumber; n++ {
		intensity := stats[n].Frequency * (len(HeatmapBlocks) - 1) / maxFreq
		intensity = min(max(intensity, 0), len(HeatmapBlocks)-1)

		var style lipgloss.Style
		switch intensity {
		case 0:
			style = lipgloss.NewStyle().Foreground(styles.Subtle)
		case 1:
			style = lipgloss.NewStyle().Foreground(styles.Info)
		case 2:
			style = lipgloss.NewStyle().Foreground(styles.Warning)
		default:
			style = lipgloss.NewStyle().Foreground(styles.Error)
		}

		block := strings.Repeat(string(HeatmapBlocks[intensity]), 2)
		b.WriteString(fmt.Sprintf("%2d%s ", n, style.Render(block)))
		if n%10 == 0 && n != models.MaxNumber {
			b.WriteString("\n")
		}
	}
	return b.String()
}

var sparkChars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// RenderSparkline creates a compact inline sparkline scaled between the
// smallest and largest value.
func RenderSparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}

	if len(values) > width {
		values = values[len(values)-width:]
	}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	var result strings.Builder
	for _, v := range values {
		idx := int((v - lo) / span * float64(len(sparkChars)-1))
		idx = min(max(idx, 0), len(sparkChars)-1)
		result.WriteRune(sparkChars[idx])
	}
	return result.String()
}

// RenderLegend creates a chart legend.
func RenderLegend(items []LegendItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		colorBox := lipgloss.NewStyle().Foreground(item.Color).Render("■")
		parts = append(parts, fmt.Sprintf("%s %s", colorBox, item.Label))
	}
	return strings.Join(parts, "  ")
}

// LegendItem represents a single legend entry.
type LegendItem struct {
	Label string
	Color lipgloss.Color
}
