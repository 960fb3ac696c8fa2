package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/lotto-dashboard-tui/internal/logger"
	"github.com/j-veylop/lotto-dashboard-tui/internal/models"
	"github.com/j-veylop/lotto-dashboard-tui/internal/ui/styles"
)

const (
	gradientFrom = "#4285f4"
	gradientTo   = "#ff6b6b"
)

// ProgressBar is an animated bar for long running work such as a cluster fit.
type ProgressBar struct {
	progress progress.Model
	label    string
	percent  float64
}

// NewProgressBar creates a progress bar of the given width.
func NewProgressBar(width int) ProgressBar {
	return ProgressBar{
		progress: progress.New(
			progress.WithScaledGradient(gradientFrom, gradientTo),
			progress.WithWidth(max(width, 10)),
			progress.WithoutPercentage(),
		),
	}
}

// Update handles progress frame messages.
func (p ProgressBar) Update(msg tea.Msg) (ProgressBar, tea.Cmd) {
	model, cmd := p.progress.Update(msg)
	if pm, ok := model.(progress.Model); ok {
		p.progress = pm
	}
	return p, cmd
}

// SetProgress sets done out of total and starts the animation.
func (p *ProgressBar) SetProgress(done, total int) tea.Cmd {
	if total <= 0 {
		p.percent = 0
	} else {
		p.percent = min(float64(done)/float64(total), 1)
	}
	return p.progress.SetPercent(p.percent)
}

// SetLabel sets the bar label.
func (p *ProgressBar) SetLabel(label string) {
	p.label = label
}

// SetWidth sets the bar width.
func (p *ProgressBar) SetWidth(width int) {
	p.progress.Width = max(width, 10)
}

// Percent returns the target fraction between 0 and 1.
func (p ProgressBar) Percent() float64 {
	return p.percent
}

// View renders the label, bar and percentage.
func (p ProgressBar) View() string {
	return lipgloss.JoinHorizontal(
		lipgloss.Center,
		styles.ProgressLabelStyle.Render(p.label),
		p.progress.View(),
		" ",
		styles.ProgressPercentStyle.Render(fmt.Sprintf("%.0f%%", p.percent*100)),
	)
}

// RenderRatioTable renders one gradient bar per entry, scaled so the largest
// ratio fills the bar. Ratios are shown as percentages.
func RenderRatioTable(entries []models.RatioEntry, width int) string {
	if len(entries) == 0 {
		return styles.HelpStyle.Render("No data available")
	}

	labelWidth := 0
	peak := 0.0
	for _, e := range entries {
		labelWidth = max(labelWidth, lipgloss.Width(e.Label))
		peak = max(peak, e.Ratio)
	}
	if peak == 0 {
		peak = 1
	}
	expected := 1 / float64(len(entries))

	barWidth := max(width-labelWidth-12, 5)
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		label := lipgloss.NewStyle().Width(labelWidth).Foreground(styles.TextSecondary).Render(e.Label)
		bar := RenderGradientBar(e.Ratio/peak*100, barWidth)
		pct := styles.GetRatioStyle(e.Ratio, expected).
			Width(7).
			Align(lipgloss.Right).
			Render(fmt.Sprintf("%.1f%%", e.Ratio*100))
		lines = append(lines, fmt.Sprintf("%s %s%s", label, bar, pct))
	}
	return strings.Join(lines, "\n")
}

// RenderGradientBar renders a bar filled to percent with a blue to red gradient.
func RenderGradientBar(percent float64, width int) string {
	if width < 1 {
		return ""
	}

	filled := int(float64(width) * percent / 100)
	filled = min(max(filled, 0), width)

	var b strings.Builder
	for i := range width {
		if i < filled {
			t := float64(i) / float64(max(1, width-1))
			color := interpolateColor(gradientFrom, gradientTo, t)
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("█"))
		} else {
			b.WriteString(lipgloss.NewStyle().Foreground(styles.Subtle).Render("░"))
		}
	}
	return b.String()
}

func interpolateColor(fromHex, toHex string, t float64) string {
	from := hexToRGB(fromHex)
	to := hexToRGB(toHex)

	r := int(float64(from[0]) + t*(float64(to[0])-float64(from[0])))
	g := int(float64(from[1]) + t*(float64(to[1])-float64(from[1])))
	b := int(float64(from[2]) + t*(float64(to[2])-float64(from[2])))

	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

func hexToRGB(hex string) [3]int {
	hex = strings.TrimPrefix(hex, "#")
	var r, g, b int
	if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b); err != nil {
		logger.Error("failed to parse hex color", "hex", hex, "error", err)
		return [3]int{0, 0, 0}
	}
	return [3]int{r, g, b}
}
