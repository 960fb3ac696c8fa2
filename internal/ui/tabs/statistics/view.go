package statistics

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/lotto-dashboard-tui/internal/app"
	"github.com/j-veylop/lotto-dashboard-tui/internal/models"
	"github.com/j-veylop/lotto-dashboard-tui/internal/services/recommend"
	"github.com/j-veylop/lotto-dashboard-tui/internal/ui/components"
	"github.com/j-veylop/lotto-dashboard-tui/internal/ui/styles"
)

// View renders the statistics tab.
func (m *Model) View() string {
	overview := m.state.GetOverview()
	if overview == nil && (m.state.IsInitialLoading() || m.state.IsLoading(app.ResourceStats)) {
		return components.RenderSpinnerCentered(m.spinner, m.width, m.height)
	}

	sections := []string{m.renderTitle(overview)}
	if overview == nil || overview.TotalDraws == 0 {
		sections = append(sections, m.renderEmptyState())
	} else {
		sections = append(sections,
			m.renderNumberCard(overview),
			m.renderSummaryCard(overview),
			m.renderRankedCard(overview),
			m.renderPatternCard(overview.Patterns),
			m.renderSumCard(),
		)
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) cardWidth() int {
	return max(m.width-6, 50)
}

func (m *Model) card(title string, rows ...string) string {
	titleIcon := lipgloss.NewStyle().Foreground(styles.Primary).Render("◈")
	head := fmt.Sprintf("%s %s", titleIcon, styles.CardTitleStyle.Render(title))
	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, append([]string{head, ""}, rows...)...),
	)
}

// renderTitle renders the statistics tab title.
func (m *Model) renderTitle(o *recommend.Overview) string {
	title := styles.TitleStyle.Render("Statistics")

	sub := "No draws analysed"
	if o != nil && o.TotalDraws > 0 {
		sub = fmt.Sprintf("%d draws analysed", o.TotalDraws)
		if o.Latest != nil {
			sub += fmt.Sprintf(", latest #%d", o.Latest.Number)
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, styles.HelpStyle.Render(sub), "")
}

func (m *Model) renderEmptyState() string {
	return m.card("Numbers",
		styles.HelpStyle.Render("No draw history loaded"),
		styles.InfoTextStyle.Render("  ╰─▶ Import a history CSV or add draws in the Draws tab"),
	)
}

// renderNumberCard renders frequency and gap for every number.
func (m *Model) renderNumberCard(o *recommend.Overview) string {
	if m.chart == chartHeatmap {
		return m.card("Frequency Heatmap",
			components.RenderNumberHeatmap(o.Stats),
			"",
			styles.HelpStyle.Render("t: line chart"),
		)
	}

	chartWidth := max(m.cardWidth()-16, 30)
	return m.card("Frequency and Gap",
		components.RenderNumberChart(o.Stats, chartWidth, 8),
		"",
		components.RenderLegend([]components.LegendItem{
			{Label: "frequency", Color: components.ChartFrequencyColor},
			{Label: "gap", Color: components.ChartGapColor},
		}),
		styles.HelpStyle.Render("t: heatmap"),
	)
}

// renderSummaryCard lists hot, cold and overdue numbers side by side.
func (m *Model) renderSummaryCard(o *recommend.Overview) string {
	colWidth := max((m.cardWidth()-8)/3, 16)
	column := func(title string, style lipgloss.Style, list []models.NumberStat, value func(models.NumberStat) string) string {
		lines := []string{style.Bold(true).Render(title)}
		for _, st := range list {
			lines = append(lines, fmt.Sprintf("%s %s", components.RenderBall(st.Number), styles.HelpStyle.Render(value(st))))
		}
		return lipgloss.NewStyle().Width(colWidth).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
	}

	freq := func(st models.NumberStat) string { return fmt.Sprintf("%d draws", st.Frequency) }
	gap := func(st models.NumberStat) string { return fmt.Sprintf("%d ago", st.Gap) }

	return m.card("Hot, Cold and Overdue",
		lipgloss.JoinHorizontal(lipgloss.Top,
			column("Hot", styles.HotStyle, o.Hot, freq),
			column("Cold", styles.ColdStyle, o.Cold, freq),
			column("Overdue", styles.OverdueStyle, o.Overdue, gap),
		),
	)
}

// renderRankedCard charts the best scoring numbers.
func (m *Model) renderRankedCard(o *recommend.Overview) string {
	top := o.Ranked
	if len(top) > 10 {
		top = top[:10]
	}

	values := make([]float64, len(top))
	labels := make([]string, len(top))
	for i, st := range top {
		values[i] = float64(st.Score())
		labels[i] = strconv.Itoa(st.Number)
	}

	return m.card("Top Scores (frequency + 2 x gap)",
		components.RenderBarChart(values, labels, m.cardWidth()-8, " %.0f"),
	)
}

// renderPatternCard renders the historical pattern ratios.
func (m *Model) renderPatternCard(p models.PatternStats) string {
	width := max((m.cardWidth()-10)/2, 30)
	block := func(title string, entries []models.RatioEntry) string {
		return lipgloss.NewStyle().Width(width).Render(lipgloss.JoinVertical(lipgloss.Left,
			styles.SubTitleStyle.Render(title),
			components.RenderRatioTable(entries, width),
			"",
		))
	}

	left := lipgloss.JoinVertical(lipgloss.Left,
		block("Odd:Even", p.OddEvenTable()),
		block("Consecutive runs", p.ConsecutiveTable()),
	)
	right := lipgloss.JoinVertical(lipgloss.Left,
		block("Sum ranges", p.SumRangeTable()),
		block("Ending digits", p.TopEndingDigits(5)),
	)

	return m.card("Patterns", lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right))
}

// renderSumCard charts the sums of recent complete draws.
func (m *Model) renderSumCard() string {
	sums := drawSums(m.state.GetHistory(), sumWindow)
	if len(sums) == 0 {
		return m.card("Draw Sums", styles.HelpStyle.Render("No complete draws"))
	}

	total := 0.0
	for _, s := range sums {
		total += s
	}
	avg := total / float64(len(sums))

	spark := components.RenderSparkline(sums, m.cardWidth()-8)
	summary := styles.HelpStyle.Render(
		fmt.Sprintf("last %d draws, average %.1f, latest %.0f", len(sums), avg, sums[len(sums)-1]))

	return m.card("Draw Sums",
		lipgloss.NewStyle().Foreground(components.ChartPrimaryColor).Render(spark),
		summary,
		"",
		components.RenderLineChart(sums, max(m.cardWidth()-16, 30), 6, "sum of winning numbers"),
	)
}

// drawSums returns the winning number sums of the last n complete draws in
// draw order.
func drawSums(history models.DrawHistory, n int) []float64 {
	var sums []float64
	for _, d := range history.Sorted() {
		if !d.Complete() {
			continue
		}
		sum := 0
		for _, v := range d.Winning {
			sum += v
		}
		sums = append(sums, float64(sum))
	}
	if len(sums) > n {
		sums = sums[len(sums)-n:]
	}
	return sums
}
