package recommend

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/lotto-dashboard-tui/internal/app"
	"github.com/j-veylop/lotto-dashboard-tui/internal/models"
	svc "github.com/j-veylop/lotto-dashboard-tui/internal/services/recommend"
	"github.com/j-veylop/lotto-dashboard-tui/internal/ui/components"
	"github.com/j-veylop/lotto-dashboard-tui/internal/ui/styles"
)

// View renders the recommend tab.
func (m *Model) View() string {
	if m.state.IsInitialLoading() {
		return components.RenderSpinnerCentered(m.spinner, m.width, m.height)
	}

	sections := []string{
		m.renderTitle(),
		m.renderControls(),
		m.renderRecommendation(),
		m.renderCheck(),
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

// renderTitle renders the recommend tab title.
func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Recommendations")
	subtitle := styles.HelpStyle.Render(
		fmt.Sprintf("6/45 picks scored against %d historical draws", m.state.GetDrawCount()),
	)
	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

// renderControls renders the generator settings and any running work.
func (m *Model) renderControls() string {
	label := lipgloss.NewStyle().Width(8).Foreground(styles.TextMuted)
	value := lipgloss.NewStyle().Foreground(styles.TextPrimary).Bold(true)

	rows := []string{
		styles.CardTitleStyle.Render("Generator"),
		"",
		label.Render("Model:") + " " + value.Render(m.modelType.Label()) +
			styles.HelpStyle.Render("  (m to switch)"),
		label.Render("Sets:") + " " + value.Render(fmt.Sprintf("%d", m.numSets)) +
			styles.HelpStyle.Render(fmt.Sprintf("  (+/- between 1 and %d)", svc.MaxNumSets)),
	}

	if m.state.IsLoading(app.ResourceGenerate) {
		rows = append(rows, "", m.spinner.ViewWithLabel())
		if m.fitting {
			rows = append(rows, m.fit.View())
		}
	}

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

// renderRecommendation renders the most recent batch.
func (m *Model) renderRecommendation() string {
	rec := m.state.GetRecommendation()
	if rec == nil {
		content := lipgloss.JoinVertical(lipgloss.Left,
			styles.CardTitleStyle.Render("Sets"),
			"",
			styles.HelpStyle.Render("No sets generated yet"),
			styles.InfoTextStyle.Render("  ╰─▶ Press 'g' to generate"),
		)
		return styles.CardStyle.Width(m.cardWidth()).Render(content)
	}

	header := fmt.Sprintf("%s sets  %s",
		rec.ModelType.Label(),
		styles.HelpStyle.Render(fmt.Sprintf("batch %s at %s",
			shortID(rec.BatchID.String()), rec.GeneratedAt.Format("15:04:05"))),
	)

	rows := []string{styles.CardTitleStyle.Render(header), ""}
	if rec.Latest != nil {
		rows = append(rows,
			styles.HelpStyle.Render(fmt.Sprintf("Latest draw #%d", rec.Latest.Number)),
			components.RenderDraw(*rec.Latest),
			"",
		)
	}

	for i, set := range rec.Sets {
		rows = append(rows, m.renderSet(i+1, set, rec.Latest))
	}

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func (m *Model) renderSet(index int, set svc.Set, latest *models.Draw) string {
	num := lipgloss.NewStyle().Width(4).Foreground(styles.TextMuted).Render(fmt.Sprintf("%d.", index))

	numbers := components.RenderBalls(set.Numbers.Numbers())
	if latest != nil {
		numbers = components.RenderCombinationAgainst(set.Numbers, *latest)
	}

	line := num + numbers + "  " + components.RenderTally(set.Hits)
	if set.LatestTier != 0 {
		line += "  " + styles.GetTierStyle(int(set.LatestTier)).Render("latest: "+set.LatestTier.String())
	}

	if set.PatternScore == nil {
		return line
	}

	ps := set.PatternScore
	detail := fmt.Sprintf("    score %.2f  odd/even %s  sum %d  run %d",
		ps.Total(), ps.OddEven, ps.Sum, ps.MaxRun)
	return lipgloss.JoinVertical(lipgloss.Left, line, styles.HelpStyle.Render(detail))
}

// renderCheck renders the combination check input and its result.
func (m *Model) renderCheck() string {
	rows := []string{styles.CardTitleStyle.Render("Check Numbers"), ""}

	inputStyle := styles.BlurredBorderStyle
	labelText := styles.BlurredStyle.Render("  Six numbers:")
	if m.checking {
		inputStyle = styles.FocusedBorderStyle
		labelText = styles.FocusedStyle.Render("> Six numbers:")
	}
	rows = append(rows, labelText, inputStyle.Width(40).Render(m.checkInput.View()))

	if m.checkErr != "" {
		rows = append(rows, styles.ErrorTextStyle.Render(m.checkErr))
	}

	if ev := m.evaluation; ev != nil {
		rows = append(rows, "")
		if ev.Latest != nil {
			rows = append(rows, components.RenderCombinationAgainst(ev.Combination, *ev.Latest))
		} else {
			rows = append(rows, components.RenderBalls(ev.Combination.Numbers()))
		}
		rows = append(rows, components.RenderTally(ev.Hits))

		if best, ok := ev.Hits.Best(); ok {
			rows = append(rows, styles.SuccessTextStyle.Render(
				fmt.Sprintf("Best result: %s prize, %d wins in total", best, ev.Hits.Total())))
		} else {
			rows = append(rows, styles.HelpStyle.Render("Never won a prize"))
		}
	}

	if !m.checking {
		rows = append(rows, "", styles.HelpStyle.Render("Press 'c' to check a combination"))
	}

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func shortID(id string) string {
	before, _, _ := strings.Cut(id, "-")
	return before
}
