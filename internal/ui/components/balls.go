package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/lotto-dashboard-tui/internal/models"
	"github.com/j-veylop/lotto-dashboard-tui/internal/ui/styles"
)

// RenderBall renders one number on its colour band. Absent numbers render
// as a placeholder.
func RenderBall(n int) string {
	if n == 0 {
		return styles.BallStyle.Background(styles.BgLight).Foreground(styles.TextMuted).Render("--")
	}
	return styles.BallStyle.Background(styles.GetBallColor(n)).Render(fmt.Sprintf("%2d", n))
}

// RenderBalls renders numbers side by side.
func RenderBalls(nums []int) string {
	balls := make([]string, len(nums))
	for i, n := range nums {
		balls[i] = RenderBall(n)
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, balls...)
}

// RenderDraw renders the winning slots of a draw and its bonus number.
func RenderDraw(d models.Draw) string {
	out := RenderBalls(d.Winning[:])
	if d.HasBonus() {
		out += styles.BonusBallStyle.Render(fmt.Sprintf("+ %2d", d.Bonus))
	}
	return out
}

// RenderCombinationAgainst renders a combination with every number that is
// in d highlighted and the rest dimmed.
func RenderCombinationAgainst(c models.Combination, d models.Draw) string {
	parts := make([]string, 0, len(c))
	for _, n := range c {
		switch {
		case d.Contains(n):
			parts = append(parts, styles.HitStyle.Render(fmt.Sprintf("[%2d]", n)))
		case d.HasBonus() && n == d.Bonus:
			parts = append(parts, styles.BonusBallStyle.Render(fmt.Sprintf("(%2d)", n)))
		default:
			parts = append(parts, styles.MissStyle.Render(fmt.Sprintf(" %2d ", n)))
		}
	}
	return strings.Join(parts, "")
}

// RenderTally renders hit counts for every tier, best tier first.
func RenderTally(h models.HitTally) string {
	parts := make([]string, 0, len(models.Tiers))
	for _, t := range models.Tiers {
		count := h[t]
		style := styles.TierNoneStyle
		if count > 0 {
			style = styles.GetTierStyle(int(t))
		}
		parts = append(parts, style.Render(fmt.Sprintf("%s:%d", t, count)))
	}
	return strings.Join(parts, " ")
}
