package analysis

import "github.com/j-veylop/lotto-dashboard-tui/internal/models"

// MatchDraw returns the prize tier c would have won in draw d. Absent winning
// slots never match.
func MatchDraw(c models.Combination, d models.Draw) (models.Tier, bool) {
	matched := 0
	missing := 0
	for _, n := range c {
		if d.Contains(n) {
			matched++
		} else {
			missing = n
		}
	}

	switch matched {
	case 6:
		return models.TierFirst, true
	case 5:
		if d.HasBonus() && missing == d.Bonus {
			return models.TierSecond, true
		}
		return models.TierThird, true
	case 4:
		return models.TierFourth, true
	case 3:
		return models.TierFifth, true
	default:
		return 0, false
	}
}

// Evaluate tallies, per tier, how many historical draws c would have won.
// Draws matching two numbers or fewer are not counted.
func Evaluate(c models.Combination, history models.DrawHistory) models.HitTally {
	tally := models.NewHitTally()
	for _, d := range history {
		if t, ok := MatchDraw(c, d); ok {
			tally[t]++
		}
	}
	return tally
}

// WinningDraws returns the draws in which c would have won at least minTier.
func WinningDraws(c models.Combination, history models.DrawHistory, minTier models.Tier) []models.Draw {
	var out []models.Draw
	for _, d := range history {
		if t, ok := MatchDraw(c, d); ok && t <= minTier {
			out = append(out, d)
		}
	}
	return out
}
