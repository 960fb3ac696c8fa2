package analysis

import (
	"fmt"

	"github.com/j-veylop/lotto-dashboard-tui/internal/models"
)

// ComputeNumberStats returns the frequency and gap of every number 1..45.
//
// Frequency counts each present winning slot. Gap is the distance from the
// newest draw (0) back to the latest draw containing the number, or the
// history length when the number never appeared. Absent slots are skipped
// one value at a time; the draw still counts toward gap distance.
func ComputeNumberStats(history models.DrawHistory) (models.NumberStats, error) {
	if len(history) == 0 {
		return nil, fmt.Errorf("%w: empty draw history", ErrInvalidInput)
	}

	stats := make(models.NumberStats, models.MaxNumber)
	for n := models.MinNumber; n <= models.MaxNumber; n++ {
		stats[n] = models.NumberStat{Number: n, Gap: len(history)}
	}

	present := 0
	for _, d := range history {
		for _, n := range d.Winning {
			if !inRange(n) {
				continue
			}
			st := stats[n]
			st.Frequency++
			stats[n] = st
			present++
		}
	}
	if present == 0 {
		return nil, fmt.Errorf("%w: history has no numeric winning numbers", ErrInvalidInput)
	}

	var seen [models.MaxNumber + 1]bool
	for dist := 0; dist < len(history); dist++ {
		d := history[len(history)-1-dist]
		for _, n := range d.Winning {
			if !inRange(n) || seen[n] {
				continue
			}
			seen[n] = true
			st := stats[n]
			st.Gap = dist
			stats[n] = st
		}
	}

	return stats, nil
}

func inRange(n int) bool {
	return n >= models.MinNumber && n <= models.MaxNumber
}
