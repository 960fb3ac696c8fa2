package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/j-veylop/lotto-dashboard-tui/internal/analysis"
	"github.com/j-veylop/lotto-dashboard-tui/internal/models"
	svc "github.com/j-veylop/lotto-dashboard-tui/internal/services/recommend"
)

// clusterSummary is the JSON form of a fitted cluster model.
type clusterSummary struct {
	K          int         `json:"k"`
	Centroids  [][]float64 `json:"centroids"`
	Sizes      []int       `json:"sizes"`
	Inertia    float64     `json:"inertia"`
	Iterations int         `json:"iterations"`
	Draws      int         `json:"draws"`
}

func summarizeClusters(cm *analysis.ClusterModel) clusterSummary {
	centroids := make([][]float64, 0, cm.K())
	for _, c := range cm.Centroids() {
		centroids = append(centroids, c[:])
	}
	return clusterSummary{
		K:          cm.K(),
		Centroids:  centroids,
		Sizes:      cm.Sizes(),
		Inertia:    cm.Inertia(),
		Iterations: cm.Iterations(),
		Draws:      cm.Draws(),
	}
}

func formatNumbers(nums []int) string {
	parts := make([]string, len(nums))
	for i, n := range nums {
		if n == 0 {
			parts[i] = "--"
			continue
		}
		parts[i] = fmt.Sprintf("%2d", n)
	}
	return strings.Join(parts, " ")
}

func formatTally(h models.HitTally) string {
	parts := make([]string, len(models.Tiers))
	for i, t := range models.Tiers {
		parts[i] = fmt.Sprintf("%s:%d", t, h[t])
	}
	return strings.Join(parts, " ")
}

func formatLatest(d *models.Draw) string {
	if d == nil {
		return "no draws"
	}
	out := fmt.Sprintf("#%d  %s", d.Number, formatNumbers(d.Winning[:]))
	if d.HasBonus() {
		out += fmt.Sprintf(" + %2d", d.Bonus)
	}
	return out
}

func printRecommendation(w io.Writer, rec *svc.Recommendation) {
	fmt.Fprintf(w, "%s sets from %d draws (batch %s)\n", rec.ModelType.Label(), rec.TotalDraws, rec.BatchID)
	fmt.Fprintf(w, "Latest draw: %s\n\n", formatLatest(rec.Latest))

	for i, set := range rec.Sets {
		line := fmt.Sprintf("%2d. %s   %s", i+1, formatNumbers(set.Numbers.Numbers()), formatTally(set.Hits))
		if set.LatestTier.Valid() {
			line += "   latest: " + set.LatestTier.String()
		}
		fmt.Fprintln(w, line)
		if s := set.PatternScore; s != nil {
			fmt.Fprintf(w, "    odd:even %s, sum %d, run %d, score %.2f\n", s.OddEven, s.Sum, s.MaxRun, s.Total())
		}
	}
}

func printEvaluation(w io.Writer, ev *svc.Evaluation) {
	fmt.Fprintf(w, "Numbers:     %s\n", formatNumbers(ev.Combination.Numbers()))
	fmt.Fprintf(w, "Latest draw: %s\n", formatLatest(ev.Latest))
	if ev.LatestTier.Valid() {
		fmt.Fprintf(w, "Latest win:  %s\n", ev.LatestTier)
	}
	fmt.Fprintf(w, "Hits:        %s\n", formatTally(ev.Hits))

	if best, ok := ev.Hits.Best(); ok {
		fmt.Fprintf(w, "Best result: %s prize, %d wins in total\n", best, ev.Hits.Total())
		for _, d := range ev.Wins {
			tier, _ := analysis.MatchDraw(ev.Combination, d)
			fmt.Fprintf(w, "  %-4s %s\n", tier, formatLatest(&d))
		}
		return
	}
	fmt.Fprintln(w, "Best result: no prize in the history")
}

func formatStats(stats []models.NumberStat) string {
	parts := make([]string, len(stats))
	for i, s := range stats {
		parts[i] = fmt.Sprintf("%d (f%d g%d)", s.Number, s.Frequency, s.Gap)
	}
	return strings.Join(parts, ", ")
}

func printRatios(w io.Writer, title string, entries []models.RatioEntry) {
	fmt.Fprintf(w, "\n%s\n", title)
	for _, e := range entries {
		fmt.Fprintf(w, "  %-12s %5.1f%%\n", e.Label, e.Ratio*100)
	}
}

func printOverview(w io.Writer, o *svc.Overview) {
	fmt.Fprintf(w, "%d draws analysed, latest %s\n\n", o.TotalDraws, formatLatest(o.Latest))
	fmt.Fprintf(w, "Hot:     %s\n", formatStats(o.Hot))
	fmt.Fprintf(w, "Cold:    %s\n", formatStats(o.Cold))
	fmt.Fprintf(w, "Overdue: %s\n", formatStats(o.Overdue))

	fmt.Fprintln(w, "\nTop scores (frequency + 2 x gap)")
	for i, s := range o.Ranked {
		if i == 10 {
			break
		}
		fmt.Fprintf(w, "  %2d  score %3d  freq %3d  gap %3d\n", s.Number, s.Score(), s.Frequency, s.Gap)
	}

	printRatios(w, "Odd:Even", o.Patterns.OddEvenTable())
	printRatios(w, "Consecutive runs", o.Patterns.ConsecutiveTable())
	printRatios(w, "Sum ranges", o.Patterns.SumRangeTable())
	printRatios(w, "Ending digits", o.Patterns.TopEndingDigits(5))
}

func printClusters(w io.Writer, cm *analysis.ClusterModel) {
	fmt.Fprintf(w, "\nClusters: k=%d over %d draws, inertia %.1f, %d iterations\n",
		cm.K(), cm.Draws(), cm.Inertia(), cm.Iterations())

	sizes := cm.Sizes()
	for i, c := range cm.Centroids() {
		vals := make([]string, len(c))
		for j, v := range c {
			vals[j] = fmt.Sprintf("%5.1f", v)
		}
		fmt.Fprintf(w, "  %d. [%s]  %d draws\n", i+1, strings.Join(vals, " "), sizes[i])
	}
}
