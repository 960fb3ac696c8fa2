package analysis

import (
	"slices"

	"github.com/j-veylop/lotto-dashboard-tui/internal/models"
)

// Bounds used when scoring a generated combination.
const (
	scoreSumMin    = 80
	scoreSumMax    = 150
	scoreMaxRunCap = 2
)

// AnalyzePatterns computes consecutive-run coverage, odd/even split, sum
// bucket and ending-digit signature ratios. Only draws with all six winning
// numbers are analysed; an empty result has every ratio at zero.
func AnalyzePatterns(history models.DrawHistory) models.PatternStats {
	p := models.PatternStats{
		Consecutive:  make(map[int]float64, len(models.ConsecutiveThresholds)),
		OddEven:      make(map[models.OddEven]float64, models.PickSize+1),
		SumRanges:    make(map[string]float64, len(models.SumRanges)+1),
		EndingDigits: make(map[models.EndingDigits]float64),
	}
	for _, t := range models.ConsecutiveThresholds {
		p.Consecutive[t] = 0
	}
	for odd := 0; odd <= models.PickSize; odd++ {
		p.OddEven[models.OddEven{Odd: odd, Even: models.PickSize - odd}] = 0
	}
	for _, r := range models.SumRanges {
		p.SumRanges[r.Label] = 0
	}
	p.SumRanges[models.SumRangeOther] = 0

	for _, d := range history {
		if !d.Complete() {
			continue
		}
		nums := d.Numbers()
		slices.Sort(nums)
		p.Draws++

		run := MaxRun(nums)
		for _, t := range models.ConsecutiveThresholds {
			if run >= t {
				p.Consecutive[t]++
			}
		}
		p.OddEven[SplitOddEven(nums)]++
		p.SumRanges[models.SumRangeLabel(sum(nums))]++
		p.EndingDigits[EndingSignature(nums)]++
	}

	if p.Draws == 0 {
		return p
	}

	total := float64(p.Draws)
	for k, v := range p.Consecutive {
		p.Consecutive[k] = v / total
	}
	for k, v := range p.OddEven {
		p.OddEven[k] = v / total
	}
	for k, v := range p.SumRanges {
		p.SumRanges[k] = v / total
	}
	for k, v := range p.EndingDigits {
		p.EndingDigits[k] = v / total
	}
	return p
}

// ScoreCombination reports the pattern bonuses of a combination. The score is
// informational; generators never reject a combination because of it.
func ScoreCombination(c models.Combination, patterns models.PatternStats) models.PatternScore {
	nums := c.Numbers()
	split := SplitOddEven(nums)
	total := c.Sum()
	run := MaxRun(nums)

	return models.PatternScore{
		OddEven:        split,
		OddEvenRatio:   patterns.OddEven[split],
		Sum:            total,
		SumInRange:     total >= scoreSumMin && total <= scoreSumMax,
		MaxRun:         run,
		LowConsecutive: run <= scoreMaxRunCap,
	}
}

// MaxRun returns the longest run of consecutive integers in sorted nums.
func MaxRun(nums []int) int {
	if len(nums) == 0 {
		return 0
	}
	longest, current := 1, 1
	for i := 1; i < len(nums); i++ {
		if nums[i] == nums[i-1]+1 {
			current++
			longest = max(longest, current)
		} else {
			current = 1
		}
	}
	return longest
}

// SplitOddEven counts odd and even numbers.
func SplitOddEven(nums []int) models.OddEven {
	var split models.OddEven
	for _, n := range nums {
		if n%2 == 1 {
			split.Odd++
		} else {
			split.Even++
		}
	}
	return split
}

// EndingSignature sorts the last digit of each of six numbers.
func EndingSignature(nums []int) models.EndingDigits {
	var sig models.EndingDigits
	for i := 0; i < len(sig) && i < len(nums); i++ {
		sig[i] = nums[i] % 10
	}
	slices.Sort(sig[:])
	return sig
}

func sum(nums []int) int {
	total := 0
	for _, n := range nums {
		total += n
	}
	return total
}
