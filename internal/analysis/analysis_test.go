package analysis

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/j-veylop/lotto-dashboard-tui/internal/models"
)

func draw(number int, bonus int, winning ...int) models.Draw {
	d := models.Draw{Number: number, Bonus: bonus}
	copy(d.Winning[:], winning)
	return d
}

func singleDrawHistory() models.DrawHistory {
	return models.DrawHistory{draw(1, 7, 1, 2, 3, 4, 5, 6)}
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

// syntheticHistory builds n complete draws with a fixed seed.
func syntheticHistory(t *testing.T, n int) models.DrawHistory {
	t.Helper()
	rng := newRand(7)
	history := make(models.DrawHistory, 0, n)
	for i := 1; i <= n; i++ {
		nums := sampleDistinct(fullUniverse(), 7, nil, rng)
		history = append(history, draw(i, nums[6], nums[:6]...))
	}
	return history
}

func TestComputeNumberStats_SingleDraw(t *testing.T) {
	stats, err := ComputeNumberStats(singleDrawHistory())
	require.NoError(t, err)
	require.Len(t, stats, models.MaxNumber)

	for n := 1; n <= 6; n++ {
		assert.Equal(t, 1, stats[n].Frequency, "frequency of %d", n)
		assert.Equal(t, 0, stats[n].Gap, "gap of %d", n)
	}
	for n := 7; n <= models.MaxNumber; n++ {
		assert.Equal(t, 0, stats[n].Frequency, "frequency of %d", n)
		assert.Equal(t, 1, stats[n].Gap, "gap of %d", n)
	}
}

func TestComputeNumberStats_Gaps(t *testing.T) {
	history := models.DrawHistory{
		draw(1, 45, 1, 2, 3, 4, 5, 6),
		draw(2, 44, 1, 10, 11, 12, 13, 14),
		draw(3, 43, 20, 21, 22, 23, 24, 25),
	}

	stats, err := ComputeNumberStats(history)
	require.NoError(t, err)

	assert.Equal(t, 2, stats[1].Frequency)
	assert.Equal(t, 1, stats[1].Gap)
	assert.Equal(t, 2, stats[2].Gap)
	assert.Equal(t, 0, stats[20].Gap)
	assert.Equal(t, 3, stats[45].Gap, "bonus numbers do not count")

	total := 0
	for _, st := range stats {
		assert.GreaterOrEqual(t, st.Gap, 0)
		assert.LessOrEqual(t, st.Gap, len(history))
		total += st.Frequency
	}
	assert.Equal(t, 18, total)
}

func TestComputeNumberStats_AbsentSlots(t *testing.T) {
	history := models.DrawHistory{
		draw(1, 0, 1, 2, 0, 4, 5, 6),
		draw(2, 0, 0, 0, 0, 0, 0, 0),
	}

	stats, err := ComputeNumberStats(history)
	require.NoError(t, err)
	assert.Equal(t, 1, stats[1].Frequency)
	assert.Equal(t, 1, stats[1].Gap)
	assert.Equal(t, 2, stats[3].Gap)
}

func TestComputeNumberStats_InvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		history models.DrawHistory
	}{
		{"empty", nil},
		{"no numeric slots", models.DrawHistory{draw(1, 0)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeNumberStats(tt.history)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestAnalyzePatterns_SingleDraw(t *testing.T) {
	p := AnalyzePatterns(singleDrawHistory())

	assert.Equal(t, 1, p.Draws)
	for _, th := range models.ConsecutiveThresholds {
		assert.InDelta(t, 1.0, p.Consecutive[th], 1e-9, "threshold %d", th)
	}
	assert.InDelta(t, 1.0, p.OddEven[models.OddEven{Odd: 3, Even: 3}], 1e-9)
	assert.InDelta(t, 1.0, p.SumRanges["21-50"], 1e-9)
	assert.InDelta(t, 0.0, p.SumRanges[models.SumRangeOther], 1e-9)
	assert.InDelta(t, 1.0, p.EndingDigits[models.EndingDigits{1, 2, 3, 4, 5, 6}], 1e-9)
}

func TestAnalyzePatterns_RatiosSumToOne(t *testing.T) {
	history := syntheticHistory(t, 200)
	p := AnalyzePatterns(history)
	require.Equal(t, 200, p.Draws)

	sumOf := func(m map[string]float64) float64 {
		total := 0.0
		for _, v := range m {
			total += v
		}
		return total
	}

	oddEven := 0.0
	for _, v := range p.OddEven {
		oddEven += v
	}
	endings := 0.0
	for _, v := range p.EndingDigits {
		endings += v
	}

	assert.InDelta(t, 1.0, oddEven, 1e-9)
	assert.InDelta(t, 1.0, sumOf(p.SumRanges), 1e-9)
	assert.InDelta(t, 1.0, endings, 1e-9)
	assert.Len(t, p.OddEven, models.PickSize+1)
	assert.Len(t, p.SumRanges, len(models.SumRanges)+1)

	for i := 1; i < len(models.ConsecutiveThresholds); i++ {
		lo := models.ConsecutiveThresholds[i-1]
		hi := models.ConsecutiveThresholds[i]
		assert.GreaterOrEqual(t, p.Consecutive[lo], p.Consecutive[hi])
	}
}

func TestAnalyzePatterns_SkipsIncompleteDraws(t *testing.T) {
	history := models.DrawHistory{
		draw(1, 0, 10, 20, 30, 40, 41, 0),
		draw(2, 0, 10, 20, 30, 40, 41, 43),
	}
	p := AnalyzePatterns(history)
	assert.Equal(t, 1, p.Draws)
	assert.InDelta(t, 1.0, p.Consecutive[2], 1e-9)
	assert.InDelta(t, 0.0, p.Consecutive[3], 1e-9)
}

func TestAnalyzePatterns_Empty(t *testing.T) {
	p := AnalyzePatterns(nil)
	assert.Equal(t, 0, p.Draws)
	for _, v := range p.SumRanges {
		assert.Zero(t, v)
	}
	assert.Empty(t, p.EndingDigits)
}

func TestMaxRun(t *testing.T) {
	tests := []struct {
		nums []int
		want int
	}{
		{nil, 0},
		{[]int{5}, 1},
		{[]int{1, 3, 5, 7, 9, 11}, 1},
		{[]int{1, 2, 4, 5, 6, 9}, 3},
		{[]int{40, 41, 42, 43, 44, 45}, 6},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MaxRun(tt.nums), "MaxRun(%v)", tt.nums)
	}
}

func TestEndingSignature(t *testing.T) {
	sig := EndingSignature([]int{10, 21, 13, 33, 45, 9})
	assert.Equal(t, models.EndingDigits{0, 1, 3, 3, 5, 9}, sig)
	assert.Equal(t, "0-1-3-3-5-9", sig.String())
}

func TestScoreCombination(t *testing.T) {
	patterns := AnalyzePatterns(singleDrawHistory())
	c, err := models.NewCombination([]int{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)

	score := ScoreCombination(c, patterns)
	assert.Equal(t, models.OddEven{Odd: 3, Even: 3}, score.OddEven)
	assert.InDelta(t, 1.0, score.OddEvenRatio, 1e-9)
	assert.Equal(t, 21, score.Sum)
	assert.False(t, score.SumInRange)
	assert.Equal(t, 6, score.MaxRun)
	assert.False(t, score.LowConsecutive)
}

func TestRankNumbers_TieBreak(t *testing.T) {
	stats, err := ComputeNumberStats(singleDrawHistory())
	require.NoError(t, err)

	ranked := RankNumbers(stats)
	require.Len(t, ranked, models.MaxNumber)

	// 7..45 score 0+2*1 = 2, ahead of 1..6 which score 1+2*0 = 1.
	assert.Equal(t, 7, ranked[0].Number)
	assert.Equal(t, 45, ranked[38].Number)
	assert.Equal(t, 1, ranked[39].Number)

	pool := CandidatePool(stats, DefaultPoolSize)
	assert.Equal(t, []int{7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24, 25, 26}, pool)
}

func TestStatisticalGenerator_Generate(t *testing.T) {
	history := syntheticHistory(t, 100)
	stats, err := ComputeNumberStats(history)
	require.NoError(t, err)
	patterns := AnalyzePatterns(history)

	gen := NewStatisticalGenerator(0)
	require.Equal(t, DefaultPoolSize, gen.PoolSize())

	pool := CandidatePool(stats, gen.PoolSize())
	rng := newRand(1)
	for range 50 {
		pick, err := gen.Generate(stats, patterns, rng)
		require.NoError(t, err)
		for i, n := range pick.Combination {
			assert.Contains(t, pool, n)
			if i > 0 {
				assert.Less(t, pick.Combination[i-1], n)
			}
		}
		assert.Equal(t, pick.Combination.Sum(), pick.Score.Sum)
	}
}

func TestStatisticalGenerator_PoolSizeClamp(t *testing.T) {
	assert.Equal(t, models.MaxNumber, NewStatisticalGenerator(100).PoolSize())
	assert.Equal(t, 8, NewStatisticalGenerator(8).PoolSize())
}

func TestPickFromPool_FillsFromComplement(t *testing.T) {
	c, err := pickFromPool([]int{3, 9}, fullUniverse(), newRand(3))
	require.NoError(t, err)
	assert.True(t, c.Contains(3))
	assert.True(t, c.Contains(9))
}

func TestPickFromPool_Exhausted(t *testing.T) {
	_, err := pickFromPool([]int{1, 2}, []int{1, 2, 3, 4}, newRand(3))
	assert.ErrorIs(t, err, ErrGenerationExhausted)
}

func TestFitClusters_Deterministic(t *testing.T) {
	history := syntheticHistory(t, 120)
	opts := DefaultFitOptions()

	var calls int
	opts.Progress = func(done, total int) {
		calls++
		assert.Equal(t, MinRestarts, total)
	}

	a, err := FitClusters(history, opts)
	require.NoError(t, err)
	b, err := FitClusters(history, DefaultFitOptions())
	require.NoError(t, err)

	assert.Equal(t, MinRestarts, calls)
	assert.Equal(t, DefaultClusters, a.K())
	assert.Equal(t, a.Centroids(), b.Centroids())
	assert.InDelta(t, a.Inertia(), b.Inertia(), 1e-9)
	assert.Equal(t, 120, a.Draws())

	size := 0
	for _, s := range a.Sizes() {
		size += s
	}
	assert.Equal(t, 120, size)
}

func TestFitClusters_Errors(t *testing.T) {
	tests := []struct {
		name    string
		history models.DrawHistory
		k       int
	}{
		{"zero clusters", singleDrawHistory(), 0},
		{"fewer draws than clusters", singleDrawHistory(), 2},
		{"incomplete draw", models.DrawHistory{draw(1, 0, 1, 2, 3, 4, 5, 0)}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultFitOptions()
			opts.K = tt.k
			_, err := FitClusters(tt.history, opts)
			assert.ErrorIs(t, err, ErrModelFit)
		})
	}
}

func TestClusterModel_SingleCluster(t *testing.T) {
	history := models.DrawHistory{
		draw(1, 0, 1, 2, 3, 4, 5, 6),
		draw(2, 0, 3, 4, 5, 6, 7, 8),
	}
	opts := DefaultFitOptions()
	opts.K = 1

	m, err := FitClusters(history, opts)
	require.NoError(t, err)
	assert.Equal(t, []Vector{{2, 3, 4, 5, 6, 7}}, m.Centroids())

	c, err := m.Sample(newRand(9))
	require.NoError(t, err)
	assert.Equal(t, models.Combination{2, 3, 4, 5, 6, 7}, c)
}

func TestClusterModel_SampleFillsCollapsedCentroid(t *testing.T) {
	m := &ClusterModel{centroids: []Vector{{1, 1, 1, 2, 2, 2}}}
	c, err := m.Sample(newRand(11))
	require.NoError(t, err)
	assert.True(t, c.Contains(1))
	assert.True(t, c.Contains(2))
}

func TestClusterModel_SampleValid(t *testing.T) {
	m, err := FitClusters(syntheticHistory(t, 60), DefaultFitOptions())
	require.NoError(t, err)

	rng := newRand(5)
	for range 50 {
		c, err := m.Sample(rng)
		require.NoError(t, err)
		_, err = models.NewCombination(c.Numbers())
		assert.NoError(t, err)
	}
}

func TestMatchDraw(t *testing.T) {
	d := draw(1, 7, 1, 2, 3, 4, 5, 6)
	tests := []struct {
		name string
		nums []int
		want models.Tier
		ok   bool
	}{
		{"six", []int{1, 2, 3, 4, 5, 6}, models.TierFirst, true},
		{"five plus bonus", []int{1, 2, 3, 4, 5, 7}, models.TierSecond, true},
		{"five", []int{1, 2, 3, 4, 5, 8}, models.TierThird, true},
		{"four", []int{1, 2, 3, 4, 7, 8}, models.TierFourth, true},
		{"three", []int{1, 2, 3, 10, 11, 12}, models.TierFifth, true},
		{"two", []int{1, 2, 10, 11, 12, 13}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := models.NewCombination(tt.nums)
			require.NoError(t, err)
			got, ok := MatchDraw(c, d)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatchDraw_AbsentBonus(t *testing.T) {
	c, err := models.NewCombination([]int{1, 2, 3, 4, 5, 7})
	require.NoError(t, err)
	got, ok := MatchDraw(c, draw(1, 0, 1, 2, 3, 4, 5, 6))
	require.True(t, ok)
	assert.Equal(t, models.TierThird, got)
}

func TestEvaluate(t *testing.T) {
	c, err := models.NewCombination([]int{1, 2, 3, 4, 5, 7})
	require.NoError(t, err)

	tally := Evaluate(c, singleDrawHistory())
	assert.Equal(t, models.HitTally{
		models.TierFirst:  0,
		models.TierSecond: 1,
		models.TierThird:  0,
		models.TierFourth: 0,
		models.TierFifth:  0,
	}, tally)

	history := append(singleDrawHistory(), draw(2, 45, 1, 2, 3, 40, 41, 42), draw(3, 45, 30, 31, 32, 33, 34, 35))
	tally = Evaluate(c, history)
	assert.Equal(t, 1, tally[models.TierSecond])
	assert.Equal(t, 1, tally[models.TierFifth])
	assert.Equal(t, 2, tally.Total())

	assert.Len(t, WinningDraws(c, history, models.TierFifth), 2)
	assert.Len(t, WinningDraws(c, history, models.TierFirst), 0)
}
