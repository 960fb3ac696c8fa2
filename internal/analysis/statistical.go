package analysis

import (
	"fmt"
	"slices"

	"github.com/j-veylop/lotto-dashboard-tui/internal/models"
)

// DefaultPoolSize is the number of top-scored candidates sampled from.
const DefaultPoolSize = 20

// StatisticalPick is a generated combination with its pattern score.
type StatisticalPick struct {
	Combination models.Combination  `json:"numbers"`
	Score       models.PatternScore `json:"pattern_score"`
}

// StatisticalGenerator samples six numbers from the highest scored candidates,
// where score = frequency + 2*gap.
type StatisticalGenerator struct {
	poolSize int
}

// NewStatisticalGenerator returns a generator with the given pool size.
// Non-positive sizes fall back to DefaultPoolSize.
func NewStatisticalGenerator(poolSize int) *StatisticalGenerator {
	if poolSize <= 0 {
		poolSize = DefaultPoolSize
	}
	return &StatisticalGenerator{poolSize: min(poolSize, models.MaxNumber)}
}

// PoolSize returns the candidate pool size.
func (g *StatisticalGenerator) PoolSize() int {
	return g.poolSize
}

// RankNumbers orders the stats by score descending, ties by ascending number.
func RankNumbers(stats models.NumberStats) []models.NumberStat {
	ranked := stats.Sorted()
	slices.SortStableFunc(ranked, func(a, b models.NumberStat) int {
		if a.Score() != b.Score() {
			return b.Score() - a.Score()
		}
		return a.Number - b.Number
	})
	return ranked
}

// CandidatePool returns the numbers of the size best ranked stats.
func CandidatePool(stats models.NumberStats, size int) []int {
	ranked := RankNumbers(stats)
	if size < len(ranked) {
		ranked = ranked[:size]
	}
	pool := make([]int, len(ranked))
	for i, st := range ranked {
		pool[i] = st.Number
	}
	return pool
}

// Generate picks a combination from the candidate pool and scores it against
// patterns. Missing picks are filled from the rest of 1..45.
func (g *StatisticalGenerator) Generate(
	stats models.NumberStats,
	patterns models.PatternStats,
	rng Rand,
) (StatisticalPick, error) {
	pool := CandidatePool(stats, g.poolSize)
	c, err := pickFromPool(pool, fullUniverse(), rng)
	if err != nil {
		return StatisticalPick{}, err
	}
	return StatisticalPick{
		Combination: c,
		Score:       ScoreCombination(c, patterns),
	}, nil
}

// pickFromPool samples without replacement from pool, then from the part of
// universe not yet chosen.
func pickFromPool(pool, universe []int, rng Rand) (models.Combination, error) {
	chosen := sampleDistinct(pool, models.PickSize, nil, rng)

	if len(chosen) < models.PickSize {
		complement := make([]int, 0, len(universe))
		for _, n := range universe {
			if !slices.Contains(chosen, n) {
				complement = append(complement, n)
			}
		}
		chosen = sampleDistinct(complement, models.PickSize-len(chosen), chosen, rng)
	}

	if len(chosen) < models.PickSize {
		return models.Combination{}, fmt.Errorf("%w: only %d distinct numbers available",
			ErrGenerationExhausted, len(chosen))
	}
	return models.NewCombination(chosen)
}

// sampleDistinct appends up to n values drawn uniformly without replacement
// from candidates to dst, skipping values already in dst.
func sampleDistinct(candidates []int, n int, dst []int, rng Rand) []int {
	pool := slices.Clone(candidates)
	for taken := 0; taken < n && len(pool) > 0; {
		i := rng.IntN(len(pool))
		v := pool[i]
		pool[i] = pool[len(pool)-1]
		pool = pool[:len(pool)-1]
		if slices.Contains(dst, v) {
			continue
		}
		dst = append(dst, v)
		taken++
	}
	return dst
}

func fullUniverse() []int {
	nums := make([]int, 0, models.MaxNumber)
	for n := models.MinNumber; n <= models.MaxNumber; n++ {
		nums = append(nums, n)
	}
	return nums
}
