package recommend

import (
	"encoding/json"
	"math/rand/v2"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/j-veylop/lotto-dashboard-tui/internal/analysis"
	"github.com/j-veylop/lotto-dashboard-tui/internal/models"
)

type staticSource struct {
	history models.DrawHistory
	calls   int
}

func (s *staticSource) History() models.DrawHistory {
	s.calls++
	return s.history
}

func syntheticHistory(n int) models.DrawHistory {
	rng := rand.New(rand.NewPCG(3, 3))
	h := make(models.DrawHistory, 0, n)
	for i := 1; i <= n; i++ {
		perm := rng.Perm(models.MaxNumber)
		d := models.Draw{Number: i, Bonus: perm[6] + 1}
		for j := range models.PickSize {
			d.Winning[j] = perm[j] + 1
		}
		h = append(h, d)
	}
	return h
}

func newTestService(t *testing.T, h models.DrawHistory) (*Service, *staticSource) {
	t.Helper()
	src := &staticSource{history: h}
	return New(src, Options{Seed: 1}), src
}

func TestGenerate_Statistical(t *testing.T) {
	svc, _ := newTestService(t, syntheticHistory(80))

	rec, err := svc.Generate(Request{ModelType: models.ModelStatistical, NumSets: 3})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, rec.BatchID)
	assert.Equal(t, models.ModelStatistical, rec.ModelType)
	assert.Equal(t, 80, rec.TotalDraws)
	require.NotNil(t, rec.Latest)
	assert.Equal(t, 80, rec.Latest.Number)
	require.Len(t, rec.Sets, 3)

	for _, set := range rec.Sets {
		assert.Len(t, set.Hits, len(models.Tiers))
		require.NotNil(t, set.PatternScore)
		assert.Equal(t, set.Numbers.Sum(), set.PatternScore.Sum)
	}
}

func TestGenerate_KMeans(t *testing.T) {
	svc, _ := newTestService(t, syntheticHistory(60))

	var progress []int
	svc.SetFitProgress(func(done, total int) { progress = append(progress, done) })

	rec, err := svc.Generate(Request{ModelType: models.ModelKMeans, NumSets: 2})
	require.NoError(t, err)
	require.Len(t, rec.Sets, 2)
	for _, set := range rec.Sets {
		assert.Nil(t, set.PatternScore)
	}
	assert.Len(t, progress, analysis.MinRestarts)

	m1, err := svc.ClusterModel()
	require.NoError(t, err)
	m2, err := svc.ClusterModel()
	require.NoError(t, err)
	assert.Same(t, m1, m2, "model is fitted once per snapshot")
}

func TestGenerate_Defaults(t *testing.T) {
	svc, _ := newTestService(t, syntheticHistory(20))

	rec, err := svc.Generate(Request{})
	require.NoError(t, err)
	assert.Equal(t, models.ModelStatistical, rec.ModelType)
	assert.Len(t, rec.Sets, 5)
}

func TestGenerate_InvalidRequests(t *testing.T) {
	svc, _ := newTestService(t, syntheticHistory(20))

	_, err := svc.Generate(Request{ModelType: "neural"})
	assert.ErrorIs(t, err, ErrUnknownModelType)

	_, err = svc.Generate(Request{NumSets: -1})
	assert.ErrorIs(t, err, ErrInvalidNumSets)

	_, err = svc.Generate(Request{NumSets: MaxNumSets + 1})
	assert.ErrorIs(t, err, ErrInvalidNumSets)
}

func TestGenerate_EmptyHistory(t *testing.T) {
	svc, _ := newTestService(t, nil)

	_, err := svc.Generate(Request{})
	assert.ErrorIs(t, err, analysis.ErrInvalidInput)
}

func TestSnapshot_CachedUntilInvalidated(t *testing.T) {
	svc, src := newTestService(t, syntheticHistory(20))

	a, err := svc.Snapshot()
	require.NoError(t, err)
	b, err := svc.Snapshot()
	require.NoError(t, err)
	assert.Same(t, a, b)
	assert.Equal(t, 1, src.calls)

	src.history = syntheticHistory(25)
	svc.Invalidate()

	c, err := svc.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, 2, src.calls)
	assert.Len(t, c.History, 25)
	assert.NotEqual(t, a.Fingerprint, c.Fingerprint)
}

func TestEvaluate(t *testing.T) {
	h := models.DrawHistory{{Number: 1, Winning: [models.PickSize]int{1, 2, 3, 4, 5, 6}, Bonus: 7}}
	svc, _ := newTestService(t, h)

	c, err := models.NewCombination([]int{1, 2, 3, 4, 5, 7})
	require.NoError(t, err)

	ev, err := svc.Evaluate(c)
	require.NoError(t, err)
	assert.Equal(t, 1, ev.Hits[models.TierSecond])
	assert.Equal(t, models.TierSecond, ev.LatestTier)
	require.NotNil(t, ev.Latest)
	assert.Equal(t, 1, ev.Latest.Number)
	require.Len(t, ev.Wins, 1)
	assert.Equal(t, 1, ev.Wins[0].Number)
}

func TestStatistics(t *testing.T) {
	h := models.DrawHistory{{Number: 1, Winning: [models.PickSize]int{1, 2, 3, 4, 5, 6}, Bonus: 7}}
	svc, _ := newTestService(t, h)

	ov, err := svc.Statistics()
	require.NoError(t, err)

	assert.Equal(t, 1, ov.TotalDraws)
	require.Len(t, ov.Hot, summarySize)
	assert.Equal(t, 1, ov.Hot[0].Number)
	assert.Equal(t, 7, ov.Cold[0].Number)
	assert.Equal(t, 7, ov.Overdue[0].Number)
	assert.Equal(t, 7, ov.Ranked[0].Number)
	assert.Len(t, ov.Stats, models.MaxNumber)
}

func TestRecommendation_JSON(t *testing.T) {
	svc, _ := newTestService(t, syntheticHistory(20))
	rec, err := svc.Generate(Request{NumSets: 1})
	require.NoError(t, err)

	data, err := json.Marshal(rec)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "batch_id")
	assert.Equal(t, "statistical", decoded["model_type"])

	sets := decoded["sets"].([]any)
	hits := sets[0].(map[string]any)["hits"].(map[string]any)
	assert.Contains(t, hits, "1st")
	assert.Contains(t, hits, "5th")
}
