// Package recommend serves generated combinations, evaluations and
// statistics over a cached analysis of the draw history.
package recommend

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/j-veylop/lotto-dashboard-tui/internal/analysis"
	"github.com/j-veylop/lotto-dashboard-tui/internal/config"
	"github.com/j-veylop/lotto-dashboard-tui/internal/history"
	"github.com/j-veylop/lotto-dashboard-tui/internal/logger"
	"github.com/j-veylop/lotto-dashboard-tui/internal/models"
)

// MaxNumSets caps the number of sets per request.
const MaxNumSets = config.MaxNumSets

// summarySize is the length of the hot, cold and overdue lists.
const summarySize = 6

var (
	// ErrUnknownModelType is returned for a model type other than statistical or kmeans.
	ErrUnknownModelType = errors.New("unknown model type")
	// ErrInvalidNumSets is returned when the requested set count is out of range.
	ErrInvalidNumSets = errors.New("invalid number of sets")
)

// HistorySource supplies the current draw history.
type HistorySource interface {
	History() models.DrawHistory
}

// Options configures the service.
type Options struct {
	PoolSize       int
	Fit            analysis.FitOptions
	DefaultModel   models.ModelType
	DefaultNumSets int
	// Seed fixes the generation random source; 0 seeds from the clock.
	Seed uint64
}

// Request asks for NumSets combinations from one generator. Zero values
// select the configured defaults.
type Request struct {
	ModelType models.ModelType `json:"model_type"`
	NumSets   int              `json:"num_sets"`
}

// Set is one generated combination with its historical performance.
type Set struct {
	Numbers      models.Combination   `json:"numbers"`
	Hits         models.HitTally      `json:"hits"`
	LatestTier   models.Tier          `json:"latest_tier,omitempty"`
	PatternScore *models.PatternScore `json:"pattern_score,omitempty"`
}

// Recommendation is the answer to a Request.
type Recommendation struct {
	BatchID     uuid.UUID        `json:"batch_id"`
	ModelType   models.ModelType `json:"model_type"`
	Sets        []Set            `json:"sets"`
	Latest      *models.Draw     `json:"latest_draw,omitempty"`
	TotalDraws  int              `json:"total_draws"`
	Fingerprint string           `json:"history_fingerprint"`
	GeneratedAt time.Time        `json:"generated_at"`
}

// Evaluation is how a combination would have fared historically.
type Evaluation struct {
	Combination models.Combination `json:"numbers"`
	Hits        models.HitTally    `json:"hits"`
	LatestTier  models.Tier        `json:"latest_tier,omitempty"`
	Latest      *models.Draw       `json:"latest_draw,omitempty"`
	// Wins are the draws that would have paid a prize, oldest first.
	Wins []models.Draw `json:"wins,omitempty"`
}

// Overview summarises the number and pattern statistics.
type Overview struct {
	Stats      models.NumberStats  `json:"stats"`
	Patterns   models.PatternStats `json:"patterns"`
	Latest     *models.Draw        `json:"latest_draw,omitempty"`
	TotalDraws int                 `json:"total_draws"`
	Hot        []models.NumberStat `json:"hot"`
	Cold       []models.NumberStat `json:"cold"`
	Overdue    []models.NumberStat `json:"overdue"`
	Ranked     []models.NumberStat `json:"ranked"`
}

// Snapshot is the analysis of one version of the history.
type Snapshot struct {
	History     models.DrawHistory
	Stats       models.NumberStats
	Patterns    models.PatternStats
	Fingerprint string
	BuiltAt     time.Time
}

// Service caches a Snapshot until Invalidate is called. The cluster model is
// fitted on the first kmeans request against a snapshot.
type Service struct {
	mu        sync.Mutex
	source    HistorySource
	opts      Options
	generator *analysis.StatisticalGenerator
	snapshot  *Snapshot
	clusters  *analysis.ClusterModel

	rngMu sync.Mutex
	rng   *rand.Rand
}

// New creates a recommendation service over source.
func New(source HistorySource, opts Options) *Service {
	if opts.DefaultModel == "" {
		opts.DefaultModel = models.ModelStatistical
	}
	if opts.DefaultNumSets <= 0 {
		opts.DefaultNumSets = 5
	}
	if opts.Fit.K == 0 {
		progress := opts.Fit.Progress
		opts.Fit = analysis.DefaultFitOptions()
		opts.Fit.Progress = progress
	}

	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	return &Service{
		source:    source,
		opts:      opts,
		generator: analysis.NewStatisticalGenerator(opts.PoolSize),
		rng:       rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Invalidate drops the cached snapshot and cluster model.
func (s *Service) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = nil
	s.clusters = nil
}

// SetFitProgress installs a callback reporting cluster fit restarts.
func (s *Service) SetFitProgress(fn func(done, total int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opts.Fit.Progress = fn
}

// Snapshot returns the cached analysis, building it when needed.
func (s *Service) Snapshot() (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Service) snapshotLocked() (*Snapshot, error) {
	if s.snapshot != nil {
		return s.snapshot, nil
	}

	h := s.source.History()
	stats, err := analysis.ComputeNumberStats(h)
	if err != nil {
		return nil, err
	}

	s.snapshot = &Snapshot{
		History:     h,
		Stats:       stats,
		Patterns:    analysis.AnalyzePatterns(h),
		Fingerprint: history.Fingerprint(h),
		BuiltAt:     time.Now(),
	}
	s.clusters = nil
	logger.Debug("analysis snapshot built", "draws", len(h), "fingerprint", s.snapshot.Fingerprint)
	return s.snapshot, nil
}

// ClusterModel returns the cluster model for the current snapshot, fitting
// it when needed.
func (s *Service) ClusterModel() (*analysis.ClusterModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.snapshotLocked()
	if err != nil {
		return nil, err
	}
	return s.clustersLocked(snap)
}

func (s *Service) clustersLocked(snap *Snapshot) (*analysis.ClusterModel, error) {
	if s.clusters != nil {
		return s.clusters, nil
	}

	start := time.Now()
	m, err := analysis.FitClusters(snap.History, s.opts.Fit)
	if err != nil {
		return nil, err
	}
	s.clusters = m
	logger.Info("cluster model fitted",
		"k", m.K(),
		"draws", m.Draws(),
		"inertia", m.Inertia(),
		"duration", time.Since(start).Round(time.Millisecond),
	)
	return m, nil
}

// Generate produces req.NumSets combinations with the requested generator.
func (s *Service) Generate(req Request) (*Recommendation, error) {
	if req.ModelType == "" {
		req.ModelType = s.opts.DefaultModel
	}
	if !req.ModelType.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownModelType, req.ModelType)
	}
	if req.NumSets == 0 {
		req.NumSets = s.opts.DefaultNumSets
	}
	if req.NumSets < 1 || req.NumSets > MaxNumSets {
		return nil, fmt.Errorf("%w: %d (allowed 1-%d)", ErrInvalidNumSets, req.NumSets, MaxNumSets)
	}

	s.mu.Lock()
	snap, err := s.snapshotLocked()
	var clusters *analysis.ClusterModel
	if err == nil && req.ModelType == models.ModelKMeans {
		clusters, err = s.clustersLocked(snap)
	}
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	latest, hasLatest := snap.History.Latest()

	s.rngMu.Lock()
	defer s.rngMu.Unlock()

	sets := make([]Set, 0, req.NumSets)
	for range req.NumSets {
		var set Set
		switch req.ModelType {
		case models.ModelKMeans:
			c, err := clusters.Sample(s.rng)
			if err != nil {
				return nil, err
			}
			set.Numbers = c
		default:
			pick, err := s.generator.Generate(snap.Stats, snap.Patterns, s.rng)
			if err != nil {
				return nil, err
			}
			set.Numbers = pick.Combination
			set.PatternScore = &pick.Score
		}

		set.Hits = analysis.Evaluate(set.Numbers, snap.History)
		if hasLatest {
			set.LatestTier, _ = analysis.MatchDraw(set.Numbers, latest)
		}
		sets = append(sets, set)
	}

	rec := &Recommendation{
		BatchID:     uuid.New(),
		ModelType:   req.ModelType,
		Sets:        sets,
		TotalDraws:  len(snap.History),
		Fingerprint: snap.Fingerprint,
		GeneratedAt: time.Now(),
	}
	if hasLatest {
		rec.Latest = &latest
	}
	return rec, nil
}

// Evaluate tallies the historical prize tiers of c.
func (s *Service) Evaluate(c models.Combination) (*Evaluation, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return nil, err
	}

	ev := &Evaluation{
		Combination: c,
		Hits:        analysis.Evaluate(c, snap.History),
		Wins:        analysis.WinningDraws(c, snap.History, models.TierFifth),
	}
	if latest, ok := snap.History.Latest(); ok {
		ev.Latest = &latest
		ev.LatestTier, _ = analysis.MatchDraw(c, latest)
	}
	return ev, nil
}

// Statistics returns the number and pattern statistics with top-six
// summaries: most frequent, least frequent and longest unseen.
func (s *Service) Statistics() (*Overview, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return nil, err
	}

	ov := &Overview{
		Stats:      snap.Stats,
		Patterns:   snap.Patterns,
		TotalDraws: len(snap.History),
		Hot: snap.Stats.Top(summarySize, func(a, b models.NumberStat) int {
			return b.Frequency - a.Frequency
		}),
		Cold: snap.Stats.Top(summarySize, func(a, b models.NumberStat) int {
			return a.Frequency - b.Frequency
		}),
		Overdue: snap.Stats.Top(summarySize, func(a, b models.NumberStat) int {
			return b.Gap - a.Gap
		}),
		Ranked: analysis.RankNumbers(snap.Stats),
	}
	if latest, ok := snap.History.Latest(); ok {
		ov.Latest = &latest
	}
	return ov, nil
}
