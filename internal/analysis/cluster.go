package analysis

import (
	"fmt"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/j-veylop/lotto-dashboard-tui/internal/models"
)

// Cluster fitting defaults.
const (
	DefaultClusters      = 5
	DefaultSeed          = 42
	MinRestarts          = 10
	DefaultMaxIterations = 300

	sampleAttempts = 100
)

// Vector is a draw or centroid in six-dimensional number space.
type Vector [models.PickSize]float64

// FitOptions controls FitClusters.
type FitOptions struct {
	K             int
	Seed          uint64
	Restarts      int
	MaxIterations int

	// Progress, when set, is called after each restart.
	Progress func(done, total int)
}

// DefaultFitOptions returns K=5, seed 42, 10 restarts and 300 iterations.
func DefaultFitOptions() FitOptions {
	return FitOptions{
		K:             DefaultClusters,
		Seed:          DefaultSeed,
		Restarts:      MinRestarts,
		MaxIterations: DefaultMaxIterations,
	}
}

// ClusterModel holds the centroids of the best of several Lloyd runs.
// It is immutable once fitted.
type ClusterModel struct {
	centroids  []Vector
	sizes      []int
	inertia    float64
	iterations int
	draws      int
}

// FitClusters partitions the winning numbers of every draw, in slot order and
// unscaled, into opts.K clusters. Each restart seeds a k-means++ start from
// opts.Seed and the restart index, so fits are reproducible. The run with the
// lowest inertia is kept.
func FitClusters(history models.DrawHistory, opts FitOptions) (*ClusterModel, error) {
	if opts.K < 1 {
		return nil, fmt.Errorf("%w: cluster count must be at least 1, got %d", ErrModelFit, opts.K)
	}
	if len(history) < opts.K {
		return nil, fmt.Errorf("%w: %d draws is fewer than %d clusters", ErrModelFit, len(history), opts.K)
	}

	points := make([]Vector, len(history))
	for i, d := range history {
		if !d.Complete() {
			return nil, fmt.Errorf("%w: draw %d lacks six numeric winning numbers", ErrModelFit, d.Number)
		}
		for j, n := range d.Winning {
			points[i][j] = float64(n)
		}
	}

	restarts := max(opts.Restarts, MinRestarts)
	maxIter := opts.MaxIterations
	if maxIter <= 0 {
		maxIter = DefaultMaxIterations
	}

	var best *ClusterModel
	for r := range restarts {
		rng := rand.New(rand.NewPCG(opts.Seed, uint64(r)))
		m := lloyd(points, opts.K, maxIter, rng)
		if best == nil || m.inertia < best.inertia {
			best = m
		}
		if opts.Progress != nil {
			opts.Progress(r+1, restarts)
		}
	}
	best.draws = len(points)
	return best, nil
}

// K returns the number of clusters.
func (m *ClusterModel) K() int {
	return len(m.centroids)
}

// Centroids returns a copy of the cluster centres.
func (m *ClusterModel) Centroids() []Vector {
	return slices.Clone(m.centroids)
}

// Sizes returns the number of draws assigned to each centroid.
func (m *ClusterModel) Sizes() []int {
	return slices.Clone(m.sizes)
}

// Inertia returns the sum of squared distances to the assigned centroids.
func (m *ClusterModel) Inertia() float64 {
	return m.inertia
}

// Iterations returns the Lloyd iterations of the kept run.
func (m *ClusterModel) Iterations() int {
	return m.iterations
}

// Draws returns the number of draws the model was fitted on.
func (m *ClusterModel) Draws() int {
	return m.draws
}

// Sample rounds a random centroid to a combination. A centroid that does not
// yield six distinct numbers is redrawn, up to 100 times; after that the
// remaining slots are filled with random numbers.
func (m *ClusterModel) Sample(rng Rand) (models.Combination, error) {
	if len(m.centroids) == 0 {
		return models.Combination{}, fmt.Errorf("%w: model has no centroids", ErrGenerationExhausted)
	}

	var last []int
	for range sampleAttempts {
		values := roundCentroid(m.centroids[rng.IntN(len(m.centroids))])
		if len(values) >= models.PickSize {
			return models.NewCombination(sampleDistinct(values, models.PickSize, nil, rng))
		}
		last = values
	}

	return pickFromPool(last, fullUniverse(), rng)
}

// roundCentroid rounds, clamps to 1..45 and deduplicates.
func roundCentroid(c Vector) []int {
	values := make([]int, 0, len(c))
	for _, x := range c {
		n := int(math.Round(x))
		n = min(max(n, models.MinNumber), models.MaxNumber)
		if !slices.Contains(values, n) {
			values = append(values, n)
		}
	}
	return values
}

func lloyd(points []Vector, k, maxIter int, rng *rand.Rand) *ClusterModel {
	centroids := seedCentroids(points, k, rng)
	assign := make([]int, len(points))
	for i := range assign {
		assign[i] = -1
	}

	iter := 0
	for iter < maxIter {
		iter++
		changed := false
		for i, p := range points {
			c, _ := nearest(p, centroids)
			if assign[i] != c {
				assign[i] = c
				changed = true
			}
		}
		if !changed && iter > 1 {
			break
		}

		sums := make([]Vector, k)
		counts := make([]int, k)
		for i, p := range points {
			c := assign[i]
			counts[c]++
			for d := range p {
				sums[c][d] += p[d]
			}
		}
		for c := range centroids {
			if counts[c] == 0 {
				centroids[c] = farthestPoint(points, centroids, assign)
				continue
			}
			for d := range sums[c] {
				centroids[c][d] = sums[c][d] / float64(counts[c])
			}
		}
	}

	sizes := make([]int, k)
	inertia := 0.0
	for _, p := range points {
		c, dist := nearest(p, centroids)
		sizes[c]++
		inertia += dist
	}

	return &ClusterModel{
		centroids:  centroids,
		sizes:      sizes,
		inertia:    inertia,
		iterations: iter,
	}
}

// seedCentroids picks k starting centres with k-means++ weighting.
func seedCentroids(points []Vector, k int, rng *rand.Rand) []Vector {
	centroids := make([]Vector, 0, k)
	centroids = append(centroids, points[rng.IntN(len(points))])

	dists := make([]float64, len(points))
	for len(centroids) < k {
		total := 0.0
		for i, p := range points {
			_, d := nearest(p, centroids)
			dists[i] = d
			total += d
		}

		if total == 0 {
			centroids = append(centroids, points[rng.IntN(len(points))])
			continue
		}

		target := rng.Float64() * total
		chosen := len(points) - 1
		for i, d := range dists {
			target -= d
			if target < 0 {
				chosen = i
				break
			}
		}
		centroids = append(centroids, points[chosen])
	}
	return centroids
}

// farthestPoint returns the point with the largest distance to its centroid.
func farthestPoint(points []Vector, centroids []Vector, assign []int) Vector {
	bestIdx, bestDist := 0, -1.0
	for i, p := range points {
		d := sqDist(p, centroids[assign[i]])
		if d > bestDist {
			bestIdx, bestDist = i, d
		}
	}
	return points[bestIdx]
}

func nearest(p Vector, centroids []Vector) (int, float64) {
	best, bestDist := 0, math.Inf(1)
	for i, c := range centroids {
		if d := sqDist(p, c); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, bestDist
}

func sqDist(a, b Vector) float64 {
	total := 0.0
	for i := range a {
		diff := a[i] - b[i]
		total += diff * diff
	}
	return total
}
