package models

import (
	"fmt"
	"slices"
	"strings"
)

// NumberStat is the frequency and recency of one number.
type NumberStat struct {
	Number    int `json:"number"`
	Frequency int `json:"frequency"`
	Gap       int `json:"gap"`
}

// Score weights the gap double the frequency.
func (s NumberStat) Score() int {
	return s.Frequency + 2*s.Gap
}

// NumberStats holds one entry for each number 1..45.
type NumberStats map[int]NumberStat

// Sorted returns the entries ordered by number.
func (s NumberStats) Sorted() []NumberStat {
	out := make([]NumberStat, 0, len(s))
	for n := MinNumber; n <= MaxNumber; n++ {
		if stat, ok := s[n]; ok {
			out = append(out, stat)
		}
	}
	return out
}

// Frequencies returns frequencies indexed from number 1.
func (s NumberStats) Frequencies() []float64 {
	out := make([]float64, 0, MaxNumber)
	for _, stat := range s.Sorted() {
		out = append(out, float64(stat.Frequency))
	}
	return out
}

// Gaps returns gaps indexed from number 1.
func (s NumberStats) Gaps() []float64 {
	out := make([]float64, 0, MaxNumber)
	for _, stat := range s.Sorted() {
		out = append(out, float64(stat.Gap))
	}
	return out
}

// Top returns the n entries ranked by less, ties by ascending number.
func (s NumberStats) Top(n int, less func(a, b NumberStat) int) []NumberStat {
	sorted := s.Sorted()
	slices.SortStableFunc(sorted, less)
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

// OddEven is the count of odd and even numbers in a draw.
type OddEven struct {
	Odd  int `json:"odd"`
	Even int `json:"even"`
}

// String renders the pair as "odd:even".
func (o OddEven) String() string {
	return fmt.Sprintf("%d:%d", o.Odd, o.Even)
}

// MarshalText keys JSON objects by "odd:even".
func (o OddEven) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// SumRange is one fixed bucket of the six-number sum.
type SumRange struct {
	Label string
	Min   int
	Max   int
}

// SumRangeOther labels sums that fall outside every bucket.
const SumRangeOther = "Other"

// SumRanges are the fixed buckets, in ascending order.
var SumRanges = []SumRange{
	{Label: "21-50", Min: 21, Max: 50},
	{Label: "51-80", Min: 51, Max: 80},
	{Label: "81-110", Min: 81, Max: 110},
	{Label: "111-140", Min: 111, Max: 140},
	{Label: "141-170", Min: 141, Max: 170},
	{Label: "171-200", Min: 171, Max: 200},
	{Label: "201-231", Min: 201, Max: 231},
}

// SumRangeLabel returns the bucket label for a sum.
func SumRangeLabel(sum int) string {
	for _, r := range SumRanges {
		if sum >= r.Min && sum <= r.Max {
			return r.Label
		}
	}
	return SumRangeOther
}

// ConsecutiveThresholds are the run lengths tracked by PatternStats.
var ConsecutiveThresholds = []int{2, 3, 4, 5}

// EndingDigits is the sorted tuple of each number mod 10.
type EndingDigits [PickSize]int

// String renders the signature as "0-1-3-3-5-9".
func (e EndingDigits) String() string {
	parts := make([]string, len(e))
	for i, d := range e {
		parts[i] = fmt.Sprint(d)
	}
	return strings.Join(parts, "-")
}

// MarshalText keys JSON objects by the rendered signature.
func (e EndingDigits) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// PatternStats are aggregate ratios over the analysed draws.
type PatternStats struct {
	Draws        int                      `json:"draws"`
	Consecutive  map[int]float64          `json:"consecutive"`
	OddEven      map[OddEven]float64      `json:"odd_even"`
	SumRanges    map[string]float64       `json:"sum_ranges"`
	EndingDigits map[EndingDigits]float64 `json:"ending_digits"`
}

// RatioEntry is one row of a ratio table.
type RatioEntry struct {
	Label string
	Ratio float64
}

// OddEvenTable returns every odd/even split ordered by odd count.
func (p PatternStats) OddEvenTable() []RatioEntry {
	out := make([]RatioEntry, 0, PickSize+1)
	for odd := PickSize; odd >= 0; odd-- {
		key := OddEven{Odd: odd, Even: PickSize - odd}
		out = append(out, RatioEntry{Label: key.String(), Ratio: p.OddEven[key]})
	}
	return out
}

// SumRangeTable returns every bucket plus Other in ascending order.
func (p PatternStats) SumRangeTable() []RatioEntry {
	out := make([]RatioEntry, 0, len(SumRanges)+1)
	for _, r := range SumRanges {
		out = append(out, RatioEntry{Label: r.Label, Ratio: p.SumRanges[r.Label]})
	}
	return append(out, RatioEntry{Label: SumRangeOther, Ratio: p.SumRanges[SumRangeOther]})
}

// ConsecutiveTable returns coverage for each threshold.
func (p PatternStats) ConsecutiveTable() []RatioEntry {
	out := make([]RatioEntry, 0, len(ConsecutiveThresholds))
	for _, t := range ConsecutiveThresholds {
		out = append(out, RatioEntry{Label: fmt.Sprintf(">=%d", t), Ratio: p.Consecutive[t]})
	}
	return out
}

// TopEndingDigits returns the n most common signatures.
func (p PatternStats) TopEndingDigits(n int) []RatioEntry {
	out := make([]RatioEntry, 0, len(p.EndingDigits))
	for sig, ratio := range p.EndingDigits {
		out = append(out, RatioEntry{Label: sig.String(), Ratio: ratio})
	}
	slices.SortFunc(out, func(a, b RatioEntry) int {
		switch {
		case a.Ratio > b.Ratio:
			return -1
		case a.Ratio < b.Ratio:
			return 1
		default:
			return strings.Compare(a.Label, b.Label)
		}
	})
	if n < len(out) {
		out = out[:n]
	}
	return out
}

// PatternScore is the informational scoring of a generated combination.
type PatternScore struct {
	OddEven        OddEven `json:"odd_even"`
	OddEvenRatio   float64 `json:"odd_even_ratio"`
	Sum            int     `json:"sum"`
	SumInRange     bool    `json:"sum_in_range"`
	MaxRun         int     `json:"max_run"`
	LowConsecutive bool    `json:"low_consecutive"`
}

// Total adds the three bonuses: the historical odd/even ratio plus one point
// each for the sum and run checks.
func (s PatternScore) Total() float64 {
	total := s.OddEvenRatio
	if s.SumInRange {
		total++
	}
	if s.LowConsecutive {
		total++
	}
	return total
}

// ModelType selects a generator.
type ModelType string

const (
	// ModelStatistical uses frequency and gap scoring.
	ModelStatistical ModelType = "statistical"
	// ModelKMeans samples around cluster centroids.
	ModelKMeans ModelType = "kmeans"
)

// ModelTypes lists the supported generators.
var ModelTypes = []ModelType{ModelStatistical, ModelKMeans}

// Valid reports whether m names a supported generator.
func (m ModelType) Valid() bool {
	return slices.Contains(ModelTypes, m)
}

// Label returns the display name for the model type.
func (m ModelType) Label() string {
	switch m {
	case ModelStatistical:
		return "Statistical"
	case ModelKMeans:
		return "K-Means"
	default:
		return "Unknown"
	}
}

// Next cycles to the next model type.
func (m ModelType) Next() ModelType {
	i := slices.Index(ModelTypes, m)
	return ModelTypes[(i+1)%len(ModelTypes)]
}
