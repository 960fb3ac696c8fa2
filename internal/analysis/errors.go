// Package analysis implements the lottery statistics, the two combination
// generators and the historical match evaluator. Every function works on an
// in-memory draw history; nothing here performs I/O.
package analysis

import "errors"

var (
	// ErrInvalidInput is returned when a history is empty or lacks the
	// numeric draw data a computation needs.
	ErrInvalidInput = errors.New("invalid input")

	// ErrModelFit is returned when clusters cannot be fitted to a history.
	ErrModelFit = errors.New("cluster model fit failed")

	// ErrGenerationExhausted is returned when a generator runs out of
	// candidates before reaching six distinct numbers.
	ErrGenerationExhausted = errors.New("generation exhausted")
)

// Rand is the random source used for sampling. *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}
