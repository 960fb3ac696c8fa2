package models

import "fmt"

// Tier is a prize rank, 1st through 5th.
type Tier int

const (
	// TierFirst matches all six winning numbers.
	TierFirst Tier = iota + 1
	// TierSecond matches five winning numbers plus the bonus.
	TierSecond
	// TierThird matches five winning numbers.
	TierThird
	// TierFourth matches four winning numbers.
	TierFourth
	// TierFifth matches three winning numbers.
	TierFifth
)

// Tiers lists every tier from highest to lowest.
var Tiers = []Tier{TierFirst, TierSecond, TierThird, TierFourth, TierFifth}

// String returns the display name for a tier.
func (t Tier) String() string {
	switch t {
	case TierFirst:
		return "1st"
	case TierSecond:
		return "2nd"
	case TierThird:
		return "3rd"
	case TierFourth:
		return "4th"
	case TierFifth:
		return "5th"
	default:
		return "unknown"
	}
}

// Valid reports whether t is one of the five tiers.
func (t Tier) Valid() bool {
	return t >= TierFirst && t <= TierFifth
}

// ParseTier parses "1st".."5th" or "1".."5".
func ParseTier(s string) (Tier, error) {
	for _, t := range Tiers {
		if s == t.String() || s == fmt.Sprint(int(t)) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown tier %q", s)
}

// MarshalText implements encoding.TextMarshaler so tiers key JSON objects by name.
func (t Tier) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("unknown tier %d", int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Tier) UnmarshalText(b []byte) error {
	parsed, err := ParseTier(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// HitTally counts historical matches per tier. A tally built with NewHitTally
// always carries all five tiers.
type HitTally map[Tier]int

// NewHitTally returns a tally with every tier at zero.
func NewHitTally() HitTally {
	h := make(HitTally, len(Tiers))
	for _, t := range Tiers {
		h[t] = 0
	}
	return h
}

// Total returns the number of tallied draws across all tiers.
func (h HitTally) Total() int {
	total := 0
	for _, c := range h {
		total += c
	}
	return total
}

// Best returns the highest tier with a non-zero count.
func (h HitTally) Best() (Tier, bool) {
	for _, t := range Tiers {
		if h[t] > 0 {
			return t, true
		}
	}
	return 0, false
}
