package models

import (
	"errors"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"
)

// Number universe of a 6/45 lottery.
const (
	MinNumber = 1
	MaxNumber = 45
	PickSize  = 6
)

// ErrInvalidDraw is returned when a draw violates the number rules.
var ErrInvalidDraw = errors.New("invalid draw")

// Draw is one historical lottery result. A winning slot or bonus equal to 0
// is absent: the source value could not be read as a number.
type Draw struct {
	Number  int                      `json:"draw_number"`
	Winning [PickSize]int            `json:"winning_numbers"`
	Bonus   int                      `json:"bonus_number"`
	Prizes  map[Tier]decimal.Decimal `json:"prizes,omitempty"`
}

// Numbers returns the winning numbers that are present, in slot order.
func (d Draw) Numbers() []int {
	nums := make([]int, 0, PickSize)
	for _, n := range d.Winning {
		if n != 0 {
			nums = append(nums, n)
		}
	}
	return nums
}

// Complete reports whether all six winning slots are present.
func (d Draw) Complete() bool {
	for _, n := range d.Winning {
		if n == 0 {
			return false
		}
	}
	return true
}

// HasBonus reports whether the bonus number is present.
func (d Draw) HasBonus() bool {
	return d.Bonus != 0
}

// Contains reports whether n is one of the winning numbers.
func (d Draw) Contains(n int) bool {
	return n != 0 && slices.Contains(d.Winning[:], n)
}

// Prize returns the prize amount recorded for a tier.
func (d Draw) Prize(t Tier) (decimal.Decimal, bool) {
	if d.Prizes == nil {
		return decimal.Zero, false
	}
	amount, ok := d.Prizes[t]
	return amount, ok
}

// Validate checks ranges and duplicates of the present numbers.
func (d Draw) Validate() error {
	if d.Number <= 0 {
		return fmt.Errorf("%w: draw number must be positive, got %d", ErrInvalidDraw, d.Number)
	}

	seen := make(map[int]bool, PickSize)
	for _, n := range d.Winning {
		if n == 0 {
			continue
		}
		if n < MinNumber || n > MaxNumber {
			return fmt.Errorf("%w: winning number %d out of range", ErrInvalidDraw, n)
		}
		if seen[n] {
			return fmt.Errorf("%w: duplicate winning number %d", ErrInvalidDraw, n)
		}
		seen[n] = true
	}

	if d.Bonus != 0 {
		if d.Bonus < MinNumber || d.Bonus > MaxNumber {
			return fmt.Errorf("%w: bonus number %d out of range", ErrInvalidDraw, d.Bonus)
		}
		if seen[d.Bonus] {
			return fmt.Errorf("%w: bonus number %d duplicates a winning number", ErrInvalidDraw, d.Bonus)
		}
	}

	for tier, amount := range d.Prizes {
		if !tier.Valid() {
			return fmt.Errorf("%w: unknown prize tier %d", ErrInvalidDraw, int(tier))
		}
		if amount.IsNegative() {
			return fmt.Errorf("%w: negative prize for %s", ErrInvalidDraw, tier)
		}
	}

	return nil
}

// DrawHistory is an ordered sequence of draws, oldest first.
type DrawHistory []Draw

// Latest returns the newest draw.
func (h DrawHistory) Latest() (Draw, bool) {
	if len(h) == 0 {
		return Draw{}, false
	}
	return h[len(h)-1], true
}

// Find returns the draw with the given number.
func (h DrawHistory) Find(number int) (Draw, bool) {
	i, ok := slices.BinarySearchFunc(h, number, func(d Draw, n int) int {
		return d.Number - n
	})
	if !ok {
		return Draw{}, false
	}
	return h[i], true
}

// Sorted returns a copy ordered by draw number.
func (h DrawHistory) Sorted() DrawHistory {
	out := slices.Clone(h)
	slices.SortStableFunc(out, func(a, b Draw) int {
		return a.Number - b.Number
	})
	return out
}
