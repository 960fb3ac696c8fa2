package models

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode"
)

// ErrInvalidCombination is returned for anything other than six distinct numbers in range.
var ErrInvalidCombination = errors.New("invalid combination")

// Combination is six distinct numbers in [1,45], sorted ascending.
type Combination [PickSize]int

// NewCombination validates and sorts nums.
func NewCombination(nums []int) (Combination, error) {
	var c Combination
	if len(nums) != PickSize {
		return c, fmt.Errorf("%w: need %d numbers, got %d", ErrInvalidCombination, PickSize, len(nums))
	}

	sorted := slices.Clone(nums)
	slices.Sort(sorted)
	for i, n := range sorted {
		if n < MinNumber || n > MaxNumber {
			return c, fmt.Errorf("%w: %d out of range", ErrInvalidCombination, n)
		}
		if i > 0 && sorted[i-1] == n {
			return c, fmt.Errorf("%w: duplicate number %d", ErrInvalidCombination, n)
		}
		c[i] = n
	}
	return c, nil
}

// ParseCombination parses numbers separated by commas, spaces or dashes. A
// dash separates only when it sits between two digits, so "-5" stays a
// negative number and is rejected.
func ParseCombination(s string) (Combination, error) {
	runes := []rune(s)
	for i, r := range runes {
		if r == '-' && i > 0 && i+1 < len(runes) && unicode.IsDigit(runes[i-1]) && unicode.IsDigit(runes[i+1]) {
			runes[i] = ' '
		}
	}
	fields := strings.FieldsFunc(string(runes), func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})

	nums := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return Combination{}, fmt.Errorf("%w: %q is not a number", ErrInvalidCombination, f)
		}
		nums = append(nums, n)
	}
	return NewCombination(nums)
}

// Contains reports whether n is part of the combination.
func (c Combination) Contains(n int) bool {
	_, found := slices.BinarySearch(c[:], n)
	return found
}

// Numbers returns the combination as a slice.
func (c Combination) Numbers() []int {
	return slices.Clone(c[:])
}

// Sum returns the sum of all six numbers.
func (c Combination) Sum() int {
	sum := 0
	for _, n := range c {
		sum += n
	}
	return sum
}

// String renders the combination as "1, 2, 3, 4, 5, 6".
func (c Combination) String() string {
	parts := make([]string, len(c))
	for i, n := range c {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
}
