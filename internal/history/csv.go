// Package history reads and writes draw history files.
//
// A history file is comma separated with one draw per row:
//
//	draw_no,n1,n2,n3,n4,n5,n6,bonus[,prize_1st,...,prize_5th]
//
// A first row in which no field is a number is treated as a header.
package history

import (
	"crypto/sha256"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/j-veylop/lotto-dashboard-tui/internal/analysis"
	"github.com/j-veylop/lotto-dashboard-tui/internal/models"
)

// ErrHistoryNotFound is returned when the history file does not exist.
var ErrHistoryNotFound = errors.New("history file not found")

const (
	colDrawNumber = 0
	colFirstWin   = 1
	colBonus      = colFirstWin + models.PickSize
	colFirstPrize = colBonus + 1
	minColumns    = colBonus
)

// Header is the row written by WriteCSV.
var Header = []string{
	"draw_no", "n1", "n2", "n3", "n4", "n5", "n6", "bonus",
	"prize_1st", "prize_2nd", "prize_3rd", "prize_4th", "prize_5th",
}

// LoadFile parses the history file at path.
func LoadFile(path string) (models.DrawHistory, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrHistoryNotFound, path)
		}
		return nil, fmt.Errorf("failed to open history file: %w", err)
	}
	defer func() { _ = f.Close() }()

	history, err := ParseCSV(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return history, nil
}

// ParseCSV reads draws from r and returns them ordered by draw number.
// Winning or bonus cells that are not integers are recorded as absent.
func ParseCSV(r io.Reader) (models.DrawHistory, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var history models.DrawHistory
	seen := make(map[int]int)

	for first := true; ; first = false {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", analysis.ErrInvalidInput, err)
		}
		line, _ := reader.FieldPos(0)
		if isBlank(record) {
			continue
		}
		if first && isHeader(record) {
			continue
		}

		d, err := parseRecord(record)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", analysis.ErrInvalidInput, line, err)
		}
		if prev, dup := seen[d.Number]; dup {
			return nil, fmt.Errorf("%w: line %d: draw %d already defined on line %d",
				analysis.ErrInvalidInput, line, d.Number, prev)
		}
		seen[d.Number] = line
		history = append(history, d)
	}

	return history.Sorted(), nil
}

func parseRecord(record []string) (models.Draw, error) {
	if len(record) < minColumns {
		return models.Draw{}, fmt.Errorf("expected at least %d columns, got %d", minColumns, len(record))
	}

	var d models.Draw
	number, ok := wholeNumber(record[colDrawNumber])
	if !ok {
		return d, fmt.Errorf("draw number %q is not an integer", record[colDrawNumber])
	}
	d.Number = number

	for i := range models.PickSize {
		d.Winning[i] = coerce(record[colFirstWin+i])
	}
	if len(record) > colBonus {
		d.Bonus = coerce(record[colBonus])
	}

	for i, tier := range models.Tiers {
		col := colFirstPrize + i
		if col >= len(record) {
			break
		}
		amount, ok := parsePrize(record[col])
		if !ok {
			continue
		}
		if d.Prizes == nil {
			d.Prizes = make(map[models.Tier]decimal.Decimal, len(models.Tiers))
		}
		d.Prizes[tier] = amount
	}

	if err := d.Validate(); err != nil {
		return d, err
	}
	return d, nil
}

// coerce returns the integer value of s, or 0 when s is not an integer.
// A float cell with no fractional part, as spreadsheets write them, counts
// as an integer.
func coerce(s string) int {
	n, _ := wholeNumber(s)
	return n
}

// wholeNumber parses an integer, accepting spreadsheet floats such as "7.0".
func wholeNumber(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

func parsePrize(s string) (decimal.Decimal, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return decimal.Zero, false
	}
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return amount, true
}

func isHeader(record []string) bool {
	return !slices.ContainsFunc(record, func(s string) bool {
		_, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		return err == nil
	})
}

func isBlank(record []string) bool {
	return !slices.ContainsFunc(record, func(s string) bool {
		return strings.TrimSpace(s) != ""
	})
}

// WriteCSV writes history with a header row. Absent numbers are written as
// empty cells.
func WriteCSV(w io.Writer, history models.DrawHistory) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, d := range history {
		row := make([]string, 0, len(Header))
		row = append(row, strconv.Itoa(d.Number))
		for _, n := range d.Winning {
			row = append(row, cell(n))
		}
		row = append(row, cell(d.Bonus))
		for _, tier := range models.Tiers {
			if amount, ok := d.Prize(tier); ok {
				row = append(row, amount.String())
			} else {
				row = append(row, "")
			}
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write draw %d: %w", d.Number, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// SaveFile writes history to path, replacing any existing file.
func SaveFile(path string, history models.DrawHistory) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", tmp, err)
	}
	if err := WriteCSV(f, history); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to close %s: %w", tmp, err)
	}
	return os.Rename(tmp, path)
}

func cell(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

// Fingerprint identifies the contents of a history. Two histories with the
// same draws, numbers and prizes share a fingerprint.
func Fingerprint(history models.DrawHistory) string {
	h := sha256.New()
	for _, d := range history {
		_, _ = fmt.Fprintf(h, "%d:%v:%d", d.Number, d.Winning, d.Bonus)
		for _, tier := range models.Tiers {
			if amount, ok := d.Prize(tier); ok {
				_, _ = fmt.Fprintf(h, ":%s=%s", tier, amount.String())
			}
		}
		_, _ = h.Write([]byte{'\n'})
	}
	return fmt.Sprintf("hist_%x", h.Sum(nil)[:8])
}
