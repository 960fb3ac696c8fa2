package history

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/j-veylop/lotto-dashboard-tui/internal/analysis"
	"github.com/j-veylop/lotto-dashboard-tui/internal/models"
)

const sampleCSV = `draw_no,n1,n2,n3,n4,n5,n6,bonus,prize_1st,prize_2nd,prize_3rd,prize_4th,prize_5th
2,10,20,30,40,41,42,7,"2,000,000,000",50000000,1500000,50000,5000
1,1,2,3,4,5,6,7
3,11,x,13,14,15,16,,,,,,
`

func TestParseCSV(t *testing.T) {
	history, err := ParseCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, history, 3)

	assert.Equal(t, 1, history[0].Number, "sorted by draw number")
	assert.Equal(t, [models.PickSize]int{1, 2, 3, 4, 5, 6}, history[0].Winning)
	assert.Equal(t, 7, history[0].Bonus)
	assert.Nil(t, history[0].Prizes)

	first, ok := history[1].Prize(models.TierFirst)
	require.True(t, ok)
	assert.True(t, first.Equal(decimal.NewFromInt(2_000_000_000)))
	fifth, ok := history[1].Prize(models.TierFifth)
	require.True(t, ok)
	assert.True(t, fifth.Equal(decimal.NewFromInt(5000)))

	assert.Equal(t, [models.PickSize]int{11, 0, 13, 14, 15, 16}, history[2].Winning)
	assert.False(t, history[2].HasBonus())
}

func TestParseCSV_NoHeader(t *testing.T) {
	history, err := ParseCSV(strings.NewReader("1,1,2,3,4,5,6,7\n\n2,8,9,10,11,12,13,14\n"))
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestParseCSV_SpreadsheetFloats(t *testing.T) {
	history, err := ParseCSV(strings.NewReader("1.0,1.0,2.0,3,4,5,6,7.0\n2.0,8,9,10,11,12,13,14\n"))
	require.NoError(t, err)
	require.Len(t, history, 2, "a float draw number in the first row is data, not a header")
	assert.Equal(t, 1, history[0].Number)
	assert.Equal(t, [models.PickSize]int{1, 2, 3, 4, 5, 6}, history[0].Winning)
	assert.Equal(t, 7, history[0].Bonus)
	assert.Equal(t, 2, history[1].Number)
}

func TestParseCSV_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"out of range", "1,1,2,3,4,5,46,7\n", "line 1"},
		{"duplicate number", "1,1,2,3,4,5,6,7\n2,1,1,3,4,5,6,7\n", "line 2"},
		{"duplicate draw", "1,1,2,3,4,5,6,7\n1,8,9,10,11,12,13,14\n", "already defined"},
		{"bad draw number", "1,1,2,3,4,5,6,7\nabc,1,2,3,4,5,6,7\n", "not an integer"},
		{"too few columns", "1,1,2,3\n", "columns"},
		{"fractional draw number", "1.5,1,2,3,4,5,6,7\n", "not an integer"},
		{"unreadable first draw number", "#1,1,2,3,4,5,6,7\n", "line 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCSV(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, analysis.ErrInvalidInput)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadFile_NotFound(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorIs(t, err, ErrHistoryNotFound)
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	history, err := ParseCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, history))
	assert.True(t, strings.HasPrefix(buf.String(), "draw_no,n1"))
	assert.Contains(t, buf.String(), "3,11,,13,14,15,16,,,,,,")

	back, err := ParseCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, Fingerprint(history), Fingerprint(back))
}

func TestSaveFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lotto.csv")
	history := models.DrawHistory{{Number: 1, Winning: [models.PickSize]int{1, 2, 3, 4, 5, 6}, Bonus: 7}}

	require.NoError(t, SaveFile(path, history))
	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, history, loaded)
}

func TestFingerprint(t *testing.T) {
	a := models.DrawHistory{{Number: 1, Winning: [models.PickSize]int{1, 2, 3, 4, 5, 6}, Bonus: 7}}
	b := models.DrawHistory{{Number: 1, Winning: [models.PickSize]int{1, 2, 3, 4, 5, 6}, Bonus: 8}}

	assert.Equal(t, Fingerprint(a), Fingerprint(a))
	assert.NotEqual(t, Fingerprint(a), Fingerprint(b))
	assert.True(t, strings.HasPrefix(Fingerprint(nil), "hist_"))
}
