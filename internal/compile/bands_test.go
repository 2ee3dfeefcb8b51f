package compile

import (
	"math"
	"testing"

	"github.com/salesops/segmatrix/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGMVBand(t *testing.T) {
	cases := []struct {
		label string
		min   float64
		max   float64
	}{
		{"0-7k", 0, 7000},
		{"7k-20k", 7000, 20000},
		{"118k-163k", 118000, 163000},
		{">700k", 700000, math.Inf(1)},
		{">$600K", 600000, math.Inf(1)},
		{"$100k-$120k", 100000, 120000},
		{" 150k-700k ", 150000, 700000},
		{">1,000", 1000, math.Inf(1)},
		// No suffix means the literal number, never inferred thousands.
		{"120-200", 120, 200},
		{"0-0.5k", 0, 500},
	}
	for _, tc := range cases {
		min, max, err := ParseGMVBand(tc.label)
		require.NoError(t, err, "label %q", tc.label)
		assert.Equal(t, tc.min, min, "label %q min", tc.label)
		assert.Equal(t, tc.max, max, "label %q max", tc.label)
	}
}

func TestParseGMVBand_Errors(t *testing.T) {
	for _, label := range []string{
		"",
		"7k",        // no range shape
		"abc-def",   // not numbers
		"20k-7k",    // inverted
		"100k-100k", // empty range
		">",
		"-500-100",
	} {
		_, _, err := ParseGMVBand(label)
		assert.Error(t, err, "label %q should not parse", label)
	}
}

func TestParseEmployeeBand(t *testing.T) {
	cases := []struct {
		label string
		min   int
		max   int
	}{
		{"0-25", 0, 25},
		{"26-100", 26, 100},
		{"501-1000", 501, 1000},
		// ">X" starts at the first integer above X: employee bounds are
		// inclusive, so ">1000" tiles against "501-1000".
		{">1000", 1001, domain.UnboundedEmployeeMax},
		{">1,000", 1001, domain.UnboundedEmployeeMax},
		{"1k-2k", 1000, 2000},
	}
	for _, tc := range cases {
		min, max, err := ParseEmployeeBand(tc.label)
		require.NoError(t, err, "label %q", tc.label)
		assert.Equal(t, tc.min, min, "label %q min", tc.label)
		assert.Equal(t, tc.max, max, "label %q max", tc.label)
	}
}

func TestParseEmployeeBand_Errors(t *testing.T) {
	for _, label := range []string{
		"",
		"25",      // no range shape
		"100-26",  // inverted
		"0.5-2",   // not an integer count
		">2.5",    // not an integer count
		"ten-20",  // not a number
	} {
		_, _, err := ParseEmployeeBand(label)
		assert.Error(t, err, "label %q should not parse", label)
	}
}
