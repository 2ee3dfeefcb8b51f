package compile

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/salesops/segmatrix/internal/domain"
)

// Band labels follow the authored-matrix grammar observed across matrix
// revisions: "0-7k", "7k-20k", ">$600K", "0-25", ">1,000". A "k" suffix
// multiplies by 1,000; a number with no suffix is literal, never inferred
// to be thousands. "$" and thousands separators are cosmetic.

// parseAmount parses a single band endpoint into its numeric value.
func parseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, fmt.Errorf("empty number")
	}

	mult := 1.0
	if strings.HasSuffix(s, "k") || strings.HasSuffix(s, "K") {
		mult = 1000
		s = s[:len(s)-1]
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	if v < 0 {
		return 0, fmt.Errorf("negative bound %v", v)
	}
	return v * mult, nil
}

// ParseGMVBand parses a GMV band label into [min, max) bounds.
// ">X" is open-ended: [X, +Inf). The upper bound of "A-B" is exclusive,
// so "0-7k" and "7k-20k" tile without double-counting 7000.
func ParseGMVBand(label string) (min, max float64, err error) {
	s := strings.TrimSpace(label)
	if rest, ok := strings.CutPrefix(s, ">"); ok {
		min, err = parseAmount(rest)
		if err != nil {
			return 0, 0, err
		}
		return min, math.Inf(1), nil
	}

	lo, hi, ok := strings.Cut(s, "-")
	if !ok {
		return 0, 0, fmt.Errorf("expected \"low-high\" or \">low\"")
	}
	if min, err = parseAmount(lo); err != nil {
		return 0, 0, err
	}
	if max, err = parseAmount(hi); err != nil {
		return 0, 0, err
	}
	if min >= max {
		return 0, 0, fmt.Errorf("lower bound %v is not below upper bound %v", min, max)
	}
	return min, max, nil
}

// ParseEmployeeBand parses an employee-count band label into [min, max]
// inclusive bounds. ">X" compiles to [X+1, unbounded]: employee upper
// bounds are inclusive, so the band above "501-1000" starts at 1001.
func ParseEmployeeBand(label string) (min, max int, err error) {
	s := strings.TrimSpace(label)
	if rest, ok := strings.CutPrefix(s, ">"); ok {
		v, err := parseAmount(rest)
		if err != nil {
			return 0, 0, err
		}
		lo, err := asCount(v)
		if err != nil {
			return 0, 0, err
		}
		return lo + 1, domain.UnboundedEmployeeMax, nil
	}

	loStr, hiStr, ok := strings.Cut(s, "-")
	if !ok {
		return 0, 0, fmt.Errorf("expected \"low-high\" or \">low\"")
	}
	loV, err := parseAmount(loStr)
	if err != nil {
		return 0, 0, err
	}
	hiV, err := parseAmount(hiStr)
	if err != nil {
		return 0, 0, err
	}
	if min, err = asCount(loV); err != nil {
		return 0, 0, err
	}
	if max, err = asCount(hiV); err != nil {
		return 0, 0, err
	}
	if min > max {
		return 0, 0, fmt.Errorf("lower bound %d is above upper bound %d", min, max)
	}
	return min, max, nil
}

func asCount(v float64) (int, error) {
	if v != math.Trunc(v) {
		return 0, fmt.Errorf("employee count %v is not an integer", v)
	}
	return int(v), nil
}
