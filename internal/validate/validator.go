// Package validate proves totality and exclusivity of a compiled rule set
// over the whole non-negative plane, and diffs rule-set versions. The
// boundary sweep is exact: the distinct boundary values of the rules
// partition the plane into finitely many cells whose membership is uniform,
// so checking one representative per cell checks every point. Point sampling
// at a fixed step would miss gaps thinner than the step; the sweep cannot.
package validate

import (
	"fmt"
	"math"
	"sort"

	"github.com/salesops/segmatrix/internal/domain"
)

// Region is one grid cell of the boundary sweep, in rule-range conventions:
// employee bounds inclusive, GMV upper bound exclusive, maxima possibly
// unbounded.
type Region struct {
	EmployeeMin int
	EmployeeMax int
	GMVMin      float64
	GMVMax      float64
}

func (r Region) String() string {
	rule := domain.SegmentRule{EmployeeMin: r.EmployeeMin, EmployeeMax: r.EmployeeMax, GMVMin: r.GMVMin, GMVMax: r.GMVMax}
	return fmt.Sprintf("ee %s x gmv %s", rule.EmployeeLabel(), rule.GMVLabel())
}

// Contains reports whether the region contains the given point.
func (r Region) Contains(employeeCount int, gmv float64) bool {
	return employeeCount >= r.EmployeeMin && employeeCount <= r.EmployeeMax &&
		gmv >= r.GMVMin && gmv < r.GMVMax
}

// Overlap is a region covered by two or more rules, all of them reported.
type Overlap struct {
	Region Region
	Rules  []domain.SegmentRule
}

// ValidationReport lists every gap and overlap found by the sweep. An
// invalid report is an expected development-time outcome, not an error
// value; callers must refuse to deploy a rule set whose report is invalid.
type ValidationReport struct {
	Gaps     []Region
	Overlaps []Overlap
}

// IsValid reports whether the rule set is total and mutually exclusive.
func (r *ValidationReport) IsValid() bool {
	return len(r.Gaps) == 0 && len(r.Overlaps) == 0
}

// Validate sweeps the boundary grid of the rule set and reports every cell
// covered by no rule (gap) or by more than one (overlap).
func Validate(rs *domain.RuleSet) *ValidationReport {
	report := &ValidationReport{}
	sweep(rs.Rules, func(region Region, e int, g float64) {
		var matched []domain.SegmentRule
		for _, rule := range rs.Rules {
			if rule.Contains(e, g) {
				matched = append(matched, rule)
			}
		}
		switch {
		case len(matched) == 0:
			report.Gaps = append(report.Gaps, region)
		case len(matched) > 1:
			report.Overlaps = append(report.Overlaps, Overlap{Region: region, Rules: matched})
		}
	})
	return report
}

// sweep visits every cell of the boundary grid with its representative
// point. The representative is the cell's lower corner: it belongs to the
// cell under the inclusive-min conventions, and because every rule boundary
// is a grid boundary, its rule membership is the whole cell's.
func sweep(rules []domain.SegmentRule, visit func(region Region, e int, g float64)) {
	eBounds := collectEmployeeBounds(rules)
	gBounds := collectGMVBounds(rules)

	for i, e := range eBounds {
		eMax := domain.UnboundedEmployeeMax
		if i+1 < len(eBounds) {
			eMax = eBounds[i+1] - 1
		}
		for j, g := range gBounds {
			gMax := math.Inf(1)
			if j+1 < len(gBounds) {
				gMax = gBounds[j+1]
			}
			visit(Region{EmployeeMin: e, EmployeeMax: eMax, GMVMin: g, GMVMax: gMax}, e, g)
		}
	}
}

func collectEmployeeBounds(rules []domain.SegmentRule) []int {
	seen := map[int]bool{0: true}
	for _, r := range rules {
		if r.EmployeeMin >= 0 {
			seen[r.EmployeeMin] = true
		}
		if !r.EmployeeUnbounded() {
			seen[r.EmployeeMax+1] = true
		}
	}
	bounds := make([]int, 0, len(seen))
	for v := range seen {
		bounds = append(bounds, v)
	}
	sort.Ints(bounds)
	return bounds
}

func collectGMVBounds(rules []domain.SegmentRule) []float64 {
	seen := map[float64]bool{0: true}
	for _, r := range rules {
		if r.GMVMin >= 0 {
			seen[r.GMVMin] = true
		}
		if !r.GMVUnbounded() {
			seen[r.GMVMax] = true
		}
	}
	bounds := make([]float64, 0, len(seen))
	for v := range seen {
		bounds = append(bounds, v)
	}
	sort.Float64s(bounds)
	return bounds
}
