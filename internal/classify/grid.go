package classify

import (
	"fmt"
	"math"
	"sort"

	"github.com/salesops/segmatrix/internal/domain"
)

// Grid is a bracket-lookup index over a validated rule set: the distinct
// boundary values of each axis partition the plane into cells that each fall
// inside exactly one rule, so a lookup is one binary search per axis. Build
// it once per rule set and share it across goroutines.
type Grid struct {
	eBounds []int     // ascending employee cell starts; eBounds[0] == 0
	gBounds []float64 // ascending gmv cell starts; gBounds[0] == 0
	rules   []domain.SegmentRule
	// cell[i][j] indexes rules for the cell starting at (eBounds[i], gBounds[j]).
	cell [][]int
}

// BuildGrid indexes a rule set that has already passed validation. A cell
// covered by zero rules or by more than one is a defect the validator should
// have caught, and fails the build.
func BuildGrid(rs *domain.RuleSet) (*Grid, error) {
	if len(rs.Rules) == 0 {
		return nil, fmt.Errorf("empty rule set")
	}

	g := &Grid{
		eBounds: employeeBounds(rs.Rules),
		gBounds: gmvBounds(rs.Rules),
		rules:   rs.Rules,
	}

	g.cell = make([][]int, len(g.eBounds))
	for i, e := range g.eBounds {
		g.cell[i] = make([]int, len(g.gBounds))
		for j, gv := range g.gBounds {
			idx := -1
			for k, r := range rs.Rules {
				if !r.Contains(e, gv) {
					continue
				}
				if idx >= 0 {
					return nil, fmt.Errorf("rules %s and %s overlap at (%d, %g): rule set was not validated", rs.Rules[idx], r, e, gv)
				}
				idx = k
			}
			if idx < 0 {
				return nil, fmt.Errorf("no rule covers (%d, %g): rule set was not validated", e, gv)
			}
			g.cell[i][j] = idx
		}
	}
	return g, nil
}

// Classify resolves one record via binary-search bracket lookup per axis.
// Input preconditions and the no-default contract match Classifier.Classify.
func (g *Grid) Classify(employeeCount int, gmv float64) (domain.ClassificationResult, error) {
	if err := CheckInput(employeeCount, gmv); err != nil {
		return domain.ClassificationResult{}, err
	}

	// Largest cell start <= value on each axis.
	i := sort.SearchInts(g.eBounds, employeeCount+1) - 1
	j := sort.SearchFloat64s(g.gBounds, math.Nextafter(gmv, math.Inf(1))) - 1
	if i < 0 || j < 0 {
		return domain.ClassificationResult{}, &domain.UnclassifiedError{EmployeeCount: employeeCount, GMV: gmv}
	}

	r := g.rules[g.cell[i][j]]
	if !r.Contains(employeeCount, gmv) {
		// Cannot happen for a grid built from a total rule set; kept as the
		// explicit contract failure rather than a silent mislabel.
		return domain.ClassificationResult{}, &domain.UnclassifiedError{EmployeeCount: employeeCount, GMV: gmv}
	}
	return domain.ClassificationResult{Segment: r.Segment, MatchedRule: r}, nil
}

// employeeBounds returns the ascending distinct cell-start values on the
// employee axis: every rule's min, every bounded rule's max+1, and 0 so the
// grid spans the whole non-negative domain.
func employeeBounds(rules []domain.SegmentRule) []int {
	seen := map[int]bool{0: true}
	for _, r := range rules {
		seen[r.EmployeeMin] = true
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

// gmvBounds is the GMV-axis counterpart; upper bounds are exclusive, so a
// rule's max is directly the next cell's start.
func gmvBounds(rules []domain.SegmentRule) []float64 {
	seen := map[float64]bool{0: true}
	for _, r := range rules {
		seen[r.GMVMin] = true
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
