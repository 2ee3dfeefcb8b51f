package domain

import (
	"fmt"
	"math"
)

// UnboundedEmployeeMax marks an open-ended employee-count band (">1000").
// Using MaxInt keeps the inclusive containment test uniform across rules.
const UnboundedEmployeeMax = math.MaxInt

// SegmentRule maps one (employee range, GMV range) cell to a segment.
// Employee bounds are inclusive on both ends; GMV lower bound is inclusive
// and the upper bound exclusive, so adjacent bands share a boundary value
// without double-counting it. An open-ended GMV band carries +Inf as its max.
type SegmentRule struct {
	EmployeeMin int
	EmployeeMax int
	GMVMin      float64
	GMVMax      float64
	Segment     Segment
}

// Contains reports whether the rule's ranges contain the given point.
func (r SegmentRule) Contains(employeeCount int, gmv float64) bool {
	return employeeCount >= r.EmployeeMin && employeeCount <= r.EmployeeMax &&
		gmv >= r.GMVMin && gmv < r.GMVMax
}

// EmployeeUnbounded reports whether the employee range is open-ended.
func (r SegmentRule) EmployeeUnbounded() bool {
	return r.EmployeeMax == UnboundedEmployeeMax
}

// GMVUnbounded reports whether the GMV range is open-ended.
func (r SegmentRule) GMVUnbounded() bool {
	return math.IsInf(r.GMVMax, 1)
}

// EmployeeLabel renders the employee range in the authored band form.
func (r SegmentRule) EmployeeLabel() string {
	if r.EmployeeUnbounded() {
		return fmt.Sprintf(">%d", r.EmployeeMin-1)
	}
	return fmt.Sprintf("%d-%d", r.EmployeeMin, r.EmployeeMax)
}

// GMVLabel renders the GMV range in the authored band form.
func (r SegmentRule) GMVLabel() string {
	if r.GMVUnbounded() {
		return ">" + formatGMVBound(r.GMVMin)
	}
	return formatGMVBound(r.GMVMin) + "-" + formatGMVBound(r.GMVMax)
}

func formatGMVBound(v float64) string {
	if v >= 1000 && math.Mod(v, 1000) == 0 {
		return fmt.Sprintf("%.0fk", v/1000)
	}
	return fmt.Sprintf("%.0f", v)
}

func (r SegmentRule) String() string {
	return fmt.Sprintf("[ee %s, gmv %s -> %s]", r.EmployeeLabel(), r.GMVLabel(), r.Segment)
}

// RuleSet is an immutable compiled rule list. Callers must never mutate a
// built RuleSet; a threshold change means compiling a new one and swapping
// the reference. Fingerprint is a SHA-256 over the canonical rule encoding,
// so two compilations of the same matrix are identical by construction.
type RuleSet struct {
	Rules       []SegmentRule
	Fingerprint string
}

// ClassificationInput is one customer record supplied by an external source.
type ClassificationInput struct {
	CustomerID    string
	EmployeeCount int
	GMV           float64
}

// ClassificationResult carries the assigned segment plus the rule that
// matched, kept for auditability when a threshold placement is disputed.
type ClassificationResult struct {
	Segment     Segment
	MatchedRule SegmentRule
}
