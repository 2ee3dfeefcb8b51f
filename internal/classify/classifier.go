// Package classify evaluates customer records against a compiled RuleSet.
// Both the linear classifier and the grid index are pure and safe for
// concurrent use: they never mutate the rule set after construction, and a
// threshold change means building a new classifier from a new RuleSet, not
// updating one in place.
package classify

import (
	"math"

	"github.com/salesops/segmatrix/internal/domain"
)

// Classifier assigns exactly one segment per record by linear scan over the
// rule list. For the rule-set sizes in use (a few dozen rules) this is the
// whole engine; Grid provides the bracket-lookup path for batch runs.
type Classifier struct {
	rules []domain.SegmentRule
}

// New creates a Classifier over the given compiled rule set.
func New(rs *domain.RuleSet) *Classifier {
	return &Classifier{rules: rs.Rules}
}

// Classify returns the segment for one customer record. Negative or
// non-finite inputs fail with InvalidInputError naming the field. An input
// no rule contains fails with UnclassifiedError: a validated rule set is
// total, so a miss means the validator was bypassed and must surface, never
// default to an arbitrary segment.
func (c *Classifier) Classify(employeeCount int, gmv float64) (domain.ClassificationResult, error) {
	if err := CheckInput(employeeCount, gmv); err != nil {
		return domain.ClassificationResult{}, err
	}
	for _, r := range c.rules {
		if r.Contains(employeeCount, gmv) {
			return domain.ClassificationResult{Segment: r.Segment, MatchedRule: r}, nil
		}
	}
	return domain.ClassificationResult{}, &domain.UnclassifiedError{EmployeeCount: employeeCount, GMV: gmv}
}

// CheckInput validates the classify() preconditions.
func CheckInput(employeeCount int, gmv float64) error {
	if employeeCount < 0 {
		return &domain.InvalidInputError{Field: "employee_count", Value: float64(employeeCount)}
	}
	if math.IsNaN(gmv) || math.IsInf(gmv, 0) || gmv < 0 {
		return &domain.InvalidInputError{Field: "gmv", Value: gmv}
	}
	return nil
}
