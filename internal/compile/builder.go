// Package compile turns an authored SegmentMatrix into the flat, fingerprinted
// RuleSet the classifier evaluates. Compilation is the only path from the
// human-editable form to rules; every call site classifies against one
// compiled set instead of carrying its own copy of the thresholds.
package compile

import (
	"crypto/sha256"
	"fmt"
	"sort"

	"github.com/salesops/segmatrix/internal/domain"
)

// Build compiles the matrix into a RuleSet, one rule per cell. It fails with
// a MatrixParseError on the first unparseable band label and with a plain
// error on a malformed table (a skipped cell would silently open a gap).
// Output order is deterministic so rule diffs between matrix versions are
// reproducible.
func Build(m *domain.SegmentMatrix) (*domain.RuleSet, error) {
	if len(m.EmployeeBands) == 0 || len(m.GMVBands) == 0 {
		return nil, fmt.Errorf("matrix has no bands")
	}
	if len(m.Cells) != len(m.EmployeeBands) {
		return nil, fmt.Errorf("matrix has %d rows for %d employee bands", len(m.Cells), len(m.EmployeeBands))
	}

	type gmvBound struct{ min, max float64 }
	gmvBounds := make([]gmvBound, len(m.GMVBands))
	for j, label := range m.GMVBands {
		min, max, err := ParseGMVBand(label)
		if err != nil {
			return nil, &domain.MatrixParseError{Axis: "gmv", Index: j, Label: label, Cause: err.Error()}
		}
		gmvBounds[j] = gmvBound{min, max}
	}

	rules := make([]domain.SegmentRule, 0, len(m.EmployeeBands)*len(m.GMVBands))
	for i, label := range m.EmployeeBands {
		eMin, eMax, err := ParseEmployeeBand(label)
		if err != nil {
			return nil, &domain.MatrixParseError{Axis: "employee", Index: i, Label: label, Cause: err.Error()}
		}
		if len(m.Cells[i]) != len(m.GMVBands) {
			return nil, fmt.Errorf("row %q has %d cells for %d gmv bands", label, len(m.Cells[i]), len(m.GMVBands))
		}
		for j, segment := range m.Cells[i] {
			if segment == "" {
				return nil, fmt.Errorf("empty segment cell at (%q, %q)", label, m.GMVBands[j])
			}
			rules = append(rules, domain.SegmentRule{
				EmployeeMin: eMin,
				EmployeeMax: eMax,
				GMVMin:      gmvBounds[j].min,
				GMVMax:      gmvBounds[j].max,
				Segment:     domain.Segment(segment),
			})
		}
	}

	sort.Slice(rules, func(a, b int) bool {
		if rules[a].EmployeeMin != rules[b].EmployeeMin {
			return rules[a].EmployeeMin < rules[b].EmployeeMin
		}
		return rules[a].GMVMin < rules[b].GMVMin
	})

	return &domain.RuleSet{Rules: rules, Fingerprint: Fingerprint(rules)}, nil
}

// Fingerprint returns the SHA-256 hex digest of the canonical rule encoding.
// Matrix versions are identified by content, never by which file was edited
// last; two compilations of the same matrix always share a fingerprint.
func Fingerprint(rules []domain.SegmentRule) string {
	h := sha256.New()
	for _, r := range rules {
		fmt.Fprintf(h, "%d|%d|%g|%g|%s\n", r.EmployeeMin, r.EmployeeMax, r.GMVMin, r.GMVMax, r.Segment)
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}
