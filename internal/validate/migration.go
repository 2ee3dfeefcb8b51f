package validate

import (
	"sort"

	"github.com/salesops/segmatrix/internal/domain"
)

// SegmentShift groups the regions whose segment moved from one name to
// another between two rule-set versions.
type SegmentShift struct {
	From    domain.Segment
	To      domain.Segment
	Regions []Region
}

// MigrationReport is the mechanical form of the before/after threshold
// analysis previously hand-written per matrix revision: every region of the
// plane whose segment changes, grouped by (old, new) pair, plus any region
// where either version is defective (uncovered or multiply covered).
type MigrationReport struct {
	Shifts []SegmentShift
	// Defects are regions where old or new classified to zero rules or to
	// more than one; they are excluded from Shifts rather than guessed at.
	Defects      []Region
	ChangedCells int
	TotalCells   int
}

// HasChanges reports whether any region classifies differently.
func (r *MigrationReport) HasChanges() bool {
	return r.ChangedCells > 0
}

// CompareRuleSets sweeps the union boundary grid of both versions and
// classifies each cell's representative under each. The union grid makes
// the diff exact: a boundary that moved in either version starts its own
// cell, so a shifted threshold shows up as precisely the regions between
// the old and new boundary values.
func CompareRuleSets(oldSet, newSet *domain.RuleSet) *MigrationReport {
	report := &MigrationReport{}
	shifts := make(map[[2]domain.Segment]*SegmentShift)

	union := make([]domain.SegmentRule, 0, len(oldSet.Rules)+len(newSet.Rules))
	union = append(union, oldSet.Rules...)
	union = append(union, newSet.Rules...)

	sweep(union, func(region Region, e int, g float64) {
		report.TotalCells++

		oldSeg, oldOK := soleSegment(oldSet.Rules, e, g)
		newSeg, newOK := soleSegment(newSet.Rules, e, g)
		if !oldOK || !newOK {
			report.Defects = append(report.Defects, region)
			return
		}
		if oldSeg == newSeg {
			return
		}

		report.ChangedCells++
		key := [2]domain.Segment{oldSeg, newSeg}
		shift, ok := shifts[key]
		if !ok {
			shift = &SegmentShift{From: oldSeg, To: newSeg}
			shifts[key] = shift
		}
		shift.Regions = append(shift.Regions, region)
	})

	for _, s := range shifts {
		report.Shifts = append(report.Shifts, *s)
	}
	sort.Slice(report.Shifts, func(a, b int) bool {
		if report.Shifts[a].From != report.Shifts[b].From {
			return report.Shifts[a].From < report.Shifts[b].From
		}
		return report.Shifts[a].To < report.Shifts[b].To
	})
	return report
}

// soleSegment returns the segment of the single rule containing the point,
// or false when zero or multiple rules contain it.
func soleSegment(rules []domain.SegmentRule, e int, g float64) (domain.Segment, bool) {
	var seg domain.Segment
	n := 0
	for _, r := range rules {
		if r.Contains(e, g) {
			seg = r.Segment
			n++
		}
	}
	return seg, n == 1
}
