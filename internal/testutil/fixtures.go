package testutil

import (
	"testing"

	"github.com/salesops/segmatrix/internal/compile"
	"github.com/salesops/segmatrix/internal/domain"
)

// SalesMatrix returns the current segmentation matrix revision, the one with
// the Enterprise GMV threshold at 700k.
func SalesMatrix() *domain.SegmentMatrix {
	return &domain.SegmentMatrix{
		Name:     "sales-segmentation",
		Version:  "2.0",
		GMVBands: []string{"0-7k", "7k-20k", "20k-100k", "100k-150k", "150k-700k", ">700k"},
		EmployeeBands: []string{
			"0-25", "26-100", "101-250", "251-500", "501-1000", ">1000",
		},
		Cells: [][]string{
			{"Unassigned", "BSC", "BSC", "Growth", "Mid-Market", "Enterprise"},
			{"Unassigned", "BSC", "Growth", "Growth", "Mid-Market", "Enterprise"},
			{"Unassigned", "BSC", "Growth", "Mid-Market", "Mid-Market", "Enterprise"},
			{"BSC", "Growth", "Mid-Market", "Mid-Market", "Enterprise", "Enterprise"},
			{"BSC", "Growth", "Mid-Market", "Enterprise", "Enterprise", "Enterprise"},
			{"BSC", "Enterprise", "Enterprise", "Enterprise", "Enterprise", "Enterprise"},
		},
	}
}

// SalesMatrixV1 returns the previous revision, identical except the
// Enterprise GMV threshold sits at 600k.
func SalesMatrixV1() *domain.SegmentMatrix {
	m := SalesMatrix()
	m.Version = "1.0"
	m.GMVBands = []string{"0-7k", "7k-20k", "20k-100k", "100k-150k", "150k-600k", ">600k"}
	return m
}

// MustBuild compiles a matrix or fails the test.
func MustBuild(t *testing.T, m *domain.SegmentMatrix) *domain.RuleSet {
	t.Helper()
	rs, err := compile.Build(m)
	if err != nil {
		t.Fatalf("failed to compile fixture matrix %s@%s: %v", m.Name, m.Version, err)
	}
	return rs
}
