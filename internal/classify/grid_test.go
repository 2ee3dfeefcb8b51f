package classify

import (
	"math"
	"math/rand"
	"testing"

	"github.com/salesops/segmatrix/internal/domain"
	"github.com/salesops/segmatrix/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGrid_MatchesLinearScan property-tests that the bracket lookup agrees
// with the linear classifier everywhere, including fractional GMV values.
func TestGrid_MatchesLinearScan(t *testing.T) {
	rs := testutil.MustBuild(t, testutil.SalesMatrix())
	linear := New(rs)
	grid, err := BuildGrid(rs)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 2000; trial++ {
		e := rng.Intn(3000)
		g := rng.Float64() * 1_000_000

		want, err := linear.Classify(e, g)
		require.NoError(t, err, "trial %d: e=%d g=%v", trial, e, g)
		got, err := grid.Classify(e, g)
		require.NoError(t, err, "trial %d: e=%d g=%v", trial, e, g)

		assert.Equal(t, want, got, "trial %d: e=%d g=%v", trial, e, g)
	}
}

func TestGrid_ExactBoundaryPoints(t *testing.T) {
	rs := testutil.MustBuild(t, testutil.SalesMatrix())
	linear := New(rs)
	grid, err := BuildGrid(rs)
	require.NoError(t, err)

	employeePoints := []int{0, 25, 26, 100, 101, 250, 251, 500, 501, 1000, 1001, 99999}
	gmvPoints := []float64{0, 6999.99, 7000, 19999.99, 20000, 100000, 149999.99, 150000, 699999.99, 700000, 5e6}

	for _, e := range employeePoints {
		for _, g := range gmvPoints {
			want, err := linear.Classify(e, g)
			require.NoError(t, err, "e=%d g=%v", e, g)
			got, err := grid.Classify(e, g)
			require.NoError(t, err, "e=%d g=%v", e, g)
			assert.Equal(t, want.Segment, got.Segment, "e=%d g=%v", e, g)
		}
	}
}

func TestBuildGrid_RejectsGappedRuleSet(t *testing.T) {
	rs := &domain.RuleSet{Rules: []domain.SegmentRule{
		{EmployeeMin: 0, EmployeeMax: 100, GMVMin: 0, GMVMax: 50000, Segment: domain.SegmentBSC},
		{EmployeeMin: 0, EmployeeMax: 100, GMVMin: 60000, GMVMax: math.Inf(1), Segment: domain.SegmentGrowth},
	}}

	_, err := BuildGrid(rs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not validated")
}

func TestBuildGrid_RejectsOverlappingRuleSet(t *testing.T) {
	rs := &domain.RuleSet{Rules: []domain.SegmentRule{
		{EmployeeMin: 0, EmployeeMax: domain.UnboundedEmployeeMax, GMVMin: 0, GMVMax: math.Inf(1), Segment: domain.SegmentBSC},
		{EmployeeMin: 0, EmployeeMax: 10, GMVMin: 0, GMVMax: 1000, Segment: domain.SegmentGrowth},
	}}

	_, err := BuildGrid(rs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "overlap")
}

func TestBuildGrid_EmptyRuleSet(t *testing.T) {
	_, err := BuildGrid(&domain.RuleSet{})
	require.Error(t, err)
}

func TestGrid_InvalidInput(t *testing.T) {
	rs := testutil.MustBuild(t, testutil.SalesMatrix())
	grid, err := BuildGrid(rs)
	require.NoError(t, err)

	_, err = grid.Classify(-1, 100)
	assert.Error(t, err)
	_, err = grid.Classify(10, math.NaN())
	assert.Error(t, err)
}
