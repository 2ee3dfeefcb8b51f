package compile

import (
	"errors"
	"math"
	"testing"

	"github.com/salesops/segmatrix/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallMatrix() *domain.SegmentMatrix {
	return &domain.SegmentMatrix{
		Name:          "test",
		Version:       "1.0",
		GMVBands:      []string{"0-10k", ">10k"},
		EmployeeBands: []string{"0-50", ">50"},
		Cells: [][]string{
			{"Unassigned", "Growth"},
			{"BSC", "Enterprise"},
		},
	}
}

func TestBuild_EmitsOneRulePerCell(t *testing.T) {
	rs, err := Build(smallMatrix())
	require.NoError(t, err)
	require.Len(t, rs.Rules, 4)

	// Sorted by employee min, then gmv min.
	assert.Equal(t, domain.SegmentRule{EmployeeMin: 0, EmployeeMax: 50, GMVMin: 0, GMVMax: 10000, Segment: "Unassigned"}, rs.Rules[0])
	assert.Equal(t, domain.SegmentRule{EmployeeMin: 0, EmployeeMax: 50, GMVMin: 10000, GMVMax: math.Inf(1), Segment: "Growth"}, rs.Rules[1])
	assert.Equal(t, domain.SegmentRule{EmployeeMin: 51, EmployeeMax: domain.UnboundedEmployeeMax, GMVMin: 0, GMVMax: 10000, Segment: "BSC"}, rs.Rules[2])
	assert.Equal(t, domain.SegmentRule{EmployeeMin: 51, EmployeeMax: domain.UnboundedEmployeeMax, GMVMin: 10000, GMVMax: math.Inf(1), Segment: "Enterprise"}, rs.Rules[3])
}

func TestBuild_Deterministic(t *testing.T) {
	a, err := Build(smallMatrix())
	require.NoError(t, err)
	b, err := Build(smallMatrix())
	require.NoError(t, err)

	assert.Equal(t, a.Rules, b.Rules)
	assert.Equal(t, a.Fingerprint, b.Fingerprint)
	assert.NotEmpty(t, a.Fingerprint)
}

func TestBuild_FingerprintTracksContent(t *testing.T) {
	a, err := Build(smallMatrix())
	require.NoError(t, err)

	changed := smallMatrix()
	changed.Cells[1][1] = "Mid-Market"
	b, err := Build(changed)
	require.NoError(t, err)

	assert.NotEqual(t, a.Fingerprint, b.Fingerprint)
}

func TestBuild_BadGMVBand(t *testing.T) {
	m := smallMatrix()
	m.GMVBands[1] = "lots"

	_, err := Build(m)
	require.Error(t, err)

	var parseErr *domain.MatrixParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "gmv", parseErr.Axis)
	assert.Equal(t, 1, parseErr.Index)
	assert.Equal(t, "lots", parseErr.Label)
}

func TestBuild_BadEmployeeBand(t *testing.T) {
	m := smallMatrix()
	m.EmployeeBands[0] = "0-25.5"

	_, err := Build(m)
	require.Error(t, err)

	var parseErr *domain.MatrixParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "employee", parseErr.Axis)
	assert.Equal(t, "0-25.5", parseErr.Label)
}

func TestBuild_RaggedRowRejected(t *testing.T) {
	m := smallMatrix()
	m.Cells[1] = []string{"BSC"}

	_, err := Build(m)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 cells for 2 gmv bands")
}

func TestBuild_EmptyCellRejected(t *testing.T) {
	// An empty cell must halt compilation; skipping it would silently
	// open a gap in the rule set.
	m := smallMatrix()
	m.Cells[0][1] = ""

	_, err := Build(m)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty segment cell")
}

func TestBuild_NoBands(t *testing.T) {
	_, err := Build(&domain.SegmentMatrix{Name: "empty"})
	require.Error(t, err)
}
