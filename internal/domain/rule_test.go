package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContains_EmployeeBoundsInclusive(t *testing.T) {
	r := SegmentRule{EmployeeMin: 0, EmployeeMax: 25, GMVMin: 0, GMVMax: 7000, Segment: SegmentUnassigned}

	assert.True(t, r.Contains(0, 0))
	assert.True(t, r.Contains(25, 6999.99), "upper employee bound is inclusive")
	assert.False(t, r.Contains(26, 0))
}

func TestContains_GMVUpperBoundExclusive(t *testing.T) {
	r := SegmentRule{EmployeeMin: 0, EmployeeMax: 25, GMVMin: 100000, GMVMax: 150000, Segment: SegmentGrowth}

	assert.True(t, r.Contains(10, 100000), "lower GMV bound is inclusive")
	assert.True(t, r.Contains(10, 149999.99))
	assert.False(t, r.Contains(10, 150000), "upper GMV bound is exclusive")
	assert.False(t, r.Contains(10, 99999.99))
}

func TestContains_UnboundedMaxima(t *testing.T) {
	r := SegmentRule{
		EmployeeMin: 1001,
		EmployeeMax: UnboundedEmployeeMax,
		GMVMin:      700000,
		GMVMax:      math.Inf(1),
		Segment:     SegmentEnterprise,
	}

	assert.True(t, r.Contains(1001, 700000))
	assert.True(t, r.Contains(1000000, 1e12))
	assert.False(t, r.Contains(1000, 700000))
	assert.True(t, r.EmployeeUnbounded())
	assert.True(t, r.GMVUnbounded())
}

func TestLabels(t *testing.T) {
	cases := []struct {
		rule     SegmentRule
		employee string
		gmv      string
	}{
		{
			SegmentRule{EmployeeMin: 0, EmployeeMax: 25, GMVMin: 0, GMVMax: 7000},
			"0-25", "0-7k",
		},
		{
			SegmentRule{EmployeeMin: 1001, EmployeeMax: UnboundedEmployeeMax, GMVMin: 700000, GMVMax: math.Inf(1)},
			">1000", ">700k",
		},
		{
			SegmentRule{EmployeeMin: 26, EmployeeMax: 100, GMVMin: 500, GMVMax: 1500},
			"26-100", "500-1500",
		},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.employee, tc.rule.EmployeeLabel())
		assert.Equal(t, tc.gmv, tc.rule.GMVLabel())
	}
}
