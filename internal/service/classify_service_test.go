package service

import (
	"context"
	"encoding/csv"
	"os"
	"strings"
	"testing"

	"github.com/salesops/segmatrix/internal/domain"
	"github.com/salesops/segmatrix/internal/repository"
	"github.com/salesops/segmatrix/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sliceSource serves a fixed record list page by page.
type sliceSource struct {
	records []domain.ClassificationInput
}

func (s *sliceSource) Fetch(_ context.Context, offset, limit int) ([]domain.ClassificationInput, error) {
	if offset >= len(s.records) {
		return nil, nil
	}
	end := offset + limit
	if end > len(s.records) {
		end = len(s.records)
	}
	return s.records[offset:end], nil
}

func newClassifyFixture(t *testing.T) (ClassifyService, MatrixService) {
	t.Helper()
	repo := repository.NewSQLiteMatrixRepo(testutil.NewTestDB(t))
	matrices := NewMatrixService(repo)
	return NewClassifyService(repo, 2), matrices
}

func deploySalesMatrix(t *testing.T, matrices MatrixService) {
	t.Helper()
	path := writeMatrixYAML(t, t.TempDir(), "sales.yaml", testutil.SalesMatrix())
	_, err := matrices.Import(context.Background(), path, ImportOptions{Deploy: true})
	require.NoError(t, err)
}

func TestClassifyService_ClassifyOne(t *testing.T) {
	classifier, matrices := newClassifyFixture(t)
	ctx := context.Background()

	_, err := classifier.ClassifyOne(ctx, 40, 35000)
	assert.ErrorContains(t, err, "no deployed matrix")

	deploySalesMatrix(t, matrices)

	outcome, err := classifier.ClassifyOne(ctx, 40, 35000)
	require.NoError(t, err)
	assert.Equal(t, domain.SegmentGrowth, outcome.Result.Segment)
	assert.Equal(t, "2.0", outcome.Matrix.Version)
	assert.Equal(t, "26-100", outcome.Result.MatchedRule.EmployeeLabel())

	_, err = classifier.ClassifyOne(ctx, -3, 35000)
	var invalid *domain.InvalidInputError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "employee_count", invalid.Field)
}

func TestClassifyService_RunBatch(t *testing.T) {
	classifier, matrices := newClassifyFixture(t)
	ctx := context.Background()
	deploySalesMatrix(t, matrices)

	src := &sliceSource{records: []domain.ClassificationInput{
		{CustomerID: "C-001", EmployeeCount: 10, GMV: 3000},     // Unassigned
		{CustomerID: "C-002", EmployeeCount: 40, GMV: 35000},    // Growth
		{CustomerID: "C-003", EmployeeCount: 1500, GMV: 900000}, // Enterprise
		{CustomerID: "C-004", EmployeeCount: -5, GMV: 1000},     // anomaly
		{CustomerID: "C-005", EmployeeCount: 300, GMV: 50000},   // Mid-Market
	}}

	outDir := t.TempDir()
	report, err := classifier.RunBatch(ctx, src, outDir)
	require.NoError(t, err)

	assert.Equal(t, 5, report.Total)
	assert.Equal(t, 4, report.Classified)
	require.Len(t, report.Anomalies, 1)
	assert.Equal(t, "C-004", report.Anomalies[0].Input.CustomerID)

	assert.Equal(t, map[domain.Segment]int{
		domain.SegmentUnassigned: 1,
		domain.SegmentGrowth:     1,
		domain.SegmentEnterprise: 1,
		domain.SegmentMidMarket:  1,
	}, report.Distribution)

	require.NotEmpty(t, report.OutputPath)
	assert.True(t, strings.HasPrefix(report.OutputPath, outDir))

	f, err := os.Open(report.OutputPath)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 5, "header plus one row per classified record")
	assert.Equal(t, []string{"customer_id", "employee_count", "gmv", "segment", "employee_band", "gmv_band"}, rows[0])
	assert.Equal(t, []string{"C-002", "40", "35000.00", "Growth", "26-100", "20k-100k"}, rows[2])
}

func TestClassifyService_RunBatchWithoutDeployment(t *testing.T) {
	classifier, _ := newClassifyFixture(t)
	_, err := classifier.RunBatch(context.Background(), &sliceSource{}, t.TempDir())
	assert.ErrorContains(t, err, "no deployed matrix")
}

func TestClassifyService_RunBatchCancelled(t *testing.T) {
	classifier, matrices := newClassifyFixture(t)
	deploySalesMatrix(t, matrices)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := classifier.RunBatch(ctx, &sliceSource{}, t.TempDir())
	assert.ErrorIs(t, err, context.Canceled)
}
