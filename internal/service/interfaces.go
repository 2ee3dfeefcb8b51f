package service

import (
	"context"

	"github.com/salesops/segmatrix/internal/domain"
	"github.com/salesops/segmatrix/internal/repository"
	"github.com/salesops/segmatrix/internal/validate"
	"github.com/salesops/segmatrix/internal/warehouse"
)

// ImportOptions override or supply authored-matrix metadata at import time.
// CSV files carry no name/version, so the CLI passes them as flags.
type ImportOptions struct {
	Name    string
	Version string
	Deploy  bool
}

// ImportResult is the outcome of importing one matrix file: the stored
// record and the validation report it was saved with. An invalid matrix is
// still stored (so its report is inspectable later) but never deployable.
type ImportResult struct {
	Record *repository.MatrixRecord
	Report *validate.ValidationReport
}

type MatrixService interface {
	Import(ctx context.Context, path string, opts ImportOptions) (*ImportResult, error)
	// ValidateFile compiles and validates a matrix file without storing it.
	ValidateFile(path string) (*domain.SegmentMatrix, *validate.ValidationReport, error)
	Get(ctx context.Context, name, version string) (*repository.MatrixRecord, error)
	List(ctx context.Context) ([]*repository.MatrixRecord, error)
	Deployed(ctx context.Context) (*repository.MatrixRecord, error)
	Deploy(ctx context.Context, name, version string) (*repository.MatrixRecord, error)
	// Diff reports the migration impact of moving from one stored version
	// to another.
	Diff(ctx context.Context, oldName, oldVersion, newName, newVersion string) (*validate.MigrationReport, error)
	Delete(ctx context.Context, name, version string) error
}

// ClassifyOutcome pairs a single classification with the matrix version
// that produced it.
type ClassifyOutcome struct {
	Matrix *repository.MatrixRecord
	Result domain.ClassificationResult
}

// Anomaly is one batch record that could not be classified. Anomalous rows
// are logged and reported, never silently labeled with a default segment.
type Anomaly struct {
	Input  domain.ClassificationInput
	Reason string
}

// BatchReport summarizes one batch classification run.
type BatchReport struct {
	RunID        string
	Matrix       *repository.MatrixRecord
	Total        int
	Classified   int
	Distribution map[domain.Segment]int
	Anomalies    []Anomaly
	OutputPath   string
}

type ClassifyService interface {
	// ClassifyOne classifies a single record against the deployed matrix.
	ClassifyOne(ctx context.Context, employeeCount int, gmv float64) (*ClassifyOutcome, error)
	// RunBatch classifies every record the source yields against the
	// deployed matrix and writes a timestamped CSV export to outDir.
	RunBatch(ctx context.Context, src warehouse.RowSource, outDir string) (*BatchReport, error)
}
