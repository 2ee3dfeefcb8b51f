package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/salesops/segmatrix/internal/compile"
	"github.com/salesops/segmatrix/internal/domain"
	"github.com/salesops/segmatrix/internal/importer"
	"github.com/salesops/segmatrix/internal/repository"
	"github.com/salesops/segmatrix/internal/validate"
)

type matrixService struct {
	matrices repository.MatrixRepo
}

func NewMatrixService(matrices repository.MatrixRepo) MatrixService {
	return &matrixService{matrices: matrices}
}

func (s *matrixService) Import(ctx context.Context, path string, opts ImportOptions) (*ImportResult, error) {
	matrix, err := importer.LoadMatrixFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading matrix file: %w", err)
	}
	if opts.Name != "" {
		matrix.Name = opts.Name
	}
	if opts.Version != "" {
		matrix.Version = opts.Version
	}
	if matrix.Version == "" {
		return nil, fmt.Errorf("matrix version is required (set it in the document or via --set-version)")
	}

	if errs := importer.ValidateMatrix(matrix); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	ruleSet, err := compile.Build(matrix)
	if err != nil {
		return nil, fmt.Errorf("compiling matrix: %w", err)
	}

	if existing, err := s.matrices.GetByFingerprint(ctx, ruleSet.Fingerprint); err == nil {
		return nil, fmt.Errorf("identical matrix already stored as %s@%s", existing.Name, existing.Version)
	}

	report := validate.Validate(ruleSet)

	source, err := importer.MarshalYAML(matrix)
	if err != nil {
		return nil, fmt.Errorf("serializing matrix source: %w", err)
	}

	rec := &repository.MatrixRecord{
		ID:          uuid.NewString(),
		Name:        matrix.Name,
		Version:     matrix.Version,
		Fingerprint: ruleSet.Fingerprint,
		Source:      string(source),
		IsValid:     report.IsValid(),
		CreatedAt:   time.Now().UTC(),
		RuleSet:     *ruleSet,
	}
	if err := s.matrices.Save(ctx, rec); err != nil {
		return nil, fmt.Errorf("storing matrix: %w", err)
	}

	if opts.Deploy {
		if !rec.IsValid {
			return &ImportResult{Record: rec, Report: report},
				fmt.Errorf("matrix %s@%s failed validation and was not deployed", rec.Name, rec.Version)
		}
		if err := s.matrices.Deploy(ctx, rec.ID, time.Now().UTC()); err != nil {
			return nil, fmt.Errorf("deploying matrix: %w", err)
		}
		now := time.Now().UTC()
		rec.DeployedAt = &now
	}

	return &ImportResult{Record: rec, Report: report}, nil
}

func (s *matrixService) ValidateFile(path string) (*domain.SegmentMatrix, *validate.ValidationReport, error) {
	matrix, err := importer.LoadMatrixFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("loading matrix file: %w", err)
	}
	if errs := importer.ValidateMatrix(matrix); len(errs) > 0 {
		return matrix, nil, formatValidationErrors(errs)
	}
	ruleSet, err := compile.Build(matrix)
	if err != nil {
		return matrix, nil, fmt.Errorf("compiling matrix: %w", err)
	}
	return matrix, validate.Validate(ruleSet), nil
}

func (s *matrixService) Get(ctx context.Context, name, version string) (*repository.MatrixRecord, error) {
	return s.matrices.GetByVersion(ctx, name, version)
}

func (s *matrixService) List(ctx context.Context) ([]*repository.MatrixRecord, error) {
	return s.matrices.List(ctx)
}

func (s *matrixService) Deployed(ctx context.Context) (*repository.MatrixRecord, error) {
	return s.matrices.Deployed(ctx)
}

func (s *matrixService) Deploy(ctx context.Context, name, version string) (*repository.MatrixRecord, error) {
	rec, err := s.matrices.GetByVersion(ctx, name, version)
	if err != nil {
		return nil, err
	}
	if !rec.IsValid {
		return nil, fmt.Errorf("matrix %s@%s failed validation and cannot be deployed", name, version)
	}
	now := time.Now().UTC()
	if err := s.matrices.Deploy(ctx, rec.ID, now); err != nil {
		return nil, err
	}
	rec.DeployedAt = &now
	return rec, nil
}

func (s *matrixService) Diff(ctx context.Context, oldName, oldVersion, newName, newVersion string) (*validate.MigrationReport, error) {
	oldRec, err := s.matrices.GetByVersion(ctx, oldName, oldVersion)
	if err != nil {
		return nil, fmt.Errorf("loading %s@%s: %w", oldName, oldVersion, err)
	}
	newRec, err := s.matrices.GetByVersion(ctx, newName, newVersion)
	if err != nil {
		return nil, fmt.Errorf("loading %s@%s: %w", newName, newVersion, err)
	}
	return validate.CompareRuleSets(&oldRec.RuleSet, &newRec.RuleSet), nil
}

func (s *matrixService) Delete(ctx context.Context, name, version string) error {
	rec, err := s.matrices.GetByVersion(ctx, name, version)
	if err != nil {
		return err
	}
	if rec.Deployed() {
		return fmt.Errorf("matrix %s@%s is deployed; deploy another version first", name, version)
	}
	return s.matrices.Delete(ctx, rec.ID)
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("matrix validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
