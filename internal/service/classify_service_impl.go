package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/salesops/segmatrix/internal/classify"
	"github.com/salesops/segmatrix/internal/domain"
	"github.com/salesops/segmatrix/internal/repository"
	"github.com/salesops/segmatrix/internal/warehouse"
)

type classifyService struct {
	matrices  repository.MatrixRepo
	batchSize int
}

func NewClassifyService(matrices repository.MatrixRepo, batchSize int) ClassifyService {
	if batchSize <= 0 {
		batchSize = 500
	}
	return &classifyService{matrices: matrices, batchSize: batchSize}
}

func (s *classifyService) ClassifyOne(ctx context.Context, employeeCount int, gmv float64) (*ClassifyOutcome, error) {
	rec, err := s.deployed(ctx)
	if err != nil {
		return nil, err
	}
	result, err := classify.New(&rec.RuleSet).Classify(employeeCount, gmv)
	if err != nil {
		return nil, err
	}
	return &ClassifyOutcome{Matrix: rec, Result: result}, nil
}

func (s *classifyService) RunBatch(ctx context.Context, src warehouse.RowSource, outDir string) (*BatchReport, error) {
	rec, err := s.deployed(ctx)
	if err != nil {
		return nil, err
	}
	grid, err := classify.BuildGrid(&rec.RuleSet)
	if err != nil {
		return nil, fmt.Errorf("indexing rule set: %w", err)
	}

	report := &BatchReport{
		RunID:        uuid.NewString(),
		Matrix:       rec,
		Distribution: make(map[domain.Segment]int),
	}

	outputPath := filepath.Join(outDir, fmt.Sprintf("segment_results_%s.csv", time.Now().Format("20060102_150405")))
	out, err := os.Create(outputPath)
	if err != nil {
		return nil, fmt.Errorf("creating output file: %w", err)
	}
	defer out.Close()

	w := csv.NewWriter(out)
	if err := w.Write([]string{"customer_id", "employee_count", "gmv", "segment", "employee_band", "gmv_band"}); err != nil {
		return nil, fmt.Errorf("writing output header: %w", err)
	}

	slog.Info("starting batch classification",
		"run_id", report.RunID, "matrix", rec.Name, "version", rec.Version, "output", outputPath)

	offset := 0
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		inputs, err := src.Fetch(ctx, offset, s.batchSize)
		if err != nil {
			return nil, fmt.Errorf("fetching batch at offset %d: %w", offset, err)
		}
		if len(inputs) == 0 {
			break
		}

		for _, input := range inputs {
			report.Total++
			result, err := grid.Classify(input.EmployeeCount, input.GMV)
			if err != nil {
				// One bad row must not abort the run; record it and move on.
				slog.Warn("record not classified",
					"customer_id", input.CustomerID,
					"employee_count", input.EmployeeCount,
					"gmv", input.GMV,
					"err", err)
				report.Anomalies = append(report.Anomalies, Anomaly{Input: input, Reason: err.Error()})
				continue
			}

			report.Classified++
			report.Distribution[result.Segment]++
			err = w.Write([]string{
				input.CustomerID,
				strconv.Itoa(input.EmployeeCount),
				strconv.FormatFloat(input.GMV, 'f', 2, 64),
				string(result.Segment),
				result.MatchedRule.EmployeeLabel(),
				result.MatchedRule.GMVLabel(),
			})
			if err != nil {
				return nil, fmt.Errorf("writing result row: %w", err)
			}
		}
		offset += len(inputs)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flushing output: %w", err)
	}
	report.OutputPath = outputPath

	slog.Info("batch classification finished",
		"run_id", report.RunID, "total", report.Total, "classified", report.Classified,
		"anomalies", len(report.Anomalies))
	return report, nil
}

func (s *classifyService) deployed(ctx context.Context) (*repository.MatrixRecord, error) {
	rec, err := s.matrices.Deployed(ctx)
	if err != nil {
		return nil, fmt.Errorf("no deployed matrix: %w", err)
	}
	return rec, nil
}
