package warehouse

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/salesops/segmatrix/internal/domain"
)

// CSVSource serves classification inputs from a flat extract file with a
// customer_id,employee_count,gmv header. Rows that fail numeric parsing are
// passed through with their zero values so the batch run can surface them
// as per-record anomalies instead of aborting the file.
type CSVSource struct {
	inputs []domain.ClassificationInput
}

// OpenCSV reads the whole extract up front; batch extracts are small enough
// that paging only matters for the warehouse source.
func OpenCSV(path string) (*CSVSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing extract %s: %w", path, err)
	}
	if len(records) == 0 {
		return &CSVSource{}, nil
	}

	src := &CSVSource{}
	for i, record := range records {
		if i == 0 && looksLikeHeader(record) {
			continue
		}
		if len(record) < 3 {
			return nil, fmt.Errorf("extract row %d has %d columns, want 3", i+1, len(record))
		}
		employees, err := strconv.Atoi(strings.TrimSpace(record[1]))
		if err != nil {
			employees = -1 // surfaced later as InvalidInputError
		}
		gmv, err := strconv.ParseFloat(strings.TrimSpace(record[2]), 64)
		if err != nil {
			gmv = -1
		}
		src.inputs = append(src.inputs, domain.ClassificationInput{
			CustomerID:    strings.TrimSpace(record[0]),
			EmployeeCount: employees,
			GMV:           gmv,
		})
	}
	return src, nil
}

func (s *CSVSource) Fetch(ctx context.Context, offset, limit int) ([]domain.ClassificationInput, error) {
	if offset >= len(s.inputs) {
		return nil, nil
	}
	end := offset + limit
	if end > len(s.inputs) {
		end = len(s.inputs)
	}
	return s.inputs[offset:end], nil
}

// Close satisfies the closeable-source contract; a CSV source holds no
// open handle after loading.
func (s *CSVSource) Close() error {
	return nil
}

func looksLikeHeader(record []string) bool {
	if len(record) < 2 {
		return false
	}
	_, err := strconv.Atoi(strings.TrimSpace(record[1]))
	return err != nil
}
