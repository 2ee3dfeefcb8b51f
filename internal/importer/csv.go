package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/salesops/segmatrix/internal/domain"
)

// ParseCSV parses the spreadsheet export form of a matrix: the header row is
// a corner label (conventionally "EE") followed by the GMV band labels, and
// each data row is an employee band label followed by one segment per GMV
// band.
func ParseCSV(data []byte) (*domain.SegmentMatrix, error) {
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing matrix csv: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("matrix csv needs a header row and at least one band row")
	}

	header := records[0]
	if len(header) < 2 {
		return nil, fmt.Errorf("matrix csv header needs at least one gmv band column")
	}

	m := &domain.SegmentMatrix{}
	for _, label := range header[1:] {
		m.GMVBands = append(m.GMVBands, strings.TrimSpace(label))
	}

	for _, record := range records[1:] {
		m.EmployeeBands = append(m.EmployeeBands, strings.TrimSpace(record[0]))
		row := make([]string, 0, len(record)-1)
		for _, cell := range record[1:] {
			row = append(row, strings.TrimSpace(cell))
		}
		m.Cells = append(m.Cells, row)
	}
	return m, nil
}
