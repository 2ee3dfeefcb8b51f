package importer

import (
	"fmt"

	"github.com/salesops/segmatrix/internal/domain"
)

// ValidateMatrix checks an authored matrix for structural errors before
// compilation. Returns a slice of all validation errors found; band-label
// grammar and range coverage are the compiler's and validator's concerns,
// not checked here.
func ValidateMatrix(m *domain.SegmentMatrix) []error {
	var errs []error

	if m.Name == "" {
		errs = append(errs, fmt.Errorf("matrix name is required"))
	}
	if len(m.EmployeeBands) == 0 {
		errs = append(errs, fmt.Errorf("matrix needs at least one employee band"))
	}
	if len(m.GMVBands) == 0 {
		errs = append(errs, fmt.Errorf("matrix needs at least one gmv band"))
	}

	seen := map[string]bool{}
	for i, band := range m.EmployeeBands {
		if band == "" {
			errs = append(errs, fmt.Errorf("rows[%d].employees is required", i))
			continue
		}
		if seen[band] {
			errs = append(errs, fmt.Errorf("rows[%d].employees: duplicate band %q", i, band))
		}
		seen[band] = true
	}
	seen = map[string]bool{}
	for j, band := range m.GMVBands {
		if band == "" {
			errs = append(errs, fmt.Errorf("gmv_bands[%d] is required", j))
			continue
		}
		if seen[band] {
			errs = append(errs, fmt.Errorf("gmv_bands[%d]: duplicate band %q", j, band))
		}
		seen[band] = true
	}

	if len(m.Cells) != len(m.EmployeeBands) {
		errs = append(errs, fmt.Errorf("matrix has %d rows for %d employee bands", len(m.Cells), len(m.EmployeeBands)))
	}
	for i, row := range m.Cells {
		if len(row) != len(m.GMVBands) {
			errs = append(errs, fmt.Errorf("rows[%d].segments has %d entries for %d gmv bands", i, len(row), len(m.GMVBands)))
		}
		for j, segment := range row {
			if segment == "" {
				errs = append(errs, fmt.Errorf("rows[%d].segments[%d] is required", i, j))
			} else if !domain.ValidSegments[segment] {
				errs = append(errs, fmt.Errorf("rows[%d].segments[%d]: unknown segment %q", i, j, segment))
			}
		}
	}

	return errs
}
