package importer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/salesops/segmatrix/internal/domain"
	"gopkg.in/yaml.v3"
)

// MatrixDocument is the top-level YAML structure for an authored matrix.
type MatrixDocument struct {
	Name     string      `yaml:"name"`
	Version  string      `yaml:"version"`
	GMVBands []string    `yaml:"gmv_bands"`
	Rows     []RowImport `yaml:"rows"`
}

// RowImport is one employee band and its segment per GMV band, in
// gmv_bands order.
type RowImport struct {
	Employees string   `yaml:"employees"`
	Segments  []string `yaml:"segments"`
}

// LoadMatrixFile reads an authored matrix from a YAML or CSV file,
// dispatching on the file extension.
func LoadMatrixFile(path string) (*domain.SegmentMatrix, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	case ".csv":
		m, err := ParseCSV(data)
		if err != nil {
			return nil, err
		}
		// CSV carries no name/version; default the name to the file stem.
		m.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		return m, nil
	default:
		return nil, fmt.Errorf("unsupported matrix format %q (expected .yaml, .yml or .csv)", filepath.Ext(path))
	}
}

// ParseYAML parses a MatrixDocument into the authored matrix form.
func ParseYAML(data []byte) (*domain.SegmentMatrix, error) {
	var doc MatrixDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing matrix document: %w", err)
	}

	m := &domain.SegmentMatrix{
		Name:     doc.Name,
		Version:  doc.Version,
		GMVBands: doc.GMVBands,
	}
	for _, row := range doc.Rows {
		m.EmployeeBands = append(m.EmployeeBands, row.Employees)
		m.Cells = append(m.Cells, row.Segments)
	}
	return m, nil
}

// MarshalYAML renders a matrix back into its document form, used when
// persisting the authored source alongside the compiled rules.
func MarshalYAML(m *domain.SegmentMatrix) ([]byte, error) {
	doc := MatrixDocument{
		Name:     m.Name,
		Version:  m.Version,
		GMVBands: m.GMVBands,
	}
	for i, band := range m.EmployeeBands {
		var segments []string
		if i < len(m.Cells) {
			segments = m.Cells[i]
		}
		doc.Rows = append(doc.Rows, RowImport{Employees: band, Segments: segments})
	}
	return yaml.Marshal(&doc)
}
