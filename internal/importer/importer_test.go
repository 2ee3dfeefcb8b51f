package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/salesops/segmatrix/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `name: sales-segmentation
version: "2.0"
gmv_bands: ["0-7k", "7k-20k", ">20k"]
rows:
  - employees: "0-25"
    segments: ["Unassigned", "BSC", "Growth"]
  - employees: ">25"
    segments: ["BSC", "Growth", "Enterprise"]
`

func TestParseYAML(t *testing.T) {
	m, err := ParseYAML([]byte(sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "sales-segmentation", m.Name)
	assert.Equal(t, "2.0", m.Version)
	assert.Equal(t, []string{"0-7k", "7k-20k", ">20k"}, m.GMVBands)
	assert.Equal(t, []string{"0-25", ">25"}, m.EmployeeBands)
	require.Len(t, m.Cells, 2)
	assert.Equal(t, []string{"BSC", "Growth", "Enterprise"}, m.Cells[1])
}

func TestParseYAML_Malformed(t *testing.T) {
	_, err := ParseYAML([]byte("rows: {not: [a, row list"))
	assert.Error(t, err)
}

func TestYAMLRoundTrip(t *testing.T) {
	m, err := ParseYAML([]byte(sampleYAML))
	require.NoError(t, err)

	data, err := MarshalYAML(m)
	require.NoError(t, err)

	again, err := ParseYAML(data)
	require.NoError(t, err)
	assert.Equal(t, m, again)
}

func TestParseCSV(t *testing.T) {
	csvData := "EE,0-7k,7k-20k,>20k\n" +
		"0-25,Unassigned,BSC,Growth\n" +
		">25, BSC ,Growth,Enterprise\n"

	m, err := ParseCSV([]byte(csvData))
	require.NoError(t, err)

	assert.Equal(t, []string{"0-7k", "7k-20k", ">20k"}, m.GMVBands)
	assert.Equal(t, []string{"0-25", ">25"}, m.EmployeeBands)
	assert.Equal(t, "BSC", m.Cells[1][0], "cell whitespace is trimmed")
}

func TestParseCSV_TooShort(t *testing.T) {
	_, err := ParseCSV([]byte("EE,0-7k\n"))
	assert.ErrorContains(t, err, "header row")

	_, err = ParseCSV([]byte("EE\n0-25\n"))
	assert.ErrorContains(t, err, "gmv band column")
}

func TestLoadMatrixFile(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "sales.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(sampleYAML), 0o644))

	m, err := LoadMatrixFile(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, "sales-segmentation", m.Name)

	csvPath := filepath.Join(dir, "regional-matrix.csv")
	csvData := "EE,0-7k,>7k\n0-25,Unassigned,BSC\n"
	require.NoError(t, os.WriteFile(csvPath, []byte(csvData), 0o644))

	m, err = LoadMatrixFile(csvPath)
	require.NoError(t, err)
	assert.Equal(t, "regional-matrix", m.Name, "csv matrix is named after the file stem")

	_, err = LoadMatrixFile(filepath.Join(dir, "matrix.toml"))
	assert.Error(t, err)
}

func TestValidateMatrix(t *testing.T) {
	valid := &domain.SegmentMatrix{
		Name:          "sales",
		EmployeeBands: []string{"0-25", ">25"},
		GMVBands:      []string{"0-7k", ">7k"},
		Cells: [][]string{
			{"Unassigned", "BSC"},
			{"BSC", "Growth"},
		},
	}
	assert.Empty(t, ValidateMatrix(valid))

	tests := []struct {
		name    string
		mutate  func(m *domain.SegmentMatrix)
		wantErr string
	}{
		{
			name:    "missing name",
			mutate:  func(m *domain.SegmentMatrix) { m.Name = "" },
			wantErr: "name is required",
		},
		{
			name:    "duplicate employee band",
			mutate:  func(m *domain.SegmentMatrix) { m.EmployeeBands[1] = "0-25" },
			wantErr: `duplicate band "0-25"`,
		},
		{
			name:    "empty gmv band",
			mutate:  func(m *domain.SegmentMatrix) { m.GMVBands[0] = "" },
			wantErr: "gmv_bands[0] is required",
		},
		{
			name:    "ragged row",
			mutate:  func(m *domain.SegmentMatrix) { m.Cells[0] = m.Cells[0][:1] },
			wantErr: "has 1 entries for 2 gmv bands",
		},
		{
			name:    "unknown segment",
			mutate:  func(m *domain.SegmentMatrix) { m.Cells[1][1] = "Platinum" },
			wantErr: `unknown segment "Platinum"`,
		},
		{
			name:    "empty cell",
			mutate:  func(m *domain.SegmentMatrix) { m.Cells[0][0] = "" },
			wantErr: "segments[0] is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &domain.SegmentMatrix{
				Name:          valid.Name,
				EmployeeBands: append([]string{}, valid.EmployeeBands...),
				GMVBands:      append([]string{}, valid.GMVBands...),
				Cells: [][]string{
					append([]string{}, valid.Cells[0]...),
					append([]string{}, valid.Cells[1]...),
				},
			}
			tt.mutate(m)

			errs := ValidateMatrix(m)
			require.NotEmpty(t, errs)
			found := false
			for _, err := range errs {
				if strings.Contains(err.Error(), tt.wantErr) {
					found = true
				}
			}
			assert.True(t, found, "expected an error containing %q, got %v", tt.wantErr, errs)
		})
	}
}
