package domain

// SegmentMatrix is the authored 2-D form of a segmentation scheme: rows are
// employee-count bands, columns are GMV bands, cells name the segment for
// the intersection. It is the human-editable source of truth; compilation
// flattens it into a RuleSet and the matrix itself is not evaluated at
// classification time.
type SegmentMatrix struct {
	Name          string
	Version       string
	EmployeeBands []string
	GMVBands      []string
	// Cells[i][j] is the segment for EmployeeBands[i] x GMVBands[j].
	Cells [][]string
}

// Cell returns the segment name at (employee band i, GMV band j), or ""
// when the indexes fall outside the table.
func (m *SegmentMatrix) Cell(i, j int) string {
	if i < 0 || i >= len(m.Cells) || j < 0 || j >= len(m.Cells[i]) {
		return ""
	}
	return m.Cells[i][j]
}
