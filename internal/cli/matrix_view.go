package cli

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/salesops/segmatrix/internal/cli/formatter"
	"github.com/salesops/segmatrix/internal/domain"
	"github.com/salesops/segmatrix/internal/repository"
)

// matrixViewModel is the bubbletea Model for browsing a matrix grid.
type matrixViewModel struct {
	rec   *repository.MatrixRecord
	table table.Model
}

func newMatrixViewModel(rec *repository.MatrixRecord, m *domain.SegmentMatrix) matrixViewModel {
	columns := []table.Column{{Title: "EE \\ GMV", Width: 10}}
	for _, band := range m.GMVBands {
		w := len(band)
		if w < 12 {
			w = 12
		}
		columns = append(columns, table.Column{Title: band, Width: w})
	}

	rows := make([]table.Row, 0, len(m.EmployeeBands))
	for i, band := range m.EmployeeBands {
		row := table.Row{band}
		for j := range m.GMVBands {
			row = append(row, m.Cell(i, j))
		}
		rows = append(rows, row)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(len(rows)+1),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		Bold(true).
		Foreground(formatter.ColorHeader)
	styles.Selected = styles.Selected.
		Foreground(formatter.ColorFg).
		Background(formatter.ColorDim).
		Bold(true)
	t.SetStyles(styles)

	return matrixViewModel{rec: rec, table: t}
}

func (m matrixViewModel) Init() tea.Cmd {
	return nil
}

func (m matrixViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m matrixViewModel) View() string {
	title := fmt.Sprintf("%s@%s  %s", m.rec.Name, m.rec.Version, formatter.ShortFingerprint(m.rec.Fingerprint))
	help := formatter.Dim("↑/↓ move · q quit")
	return formatter.Header(title) + "\n" + m.table.View() + "\n" + help + "\n"
}

// runMatrixView opens the interactive grid viewer for a stored matrix.
func runMatrixView(rec *repository.MatrixRecord, m *domain.SegmentMatrix) error {
	_, err := tea.NewProgram(newMatrixViewModel(rec, m)).Run()
	return err
}
