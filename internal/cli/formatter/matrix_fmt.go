package formatter

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/salesops/segmatrix/internal/domain"
	"github.com/salesops/segmatrix/internal/repository"
	"github.com/salesops/segmatrix/internal/service"
)

// FormatMatrix renders a stored matrix as its authored grid.
func FormatMatrix(rec *repository.MatrixRecord, m *domain.SegmentMatrix) string {
	var b strings.Builder

	b.WriteString(Header(fmt.Sprintf("%s@%s", rec.Name, rec.Version)) + "\n")
	b.WriteString(Dim("fingerprint "+ShortFingerprint(rec.Fingerprint)) + "\n")
	if rec.Deployed() {
		b.WriteString(StyleGreen.Render("✓ deployed") + "\n")
	}
	b.WriteString("\n")

	headers := append([]string{"EE \\ GMV"}, m.GMVBands...)
	rows := make([][]string, 0, len(m.EmployeeBands))
	for i, band := range m.EmployeeBands {
		row := []string{band}
		for j := range m.GMVBands {
			segment := domain.Segment(m.Cell(i, j))
			row = append(row, SegmentColor(segment).Render(string(segment)))
		}
		rows = append(rows, row)
	}
	b.WriteString(RenderTable(headers, rows))
	return b.String()
}

// FormatMatrixList renders the stored versions as a table.
func FormatMatrixList(recs []*repository.MatrixRecord) string {
	if len(recs) == 0 {
		return Dim("No matrices stored. Use \"segmatrix import\" to add one.") + "\n"
	}

	headers := []string{"NAME", "VERSION", "FINGERPRINT", "RULES", "STATUS", "CREATED"}
	rows := make([][]string, 0, len(recs))
	for _, rec := range recs {
		status := StyleRed.Render("invalid")
		switch {
		case rec.Deployed():
			status = StyleGreen.Render("deployed")
		case rec.IsValid:
			status = "valid"
		}
		rows = append(rows, []string{
			rec.Name,
			rec.Version,
			ShortFingerprint(rec.Fingerprint),
			fmt.Sprintf("%d", len(rec.RuleSet.Rules)),
			status,
			rec.CreatedAt.Format(time.DateOnly),
		})
	}
	return RenderTable(headers, rows)
}

// FormatClassifyOutcome renders a single classification with its audit trail.
func FormatClassifyOutcome(o *service.ClassifyOutcome, employees int, gmv float64) string {
	var b strings.Builder
	seg := o.Result.Segment
	b.WriteString(fmt.Sprintf("%s\n", SegmentColor(seg).Render(string(seg))))
	b.WriteString(Dim(fmt.Sprintf("employees=%d gmv=%.2f matched rule %s", employees, gmv, o.Result.MatchedRule)) + "\n")
	b.WriteString(Dim(fmt.Sprintf("matrix %s@%s (%s)", o.Matrix.Name, o.Matrix.Version, ShortFingerprint(o.Matrix.Fingerprint))) + "\n")
	return b.String()
}

// FormatBatchReport renders the batch run summary and distribution.
func FormatBatchReport(r *service.BatchReport) string {
	var b strings.Builder

	b.WriteString(Header("batch classification") + "\n")
	b.WriteString(fmt.Sprintf("Matrix: %s@%s\n", r.Matrix.Name, r.Matrix.Version))
	b.WriteString(fmt.Sprintf("Classified %d of %d records\n", r.Classified, r.Total))
	b.WriteString(fmt.Sprintf("Results: %s\n\n", r.OutputPath))

	segments := make([]domain.Segment, 0, len(r.Distribution))
	for seg := range r.Distribution {
		segments = append(segments, seg)
	}
	sort.Slice(segments, func(a, b int) bool {
		return r.Distribution[segments[a]] > r.Distribution[segments[b]]
	})

	rows := make([][]string, 0, len(segments))
	for _, seg := range segments {
		count := r.Distribution[seg]
		pct := float64(count) / float64(r.Classified) * 100
		rows = append(rows, []string{
			SegmentColor(seg).Render(string(seg)),
			fmt.Sprintf("%d", count),
			fmt.Sprintf("%.1f%%", pct),
		})
	}
	b.WriteString(RenderTable([]string{"SEGMENT", "CUSTOMERS", "SHARE"}, rows))

	if len(r.Anomalies) > 0 {
		b.WriteString("\n" + StyleYellow.Render(fmt.Sprintf("! %d record(s) not classified", len(r.Anomalies))) + "\n")
		for _, a := range r.Anomalies {
			b.WriteString(Dim(fmt.Sprintf("  %s: %s", a.Input.CustomerID, a.Reason)) + "\n")
		}
	}
	return b.String()
}
