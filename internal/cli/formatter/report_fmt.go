package formatter

import (
	"fmt"
	"strings"

	"github.com/salesops/segmatrix/internal/service"
	"github.com/salesops/segmatrix/internal/validate"
)

// FormatValidationReport renders a gap/overlap report.
func FormatValidationReport(r *validate.ValidationReport) string {
	var b strings.Builder

	b.WriteString(Header("validation report") + "\n")
	if r.IsValid() {
		b.WriteString(StyleGreen.Render("✓ total and exclusive") + "\n")
		b.WriteString(Dim("Every (employee count, GMV) pair maps to exactly one segment.") + "\n")
		return b.String()
	}

	if len(r.Gaps) > 0 {
		b.WriteString(StyleRed.Render(fmt.Sprintf("✗ %d gap(s)", len(r.Gaps))) + "\n")
		for _, gap := range r.Gaps {
			b.WriteString("  " + gap.String() + Dim("  covered by no rule") + "\n")
		}
	}
	if len(r.Overlaps) > 0 {
		b.WriteString(StyleRed.Render(fmt.Sprintf("✗ %d overlap(s)", len(r.Overlaps))) + "\n")
		for _, o := range r.Overlaps {
			b.WriteString("  " + o.Region.String() + Dim("  covered by:") + "\n")
			for _, rule := range o.Rules {
				b.WriteString("    " + rule.String() + "\n")
			}
		}
	}
	return b.String()
}

// FormatImportResult summarizes a stored matrix import.
func FormatImportResult(res *service.ImportResult) string {
	var b strings.Builder
	rec := res.Record

	status := StyleRed.Render("invalid")
	if rec.IsValid {
		status = StyleGreen.Render("valid")
	}
	b.WriteString(fmt.Sprintf("Stored %s@%s (%s, %d rules, %s)\n",
		Bold(rec.Name), rec.Version, ShortFingerprint(rec.Fingerprint), len(rec.RuleSet.Rules), status))
	if rec.Deployed() {
		b.WriteString(StyleGreen.Render("✓ deployed") + "\n")
	}
	if !rec.IsValid {
		b.WriteString(FormatValidationReport(res.Report))
	}
	return b.String()
}

// FormatMigrationReport renders the segment shifts between two versions.
func FormatMigrationReport(oldRef, newRef string, r *validate.MigrationReport) string {
	var b strings.Builder

	b.WriteString(Header(fmt.Sprintf("migration impact: %s -> %s", oldRef, newRef)) + "\n")
	if !r.HasChanges() && len(r.Defects) == 0 {
		b.WriteString(StyleGreen.Render("No classification changes.") + "\n")
		return b.String()
	}

	for _, shift := range r.Shifts {
		from := SegmentColor(shift.From).Render(string(shift.From))
		to := SegmentColor(shift.To).Render(string(shift.To))
		b.WriteString(fmt.Sprintf("%s -> %s  %s\n", from, to, Dim(fmt.Sprintf("%d region(s)", len(shift.Regions)))))
		for _, region := range shift.Regions {
			b.WriteString("  " + region.String() + "\n")
		}
	}

	if len(r.Defects) > 0 {
		b.WriteString(StyleRed.Render(fmt.Sprintf("! %d region(s) defective in one of the versions", len(r.Defects))) + "\n")
		for _, region := range r.Defects {
			b.WriteString("  " + region.String() + "\n")
		}
	}

	b.WriteString(Dim(fmt.Sprintf("%d of %d grid cells changed", r.ChangedCells, r.TotalCells)) + "\n")
	return b.String()
}
