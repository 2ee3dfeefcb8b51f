package cli

import (
	"context"
	"fmt"

	"github.com/salesops/segmatrix/internal/cli/formatter"
	"github.com/salesops/segmatrix/internal/validate"
	"github.com/spf13/cobra"
)

func newValidateCmd(app *App) *cobra.Command {
	var stored bool

	cmd := &cobra.Command{
		Use:   "validate <matrix-file | name@version>",
		Short: "Check a matrix for gaps and overlaps",
		Long: `Checks that every (employee count, GMV) pair maps to exactly one segment.
By default the argument is a matrix file; with --stored it is a name@version
reference into the matrix store.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var report *validate.ValidationReport
			if stored {
				name, version, err := splitRef(args[0])
				if err != nil {
					return err
				}
				rec, err := app.Matrices.Get(context.Background(), name, version)
				if err != nil {
					return err
				}
				report = validate.Validate(&rec.RuleSet)
			} else {
				var err error
				_, report, err = app.Matrices.ValidateFile(args[0])
				if err != nil {
					return err
				}
			}

			fmt.Print(formatter.FormatValidationReport(report))
			if !report.IsValid() {
				return fmt.Errorf("matrix is not total and exclusive")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&stored, "stored", false, "Treat the argument as a stored name@version reference")

	return cmd
}
