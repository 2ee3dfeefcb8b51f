package cli

import (
	"context"
	"fmt"

	"github.com/salesops/segmatrix/internal/cli/formatter"
	"github.com/salesops/segmatrix/internal/service"
	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	var name string
	var version string
	var deploy bool

	cmd := &cobra.Command{
		Use:   "import <matrix-file>",
		Short: "Compile, validate and store a matrix file (YAML or CSV)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Matrices.Import(context.Background(), args[0], service.ImportOptions{
				Name:    name,
				Version: version,
				Deploy:  deploy,
			})
			if err != nil {
				if res != nil && res.Report != nil {
					// Import succeeded but the deploy was refused; show why.
					fmt.Print(formatter.FormatValidationReport(res.Report))
				}
				return err
			}

			fmt.Print(formatter.FormatImportResult(res))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "set-name", "", "Override the matrix name")
	cmd.Flags().StringVar(&version, "set-version", "", "Override the matrix version (required for CSV files)")
	cmd.Flags().BoolVar(&deploy, "deploy", false, "Deploy the matrix immediately if it validates")

	return cmd
}
