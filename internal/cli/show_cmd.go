package cli

import (
	"context"
	"fmt"

	"github.com/salesops/segmatrix/internal/cli/formatter"
	"github.com/salesops/segmatrix/internal/importer"
	"github.com/salesops/segmatrix/internal/repository"
	"github.com/spf13/cobra"
)

func newShowCmd(app *App) *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "show [name@version]",
		Short: "Render a stored matrix grid (deployed version by default)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			var rec *repository.MatrixRecord
			var err error
			if len(args) == 1 {
				name, version, refErr := splitRef(args[0])
				if refErr != nil {
					return refErr
				}
				rec, err = app.Matrices.Get(ctx, name, version)
			} else {
				rec, err = app.Matrices.Deployed(ctx)
			}
			if err != nil {
				return err
			}

			matrix, err := importer.ParseYAML([]byte(rec.Source))
			if err != nil {
				return fmt.Errorf("decoding stored matrix source: %w", err)
			}

			if interactive && app.IsInteractive() {
				return runMatrixView(rec, matrix)
			}

			fmt.Print(formatter.FormatMatrix(rec, matrix))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Browse the matrix grid interactively")

	return cmd
}
