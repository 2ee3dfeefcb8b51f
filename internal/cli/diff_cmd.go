package cli

import (
	"context"
	"fmt"

	"github.com/salesops/segmatrix/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newDiffCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "diff <old-name@version> <new-name@version>",
		Short: "Report the migration impact of moving between two matrix versions",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			oldName, oldVersion, err := splitRef(args[0])
			if err != nil {
				return err
			}
			newName, newVersion, err := splitRef(args[1])
			if err != nil {
				return err
			}

			report, err := app.Matrices.Diff(context.Background(), oldName, oldVersion, newName, newVersion)
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatMigrationReport(args[0], args[1], report))
			return nil
		},
	}
}
