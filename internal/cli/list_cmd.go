package cli

import (
	"context"
	"fmt"

	"github.com/salesops/segmatrix/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored matrix versions",
		RunE: func(cmd *cobra.Command, args []string) error {
			recs, err := app.Matrices.List(context.Background())
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatMatrixList(recs))
			return nil
		},
	}
}
