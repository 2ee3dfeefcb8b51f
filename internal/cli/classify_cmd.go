package cli

import (
	"context"
	"fmt"

	"github.com/salesops/segmatrix/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newClassifyCmd(app *App) *cobra.Command {
	var employees int
	var gmv float64

	cmd := &cobra.Command{
		Use:   "classify --employees <n> --gmv <amount>",
		Short: "Classify a single customer record against the deployed matrix",
		RunE: func(cmd *cobra.Command, args []string) error {
			outcome, err := app.Classify.ClassifyOne(context.Background(), employees, gmv)
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatClassifyOutcome(outcome, employees, gmv))
			return nil
		},
	}

	cmd.Flags().IntVar(&employees, "employees", 0, "Customer employee count")
	cmd.Flags().Float64Var(&gmv, "gmv", 0, "Customer trailing GMV")
	_ = cmd.MarkFlagRequired("employees")
	_ = cmd.MarkFlagRequired("gmv")

	return cmd
}
