package cli

import (
	"context"
	"fmt"

	"github.com/salesops/segmatrix/internal/cli/formatter"
	"github.com/salesops/segmatrix/internal/warehouse"
	"github.com/spf13/cobra"
)

// BatchSource is a closeable row source for batch runs.
type BatchSource interface {
	warehouse.RowSource
	Close() error
}

func newBatchCmd(app *App) *cobra.Command {
	var inputPath string
	var outDir string

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Classify a full customer extract and export results to CSV",
		Long: `Classifies every customer record against the deployed matrix. Records come
from the reporting warehouse by default, or from a CSV extract with --input.
Unclassifiable records are logged and reported, not dropped or defaulted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var src BatchSource
			var err error
			if inputPath != "" {
				src, err = warehouse.OpenCSV(inputPath)
			} else {
				src, err = app.WarehouseSource()
			}
			if err != nil {
				return err
			}
			defer src.Close()

			if outDir == "" {
				outDir = app.OutputDir
			}

			report, err := app.Classify.RunBatch(context.Background(), src, outDir)
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatBatchReport(report))
			return nil
		},
	}

	cmd.Flags().StringVar(&inputPath, "input", "", "Classify a CSV extract instead of the warehouse")
	cmd.Flags().StringVar(&outDir, "out", "", "Directory for the results CSV (default: configured output dir)")

	return cmd
}
