package cli

import (
	"github.com/salesops/segmatrix/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to the service interfaces used by CLI commands.
type App struct {
	Matrices service.MatrixService
	Classify service.ClassifyService

	// WarehouseSource lazily opens the warehouse connection; only the batch
	// command needs it and most invocations should not touch the network.
	WarehouseSource func() (BatchSource, error)

	// OutputDir is where batch exports land.
	OutputDir string

	// IsInteractive reports whether stdin is a terminal; interactive
	// prompts and the matrix viewer are disabled otherwise.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "segmatrix" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "segmatrix",
		Short:         "Customer segmentation matrix compiler, validator and classifier",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newImportCmd(app),
		newValidateCmd(app),
		newListCmd(app),
		newShowCmd(app),
		newDeployCmd(app),
		newClassifyCmd(app),
		newBatchCmd(app),
		newDiffCmd(app),
	)

	return root
}
