package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/salesops/segmatrix/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newDeployCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "deploy <name@version>",
		Short: "Make a stored matrix version the live one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, version, err := splitRef(args[0])
			if err != nil {
				return err
			}
			ctx := context.Background()

			if !yes && app.IsInteractive() {
				current, err := app.Matrices.Deployed(ctx)
				title := fmt.Sprintf("Deploy %s@%s?", name, version)
				if err == nil {
					title = fmt.Sprintf("Replace %s@%s with %s@%s?", current.Name, current.Version, name, version)
				}
				confirmed, err := confirm(title)
				if err != nil {
					return err
				}
				if !confirmed {
					fmt.Println("Deploy cancelled.")
					return nil
				}
			}

			rec, err := app.Matrices.Deploy(ctx, name, version)
			if err != nil {
				return err
			}
			fmt.Printf("Deployed %s@%s (%s)\n", rec.Name, rec.Version, formatter.ShortFingerprint(rec.Fingerprint))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

// confirm runs a yes/no huh form.
func confirm(title string) (bool, error) {
	var result bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(&result),
		),
	).WithShowHelp(false)
	if err := form.Run(); err != nil {
		return false, err
	}
	return result, nil
}
