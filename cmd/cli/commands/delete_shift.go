package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adrianoapc/carvalho-rostering/pkg/core/shifts"
)

// DeleteShiftCmd creates the deleteShift command
func DeleteShiftCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deleteShift <shift_id>",
		Short: "Remove a shift (deleting an already-removed shift is fine)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manager := shifts.NewManager(app.Database, app.Logger)
			if err := manager.Delete(app.Ctx, args[0]); err != nil {
				return err
			}

			fmt.Printf("\n✓ Shift %s removed.\n\n", args[0])
			return nil
		},
	}
}
