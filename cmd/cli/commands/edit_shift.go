package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adrianoapc/carvalho-rostering/pkg/core/shifts"
	"github.com/adrianoapc/carvalho-rostering/pkg/db"
)

// EditShiftCmd creates the editShift command
func EditShiftCmd(app *AppContext) *cobra.Command {
	var (
		volunteerID string
		confirm     bool
		unconfirm   bool
	)

	cmd := &cobra.Command{
		Use:   "editShift <shift_id>",
		Short: "Reassign a shift's volunteer or toggle its confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if confirm && unconfirm {
				return fmt.Errorf("--confirm and --unconfirm are mutually exclusive")
			}

			var update db.ShiftUpdate
			if volunteerID != "" {
				update.VolunteerID = &volunteerID
			}
			if confirm || unconfirm {
				confirmed := confirm
				update.Confirmed = &confirmed
			}

			manager := shifts.NewManager(app.Database, app.Logger)
			shift, err := manager.Update(app.Ctx, args[0], update)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Shift updated!\n\n")
			fmt.Printf("Shift ID:  %s\n", shift.ID)
			fmt.Printf("Volunteer: %s\n", shift.VolunteerID)
			fmt.Printf("Confirmed: %t\n\n", shift.Confirmed)

			return nil
		},
	}

	cmd.Flags().StringVar(&volunteerID, "volunteer", "", "Reassign the shift to this volunteer id")
	cmd.Flags().BoolVar(&confirm, "confirm", false, "Mark the shift as confirmed")
	cmd.Flags().BoolVar(&unconfirm, "unconfirm", false, "Mark the shift as unconfirmed")

	return cmd
}
