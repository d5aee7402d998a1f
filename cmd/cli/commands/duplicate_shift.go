package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adrianoapc/carvalho-rostering/pkg/core/shifts"
)

// DuplicateShiftCmd creates the duplicateShift command
func DuplicateShiftCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "duplicateShift <shift_id>",
		Short: "Clone a shift onto the following day, keeping volunteer and confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manager := shifts.NewManager(app.Database, app.Logger)
			clone, err := manager.DuplicateToNextDay(app.Ctx, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Shift duplicated!\n\n")
			fmt.Printf("New Shift ID: %s\n", clone.ID)
			fmt.Printf("Volunteer:    %s\n", clone.VolunteerID)
			fmt.Printf("Start:        %s\n", clone.Start.Format("2006-01-02 15:04"))
			fmt.Printf("End:          %s\n\n", clone.End.Format("2006-01-02 15:04"))

			return nil
		},
	}
}
