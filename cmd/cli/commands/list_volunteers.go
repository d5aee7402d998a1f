package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ListVolunteersCmd creates the listVolunteers command
func ListVolunteersCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listVolunteers",
		Short: "List the volunteers from the directory sheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.Directory()
			if err != nil {
				return err
			}

			volunteers, err := client.ListVolunteers(app.Cfg)
			if err != nil {
				return err
			}

			fmt.Printf("\nFound %d volunteers:\n\n", len(volunteers))
			for _, v := range volunteers {
				fmt.Printf("  %-12s %-25s %s\n", v.ID, v.DisplayName, v.Status)
			}
			fmt.Println()

			return nil
		},
	}
}
