package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/adrianoapc/carvalho-rostering/pkg/core/services"
)

// SlotGridCmd creates the slotGrid command
func SlotGridCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "slotGrid <event_id> <date>",
		Short: "Show the hour-by-hour shift timeline for an event on one day",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := time.Parse(dateLayout, args[1])
			if err != nil {
				return fmt.Errorf("date must be YYYY-MM-DD: %w", err)
			}

			timeline, err := services.ViewDayTimeline(app.Ctx, app.Database, app.Logger, args[0], day, time.Now())
			if err != nil {
				return err
			}

			fmt.Printf("\n%s — %s\n\n", timeline.Event.Title, timeline.Day.Format("2006-01-02 (Monday)"))

			for _, slot := range timeline.Slots {
				marker := "  "
				if slot.Start.Hour() == timeline.CurrentHour {
					marker = "▶ "
				}

				occupants := "—"
				if len(slot.Shifts) > 0 {
					var parts []string
					for _, s := range slot.Shifts {
						entry := s.VolunteerID
						if s.Confirmed {
							entry += " ✓"
						}
						parts = append(parts, entry)
					}
					occupants = strings.Join(parts, ", ")
				}

				fmt.Printf("%s%s  %s\n", marker, slot.Start.Format("15:04"), occupants)
			}
			fmt.Println()

			return nil
		},
	}
}
