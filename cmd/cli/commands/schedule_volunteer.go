package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/adrianoapc/carvalho-rostering/pkg/core/model"
	"github.com/adrianoapc/carvalho-rostering/pkg/core/services"
)

const dateLayout = "2006-01-02"

// ScheduleVolunteerCmd creates the scheduleVolunteer command
func ScheduleVolunteerCmd(app *AppContext) *cobra.Command {
	var (
		repeat   string
		weekdays string
		preset   string
		override bool
		teamID   string
		position string
	)

	cmd := &cobra.Command{
		Use:   "scheduleVolunteer <event_id> <volunteer_id> <date> <start_hour>-<end_hour>",
		Short: "Assign a volunteer to an event, optionally repeating across the event's window",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			anchor, err := time.Parse(dateLayout, args[2])
			if err != nil {
				return fmt.Errorf("date must be YYYY-MM-DD: %w", err)
			}

			startHour, endHour, err := parseHourWindow(args[3])
			if err != nil {
				return err
			}

			req := services.ScheduleRequest{
				EventID:     args[0],
				VolunteerID: args[1],
				Anchor:      anchor,
				StartHour:   startHour,
				EndHour:     endHour,
				Override:    override,
				TeamID:      teamID,
				PositionID:  position,
			}

			if preset != "" {
				rule, err := app.Cfg.Preset(preset)
				if err != nil {
					return err
				}
				req.RRule = rule
			} else {
				req.Rule, err = parseRepeat(repeat, weekdays)
				if err != nil {
					return err
				}
			}

			report, err := services.ScheduleVolunteer(app.Ctx, app.Database, app.Logger, req)
			if err != nil {
				return err
			}

			printReport(report)
			return nil
		},
	}

	cmd.Flags().StringVar(&repeat, "repeat", "none", "Recurrence: none, daily, weekly or custom")
	cmd.Flags().StringVar(&weekdays, "weekdays", "", "Weekday numbers for custom recurrence, Sunday=0 (e.g. 0,3)")
	cmd.Flags().StringVar(&preset, "preset", "", "Named recurrence preset from the config file")
	cmd.Flags().BoolVar(&override, "override", false, "Schedule even on dates that already carry an assignment")
	cmd.Flags().StringVar(&teamID, "team", "", "Team id to attach to the shifts")
	cmd.Flags().StringVar(&position, "position", "", "Position id to attach to the shifts")

	return cmd
}

func parseHourWindow(s string) (int, int, error) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("hour window must look like 9-12, got %q", s)
	}

	start, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("start hour must be a number: %w", err)
	}
	end, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("end hour must be a number: %w", err)
	}

	return start, end, nil
}

func parseRepeat(repeat, weekdays string) (model.RecurrenceRule, error) {
	switch repeat {
	case "none":
		return model.RecurrenceRule{Type: model.RecurrenceNone}, nil
	case "daily":
		return model.RecurrenceRule{Type: model.RecurrenceDaily}, nil
	case "weekly":
		return model.RecurrenceRule{Type: model.RecurrenceWeekly}, nil
	case "custom":
		set := make(map[time.Weekday]bool)
		for _, field := range strings.Split(weekdays, ",") {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}
			n, err := strconv.Atoi(field)
			if err != nil || n < 0 || n > 6 {
				return model.RecurrenceRule{}, fmt.Errorf("weekday must be 0-6 (Sunday=0), got %q", field)
			}
			set[time.Weekday(n)] = true
		}
		return model.RecurrenceRule{Type: model.RecurrenceCustomWeekdays, Weekdays: set}, nil
	}
	return model.RecurrenceRule{}, fmt.Errorf("unknown repeat %q (use none, daily, weekly or custom)", repeat)
}

func printReport(report *services.ScheduleReport) {
	if report.Pending {
		fmt.Printf("\nNothing scheduled: the volunteer already has shifts on these dates.\n")
		fmt.Printf("Re-run with --override to schedule anyway.\n\n")
		for _, d := range report.Conflicts {
			fmt.Printf("  conflict: %s\n", d.Format(dateLayout))
		}
		fmt.Println()
		return
	}

	fmt.Printf("\n✓ Scheduling finished: %d created, %d failed\n\n", len(report.Created), len(report.Failed))
	for _, s := range report.Created {
		fmt.Printf("  created:  %s  %s-%s  (shift %s)\n",
			s.Start.Format(dateLayout),
			s.Start.Format("15:04"),
			s.End.Format("15:04"),
			s.ID)
	}
	for _, f := range report.Failed {
		fmt.Printf("  failed:   %s  %v\n", f.Date.Format(dateLayout), f.Err)
	}
	for _, d := range report.Conflicts {
		fmt.Printf("  conflict: %s (scheduled anyway, override supplied)\n", d.Format(dateLayout))
	}
	fmt.Println()
}
