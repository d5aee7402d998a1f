package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/adrianoapc/carvalho-rostering/pkg/core/recurrence"
	"github.com/adrianoapc/carvalho-rostering/pkg/core/slotgrid"
	"github.com/adrianoapc/carvalho-rostering/pkg/db"
)

// DayTimeline is one day's slot grid for an event, with occupants and the
// hour to highlight as current (-1 when the day is not today)
type DayTimeline struct {
	Event       *db.Event
	Day         time.Time
	Slots       []slotgrid.DaySlot
	CurrentHour int
}

// ViewDayTimeline loads the event and its shifts for the selected day and
// builds the hour-by-hour timeline the roster view renders
func ViewDayTimeline(ctx context.Context, database db.Database, logger *zap.Logger, eventID string, day, now time.Time) (*DayTimeline, error) {
	event, err := database.GetEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch event %s: %w", eventID, err)
	}

	selected := recurrence.Day(day)

	existing, err := database.ListShiftsByEventAndDay(ctx, eventID, selected)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shifts for %s: %w", selected.Format("2006-01-02"), err)
	}

	logger.Debug("Building day timeline",
		zap.String("event_id", eventID),
		zap.Time("day", selected),
		zap.Int("shift_count", len(existing)))

	return &DayTimeline{
		Event:       event,
		Day:         selected,
		Slots:       slotgrid.BuildDay(event, selected, existing),
		CurrentHour: slotgrid.CurrentHour(now, selected),
	}, nil
}
