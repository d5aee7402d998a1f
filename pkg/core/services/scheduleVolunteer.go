package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/adrianoapc/carvalho-rostering/pkg/core/conflict"
	"github.com/adrianoapc/carvalho-rostering/pkg/core/model"
	"github.com/adrianoapc/carvalho-rostering/pkg/core/recurrence"
	"github.com/adrianoapc/carvalho-rostering/pkg/core/shifts"
	"github.com/adrianoapc/carvalho-rostering/pkg/core/slotgrid"
	"github.com/adrianoapc/carvalho-rostering/pkg/db"
)

// NoValidDatesError signals that recurrence expansion produced zero dates;
// nothing was persisted
type NoValidDatesError struct {
	EventID string
}

func (e *NoValidDatesError) Error() string {
	return fmt.Sprintf("recurrence produced no schedulable dates for event %s", e.EventID)
}

// ScheduleRequest is one "assign volunteer to event" action
type ScheduleRequest struct {
	EventID     string
	VolunteerID string
	Anchor      time.Time
	StartHour   int // inclusive, 0-23
	EndHour     int // exclusive, up to 24
	Rule        model.RecurrenceRule
	RRule       string // optional raw RRULE from a config preset; wins over Rule
	Override    bool   // proceed despite conflicting dates
	TeamID      string
	PositionID  string
}

// FailedDate records a per-date persistence failure inside a batch
type FailedDate struct {
	Date time.Time
	Err  error
}

// ScheduleReport tells the caller precisely which dates succeeded, which are
// held as conflicts, and which failed at the storage boundary
type ScheduleReport struct {
	Created   []db.Shift
	Conflicts []time.Time
	Failed    []FailedDate
	// Pending is set when conflicts were found without an override: nothing
	// was persisted and the caller must decide.
	Pending bool
}

// ScheduleVolunteer runs the full assignment workflow: expand the recurrence
// inside the event's window, check the candidate dates for existing
// assignments, and persist one shift per remaining date in ascending order.
// Conflicts without an explicit override stop the batch before any write.
// Each create is independent: a failed date is reported and its siblings are
// neither blocked nor rolled back.
func ScheduleVolunteer(ctx context.Context, database db.Database, logger *zap.Logger, req ScheduleRequest) (*ScheduleReport, error) {
	if req.StartHour < 0 || req.EndHour > 24 || req.StartHour >= req.EndHour {
		return nil, shifts.NewValidationError("invalid hour window %d-%d", req.StartHour, req.EndHour)
	}

	logger.Debug("Scheduling volunteer",
		zap.String("event_id", req.EventID),
		zap.String("volunteer_id", req.VolunteerID),
		zap.Time("anchor", req.Anchor),
		zap.String("rule", string(req.Rule.Type)),
		zap.Bool("override", req.Override))

	event, err := database.GetEvent(ctx, req.EventID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch event %s: %w", req.EventID, err)
	}

	dates, err := expandDates(req, event)
	if err != nil {
		return nil, err
	}
	if len(dates) == 0 {
		return nil, &NoValidDatesError{EventID: req.EventID}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	logger.Debug("Expanded candidate dates", zap.Int("count", len(dates)))

	detector := conflict.NewDetector(database, logger)
	conflicts, err := detector.Detect(ctx, req.EventID, req.VolunteerID, dates)
	if err != nil {
		return nil, fmt.Errorf("failed to check conflicts: %w", err)
	}

	if len(conflicts) > 0 && !req.Override {
		logger.Info("Conflicting dates found, awaiting override",
			zap.String("event_id", req.EventID),
			zap.String("volunteer_id", req.VolunteerID),
			zap.Int("conflict_count", len(conflicts)))
		return &ScheduleReport{Conflicts: conflicts, Pending: true}, nil
	}

	manager := shifts.NewManager(database, logger)
	report := &ScheduleReport{Conflicts: conflicts}

	// The hour window comes from the original request and is applied to
	// every date as-is, never recomputed per date.
	for _, date := range dates {
		created, err := manager.Create(ctx, shifts.CreateParams{
			EventID:     req.EventID,
			VolunteerID: req.VolunteerID,
			Start:       slotgrid.HourStart(date, req.StartHour),
			End:         slotgrid.HourStart(date, req.EndHour),
			TeamID:      req.TeamID,
			PositionID:  req.PositionID,
		})
		if err != nil {
			logger.Warn("Failed to persist shift for date",
				zap.Time("date", date),
				zap.Error(err))
			report.Failed = append(report.Failed, FailedDate{Date: date, Err: err})
			continue
		}
		report.Created = append(report.Created, *created)
	}

	logger.Info("Scheduling batch finished",
		zap.String("event_id", req.EventID),
		zap.String("volunteer_id", req.VolunteerID),
		zap.Int("created", len(report.Created)),
		zap.Int("conflicts", len(report.Conflicts)),
		zap.Int("failed", len(report.Failed)))

	return report, nil
}

func expandDates(req ScheduleRequest, event *db.Event) ([]time.Time, error) {
	if req.RRule != "" {
		dates, err := recurrence.ExpandRRule(req.Anchor, req.RRule, event)
		if err != nil {
			return nil, fmt.Errorf("failed to expand rrule preset: %w", err)
		}
		return dates, nil
	}

	rule := req.Rule
	rule.Anchor = req.Anchor
	dates, err := recurrence.Expand(rule, event)
	if err != nil {
		return nil, fmt.Errorf("failed to expand recurrence: %w", err)
	}
	return dates, nil
}
