package shifts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/adrianoapc/carvalho-rostering/pkg/db"
)

// ValidationError marks malformed input, such as a start time at or after
// the end time
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

// NewValidationError creates a ValidationError with a formatted message
func NewValidationError(format string, args ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// Manager handles the lifecycle of a single shift: create, partial edit,
// delete and duplicate-to-next-day
type Manager struct {
	store  db.ShiftStore
	logger *zap.Logger
}

// NewManager creates a shift manager backed by the given store
func NewManager(store db.ShiftStore, logger *zap.Logger) *Manager {
	return &Manager{store: store, logger: logger}
}

// CreateParams describes a shift to create. When End is zero it defaults to
// one hour after Start (slot-based creation); recurrence batches supply the
// explicit end from the request's hour window.
type CreateParams struct {
	EventID     string
	VolunteerID string
	Start       time.Time
	End         time.Time
	Confirmed   bool
	TeamID      string
	PositionID  string
}

// Create validates and persists a new shift
func (m *Manager) Create(ctx context.Context, p CreateParams) (*db.Shift, error) {
	if p.EventID == "" {
		return nil, NewValidationError("event id is required")
	}
	if p.VolunteerID == "" {
		return nil, NewValidationError("volunteer id is required")
	}

	end := p.End
	if end.IsZero() {
		end = p.Start.Add(time.Hour)
	}
	if !p.Start.Before(end) {
		return nil, NewValidationError("shift start %s must be before end %s",
			p.Start.Format(time.RFC3339), end.Format(time.RFC3339))
	}

	shift := &db.Shift{
		ID:          uuid.New().String(),
		EventID:     p.EventID,
		VolunteerID: p.VolunteerID,
		Start:       p.Start,
		End:         end,
		Confirmed:   p.Confirmed,
		TeamID:      p.TeamID,
		PositionID:  p.PositionID,
	}

	m.logger.Debug("Creating shift",
		zap.String("shift_id", shift.ID),
		zap.String("event_id", shift.EventID),
		zap.String("volunteer_id", shift.VolunteerID),
		zap.Time("start", shift.Start),
		zap.Time("end", shift.End))

	if err := m.store.CreateShift(ctx, shift); err != nil {
		return nil, fmt.Errorf("failed to create shift: %w", err)
	}

	return shift, nil
}

// Update applies a partial edit (reassign volunteer, toggle confirmation).
// Times never move here; a time change is a delete plus a create.
func (m *Manager) Update(ctx context.Context, shiftID string, update db.ShiftUpdate) (*db.Shift, error) {
	if update.VolunteerID == nil && update.Confirmed == nil {
		return nil, NewValidationError("update requires a volunteer or confirmation change")
	}
	if update.VolunteerID != nil && *update.VolunteerID == "" {
		return nil, NewValidationError("volunteer id cannot be empty")
	}

	if err := m.store.UpdateShift(ctx, shiftID, update); err != nil {
		return nil, fmt.Errorf("failed to update shift %s: %w", shiftID, err)
	}

	shift, err := m.store.GetShift(ctx, shiftID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload shift %s: %w", shiftID, err)
	}

	m.logger.Debug("Updated shift", zap.String("shift_id", shiftID))
	return shift, nil
}

// Delete removes a shift. Deleting an id that is already gone succeeds:
// "already gone" is an acceptable end state.
func (m *Manager) Delete(ctx context.Context, shiftID string) error {
	if err := m.store.DeleteShift(ctx, shiftID); err != nil {
		if errors.Is(err, db.ErrShiftNotFound) {
			return nil
		}
		return fmt.Errorf("failed to delete shift %s: %w", shiftID, err)
	}

	m.logger.Debug("Deleted shift", zap.String("shift_id", shiftID))
	return nil
}

// DuplicateToNextDay clones a shift onto the following day, copying the
// volunteer, confirmation, team and position. The clone always spans a full
// 24 hours from the shifted start, whatever the source width, matching the
// always-on rotation use case. No conflict check runs here: duplication is
// an explicit operator action and is allowed to overlap.
func (m *Manager) DuplicateToNextDay(ctx context.Context, shiftID string) (*db.Shift, error) {
	source, err := m.store.GetShift(ctx, shiftID)
	if err != nil {
		return nil, fmt.Errorf("failed to load shift %s: %w", shiftID, err)
	}

	start := source.Start.AddDate(0, 0, 1)
	clone := &db.Shift{
		ID:          uuid.New().String(),
		EventID:     source.EventID,
		VolunteerID: source.VolunteerID,
		Start:       start,
		End:         start.AddDate(0, 0, 1),
		Confirmed:   source.Confirmed,
		TeamID:      source.TeamID,
		PositionID:  source.PositionID,
	}

	m.logger.Debug("Duplicating shift to next day",
		zap.String("source_shift_id", source.ID),
		zap.String("new_shift_id", clone.ID),
		zap.Time("start", clone.Start))

	if err := m.store.CreateShift(ctx, clone); err != nil {
		return nil, fmt.Errorf("failed to create duplicated shift: %w", err)
	}

	return clone, nil
}
