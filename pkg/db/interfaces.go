package db

import (
	"context"
	"errors"
	"time"
)

// ErrShiftNotFound is returned by GetShift when no shift exists for the id
var ErrShiftNotFound = errors.New("shift not found")

// ErrEventNotFound is returned by GetEvent when no event exists for the id
var ErrEventNotFound = errors.New("event not found")

// ErrDuplicateAssignment is returned by CreateShift when the store rejects a
// second shift for the same event, volunteer and exact start time
var ErrDuplicateAssignment = errors.New("volunteer already assigned to this event slot")

// ShiftStore defines the persistence operations for shifts
type ShiftStore interface {
	CreateShift(ctx context.Context, shift *Shift) error
	GetShift(ctx context.Context, id string) (*Shift, error)
	UpdateShift(ctx context.Context, id string, update ShiftUpdate) error
	// DeleteShift removes a shift. Deleting an id that does not exist is a
	// no-op, not an error.
	DeleteShift(ctx context.Context, id string) error
	// ListShiftsByEventAndDay returns all shifts for the event starting on
	// the given calendar day (local midnight to next midnight).
	ListShiftsByEventAndDay(ctx context.Context, eventID string, day time.Time) ([]Shift, error)
	// ListShiftsInRange returns all shifts for the event and volunteer whose
	// start falls in [from, to).
	ListShiftsInRange(ctx context.Context, eventID, volunteerID string, from, to time.Time) ([]Shift, error)
}

// EventStore defines the read operations for events
type EventStore interface {
	GetEvent(ctx context.Context, id string) (*Event, error)
}

// Database defines the full set of store operations the scheduler needs.
// postgres.DB implements this interface.
type Database interface {
	ShiftStore
	EventStore
}
