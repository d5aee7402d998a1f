package db

import (
	"time"

	"github.com/adrianoapc/carvalho-rostering/pkg/core/model"
)

// Event represents a schedulable occasion. Events are created and edited by
// the external event-management system; this module only reads them.
type Event struct {
	ID              string
	Title           string
	Start           time.Time
	DurationMinutes int // 0 when unset; ignored for continuous events
	Kind            model.EventKind
}

// Duration returns the effective duration in minutes for a timed event,
// falling back to the default when unset
func (e *Event) Duration() int {
	if e.DurationMinutes > 0 {
		return e.DurationMinutes
	}
	return model.DefaultDurationMinutes
}

// Shift represents one volunteer's assigned time window on one event
type Shift struct {
	ID          string
	EventID     string
	VolunteerID string
	Start       time.Time
	End         time.Time
	Confirmed   bool
	TeamID      string // empty when not team-scoped
	PositionID  string // empty when not position-scoped
}

// ShiftUpdate carries a partial update for a shift. Nil fields are left
// untouched. Start/end changes are modeled as delete+create, not update.
type ShiftUpdate struct {
	VolunteerID *string
	Confirmed   *bool
}
