package model

import "time"

// EventKind describes how an event occupies the calendar
type EventKind string

const (
	// EventTimed is a finite occasion with a duration in minutes
	EventTimed EventKind = "TIMED"
	// EventContinuous is an always-on "clock" rotation sampled as 24
	// one-hour slots per day over a 7-day window
	EventContinuous EventKind = "CONTINUOUS"
)

func (k EventKind) IsValid() bool {
	return k == EventTimed || k == EventContinuous
}

// DefaultDurationMinutes is assumed for timed events with no duration set
const DefaultDurationMinutes = 120

// RecurrenceType enumerates the supported repetition patterns
type RecurrenceType string

const (
	RecurrenceNone           RecurrenceType = "NONE"
	RecurrenceDaily          RecurrenceType = "DAILY"
	RecurrenceWeekly         RecurrenceType = "WEEKLY"
	RecurrenceCustomWeekdays RecurrenceType = "CUSTOM_WEEKDAYS"
)

func (t RecurrenceType) IsValid() bool {
	switch t {
	case RecurrenceNone, RecurrenceDaily, RecurrenceWeekly, RecurrenceCustomWeekdays:
		return true
	}
	return false
}

// WeekdayLabels maps time.Weekday ordinals (Sunday=0) to display labels
var WeekdayLabels = [7]string{
	"Sunday",
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
}

// RecurrenceRule is a transient scheduling request value, never persisted
type RecurrenceRule struct {
	Type     RecurrenceType
	Weekdays map[time.Weekday]bool // only meaningful for RecurrenceCustomWeekdays
	Anchor   time.Time             // first date to schedule
}

// Volunteer represents a directory entry for a person eligible for assignment.
// The full profile is owned by the external directory; only the fields the
// scheduler displays are carried here.
type Volunteer struct {
	ID          string
	FirstName   string
	LastName    string
	Status      string
	Email       string
	AvatarURL   string
	DisplayName string // Computed, see directory.ComputeDisplayNames
}
