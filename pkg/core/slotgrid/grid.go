package slotgrid

import (
	"time"

	"github.com/adrianoapc/carvalho-rostering/pkg/core/model"
	"github.com/adrianoapc/carvalho-rostering/pkg/db"
)

const hoursPerDay = 24

// Offsets returns the ordered hour offsets making up the event's assignable
// timeline: 24 slots for a continuous rotation, one slot per started hour of
// the duration for a timed event. Slot i covers [midnight+i h, midnight+i+1 h)
// counted from the inspected day for a continuous rotation, or from the
// event's first day for a timed event.
func Offsets(event *db.Event) []int {
	n := hoursPerDay
	if event.Kind != model.EventContinuous {
		n = (event.Duration() + 59) / 60
	}

	offsets := make([]int, n)
	for i := range offsets {
		offsets[i] = i
	}
	return offsets
}

// HourStart returns the wall-clock start of an hour offset on the given day
func HourStart(day time.Time, offset int) time.Time {
	midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return midnight.Add(time.Duration(offset) * time.Hour)
}

// CurrentHour returns the hour offset to highlight for "now" on the selected
// day, or -1 when now falls on a different day. Derived, never stored.
func CurrentHour(now, day time.Time) int {
	if now.Year() != day.Year() || now.Month() != day.Month() || now.Day() != day.Day() {
		return -1
	}
	return now.Hour()
}

// DaySlot is one hour cell of a day timeline with the shifts occupying it
type DaySlot struct {
	Offset int
	Start  time.Time
	Shifts []db.Shift
}

// BuildDay renders the selected calendar day of the event's timeline: the
// hour offsets whose slot falls on that day, paired with the day's existing
// shifts by start hour. A continuous rotation repeats the same 24 offsets
// every day; a timed event advances through its offsets day by day, so a
// three-day event shows offsets 24-47 on its second day. Days outside the
// event's span render no slots. Usually at most one shift occupies an hour
// per event per day; when the store holds more (multiple positions), all of
// them are exposed rather than hiding the collision.
func BuildDay(event *db.Event, day time.Time, shifts []db.Shift) []DaySlot {
	byHour := make(map[int][]db.Shift)
	for _, s := range shifts {
		if s.Start.Year() == day.Year() && s.Start.Month() == day.Month() && s.Start.Day() == day.Day() {
			byHour[s.Start.Hour()] = append(byHour[s.Start.Hour()], s)
		}
	}

	lo, hi := dayOffsetWindow(event, day)
	slots := make([]DaySlot, 0, hi-lo)
	for offset := lo; offset < hi; offset++ {
		hour := offset - lo
		slots = append(slots, DaySlot{
			Offset: offset,
			Start:  HourStart(day, hour),
			Shifts: byHour[hour],
		})
	}
	return slots
}

// dayOffsetWindow returns the half-open offset range [lo, hi) landing on the
// given day
func dayOffsetWindow(event *db.Event, day time.Time) (int, int) {
	total := len(Offsets(event))
	if event.Kind == model.EventContinuous {
		return 0, total
	}

	dayIdx := int(HourStart(day, 0).Sub(HourStart(event.Start, 0)).Hours()) / hoursPerDay
	lo := dayIdx * hoursPerDay
	if lo < 0 || lo >= total {
		return 0, 0
	}
	hi := lo + hoursPerDay
	if hi > total {
		hi = total
	}
	return lo, hi
}
