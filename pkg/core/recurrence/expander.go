package recurrence

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/adrianoapc/carvalho-rostering/pkg/core/model"
	"github.com/adrianoapc/carvalho-rostering/pkg/db"
)

const minutesPerDay = 24 * 60

// weekdayToRRule maps time.Weekday ordinals (Sunday=0) to rrule weekdays
var weekdayToRRule = map[time.Weekday]rrule.Weekday{
	time.Sunday:    rrule.SU,
	time.Monday:    rrule.MO,
	time.Tuesday:   rrule.TU,
	time.Wednesday: rrule.WE,
	time.Thursday:  rrule.TH,
	time.Friday:    rrule.FR,
	time.Saturday:  rrule.SA,
}

// Day truncates a time to midnight in its own location
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// WindowEnd returns the last calendar day the event's recurrence window may
// cover. Timed events extend the window proportionally to their duration;
// continuous events are bounded to a 7-day rotation from their start.
func WindowEnd(event *db.Event) time.Time {
	start := Day(event.Start)
	if event.Kind == model.EventContinuous {
		return start.AddDate(0, 0, 7)
	}
	days := (event.Duration() + minutesPerDay - 1) / minutesPerDay
	return start.AddDate(0, 0, days)
}

// Expand turns an anchor date plus a recurrence rule into the ordered,
// deduplicated list of candidate days inside the event's window. It is a
// pure function: the same inputs always yield the same sequence, and an
// empty result is a valid "nothing to schedule" outcome, never an error.
func Expand(rule model.RecurrenceRule, event *db.Event) ([]time.Time, error) {
	if !rule.Type.IsValid() {
		return nil, fmt.Errorf("unknown recurrence type %q", rule.Type)
	}

	anchor := Day(rule.Anchor)
	windowEnd := WindowEnd(event)
	if anchor.After(windowEnd) {
		return nil, nil
	}

	switch rule.Type {
	case model.RecurrenceNone:
		return []time.Time{anchor}, nil

	case model.RecurrenceDaily:
		return expandFreq(rrule.DAILY, anchor, windowEnd, nil)

	case model.RecurrenceWeekly:
		return expandFreq(rrule.WEEKLY, anchor, windowEnd, nil)

	case model.RecurrenceCustomWeekdays:
		if len(rule.Weekdays) == 0 {
			return nil, nil
		}
		// Collect in Sunday..Saturday order so the rule is deterministic
		var byDay []rrule.Weekday
		for wd := time.Sunday; wd <= time.Saturday; wd++ {
			if rule.Weekdays[wd] {
				byDay = append(byDay, weekdayToRRule[wd])
			}
		}
		return expandFreq(rrule.DAILY, anchor, windowEnd, byDay)
	}

	return nil, fmt.Errorf("unhandled recurrence type %q", rule.Type)
}

// ExpandRRule expands a raw RFC 5545 RRULE string (as carried by config
// presets) from the anchor date, clamped to the event's window
func ExpandRRule(anchor time.Time, ruleStr string, event *db.Event) ([]time.Time, error) {
	r, err := rrule.StrToRRule(ruleStr)
	if err != nil {
		return nil, fmt.Errorf("invalid rrule %q: %w", ruleStr, err)
	}

	start := Day(anchor)
	windowEnd := WindowEnd(event)
	if start.After(windowEnd) {
		return nil, nil
	}

	r.DTStart(start)
	return dedupDays(r.Between(start, windowEnd, true)), nil
}

func expandFreq(freq rrule.Frequency, anchor, until time.Time, byDay []rrule.Weekday) ([]time.Time, error) {
	r, err := rrule.NewRRule(rrule.ROption{
		Freq:      freq,
		Dtstart:   anchor,
		Until:     until,
		Byweekday: byDay,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build recurrence rule: %w", err)
	}

	return dedupDays(r.All()), nil
}

// dedupDays truncates occurrences to calendar days and drops repeats,
// preserving ascending order
func dedupDays(occurrences []time.Time) []time.Time {
	var days []time.Time
	seen := make(map[string]bool, len(occurrences))
	for _, occ := range occurrences {
		d := Day(occ)
		key := d.Format("2006-01-02")
		if seen[key] {
			continue
		}
		seen[key] = true
		days = append(days, d)
	}
	return days
}
