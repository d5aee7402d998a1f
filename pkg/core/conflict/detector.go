package conflict

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/adrianoapc/carvalho-rostering/pkg/core/recurrence"
	"github.com/adrianoapc/carvalho-rostering/pkg/db"
)

// Detector finds candidate dates on which a volunteer already holds a shift
// for an event. Conflicts are advisory: the detector reports them and leaves
// the decision to the caller.
type Detector struct {
	store  db.ShiftStore
	logger *zap.Logger
}

// NewDetector creates a conflict detector backed by the given shift store
func NewDetector(store db.ShiftStore, logger *zap.Logger) *Detector {
	return &Detector{store: store, logger: logger}
}

// Detect returns the subset of candidate dates that already carry a shift
// for (eventID, volunteerID), in candidate order. A day conflicts when an
// existing shift starts between its local midnight (inclusive) and the next
// midnight (exclusive). One ranged store lookup spans the full candidate
// window; no per-date queries, no full scans.
func (d *Detector) Detect(ctx context.Context, eventID, volunteerID string, candidates []time.Time) ([]time.Time, error) {
	if len(candidates) == 0 {
		return nil, nil
	}

	from, to := candidateWindow(candidates)

	d.logger.Debug("Checking for conflicting shifts",
		zap.String("event_id", eventID),
		zap.String("volunteer_id", volunteerID),
		zap.Int("candidate_count", len(candidates)),
		zap.Time("from", from),
		zap.Time("to", to))

	existing, err := d.store.ListShiftsInRange(ctx, eventID, volunteerID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list existing shifts: %w", err)
	}

	occupied := make(map[string]bool, len(existing))
	for _, s := range existing {
		occupied[dayKey(s.Start)] = true
	}

	var conflicts []time.Time
	for _, candidate := range candidates {
		if occupied[dayKey(candidate)] {
			conflicts = append(conflicts, recurrence.Day(candidate))
		}
	}

	if len(conflicts) > 0 {
		d.logger.Debug("Found conflicting dates", zap.Int("conflict_count", len(conflicts)))
	}

	return conflicts, nil
}

// candidateWindow returns the [from, to) range covering every candidate day
func candidateWindow(candidates []time.Time) (time.Time, time.Time) {
	from := recurrence.Day(candidates[0])
	to := from
	for _, c := range candidates[1:] {
		d := recurrence.Day(c)
		if d.Before(from) {
			from = d
		}
		if d.After(to) {
			to = d
		}
	}
	return from, to.AddDate(0, 0, 1)
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
