package conflict

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/adrianoapc/carvalho-rostering/pkg/db"
)

// mockShiftStore implements db.ShiftStore for testing
type mockShiftStore struct {
	shifts       []db.Shift
	listRangeErr error

	rangeCalls int
	lastFrom   time.Time
	lastTo     time.Time
}

func (m *mockShiftStore) CreateShift(ctx context.Context, shift *db.Shift) error {
	m.shifts = append(m.shifts, *shift)
	return nil
}

func (m *mockShiftStore) GetShift(ctx context.Context, id string) (*db.Shift, error) {
	for i := range m.shifts {
		if m.shifts[i].ID == id {
			return &m.shifts[i], nil
		}
	}
	return nil, db.ErrShiftNotFound
}

func (m *mockShiftStore) UpdateShift(ctx context.Context, id string, update db.ShiftUpdate) error {
	return nil
}

func (m *mockShiftStore) DeleteShift(ctx context.Context, id string) error {
	for i := range m.shifts {
		if m.shifts[i].ID == id {
			m.shifts = append(m.shifts[:i], m.shifts[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *mockShiftStore) ListShiftsByEventAndDay(ctx context.Context, eventID string, day time.Time) ([]db.Shift, error) {
	return nil, nil
}

func (m *mockShiftStore) ListShiftsInRange(ctx context.Context, eventID, volunteerID string, from, to time.Time) ([]db.Shift, error) {
	if m.listRangeErr != nil {
		return nil, m.listRangeErr
	}
	m.rangeCalls++
	m.lastFrom = from
	m.lastTo = to

	var result []db.Shift
	for _, s := range m.shifts {
		if s.EventID == eventID && s.VolunteerID == volunteerID &&
			!s.Start.Before(from) && s.Start.Before(to) {
			result = append(result, s)
		}
	}
	return result, nil
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDetect_ReportsOccupiedDays(t *testing.T) {
	store := &mockShiftStore{shifts: []db.Shift{
		{ID: "s1", EventID: "e1", VolunteerID: "v1", Start: time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)},
	}}
	detector := NewDetector(store, zap.NewNop())

	candidates := []time.Time{date(2024, 1, 7), date(2024, 1, 8), date(2024, 1, 9), date(2024, 1, 10)}
	conflicts, err := detector.Detect(context.Background(), "e1", "v1", candidates)

	require.NoError(t, err)
	assert.Equal(t, []time.Time{date(2024, 1, 10)}, conflicts)
}

func TestDetect_RemovedShiftClearsConflict(t *testing.T) {
	store := &mockShiftStore{shifts: []db.Shift{
		{ID: "s1", EventID: "e1", VolunteerID: "v1", Start: time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)},
	}}
	detector := NewDetector(store, zap.NewNop())
	candidates := []time.Time{date(2024, 1, 10)}

	conflicts, err := detector.Detect(context.Background(), "e1", "v1", candidates)
	require.NoError(t, err)
	assert.Len(t, conflicts, 1)

	require.NoError(t, store.DeleteShift(context.Background(), "s1"))

	conflicts, err = detector.Detect(context.Background(), "e1", "v1", candidates)
	require.NoError(t, err)
	assert.Empty(t, conflicts)
}

func TestDetect_ScopedToEventAndVolunteer(t *testing.T) {
	store := &mockShiftStore{shifts: []db.Shift{
		{ID: "s1", EventID: "other-event", VolunteerID: "v1", Start: time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)},
		{ID: "s2", EventID: "e1", VolunteerID: "other-volunteer", Start: time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)},
	}}
	detector := NewDetector(store, zap.NewNop())

	conflicts, err := detector.Detect(context.Background(), "e1", "v1", []time.Time{date(2024, 1, 10)})

	require.NoError(t, err)
	assert.Empty(t, conflicts)
}

func TestDetect_SingleDateSpecialCase(t *testing.T) {
	// Non-recurring scheduling is a one-element candidate list
	store := &mockShiftStore{shifts: []db.Shift{
		{ID: "s1", EventID: "e1", VolunteerID: "v1", Start: time.Date(2024, 1, 7, 23, 59, 0, 0, time.UTC)},
	}}
	detector := NewDetector(store, zap.NewNop())

	conflicts, err := detector.Detect(context.Background(), "e1", "v1", []time.Time{date(2024, 1, 7)})

	require.NoError(t, err)
	assert.Equal(t, []time.Time{date(2024, 1, 7)}, conflicts)
}

func TestDetect_MidnightBoundaryIsExclusive(t *testing.T) {
	// A shift at the next midnight belongs to the next day
	store := &mockShiftStore{shifts: []db.Shift{
		{ID: "s1", EventID: "e1", VolunteerID: "v1", Start: date(2024, 1, 8)},
	}}
	detector := NewDetector(store, zap.NewNop())

	conflicts, err := detector.Detect(context.Background(), "e1", "v1", []time.Time{date(2024, 1, 7)})

	require.NoError(t, err)
	assert.Empty(t, conflicts)
}

func TestDetect_OneRangedLookup(t *testing.T) {
	store := &mockShiftStore{}
	detector := NewDetector(store, zap.NewNop())

	candidates := []time.Time{date(2024, 1, 7), date(2024, 1, 8), date(2024, 1, 14)}
	_, err := detector.Detect(context.Background(), "e1", "v1", candidates)

	require.NoError(t, err)
	assert.Equal(t, 1, store.rangeCalls)
	assert.Equal(t, date(2024, 1, 7), store.lastFrom)
	assert.Equal(t, date(2024, 1, 15), store.lastTo)
}

func TestDetect_EmptyCandidates(t *testing.T) {
	store := &mockShiftStore{}
	detector := NewDetector(store, zap.NewNop())

	conflicts, err := detector.Detect(context.Background(), "e1", "v1", nil)

	require.NoError(t, err)
	assert.Empty(t, conflicts)
	assert.Equal(t, 0, store.rangeCalls)
}

func TestDetect_StoreError(t *testing.T) {
	store := &mockShiftStore{listRangeErr: errors.New("connection lost")}
	detector := NewDetector(store, zap.NewNop())

	_, err := detector.Detect(context.Background(), "e1", "v1", []time.Time{date(2024, 1, 7)})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list existing shifts")
}
