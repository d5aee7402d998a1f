package shifts

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
	shifts    map[string]db.Shift
	createErr error
	deleteErr error
	updateErr error
}

func newMockShiftStore() *mockShiftStore {
	return &mockShiftStore{shifts: make(map[string]db.Shift)}
}

func (m *mockShiftStore) CreateShift(ctx context.Context, shift *db.Shift) error {
	if m.createErr != nil {
		return m.createErr
	}
	// Same uniqueness the store's index enforces: one row per event,
	// volunteer and exact start.
	for _, existing := range m.shifts {
		if existing.EventID == shift.EventID && existing.VolunteerID == shift.VolunteerID &&
			existing.Start.Equal(shift.Start) {
			return db.ErrDuplicateAssignment
		}
	}
	m.shifts[shift.ID] = *shift
	return nil
}

func (m *mockShiftStore) GetShift(ctx context.Context, id string) (*db.Shift, error) {
	shift, ok := m.shifts[id]
	if !ok {
		return nil, db.ErrShiftNotFound
	}
	return &shift, nil
}

func (m *mockShiftStore) UpdateShift(ctx context.Context, id string, update db.ShiftUpdate) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	shift, ok := m.shifts[id]
	if !ok {
		return db.ErrShiftNotFound
	}
	if update.VolunteerID != nil {
		shift.VolunteerID = *update.VolunteerID
	}
	if update.Confirmed != nil {
		shift.Confirmed = *update.Confirmed
	}
	m.shifts[id] = shift
	return nil
}

func (m *mockShiftStore) DeleteShift(ctx context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.shifts, id)
	return nil
}

func (m *mockShiftStore) ListShiftsByEventAndDay(ctx context.Context, eventID string, day time.Time) ([]db.Shift, error) {
	return nil, nil
}

func (m *mockShiftStore) ListShiftsInRange(ctx context.Context, eventID, volunteerID string, from, to time.Time) ([]db.Shift, error) {
	return nil, nil
}

func TestCreate_DefaultsEndToOneHour(t *testing.T) {
	store := newMockShiftStore()
	manager := NewManager(store, zap.NewNop())
	start := time.Date(2024, 1, 7, 9, 0, 0, 0, time.UTC)

	shift, err := manager.Create(context.Background(), CreateParams{
		EventID:     "e1",
		VolunteerID: "v1",
		Start:       start,
	})

	require.NoError(t, err)
	assert.Equal(t, start.Add(time.Hour), shift.End)
	assert.NotEmpty(t, shift.ID)
	assert.False(t, shift.Confirmed)
	assert.Contains(t, store.shifts, shift.ID)
}

func TestCreate_ExplicitEnd(t *testing.T) {
	store := newMockShiftStore()
	manager := NewManager(store, zap.NewNop())
	start := time.Date(2024, 1, 7, 9, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 7, 12, 0, 0, 0, time.UTC)

	shift, err := manager.Create(context.Background(), CreateParams{
		EventID:     "e1",
		VolunteerID: "v1",
		Start:       start,
		End:         end,
		TeamID:      "team-a",
		PositionID:  "door",
	})

	require.NoError(t, err)
	assert.Equal(t, end, shift.End)
	assert.Equal(t, "team-a", shift.TeamID)
	assert.Equal(t, "door", shift.PositionID)
}

func TestCreate_StartAtOrAfterEnd(t *testing.T) {
	store := newMockShiftStore()
	manager := NewManager(store, zap.NewNop())
	start := time.Date(2024, 1, 7, 9, 0, 0, 0, time.UTC)

	_, err := manager.Create(context.Background(), CreateParams{
		EventID:     "e1",
		VolunteerID: "v1",
		Start:       start,
		End:         start,
	})

	var validationErr *ValidationError
	require.Error(t, err)
	assert.True(t, errors.As(err, &validationErr))
	assert.Empty(t, store.shifts)
}

func TestCreate_MissingIdentifiers(t *testing.T) {
	manager := NewManager(newMockShiftStore(), zap.NewNop())
	start := time.Date(2024, 1, 7, 9, 0, 0, 0, time.UTC)

	var validationErr *ValidationError

	_, err := manager.Create(context.Background(), CreateParams{VolunteerID: "v1", Start: start})
	assert.True(t, errors.As(err, &validationErr))

	_, err = manager.Create(context.Background(), CreateParams{EventID: "e1", Start: start})
	assert.True(t, errors.As(err, &validationErr))
}

func TestUpdate_PartialFields(t *testing.T) {
	store := newMockShiftStore()
	start := time.Date(2024, 1, 7, 9, 0, 0, 0, time.UTC)
	store.shifts["s1"] = db.Shift{
		ID: "s1", EventID: "e1", VolunteerID: "v1",
		Start: start, End: start.Add(time.Hour),
	}
	manager := NewManager(store, zap.NewNop())

	newVolunteer := "v2"
	shift, err := manager.Update(context.Background(), "s1", db.ShiftUpdate{VolunteerID: &newVolunteer})
	require.NoError(t, err)
	assert.Equal(t, "v2", shift.VolunteerID)
	assert.False(t, shift.Confirmed)

	confirmed := true
	shift, err = manager.Update(context.Background(), "s1", db.ShiftUpdate{Confirmed: &confirmed})
	require.NoError(t, err)
	assert.Equal(t, "v2", shift.VolunteerID)
	assert.True(t, shift.Confirmed)

	// Times never move through update
	assert.Equal(t, start, shift.Start)
	assert.Equal(t, start.Add(time.Hour), shift.End)
}

func TestUpdate_RequiresAChange(t *testing.T) {
	manager := NewManager(newMockShiftStore(), zap.NewNop())

	_, err := manager.Update(context.Background(), "s1", db.ShiftUpdate{})

	var validationErr *ValidationError
	assert.True(t, errors.As(err, &validationErr))
}

func TestDelete_Idempotent(t *testing.T) {
	store := newMockShiftStore()
	start := time.Date(2024, 1, 7, 9, 0, 0, 0, time.UTC)
	store.shifts["s1"] = db.Shift{ID: "s1", Start: start, End: start.Add(time.Hour)}
	manager := NewManager(store, zap.NewNop())

	require.NoError(t, manager.Delete(context.Background(), "s1"))
	assert.Empty(t, store.shifts)

	// Already gone is a success, not an error
	assert.NoError(t, manager.Delete(context.Background(), "s1"))
	assert.NoError(t, manager.Delete(context.Background(), "never-existed"))
}

func TestDelete_NotFoundFromStoreIsSwallowed(t *testing.T) {
	store := newMockShiftStore()
	store.deleteErr = db.ErrShiftNotFound
	manager := NewManager(store, zap.NewNop())

	assert.NoError(t, manager.Delete(context.Background(), "s1"))
}

func TestDelete_OtherStoreErrorSurfaces(t *testing.T) {
	store := newMockShiftStore()
	store.deleteErr = errors.New("connection lost")
	manager := NewManager(store, zap.NewNop())

	err := manager.Delete(context.Background(), "s1")
	assert.Error(t, err)
}

func TestDuplicateToNextDay(t *testing.T) {
	store := newMockShiftStore()
	start := time.Date(2024, 1, 7, 9, 0, 0, 0, time.UTC)
	store.shifts["s1"] = db.Shift{
		ID: "s1", EventID: "e1", VolunteerID: "v1",
		Start: start, End: start.Add(time.Hour),
		Confirmed: true, TeamID: "team-a", PositionID: "door",
	}
	manager := NewManager(store, zap.NewNop())

	clone, err := manager.DuplicateToNextDay(context.Background(), "s1")
	require.NoError(t, err)

	assert.NotEqual(t, "s1", clone.ID)
	assert.Equal(t, "e1", clone.EventID)
	assert.Equal(t, "v1", clone.VolunteerID)
	assert.True(t, clone.Confirmed)
	assert.Equal(t, "team-a", clone.TeamID)
	assert.Equal(t, "door", clone.PositionID)

	// The clone starts a day later and spans a full 24 hours regardless of
	// the source's one-hour width
	assert.Equal(t, start.AddDate(0, 0, 1), clone.Start)
	assert.Equal(t, start.AddDate(0, 0, 2), clone.End)

	assert.Len(t, store.shifts, 2)
}

func TestDuplicateToNextDay_OverlapsExistingShift(t *testing.T) {
	// Duplication runs no conflict check, and the store only rejects an
	// identical start: the volunteer already serving part of the next day
	// does not block the clone.
	store := newMockShiftStore()
	start := time.Date(2024, 1, 7, 9, 0, 0, 0, time.UTC)
	store.shifts["s1"] = db.Shift{
		ID: "s1", EventID: "e1", VolunteerID: "v1",
		Start: start, End: start.Add(time.Hour),
	}
	store.shifts["next-day"] = db.Shift{
		ID: "next-day", EventID: "e1", VolunteerID: "v1",
		Start: time.Date(2024, 1, 8, 14, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 1, 8, 15, 0, 0, 0, time.UTC),
	}
	manager := NewManager(store, zap.NewNop())

	clone, err := manager.DuplicateToNextDay(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, start.AddDate(0, 0, 1), clone.Start)
	assert.Len(t, store.shifts, 3)
}

func TestDuplicateToNextDay_MissingSource(t *testing.T) {
	manager := NewManager(newMockShiftStore(), zap.NewNop())

	_, err := manager.DuplicateToNextDay(context.Background(), "ghost")

	require.Error(t, err)
	assert.ErrorIs(t, err, db.ErrShiftNotFound)
}
