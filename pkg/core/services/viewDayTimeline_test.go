package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/adrianoapc/carvalho-rostering/pkg/core/model"
	"github.com/adrianoapc/carvalho-rostering/pkg/db"
)

func TestViewDayTimeline_ContinuousEvent(t *testing.T) {
	database := newMockDatabase()
	database.events["e1"] = db.Event{
		ID:    "e1",
		Title: "Prayer clock",
		Start: date(2024, 1, 7),
		Kind:  model.EventContinuous,
	}
	database.shifts["s1"] = db.Shift{
		ID: "s1", EventID: "e1", VolunteerID: "v1",
		Start: time.Date(2024, 1, 8, 6, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 1, 8, 7, 0, 0, 0, time.UTC),
	}

	now := time.Date(2024, 1, 8, 13, 45, 0, 0, time.UTC)
	timeline, err := ViewDayTimeline(context.Background(), database, zap.NewNop(), "e1", date(2024, 1, 8), now)

	require.NoError(t, err)
	assert.Equal(t, "Prayer clock", timeline.Event.Title)
	require.Len(t, timeline.Slots, 24)
	assert.Equal(t, 13, timeline.CurrentHour)

	require.Len(t, timeline.Slots[6].Shifts, 1)
	assert.Equal(t, "s1", timeline.Slots[6].Shifts[0].ID)
	assert.Empty(t, timeline.Slots[7].Shifts)
}

func TestViewDayTimeline_TimedEventOnAnotherDay(t *testing.T) {
	database := newMockDatabase()
	database.events["e1"] = fourDayEvent()

	// Viewing a day that is not today: no current-hour highlight. The
	// second day of a three-day event carries its second batch of offsets.
	now := time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)
	timeline, err := ViewDayTimeline(context.Background(), database, zap.NewNop(), "e1", date(2024, 1, 8), now)

	require.NoError(t, err)
	require.Len(t, timeline.Slots, 24)
	assert.Equal(t, 24, timeline.Slots[0].Offset)
	assert.Equal(t, 47, timeline.Slots[23].Offset)
	assert.Equal(t, -1, timeline.CurrentHour)
}

func TestViewDayTimeline_UnknownEvent(t *testing.T) {
	database := newMockDatabase()

	_, err := ViewDayTimeline(context.Background(), database, zap.NewNop(), "ghost", date(2024, 1, 8), time.Now())

	require.Error(t, err)
	assert.ErrorIs(t, err, db.ErrEventNotFound)
}
