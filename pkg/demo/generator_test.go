package demo

import (
	"testing"
	"time"

	"github.com/dailyplanner/planner/pkg/calendar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	cfg := GeneratorConfig{EventsPerDay: 4, MonthsBack: 1, MonthsForward: 1, Seed: 42}
	now := time.Date(2025, 3, 10, 15, 0, 0, 0, time.Local)

	events := Generate(cfg, now)

	// Feb 10 up to, not including, Apr 10.
	require.Len(t, events, 59*4)
	assert.Equal(t, time.Date(2025, 2, 10, 0, 0, 0, 0, time.Local), events[0].Date)
	assert.Equal(t, "event-0", events[0].ID)

	seen := map[string]bool{}
	for _, e := range events {
		assert.False(t, seen[e.ID], "duplicate id %s", e.ID)
		seen[e.ID] = true

		start := calendar.ParseWallClock(e.StartTime)
		end := calendar.ParseWallClock(e.EndTime)
		assert.GreaterOrEqual(t, start, 3*60)
		assert.LessOrEqual(t, start, 20*60)
		assert.Greater(t, end, start)
		assert.LessOrEqual(t, end, 23*60+59)
		assert.NotEmpty(t, e.Metadata["type"])
	}
}

func TestGenerate_SameSeedSameEvents(t *testing.T) {
	cfg := GeneratorConfig{EventsPerDay: 3, MonthsBack: 0, MonthsForward: 1, Seed: 7}
	now := time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local)

	assert.Equal(t, Generate(cfg, now), Generate(cfg, now))
}

func TestEventStore(t *testing.T) {
	day := time.Date(2025, 1, 1, 0, 0, 0, 0, time.Local)
	store := NewEventStore(
		calendar.Event{ID: "late", Date: day, StartTime: "18:00"},
		calendar.Event{ID: "next-day", Date: day.AddDate(0, 0, 1), StartTime: "01:00"},
		calendar.Event{ID: "early", Date: day.Add(12 * time.Hour), StartTime: "08:00"},
	)

	all := store.All()
	assert.Equal(t, "early", all[0].ID)
	assert.Equal(t, "late", all[1].ID)
	assert.Equal(t, "next-day", all[2].ID)

	_, err := store.Add(calendar.Event{ID: "late"})
	assert.Error(t, err)

	assert.ErrorIs(t, store.Delete("nope"), ErrEventNotFound)
	require.NoError(t, store.Delete("late"))
	assert.Equal(t, 2, store.Len())

	_, err = store.Get("late")
	assert.ErrorIs(t, err, ErrEventNotFound)
}
