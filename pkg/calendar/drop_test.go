package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecompute(t *testing.T) {
	newDay := time.Date(2025, 1, 20, 0, 0, 0, 0, time.Local)
	testCases := []struct {
		name      string
		start     string
		end       string
		target    DropTarget
		wantStart string
		wantEnd   string
	}{
		{"hour slot keeps duration", "09:00", "10:00", SlotTarget(newDay, 14), "14:00", "15:00"},
		{"minutes of the start are reset", "09:20", "10:05", SlotTarget(newDay, 8), "08:00", "08:45"},
		{"short event near midnight stays short", "23:30", "23:40", SlotTarget(newDay, 23), "23:00", "23:10"},
		{"end saturates at the end of the day", "22:30", "23:40", SlotTarget(newDay, 23), "23:00", "23:59"},
		{"long event saturates", "08:00", "18:00", SlotTarget(newDay, 20), "20:00", "23:59"},
		{"end before start collapses", "15:00", "14:00", SlotTarget(newDay, 10), "10:00", "10:00"},
		{"whole day keeps times", "09:15", "10:45", DayTarget(newDay), "09:15", "10:45"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			e := Event{ID: "1", Date: day, StartTime: tc.start, EndTime: tc.end}

			got := Recompute(e, tc.target)

			assert.Equal(t, tc.wantStart, got.StartTime)
			assert.Equal(t, tc.wantEnd, got.EndTime)
			assert.Equal(t, newDay, got.Date)
			assert.Equal(t, "1", got.ID)
		})
	}
}

func TestRecompute_Idempotent(t *testing.T) {
	targets := []DropTarget{
		SlotTarget(day, 14),
		SlotTarget(day, 23),
		DayTarget(day.AddDate(0, 0, 3)),
	}
	for _, e := range append(testEvents(), Event{ID: "x", StartTime: "21:00", EndTime: "23:30"}) {
		for _, target := range targets {
			once := Recompute(e, target)
			twice := Recompute(once, target)

			assert.Equal(t, once, twice)
		}
	}
}

func TestRecompute_PreservesDuration(t *testing.T) {
	for hour := 0; hour < 23; hour++ {
		e := Event{StartTime: "10:10", EndTime: "10:55"}

		got := Recompute(e, SlotTarget(day, hour))

		assert.Equal(t, 45, ParseWallClock(got.EndTime)-ParseWallClock(got.StartTime), "hour %d", hour)
	}
}

func TestRecompute_DoesNotMutateInput(t *testing.T) {
	e := Event{ID: "1", Date: day, StartTime: "09:00", EndTime: "10:00", Metadata: map[string]string{"type": "pop"}}

	got := Recompute(e, SlotTarget(day.AddDate(0, 0, 1), 12))
	got.Metadata["type"] = "rock"

	assert.Equal(t, "09:00", e.StartTime)
	assert.Equal(t, day, e.Date)
	assert.Equal(t, "pop", e.Metadata["type"])
}
