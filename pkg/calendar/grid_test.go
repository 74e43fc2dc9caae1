package calendar

import (
	"testing"
	"time"

	"github.com/dailyplanner/planner/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrid_Month(t *testing.T) {
	now := time.Date(2025, 1, 15, 10, 0, 0, 0, time.Local)
	nav := NewNavigator(now, MonthView, time.Sunday, &utils.MockClock{FixedNow: now})
	events := testEvents()
	events = append(events, Event{ID: "4", Title: "Other day", Date: now.AddDate(0, 0, 1), StartTime: "08:00", EndTime: "09:00"})

	rows := Grid(nav, events, now, 2)

	// Dec 29 2024 (Sunday) to Feb 1 2025 (Saturday).
	require.Len(t, rows, 5)
	for _, row := range rows {
		assert.Len(t, row, 7)
	}
	first := rows[0][0]
	assert.Equal(t, time.Date(2024, 12, 29, 0, 0, 0, 0, time.Local), first.Date)
	assert.False(t, first.InMonth)

	var today DayCell
	for _, row := range rows {
		for _, c := range row {
			if c.IsToday {
				today = c
			}
		}
	}
	assert.Equal(t, 15, today.Date.Day())
	assert.Equal(t, []string{"1", "2"}, ids(today.Events))
	assert.Equal(t, 1, today.Hidden)
}

func TestGrid_Day(t *testing.T) {
	now := time.Date(2025, 1, 15, 10, 0, 0, 0, time.Local)
	nav := NewNavigator(now, DayView, time.Sunday, &utils.MockClock{FixedNow: now})

	rows := Grid(nav, testEvents(), now, 0)

	require.Len(t, rows, 1)
	require.Len(t, rows[0], 1)
	assert.Len(t, rows[0][0].Events, 3)
	assert.Zero(t, rows[0][0].Hidden)
}

func TestBucketByDay(t *testing.T) {
	events := testEvents()
	events[2].Date = day.AddDate(0, 0, 1)

	byDay := BucketByDay(events)

	assert.Equal(t, []string{"1", "2"}, ids(byDay["2025-01-15"]))
	assert.Equal(t, []string{"3"}, ids(byDay["2025-01-16"]))
}
