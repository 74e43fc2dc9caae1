package calendar

import (
	"slices"
	"time"
)

// DayCell is one day of a month or week grid.
type DayCell struct {
	Date    time.Time
	InMonth bool
	IsToday bool
	Events  []Event
	// Hidden is how many events did not fit the cell.
	Hidden int
}

// Grid lays the visible days out in rows of seven (a single cell for the day
// view) and assigns each day its events in stored order. cellLimit caps the
// events kept per cell; zero or less keeps them all.
func Grid(nav *Navigator, events []Event, now time.Time, cellLimit int) [][]DayCell {
	month := nav.CurrentDate().Month()
	byDay := BucketByDay(events)

	cells := make([]DayCell, 0, 42)
	for _, d := range nav.Days() {
		shown, hidden := Truncate(byDay[dayKey(d)], cellLimit)
		cells = append(cells, DayCell{
			Date:    d,
			InMonth: d.Month() == month,
			IsToday: sameDay(d, now),
			Events:  shown,
			Hidden:  hidden,
		})
	}
	return slices.Collect(slices.Chunk(cells, 7))
}

// BucketByDay indexes events by their day, keyed "2006-01-02".
func BucketByDay(events []Event) map[string][]Event {
	byDay := make(map[string][]Event)
	for _, e := range events {
		k := dayKey(e.Date)
		byDay[k] = append(byDay[k], e)
	}
	return byDay
}

func dayKey(t time.Time) string {
	return t.Format(time.DateOnly)
}
