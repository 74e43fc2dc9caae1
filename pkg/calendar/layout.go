package calendar

import (
	"fmt"
	"sort"
	"time"
)

const (
	// MinEventMinutes is the shortest duration an event is drawn with.
	MinEventMinutes = 15

	WeekHourRowPx    = 56
	DayHourRowPx     = 64
	MaxVisibleEvents = 50
	MonthCellEvents  = 3
)

// Position is the vertical placement of an event inside a time grid column.
type Position struct {
	TopPx    float64 `json:"topPx"`
	HeightPx float64 `json:"heightPx"`
}

// EventPosition places an event on a time grid with pixelsPerHour rows.
// Events shorter than MinEventMinutes, including ones whose end precedes
// their start, are drawn MinEventMinutes tall.
func EventPosition(e Event, pixelsPerHour float64) Position {
	start := ParseWallClock(e.StartTime)
	end := ParseWallClock(e.EndTime)
	duration := max(end-start, MinEventMinutes)

	return Position{
		TopPx:    minutesToPx(start, pixelsPerHour),
		HeightPx: minutesToPx(duration, pixelsPerHour),
	}
}

// NowIndicatorOffset is the vertical offset of the current time line.
func NowIndicatorOffset(now time.Time, pixelsPerHour float64) float64 {
	return minutesToPx(now.Hour()*minutesPerHour+now.Minute(), pixelsPerHour)
}

func minutesToPx(minutes int, pixelsPerHour float64) float64 {
	return float64(minutes) / minutesPerHour * pixelsPerHour
}

// DurationText renders the raw event duration the way the day view shows it:
// "45min", "2h" or "1h 30min".
func DurationText(e Event) string {
	minutes := ParseWallClock(e.EndTime) - ParseWallClock(e.StartTime)
	hours := minutes / minutesPerHour
	rest := minutes % minutesPerHour
	switch {
	case hours == 0:
		return fmt.Sprintf("%dmin", rest)
	case rest == 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dh %dmin", hours, rest)
	}
}

// HourGroup is a bucket of events starting within the same hour.
type HourGroup struct {
	Hour   int
	Events []Event
}

// GroupByHour buckets events by the hour of their start time. Groups are
// ordered by hour and events inside a group by start minute; events with
// the same start keep their input order.
func GroupByHour(events []Event) []HourGroup {
	byHour := map[int][]Event{}
	for _, e := range events {
		h := ParseWallClock(e.StartTime) / minutesPerHour
		byHour[h] = append(byHour[h], e)
	}

	groups := make([]HourGroup, 0, len(byHour))
	for h, evs := range byHour {
		sort.SliceStable(evs, func(i, j int) bool {
			return ParseWallClock(evs[i].StartTime) < ParseWallClock(evs[j].StartTime)
		})
		groups = append(groups, HourGroup{Hour: h, Events: evs})
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Hour < groups[j].Hour
	})
	return groups
}

// Truncate returns at most limit events and how many were left out.
// A non positive limit disables truncation.
func Truncate(events []Event, limit int) ([]Event, int) {
	if limit <= 0 || len(events) <= limit {
		return events, 0
	}
	return events[:limit], len(events) - limit
}

// EventsOnDay returns the events whose Date falls on day, in input order.
func EventsOnDay(events []Event, day time.Time) []Event {
	result := make([]Event, 0)
	for _, e := range events {
		if e.SameDay(day) {
			result = append(result, e)
		}
	}
	return result
}
