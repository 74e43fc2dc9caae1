package calendar

import "time"

// DropTarget is where a dragged event was released. Month cells carry only a
// day; week and day grid slots also carry an hour.
type DropTarget struct {
	Date    time.Time
	Hour    int
	HasHour bool
}

// DayTarget is a whole day drop target.
func DayTarget(date time.Time) DropTarget {
	return DropTarget{Date: date}
}

// SlotTarget is an hour slot drop target.
func SlotTarget(date time.Time, hour int) DropTarget {
	return DropTarget{Date: date, Hour: hour, HasHour: true}
}

// Recompute returns e moved to target.
//
// Without an hour only the date changes. With an hour the event starts at
// {hour}:00 and keeps its duration; the end saturates at 23:59 instead of
// rolling into the next day. A negative duration collapses to zero so the
// end never precedes the new start.
func Recompute(e Event, target DropTarget) Event {
	moved := e.Clone()
	moved.Date = target.Date
	if !target.HasHour {
		return moved
	}

	hour := min(max(target.Hour, 0), 23)
	duration := max(ParseWallClock(e.EndTime)-ParseWallClock(e.StartTime), 0)
	start := hour * minutesPerHour
	end := min(start+duration, lastMinuteOfDay)

	moved.StartTime = FormatWallClock(start)
	moved.EndTime = FormatWallClock(end)
	return moved
}
