package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/dailyplanner/planner/internal/utils"
	"github.com/dailyplanner/planner/pkg/labels"
)

type View string

const (
	MonthView View = "month"
	WeekView  View = "week"
	DayView   View = "day"
)

func ParseView(s string) (View, error) {
	switch v := View(strings.ToLower(strings.TrimSpace(s))); v {
	case MonthView, WeekView, DayView:
		return v, nil
	}
	return "", fmt.Errorf("unknown calendar view: %q", s)
}

// Navigator is the focus date cursor of a calendar together with the view
// that decides how far a step goes.
type Navigator struct {
	current   time.Time
	view      View
	weekStart time.Weekday
	clock     utils.Clock
}

func NewNavigator(initial time.Time, view View, weekStart time.Weekday, clock utils.Clock) *Navigator {
	if clock == nil {
		clock = utils.SystemClock{}
	}
	if initial.IsZero() {
		initial = clock.Now()
	}
	if view == "" {
		view = MonthView
	}
	if weekStart < time.Sunday || weekStart > time.Saturday {
		weekStart = time.Sunday
	}
	return &Navigator{current: initial, view: view, weekStart: weekStart, clock: clock}
}

func (n *Navigator) CurrentDate() time.Time {
	return n.current
}

func (n *Navigator) View() View {
	return n.view
}

func (n *Navigator) WeekStart() time.Weekday {
	return n.weekStart
}

// Previous moves the cursor one month, week or day back depending on the view.
func (n *Navigator) Previous() {
	n.current = step(n.current, n.view, -1)
}

// Next moves the cursor one month, week or day forward depending on the view.
func (n *Navigator) Next() {
	n.current = step(n.current, n.view, 1)
}

// Today moves the cursor to the current moment, whatever the view.
func (n *Navigator) Today() {
	n.current = n.clock.Now()
}

func (n *Navigator) SelectDate(d time.Time) {
	n.current = d
}

// SetView changes the view and leaves the cursor where it is.
func (n *Navigator) SetView(v View) {
	n.view = v
}

func step(t time.Time, view View, dir int) time.Time {
	switch view {
	case MonthView:
		return AddMonths(t, dir)
	case WeekView:
		return t.AddDate(0, 0, 7*dir)
	default:
		return t.AddDate(0, 0, dir)
	}
}

// AddMonths adds n calendar months to t. The day of month is clamped to the
// last day of the target month, so Jan 31 + 1 month is the last day of
// February rather than early March.
func AddMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	last := daysIn(first.Year(), first.Month(), t.Location())
	return first.AddDate(0, 0, min(d, last)-1)
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}

// StartOfWeek is the first day of the week containing t, at midnight.
func StartOfWeek(t time.Time, weekStart time.Weekday) time.Time {
	delta := (int(t.Weekday()) - int(weekStart) + 7) % 7
	return startOfDay(t).AddDate(0, 0, -delta)
}

// VisibleRange returns the first and last day shown by the current view.
// A month view covers whole weeks around the month.
func (n *Navigator) VisibleRange() (time.Time, time.Time) {
	switch n.view {
	case MonthView:
		y, m, _ := n.current.Date()
		first := time.Date(y, m, 1, 0, 0, 0, 0, n.current.Location())
		last := time.Date(y, m+1, 0, 0, 0, 0, 0, n.current.Location())
		return StartOfWeek(first, n.weekStart), StartOfWeek(last, n.weekStart).AddDate(0, 0, 6)
	case WeekView:
		from := StartOfWeek(n.current, n.weekStart)
		return from, from.AddDate(0, 0, 6)
	default:
		day := startOfDay(n.current)
		return day, day
	}
}

// Days lists every day of the visible range.
func (n *Navigator) Days() []time.Time {
	from, to := n.VisibleRange()
	var days []time.Time
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// WeekDayLabels returns the short weekday names rotated to the week start.
func (n *Navigator) WeekDayLabels(l labels.Labels) []string {
	names := make([]string, 0, 7)
	for i := range 7 {
		names = append(names, l.WeekDays[(int(n.weekStart)+i)%7])
	}
	return names
}

// Title is the header text for the current view.
func (n *Navigator) Title(l labels.Labels) string {
	switch n.view {
	case MonthView:
		return l.FormatMonthYear(n.current)
	case WeekView:
		return l.FormatWeekOf(n.current)
	default:
		return l.FormatLongDate(n.current)
	}
}
