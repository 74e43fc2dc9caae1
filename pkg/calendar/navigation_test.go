package calendar

import (
	"testing"
	"time"

	"github.com/dailyplanner/planner/internal/utils"
	"github.com/dailyplanner/planner/pkg/labels"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 30, 0, 0, time.UTC)
}

func TestNavigator_Previous(t *testing.T) {
	testCases := []struct {
		name string
		view View
		from time.Time
		want time.Time
	}{
		{"month across year boundary", MonthView, date(2024, 1, 15), date(2023, 12, 15)},
		{"month clamps to shorter month", MonthView, date(2024, 3, 31), date(2024, 2, 29)},
		{"week across month boundary", WeekView, date(2024, 3, 3), date(2024, 2, 25)},
		{"day across year boundary", DayView, date(2025, 1, 1), date(2024, 12, 31)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			n := NewNavigator(tc.from, tc.view, time.Sunday, nil)

			n.Previous()

			assert.Equal(t, tc.want, n.CurrentDate())
		})
	}
}

func TestNavigator_Next(t *testing.T) {
	testCases := []struct {
		name string
		view View
		from time.Time
		want time.Time
	}{
		{"month across year boundary", MonthView, date(2024, 12, 10), date(2025, 1, 10)},
		{"month from Jan 31 stays in February", MonthView, date(2025, 1, 31), date(2025, 2, 28)},
		{"week", WeekView, date(2024, 12, 28), date(2025, 1, 4)},
		{"day", DayView, date(2024, 2, 28), date(2024, 2, 29)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			n := NewNavigator(tc.from, tc.view, time.Sunday, nil)

			n.Next()

			assert.Equal(t, tc.want, n.CurrentDate())
		})
	}
}

func TestNavigator_RoundTrip(t *testing.T) {
	starts := []time.Time{
		date(2024, 1, 31), date(2024, 12, 31), date(2025, 1, 1),
		date(2024, 2, 29), date(2023, 6, 15),
	}
	for _, view := range []View{MonthView, WeekView, DayView} {
		for _, start := range starts {
			n := NewNavigator(start, view, time.Sunday, nil)

			n.Previous()
			n.Next()

			got := n.CurrentDate()
			assert.Equal(t, start.Year(), got.Year(), "%s %v", view, start)
			assert.Equal(t, start.Month(), got.Month(), "%s %v", view, start)
			if view != MonthView {
				assert.Equal(t, start, got)
			}
		}
	}
}

func TestNavigator_TodayAndSetView(t *testing.T) {
	clock := &utils.MockClock{FixedNow: date(2026, 10, 15)}
	n := NewNavigator(date(2020, 5, 5), WeekView, time.Sunday, clock)

	n.SetView(DayView)
	assert.Equal(t, date(2020, 5, 5), n.CurrentDate())
	assert.Equal(t, DayView, n.View())

	n.Today()
	assert.Equal(t, date(2026, 10, 15), n.CurrentDate())

	n.SelectDate(date(2021, 1, 1))
	assert.Equal(t, date(2021, 1, 1), n.CurrentDate())
}

func TestNavigator_Defaults(t *testing.T) {
	clock := &utils.MockClock{FixedNow: date(2026, 10, 15)}

	n := NewNavigator(time.Time{}, "", time.Weekday(9), clock)

	assert.Equal(t, date(2026, 10, 15), n.CurrentDate())
	assert.Equal(t, MonthView, n.View())
	assert.Equal(t, time.Sunday, n.WeekStart())
}

func TestNavigator_VisibleRange(t *testing.T) {
	midnight := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	testCases := []struct {
		name      string
		view      View
		weekStart time.Weekday
		focus     time.Time
		wantFrom  time.Time
		wantTo    time.Time
	}{
		{"month with sunday start", MonthView, time.Sunday, date(2025, 1, 15), midnight(2024, 12, 29), midnight(2025, 2, 1)},
		{"month with monday start", MonthView, time.Monday, date(2025, 1, 15), midnight(2024, 12, 30), midnight(2025, 2, 2)},
		{"week", WeekView, time.Sunday, date(2025, 1, 15), midnight(2025, 1, 12), midnight(2025, 1, 18)},
		{"day", DayView, time.Sunday, date(2025, 1, 15), midnight(2025, 1, 15), midnight(2025, 1, 15)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			n := NewNavigator(tc.focus, tc.view, tc.weekStart, nil)

			from, to := n.VisibleRange()

			assert.Equal(t, tc.wantFrom, from)
			assert.Equal(t, tc.wantTo, to)
		})
	}
}

func TestNavigator_Days(t *testing.T) {
	n := NewNavigator(date(2025, 1, 15), MonthView, time.Sunday, nil)

	days := n.Days()

	require.Len(t, days, 35)
	assert.Equal(t, time.Sunday, days[0].Weekday())
	assert.Equal(t, time.Saturday, days[len(days)-1].Weekday())
}

func TestNavigator_Title(t *testing.T) {
	n := NewNavigator(date(2025, 1, 5), MonthView, time.Monday, nil)
	assert.Equal(t, "January 2025", n.Title(labels.English))
	assert.Equal(t, "janeiro 2025", n.Title(labels.Portuguese))

	n.SetView(WeekView)
	assert.Equal(t, "Week of 05 January", n.Title(labels.English))

	n.SetView(DayView)
	assert.Equal(t, "January 5, 2025", n.Title(labels.English))
	assert.Equal(t, "5 de janeiro de 2025", n.Title(labels.Portuguese))

	assert.Equal(t, []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}, n.WeekDayLabels(labels.English))
}

func TestParseView(t *testing.T) {
	v, err := ParseView("Week")
	assert.NoError(t, err)
	assert.Equal(t, WeekView, v)

	_, err = ParseView("year")
	assert.Error(t, err)
}
