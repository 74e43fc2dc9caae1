package stats

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/dailyplanner/planner/pkg/calendar"
)

// DailyStats is the scheduled time of one day, split by event color.
type DailyStats struct {
	Date      time.Time
	Colors    []ColorStats
	TotalTime time.Duration
}

type ColorStats struct {
	Color    calendar.Color
	Events   int
	Duration time.Duration
}

type StatsSummary struct {
	StartDate time.Time
	EndDate   time.Time
	Days      []DailyStats
	Colors    []ColorStats
	TotalTime time.Duration
}

// Summarize adds up the scheduled time of events per day and per color over
// days. Events ending before they start count as zero. Colors follow the
// order of calendar.AllColors and only colors in use are listed.
func Summarize(days []time.Time, events []calendar.Event) StatsSummary {
	summary := StatsSummary{}
	if len(days) == 0 {
		return summary
	}
	summary.StartDate = days[0]
	summary.EndDate = days[len(days)-1]

	byDay := calendar.BucketByDay(events)
	totals := map[calendar.Color]*ColorStats{}
	for _, day := range days {
		daily := DailyStats{Date: day}
		perColor := map[calendar.Color]*ColorStats{}
		for _, e := range byDay[day.Format(time.DateOnly)] {
			d := duration(e)
			add(perColor, e.Color, d)
			add(totals, e.Color, d)
			daily.TotalTime += d
		}
		daily.Colors = ordered(perColor)
		summary.TotalTime += daily.TotalTime
		summary.Days = append(summary.Days, daily)
	}
	summary.Colors = ordered(totals)
	return summary
}

func duration(e calendar.Event) time.Duration {
	minutes := calendar.ParseWallClock(e.EndTime) - calendar.ParseWallClock(e.StartTime)
	return time.Duration(max(minutes, 0)) * time.Minute
}

func add(m map[calendar.Color]*ColorStats, c calendar.Color, d time.Duration) {
	s, ok := m[c]
	if !ok {
		s = &ColorStats{Color: c}
		m[c] = s
	}
	s.Events++
	s.Duration += d
}

func ordered(m map[calendar.Color]*ColorStats) []ColorStats {
	out := make([]ColorStats, 0, len(m))
	for _, s := range m {
		out = append(out, *s)
	}
	slices.SortFunc(out, func(a, b ColorStats) int {
		if c := cmp.Compare(rank(a.Color), rank(b.Color)); c != 0 {
			return c
		}
		return strings.Compare(string(a.Color), string(b.Color))
	})
	return out
}

func rank(c calendar.Color) int {
	if i := slices.Index(calendar.AllColors, c); i >= 0 {
		return i
	}
	return len(calendar.AllColors)
}
