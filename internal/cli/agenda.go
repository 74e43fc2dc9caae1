package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/dailyplanner/planner/pkg/calendar"
	"github.com/dailyplanner/planner/pkg/labels"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"
)

var palette = map[calendar.Color]*color.Color{
	calendar.Tomato:    color.New(color.FgHiRed),
	calendar.Tangerine: color.New(color.FgRed),
	calendar.Banana:    color.New(color.FgHiYellow),
	calendar.Basil:     color.New(color.FgGreen),
	calendar.Sage:      color.New(color.FgHiGreen),
	calendar.Peacock:   color.New(color.FgHiCyan),
	calendar.Blueberry: color.New(color.FgBlue),
	calendar.Lavender:  color.New(color.FgHiBlue),
	calendar.Grape:     color.New(color.FgMagenta),
	calendar.Graphite:  color.New(color.FgHiBlack),
}

// Agenda prints the filtered events of the visible range, one block per day.
type Agenda struct {
	Labels labels.Labels
	// MaxEvents caps the events listed per day; zero or less lists all.
	MaxEvents int
}

func (a *Agenda) Render(w io.Writer, svc *calendar.Service) {
	bold := color.New(color.Bold, color.Underline)
	faint := color.New(color.Faint, color.Italic)
	nav := svc.Navigator()

	_, _ = fmt.Fprintln(w, bold.Sprint(nav.Title(a.Labels)))

	events := svc.VisibleEvents()
	if len(events) == 0 {
		_, _ = fmt.Fprintln(w, faint.Sprint(a.Labels.NoEvents))
		return
	}

	byDay := calendar.BucketByDay(events)
	for _, day := range nav.Days() {
		dayEvents, hidden := calendar.Truncate(byDay[day.Format(time.DateOnly)], a.MaxEvents)
		if len(dayEvents) == 0 {
			continue
		}
		_, _ = fmt.Fprintln(w, "")
		_, _ = fmt.Fprintln(w, color.New(color.Bold).Sprint(a.Labels.FormatDayHeading(day)))

		tbl := uitable.New()
		tbl.Separator = "  "
		tbl.MaxColWidth = 60
		for _, g := range calendar.GroupByHour(dayEvents) {
			for _, e := range g.Events {
				tbl.AddRow(
					fmt.Sprintf("%s-%s", e.StartTime, e.EndTime),
					swatch(e.Color),
					e.Title,
					faint.Sprint(calendar.DurationText(e)),
				)
			}
		}
		_, _ = fmt.Fprintln(w, tbl)
		if hidden > 0 {
			_, _ = fmt.Fprintln(w, faint.Sprint(a.Labels.FormatMore(hidden)))
		}
	}
}

func swatch(c calendar.Color) string {
	p, ok := palette[c]
	if !ok {
		return "●"
	}
	return p.Sprint("●")
}
