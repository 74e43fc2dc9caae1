// Package ics seeds the demo calendar from an iCalendar file.
package ics

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/dailyplanner/planner/pkg/calendar"
	log "github.com/sirupsen/logrus"
)

const (
	propertyColor = ical.ComponentProperty("COLOR")
	dateLayout    = "20060102"
)

var ErrNoStart = errors.New("event has no start")

// ImportFile reads the calendar at path.
func ImportFile(path string) ([]calendar.Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return Import(f)
}

// Import converts every VEVENT into a calendar event on the local wall
// clock. Only the first occurrence of a recurring event is kept. All-day
// events span 00:00 to 23:59 and events ending on a later day end at 23:59.
// Events that cannot be read are skipped.
func Import(r io.Reader) ([]calendar.Event, error) {
	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse calendar: %w", err)
	}

	events := make([]calendar.Event, 0, len(cal.Events()))
	for _, ve := range cal.Events() {
		e, err := convert(ve)
		if err != nil {
			log.Warnf("skipping event %q: %v", ve.Id(), err)
			continue
		}
		events = append(events, e)
	}
	log.Debugf("imported %d events", len(events))
	return events, nil
}

func convert(ve *ical.VEvent) (calendar.Event, error) {
	e := calendar.Event{
		ID:          value(ve, ical.ComponentPropertyUniqueId),
		Title:       value(ve, ical.ComponentPropertySummary),
		Description: value(ve, ical.ComponentPropertyDescription),
		Color:       calendar.Blueberry,
	}
	if category := value(ve, ical.ComponentPropertyCategories); category != "" {
		e.Category = strings.TrimSpace(strings.Split(category, ",")[0])
	}
	if c := value(ve, propertyColor); c != "" {
		if color, err := calendar.ParseColor(c); err == nil {
			e.Color = color
		}
	}
	if location := value(ve, ical.ComponentPropertyLocation); location != "" {
		e.Metadata = map[string]string{"location": location}
	}

	start := ve.GetProperty(ical.ComponentPropertyDtStart)
	if start == nil || start.Value == "" {
		return calendar.Event{}, ErrNoStart
	}

	if isDate(start) {
		day, err := time.ParseInLocation(dateLayout, start.Value, time.Local)
		if err != nil {
			return calendar.Event{}, fmt.Errorf("invalid start date %q: %w", start.Value, err)
		}
		e.Date = day
		e.StartTime = "00:00"
		e.EndTime = "23:59"
		return e, nil
	}

	startAt, err := ve.GetStartAt()
	if err != nil {
		return calendar.Event{}, fmt.Errorf("invalid start: %w", err)
	}
	startAt = startAt.In(time.Local)
	y, m, d := startAt.Date()
	e.Date = time.Date(y, m, d, 0, 0, 0, 0, time.Local)
	e.StartTime = startAt.Format("15:04")

	endAt, err := ve.GetEndAt()
	switch {
	case err != nil:
		e.EndTime = e.StartTime
	case !e.SameDay(endAt.In(time.Local)):
		e.EndTime = "23:59"
	default:
		e.EndTime = endAt.In(time.Local).Format("15:04")
	}
	return e, nil
}

func isDate(p *ical.IANAProperty) bool {
	if vs, ok := p.ICalParameters["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		return true
	}
	return !strings.Contains(p.Value, "T")
}

func value(ve *ical.VEvent, prop ical.ComponentProperty) string {
	if p := ve.GetProperty(prop); p != nil {
		return p.Value
	}
	return ""
}
