package calendar

import (
	"fmt"
	"maps"
	"strings"
	"time"
)

// Color is the category tag of an event. The set is closed.
type Color string

const (
	Tomato    Color = "tomato"
	Tangerine Color = "tangerine"
	Banana    Color = "banana"
	Basil     Color = "basil"
	Sage      Color = "sage"
	Peacock   Color = "peacock"
	Blueberry Color = "blueberry"
	Lavender  Color = "lavender"
	Grape     Color = "grape"
	Graphite  Color = "graphite"
)

// AllColors lists every color in display order.
var AllColors = []Color{
	Tomato, Tangerine, Banana, Basil, Sage,
	Peacock, Blueberry, Lavender, Grape, Graphite,
}

// ParseColor converts a textual color tag. Matching is case-insensitive.
func ParseColor(s string) (Color, error) {
	c := Color(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllColors {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown event color: %q", s)
}

type Event struct {
	ID    string
	Title string
	// Date identifies the calendar day of the event; its time of day is ignored.
	Date      time.Time
	StartTime string // "HH:mm"
	EndTime   string // "HH:mm"
	Color     Color
	// Description is optional, empty means absent.
	Description string
	Category    string
	// Metadata carries host specific fields the core never interprets.
	Metadata map[string]string
}

// Field returns the value of a named field. Known schema fields are
// resolved first, anything else is looked up in Metadata.
func (e Event) Field(name string) (string, bool) {
	switch name {
	case "id":
		return e.ID, true
	case "title":
		return e.Title, true
	case "color":
		return string(e.Color), true
	case "description":
		return e.Description, e.Description != ""
	case "category":
		return e.Category, e.Category != ""
	}
	v, ok := e.Metadata[name]
	return v, ok
}

// Clone returns a copy that shares no mutable state with e.
func (e Event) Clone() Event {
	c := e
	if e.Metadata != nil {
		c.Metadata = maps.Clone(e.Metadata)
	}
	return c
}

// SameDay reports whether the event falls on the calendar day of d.
func (e Event) SameDay(d time.Time) bool {
	return sameDay(e.Date, d)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
