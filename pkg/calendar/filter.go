package calendar

import (
	"slices"
	"strings"
)

type Filter struct {
	ID        string
	Label     string
	Predicate func(Event) bool
}

// ColorFilter matches events carrying the given color tag.
func ColorFilter(color Color, label string) Filter {
	return Filter{
		ID:    string(color),
		Label: label,
		Predicate: func(e Event) bool {
			return e.Color == color
		},
	}
}

// ColorFilters returns one filter per color, labelled with the color tag.
func ColorFilters() []Filter {
	filters := make([]Filter, 0, len(AllColors))
	for _, c := range AllColors {
		filters = append(filters, ColorFilter(c, string(c)))
	}
	return filters
}

// CategoryFilter matches events whose Category is one of categories.
func CategoryFilter(id, label string, categories ...string) Filter {
	return FieldFilter(id, label, "category", categories...)
}

// MetadataFilter matches events whose metadata key holds one of values.
func MetadataFilter(id, label, key string, values ...string) Filter {
	return Filter{
		ID:    id,
		Label: label,
		Predicate: func(e Event) bool {
			v, ok := e.Metadata[key]
			return ok && slices.Contains(values, v)
		},
	}
}

// FieldFilter matches events whose named field (see Event.Field) holds one
// of values.
func FieldFilter(id, label, field string, values ...string) Filter {
	return Filter{
		ID:    id,
		Label: label,
		Predicate: func(e Event) bool {
			v, ok := e.Field(field)
			return ok && slices.Contains(values, v)
		},
	}
}

// FilterSpec is the declarative form of a Filter, as read from configuration.
type FilterSpec struct {
	ID     string   `koanf:"id"`
	Label  string   `koanf:"label"`
	Field  string   `koanf:"field"`
	Values []string `koanf:"values"`
}

// Build turns s into a Filter. An empty Values list defaults to the
// filter id, so {id: pop, field: type} matches events with type=pop.
func (s FilterSpec) Build() Filter {
	values := s.Values
	if len(values) == 0 {
		values = []string{s.ID}
	}
	label := s.Label
	if label == "" {
		label = s.ID
	}
	return FieldFilter(s.ID, label, s.Field, values...)
}

// FilterEvents narrows events by a free text query and the active filter
// set. The result keeps the input order and the input slice is not touched.
//
// An empty query matches everything. An empty activeFilterIDs applies no
// category restriction at all.
func FilterEvents(events []Event, query string, activeFilterIDs []string, filters []Filter) []Event {
	needle := strings.ToLower(query)
	active := activeFilters(activeFilterIDs, filters)
	restrict := len(activeFilterIDs) > 0

	result := make([]Event, 0, len(events))
	for _, e := range events {
		if !matchesQuery(e, needle) {
			continue
		}
		if restrict && !matchesAny(e, active) {
			continue
		}
		result = append(result, e)
	}
	return result
}

func matchesQuery(e Event, needle string) bool {
	if needle == "" {
		return true
	}
	if strings.Contains(strings.ToLower(e.Title), needle) {
		return true
	}
	return e.Description != "" && strings.Contains(strings.ToLower(e.Description), needle)
}

func matchesAny(e Event, filters []Filter) bool {
	for _, f := range filters {
		if f.Predicate != nil && f.Predicate(e) {
			return true
		}
	}
	return false
}

func activeFilters(ids []string, filters []Filter) []Filter {
	active := make([]Filter, 0, len(ids))
	for _, f := range filters {
		if slices.Contains(ids, f.ID) {
			active = append(active, f)
		}
	}
	return active
}
