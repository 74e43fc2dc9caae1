package calendar

import (
	"slices"
	"time"

	"github.com/dailyplanner/planner/internal/utils"
	log "github.com/sirupsen/logrus"
)

// DefaultEventTime is the start time proposed when a whole day is clicked.
const DefaultEventTime = "09:00"

// Callbacks are the optional host handlers. A nil field means the host does
// not handle that interaction and the service treats it as a no-op.
type Callbacks struct {
	OnEventView   func(event Event)
	OnEventAdd    func(date time.Time, startTime string)
	OnEventEdit   func(event Event)
	OnEventDelete func(eventID string)
	// Deprecated: OnEventUpdate only receives drops and only when OnEventEdit
	// is not set. Use OnEventEdit.
	OnEventUpdate func(event Event)
}

// Dependencies configure a Service.
type Dependencies struct {
	// Events is the host owned collection. Leave nil, with Controlled unset
	// and no edit or update callback, to let the service own its events.
	Events      []Event
	Controlled  bool
	InitialDate time.Time
	InitialView View
	WeekStart   time.Weekday
	Filters     []Filter
	Callbacks   Callbacks
	Clock       utils.Clock
}

// Service is the calendar state shared by every view. It is not safe for
// concurrent use; the host serializes calls.
type Service struct {
	nav             *Navigator
	clock           utils.Clock
	callbacks       Callbacks
	controlled      bool
	events          []Event
	filters         []Filter
	searchQuery     string
	activeFilterIDs []string
}

func NewService(deps Dependencies) *Service {
	clock := deps.Clock
	if clock == nil {
		clock = utils.SystemClock{}
	}
	cb := deps.Callbacks
	controlled := deps.Controlled || deps.Events != nil || cb.OnEventEdit != nil || cb.OnEventUpdate != nil

	s := &Service{
		nav:        NewNavigator(deps.InitialDate, deps.InitialView, deps.WeekStart, clock),
		clock:      clock,
		callbacks:  cb,
		controlled: controlled,
		filters:    slices.Clone(deps.Filters),
	}
	s.events = cloneEvents(deps.Events)
	return s
}

// Controlled reports whether the host owns the event collection.
func (s *Service) Controlled() bool {
	return s.controlled
}

func (s *Service) CurrentDate() time.Time {
	return s.nav.CurrentDate()
}

func (s *Service) View() View {
	return s.nav.View()
}

func (s *Service) Navigator() *Navigator {
	return s.nav
}

func (s *Service) Events() []Event {
	return cloneEvents(s.events)
}

// FilteredEvents runs the search query and the active filters over the whole
// collection.
func (s *Service) FilteredEvents() []Event {
	return FilterEvents(s.events, s.searchQuery, s.activeFilterIDs, s.filters)
}

func (s *Service) SearchQuery() string {
	return s.searchQuery
}

func (s *Service) ActiveFilterIDs() []string {
	return slices.Clone(s.activeFilterIDs)
}

func (s *Service) Filters() []Filter {
	return slices.Clone(s.filters)
}

func (s *Service) SetCurrentDate(d time.Time) {
	s.nav.SelectDate(d)
}

func (s *Service) SetView(v View) {
	s.nav.SetView(v)
}

func (s *Service) SetSearchQuery(q string) {
	s.searchQuery = q
}

func (s *Service) SetActiveFilterIDs(ids []string) {
	s.activeFilterIDs = slices.Clone(ids)
}

// ToggleFilter activates a filter when inactive and deactivates it otherwise.
func (s *Service) ToggleFilter(id string) {
	if i := slices.Index(s.activeFilterIDs, id); i >= 0 {
		s.activeFilterIDs = slices.Delete(slices.Clone(s.activeFilterIDs), i, i+1)
		return
	}
	s.activeFilterIDs = append(slices.Clone(s.activeFilterIDs), id)
}

func (s *Service) SelectAllFilters() {
	ids := make([]string, 0, len(s.filters))
	for _, f := range s.filters {
		ids = append(ids, f.ID)
	}
	s.activeFilterIDs = ids
}

func (s *Service) ClearFilters() {
	s.activeFilterIDs = nil
}

func (s *Service) Previous() {
	s.nav.Previous()
}

func (s *Service) Next() {
	s.nav.Next()
}

func (s *Service) Today() {
	s.nav.Today()
}

// SelectDate focuses a date picked in the mini calendar.
func (s *Service) SelectDate(d time.Time) {
	s.nav.SelectDate(d)
}

// DayClick asks the host to add an event on a month cell.
func (s *Service) DayClick(date time.Time) {
	s.add(date, DefaultEventTime)
}

// TimeSlotClick asks the host to add an event at an hour slot.
func (s *Service) TimeSlotClick(date time.Time, hour int) {
	s.add(date, HourLabel(hour))
}

// AddEvent asks the host to add an event today.
func (s *Service) AddEvent() {
	s.add(s.clock.Now(), DefaultEventTime)
}

func (s *Service) add(date time.Time, startTime string) {
	if s.callbacks.OnEventAdd == nil {
		log.Trace("no add handler registered, ignoring add request")
		return
	}
	s.callbacks.OnEventAdd(date, startTime)
}

// EventClick opens an event for editing when the host can edit, and for
// viewing otherwise.
func (s *Service) EventClick(e Event) {
	switch {
	case s.callbacks.OnEventEdit != nil:
		s.callbacks.OnEventEdit(e)
	case s.callbacks.OnEventView != nil:
		s.callbacks.OnEventView(e)
	default:
		log.Tracef("no view or edit handler registered, ignoring click on event %s", e.ID)
	}
}

// EventDrop completes a drag of event eventID onto target. The moved event
// goes to the edit handler, then the legacy update handler, and is applied
// to the service's own events only when the service owns them.
func (s *Service) EventDrop(eventID string, target DropTarget) {
	i := s.indexOf(eventID)
	if i < 0 {
		log.Debugf("dropped event %s not found, ignoring", eventID)
		return
	}
	moved := Recompute(s.events[i], target)

	switch {
	case s.callbacks.OnEventEdit != nil:
		s.callbacks.OnEventEdit(moved)
	case s.callbacks.OnEventUpdate != nil:
		s.callbacks.OnEventUpdate(moved)
	case !s.controlled:
		events := cloneEvents(s.events)
		events[i] = moved
		s.events = events
	default:
		log.Debugf("controlled calendar without edit handler, drop of %s not applied", eventID)
	}
}

// DeleteEvent asks the host to delete an event, or deletes it directly when
// the service owns its events.
func (s *Service) DeleteEvent(eventID string) {
	if s.callbacks.OnEventDelete != nil {
		s.callbacks.OnEventDelete(eventID)
		return
	}
	if s.controlled {
		log.Debugf("controlled calendar without delete handler, delete of %s ignored", eventID)
		return
	}
	i := s.indexOf(eventID)
	if i < 0 {
		return
	}
	s.events = slices.Delete(cloneEvents(s.events), i, i+1)
}

// UpdateEvents replaces the event collection. Hosts call it whenever their
// own copy changes; the service never watches the host.
func (s *Service) UpdateEvents(events []Event) {
	s.events = cloneEvents(events)
}

// UpdateFilters replaces the filter set. Active ids that no longer name a
// filter are dropped.
func (s *Service) UpdateFilters(filters []Filter) {
	s.filters = slices.Clone(filters)
	kept := make([]string, 0, len(s.activeFilterIDs))
	for _, id := range s.activeFilterIDs {
		if slices.ContainsFunc(s.filters, func(f Filter) bool { return f.ID == id }) {
			kept = append(kept, id)
		}
	}
	s.activeFilterIDs = kept
}

// DayEvents returns the filtered events of one day.
func (s *Service) DayEvents(day time.Time) []Event {
	return EventsOnDay(s.FilteredEvents(), day)
}

// VisibleEvents returns the filtered events inside the visible range.
func (s *Service) VisibleEvents() []Event {
	from, to := s.nav.VisibleRange()
	var result []Event
	for _, e := range s.FilteredEvents() {
		day := startOfDay(e.Date)
		if !day.Before(from) && !day.After(to) {
			result = append(result, e)
		}
	}
	return result
}

// Event looks up an event by id.
func (s *Service) Event(eventID string) (Event, bool) {
	i := s.indexOf(eventID)
	if i < 0 {
		return Event{}, false
	}
	return s.events[i].Clone(), true
}

func (s *Service) indexOf(eventID string) int {
	return slices.IndexFunc(s.events, func(e Event) bool { return e.ID == eventID })
}

func cloneEvents(events []Event) []Event {
	if events == nil {
		return []Event{}
	}
	out := make([]Event, len(events))
	for i, e := range events {
		out[i] = e.Clone()
	}
	return out
}
