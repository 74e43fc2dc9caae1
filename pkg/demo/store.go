package demo

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dailyplanner/planner/pkg/calendar"
	"github.com/google/uuid"
)

var (
	ErrEventNotFound = errors.New("event not found")
	ErrReadOnly      = errors.New("calendar is read only")
)

// EventStore is the demo host's own copy of the events. It plays the part
// of the host application state behind a controlled calendar.
type EventStore struct {
	mu    sync.RWMutex
	items map[string]calendar.Event
}

func NewEventStore(events ...calendar.Event) *EventStore {
	s := &EventStore{items: make(map[string]calendar.Event, len(events))}
	for _, e := range events {
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		s.items[e.ID] = e.Clone()
	}
	return s
}

// Add stores a new event, assigning an id when it has none.
func (s *EventStore) Add(event calendar.Event) (calendar.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if _, exists := s.items[event.ID]; exists {
		return calendar.Event{}, fmt.Errorf("event %s already exists", event.ID)
	}
	s.items[event.ID] = event.Clone()
	return event, nil
}

func (s *EventStore) Update(event calendar.Event) (calendar.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[event.ID]; !exists {
		return calendar.Event{}, fmt.Errorf("update %s: %w", event.ID, ErrEventNotFound)
	}
	s.items[event.ID] = event.Clone()
	return event, nil
}

func (s *EventStore) Delete(eventID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[eventID]; !exists {
		return fmt.Errorf("delete %s: %w", eventID, ErrEventNotFound)
	}
	delete(s.items, eventID)
	return nil
}

func (s *EventStore) Get(eventID string) (calendar.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.items[eventID]
	if !ok {
		return calendar.Event{}, fmt.Errorf("get %s: %w", eventID, ErrEventNotFound)
	}
	return e.Clone(), nil
}

// All returns every event ordered by day, start time and id.
func (s *EventStore) All() []calendar.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]calendar.Event, 0, len(s.items))
	for _, e := range s.items {
		result = append(result, e.Clone())
	}
	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if dayA, dayB := a.Date.Format(time.DateOnly), b.Date.Format(time.DateOnly); dayA != dayB {
			return dayA < dayB
		}
		if a.StartTime != b.StartTime {
			return a.StartTime < b.StartTime
		}
		return a.ID < b.ID
	})
	return result
}

func (s *EventStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
