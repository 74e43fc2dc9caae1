package demo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dailyplanner/planner/internal/event_bus"
	"github.com/dailyplanner/planner/pkg/calendar"
	log "github.com/sirupsen/logrus"
)

// Intent is a callback fired by the calendar that the front end still has
// to act upon, such as opening the add or edit form.
type Intent struct {
	Kind      event_bus.EventType
	Event     *calendar.Event
	EventID   string
	Date      time.Time
	StartTime string
}

type Options struct {
	// ReadOnly registers only the view handler: clicks open events for
	// viewing and drops or deletes are ignored.
	ReadOnly bool
	// LegacyUpdate registers the deprecated update handler instead of the
	// edit handler. Clicks then open events for viewing and only drops
	// change them.
	LegacyUpdate bool
}

// Host is the application side of a controlled calendar. The calendar's
// callbacks are published on the bus; the host's subscribers apply edits
// and deletes to the store, push the new collection back into the service
// and record intents for the front end.
type Host struct {
	opts    Options
	bus     *event_bus.EventBus
	store   *EventStore
	service *calendar.Service

	mu      sync.Mutex
	intents []Intent
}

func NewHost(bus *event_bus.EventBus, store *EventStore, deps calendar.Dependencies, opts Options) *Host {
	h := &Host{opts: opts, bus: bus, store: store}

	deps.Events = store.All()
	deps.Controlled = true
	deps.Callbacks = h.callbacks(opts)
	h.service = calendar.NewService(deps)
	h.subscribe()
	return h
}

func (h *Host) Service() *calendar.Service {
	return h.service
}

func (h *Host) Store() *EventStore {
	return h.store
}

// Drain returns the intents recorded since the last call.
func (h *Host) Drain() []Intent {
	h.mu.Lock()
	defer h.mu.Unlock()
	intents := h.intents
	h.intents = nil
	if intents == nil {
		return []Intent{}
	}
	return intents
}

func (h *Host) ReadOnly() bool {
	return h.opts.ReadOnly
}

// CreateEvent adds an event submitted by the front end's form.
func (h *Host) CreateEvent(e calendar.Event) (calendar.Event, error) {
	if h.opts.ReadOnly {
		return calendar.Event{}, ErrReadOnly
	}
	created, err := h.store.Add(e)
	if err != nil {
		return calendar.Event{}, fmt.Errorf("failed to add event: %w", err)
	}
	h.refresh()
	return created, nil
}

// SaveEvent stores an event edited in the front end's form.
func (h *Host) SaveEvent(e calendar.Event) (calendar.Event, error) {
	if h.opts.ReadOnly {
		return calendar.Event{}, ErrReadOnly
	}
	saved, err := h.store.Update(e)
	if err != nil {
		return calendar.Event{}, fmt.Errorf("failed to update event: %w", err)
	}
	h.refresh()
	return saved, nil
}

func (h *Host) refresh() {
	h.service.UpdateEvents(h.store.All())
}

func (h *Host) record(i Intent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.intents = append(h.intents, i)
}

func (h *Host) publish(eventType event_bus.EventType, data any) {
	if err := h.bus.Publish(event_bus.NewEvent(context.Background(), eventType, data)); err != nil {
		log.Errorf("failed to handle %s: %v", eventType, err)
	}
}

func (h *Host) callbacks(opts Options) calendar.Callbacks {
	cb := calendar.Callbacks{
		OnEventView: func(e calendar.Event) {
			h.publish(event_bus.EventView, event_bus.EventViewRequested{Event: e})
		},
	}
	if opts.ReadOnly {
		return cb
	}
	cb.OnEventAdd = func(date time.Time, startTime string) {
		h.publish(event_bus.EventAdd, event_bus.EventAddRequested{Date: date, StartTime: startTime})
	}
	if opts.LegacyUpdate {
		cb.OnEventUpdate = func(e calendar.Event) {
			h.publish(event_bus.EventUpdate, event_bus.EventUpdateRequested{Event: e})
		}
	} else {
		cb.OnEventEdit = func(e calendar.Event) {
			h.publish(event_bus.EventEdit, event_bus.EventEditRequested{Event: e})
		}
	}
	cb.OnEventDelete = func(id string) {
		h.publish(event_bus.EventDelete, event_bus.EventDeleteRequested{EventID: id})
	}
	return cb
}

func (h *Host) subscribe() {
	event_bus.SubscribeTyped[event_bus.EventViewRequested](h.bus, event_bus.EventView,
		func(e event_bus.EventT[event_bus.EventViewRequested]) error {
			h.record(Intent{Kind: event_bus.EventView, Event: &e.Data.Event})
			return nil
		})

	event_bus.SubscribeTyped[event_bus.EventAddRequested](h.bus, event_bus.EventAdd,
		func(e event_bus.EventT[event_bus.EventAddRequested]) error {
			h.record(Intent{Kind: event_bus.EventAdd, Date: e.Data.Date, StartTime: e.Data.StartTime})
			return nil
		})

	event_bus.SubscribeTyped[event_bus.EventEditRequested](h.bus, event_bus.EventEdit,
		func(e event_bus.EventT[event_bus.EventEditRequested]) error {
			log.Debugf("applying edit of event %s", e.Data.Event.ID)
			if _, err := h.store.Update(e.Data.Event); err != nil {
				return err
			}
			h.refresh()
			h.record(Intent{Kind: event_bus.EventEdit, Event: &e.Data.Event})
			return nil
		})

	event_bus.SubscribeTyped[event_bus.EventUpdateRequested](h.bus, event_bus.EventUpdate,
		func(e event_bus.EventT[event_bus.EventUpdateRequested]) error {
			log.Debugf("applying dropped event %s", e.Data.Event.ID)
			if _, err := h.store.Update(e.Data.Event); err != nil {
				return err
			}
			h.refresh()
			h.record(Intent{Kind: event_bus.EventUpdate, Event: &e.Data.Event})
			return nil
		})

	event_bus.SubscribeTyped[event_bus.EventDeleteRequested](h.bus, event_bus.EventDelete,
		func(e event_bus.EventT[event_bus.EventDeleteRequested]) error {
			log.Debugf("deleting event %s", e.Data.EventID)
			if err := h.store.Delete(e.Data.EventID); err != nil {
				return err
			}
			h.refresh()
			h.record(Intent{Kind: event_bus.EventDelete, EventID: e.Data.EventID})
			return nil
		})
}
