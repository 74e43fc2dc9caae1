package event_bus

import (
	"time"

	"github.com/dailyplanner/planner/pkg/calendar"
)

const (
	EventView   EventType = "calendar.event.view"
	EventAdd    EventType = "calendar.event.add"
	EventEdit   EventType = "calendar.event.edit"
	EventDelete EventType = "calendar.event.delete"
	// EventUpdate carries drops for hosts that only registered the legacy
	// update handler.
	EventUpdate EventType = "calendar.event.update"
)

type EventViewRequested struct {
	Event calendar.Event
}

type EventAddRequested struct {
	Date      time.Time
	StartTime string
}

type EventEditRequested struct {
	Event calendar.Event
}

type EventDeleteRequested struct {
	EventID string
}

type EventUpdateRequested struct {
	Event calendar.Event
}
