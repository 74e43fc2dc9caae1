package app

import (
	"github.com/dailyplanner/planner/internal/config"
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {
	h := deps.CalendarHandler

	// Calendar state
	r.HandleFunc("/api/calendar/state", h.GetState).Methods("GET")
	r.HandleFunc("/api/calendar/events", h.GetEvents).Methods("GET")
	r.HandleFunc("/api/calendar/day", h.GetDay).Queries("date", "{date}").Methods("GET")
	r.HandleFunc("/api/calendar/stats", h.GetStats).Methods("GET")
	r.HandleFunc("/api/calendar/view", h.SetView).Methods("PUT")
	r.HandleFunc("/api/calendar/date", h.SetDate).Methods("PUT")
	r.HandleFunc("/api/calendar/search", h.SetSearch).Methods("PUT")
	r.HandleFunc("/api/calendar/filters", h.SetFilters).Methods("PUT")
	r.HandleFunc("/api/calendar/filters/{filterId}/toggle", h.ToggleFilter).Methods("POST")
	r.HandleFunc("/api/calendar/navigate/{direction:previous|next|today}", h.Navigate).Methods("POST")

	// Interactions
	r.HandleFunc("/api/calendar/click/event/{eventId}", h.ClickEvent).Methods("POST")
	r.HandleFunc("/api/calendar/click/day", h.ClickDay).Methods("POST")
	r.HandleFunc("/api/calendar/click/slot", h.ClickSlot).Methods("POST")
	r.HandleFunc("/api/calendar/add", h.AddEvent).Methods("POST")
	r.HandleFunc("/api/calendar/drop", h.DropEvent).Methods("POST")
	r.HandleFunc("/api/calendar/events/{eventId}", h.DeleteEvent).Methods("DELETE")

	// Host event store
	r.HandleFunc("/api/calendar/events", h.CreateEvent).Methods("POST")
	r.HandleFunc("/api/calendar/events/{eventId}", h.UpdateEvent).Methods("PUT")
}
