package demo

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dailyplanner/planner/internal/event_bus"
	"github.com/dailyplanner/planner/internal/rest"
	"github.com/dailyplanner/planner/internal/utils"
	"github.com/dailyplanner/planner/pkg/calendar"
	"github.com/dailyplanner/planner/pkg/labels"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHandler(t *testing.T, opts Options) (*Handler, *Host) {
	t.Helper()
	host := setupHost(t, opts)
	clock := &utils.MockClock{FixedNow: today.Add(10*time.Hour + 30*time.Minute)}
	return NewHandler(host, clock, DefaultLayout()), host
}

func call(handler http.HandlerFunc, method, target, body string, vars map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req = req.WithContext(labels.WithLabels(req.Context(), labels.English))
	if vars != nil {
		req = mux.SetURLVars(req, vars)
	}
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func TestHandler_GetState(t *testing.T) {
	h, _ := setupHandler(t, Options{})

	rec := call(h.GetState, http.MethodGet, "/api/calendar/state", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	state := decodeBody[StateDTO](t, rec)
	assert.Equal(t, "2025-01-15", state.CurrentDate)
	assert.Equal(t, "week", state.View)
	assert.Equal(t, "Week of 15 January", state.Title)
	assert.Equal(t, "2025-01-12", state.From)
	assert.Equal(t, "2025-01-18", state.To)
	assert.Equal(t, "Sun", state.WeekDays[0])
	assert.True(t, state.Controlled)
	assert.Len(t, state.Filters, 9)
	assert.Empty(t, state.ActiveFilters)
	assert.Equal(t, "Today", state.Labels.Today)
}

func TestHandler_StateChanges(t *testing.T) {
	h, _ := setupHandler(t, Options{})

	rec := call(h.SetView, http.MethodPut, "/api/calendar/view", `{"view":"month"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "January 2025", decodeBody[StateDTO](t, rec).Title)

	rec = call(h.Navigate, http.MethodPost, "/api/calendar/navigate/next", "", map[string]string{"direction": "next"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2025-02-15", decodeBody[StateDTO](t, rec).CurrentDate)

	rec = call(h.Navigate, http.MethodPost, "/api/calendar/navigate/today", "", map[string]string{"direction": "today"})
	assert.Equal(t, "2025-01-15", decodeBody[StateDTO](t, rec).CurrentDate)

	rec = call(h.SetDate, http.MethodPut, "/api/calendar/date", `{"date":"2025-03-01"}`, nil)
	assert.Equal(t, "2025-03-01", decodeBody[StateDTO](t, rec).CurrentDate)

	rec = call(h.SetSearch, http.MethodPut, "/api/calendar/search", `{"query":"concert"}`, nil)
	assert.Equal(t, "concert", decodeBody[StateDTO](t, rec).SearchQuery)

	rec = call(h.ToggleFilter, http.MethodPost, "/api/calendar/filters/jazz/toggle", "", map[string]string{"filterId": "jazz"})
	assert.Equal(t, []string{"jazz"}, decodeBody[StateDTO](t, rec).ActiveFilters)

	rec = call(h.SetFilters, http.MethodPut, "/api/calendar/filters", `{"clear":true}`, nil)
	assert.Empty(t, decodeBody[StateDTO](t, rec).ActiveFilters)
}

func TestHandler_BadInput(t *testing.T) {
	h, _ := setupHandler(t, Options{})

	tests := []struct {
		name    string
		handler http.HandlerFunc
		body    string
		vars    map[string]string
	}{
		{"unknown view", h.SetView, `{"view":"year"}`, nil},
		{"malformed body", h.SetView, `{`, nil},
		{"bad date", h.SetDate, `{"date":"15/01/2025"}`, nil},
		{"bad direction", h.Navigate, ``, map[string]string{"direction": "sideways"}},
		{"bad hour", h.ClickSlot, `{"date":"2025-01-15","hour":24}`, nil},
		{"missing title", h.CreateEvent, `{"date":"2025-01-15"}`, nil},
		{"bad color", h.CreateEvent, `{"title":"x","date":"2025-01-15","color":"pink"}`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := call(tt.handler, http.MethodPost, "/", tt.body, tt.vars)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.NotEmpty(t, decodeBody[rest.ErrorResponse](t, rec).Error)
		})
	}
}

func TestHandler_GetEvents(t *testing.T) {
	h, _ := setupHandler(t, Options{})

	rec := call(h.GetEvents, http.MethodGet, "/api/calendar/events", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody[EventsDTO](t, rec)
	require.Len(t, body.Events, 2)
	standup := body.Events[0]
	assert.Equal(t, "a", standup.ID)
	require.NotNil(t, standup.Position)
	assert.InDelta(t, 9*56.0, standup.Position.TopPx, 0.001)
	assert.InDelta(t, 14.0, standup.Position.HeightPx, 0.001)
	assert.Equal(t, "15min", standup.Duration)
	require.NotNil(t, body.NowOffset)
	assert.InDelta(t, 10.5*56, *body.NowOffset, 0.001)
	require.Len(t, body.Grid, 1)
	assert.Len(t, body.Grid[0], 7)
}

func TestHandler_GetDay(t *testing.T) {
	h, _ := setupHandler(t, Options{})

	rec := call(h.GetDay, http.MethodGet, "/api/calendar/day?date=2025-01-15", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	day := decodeBody[DayDTO](t, rec)
	assert.Equal(t, "Wednesday, January 15", day.Heading)
	assert.Equal(t, 2, day.Count)
	require.Len(t, day.Groups, 2)
	assert.Equal(t, "09:00", day.Groups[0].Label)
	assert.Equal(t, "20:00", day.Groups[1].Label)

	rec = call(h.GetDay, http.MethodGet, "/api/calendar/day?date=2025-01-16", "", nil)
	assert.Equal(t, "No events on this day", decodeBody[DayDTO](t, rec).Empty)
}

func TestHandler_Interactions(t *testing.T) {
	h, host := setupHandler(t, Options{})

	rec := call(h.ClickEvent, http.MethodPost, "/", "", map[string]string{"eventId": "b"})
	require.Equal(t, http.StatusOK, rec.Code)
	intents := decodeBody[[]IntentDTO](t, rec)
	require.Len(t, intents, 1)
	assert.Equal(t, "calendar.event.edit", intents[0].Kind)
	assert.Equal(t, "Concert", intents[0].Event.Title)

	rec = call(h.ClickDay, http.MethodPost, "/", `{"date":"2025-01-20"}`, nil)
	intents = decodeBody[[]IntentDTO](t, rec)
	require.Len(t, intents, 1)
	assert.Equal(t, "2025-01-20", intents[0].Date)
	assert.Equal(t, "09:00", intents[0].StartTime)

	rec = call(h.DropEvent, http.MethodPost, "/", `{"eventId":"b","date":"2025-01-16","hour":22}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	stored, err := host.Store().Get("b")
	require.NoError(t, err)
	assert.Equal(t, "22:00", stored.StartTime)
	assert.Equal(t, "23:59", stored.EndTime)
	assert.Equal(t, 16, stored.Date.Day())

	rec = call(h.DropEvent, http.MethodPost, "/", `{"eventId":"nope","date":"2025-01-16"}`, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = call(h.ClickEvent, http.MethodPost, "/", "", map[string]string{"eventId": "nope"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = call(h.DeleteEvent, http.MethodDelete, "/", "", map[string]string{"eventId": "a"})
	intents = decodeBody[[]IntentDTO](t, rec)
	require.Len(t, intents, 1)
	assert.Equal(t, "a", intents[0].EventID)
	assert.Equal(t, 1, host.Store().Len())
}

func TestHandler_CreateAndUpdate(t *testing.T) {
	h, host := setupHandler(t, Options{})

	rec := call(h.CreateEvent, http.MethodPost, "/", `{"title":"Dentist","date":"2025-01-17","startTime":"14:00","color":"tomato"}`, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeBody[EventDTO](t, rec)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "15:00", created.EndTime)
	assert.Len(t, host.Service().Events(), 3)

	rec = call(h.UpdateEvent, http.MethodPut, "/", `{"title":"Dentist (moved)","date":"2025-01-18","startTime":"08:00","endTime":"08:30"}`,
		map[string]string{"eventId": created.ID})
	require.Equal(t, http.StatusOK, rec.Code)
	updated, ok := host.Service().Event(created.ID)
	require.True(t, ok)
	assert.Equal(t, "Dentist (moved)", updated.Title)

	rec = call(h.UpdateEvent, http.MethodPut, "/", `{"title":"x","date":"2025-01-18"}`, map[string]string{"eventId": "nope"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = call(h.UpdateEvent, http.MethodPut, "/", `{"id":"a","title":"x","date":"2025-01-18"}`, map[string]string{"eventId": "b"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_ReadOnly(t *testing.T) {
	h, _ := setupHandler(t, Options{ReadOnly: true})

	rec := call(h.CreateEvent, http.MethodPost, "/", `{"title":"Dentist","date":"2025-01-17"}`, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = call(h.ClickEvent, http.MethodPost, "/", "", map[string]string{"eventId": "a"})
	intents := decodeBody[[]IntentDTO](t, rec)
	require.Len(t, intents, 1)
	assert.Equal(t, "calendar.event.view", intents[0].Kind)

	rec = call(h.AddEvent, http.MethodPost, "/", "", nil)
	assert.Empty(t, decodeBody[[]IntentDTO](t, rec))
}

func TestHandler_GetStats(t *testing.T) {
	h, _ := setupHandler(t, Options{})

	rec := call(h.GetStats, http.MethodGet, "/api/calendar/stats", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	summary := decodeBody[StatsSummaryDTO](t, rec)
	assert.Equal(t, "2025-01-12", summary.StartDate)
	assert.Equal(t, 135, summary.TotalTime)
	require.Len(t, summary.Colors, 2)
	assert.Equal(t, "sage", summary.Colors[0].Color)

	rec = call(h.GetStats, http.MethodGet, "/api/calendar/stats?format=csv", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "Total,00:15:00,02:00:00,02:15:00")
}

func busyWeek() []calendar.Event {
	weekStart := time.Date(2025, 1, 12, 0, 0, 0, 0, time.Local)
	events := make([]calendar.Event, 0, 70)
	for d := range 7 {
		for i := range 10 {
			events = append(events, calendar.Event{
				ID:        fmt.Sprintf("d%d-e%d", d, i),
				Title:     "Slot",
				Date:      weekStart.AddDate(0, 0, d),
				StartTime: calendar.HourLabel(8 + i),
				EndTime:   calendar.HourLabel(9 + i),
				Color:     calendar.Peacock,
			})
		}
	}
	return events
}

func TestHandler_GetEventsCapsEachDay(t *testing.T) {
	deps := calendar.Dependencies{InitialDate: today, InitialView: calendar.WeekView, Clock: &utils.MockClock{FixedNow: today}}
	host := NewHost(event_bus.NewEventBus(), NewEventStore(busyWeek()...), deps, Options{})

	tests := []struct {
		name        string
		limit       int
		wantEvents  int
		wantHidden  int
		wantPerDay  int
		hiddenByDay map[string]int
	}{
		{"busy week under the daily limit", 50, 70, 0, 10, nil},
		{"each day truncated", 8, 56, 14, 8, map[string]int{
			"2025-01-12": 2, "2025-01-13": 2, "2025-01-14": 2, "2025-01-15": 2,
			"2025-01-16": 2, "2025-01-17": 2, "2025-01-18": 2,
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layout := DefaultLayout()
			layout.MaxVisibleEvents = tt.limit
			h := NewHandler(host, &utils.MockClock{FixedNow: today}, layout)

			rec := call(h.GetEvents, http.MethodGet, "/api/calendar/events", "", nil)

			require.Equal(t, http.StatusOK, rec.Code)
			body := decodeBody[EventsDTO](t, rec)
			assert.Len(t, body.Events, tt.wantEvents)
			assert.Equal(t, tt.wantHidden, body.Hidden)
			assert.Equal(t, tt.hiddenByDay, body.HiddenByDay)

			perDay := make(map[string]int)
			for _, e := range body.Events {
				require.NotNil(t, e.Position)
				perDay[e.Date]++
			}
			assert.Len(t, perDay, 7)
			assert.Equal(t, tt.wantPerDay, perDay["2025-01-18"])
		})
	}
}

func TestHandler_GetEventsMonthIsNotCapped(t *testing.T) {
	deps := calendar.Dependencies{InitialDate: today, InitialView: calendar.MonthView, Clock: &utils.MockClock{FixedNow: today}}
	host := NewHost(event_bus.NewEventBus(), NewEventStore(busyWeek()...), deps, Options{})
	layout := DefaultLayout()
	layout.MaxVisibleEvents = 8
	h := NewHandler(host, &utils.MockClock{FixedNow: today}, layout)

	body := decodeBody[EventsDTO](t, call(h.GetEvents, http.MethodGet, "/api/calendar/events", "", nil))

	assert.Len(t, body.Events, 70)
	assert.Zero(t, body.Hidden)
	assert.Nil(t, body.HiddenByDay)
}
