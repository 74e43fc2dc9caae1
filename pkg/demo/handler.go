package demo

import (
	"encoding/json"
	"errors"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dailyplanner/planner/internal/rest"
	"github.com/dailyplanner/planner/internal/utils"
	"github.com/dailyplanner/planner/pkg/calendar"
	"github.com/dailyplanner/planner/pkg/labels"
	"github.com/dailyplanner/planner/pkg/stats"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type EventDTO struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Date        string            `json:"date"`
	StartTime   string            `json:"startTime"`
	EndTime     string            `json:"endTime"`
	Color       string            `json:"color"`
	Description string            `json:"description,omitempty"`
	Category    string            `json:"category,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

type PlacedEventDTO struct {
	EventDTO
	Position *calendar.Position `json:"position,omitempty"`
	Duration string             `json:"duration"`
}

type FilterDTO struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Active bool   `json:"active"`
}

type StateDTO struct {
	CurrentDate   string        `json:"currentDate"`
	View          string        `json:"view"`
	Title         string        `json:"title"`
	From          string        `json:"from"`
	To            string        `json:"to"`
	WeekDays      []string      `json:"weekDays"`
	SearchQuery   string        `json:"searchQuery"`
	ActiveFilters []string      `json:"activeFilters"`
	Filters       []FilterDTO   `json:"filters"`
	Controlled    bool          `json:"controlled"`
	ReadOnly      bool          `json:"readOnly"`
	Labels        labels.Labels `json:"labels"`
}

type CellDTO struct {
	Date    string     `json:"date"`
	InMonth bool       `json:"inMonth"`
	IsToday bool       `json:"isToday"`
	Events  []EventDTO `json:"events"`
	More    string     `json:"more,omitempty"`
}

type EventsDTO struct {
	View        string           `json:"view"`
	Events      []PlacedEventDTO `json:"events"`
	Hidden      int              `json:"hidden"`
	HiddenByDay map[string]int   `json:"hiddenByDay,omitempty"`
	Grid        [][]CellDTO      `json:"grid"`
	NowOffset   *float64         `json:"nowOffset,omitempty"`
}

type HourGroupDTO struct {
	Hour   int              `json:"hour"`
	Label  string           `json:"label"`
	Events []PlacedEventDTO `json:"events"`
}

type DayDTO struct {
	Date    string         `json:"date"`
	Heading string         `json:"heading"`
	Count   int            `json:"count"`
	Summary string         `json:"summary"`
	Groups  []HourGroupDTO `json:"groups"`
	Empty   string         `json:"empty,omitempty"`
}

type IntentDTO struct {
	Kind      string    `json:"kind"`
	Event     *EventDTO `json:"event,omitempty"`
	EventID   string    `json:"eventId,omitempty"`
	Date      string    `json:"date,omitempty"`
	StartTime string    `json:"startTime,omitempty"`
}

type ColorStatsDTO struct {
	Color    string `json:"color"`
	Events   int    `json:"events"`
	Duration int    `json:"duration"`
}

type DailyStatsDTO struct {
	Date      string          `json:"date"`
	Colors    []ColorStatsDTO `json:"colors"`
	TotalTime int             `json:"totalTime"`
}

type StatsSummaryDTO struct {
	StartDate string          `json:"startDate"`
	EndDate   string          `json:"endDate"`
	Days      []DailyStatsDTO `json:"days"`
	Colors    []ColorStatsDTO `json:"colors"`
	TotalTime int             `json:"totalTime"`
}

type viewRequest struct {
	View string `json:"view"`
}

type dateRequest struct {
	Date string `json:"date"`
}

type searchRequest struct {
	Query string `json:"query"`
}

type filtersRequest struct {
	Active []string `json:"active"`
	All    bool     `json:"all"`
	Clear  bool     `json:"clear"`
}

type slotRequest struct {
	Date string `json:"date"`
	Hour int    `json:"hour"`
}

type dropRequest struct {
	EventID string `json:"eventId"`
	Date    string `json:"date"`
	Hour    *int   `json:"hour,omitempty"`
}

// Layout sizes the grids rendered by the handler.
type Layout struct {
	WeekHourRowPx    float64
	DayHourRowPx     float64
	MaxVisibleEvents int
	MonthCellEvents  int
}

func DefaultLayout() Layout {
	return Layout{
		WeekHourRowPx:    calendar.WeekHourRowPx,
		DayHourRowPx:     calendar.DayHourRowPx,
		MaxVisibleEvents: calendar.MaxVisibleEvents,
		MonthCellEvents:  calendar.MonthCellEvents,
	}
}

// Handler exposes the demo host over JSON. The calendar service is not safe
// for concurrent use, so every request holds mu.
type Handler struct {
	mu            sync.Mutex
	host          *Host
	clock         utils.Clock
	layout        Layout
	statsRenderer stats.StatsRenderer
}

func NewHandler(host *Host, clock utils.Clock, layout Layout) *Handler {
	if clock == nil {
		clock = utils.SystemClock{}
	}
	return &Handler{host: host, clock: clock, layout: layout, statsRenderer: stats.NewCsvStatsRenderer()}
}

func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	log.Debug("Getting calendar state")
	h.mu.Lock()
	defer h.mu.Unlock()
	rest.WriteJSON(w, http.StatusOK, h.state(labels.FromContext(r.Context())))
}

func (h *Handler) GetEvents(w http.ResponseWriter, r *http.Request) {
	log.Debug("Getting visible events")
	h.mu.Lock()
	defer h.mu.Unlock()

	l := labels.FromContext(r.Context())
	svc := h.host.Service()
	view := svc.View()
	now := h.clock.Now()

	pph := h.pixelsPerHour(view)
	resp := EventsDTO{
		View: string(view),
		Grid: gridToDTO(calendar.Grid(svc.Navigator(), svc.FilteredEvents(), now, h.cellLimit(view)), l),
	}

	// Month cells are capped by the grid; week and day columns are capped
	// one day at a time.
	byDay := calendar.BucketByDay(svc.VisibleEvents())
	placed := make([]PlacedEventDTO, 0)
	for _, day := range svc.Navigator().Days() {
		key := day.Format(time.DateOnly)
		visible := byDay[key]
		if view != calendar.MonthView {
			var hidden int
			visible, hidden = calendar.Truncate(visible, h.layout.MaxVisibleEvents)
			if hidden > 0 {
				if resp.HiddenByDay == nil {
					resp.HiddenByDay = make(map[string]int)
				}
				resp.HiddenByDay[key] = hidden
				resp.Hidden += hidden
			}
		}
		for _, e := range visible {
			placed = append(placed, placeEvent(e, pph))
		}
	}
	resp.Events = placed
	if view != calendar.MonthView {
		offset := calendar.NowIndicatorOffset(now, pph)
		resp.NowOffset = &offset
	}
	rest.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) GetDay(w http.ResponseWriter, r *http.Request) {
	date, err := parseDate(r.URL.Query().Get("date"))
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid date", err.Error())
		return
	}
	log.Debugf("Getting events of %s", date.Format(time.DateOnly))
	h.mu.Lock()
	defer h.mu.Unlock()

	l := labels.FromContext(r.Context())
	events := h.host.Service().DayEvents(date)
	groups := make([]HourGroupDTO, 0)
	for _, g := range calendar.GroupByHour(events) {
		placed := make([]PlacedEventDTO, 0, len(g.Events))
		for _, e := range g.Events {
			placed = append(placed, placeEvent(e, h.layout.DayHourRowPx))
		}
		groups = append(groups, HourGroupDTO{Hour: g.Hour, Label: calendar.HourLabel(g.Hour), Events: placed})
	}
	resp := DayDTO{
		Date:    date.Format(time.DateOnly),
		Heading: l.FormatDayHeading(date),
		Count:   len(events),
		Summary: l.FormatViewAll(len(events)),
		Groups:  groups,
	}
	if len(events) == 0 {
		resp.Empty = l.NoEvents
	}
	rest.WriteJSON(w, http.StatusOK, resp)
}

// GetStats sums the scheduled time of the visible range per day and color,
// as JSON or, with format=csv, as a CSV attachment.
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	log.Debug("Getting calendar stats")
	h.mu.Lock()
	svc := h.host.Service()
	summary := stats.Summarize(svc.Navigator().Days(), svc.FilteredEvents())
	h.mu.Unlock()

	if r.URL.Query().Get("format") != "csv" {
		rest.WriteJSON(w, http.StatusOK, statsToDTO(summary))
		return
	}
	csv, err := h.statsRenderer.RenderStats(summary)
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, "Failed to render stats", err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=\"stats.csv\"")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(csv)); err != nil {
		log.Errorf("failed to write stats: %v", err)
	}
}

func (h *Handler) SetView(w http.ResponseWriter, r *http.Request) {
	var req viewRequest
	if !decode(w, r, &req) {
		return
	}
	view, err := calendar.ParseView(req.View)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid view", err.Error())
		return
	}
	h.mutate(w, r, func(s *calendar.Service) { s.SetView(view) })
}

func (h *Handler) SetDate(w http.ResponseWriter, r *http.Request) {
	var req dateRequest
	if !decode(w, r, &req) {
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid date", err.Error())
		return
	}
	h.mutate(w, r, func(s *calendar.Service) { s.SelectDate(date) })
}

func (h *Handler) SetSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if !decode(w, r, &req) {
		return
	}
	h.mutate(w, r, func(s *calendar.Service) { s.SetSearchQuery(req.Query) })
}

func (h *Handler) SetFilters(w http.ResponseWriter, r *http.Request) {
	var req filtersRequest
	if !decode(w, r, &req) {
		return
	}
	h.mutate(w, r, func(s *calendar.Service) {
		switch {
		case req.Clear:
			s.ClearFilters()
		case req.All:
			s.SelectAllFilters()
		default:
			s.SetActiveFilterIDs(req.Active)
		}
	})
}

func (h *Handler) ToggleFilter(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["filterId"]
	h.mutate(w, r, func(s *calendar.Service) { s.ToggleFilter(id) })
}

func (h *Handler) Navigate(w http.ResponseWriter, r *http.Request) {
	direction := mux.Vars(r)["direction"]
	var move func(*calendar.Service)
	switch direction {
	case "previous":
		move = (*calendar.Service).Previous
	case "next":
		move = (*calendar.Service).Next
	case "today":
		move = (*calendar.Service).Today
	default:
		rest.WriteError(w, http.StatusBadRequest, "Invalid direction", direction)
		return
	}
	h.mutate(w, r, move)
}

func (h *Handler) ClickEvent(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["eventId"]
	h.mu.Lock()
	defer h.mu.Unlock()

	svc := h.host.Service()
	e, ok := svc.Event(id)
	if !ok {
		rest.WriteError(w, http.StatusNotFound, "Event not found", id)
		return
	}
	svc.EventClick(e)
	h.writeIntents(w)
}

func (h *Handler) ClickDay(w http.ResponseWriter, r *http.Request) {
	var req dateRequest
	if !decode(w, r, &req) {
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid date", err.Error())
		return
	}
	h.interact(w, func(s *calendar.Service) { s.DayClick(date) })
}

func (h *Handler) ClickSlot(w http.ResponseWriter, r *http.Request) {
	var req slotRequest
	if !decode(w, r, &req) {
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid date", err.Error())
		return
	}
	if req.Hour < 0 || req.Hour > 23 {
		rest.WriteError(w, http.StatusBadRequest, "Invalid hour", "hour must be between 0 and 23")
		return
	}
	h.interact(w, func(s *calendar.Service) { s.TimeSlotClick(date, req.Hour) })
}

func (h *Handler) AddEvent(w http.ResponseWriter, r *http.Request) {
	h.interact(w, (*calendar.Service).AddEvent)
}

func (h *Handler) DropEvent(w http.ResponseWriter, r *http.Request) {
	var req dropRequest
	if !decode(w, r, &req) {
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid date", err.Error())
		return
	}
	target := calendar.DayTarget(date)
	if req.Hour != nil {
		target = calendar.SlotTarget(date, *req.Hour)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.host.Service().Event(req.EventID); !ok {
		rest.WriteError(w, http.StatusNotFound, "Event not found", req.EventID)
		return
	}
	h.host.Service().EventDrop(req.EventID, target)
	h.writeIntents(w)
}

func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["eventId"]
	h.interact(w, func(s *calendar.Service) { s.DeleteEvent(id) })
}

func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating event")
	var dto EventDTO
	if !decode(w, r, &dto) {
		return
	}
	e, err := dtoToEvent(dto)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid event", err.Error())
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	created, err := h.host.CreateEvent(e)
	if err != nil {
		h.writeHostError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, eventToDTO(created))
}

func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["eventId"]
	log.Debugf("Updating event %s", id)
	var dto EventDTO
	if !decode(w, r, &dto) {
		return
	}
	if dto.ID != "" && dto.ID != id {
		rest.WriteError(w, http.StatusBadRequest, "Invalid event id in request body", dto.ID)
		return
	}
	dto.ID = id
	e, err := dtoToEvent(dto)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid event", err.Error())
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	saved, err := h.host.SaveEvent(e)
	if err != nil {
		h.writeHostError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, eventToDTO(saved))
}

// mutate applies a state change and answers with the new state.
func (h *Handler) mutate(w http.ResponseWriter, r *http.Request, change func(*calendar.Service)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	change(h.host.Service())
	rest.WriteJSON(w, http.StatusOK, h.state(labels.FromContext(r.Context())))
}

// interact runs an interaction and answers with the intents it produced.
func (h *Handler) interact(w http.ResponseWriter, action func(*calendar.Service)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	action(h.host.Service())
	h.writeIntents(w)
}

func (h *Handler) writeIntents(w http.ResponseWriter) {
	intents := h.host.Drain()
	dtos := make([]IntentDTO, 0, len(intents))
	for _, i := range intents {
		dtos = append(dtos, intentToDTO(i))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

func (h *Handler) writeHostError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrEventNotFound):
		rest.WriteError(w, http.StatusNotFound, "Event not found", err.Error())
	case errors.Is(err, ErrReadOnly):
		rest.WriteError(w, http.StatusForbidden, "Calendar is read only", "")
	default:
		log.Errorf("host failed: %v", err)
		rest.WriteError(w, http.StatusInternalServerError, "Internal error", err.Error())
	}
}

func (h *Handler) state(l labels.Labels) StateDTO {
	svc := h.host.Service()
	nav := svc.Navigator()
	from, to := nav.VisibleRange()
	active := svc.ActiveFilterIDs()

	filters := make([]FilterDTO, 0)
	for _, f := range svc.Filters() {
		filters = append(filters, FilterDTO{ID: f.ID, Label: f.Label, Active: slices.Contains(active, f.ID)})
	}
	if active == nil {
		active = []string{}
	}
	return StateDTO{
		CurrentDate:   svc.CurrentDate().Format(time.DateOnly),
		View:          string(svc.View()),
		Title:         nav.Title(l),
		From:          from.Format(time.DateOnly),
		To:            to.Format(time.DateOnly),
		WeekDays:      nav.WeekDayLabels(l),
		SearchQuery:   svc.SearchQuery(),
		ActiveFilters: active,
		Filters:       filters,
		Controlled:    svc.Controlled(),
		ReadOnly:      h.host.ReadOnly(),
		Labels:        l,
	}
}

func (h *Handler) pixelsPerHour(view calendar.View) float64 {
	if view == calendar.DayView {
		return h.layout.DayHourRowPx
	}
	return h.layout.WeekHourRowPx
}

func (h *Handler) cellLimit(view calendar.View) int {
	if view == calendar.MonthView {
		return h.layout.MonthCellEvents
	}
	return 0
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", err.Error())
		return false
	}
	return true
}

func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation(time.DateOnly, strings.TrimSpace(s), time.Local)
}

func placeEvent(e calendar.Event, pph float64) PlacedEventDTO {
	pos := calendar.EventPosition(e, pph)
	return PlacedEventDTO{EventDTO: eventToDTO(e), Position: &pos, Duration: calendar.DurationText(e)}
}

func gridToDTO(rows [][]calendar.DayCell, l labels.Labels) [][]CellDTO {
	out := make([][]CellDTO, 0, len(rows))
	for _, row := range rows {
		cells := make([]CellDTO, 0, len(row))
		for _, c := range row {
			events := make([]EventDTO, 0, len(c.Events))
			for _, e := range c.Events {
				events = append(events, eventToDTO(e))
			}
			cell := CellDTO{
				Date:    c.Date.Format(time.DateOnly),
				InMonth: c.InMonth,
				IsToday: c.IsToday,
				Events:  events,
			}
			if c.Hidden > 0 {
				cell.More = l.FormatMore(c.Hidden)
			}
			cells = append(cells, cell)
		}
		out = append(out, cells)
	}
	return out
}

func eventToDTO(e calendar.Event) EventDTO {
	return EventDTO{
		ID:          e.ID,
		Title:       e.Title,
		Date:        e.Date.Format(time.DateOnly),
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
		Color:       string(e.Color),
		Description: e.Description,
		Category:    e.Category,
		Metadata:    e.Metadata,
	}
}

func dtoToEvent(dto EventDTO) (calendar.Event, error) {
	if strings.TrimSpace(dto.Title) == "" {
		return calendar.Event{}, errors.New("title is required")
	}
	date, err := parseDate(dto.Date)
	if err != nil {
		return calendar.Event{}, err
	}
	color := calendar.Blueberry
	if dto.Color != "" {
		if color, err = calendar.ParseColor(dto.Color); err != nil {
			return calendar.Event{}, err
		}
	}
	startTime, endTime := dto.StartTime, dto.EndTime
	if startTime == "" {
		startTime = calendar.DefaultEventTime
	}
	if endTime == "" {
		endTime = calendar.FormatWallClock(min(calendar.ParseWallClock(startTime)+60, 23*60+59))
	}
	return calendar.Event{
		ID:          dto.ID,
		Title:       dto.Title,
		Date:        date,
		StartTime:   startTime,
		EndTime:     endTime,
		Color:       color,
		Description: dto.Description,
		Category:    dto.Category,
		Metadata:    dto.Metadata,
	}, nil
}

func statsToDTO(s stats.StatsSummary) StatsSummaryDTO {
	days := make([]DailyStatsDTO, 0, len(s.Days))
	for _, d := range s.Days {
		days = append(days, DailyStatsDTO{
			Date:      d.Date.Format(time.DateOnly),
			Colors:    colorStatsToDTO(d.Colors),
			TotalTime: int(d.TotalTime.Minutes()),
		})
	}
	return StatsSummaryDTO{
		StartDate: s.StartDate.Format(time.DateOnly),
		EndDate:   s.EndDate.Format(time.DateOnly),
		Days:      days,
		Colors:    colorStatsToDTO(s.Colors),
		TotalTime: int(s.TotalTime.Minutes()),
	}
}

func colorStatsToDTO(colors []stats.ColorStats) []ColorStatsDTO {
	out := make([]ColorStatsDTO, 0, len(colors))
	for _, c := range colors {
		out = append(out, ColorStatsDTO{Color: string(c.Color), Events: c.Events, Duration: int(c.Duration.Minutes())})
	}
	return out
}

func intentToDTO(i Intent) IntentDTO {
	dto := IntentDTO{Kind: string(i.Kind), EventID: i.EventID, StartTime: i.StartTime}
	if i.Event != nil {
		e := eventToDTO(*i.Event)
		dto.Event = &e
	}
	if !i.Date.IsZero() {
		dto.Date = i.Date.Format(time.DateOnly)
	}
	return dto
}
