package app

import (
	"fmt"

	"github.com/dailyplanner/planner/internal/config"
	"github.com/dailyplanner/planner/internal/event_bus"
	"github.com/dailyplanner/planner/internal/utils"
	"github.com/dailyplanner/planner/pkg/calendar"
	"github.com/dailyplanner/planner/pkg/demo"
	"github.com/dailyplanner/planner/pkg/ics"
	"github.com/dailyplanner/planner/pkg/labels"
	log "github.com/sirupsen/logrus"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Clock    utils.Clock
	EventBus *event_bus.EventBus

	Labels        labels.Labels
	LabelOverride map[string]string

	EventStore      *demo.EventStore
	Host            *demo.Host
	CalendarHandler *demo.Handler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(cfg config.Application, clock utils.Clock) (*Dependencies, error) {
	deps := &Dependencies{Clock: clock, LabelOverride: cfg.Labels}
	if deps.Clock == nil {
		deps.Clock = &utils.SystemClock{}
	}

	l, err := labels.Merge(labels.ForLanguage(cfg.Calendar.Language), cfg.Labels)
	if err != nil {
		log.Warnf("label overrides: %v", err)
	}
	deps.Labels = l

	view, err := calendar.ParseView(cfg.Calendar.InitialView)
	if err != nil {
		return nil, fmt.Errorf("invalid calendar.initialview: %w", err)
	}

	events, err := seedEvents(cfg.Demo, deps.Clock)
	if err != nil {
		return nil, err
	}
	deps.EventStore = demo.NewEventStore(events...)
	deps.EventBus = event_bus.NewEventBus()

	deps.Host = demo.NewHost(deps.EventBus, deps.EventStore, calendar.Dependencies{
		InitialView: view,
		WeekStart:   cfg.Calendar.WeekStartDay(),
		Filters:     buildFilters(cfg.Filters),
		Clock:       deps.Clock,
	}, demo.Options{
		ReadOnly:     cfg.Demo.ReadOnly,
		LegacyUpdate: cfg.Demo.LegacyUpdate,
	})

	deps.CalendarHandler = demo.NewHandler(deps.Host, deps.Clock, demo.Layout{
		WeekHourRowPx:    cfg.Calendar.WeekHourRowPx,
		DayHourRowPx:     cfg.Calendar.DayHourRowPx,
		MaxVisibleEvents: cfg.Calendar.MaxVisibleEvents,
		MonthCellEvents:  cfg.Calendar.MonthCellEvents,
	})

	return deps, nil
}

// seedEvents loads the initial collection: the .ics file when one is
// configured, then generated sample events when the demo is enabled.
func seedEvents(cfg config.Demo, clock utils.Clock) ([]calendar.Event, error) {
	var events []calendar.Event
	if cfg.IcsPath != "" {
		imported, err := ics.ImportFile(cfg.IcsPath)
		if err != nil {
			return nil, fmt.Errorf("failed to seed events: %w", err)
		}
		log.Infof("Imported %d events from %s", len(imported), cfg.IcsPath)
		events = append(events, imported...)
	}
	if cfg.Enabled {
		generated := demo.Generate(demo.GeneratorConfig{
			EventsPerDay:  cfg.EventsPerDay,
			MonthsBack:    cfg.MonthsBack,
			MonthsForward: cfg.MonthsForward,
			Seed:          cfg.Seed,
		}, clock.Now())
		log.Infof("Generated %d sample events", len(generated))
		events = append(events, generated...)
	}
	return events, nil
}

// buildFilters returns the configured filters, or the sample genre filters
// when none are configured.
func buildFilters(specs []calendar.FilterSpec) []calendar.Filter {
	if len(specs) == 0 {
		return demo.GenreFilters()
	}
	filters := make([]calendar.Filter, 0, len(specs))
	for _, s := range specs {
		filters = append(filters, s.Build())
	}
	return filters
}
