package demo

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/dailyplanner/planner/pkg/calendar"
)

// Genre is a sample event kind. Its Type is stored under the "type"
// metadata key and backs the genre filters.
type Genre struct {
	Title string
	Type  string
}

var Genres = []Genre{
	{"Musica Popular Brasileira", "pop"},
	{"Musica Popular Americana", "rock"},
	{"Musica Popular Europeia", "jazz"},
	{"Musica Popular Africana", "hip-hop"},
	{"Musica Popular Asiática", "classical"},
	{"Musica Popular Australiana", "electronic"},
	{"Musica Popular Chilena", "acoustic"},
	{"Musica Popular Espanhola", "latin"},
	{"Musica Popular Francesa", "r&b"},
	{"Musica Popular Germanica", "pop"},
	{"Musica Popular Italiana", "rock"},
	{"Musica Popular Japonesa", "jazz"},
}

// GenreFilters are the sidebar filters of the demo, one per genre type.
func GenreFilters() []calendar.Filter {
	specs := []struct{ id, label string }{
		{"pop", "Pop"},
		{"rock", "Rock"},
		{"jazz", "Jazz"},
		{"electronic", "Electronic"},
		{"r&b", "R&B"},
		{"latin", "Latin"},
		{"hip-hop", "Hip Hop"},
		{"acoustic", "Acoustic"},
		{"classical", "Classical"},
	}
	filters := make([]calendar.Filter, 0, len(specs))
	for _, s := range specs {
		filters = append(filters, calendar.MetadataFilter(s.id, s.label, "type", s.id))
	}
	return filters
}

type GeneratorConfig struct {
	EventsPerDay  int
	MonthsBack    int
	MonthsForward int
	Seed          uint64
}

// Generate produces sample events for every day from MonthsBack months
// before today up to MonthsForward months after it. Events start between
// 03:00 and 20:00, last one to eight hours and end at minute 59, never
// past 23:59. The same seed yields the same events.
func Generate(cfg GeneratorConfig, today time.Time) []calendar.Event {
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))

	y, m, d := today.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, today.Location())
	from := calendar.AddMonths(midnight, -cfg.MonthsBack)
	to := calendar.AddMonths(midnight, cfg.MonthsForward)

	var events []calendar.Event
	id := 0
	for day := from; day.Before(to); day = day.AddDate(0, 0, 1) {
		for range cfg.EventsPerDay {
			startHour := 3 + rng.IntN(18)
			endHour := min(startHour+1+rng.IntN(8), 23)
			genre := Genres[rng.IntN(len(Genres))]
			color := calendar.AllColors[rng.IntN(len(calendar.AllColors))]

			events = append(events, calendar.Event{
				ID:          fmt.Sprintf("event-%d", id),
				Title:       genre.Title,
				Date:        day,
				StartTime:   calendar.HourLabel(startHour),
				EndTime:     fmt.Sprintf("%02d:59", endHour),
				Color:       color,
				Description: fmt.Sprintf("Schedule ID: %d", 1000000+id),
				Metadata:    map[string]string{"type": genre.Type},
			})
			id++
		}
	}
	return events
}
