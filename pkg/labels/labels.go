package labels

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// Labels holds every user facing string of the calendar plus the data needed
// to format dates for one language.
type Labels struct {
	// Header
	Create string `json:"create"`
	Today  string `json:"today"`
	Month  string `json:"month"`
	Week   string `json:"week"`
	Day    string `json:"day"`
	WeekOf string `json:"weekOf"`

	// Sidebar
	Calendar          string `json:"calendar"`
	SearchPlaceholder string `json:"searchPlaceholder"`
	Filters           string `json:"filters"`
	SelectAll         string `json:"selectAll"`
	ClearAll          string `json:"clearAll"`

	// Grid
	WeekDays   [7]string `json:"weekDays"`
	MoreEvents string    `json:"moreEvents"`

	// Day view
	Events        string `json:"events"`
	ViewAllEvents string `json:"viewAllEvents"` // contains {count}
	NoEvents      string `json:"noEvents"`
	Close         string `json:"close"`

	Locale Locale `json:"locale"`
}

// Locale is the date formatting data of a language. Patterns use the
// placeholders {weekday}, {day}, {dd}, {month} and {year}.
type Locale struct {
	Tag          language.Tag `json:"tag"`
	MonthNames   [12]string   `json:"monthNames"`
	WeekdayNames [7]string    `json:"weekdayNames"`
	MonthYear    string       `json:"monthYear"`
	LongDate     string       `json:"longDate"`
	DayHeading   string       `json:"dayHeading"`
}

var Portuguese = Labels{
	Create: "Criar",
	Today:  "Hoje",
	Month:  "Mês",
	Week:   "Semana",
	Day:    "Dia",
	WeekOf: "Semana de",

	Calendar:          "Agenda",
	SearchPlaceholder: "Buscar eventos...",
	Filters:           "Filtros",
	SelectAll:         "Todos",
	ClearAll:          "Limpar",

	WeekDays:   [7]string{"Dom", "Seg", "Ter", "Qua", "Qui", "Sex", "Sáb"},
	MoreEvents: "mais",

	Events:        "evento(s)",
	ViewAllEvents: "Ver todos os {count} eventos",
	NoEvents:      "Nenhum evento neste dia",
	Close:         "Fechar",

	Locale: Locale{
		Tag: language.BrazilianPortuguese,
		MonthNames: [12]string{
			"janeiro", "fevereiro", "março", "abril", "maio", "junho",
			"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
		},
		WeekdayNames: [7]string{
			"domingo", "segunda-feira", "terça-feira", "quarta-feira",
			"quinta-feira", "sexta-feira", "sábado",
		},
		MonthYear:  "{month} {year}",
		LongDate:   "{day} de {month} de {year}",
		DayHeading: "{weekday}, {dd} de {month}",
	},
}

var English = Labels{
	Create: "Create",
	Today:  "Today",
	Month:  "Month",
	Week:   "Week",
	Day:    "Day",
	WeekOf: "Week of",

	Calendar:          "Calendar",
	SearchPlaceholder: "Search events...",
	Filters:           "Filters",
	SelectAll:         "All",
	ClearAll:          "Clear",

	WeekDays:   [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
	MoreEvents: "more",

	Events:        "event(s)",
	ViewAllEvents: "View all {count} events",
	NoEvents:      "No events on this day",
	Close:         "Close",

	Locale: Locale{
		Tag: language.AmericanEnglish,
		MonthNames: [12]string{
			"January", "February", "March", "April", "May", "June",
			"July", "August", "September", "October", "November", "December",
		},
		WeekdayNames: [7]string{
			"Sunday", "Monday", "Tuesday", "Wednesday",
			"Thursday", "Friday", "Saturday",
		},
		MonthYear:  "{month} {year}",
		LongDate:   "{month} {day}, {year}",
		DayHeading: "{weekday}, {month} {dd}",
	},
}

// Default is the language pack used when nothing else is requested.
var Default = Portuguese

var (
	packs   = []Labels{Portuguese, English}
	matcher = language.NewMatcher([]language.Tag{
		Portuguese.Locale.Tag,
		English.Locale.Tag,
	})
)

// ForLanguage returns the built in pack closest to a BCP 47 code such as
// "pt", "en" or "en-GB". Unknown or malformed codes yield Default.
func ForLanguage(code string) Labels {
	tag, err := language.Parse(code)
	if err != nil {
		return Default
	}
	return match(tag)
}

// FromAcceptLanguage picks a pack from an HTTP Accept-Language header value.
func FromAcceptLanguage(header string) Labels {
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return Default
	}
	return match(tags...)
}

func match(tags ...language.Tag) Labels {
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return Default
	}
	return packs[index]
}

// Merge returns base with overrides applied key by key. Keys are the JSON
// names of the Labels fields; weekDays takes a comma separated list of seven
// names. Unknown keys and a malformed weekDays are reported and the rest
// still apply.
func Merge(base Labels, overrides map[string]string) (Labels, error) {
	merged := base
	fields := merged.stringFields()
	var errs []error
	var unknown []string
	for key, value := range overrides {
		if key == "weekDays" {
			days := strings.Split(value, ",")
			if len(days) != len(merged.WeekDays) {
				errs = append(errs, fmt.Errorf("weekDays override needs 7 names, got %d", len(days)))
				continue
			}
			for i, d := range days {
				merged.WeekDays[i] = strings.TrimSpace(d)
			}
			continue
		}
		field, ok := fields[key]
		if !ok {
			unknown = append(unknown, key)
			continue
		}
		*field = value
	}
	if len(unknown) > 0 {
		slices.Sort(unknown)
		errs = append(errs, fmt.Errorf("unknown label keys: %s", strings.Join(unknown, ", ")))
	}
	return merged, errors.Join(errs...)
}

func (l *Labels) stringFields() map[string]*string {
	return map[string]*string{
		"create":            &l.Create,
		"today":             &l.Today,
		"month":             &l.Month,
		"week":              &l.Week,
		"day":               &l.Day,
		"weekOf":            &l.WeekOf,
		"calendar":          &l.Calendar,
		"searchPlaceholder": &l.SearchPlaceholder,
		"filters":           &l.Filters,
		"selectAll":         &l.SelectAll,
		"clearAll":          &l.ClearAll,
		"moreEvents":        &l.MoreEvents,
		"events":            &l.Events,
		"viewAllEvents":     &l.ViewAllEvents,
		"noEvents":          &l.NoEvents,
		"close":             &l.Close,
	}
}

// MonthName is the localized name of m.
func (l Labels) MonthName(m time.Month) string {
	return l.Locale.MonthNames[m-1]
}

// FormatMonthYear renders a month header, e.g. "January 2025".
func (l Labels) FormatMonthYear(t time.Time) string {
	return l.format(l.Locale.MonthYear, t)
}

// FormatLongDate renders a full date, e.g. "January 5, 2025".
func (l Labels) FormatLongDate(t time.Time) string {
	return l.format(l.Locale.LongDate, t)
}

// FormatDayHeading renders the heading of a day's event list.
func (l Labels) FormatDayHeading(t time.Time) string {
	return l.format(l.Locale.DayHeading, t)
}

// FormatWeekOf renders the week view header, e.g. "Week of 05 January".
func (l Labels) FormatWeekOf(t time.Time) string {
	return fmt.Sprintf("%s %02d %s", l.WeekOf, t.Day(), l.MonthName(t.Month()))
}

// FormatViewAll fills the {count} placeholder of ViewAllEvents.
func (l Labels) FormatViewAll(count int) string {
	return strings.ReplaceAll(l.ViewAllEvents, "{count}", fmt.Sprint(count))
}

// FormatMore renders the month cell overflow, e.g. "+2 more".
func (l Labels) FormatMore(count int) string {
	return fmt.Sprintf("+%d %s", count, l.MoreEvents)
}

func (l Labels) format(pattern string, t time.Time) string {
	r := strings.NewReplacer(
		"{weekday}", l.Locale.WeekdayNames[t.Weekday()],
		"{dd}", fmt.Sprintf("%02d", t.Day()),
		"{day}", fmt.Sprint(t.Day()),
		"{month}", l.MonthName(t.Month()),
		"{year}", fmt.Sprint(t.Year()),
	)
	return r.Replace(pattern)
}
