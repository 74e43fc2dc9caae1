package config

import (
	"os"
	"strings"
	"time"

	"github.com/dailyplanner/planner/pkg/calendar"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

const DefaultPath = "./config/application.yaml"

type Application struct {
	Addr     string                `koanf:"addr"`
	Frontend Frontend              `koanf:"frontend"`
	Calendar Calendar              `koanf:"calendar"`
	Labels   map[string]string     `koanf:"labels"`
	Filters  []calendar.FilterSpec `koanf:"filters"`
	Demo     Demo                  `koanf:"demo"`
}

type Frontend struct {
	Enabled bool   `koanf:"enabled"`
	Dir     string `koanf:"dir"`
}

type Calendar struct {
	InitialView      string  `koanf:"initialview"`
	WeekStart        string  `koanf:"weekstart"`
	Language         string  `koanf:"language"`
	WeekHourRowPx    float64 `koanf:"weekhourrowpx"`
	DayHourRowPx     float64 `koanf:"dayhourrowpx"`
	MaxVisibleEvents int     `koanf:"maxvisibleevents"`
	MonthCellEvents  int     `koanf:"monthcellevents"`
}

type Demo struct {
	Enabled       bool   `koanf:"enabled"`
	IcsPath       string `koanf:"icspath"`
	EventsPerDay  int    `koanf:"eventsperday"`
	MonthsBack    int    `koanf:"monthsback"`
	MonthsForward int    `koanf:"monthsforward"`
	Seed          uint64 `koanf:"seed"`
	ReadOnly      bool   `koanf:"readonly"`
	LegacyUpdate  bool   `koanf:"legacyupdate"`
}

func Defaults() Application {
	return Application{
		Addr: ":8181",
		Frontend: Frontend{
			Enabled: false,
			Dir:     "frontend",
		},
		Calendar: Calendar{
			InitialView:      string(calendar.MonthView),
			WeekStart:        "sunday",
			Language:         "pt-BR",
			WeekHourRowPx:    calendar.WeekHourRowPx,
			DayHourRowPx:     calendar.DayHourRowPx,
			MaxVisibleEvents: calendar.MaxVisibleEvents,
			MonthCellEvents:  calendar.MonthCellEvents,
		},
		Demo: Demo{
			Enabled:       true,
			EventsPerDay:  10,
			MonthsBack:    3,
			MonthsForward: 3,
			Seed:          1,
		},
	}
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Defaults(), "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: "PLANNER_",
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "PLANNER_")), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	return app, nil
}

// WeekStartDay resolves the configured week start. Anything but a weekday
// name falls back to Sunday.
func (c Calendar) WeekStartDay() time.Weekday {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(strings.TrimSpace(c.WeekStart), d.String()) {
			return d
		}
	}
	return time.Sunday
}
