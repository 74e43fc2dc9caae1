package stats

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"time"

	"github.com/dailyplanner/planner/pkg/calendar"
	log "github.com/sirupsen/logrus"
)

type StatsRenderer interface {
	RenderStats(stats StatsSummary) (string, error)
}

type CsvStatsRendererImpl struct {
}

func NewCsvStatsRenderer() *CsvStatsRendererImpl {
	return &CsvStatsRendererImpl{}
}

// RenderStats writes one row per day and a closing total row. Columns are
// the colors in use followed by the day total.
func (t *CsvStatsRendererImpl) RenderStats(stats StatsSummary) (string, error) {
	colors := make([]calendar.Color, 0, len(stats.Colors))
	header := make([]string, 0, len(stats.Colors)+2)
	header = append(header, "")
	for _, c := range stats.Colors {
		colors = append(colors, c.Color)
		header = append(header, string(c.Color))
	}
	header = append(header, "SUM")

	data := make([][]string, 0, len(stats.Days)+2)
	data = append(data, header)
	for _, daily := range stats.Days {
		data = append(data, rowFor(daily.Date.Format(time.DateOnly), daily.Colors, colors, daily.TotalTime))
	}
	data = append(data, rowFor("Total", stats.Colors, colors, stats.TotalTime))

	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	for _, row := range data {
		err := writer.Write(row)
		if err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}

	return b.String(), nil
}

func rowFor(label string, stats []ColorStats, colors []calendar.Color, total time.Duration) []string {
	byColor := make(map[calendar.Color]time.Duration, len(stats))
	for _, s := range stats {
		byColor[s.Color] = s.Duration
	}
	row := make([]string, 0, len(colors)+2)
	row = append(row, label)
	for _, c := range colors {
		row = append(row, durationToString(byColor[c]))
	}
	return append(row, durationToString(total))
}

func durationToString(duration time.Duration) string {
	hours := strconv.Itoa(int(duration.Hours()))
	if len(hours) == 1 {
		hours = "0" + hours
	}
	minutes := strconv.Itoa(int(duration.Minutes()) % 60)
	if len(minutes) == 1 {
		minutes = "0" + minutes
	}
	seconds := strconv.Itoa(int(duration.Seconds()) % 60)
	if len(seconds) == 1 {
		seconds = "0" + seconds
	}
	return hours + ":" + minutes + ":" + seconds
}
