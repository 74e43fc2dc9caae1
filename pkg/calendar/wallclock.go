package calendar

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	minutesPerHour = 60
	// lastMinuteOfDay is 23:59 expressed in minutes since midnight.
	lastMinuteOfDay = 24*minutesPerHour - 1
)

// ParseWallClock converts an "HH:mm" string into minutes since midnight.
// Parsing is best effort: a missing or non numeric component counts as zero,
// so "9" is 09:00 and "xx:30" is 00:30.
func ParseWallClock(s string) int {
	hourPart, minutePart, _ := strings.Cut(strings.TrimSpace(s), ":")
	return atoiOrZero(hourPart)*minutesPerHour + atoiOrZero(minutePart)
}

// FormatWallClock renders minutes since midnight as "HH:mm".
func FormatWallClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/minutesPerHour, minutes%minutesPerHour)
}

// HourLabel renders an hour slot as "HH:00".
func HourLabel(hour int) string {
	return fmt.Sprintf("%02d:00", hour)
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
