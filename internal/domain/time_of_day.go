package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeOfDay is a wall-clock time in the device's local time zone.
type TimeOfDay struct {
	hour   int
	minute int
}

// ParseTimeOfDay parses a "HH:MM" 24-hour clock string. Malformed input is
// an error; callers must not fall back to a default time.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}

	hour, err := parseClockComponent(parts[0])
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}

	minute, err := parseClockComponent(parts[1])
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}

	if hour > 23 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}

	return TimeOfDay{hour: hour, minute: minute}, nil
}

func parseClockComponent(s string) (int, error) {
	if s == "" || len(s) > 2 {
		return 0, ErrInvalidTimeOfDay
	}

	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, ErrInvalidTimeOfDay
		}
	}

	return strconv.Atoi(s)
}

func (t TimeOfDay) Hour() int {
	return t.hour
}

func (t TimeOfDay) Minute() int {
	return t.minute
}

func (t TimeOfDay) MinutesOfDay() int {
	return t.hour*60 + t.minute
}

// On returns the instant at this clock time on the given date, in the
// date's location.
func (t TimeOfDay) On(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), t.hour, t.minute, 0, 0, date.Location())
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.hour, t.minute)
}
