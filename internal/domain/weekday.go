package domain

import (
	"fmt"
	"sort"
	"time"
)

var weekdayTokens = map[string]time.Weekday{
	"Sun": time.Sunday,
	"Mon": time.Monday,
	"Tue": time.Tuesday,
	"Wed": time.Wednesday,
	"Thu": time.Thursday,
	"Fri": time.Friday,
	"Sat": time.Saturday,
}

func ParseWeekday(token string) (time.Weekday, error) {
	day, ok := weekdayTokens[token]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrInvalidWeekday, token)
	}

	return day, nil
}

func WeekdayToken(day time.Weekday) string {
	return day.String()[:3]
}

// Frequency is the set of weekdays a habit recurs on. Insertion order is
// irrelevant and duplicate tokens collapse.
type Frequency struct {
	days map[time.Weekday]struct{}
}

func NewFrequency(tokens []string) (Frequency, error) {
	days := make(map[time.Weekday]struct{}, len(tokens))

	for _, token := range tokens {
		day, err := ParseWeekday(token)
		if err != nil {
			return Frequency{}, err
		}

		days[day] = struct{}{}
	}

	return Frequency{days: days}, nil
}

func (f Frequency) IsEmpty() bool {
	return len(f.days) == 0
}

func (f Frequency) Contains(day time.Weekday) bool {
	_, ok := f.days[day]

	return ok
}

func (f Frequency) Days() []time.Weekday {
	days := make([]time.Weekday, 0, len(f.days))
	for d := range f.days {
		days = append(days, d)
	}

	sort.Slice(days, func(i, j int) bool {
		return days[i] < days[j]
	})

	return days
}

func (f Frequency) Tokens() []string {
	days := f.Days()

	tokens := make([]string, 0, len(days))
	for _, d := range days {
		tokens = append(tokens, WeekdayToken(d))
	}

	return tokens
}
