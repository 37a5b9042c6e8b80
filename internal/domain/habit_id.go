package domain

import "strings"

// HabitID is the opaque identifier the habit-tracking client assigns to a
// habit. It is treated as a stable string, not parsed further.
type HabitID struct {
	value string
}

func HabitIDFromString(s string) (HabitID, error) {
	if strings.TrimSpace(s) == "" {
		return HabitID{}, ErrEmptyHabitID
	}

	return HabitID{value: s}, nil
}

func (h HabitID) String() string {
	return h.value
}

func (h HabitID) IsZero() bool {
	return h.value == ""
}

func (h HabitID) Equals(other HabitID) bool {
	return h.value == other.value
}
