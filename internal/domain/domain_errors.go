package domain

import "errors"

var (
	ErrEmptyHabitID    = errors.New("habit ID cannot be empty")
	ErrEmptyHabitTitle = errors.New("habit title cannot be empty")

	ErrInvalidTimeOfDay = errors.New("invalid time of day: must be HH:MM in 24-hour clock")
	ErrInvalidWeekday   = errors.New("invalid weekday token")

	ErrInvalidSnoozeDuration = errors.New("snooze duration must be positive")
)
