package app

// ScheduleReminderInput carries the habit fields the scheduler needs,
// exactly as the client holds them. TimeOfDay is the raw "HH:MM" string; it
// is validated here, not at the transport edge, so every caller gets the
// same failure mode.
type ScheduleReminderInput struct {
	HabitID         string
	Title           string
	Description     string
	Frequency       []string
	ReminderEnabled bool
	TimeOfDay       string
	// IsNewHabit marks a habit created in this interaction; its first
	// occurrence gets the anti-burst deferral.
	IsNewHabit bool
}

type CancelHabitReminderInput struct {
	HabitID string
}

type ScheduleSnoozeInput struct {
	HabitID string
	Title   string
	Minutes int
}

type StreakNotificationInput struct {
	HabitID     string
	Title       string
	StreakCount int
	IsNewHabit  bool
}
