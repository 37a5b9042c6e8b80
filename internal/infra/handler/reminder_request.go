package handler

// ScheduleReminderRequest mirrors the habit record the tracking client
// holds. Weekday tokens and the reminder time string are validated in the
// application layer, where the scheduling rules live.
type ScheduleReminderRequest struct {
	Title           string   `json:"title" binding:"required"`
	Description     string   `json:"description"`
	Frequency       []string `json:"frequency"`
	ReminderEnabled bool     `json:"reminder_enabled"`
	ReminderTime    string   `json:"reminder_time"`
	IsNewHabit      bool     `json:"is_new_habit"`
}

type SnoozeReminderRequest struct {
	Title   string `json:"title" binding:"required"`
	Minutes int    `json:"minutes" binding:"required"`
}

type StreakNotificationRequest struct {
	Title       string `json:"title" binding:"required"`
	StreakCount int    `json:"streak_count" binding:"required"`
	IsNewHabit  bool   `json:"is_new_habit"`
}
