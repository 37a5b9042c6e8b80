package app

import "time"

type ScheduleStatus string

const (
	StatusScheduled         ScheduleStatus = "scheduled"
	StatusRemindersDisabled ScheduleStatus = "reminders_disabled"
	StatusNoValidDays       ScheduleStatus = "no_valid_days"
)

type ScheduleReminderOutput struct {
	Status         ScheduleStatus
	NotificationID string
	FireAt         time.Time
}

func (o ScheduleReminderOutput) Scheduled() bool {
	return o.Status == StatusScheduled
}

type OneShotOutput struct {
	NotificationID string
	FireAt         time.Time
}

type StreakNotificationOutput struct {
	Scheduled      bool
	NotificationID string
	FireAt         time.Time
}

type RescheduleAllOutput struct {
	Scheduled int32
	Skipped   int32
}
