package app

import (
	"context"

	"github.com/pirat-dev/habitloop-reminder-scheduling/internal/domain"
)

// ReminderUseCase is the whole surface the habit-tracking client consumes.
type ReminderUseCase interface {
	ScheduleReminder(ctx context.Context, input ScheduleReminderInput) (ScheduleReminderOutput, error)
	CancelHabitReminder(ctx context.Context, input CancelHabitReminderInput) error
	CancelAllReminders(ctx context.Context) error
	ScheduleSnoozeReminder(ctx context.Context, input ScheduleSnoozeInput) (OneShotOutput, error)
	ScheduleStreakNotification(ctx context.Context, input StreakNotificationInput) (StreakNotificationOutput, error)
	RescheduleAllReminders(ctx context.Context) (RescheduleAllOutput, error)
}

// HabitSource lists the habits persisted by the tracking client. Read-only
// from the scheduler's side.
type HabitSource interface {
	All(ctx context.Context) ([]domain.Habit, error)
}
