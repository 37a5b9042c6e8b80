package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/pirat-dev/habitloop-reminder-scheduling/internal/domain"
	"github.com/pirat-dev/habitloop-reminder-scheduling/internal/infra/notify"
)

type reminderUseCaseImpl struct {
	registry    domain.NotificationRegistry
	delivery    notify.Delivery
	habitSource HabitSource
	resolver    *domain.OccurrenceResolver
	now         func() time.Time

	// locks serializes scheduling per habit. Two concurrent schedule or
	// cancel calls for the same habit must not interleave between the
	// cancel-existing step and the registry write, or a stale identifier
	// stays armed forever.
	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

func NewReminderUseCase(
	registry domain.NotificationRegistry,
	delivery notify.Delivery,
	habitSource HabitSource,
) ReminderUseCase {
	return NewReminderUseCaseWithClock(registry, delivery, habitSource, time.Now)
}

// NewReminderUseCaseWithClock injects the clock; tests pin it to a fixed
// instant so occurrence resolution is deterministic.
func NewReminderUseCaseWithClock(
	registry domain.NotificationRegistry,
	delivery notify.Delivery,
	habitSource HabitSource,
	now func() time.Time,
) ReminderUseCase {
	return &reminderUseCaseImpl{
		registry:    registry,
		delivery:    delivery,
		habitSource: habitSource,
		resolver:    domain.NewOccurrenceResolver(),
		now:         now,
		locks:       make(map[string]*sync.Mutex),
	}
}

func (uc *reminderUseCaseImpl) habitLock(habitID string) *sync.Mutex {
	uc.locksMu.Lock()
	defer uc.locksMu.Unlock()

	lock, ok := uc.locks[habitID]
	if !ok {
		lock = &sync.Mutex{}
		uc.locks[habitID] = lock
	}

	return lock
}

func (uc *reminderUseCaseImpl) ScheduleReminder(ctx context.Context, input ScheduleReminderInput) (ScheduleReminderOutput, error) {
	slog.Debug("scheduling reminder",
		"habit_id", input.HabitID,
		"time_of_day", input.TimeOfDay,
		"is_new", input.IsNewHabit,
	)

	habitID, err := domain.HabitIDFromString(input.HabitID)
	if err != nil {
		return ScheduleReminderOutput{}, NewValidationError("habit_id", err.Error())
	}

	lock := uc.habitLock(habitID.String())
	lock.Lock()
	defer lock.Unlock()

	// Any previously armed reminder for this habit is disarmed first, so a
	// habit never owns more than one pending notification.
	uc.disarm(ctx, habitID)

	if !input.ReminderEnabled {
		slog.Debug("reminders disabled for habit",
			"habit_id", input.HabitID,
		)

		return ScheduleReminderOutput{Status: StatusRemindersDisabled}, nil
	}

	timeOfDay, err := domain.ParseTimeOfDay(input.TimeOfDay)
	if err != nil {
		return ScheduleReminderOutput{}, NewValidationError("time_of_day", err.Error())
	}

	frequency, err := domain.NewFrequency(input.Frequency)
	if err != nil {
		return ScheduleReminderOutput{}, NewValidationError("frequency", err.Error())
	}

	habit, err := domain.NewHabit(
		habitID,
		input.Title,
		input.Description,
		frequency,
		input.ReminderEnabled,
		input.TimeOfDay,
	)
	if err != nil {
		return ScheduleReminderOutput{}, NewValidationError("habit", err.Error())
	}

	now := uc.now()

	fireAt, ok := uc.resolver.NextOccurrence(frequency, timeOfDay, now)
	if !ok {
		slog.Debug("no valid days for habit",
			"habit_id", input.HabitID,
		)

		return ScheduleReminderOutput{Status: StatusNoValidDays}, nil
	}

	fireAt = domain.AdjustForNewHabit(fireAt, now, input.IsNewHabit)

	content := domain.ReminderContent(habit, fireAt.Weekday(), domain.RandomMotivationalMessage())

	identifier, err := uc.delivery.ScheduleOneShot(ctx, content, fireAt)
	if err != nil {
		return ScheduleReminderOutput{}, uc.deliveryError("schedule", habitID, err)
	}

	if err := uc.registry.Set(ctx, habitID, []string{identifier}); err != nil {
		// The notification is armed even if the bookkeeping write failed;
		// the next schedule or cancel for this habit simply cannot find it.
		slog.Error("failed to register notification identifier",
			"error", err,
			"habit_id", input.HabitID,
			"notification_id", identifier,
		)
	}

	slog.Info("reminder scheduled",
		"habit_id", input.HabitID,
		"notification_id", identifier,
		"fire_at", fireAt,
	)

	return ScheduleReminderOutput{
		Status:         StatusScheduled,
		NotificationID: identifier,
		FireAt:         fireAt,
	}, nil
}

func (uc *reminderUseCaseImpl) CancelHabitReminder(ctx context.Context, input CancelHabitReminderInput) error {
	slog.Debug("canceling habit reminder",
		"habit_id", input.HabitID,
	)

	habitID, err := domain.HabitIDFromString(input.HabitID)
	if err != nil {
		return NewValidationError("habit_id", err.Error())
	}

	lock := uc.habitLock(habitID.String())
	lock.Lock()
	defer lock.Unlock()

	uc.cancelRegistered(ctx, habitID)

	if err := uc.registry.Remove(ctx, habitID); err != nil {
		slog.Error("failed to remove registry entry",
			"error", err,
			"habit_id", input.HabitID,
		)

		return fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	return nil
}

// disarm cancels the habit's registered notifications and drops its registry
// entry. Best effort; the caller is about to overwrite or has already given
// up on the entry.
func (uc *reminderUseCaseImpl) disarm(ctx context.Context, habitID domain.HabitID) {
	uc.cancelRegistered(ctx, habitID)

	if err := uc.registry.Remove(ctx, habitID); err != nil {
		slog.Error("failed to remove registry entry",
			"error", err,
			"habit_id", habitID.String(),
		)
	}
}

// cancelRegistered disarms every identifier the registry holds for the habit.
// Lookup and cancel failures are logged, not propagated: an identifier that
// cannot be disarmed must not block scheduling the replacement.
func (uc *reminderUseCaseImpl) cancelRegistered(ctx context.Context, habitID domain.HabitID) {
	identifiers, err := uc.registry.Get(ctx, habitID)
	if err != nil {
		slog.Error("failed to look up registered notifications",
			"error", err,
			"habit_id", habitID.String(),
		)

		return
	}

	for _, identifier := range identifiers {
		if err := uc.delivery.Cancel(ctx, identifier); err != nil {
			slog.Warn("failed to cancel notification",
				"error", err,
				"habit_id", habitID.String(),
				"notification_id", identifier,
			)
		}
	}
}

func (uc *reminderUseCaseImpl) CancelAllReminders(ctx context.Context) error {
	slog.Debug("canceling all reminders")

	if err := uc.delivery.CancelAll(ctx); err != nil {
		slog.Error("failed to cancel all notifications",
			"error", err,
		)

		return fmt.Errorf("%w: %v", ErrDeliveryFailure, err)
	}

	if err := uc.registry.Clear(ctx); err != nil {
		slog.Error("failed to clear notification registry",
			"error", err,
		)

		return fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	slog.Info("all reminders canceled")

	return nil
}

func (uc *reminderUseCaseImpl) ScheduleSnoozeReminder(ctx context.Context, input ScheduleSnoozeInput) (OneShotOutput, error) {
	slog.Debug("scheduling snooze reminder",
		"habit_id", input.HabitID,
		"minutes", input.Minutes,
	)

	habitID, err := domain.HabitIDFromString(input.HabitID)
	if err != nil {
		return OneShotOutput{}, NewValidationError("habit_id", err.Error())
	}

	if input.Minutes <= 0 {
		return OneShotOutput{}, NewValidationError("minutes", domain.ErrInvalidSnoozeDuration.Error())
	}

	habit, err := domain.NewHabit(habitID, input.Title, "", domain.Frequency{}, true, "")
	if err != nil {
		return OneShotOutput{}, NewValidationError("habit", err.Error())
	}

	fireAt := uc.now().Add(time.Duration(input.Minutes) * time.Minute)

	// Snoozes are fire-and-forget: they are not recorded in the registry, so
	// a later reschedule of the habit's regular reminder leaves them alone.
	identifier, err := uc.delivery.ScheduleOneShot(ctx, domain.SnoozeContent(habit), fireAt)
	if err != nil {
		return OneShotOutput{}, uc.deliveryError("snooze", habitID, err)
	}

	slog.Info("snooze reminder scheduled",
		"habit_id", input.HabitID,
		"notification_id", identifier,
		"fire_at", fireAt,
	)

	return OneShotOutput{NotificationID: identifier, FireAt: fireAt}, nil
}

func (uc *reminderUseCaseImpl) ScheduleStreakNotification(ctx context.Context, input StreakNotificationInput) (StreakNotificationOutput, error) {
	slog.Debug("scheduling streak notification",
		"habit_id", input.HabitID,
		"streak", input.StreakCount,
	)

	habitID, err := domain.HabitIDFromString(input.HabitID)
	if err != nil {
		return StreakNotificationOutput{}, NewValidationError("habit_id", err.Error())
	}

	if input.IsNewHabit || input.StreakCount < 3 {
		slog.Debug("streak notification skipped",
			"habit_id", input.HabitID,
			"streak", input.StreakCount,
			"is_new", input.IsNewHabit,
		)

		return StreakNotificationOutput{Scheduled: false}, nil
	}

	habit, err := domain.NewHabit(habitID, input.Title, "", domain.Frequency{}, true, "")
	if err != nil {
		return StreakNotificationOutput{}, NewValidationError("habit", err.Error())
	}

	fireAt := uc.now().Add(domain.StreakNotificationDelay)

	identifier, err := uc.delivery.ScheduleOneShot(ctx, domain.StreakContent(habit, input.StreakCount), fireAt)
	if err != nil {
		return StreakNotificationOutput{}, uc.deliveryError("streak", habitID, err)
	}

	slog.Info("streak notification scheduled",
		"habit_id", input.HabitID,
		"streak", input.StreakCount,
		"notification_id", identifier,
		"fire_at", fireAt,
	)

	return StreakNotificationOutput{
		Scheduled:      true,
		NotificationID: identifier,
		FireAt:         fireAt,
	}, nil
}

func (uc *reminderUseCaseImpl) RescheduleAllReminders(ctx context.Context) (RescheduleAllOutput, error) {
	slog.Debug("rescheduling all reminders")

	if err := uc.CancelAllReminders(ctx); err != nil {
		return RescheduleAllOutput{}, err
	}

	habits, err := uc.habitSource.All(ctx)
	if err != nil {
		slog.Error("failed to load habits for rescheduling",
			"error", err,
		)

		return RescheduleAllOutput{}, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	var out RescheduleAllOutput

	for _, habit := range habits {
		if !habit.ReminderEnabled() || habit.ReminderTime() == "" {
			out.Skipped++

			continue
		}

		result, err := uc.ScheduleReminder(ctx, ScheduleReminderInput{
			HabitID:         habit.ID().String(),
			Title:           habit.Title(),
			Description:     habit.Description(),
			Frequency:       habit.Frequency().Tokens(),
			ReminderEnabled: true,
			TimeOfDay:       habit.ReminderTime(),
			IsNewHabit:      false,
		})
		if err != nil {
			slog.Warn("failed to reschedule habit reminder",
				"error", err,
				"habit_id", habit.ID().String(),
			)

			out.Skipped++

			continue
		}

		if result.Scheduled() {
			out.Scheduled++
		} else {
			out.Skipped++
		}
	}

	slog.Info("reminders rescheduled",
		"scheduled", out.Scheduled,
		"skipped", out.Skipped,
	)

	return out, nil
}

func (uc *reminderUseCaseImpl) deliveryError(operation string, habitID domain.HabitID, err error) error {
	if errors.Is(err, notify.ErrPermissionDenied) {
		slog.Warn("notification permission not granted",
			"operation", operation,
			"habit_id", habitID.String(),
		)

		return fmt.Errorf("%w: %v", ErrPermissionDenied, err)
	}

	slog.Error("failed to arm notification",
		"error", err,
		"operation", operation,
		"habit_id", habitID.String(),
	)

	return fmt.Errorf("%w: %v", ErrDeliveryFailure, err)
}
