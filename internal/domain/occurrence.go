package domain

import (
	"time"
)

const (
	// SameDayGuard pushes a same-day occurrence to next week when its clock
	// time is under 15 minutes away (or already past), so editing a habit
	// never fires a reminder on the spot.
	SameDayGuard = 15 * time.Minute

	// NewHabitDeferThreshold is the window inside which a freshly created
	// habit's first reminder gets deferred by NewHabitDefer instead of
	// firing right after creation.
	NewHabitDeferThreshold = 5 * time.Minute
	NewHabitDefer          = 24 * time.Hour

	// StreakNotificationDelay keeps streak congratulations from popping up
	// the moment a habit is completed.
	StreakNotificationDelay = 30 * time.Minute
)

// OccurrenceResolver computes the next calendar instant a habit's reminder
// is due. It is a pure calculation: the current instant is an explicit
// argument, so the same inputs always resolve to the same occurrence.
type OccurrenceResolver struct{}

func NewOccurrenceResolver() *OccurrenceResolver {
	return &OccurrenceResolver{}
}

// NextOccurrence returns the nearest upcoming occurrence of timeOfDay on one
// of the frequency weekdays, strictly after now. The second return value is
// false when the frequency is empty (nothing to schedule, not an error).
//
// A same-day candidate whose clock time is less than SameDayGuard in the
// future, or already in the past, is pushed to the same weekday next week.
func (r *OccurrenceResolver) NextOccurrence(frequency Frequency, timeOfDay TimeOfDay, now time.Time) (time.Time, bool) {
	if frequency.IsEmpty() {
		return time.Time{}, false
	}

	guardMinutes := int(SameDayGuard / time.Minute)
	nowMinutes := now.Hour()*60 + now.Minute()
	today := now.Weekday()

	earliest := 8
	for _, day := range frequency.Days() {
		daysUntil := (int(day) - int(today) + 7) % 7

		if daysUntil == 0 && timeOfDay.MinutesOfDay()-nowMinutes < guardMinutes {
			daysUntil = 7
		}

		if daysUntil < earliest {
			earliest = daysUntil
		}
	}

	target := timeOfDay.On(now.AddDate(0, 0, earliest))

	// Safety net against clock skew and DST edges.
	if !target.After(now) {
		target = target.AddDate(0, 0, 1)
	}

	return target, true
}

// AdjustForNewHabit defers a just-created habit's first occurrence by a full
// day when it would fire within NewHabitDeferThreshold of now. Without this a
// habit created with "right now" as its reminder time pops a notification the
// moment it is saved.
func AdjustForNewHabit(fireAt, now time.Time, isNewHabit bool) time.Time {
	if isNewHabit && fireAt.Sub(now) < NewHabitDeferThreshold {
		return fireAt.Add(NewHabitDefer)
	}

	return fireAt
}
