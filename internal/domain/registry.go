package domain

import "context"

// NotificationRegistry persists which delivery identifiers a habit currently
// owns, so an edit or deletion can cancel them before re-arming. Identifiers
// are opaque strings issued by the delivery port. The value is a list to
// leave room for one-reminder-per-weekday scheduling, though the current
// scheduler only ever stores the single nearest occurrence.
type NotificationRegistry interface {
	// Get returns the identifiers registered for the habit. A missing or
	// undecodable entry yields an empty list, not an error.
	Get(ctx context.Context, habitID HabitID) ([]string, error)
	Set(ctx context.Context, habitID HabitID, identifiers []string) error
	Remove(ctx context.Context, habitID HabitID) error
	// AllKeys lists the storage keys of every registry entry.
	AllKeys(ctx context.Context) ([]string, error)
	// Clear removes every registry entry.
	Clear(ctx context.Context) error
}
