package domain

// Habit is the scheduler's read-only view of a habit owned by the tracking
// client. The reminder time stays a raw string here; it is validated at the
// point of scheduling so a broken value surfaces as a scheduling failure
// rather than a load failure.
type Habit struct {
	id              HabitID
	title           string
	description     string
	frequency       Frequency
	reminderEnabled bool
	reminderTime    string
}

func NewHabit(
	id HabitID,
	title string,
	description string,
	frequency Frequency,
	reminderEnabled bool,
	reminderTime string,
) (Habit, error) {
	if id.IsZero() {
		return Habit{}, ErrEmptyHabitID
	}

	if title == "" {
		return Habit{}, ErrEmptyHabitTitle
	}

	return Habit{
		id:              id,
		title:           title,
		description:     description,
		frequency:       frequency,
		reminderEnabled: reminderEnabled,
		reminderTime:    reminderTime,
	}, nil
}

func (h Habit) ID() HabitID {
	return h.id
}

func (h Habit) Title() string {
	return h.title
}

func (h Habit) Description() string {
	return h.description
}

func (h Habit) Frequency() Frequency {
	return h.frequency
}

func (h Habit) ReminderEnabled() bool {
	return h.reminderEnabled
}

func (h Habit) ReminderTime() string {
	return h.reminderTime
}
