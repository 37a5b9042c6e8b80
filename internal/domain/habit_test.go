package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pirat-dev/habitloop-reminder-scheduling/internal/domain"
)

func TestHabitIDFromString(t *testing.T) {
	id, err := domain.HabitIDFromString("habit-42")

	require.NoError(t, err)
	assert.Equal(t, "habit-42", id.String())
	assert.False(t, id.IsZero())

	other, err := domain.HabitIDFromString("habit-42")
	require.NoError(t, err)
	assert.True(t, id.Equals(other))
}

func TestHabitIDFromStringError(t *testing.T) {
	for _, input := range []string{"", "   "} {
		_, err := domain.HabitIDFromString(input)

		assert.ErrorIs(t, err, domain.ErrEmptyHabitID)
	}
}

func TestNewHabit(t *testing.T) {
	id, err := domain.HabitIDFromString("h1")
	require.NoError(t, err)

	freq, err := domain.NewFrequency([]string{"Mon", "Wed"})
	require.NoError(t, err)

	habit, err := domain.NewHabit(id, "Morning run", "Around the park", freq, true, "08:00")

	require.NoError(t, err)
	assert.Equal(t, "h1", habit.ID().String())
	assert.Equal(t, "Morning run", habit.Title())
	assert.Equal(t, "Around the park", habit.Description())
	assert.True(t, habit.ReminderEnabled())
	assert.Equal(t, "08:00", habit.ReminderTime())
	assert.Equal(t, []string{"Mon", "Wed"}, habit.Frequency().Tokens())
}

func TestNewHabitError(t *testing.T) {
	id, err := domain.HabitIDFromString("h1")
	require.NoError(t, err)

	tests := []struct {
		name     string
		id       domain.HabitID
		title    string
		expected error
	}{
		{name: "zero habit ID", id: domain.HabitID{}, title: "Read", expected: domain.ErrEmptyHabitID},
		{name: "empty title", id: id, title: "", expected: domain.ErrEmptyHabitTitle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.NewHabit(tt.id, tt.title, "", domain.Frequency{}, true, "08:00")

			assert.ErrorIs(t, err, tt.expected)
		})
	}
}
