package habits

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pirat-dev/habitloop-reminder-scheduling/internal/domain"
	"github.com/pirat-dev/habitloop-reminder-scheduling/internal/infra/storage"
)

// StorageKey matches the AsyncStorage key the mobile client writes the full
// habit list under.
const StorageKey = "habits"

// habitJSON mirrors the client's persisted habit shape. Only the fields the
// scheduler needs are decoded.
type habitJSON struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Frequency       []string `json:"frequency"`
	ReminderEnabled bool     `json:"reminderEnabled"`
	ReminderTime    string   `json:"reminderTime"`
}

// Store reads the habit list the tracking client persists. The scheduler
// never writes habits; it only enumerates them when rebuilding reminders.
type Store struct {
	kv storage.KV
}

func NewStore(kv storage.KV) *Store {
	return &Store{
		kv: kv,
	}
}

// All returns every decodable habit. Individually broken records are logged
// and skipped so one corrupt habit does not block rescheduling the rest.
func (s *Store) All(ctx context.Context) ([]domain.Habit, error) {
	value, err := s.kv.Get(ctx, StorageKey)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return nil, nil
		}

		return nil, fmt.Errorf("read habits: %w", err)
	}

	var records []habitJSON
	if err := json.Unmarshal([]byte(value), &records); err != nil {
		return nil, fmt.Errorf("decode habits: %w", err)
	}

	result := make([]domain.Habit, 0, len(records))

	for _, record := range records {
		habit, err := toEntity(record)
		if err != nil {
			slog.Warn("skipping undecodable habit record",
				"habit_id", record.ID,
				"error", err,
			)

			continue
		}

		result = append(result, habit)
	}

	return result, nil
}

func toEntity(record habitJSON) (domain.Habit, error) {
	id, err := domain.HabitIDFromString(record.ID)
	if err != nil {
		return domain.Habit{}, err
	}

	frequency, err := domain.NewFrequency(record.Frequency)
	if err != nil {
		return domain.Habit{}, err
	}

	return domain.NewHabit(id, record.Title, record.Description, frequency, record.ReminderEnabled, record.ReminderTime)
}
