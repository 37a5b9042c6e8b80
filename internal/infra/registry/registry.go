package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pirat-dev/habitloop-reminder-scheduling/internal/domain"
	"github.com/pirat-dev/habitloop-reminder-scheduling/internal/infra/storage"
)

// KeyPrefix matches the AsyncStorage key layout of the mobile client, so a
// migrated data set keeps working.
const KeyPrefix = "notification_"

type kvNotificationRegistry struct {
	kv storage.KV
}

// NewNotificationRegistry returns a registry persisted through the KV port.
// There is no in-memory cache; every call round-trips storage, which is fine
// at user-edit frequency.
func NewNotificationRegistry(kv storage.KV) domain.NotificationRegistry {
	return &kvNotificationRegistry{
		kv: kv,
	}
}

func Key(habitID domain.HabitID) string {
	return KeyPrefix + habitID.String()
}

func (r *kvNotificationRegistry) Get(ctx context.Context, habitID domain.HabitID) ([]string, error) {
	value, err := r.kv.Get(ctx, Key(habitID))
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return nil, nil
		}

		return nil, fmt.Errorf("read registry entry: %w", err)
	}

	return decodeIdentifiers(habitID, value), nil
}

// decodeIdentifiers accepts the JSON-array encoding and the legacy
// single-identifier bare string written by early client versions. Anything
// undecodable counts as "no outstanding notifications".
func decodeIdentifiers(habitID domain.HabitID, value string) []string {
	if value == "" {
		return nil
	}

	if !strings.HasPrefix(value, "[") {
		return []string{value}
	}

	var identifiers []string
	if err := json.Unmarshal([]byte(value), &identifiers); err != nil {
		slog.Warn("discarding undecodable registry entry",
			"habit_id", habitID.String(),
			"error", err,
		)

		return nil
	}

	return identifiers
}

func (r *kvNotificationRegistry) Set(ctx context.Context, habitID domain.HabitID, identifiers []string) error {
	encoded, err := json.Marshal(identifiers)
	if err != nil {
		return fmt.Errorf("encode registry entry: %w", err)
	}

	if err := r.kv.Set(ctx, Key(habitID), string(encoded)); err != nil {
		return fmt.Errorf("write registry entry: %w", err)
	}

	return nil
}

func (r *kvNotificationRegistry) Remove(ctx context.Context, habitID domain.HabitID) error {
	if err := r.kv.Remove(ctx, Key(habitID)); err != nil {
		return fmt.Errorf("remove registry entry: %w", err)
	}

	return nil
}

func (r *kvNotificationRegistry) AllKeys(ctx context.Context) ([]string, error) {
	keys, err := r.kv.Keys(ctx, KeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("list registry keys: %w", err)
	}

	return keys, nil
}

func (r *kvNotificationRegistry) Clear(ctx context.Context) error {
	keys, err := r.AllKeys(ctx)
	if err != nil {
		return err
	}

	if len(keys) == 0 {
		return nil
	}

	if err := r.kv.MultiRemove(ctx, keys); err != nil {
		return fmt.Errorf("clear registry: %w", err)
	}

	return nil
}
