package registry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pirat-dev/habitloop-reminder-scheduling/internal/domain"
	"github.com/pirat-dev/habitloop-reminder-scheduling/internal/infra/registry"
	"github.com/pirat-dev/habitloop-reminder-scheduling/internal/infra/storage"
)

func habitID(t *testing.T, s string) domain.HabitID {
	t.Helper()

	id, err := domain.HabitIDFromString(s)
	require.NoError(t, err)

	return id
}

func TestRegistryRoundTrip(t *testing.T) {
	kv := storage.NewMemoryKV()
	reg := registry.NewNotificationRegistry(kv)
	ctx := context.Background()

	id := habitID(t, "h1")

	require.NoError(t, reg.Set(ctx, id, []string{"n-1", "n-2"}))

	got, err := reg.Get(ctx, id)

	require.NoError(t, err)
	assert.Equal(t, []string{"n-1", "n-2"}, got)
}

func TestRegistryGetMissing(t *testing.T) {
	reg := registry.NewNotificationRegistry(storage.NewMemoryKV())

	got, err := reg.Get(context.Background(), habitID(t, "unknown"))

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRegistryGetLegacyBareString(t *testing.T) {
	kv := storage.NewMemoryKV()
	ctx := context.Background()

	// Early client versions stored a single identifier without JSON encoding.
	require.NoError(t, kv.Set(ctx, registry.Key(habitID(t, "h1")), "legacy-id"))

	reg := registry.NewNotificationRegistry(kv)

	got, err := reg.Get(ctx, habitID(t, "h1"))

	require.NoError(t, err)
	assert.Equal(t, []string{"legacy-id"}, got)
}

func TestRegistryGetMalformedJSON(t *testing.T) {
	kv := storage.NewMemoryKV()
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, registry.Key(habitID(t, "h1")), `["unterminated`))

	reg := registry.NewNotificationRegistry(kv)

	got, err := reg.Get(ctx, habitID(t, "h1"))

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRegistryRemoveIdempotent(t *testing.T) {
	kv := storage.NewMemoryKV()
	reg := registry.NewNotificationRegistry(kv)
	ctx := context.Background()

	id := habitID(t, "h1")

	require.NoError(t, reg.Set(ctx, id, []string{"n-1"}))
	require.NoError(t, reg.Remove(ctx, id))
	require.NoError(t, reg.Remove(ctx, id))

	got, err := reg.Get(ctx, id)

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRegistryAllKeysAndClear(t *testing.T) {
	kv := storage.NewMemoryKV()
	reg := registry.NewNotificationRegistry(kv)
	ctx := context.Background()

	require.NoError(t, reg.Set(ctx, habitID(t, "a"), []string{"n-1"}))
	require.NoError(t, reg.Set(ctx, habitID(t, "b"), []string{"n-2"}))

	// Unrelated keys must survive a registry clear.
	require.NoError(t, kv.Set(ctx, "habits", "[]"))

	keys, err := reg.AllKeys(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"notification_a", "notification_b"}, keys)

	require.NoError(t, reg.Clear(ctx))

	keys, err = reg.AllKeys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)

	value, err := kv.Get(ctx, "habits")
	require.NoError(t, err)
	assert.Equal(t, "[]", value)
}
