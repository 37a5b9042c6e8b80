package storage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pirat-dev/habitloop-reminder-scheduling/internal/infra/storage"
	"github.com/pirat-dev/habitloop-reminder-scheduling/internal/testutil"
)

func setupKVTest(t *testing.T) (storage.KV, func()) {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	testDB := testutil.SetupTestDB(t)
	kv := storage.NewKVStore(testDB.DB)

	return kv, func() {
		testDB.CleanTable(t)
		testDB.TeardownTestDB(t)
	}
}

func TestKVStoreSetGet(t *testing.T) {
	kv, cleanup := setupKVTest(t)
	defer cleanup()

	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "notification_h1", `["id-1"]`))

	value, err := kv.Get(ctx, "notification_h1")

	require.NoError(t, err)
	assert.Equal(t, `["id-1"]`, value)
}

func TestKVStoreSetOverwrites(t *testing.T) {
	kv, cleanup := setupKVTest(t)
	defer cleanup()

	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "notification_h1", `["id-1"]`))
	require.NoError(t, kv.Set(ctx, "notification_h1", `["id-2"]`))

	value, err := kv.Get(ctx, "notification_h1")

	require.NoError(t, err)
	assert.Equal(t, `["id-2"]`, value)
}

func TestKVStoreGetMissing(t *testing.T) {
	kv, cleanup := setupKVTest(t)
	defer cleanup()

	_, err := kv.Get(context.Background(), "notification_missing")

	assert.ErrorIs(t, err, storage.ErrKeyNotFound)
}

func TestKVStoreRemove(t *testing.T) {
	kv, cleanup := setupKVTest(t)
	defer cleanup()

	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "notification_h1", `["id-1"]`))
	require.NoError(t, kv.Remove(ctx, "notification_h1"))

	_, err := kv.Get(ctx, "notification_h1")
	assert.ErrorIs(t, err, storage.ErrKeyNotFound)

	// Removing again is a no-op.
	assert.NoError(t, kv.Remove(ctx, "notification_h1"))
}

func TestKVStoreMultiRemove(t *testing.T) {
	kv, cleanup := setupKVTest(t)
	defer cleanup()

	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "notification_h1", `["id-1"]`))
	require.NoError(t, kv.Set(ctx, "notification_h2", `["id-2"]`))
	require.NoError(t, kv.Set(ctx, "habits", "[]"))

	require.NoError(t, kv.MultiRemove(ctx, []string{"notification_h1", "notification_h2"}))

	_, err := kv.Get(ctx, "notification_h1")
	assert.ErrorIs(t, err, storage.ErrKeyNotFound)

	_, err = kv.Get(ctx, "habits")
	assert.NoError(t, err)
}

func TestKVStoreKeysByPrefix(t *testing.T) {
	kv, cleanup := setupKVTest(t)
	defer cleanup()

	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "notification_h1", `["id-1"]`))
	require.NoError(t, kv.Set(ctx, "notification_h2", `["id-2"]`))
	require.NoError(t, kv.Set(ctx, "habits", "[]"))

	keys, err := kv.Keys(ctx, "notification_")

	require.NoError(t, err)
	assert.Equal(t, []string{"notification_h1", "notification_h2"}, keys)
}

func TestKVStoreKeysEscapesLikeMetacharacters(t *testing.T) {
	kv, cleanup := setupKVTest(t)
	defer cleanup()

	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "notification_h1", `["id-1"]`))
	require.NoError(t, kv.Set(ctx, "notificationXh2", `["id-2"]`))

	// The underscore in the prefix must match literally, not as a wildcard.
	keys, err := kv.Keys(ctx, "notification_")

	require.NoError(t, err)
	assert.Equal(t, []string{"notification_h1"}, keys)
}
