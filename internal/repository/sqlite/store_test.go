package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"wordtrainer/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "trainer.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_PutGetOverwrite(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	require.NoError(t, store.Put(ctx, "daily/v1/u1", []byte("first")))
	require.NoError(t, store.Put(ctx, "daily/v1/u1", []byte("second")))

	value, err := store.Get(ctx, "daily/v1/u1")
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), value)
}

func TestStore_GetMissing(t *testing.T) {
	_, err := openTestStore(t).Get(context.Background(), "nothing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	require.NoError(t, store.Put(ctx, "session/v1/tg:1", []byte("x")))
	require.NoError(t, store.Delete(ctx, "session/v1/tg:1"))
	require.NoError(t, store.Delete(ctx, "session/v1/tg:1"))

	_, err := store.Get(ctx, "session/v1/tg:1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_Keys(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	for _, key := range []string{"session/v1/tg:2", "session/v1/tg:1", "sessionx", "users/v1"} {
		require.NoError(t, store.Put(ctx, key, []byte("x")))
	}

	keys, err := store.Keys(ctx, "session/v1/")
	require.NoError(t, err)
	assert.Equal(t, []string{"session/v1/tg:1", "session/v1/tg:2"}, keys)
}

func TestStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "trainer.db")

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Put(ctx, "users/v1", []byte("payload")))
	require.NoError(t, store.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	value, err := reopened.Get(ctx, "users/v1")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), value)
}
