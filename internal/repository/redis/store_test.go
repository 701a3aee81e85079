package redis

import (
	"context"
	"os"
	"testing"

	"wordtrainer/internal/domain"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscapeGlob(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: "wordtrainer:session/v1/", expected: "wordtrainer:session/v1/"},
		{input: "a*b", expected: "a\\*b"},
		{input: "q?[x]", expected: "q\\?\\[x\\]"},
		{input: "back\\slash", expected: "back\\\\slash"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, escapeGlob(tt.input))
	}
}

// Runs against a live server when REDIS_URL is set.
func TestStore_Live(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}

	ctx := context.Background()
	opt, err := goredis.ParseURL(url)
	require.NoError(t, err)
	client := goredis.NewClient(opt)
	defer client.Close()

	store := NewStore(client, "wordtrainer-test:"+t.Name()+":")
	t.Cleanup(func() {
		keys, _ := store.Keys(ctx, "")
		for _, key := range keys {
			store.Delete(ctx, key)
		}
	})

	require.NoError(t, store.Put(ctx, "session/v1/tg:2", []byte("b")))
	require.NoError(t, store.Put(ctx, "session/v1/tg:1", []byte("a")))
	require.NoError(t, store.Put(ctx, "users/v1", []byte("u")))

	value, err := store.Get(ctx, "session/v1/tg:1")
	require.NoError(t, err)
	assert.Equal(t, []byte("a"), value)

	keys, err := store.Keys(ctx, "session/v1/")
	require.NoError(t, err)
	assert.Equal(t, []string{"session/v1/tg:1", "session/v1/tg:2"}, keys)

	require.NoError(t, store.Delete(ctx, "session/v1/tg:1"))
	_, err = store.Get(ctx, "session/v1/tg:1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
