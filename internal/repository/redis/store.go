package redis

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"wordtrainer/internal/domain"

	goredis "github.com/redis/go-redis/v9"
)

// DefaultNamespace prefixes every key this store writes
const DefaultNamespace = "wordtrainer:"

// Store implements repository.Store on Redis strings
type Store struct {
	client    *goredis.Client
	namespace string
}

// Connect connects to Redis at redisURI
func Connect(ctx context.Context, redisURI string) (*Store, error) {
	opt, err := goredis.ParseURL(redisURI)
	if err != nil {
		return nil, err
	}

	opt.PoolSize = 10
	opt.MinIdleConns = 2
	opt.MaxRetries = 3
	opt.DialTimeout = 5 * time.Second
	opt.ReadTimeout = 3 * time.Second
	opt.WriteTimeout = 3 * time.Second

	client := goredis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	return NewStore(client, DefaultNamespace), nil
}

// NewStore wraps an existing client
func NewStore(client *goredis.Client, namespace string) *Store {
	return &Store{client: client, namespace: namespace}
}

// Close closes the underlying client
func (s *Store) Close() error {
	return s.client.Close()
}

// Get returns the value stored at key
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.client.Get(ctx, s.namespace+key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Put stores value at key without expiry
func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	return s.client.Set(ctx, s.namespace+key, value, 0).Err()
}

// Delete removes key
func (s *Store) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.namespace+key).Err()
}

// Keys returns keys starting with prefix in sorted order
func (s *Store) Keys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	iter := s.client.Scan(ctx, 0, escapeGlob(s.namespace+prefix)+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, strings.TrimPrefix(iter.Val(), s.namespace))
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	sort.Strings(keys)
	return keys, nil
}

// escapeGlob quotes the characters SCAN MATCH treats as patterns
func escapeGlob(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '\\':
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
