package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	DefaultPrefix    = "cryptship:cache:"
	DefaultRetention = 24 * time.Hour
)

// RedisStore общий кэш для нескольких экземпляров сервера.
// Retention только ограничивает рост redis, он намного больше любого ttl свежести.
type RedisStore struct {
	client    *redis.Client
	prefix    string
	retention time.Duration
	now       func() time.Time
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client:    client,
		prefix:    DefaultPrefix,
		retention: DefaultRetention,
		now:       time.Now,
	}
}

func (s *RedisStore) WithPrefix(prefix string) *RedisStore {
	s.prefix = prefix
	return s
}

func (s *RedisStore) WithClock(now func() time.Time) *RedisStore {
	s.now = now
	return s
}

func (s *RedisStore) Get(ctx context.Context, key string) (*Entry, error) {
	const op = "cache.RedisStore.Get"

	raw, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var e Entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, fmt.Errorf("%s: decode entry: %w", op, err)
	}
	return &e, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	const op = "cache.RedisStore.Set"

	raw, err := json.Marshal(Entry{Value: value, StoredAt: s.now()})
	if err != nil {
		return fmt.Errorf("%s: encode entry: %w", op, err)
	}
	if err := s.client.Set(ctx, s.prefix+key, raw, s.retention).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
