// Package cache хранит последние удачные ответы агрегаторов.
// Хранилище не удаляет записи по ttl: устаревшая запись остаётся last-known-good,
// свежесть решает читатель через Entry.Fresh.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var ErrMiss = errors.New("cache miss")

type Entry struct {
	Value    []byte    `json:"value"`
	StoredAt time.Time `json:"storedAt"`
}

// Age возраст записи относительно now
func (e *Entry) Age(now time.Time) time.Duration {
	return now.Sub(e.StoredAt)
}

func (e *Entry) Fresh(now time.Time, ttl time.Duration) bool {
	return e.Age(now) < ttl
}

type Store interface {
	Get(ctx context.Context, key string) (*Entry, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Load читает типизированное значение вместе с записью, по которой читатель судит о свежести
func Load[T any](ctx context.Context, s Store, key string) (*T, *Entry, error) {
	const op = "cache.Load"

	entry, err := s.Get(ctx, key)
	if err != nil {
		return nil, nil, err
	}

	var v T
	if err := json.Unmarshal(entry.Value, &v); err != nil {
		return nil, nil, fmt.Errorf("%s: decode %q: %w", op, key, err)
	}
	return &v, entry, nil
}

func Save[T any](ctx context.Context, s Store, key string, v *T) error {
	const op = "cache.Save"

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%s: encode %q: %w", op, key, err)
	}
	if err := s.Set(ctx, key, data); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
