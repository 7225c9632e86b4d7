// Package sessionstore keeps per-user dashboard state as JSON documents in Redis.
package sessionstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// ErrNotFound is returned for missing or expired entries.
var ErrNotFound = errors.New("session not found or expired")

// maxTxAttempts bounds optimistic-transaction retries in Update.
const maxTxAttempts = 5

// Store is a typed JSON document store with a key prefix and a sliding TTL.
type Store[T any] struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func New[T any](client *redis.Client, prefix string, ttl time.Duration) *Store[T] {
	return &Store[T]{client: client, prefix: prefix, ttl: ttl}
}

func (s *Store[T]) key(id string) string {
	return s.prefix + id
}

// Get loads the document stored under id.
func (s *Store[T]) Get(ctx context.Context, id string) (*T, error) {
	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.key(id), err)
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", s.key(id), err)
	}
	return &v, nil
}

// Put overwrites the document under id.
func (s *Store[T]) Put(ctx context.Context, id string, v *T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", s.key(id), err)
	}
	if err := s.client.Set(ctx, s.key(id), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store %s: %w", s.key(id), err)
	}
	return nil
}

// Update applies fn to the current document and writes the result atomically:
// if another writer touches the key in between, fn is re-run on the fresh value.
// An error from fn aborts without writing.
func (s *Store[T]) Update(ctx context.Context, id string, fn func(*T) error) (*T, error) {
	key := s.key(id)
	var result *T

	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if err == redis.Nil {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		var v T
		if err := json.Unmarshal(data, &v); err != nil {
			return fmt.Errorf("failed to parse %s: %w", key, err)
		}
		if err := fn(&v); err != nil {
			return err
		}
		updated, err := json.Marshal(&v)
		if err != nil {
			return fmt.Errorf("failed to marshal %s: %w", key, err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, updated, s.ttl)
			return nil
		})
		if err == nil {
			result = &v
		}
		return err
	}

	for attempt := 0; attempt < maxTxAttempts; attempt++ {
		err := s.client.Watch(ctx, txf, key)
		if err == redis.TxFailedErr {
			continue
		}
		if err != nil {
			return nil, err
		}
		return result, nil
	}
	return nil, fmt.Errorf("failed to update %s: too much contention", key)
}

// Delete removes the document under id. Missing keys are not an error.
func (s *Store[T]) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete %s: %w", s.key(id), err)
	}
	return nil
}
