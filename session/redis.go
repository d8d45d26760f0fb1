package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

var _ Store = (*RedisStore)(nil)

// RedisStore keeps the session record under a single Redis key. It exists
// for shared-host deployments (kiosk terminals, ops bastions) where several
// towerctl invocations must observe the same session.
type RedisStore struct {
	redis  redis.UniversalClient
	prefix string
}

// NewRedisStore creates a [RedisStore] on the given client. prefix
// namespaces the key so several control towers can share one Redis.
func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "ct"
	}
	return &RedisStore{redis: client, prefix: prefix}
}

func (s *RedisStore) key() string {
	return s.prefix + ":session"
}

// Load implements [Store.Load].
func (s *RedisStore) Load(ctx context.Context) (*Record, error) {
	data, err := s.redis.Get(ctx, s.key()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	r, decErr := Decode(data)
	if decErr != nil {
		_ = s.Clear(ctx)
		return nil, errors.Join(ErrNoSession, decErr)
	}

	return r, nil
}

// Save implements [Store.Save]. The record carries no TTL: expiry is the
// backend's call, signalled through a 401, never inferred locally.
func (s *RedisStore) Save(ctx context.Context, r *Record) error {
	data, err := Encode(r)
	if err != nil {
		return err
	}

	if err := s.redis.Set(ctx, s.key(), data, 0).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return nil
}

// Clear implements [Store.Clear].
func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.redis.Del(ctx, s.key()).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}
