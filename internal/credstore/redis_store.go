package credstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

type RedisStore struct {
	client redis.Cmdable
	prefix string
}

// NewRedisStore creates a Redis-backed credential store. Expiry is delegated
// to Redis key TTLs.
func NewRedisStore(client redis.Cmdable, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "cred:"
	}
	return &RedisStore{
		client: client,
		prefix: prefix,
	}
}

func (r *RedisStore) key(name string, opts Options) string {
	return r.prefix + opts.Path + ":" + name
}

func (r *RedisStore) Get(ctx context.Context, name string, opts Options) (string, error) {
	opts = opts.normalize()
	if err := validate(name, opts, false); err != nil {
		return "", err
	}

	val, err := r.client.Get(ctx, r.key(name, opts)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil // not found
	}
	if err != nil {
		return "", fmt.Errorf("credstore: redis get %s: %w", name, err)
	}

	return val, nil
}

func (r *RedisStore) Set(ctx context.Context, name, value string, opts Options) error {
	opts = opts.normalize()
	if err := validate(name, opts, true); err != nil {
		return err
	}

	if err := r.client.Set(ctx, r.key(name, opts), value, opts.Expires).Err(); err != nil {
		return fmt.Errorf("credstore: redis set %s: %w", name, err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, name string, opts Options) error {
	opts = opts.normalize()
	if err := validate(name, opts, false); err != nil {
		return err
	}

	if err := r.client.Del(ctx, r.key(name, opts)).Err(); err != nil {
		return fmt.Errorf("credstore: redis del %s: %w", name, err)
	}
	return nil
}
