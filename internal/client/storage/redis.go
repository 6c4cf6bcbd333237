package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces the hash and the change channel.
const DefaultRedisPrefix = "waitlistadmin"

// RedisRepository keeps all keys in one hash and publishes on a channel
// after every mutation so RedisWatcher subscribers can react.
type RedisRepository struct {
	rdb     redis.UniversalClient
	hash    string
	channel string
}

func NewRedisRepository(rdb redis.UniversalClient, prefix string) *RedisRepository {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisRepository{rdb: rdb, hash: prefix + ":credentials", channel: changeChannel(prefix)}
}

func changeChannel(prefix string) string {
	return prefix + ":changed"
}

func (r *RedisRepository) publish(ctx context.Context, pipe redis.Pipeliner) {
	pipe.Publish(ctx, r.channel, "1")
}

func (r *RedisRepository) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := r.rdb.HGet(ctx, r.hash, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get kv[%s]: %w", key, err)
	}
	return v, nil
}

func (r *RedisRepository) Set(ctx context.Context, key string, value []byte) error {
	return r.SetMany(ctx, map[string][]byte{key: value})
}

func (r *RedisRepository) SetMany(ctx context.Context, values map[string][]byte) error {
	if len(values) == 0 {
		return nil
	}
	fields := make(map[string]any, len(values))
	for k, v := range values {
		fields[k] = v
	}
	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, r.hash, fields)
		r.publish(ctx, pipe)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to set kv batch: %w", err)
	}
	return nil
}

func (r *RedisRepository) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HDel(ctx, r.hash, keys...)
		r.publish(ctx, pipe)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete kv: %w", err)
	}
	return nil
}

func (r *RedisRepository) Clear(ctx context.Context) error {
	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, r.hash)
		r.publish(ctx, pipe)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to clear kv: %w", err)
	}
	return nil
}

func (r *RedisRepository) List(ctx context.Context) (map[string][]byte, error) {
	all, err := r.rdb.HGetAll(ctx, r.hash).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list kv: %w", err)
	}
	result := make(map[string][]byte, len(all))
	for k, v := range all {
		result[k] = []byte(v)
	}
	return result, nil
}
