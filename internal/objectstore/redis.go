package objectstore

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/ashigaru9/pgw-sessiond/internal/apperr"
)

// RedisMap stores objects as strings in a Redis hash: one hash per
// collection, one field per key, with a caller-injected serializer
// and deserializer.
type RedisMap[T any] struct {
	client      *redis.Client
	hash        string
	serialize   Serializer[T]
	deserialize Deserializer[T]
}

// NewRedisMap builds a RedisMap backed by an existing Redis client,
// storing entries in the given hash key.
func NewRedisMap[T any](client *redis.Client, hash string, serialize Serializer[T], deserialize Deserializer[T]) *RedisMap[T] {
	return &RedisMap[T]{
		client:      client,
		hash:        hash,
		serialize:   serialize,
		deserialize: deserialize,
	}
}

func (m *RedisMap[T]) Set(ctx context.Context, key string, object T) (Result, error) {
	value, err := m.serialize(object)
	if err != nil {
		return SerializeFail, err
	}
	if err := m.client.HSet(ctx, m.hash, key, value).Err(); err != nil {
		return ClientError, apperr.NewStoreError("set", key, err)
	}
	return Success, nil
}

func (m *RedisMap[T]) Get(ctx context.Context, key string) (T, Result, error) {
	var zero T
	value, err := m.client.HGet(ctx, m.hash, key).Result()
	if errors.Is(err, redis.Nil) {
		return zero, KeyNotFound, nil
	}
	if err != nil {
		return zero, ClientError, apperr.NewStoreError("get", key, err)
	}
	obj, err := m.deserialize(value)
	if err != nil {
		return zero, DeserializeFail, err
	}
	return obj, Success, nil
}

func (m *RedisMap[T]) GetAll(ctx context.Context) ([]T, []string, Result, error) {
	all, err := m.client.HGetAll(ctx, m.hash).Result()
	if err != nil {
		return nil, nil, ClientError, apperr.NewStoreError("get_all", m.hash, err)
	}
	values := make([]T, 0, len(all))
	var failedKeys []string
	for key, raw := range all {
		obj, err := m.deserialize(raw)
		if err != nil {
			failedKeys = append(failedKeys, key)
			continue
		}
		values = append(values, obj)
	}
	return values, failedKeys, Success, nil
}

func (m *RedisMap[T]) Delete(ctx context.Context, key string) (Result, error) {
	if err := m.client.HDel(ctx, m.hash, key).Err(); err != nil {
		return ClientError, apperr.NewStoreError("delete", key, err)
	}
	return Success, nil
}
