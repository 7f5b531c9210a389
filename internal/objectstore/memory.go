package objectstore

import (
	"context"
	"sync"
)

// MemoryMap is an in-process ObjectMap for running without
// cross-restart persistence. It exercises the same Serializer/
// Deserializer round trip a Redis backend would, so swapping to
// RedisMap is behavior-preserving.
type MemoryMap[T any] struct {
	serialize   Serializer[T]
	deserialize Deserializer[T]

	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryMap builds an empty MemoryMap.
func NewMemoryMap[T any](serialize Serializer[T], deserialize Deserializer[T]) *MemoryMap[T] {
	return &MemoryMap[T]{
		serialize:   serialize,
		deserialize: deserialize,
		values:      make(map[string]string),
	}
}

func (m *MemoryMap[T]) Set(_ context.Context, key string, object T) (Result, error) {
	s, err := m.serialize(object)
	if err != nil {
		return SerializeFail, err
	}
	m.mu.Lock()
	m.values[key] = s
	m.mu.Unlock()
	return Success, nil
}

func (m *MemoryMap[T]) Get(_ context.Context, key string) (T, Result, error) {
	var zero T
	m.mu.RLock()
	s, ok := m.values[key]
	m.mu.RUnlock()
	if !ok {
		return zero, KeyNotFound, nil
	}
	obj, err := m.deserialize(s)
	if err != nil {
		return zero, DeserializeFail, err
	}
	return obj, Success, nil
}

func (m *MemoryMap[T]) GetAll(_ context.Context) ([]T, []string, Result, error) {
	m.mu.RLock()
	snapshot := make(map[string]string, len(m.values))
	for k, v := range m.values {
		snapshot[k] = v
	}
	m.mu.RUnlock()

	values := make([]T, 0, len(snapshot))
	var failedKeys []string
	for k, s := range snapshot {
		obj, err := m.deserialize(s)
		if err != nil {
			failedKeys = append(failedKeys, k)
			continue
		}
		values = append(values, obj)
	}
	return values, failedKeys, Success, nil
}

func (m *MemoryMap[T]) Delete(_ context.Context, key string) (Result, error) {
	m.mu.Lock()
	delete(m.values, key)
	m.mu.Unlock()
	return Success, nil
}
