package utils

import (
	"sync"

	"golang.org/x/exp/constraints"
)

// ConcurrentMap is a key-sharded map with one independent mutex per shard.
// Shard selection is unsigned(key) mod shard count. It backs the parallel
// scorer's relevance accumulator.
type ConcurrentMap[K constraints.Integer, V any] struct {
	shards []*mapShard[K, V]
}

type mapShard[K constraints.Integer, V any] struct {
	mu   sync.Mutex
	data map[K]*V
}

// NewConcurrentMap builds a map with shardCount independent shards. A
// non-positive shardCount is clamped to 1.
func NewConcurrentMap[K constraints.Integer, V any](shardCount int) *ConcurrentMap[K, V] {
	if shardCount <= 0 {
		shardCount = 1
	}
	shards := make([]*mapShard[K, V], shardCount)
	for i := range shards {
		shards[i] = &mapShard[K, V]{data: make(map[K]*V)}
	}
	return &ConcurrentMap[K, V]{shards: shards}
}

func (m *ConcurrentMap[K, V]) shardFor(key K) *mapShard[K, V] {
	idx := uint64(key) % uint64(len(m.shards))
	return m.shards[idx]
}

// MapAccess is a scoped handle holding one shard's lock. The caller must call
// Unlock exactly once when finished with Value; while held, no other Access
// or Erase on the same shard can proceed.
type MapAccess[V any] struct {
	mu    *sync.Mutex
	value *V
}

// Value returns a pointer into the shard's storage, valid until Unlock.
func (a *MapAccess[V]) Value() *V { return a.value }

// Unlock releases the shard's lock.
func (a *MapAccess[V]) Unlock() { a.mu.Unlock() }

// Access locks key's shard and returns a handle to its value, inserting the
// zero value of V if key is absent.
func (m *ConcurrentMap[K, V]) Access(key K) *MapAccess[V] {
	shard := m.shardFor(key)
	shard.mu.Lock()
	v, ok := shard.data[key]
	if !ok {
		v = new(V)
		shard.data[key] = v
	}
	return &MapAccess[V]{mu: &shard.mu, value: v}
}

// Erase removes key if present. Idempotent.
func (m *ConcurrentMap[K, V]) Erase(key K) {
	shard := m.shardFor(key)
	shard.mu.Lock()
	delete(shard.data, key)
	shard.mu.Unlock()
}

// Snapshot locks each shard in turn, copies its contents, and releases
// before advancing. Not atomic across shards — callers must ensure all
// producers have finished first.
func (m *ConcurrentMap[K, V]) Snapshot() map[K]V {
	result := make(map[K]V)
	for _, shard := range m.shards {
		shard.mu.Lock()
		for k, v := range shard.data {
			result[k] = *v
		}
		shard.mu.Unlock()
	}
	return result
}
