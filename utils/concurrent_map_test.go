package utils

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConcurrentMapAccessInsertsZeroValue(t *testing.T) {
	m := NewConcurrentMap[int, float64](4)
	acc := m.Access(7)
	assert.Equal(t, 0.0, *acc.Value())
	*acc.Value() += 2.5
	acc.Unlock()

	snapshot := m.Snapshot()
	assert.Equal(t, 2.5, snapshot[7])
}

func TestConcurrentMapErase(t *testing.T) {
	m := NewConcurrentMap[int, float64](4)
	acc := m.Access(3)
	*acc.Value() = 1.0
	acc.Unlock()

	m.Erase(3)
	m.Erase(3) // idempotent

	snapshot := m.Snapshot()
	_, ok := snapshot[3]
	assert.False(t, ok)
}

func TestConcurrentMapClampsNonPositiveShardCount(t *testing.T) {
	m := NewConcurrentMap[int, float64](0)
	acc := m.Access(-5)
	*acc.Value() = 1.0
	acc.Unlock()
	assert.Len(t, m.Snapshot(), 1)
}

func TestConcurrentMapConcurrentAccessOnSameKeyIsAtomic(t *testing.T) {
	m := NewConcurrentMap[int, float64](8)
	const goroutines = 100
	const incrementsPer = 100

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < incrementsPer; i++ {
				acc := m.Access(42)
				*acc.Value() += 1
				acc.Unlock()
			}
		}()
	}
	wg.Wait()

	snapshot := m.Snapshot()
	assert.Equal(t, float64(goroutines*incrementsPer), snapshot[42])
}

func TestConcurrentMapDistinctShardsProgressIndependently(t *testing.T) {
	m := NewConcurrentMap[int, float64](16)
	var wg sync.WaitGroup
	for key := 0; key < 16; key++ {
		wg.Add(1)
		go func(key int) {
			defer wg.Done()
			acc := m.Access(key)
			*acc.Value() = float64(key)
			acc.Unlock()
		}(key)
	}
	wg.Wait()

	snapshot := m.Snapshot()
	assert.Len(t, snapshot, 16)
	for key := 0; key < 16; key++ {
		assert.Equal(t, float64(key), snapshot[key])
	}
}
