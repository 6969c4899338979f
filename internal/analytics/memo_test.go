package analytics_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"weightduel/internal/analytics"
)

func TestMemo_CachesLastKey(t *testing.T) {
	var m analytics.Memo[int]
	calls := 0
	compute := func() int {
		calls++
		return calls
	}

	assert.Equal(t, 1, m.Get("a", compute))
	assert.Equal(t, 1, m.Get("a", compute), "same key must hit the cache")
	assert.Equal(t, 1, calls)

	assert.Equal(t, 2, m.Get("b", compute))
	// Only the last key is retained.
	assert.Equal(t, 3, m.Get("a", compute))
}

func TestMemo_Invalidate(t *testing.T) {
	var m analytics.Memo[string]
	calls := 0
	compute := func() string {
		calls++
		return "v"
	}

	m.Get("k", compute)
	m.Invalidate()
	m.Get("k", compute)
	assert.Equal(t, 2, calls)
}

func TestMemo_ConcurrentAccess(t *testing.T) {
	var m analytics.Memo[int]
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				got := m.Get("k", func() int { return 7 })
				assert.Equal(t, 7, got)
			}
		}()
	}
	wg.Wait()
}
