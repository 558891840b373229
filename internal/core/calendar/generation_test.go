package calendar

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGeneration_OnlyLatestIsCurrent(t *testing.T) {
	var g Generation
	assert.False(t, g.IsCurrent(0))

	first := g.Next()
	assert.True(t, g.IsCurrent(first))

	second := g.Next()
	assert.Greater(t, second, first)
	assert.False(t, g.IsCurrent(first))
	assert.True(t, g.IsCurrent(second))
	assert.Equal(t, second, g.Current())
}

func TestGeneration_ConcurrentTokensAreUnique(t *testing.T) {
	var (
		g    Generation
		mu   sync.Mutex
		seen = make(map[uint64]struct{})
		wg   sync.WaitGroup
	)
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tok := g.Next()
			mu.Lock()
			seen[tok] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, seen, 64)
	assert.Equal(t, uint64(64), g.Current())
}
