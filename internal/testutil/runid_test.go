package testutil

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFixedRunIDGenerator(t *testing.T) {
	gen := NewFixedRunIDGenerator("run-golden")
	assert.Equal(t, "run-golden", gen.Generate())
	assert.Equal(t, "run-golden", gen.Generate())

	assert.Equal(t, "test-run-default", NewFixedRunIDGenerator("").Generate())
}

func TestSequentialRunIDGenerator(t *testing.T) {
	gen := NewSequentialRunIDGenerator()
	assert.Equal(t, "test-run-0001", gen.Generate())
	assert.Equal(t, "test-run-0002", gen.Generate())

	gen.Reset()
	assert.Equal(t, "test-run-0001", gen.Generate())
}

func TestSequentialRunIDGenerator_ConcurrentUnique(t *testing.T) {
	gen := NewSequentialRunIDGenerator()

	const goroutines = 50
	ids := make(chan string, goroutines)
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids <- gen.Generate()
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool)
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
	assert.Len(t, seen, goroutines)
}
