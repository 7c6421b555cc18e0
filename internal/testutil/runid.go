// Package testutil provides deterministic helpers for tests.
package testutil

import (
	"fmt"
	"sync"
)

// FixedRunIDGenerator generates the same run id every time.
//
// This enables golden snapshot comparison: the same scenario with the same
// FixedRunIDGenerator produces a byte-identical summary.
//
// Thread-safety: FixedRunIDGenerator is stateless and safe for concurrent use.
type FixedRunIDGenerator struct {
	id string
}

// NewFixedRunIDGenerator creates a new fixed run id generator.
// If id is empty, Generate() returns "test-run-default".
func NewFixedRunIDGenerator(id string) *FixedRunIDGenerator {
	if id == "" {
		id = "test-run-default"
	}
	return &FixedRunIDGenerator{id: id}
}

// Generate returns the fixed run id.
func (g *FixedRunIDGenerator) Generate() string {
	return g.id
}

// SequentialRunIDGenerator generates run ids "test-run-0001",
// "test-run-0002", ... and can be reset for test reuse.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type SequentialRunIDGenerator struct {
	mu  sync.Mutex
	seq int
}

// NewSequentialRunIDGenerator creates a generator whose first id is
// "test-run-0001".
func NewSequentialRunIDGenerator() *SequentialRunIDGenerator {
	return &SequentialRunIDGenerator{}
}

// Generate returns the next run id.
func (g *SequentialRunIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq++
	return fmt.Sprintf("test-run-%04d", g.seq)
}

// Reset restarts the sequence. After Reset(), Generate() returns
// "test-run-0001".
func (g *SequentialRunIDGenerator) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq = 0
}
