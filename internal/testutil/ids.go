// Package testutil provides deterministic helpers for tests and the
// scenario harness.
package testutil

import (
	"fmt"
	"sync"
)

// SequentialIDs hands out stable, human-readable identifiers per prefix.
//
// Unlike uuid-based IDs, sequential IDs make golden snapshots readable
// and byte-identical across runs. The same scenario built twice with a
// fresh generator produces the same IDs.
type SequentialIDs struct {
	mu   sync.Mutex
	next map[string]int
}

// NewSequentialIDs creates a generator with all counters at zero.
//
// The first call to Next("thing") returns "thing-1".
func NewSequentialIDs() *SequentialIDs {
	return &SequentialIDs{next: make(map[string]int)}
}

// Next returns the next identifier for the given prefix.
func (g *SequentialIDs) Next(prefix string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next[prefix]++
	return fmt.Sprintf("%s-%d", prefix, g.next[prefix])
}

// Reset resets all counters to zero.
func (g *SequentialIDs) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next = make(map[string]int)
}
