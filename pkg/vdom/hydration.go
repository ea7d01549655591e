package vdom

import (
	"fmt"
	"sync"
)

// HIDGenerator generates unique hydration IDs.
type HIDGenerator struct {
	prefix  string
	counter uint32
	mu      sync.Mutex
}

// NewHIDGenerator creates a generator producing "h1", "h2", ...
func NewHIDGenerator() *HIDGenerator {
	return &HIDGenerator{prefix: "h"}
}

// NewPrefixedHIDGenerator creates a generator with a custom prefix. Nodes
// created after render use a different prefix so they never collide with
// server-rendered ids.
func NewPrefixedHIDGenerator(prefix string) *HIDGenerator {
	return &HIDGenerator{prefix: prefix}
}

// Next returns the next hydration ID.
func (g *HIDGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counter++
	return fmt.Sprintf("%s%d", g.prefix, g.counter)
}

// Reset resets the counter to 0.
func (g *HIDGenerator) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counter = 0
}
