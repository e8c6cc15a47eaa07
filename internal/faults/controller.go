// Package faults holds the shared fault-injection configuration consulted
// by the request gateway on every API request.
package faults

import (
	"math/rand"
	"sync"

	"github.com/feedlab/snsbox/internal/domain"
)

// Controller owns the process-wide FaultState. Reads and writes copy the
// whole value under the lock, so a reader never observes a torn mix of
// old and new fields. The controller accepts any value it is handed;
// range validation is the HTTP boundary's job.
type Controller struct {
	mu    sync.RWMutex
	state domain.FaultState
}

// NewController returns a controller with all faults off.
func NewController() *Controller {
	return &Controller{}
}

// Current returns a copy of the fault state.
func (c *Controller) Current() domain.FaultState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Update replaces the fault state. Last write wins.
func (c *Controller) Update(state domain.FaultState) {
	c.mu.Lock()
	c.state = state
	c.mu.Unlock()
}

// Sampler draws the random percentile used by the error-injection gate.
// The production sampler wraps math/rand; tests substitute a fixed one.
type Sampler interface {
	// Percent returns a uniform value in [0, 100).
	Percent() int
}

// RandSampler is the default Sampler. The top-level math/rand functions
// are safe for concurrent use.
type RandSampler struct{}

// Percent returns a uniform value in [0, 100).
func (RandSampler) Percent() int {
	return rand.Intn(100)
}

// FixedSampler always returns the same value, making injection outcomes
// deterministic in tests.
type FixedSampler int

// Percent returns the fixed value.
func (f FixedSampler) Percent() int {
	return int(f)
}
