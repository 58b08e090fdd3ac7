package fractal

import "sync"

// Stats aggregates the largest iteration count observed during compute.
//
// The value starts at 1 and only grows. Observe is safe for concurrent use,
// and the final value does not depend on the order in which workers report.
type Stats struct {
	mu      sync.Mutex
	largest uint64
}

// Frozen is a read-only copy of Stats handed to the paint phase.
type Frozen struct {
	LargestIteration uint64
}

func newStats() *Stats {
	return &Stats{largest: 1}
}

// Observe records it if it is strictly greater than the current maximum.
func (s *Stats) Observe(it uint64) {
	s.mu.Lock()
	if it > s.largest {
		s.largest = it
	}
	s.mu.Unlock()
}

// Largest returns the largest iteration count observed so far.
func (s *Stats) Largest() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.largest
}

// Snapshot returns the current value for use by the paint phase.
func (s *Stats) Snapshot() Frozen {
	return Frozen{LargestIteration: s.Largest()}
}

func (s *Stats) reset() {
	s.mu.Lock()
	s.largest = 1
	s.mu.Unlock()
}
