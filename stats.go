package simtemp

import (
	"fmt"
	"sync"
)

// Statistics is a consistent snapshot of the device counters.
type Statistics struct {
	// Updates is the number of generation cycles performed.
	Updates uint64

	// Alerts is the number of threshold crossings detected.
	Alerts uint64

	// Errors is the number of contained sampling-cycle faults.
	Errors uint64

	// LastError is the kind code of the most recent contained fault, or 0.
	LastError int32
}

// String formats the statistics in the device parameter-surface form.
func (s Statistics) String() string {
	return fmt.Sprintf("updates=%d alerts=%d errors=%d last_error=%d",
		s.Updates, s.Alerts, s.Errors, s.LastError)
}

// stats holds the live counters under a fast lock so that producer updates
// and snapshot reads are both bounded O(1) sections.
type stats struct {
	mu sync.Mutex

	updates   uint64
	alerts    uint64
	errors    uint64
	lastError int32
}

func (s *stats) incUpdate() {
	s.mu.Lock()
	s.updates++
	s.mu.Unlock()
}

func (s *stats) incAlert() {
	s.mu.Lock()
	s.alerts++
	s.mu.Unlock()
}

func (s *stats) recordError(code int32) {
	s.mu.Lock()
	s.errors++
	s.lastError = code
	s.mu.Unlock()
}

// snapshot reads all four fields together.
func (s *stats) snapshot() Statistics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Statistics{
		Updates:   s.updates,
		Alerts:    s.alerts,
		Errors:    s.errors,
		LastError: s.lastError,
	}
}
