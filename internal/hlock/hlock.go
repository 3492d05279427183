// Package hlock serializes mutating operations within a single household.
// Households are independent units of concurrency: operations on different
// household IDs never contend, while operations on the same household take
// one mutex around their database transaction. The registry grows one
// mutex per household seen and never shrinks; entries are two words each
// and household IDs are never reused.
package hlock

import "sync"

// Registry hands out one mutex per household ID.
type Registry struct {
	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

// NewRegistry creates an empty lock registry.
func NewRegistry() *Registry {
	return &Registry{locks: make(map[uint]*sync.Mutex)}
}

// Lock acquires the mutex for householdID, creating it on first use, and
// returns the unlock function.
func (r *Registry) Lock(householdID uint) func() {
	r.mu.Lock()
	l, ok := r.locks[householdID]
	if !ok {
		l = &sync.Mutex{}
		r.locks[householdID] = l
	}
	r.mu.Unlock()

	l.Lock()
	return l.Unlock
}
