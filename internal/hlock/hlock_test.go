package hlock

import (
	"sync"
	"testing"
)

func TestLockSerializesSameHousehold(t *testing.T) {
	r := NewRegistry()

	const iterations = 1000
	counter := 0
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				unlock := r.Lock(42)
				counter++
				unlock()
			}
		}()
	}
	wg.Wait()

	if counter != 8*iterations {
		t.Errorf("counter = %d, want %d", counter, 8*iterations)
	}
}

func TestLockIndependentHouseholds(t *testing.T) {
	r := NewRegistry()

	// Holding household 1's lock must not block household 2.
	unlock1 := r.Lock(1)
	defer unlock1()

	done := make(chan struct{})
	go func() {
		unlock2 := r.Lock(2)
		unlock2()
		close(done)
	}()

	<-done
}

func TestLockReusesSameMutex(t *testing.T) {
	r := NewRegistry()

	unlock := r.Lock(7)
	unlock()

	r.mu.Lock()
	if len(r.locks) != 1 {
		t.Errorf("registry size = %d, want 1", len(r.locks))
	}
	r.mu.Unlock()

	unlock = r.Lock(7)
	unlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.locks) != 1 {
		t.Errorf("registry size after reuse = %d, want 1", len(r.locks))
	}
}
