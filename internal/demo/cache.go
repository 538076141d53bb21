package demo

import (
	"sync"
)

// Process-lifetime memoization of the synthetic dataset. The generator is
// pure, so a duplicate generation under a first-call race would produce an
// identical value; the once-guard only avoids the wasted work.
var (
	cacheOnce sync.Once
	cached    *Dataset
)

// Initialize builds the dataset if it has not been built yet. Idempotent.
func Initialize() {
	cacheOnce.Do(func() {
		cached = Generate()
	})
}

// Cached returns the memoized dataset, or nil before Initialize.
func Cached() *Dataset {
	return cached
}

// Snapshot returns the process-wide dataset, building it on first use.
// Every caller within a process sees the same instance.
func Snapshot() *Dataset {
	Initialize()
	return cached
}
