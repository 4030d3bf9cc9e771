package record

import (
	"fmt"
	"sync"
)

// Record maps built package names to their install prefixes. Entries are
// written exactly once, by the worker that completed that package's build,
// and read freely afterwards by later packages' override resolution.
type Record struct {
	mu       sync.RWMutex
	prefixes map[string]string
}

// New returns an empty build record.
func New() *Record {
	return &Record{prefixes: make(map[string]string)}
}

// Insert records the install prefix for a newly built package. Inserting
// the same name twice is an error: each package is built at most once per
// invocation.
func (r *Record) Insert(name, prefix string) error {
	if name == "" {
		return fmt.Errorf("record: package name is required")
	}
	if prefix == "" {
		return fmt.Errorf("record: install prefix is required for %q", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.prefixes[name]; ok {
		return fmt.Errorf("record: %q already recorded at %s", name, existing)
	}
	r.prefixes[name] = prefix
	return nil
}

// Lookup returns the install prefix for a built package.
func (r *Record) Lookup(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	prefix, ok := r.prefixes[name]
	return prefix, ok
}

// Snapshot returns a copy of the current name-to-prefix mapping.
func (r *Record) Snapshot() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]string, len(r.prefixes))
	for k, v := range r.prefixes {
		out[k] = v
	}
	return out
}

// Len returns the number of recorded packages.
func (r *Record) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.prefixes)
}
