package dependency

import "sync"

// Set is an ordered collection of dependency declarations. A declaration
// is held at most once; membership is by identity, so two equal but distinct
// declarations are both kept.
type Set struct {
	mu    sync.RWMutex
	items []Dependency
}

// NewSet creates an empty Set.
func NewSet() *Set {
	return &Set{}
}

// Add appends d and reports whether it was not already present.
func (s *Set) Add(d Dependency) bool {
	if d == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.items {
		if existing == d {
			return false
		}
	}
	s.items = append(s.items, d)
	return true
}

// All returns the declarations in insertion order.
func (s *Set) All() []Dependency {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Dependency, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of declarations.
func (s *Set) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Find returns the first declaration with the given key.
func (s *Set) Find(key string) (Dependency, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, d := range s.items {
		if d.Key() == key {
			return d, true
		}
	}
	return nil, false
}
