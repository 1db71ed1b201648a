package resolution

import (
	"fmt"
	"sort"
	"sync"

	"github.com/Masterminds/semver/v3"

	"github.com/buildconf-labs/buildconf/internal/dependency"
)

// ConflictPolicy decides what happens when one module is requested at
// different versions within a graph.
type ConflictPolicy string

const (
	// ConflictLatest selects the highest requested version.
	ConflictLatest ConflictPolicy = "latest"
	// ConflictFail aborts resolution with a VersionConflictError.
	ConflictFail ConflictPolicy = "fail"
)

// ParseConflictPolicy validates a policy name. Empty means latest.
func ParseConflictPolicy(s string) (ConflictPolicy, error) {
	switch ConflictPolicy(s) {
	case "", ConflictLatest:
		return ConflictLatest, nil
	case ConflictFail:
		return ConflictFail, nil
	default:
		return "", fmt.Errorf("unknown conflict policy %q (want %q or %q)", s, ConflictLatest, ConflictFail)
	}
}

// Strategy is the mutable resolution policy of one configuration.
type Strategy struct {
	mu       sync.RWMutex
	conflict ConflictPolicy
	forced   map[string]string // group:name -> exact version
}

func newStrategy(conflict ConflictPolicy) *Strategy {
	return &Strategy{conflict: conflict, forced: make(map[string]string)}
}

// ConflictPolicy returns the current policy.
func (s *Strategy) ConflictPolicy() ConflictPolicy {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.conflict
}

// SetConflictPolicy replaces the policy.
func (s *Strategy) SetConflictPolicy(p ConflictPolicy) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conflict = p
}

// FailOnVersionConflict switches the policy to ConflictFail.
func (s *Strategy) FailOnVersionConflict() *Strategy {
	s.SetConflictPolicy(ConflictFail)
	return s
}

// Force pins modules to exact versions. Each notation must be
// group:name:version with a concrete version.
func (s *Strategy) Force(notations ...string) error {
	pins := make(map[string]string, len(notations))
	for _, n := range notations {
		d, err := dependency.Parse(n)
		if err != nil {
			return fmt.Errorf("forcing %q: %w", n, err)
		}
		md, ok := d.(*dependency.ModuleDependency)
		if !ok {
			return fmt.Errorf("forcing %q: only module dependencies can be forced", n)
		}
		if _, err := semver.NewVersion(md.Version()); err != nil {
			return fmt.Errorf("forcing %q: version must be exact: %w", n, err)
		}
		pins[md.Key()] = md.Version()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range pins {
		s.forced[k] = v
	}
	return nil
}

// ForcedVersion returns the pinned version of group:name, if any.
func (s *Strategy) ForcedVersion(group, name string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.forced[group+":"+name]
	return v, ok
}

// ForcedModules returns the pins as sorted group:name:version notations.
func (s *Strategy) ForcedModules() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.forced))
	for k, v := range s.forced {
		out = append(out, k+":"+v)
	}
	sort.Strings(out)
	return out
}

// Factory produces a fresh Strategy for each configuration. The factory is
// shared; its products are not.
type Factory struct {
	conflict ConflictPolicy
}

// NewFactory returns a factory whose strategies start with the given policy.
func NewFactory(conflict ConflictPolicy) *Factory {
	if conflict == "" {
		conflict = ConflictLatest
	}
	return &Factory{conflict: conflict}
}

// NewStrategy returns a new Strategy with the factory defaults.
func (f *Factory) NewStrategy() *Strategy {
	return newStrategy(f.conflict)
}
