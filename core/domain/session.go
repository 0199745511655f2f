package domain

import "sync"

// Session owns the registry of declared targets for one build invocation.
// Registration is append-only and happens as a side effect of target
// construction; Reset discards all declarations so independent builds
// (and tests) can share a process.
type Session struct {
	mu      sync.Mutex
	targets []*Target
}

// NewSession creates an empty build session.
func NewSession() *Session {
	return &Session{}
}

// NewTarget declares a target producing the given output paths. The
// recipe may be nil; dependencies are declared with TargetDep and
// PathDep. The target is appended to the session registry before it is
// returned.
func (s *Session) NewTarget(outputs []string, recipe *Recipe, deps ...Dependency) (*Target, error) {
	t, err := newTarget(outputs, recipe, deps, false)
	if err != nil {
		return nil, err
	}
	s.register(t)
	return t, nil
}

// NewPhonyTarget declares an outputless target known only by name. Phony
// targets are always considered stale.
func (s *Session) NewPhonyTarget(name string, recipe *Recipe, deps ...Dependency) (*Target, error) {
	t, err := newTarget([]string{name}, recipe, deps, true)
	if err != nil {
		return nil, err
	}
	s.register(t)
	return t, nil
}

func (s *Session) register(t *Target) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.targets = append(s.targets, t)
}

// Targets returns the declared targets in registration order.
func (s *Session) Targets() []*Target {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Target, len(s.targets))
	copy(out, s.targets)
	return out
}

// Len returns the number of declared targets.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.targets)
}

// First returns the first declared target, or nil for an empty session.
// It is the default build root when no target names are requested.
func (s *Session) First() *Target {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.targets) == 0 {
		return nil
	}
	return s.targets[0]
}

// Find returns the first declared target whose identity contains name,
// or nil.
func (s *Session) Find(name string) *Target {
	interned := NewInternedString(name)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.targets {
		if t.names(interned) {
			return t
		}
	}
	return nil
}

// Reset discards every declared target.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.targets = nil
}

// pathIndex builds a path-to-producing-target index over the registry.
// It is computed once per graph construction; the earliest registration
// of a path wins, matching the registry's first-match semantics.
func (s *Session) pathIndex() map[InternedString]*Target {
	s.mu.Lock()
	defer s.mu.Unlock()
	index := make(map[InternedString]*Target)
	for _, t := range s.targets {
		for _, n := range t.name {
			if _, taken := index[n]; !taken {
				index[n] = t
			}
		}
	}
	return index
}
