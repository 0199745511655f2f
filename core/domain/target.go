package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// Target is a named build unit. Its identity is an ordered, non-empty
// sequence of output paths, or a single name for a phony target. A target
// optionally carries a recipe and a list of dependencies, and registers
// itself in its session's registry as the final construction step.
type Target struct {
	name   []InternedString
	recipe *Recipe
	deps   []Dependency
	phony  bool
}

func newTarget(names []string, recipe *Recipe, deps []Dependency, phony bool) (*Target, error) {
	if phony && len(names) != 1 {
		return nil, zerr.With(ErrInvalidTargetName, "reason", "phony targets have exactly one name")
	}
	if len(names) == 0 {
		return nil, zerr.With(ErrInvalidTargetName, "reason", "targets need at least one output path")
	}
	for _, n := range names {
		if n == "" {
			return nil, zerr.With(ErrInvalidTargetName, "reason", "empty output path")
		}
	}
	if recipe != nil && recipe.Err() != nil {
		return nil, zerr.Wrap(recipe.Err(), "invalid recipe")
	}
	for _, d := range deps {
		if !d.valid() {
			return nil, zerr.With(ErrInvalidDependency, "target", strings.Join(names, " "))
		}
	}

	return &Target{
		name:   internStrings(names),
		recipe: recipe,
		deps:   deps,
		phony:  phony,
	}, nil
}

// Outputs returns the target's output paths (or the phony name).
func (t *Target) Outputs() []string {
	out := make([]string, len(t.name))
	for i, n := range t.name {
		out[i] = n.String()
	}
	return out
}

// Recipe returns the target's recipe, or nil.
func (t *Target) Recipe() *Recipe { return t.recipe }

// Dependencies returns the target's dependency list. The returned slice
// reflects resolution state: path references that matched a producing
// target have been replaced in place.
func (t *Target) Dependencies() []Dependency {
	out := make([]Dependency, len(t.deps))
	copy(out, t.deps)
	return out
}

// Phony reports whether the target produces no file output.
func (t *Target) Phony() bool { return t.phony }

// Names reports whether name is one of the target's identifiers.
func (t *Target) names(name InternedString) bool {
	for _, n := range t.name {
		if n == name {
			return true
		}
	}
	return false
}

// String renders the target's identity for diagnostics.
func (t *Target) String() string {
	return strings.Join(t.Outputs(), " ")
}

// ResolveDependencies replaces path-reference dependencies with the
// producing target recorded in index, where one exists. It is called
// exactly once per target, during graph construction. A path that maps
// back to the target itself is a fatal self-dependency; a path with no
// producer stays in place and denotes an external leaf file.
func (t *Target) ResolveDependencies(index map[InternedString]*Target) error {
	for i, dep := range t.deps {
		path, ok := dep.Path()
		if !ok {
			if target, _ := dep.Target(); target == t {
				return zerr.With(ErrSelfDependency, "target", t.String())
			}
			continue
		}
		owner, found := index[NewInternedString(path)]
		if !found {
			continue
		}
		if owner == t {
			return zerr.With(ErrSelfDependency, "target", t.String())
		}
		t.deps[i] = TargetDep(owner)
	}
	return nil
}
