package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidTargetName is returned when a target's name does not match
	// the required shape: a single string for phony targets, one or more
	// non-empty output paths otherwise.
	ErrInvalidTargetName = zerr.New("invalid target name")

	// ErrInvalidRecipe is returned when a target is declared with a recipe
	// that failed builder validation.
	ErrInvalidRecipe = zerr.New("invalid recipe")

	// ErrInvalidDependency is returned when a dependency entry is neither a
	// target nor a path reference.
	ErrInvalidDependency = zerr.New("invalid dependency")

	// ErrRecipeNotMutable is returned when builder methods are applied to a
	// recipe that is not command-shaped.
	ErrRecipeNotMutable = zerr.New("only command recipes accept arguments")

	// ErrSelfDependency is returned when dependency resolution maps a path
	// back to the target that declared it.
	ErrSelfDependency = zerr.New("target depends on itself")

	// ErrCycleDetected is returned when graph construction re-enters a
	// target that is already on the visiting stack.
	ErrCycleDetected = zerr.New("cyclic dependency detected")

	// ErrNoTargets is returned when a build is requested against a session
	// with no declared targets.
	ErrNoTargets = zerr.New("no targets declared")

	// ErrNoValidTargets is returned when none of the requested target names
	// matched a declared target.
	ErrNoValidTargets = zerr.New("no valid targets requested")
)
