package bob

import (
	"context"
	"strings"

	"github.com/bobmake/bob/core/domain"
	"github.com/bobmake/bob/core/ports"
	"github.com/bobmake/bob/engine/scheduler"
	"github.com/bobmake/bob/internal/wiring"
	"github.com/grindlemire/graft"
	"go.trai.ch/zerr"
)

// Aliases for the domain model, so build scripts only import this package.
type (
	// Target is a named build unit.
	Target = domain.Target
	// Recipe is the executable action bound to a Target.
	Recipe = domain.Recipe
	// Dependency is one entry in a target's dependency list.
	Dependency = domain.Dependency
	// Session owns the registry of declared targets.
	Session = domain.Session
)

// Recipe constructors and dependency helpers, re-exported for build scripts.
var (
	NewActionRecipe  = domain.NewActionRecipe
	NewCommandRecipe = domain.NewCommandRecipe
	NewShellRecipe   = domain.NewShellRecipe
	NewSession       = domain.NewSession
	TargetDep        = domain.TargetDep
	PathDep          = domain.PathDep
)

// defaultSession is the process-wide registry used by the package-level
// declaration helpers. Nothing clears it automatically; call Reset
// between independent builds.
var defaultSession = domain.NewSession()

// DefaultSession returns the process-wide session.
func DefaultSession() *Session {
	return defaultSession
}

// Reset discards every target declared in the default session.
func Reset() {
	defaultSession.Reset()
}

// NewTarget declares a target in the default session.
func NewTarget(outputs []string, recipe *Recipe, deps ...Dependency) (*Target, error) {
	return defaultSession.NewTarget(outputs, recipe, deps...)
}

// NewPhonyTarget declares a phony target in the default session.
func NewPhonyTarget(name string, recipe *Recipe, deps ...Dependency) (*Target, error) {
	return defaultSession.NewPhonyTarget(name, recipe, deps...)
}

// Build is the main entry point for build scripts. It layers process
// flags over opts, then builds the default session's requested targets.
// Call it once, after all targets are declared. A nil error means the
// build succeeded.
func Build(ctx context.Context, opts Options) error {
	effective, err := opts.withFlags()
	if err != nil {
		return err
	}
	return Run(ctx, defaultSession, effective)
}

// Run builds the requested targets of an explicit session, without
// consulting the process command line.
func Run(ctx context.Context, session *Session, opts Options) error {
	components, _, err := graft.ExecuteFor[*wiring.Components](ctx)
	if err != nil {
		return zerr.Wrap(err, "failed to initialize build components")
	}

	opts = opts.normalize(components.Logger)
	components.Logger.SetDebug(opts.Debug)

	if opts.CompileDB {
		if err := components.CompileDB.Generate(session.Targets()); err != nil {
			return err
		}
	}

	roots, err := selectRoots(session, opts, components.Logger)
	if err != nil {
		return err
	}

	graph, err := domain.BuildGraph(session, roots)
	if err != nil {
		return err
	}

	runOpts := scheduler.RunOptions{
		Jobs:       opts.Jobs,
		AlwaysMake: opts.AlwaysMake,
		DryRun:     opts.DryRun,
		Silent:     opts.Silent,
		KeepGoing:  opts.KeepGoing,
	}
	if err := components.Scheduler.Run(ctx, graph, runOpts); err != nil {
		return zerr.Wrap(err, "build failed")
	}
	return nil
}

// selectRoots picks the build roots: every declared target under
// always-make, the first declared target when nothing is requested, and
// otherwise the declared targets matching the requested names. Unknown
// names are warned and skipped; a request that matches nothing fails.
func selectRoots(session *domain.Session, opts Options, log ports.Logger) ([]*domain.Target, error) {
	if session.Len() == 0 {
		return nil, domain.ErrNoTargets
	}
	if opts.AlwaysMake {
		return session.Targets(), nil
	}
	if len(opts.Targets) == 0 {
		return []*domain.Target{session.First()}, nil
	}

	roots := make([]*domain.Target, 0, len(opts.Targets))
	for _, name := range opts.Targets {
		t := session.Find(name)
		if t == nil {
			log.Warn(name + " is not a declared target, skipping")
			continue
		}
		roots = append(roots, t)
	}
	if len(roots) == 0 {
		return nil, zerr.With(domain.ErrNoValidTargets, "requested", strings.Join(opts.Targets, ", "))
	}
	return roots, nil
}
