package bob

import (
	"os"

	"github.com/bobmake/bob/core/ports"
	"github.com/spf13/pflag"
	"go.trai.ch/zerr"
)

// Options are the recognized build options. They act as programmatic
// defaults: Build lets process-level flags of matching shape override
// them, mimicking make's option surface.
type Options struct {
	// Targets are the names or output paths to build. Empty means the
	// first declared target.
	Targets []string

	// AlwaysMake runs every declared target's recipe regardless of
	// staleness (make -B).
	AlwaysMake bool

	// Jobs is the worker count; values below one mean a single worker.
	Jobs int

	// Silent suppresses command echo and captures recipe output.
	Silent bool

	// KeepGoing logs recipe failures instead of cancelling the build;
	// the overall result still reports failure.
	KeepGoing bool

	// DryRun prints command lines without executing them. It implies
	// Silent off.
	DryRun bool

	// CompileDB writes compile_commands.json before scheduling.
	CompileDB bool

	// Debug raises diagnostic verbosity.
	Debug bool

	// Argv overrides the process arguments Build parses for flag
	// overrides. nil means os.Args[1:]; an empty non-nil slice disables
	// command line overrides (useful in tests).
	Argv []string
}

// withFlags layers make-style command line flags over the programmatic
// defaults and returns the effective options.
func (o Options) withFlags() (Options, error) {
	argv := o.Argv
	if argv == nil {
		argv = os.Args[1:]
	}

	flags := pflag.NewFlagSet("bob", pflag.ContinueOnError)
	alwaysMake := flags.BoolP("always-make", "B", o.AlwaysMake, "Unconditionally build all declared targets.")
	debug := flags.BoolP("debug", "d", o.Debug, "Print debug information.")
	jobs := flags.IntP("jobs", "j", o.Jobs, "Number of recipes to run at once, defaults to 1.")
	silent := flags.BoolP("silent", "s", o.Silent, "Don't echo commands.")
	keepGoing := flags.BoolP("keep-going", "k", o.KeepGoing, "Keep going even if a recipe fails.")
	dryRun := flags.BoolP("dry-run", "n", o.DryRun, "Don't execute recipes, just print them.")
	compileDB := flags.BoolP("compile-db", "c", o.CompileDB, "Write a compile_commands.json before building.")

	if err := flags.Parse(argv); err != nil {
		return o, zerr.Wrap(err, "failed to parse build flags")
	}

	out := o
	out.AlwaysMake = *alwaysMake
	out.Debug = *debug
	out.Jobs = *jobs
	out.Silent = *silent
	out.KeepGoing = *keepGoing
	out.DryRun = *dryRun
	out.CompileDB = *compileDB
	if positional := flags.Args(); len(positional) > 0 {
		out.Targets = positional
	}
	return out, nil
}

// normalize applies option interactions: dry runs never run silent, and
// the worker count has a floor of one.
func (o Options) normalize(log ports.Logger) Options {
	if o.Jobs < 1 {
		o.Jobs = 1
	}
	if o.DryRun && o.Silent {
		log.Warn("turning off silent, dry-run was also requested")
		o.Silent = false
	}
	return o
}
