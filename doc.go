// Package bob is an embeddable, incremental, parallel build library.
//
// Build scripts are ordinary Go programs: declare targets with their
// recipes and dependencies, then call Build once. Targets work like
// makefile targets: they are identified by the output paths they produce
// (or by a bare name for phony targets), rebuilt only when stale, and
// run in dependency order, optionally in parallel.
//
//	bob.NewTarget(
//		[]string{"build/app"},
//		bob.NewCommandRecipe("gcc").AddOutput("build/app").Add("main.c"),
//		bob.PathDep("main.c"),
//	)
//	bob.NewPhonyTarget("clean", bob.NewShellRecipe("rm -rf build"))
//
//	err := bob.Build(ctx, bob.Options{Targets: []string{"build/app"}})
//
// Build parses make-style process flags (-B, -j, -s, -k, -n, -c, -d and
// positional target names) over the programmatic options, so the same
// script doubles as a command line build tool.
package bob
