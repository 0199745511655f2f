package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// RecipeKind discriminates the execution strategies a Recipe can carry.
type RecipeKind int

const (
	// KindAction is an in-process Go function.
	KindAction RecipeKind = iota
	// KindCommand is an argument-vector process invocation.
	KindCommand
	// KindShell is a raw command line handed to the system shell.
	KindShell
)

// String returns a human-readable name for the kind.
func (k RecipeKind) String() string {
	switch k {
	case KindAction:
		return "action"
	case KindCommand:
		return "command"
	case KindShell:
		return "shell"
	default:
		return "unknown"
	}
}

// Recipe is the executable action bound to a Target. It is a tagged
// variant over an in-process action, an argument-vector invocation, or a
// raw shell string. Only command-shaped recipes are mutable: the builder
// methods append arguments and return the recipe for chaining. An invalid
// mutation records a sticky error surfaced by Err and at declaration time.
type Recipe struct {
	kind   RecipeKind
	action func() error
	argv   []string
	shell  string
	dir    string
	err    error
}

// NewActionRecipe creates a recipe that runs fn in-process.
func NewActionRecipe(fn func() error) *Recipe {
	r := &Recipe{kind: KindAction, action: fn}
	if fn == nil {
		r.err = zerr.Wrap(ErrInvalidRecipe, "action recipe requires a function")
	}
	return r
}

// NewCommandRecipe creates a mutable argument-vector recipe. The program
// name comes first; further arguments can be given here or appended with
// the builder methods.
func NewCommandRecipe(program string, args ...string) *Recipe {
	r := &Recipe{kind: KindCommand}
	if program == "" {
		r.err = zerr.Wrap(ErrInvalidRecipe, "command recipe requires a program name")
		return r
	}
	r.argv = append([]string{program}, args...)
	return r
}

// NewShellRecipe creates a recipe that passes cmdline to the system shell
// verbatim. Shell recipes are immutable after construction.
func NewShellRecipe(cmdline string) *Recipe {
	r := &Recipe{kind: KindShell, shell: cmdline}
	if strings.TrimSpace(cmdline) == "" {
		r.err = zerr.Wrap(ErrInvalidRecipe, "shell recipe requires a command line")
	}
	return r
}

// InDir sets the working directory the recipe executes in and returns the
// recipe for chaining. An empty directory means the current directory.
func (r *Recipe) InDir(dir string) *Recipe {
	r.dir = dir
	return r
}

// Kind returns the recipe's execution strategy.
func (r *Recipe) Kind() RecipeKind { return r.kind }

// Action returns the in-process function of an action recipe, or nil.
func (r *Recipe) Action() func() error { return r.action }

// Argv returns a copy of the argument vector of a command recipe.
func (r *Recipe) Argv() []string {
	out := make([]string, len(r.argv))
	copy(out, r.argv)
	return out
}

// Shell returns the raw command line of a shell recipe.
func (r *Recipe) Shell() string { return r.shell }

// Dir returns the configured working directory.
func (r *Recipe) Dir() string { return r.dir }

// Err reports the sticky builder error, if any.
func (r *Recipe) Err() error { return r.err }

// Add appends the given arguments to a command recipe.
func (r *Recipe) Add(args ...string) *Recipe {
	return r.appendArgs("", args)
}

// AddInclude appends the arguments with an -I prefix (include paths).
func (r *Recipe) AddInclude(paths ...string) *Recipe {
	return r.appendArgs("-I", paths)
}

// AddLibInclude appends the arguments with an -L prefix (library paths).
func (r *Recipe) AddLibInclude(paths ...string) *Recipe {
	return r.appendArgs("-L", paths)
}

// AddLink appends the arguments with an -l prefix (link names).
func (r *Recipe) AddLink(names ...string) *Recipe {
	return r.appendArgs("-l", names)
}

// AddOutput appends the output path with an -o prefix.
func (r *Recipe) AddOutput(output string) *Recipe {
	return r.appendArgs("-o", []string{output})
}

func (r *Recipe) appendArgs(prefix string, args []string) *Recipe {
	if r.kind != KindCommand {
		if r.err == nil {
			r.err = zerr.With(ErrRecipeNotMutable, "kind", r.kind.String())
		}
		return r
	}
	for _, a := range args {
		r.argv = append(r.argv, prefix+a)
	}
	return r
}

// Clone deep-copies the recipe's payload, producing an independent recipe
// of the same kind.
func (r *Recipe) Clone() *Recipe {
	clone := &Recipe{
		kind:   r.kind,
		action: r.action,
		shell:  r.shell,
		dir:    r.dir,
		err:    r.err,
	}
	if r.argv != nil {
		clone.argv = make([]string, len(r.argv))
		copy(clone.argv, r.argv)
	}
	return clone
}

// String renders the recipe as the command line it represents. Action
// recipes have no command line and render as a placeholder.
func (r *Recipe) String() string {
	switch r.kind {
	case KindShell:
		return r.shell
	case KindCommand:
		return joinCommandLine(r.argv)
	default:
		return "<action>"
	}
}

// joinCommandLine renders an argument vector as a single shell-safe line,
// quoting arguments that contain whitespace or quote characters.
func joinCommandLine(argv []string) string {
	parts := make([]string, len(argv))
	for i, a := range argv {
		parts[i] = quoteArg(a)
	}
	return strings.Join(parts, " ")
}

func quoteArg(a string) string {
	if a == "" {
		return "''"
	}
	if !strings.ContainsAny(a, " \t\n\"'\\$&|;<>()*?[]#~") {
		return a
	}
	return "'" + strings.ReplaceAll(a, "'", `'"'"'`) + "'"
}
