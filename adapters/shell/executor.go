// Package shell provides the recipe execution adapter over os/exec.
package shell

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/bobmake/bob/core/domain"
	"github.com/bobmake/bob/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Executor = (*Executor)(nil)

// Executor implements ports.Executor. Command and shell recipes spawn a
// child process; action recipes run in-process with the working directory
// temporarily switched to the recipe's directory.
type Executor struct {
	logger ports.Logger

	// chdirMu serializes in-process actions that change the process-wide
	// working directory.
	chdirMu sync.Mutex
}

// NewExecutor creates a new Executor.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{logger: logger}
}

// Execute runs the recipe. Failures return an error carrying the command
// line and exit code; the caller decides whether that is fatal.
func (e *Executor) Execute(ctx context.Context, recipe *domain.Recipe, opts ports.ExecOptions) error {
	if err := recipe.Err(); err != nil {
		return zerr.Wrap(err, "recipe is not runnable")
	}

	if !opts.Silent && recipe.Kind() != domain.KindAction {
		e.logger.Command(recipe.String())
	}

	switch recipe.Kind() {
	case domain.KindAction:
		return e.runAction(recipe)
	case domain.KindCommand:
		argv := recipe.Argv()
		if len(argv) == 0 {
			return zerr.Wrap(domain.ErrInvalidRecipe, "empty argument vector")
		}
		cmd := exec.CommandContext(ctx, argv[0], argv[1:]...) //nolint:gosec // user provided command
		return e.runCommand(cmd, recipe, opts)
	case domain.KindShell:
		cmd := exec.CommandContext(ctx, "/bin/sh", "-c", recipe.Shell()) //nolint:gosec // user provided command
		return e.runCommand(cmd, recipe, opts)
	default:
		return zerr.With(domain.ErrInvalidRecipe, "kind", recipe.Kind().String())
	}
}

// runAction invokes an in-process action, switching to the recipe's
// working directory when it differs from the current one and restoring
// the prior directory unconditionally afterward. Directory changes are
// process-wide, so concurrent actions are serialized.
func (e *Executor) runAction(recipe *domain.Recipe) error {
	e.chdirMu.Lock()
	defer e.chdirMu.Unlock()

	if dir := recipe.Dir(); dir != "" {
		prev, err := os.Getwd()
		if err != nil {
			return zerr.Wrap(err, "failed to read working directory")
		}
		if prev != dir {
			if err := os.Chdir(dir); err != nil {
				return zerr.With(zerr.Wrap(err, "failed to enter recipe directory"), "dir", dir)
			}
			defer func() { _ = os.Chdir(prev) }()
		}
	}

	if err := recipe.Action()(); err != nil {
		return zerr.Wrap(err, "action failed")
	}
	return nil
}

func (e *Executor) runCommand(cmd *exec.Cmd, recipe *domain.Recipe, opts ports.ExecOptions) error {
	cmd.Dir = recipe.Dir()

	var captured bytes.Buffer
	if opts.Silent {
		cmd.Stdout = &captured
		cmd.Stderr = &captured
	} else {
		cmd.Stdout = &logWriter{logger: e.logger}
		cmd.Stderr = &logWriter{logger: e.logger, errStream: true}
	}

	if err := cmd.Run(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return zerr.With(zerr.With(
			zerr.Wrap(err, "command failed"),
			"command", recipe.String()),
			"exit_code", exitCode)
	}
	return nil
}

// logWriter forwards child process output line by line to the logger.
type logWriter struct {
	logger    ports.Logger
	errStream bool
}

func (w *logWriter) Write(p []byte) (int, error) {
	msg := strings.TrimSuffix(string(p), "\n")
	for line := range strings.SplitSeq(msg, "\n") {
		if w.errStream {
			w.logger.Warn(line)
		} else {
			w.logger.Info(line)
		}
	}
	return len(p), nil
}
