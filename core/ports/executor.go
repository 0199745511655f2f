// Package ports defines the interfaces between the build engine and its
// adapters.
package ports

import (
	"context"

	"github.com/bobmake/bob/core/domain"
)

// ExecOptions control how a recipe is executed.
type ExecOptions struct {
	// Silent captures the child's output instead of inheriting it and
	// suppresses the command echo.
	Silent bool
}

// Executor runs recipes.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute dispatches on the recipe's kind: in-process actions run in
	// the recipe's working directory, command and shell recipes spawn a
	// child process. A failure always returns an error carrying the
	// command line and exit code; fatal-versus-logged policy belongs to
	// the scheduler.
	Execute(ctx context.Context, recipe *domain.Recipe, opts ExecOptions) error
}
