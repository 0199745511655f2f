package ports

import "github.com/bobmake/bob/core/domain"

// Oracle is the staleness decision: whether a target's outputs are out of
// date relative to its dependencies and must be rebuilt.
//
//go:generate go run go.uber.org/mock/mockgen -source=oracle.go -destination=mocks/mock_oracle.go -package=mocks
type Oracle interface {
	// ShouldBuild reports whether the target is stale. It assumes the
	// target's dependencies have been resolved.
	ShouldBuild(t *domain.Target) bool
}
