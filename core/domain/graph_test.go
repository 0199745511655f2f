package domain_test

import (
	"errors"
	"testing"

	"github.com/bobmake/bob/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// declare is a test helper for targets whose recipe is irrelevant.
func declare(t *testing.T, s *domain.Session, name string, deps ...domain.Dependency) *domain.Target {
	t.Helper()
	target, err := s.NewTarget([]string{name}, nil, deps...)
	require.NoError(t, err)
	return target
}

func TestBuildGraph_Diamond(t *testing.T) {
	session := domain.NewSession()

	d := declare(t, session, "d")
	b := declare(t, session, "b", domain.TargetDep(d))
	c := declare(t, session, "c", domain.TargetDep(d))
	a := declare(t, session, "a", domain.TargetDep(b), domain.TargetDep(c))

	graph, err := domain.BuildGraph(session, []*domain.Target{a})
	require.NoError(t, err)

	assert.Equal(t, 4, graph.Len())
	assert.Equal(t, []*domain.Target{d}, graph.Ready())
	assert.Equal(t, map[*domain.Target]int{a: 2, b: 1, c: 1, d: 0}, graph.InDegrees())
	assert.ElementsMatch(t, []*domain.Target{b, c}, graph.Dependents(d))
	assert.Equal(t, []*domain.Target{a}, graph.Dependents(b))
	assert.Equal(t, []*domain.Target{a}, graph.Dependents(c))
}

func TestBuildGraph_SharedDependencyVisitedOnce(t *testing.T) {
	session := domain.NewSession()

	shared := declare(t, session, "shared")
	left := declare(t, session, "left", domain.TargetDep(shared))
	right := declare(t, session, "right", domain.TargetDep(shared))

	graph, err := domain.BuildGraph(session, []*domain.Target{left, right})
	require.NoError(t, err)

	// The shared target appears exactly once in the traversal order.
	count := 0
	for _, target := range graph.Targets() {
		if target == shared {
			count++
		}
	}
	assert.Equal(t, 1, count)
	assert.Equal(t, 2, graph.InDegrees()[left]+graph.InDegrees()[right])
}

func TestBuildGraph_CycleNamesTheChain(t *testing.T) {
	session := domain.NewSession()

	a, err := session.NewTarget([]string{"a"}, nil, domain.PathDep("b"))
	require.NoError(t, err)
	_, err = session.NewTarget([]string{"b"}, nil, domain.PathDep("a"))
	require.NoError(t, err)

	_, err = domain.BuildGraph(session, []*domain.Target{a})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrCycleDetected))
	assert.Contains(t, err.Error(), "a")
	assert.Contains(t, err.Error(), "b")
}

func TestBuildGraph_OnlyReachableTargetsIncluded(t *testing.T) {
	session := domain.NewSession()

	wanted := declare(t, session, "wanted")
	declare(t, session, "unrelated")

	graph, err := domain.BuildGraph(session, []*domain.Target{wanted})
	require.NoError(t, err)

	assert.Equal(t, 1, graph.Len())
	assert.Equal(t, []*domain.Target{wanted}, graph.Targets())
}

func TestBuildGraph_FirstRegistrationOwnsPath(t *testing.T) {
	session := domain.NewSession()

	first := declare(t, session, "dup")
	declare(t, session, "dup")
	consumer := declare(t, session, "consumer", domain.PathDep("dup"))

	graph, err := domain.BuildGraph(session, []*domain.Target{consumer})
	require.NoError(t, err)

	resolved, ok := consumer.Dependencies()[0].Target()
	require.True(t, ok)
	assert.Same(t, first, resolved)
	assert.Equal(t, 2, graph.Len())
}
