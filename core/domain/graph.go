// Package domain contains the core model of the build library: targets,
// recipes, the session registry and the dependency graph.
package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// Graph is the derived dependency structure covering every target
// transitively reachable from the requested roots: a dependents-adjacency
// map and an in-degree count per target. It is built fresh per build
// invocation and never stored on targets.
type Graph struct {
	order      []*Target
	dependents map[*Target][]*Target
	inDegree   map[*Target]int
}

// BuildGraph resolves dependencies and walks the graph depth-first from
// each root. Re-entering a target already on the visiting stack is a
// fatal cycle whose error names the whole chain in visiting order. A
// target reachable through multiple paths is resolved and walked exactly
// once.
func BuildGraph(session *Session, roots []*Target) (*Graph, error) {
	g := &Graph{
		dependents: make(map[*Target][]*Target),
		inDegree:   make(map[*Target]int),
	}
	index := session.pathIndex()

	visiting := make(map[*Target]bool)
	done := make(map[*Target]bool)
	var stack []*Target

	var walk func(t *Target) error
	walk = func(t *Target) error {
		if visiting[t] {
			return cycleError(stack, t)
		}
		if done[t] {
			return nil
		}
		visiting[t] = true
		done[t] = true
		stack = append(stack, t)

		if err := t.ResolveDependencies(index); err != nil {
			return err
		}

		g.order = append(g.order, t)
		if _, seen := g.inDegree[t]; !seen {
			g.inDegree[t] = 0
		}

		for _, dep := range t.deps {
			target, ok := dep.Target()
			if !ok {
				// Unresolved path: an external leaf, always available.
				continue
			}
			g.dependents[target] = append(g.dependents[target], t)
			g.inDegree[t]++
			if err := walk(target); err != nil {
				return err
			}
		}

		visiting[t] = false
		stack = stack[:len(stack)-1]
		return nil
	}

	for _, root := range roots {
		if err := walk(root); err != nil {
			return nil, err
		}
	}

	return g, nil
}

func cycleError(stack []*Target, reentered *Target) error {
	parts := make([]string, 0, len(stack)+1)
	for _, t := range stack {
		parts = append(parts, t.String())
	}
	parts = append(parts, reentered.String())
	return zerr.With(ErrCycleDetected, "cycle", strings.Join(parts, " -> "))
}

// Len returns the number of targets in the graph.
func (g *Graph) Len() int { return len(g.order) }

// Targets returns the graph's targets in first-visit order.
func (g *Graph) Targets() []*Target {
	out := make([]*Target, len(g.order))
	copy(out, g.order)
	return out
}

// Ready returns the targets with no unresolved target dependencies, in
// first-visit order. These seed the scheduler's ready queue.
func (g *Graph) Ready() []*Target {
	var ready []*Target
	for _, t := range g.order {
		if g.inDegree[t] == 0 {
			ready = append(ready, t)
		}
	}
	return ready
}

// Dependents returns the targets that depend on t.
func (g *Graph) Dependents(t *Target) []*Target {
	return g.dependents[t]
}

// InDegrees returns a mutable copy of the in-degree map for a scheduler
// run to count down.
func (g *Graph) InDegrees() map[*Target]int {
	out := make(map[*Target]int, len(g.inDegree))
	for t, d := range g.inDegree {
		out[t] = d
	}
	return out
}
