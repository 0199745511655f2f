// Package scheduler implements the concurrent topological build executor.
package scheduler

import (
	"context"
	"errors"
	"sync"

	"github.com/bobmake/bob/core/domain"
	"github.com/bobmake/bob/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// TargetStatus represents the processing state of a target during a run.
type TargetStatus string

const (
	// StatusPending indicates the target has not been dispatched.
	StatusPending TargetStatus = "Pending"
	// StatusRunning indicates the target is being processed by a worker.
	StatusRunning TargetStatus = "Running"
	// StatusCompleted indicates the target's recipe ran successfully.
	StatusCompleted TargetStatus = "Completed"
	// StatusFailed indicates the target's recipe failed.
	StatusFailed TargetStatus = "Failed"
	// StatusUpToDate indicates the target was skipped as not stale.
	StatusUpToDate TargetStatus = "UpToDate"
)

// RunOptions control a single scheduler run.
type RunOptions struct {
	// Jobs is the worker count; values below one mean a single worker.
	Jobs int
	// AlwaysMake bypasses the staleness oracle and runs every recipe.
	AlwaysMake bool
	// DryRun echoes command lines without executing anything.
	DryRun bool
	// Silent captures recipe output and suppresses command echo.
	Silent bool
	// KeepGoing demotes recipe failures from fatal to logged; dependents
	// of a failed target still run.
	KeepGoing bool
}

// Scheduler executes a dependency graph with a fixed worker pool in
// topological order. Readiness bookkeeping (in-degree countdown and the
// ready queue) has a single owner, the coordinator loop, so a target is
// dispatched exactly once and never before all of its dependencies have
// finished processing. Workers only run recipes and report back over a
// channel.
type Scheduler struct {
	executor ports.Executor
	oracle   ports.Oracle
	logger   ports.Logger

	mu     sync.RWMutex
	status map[*domain.Target]TargetStatus
}

// NewScheduler creates a Scheduler with the given collaborators.
func NewScheduler(executor ports.Executor, oracle ports.Oracle, logger ports.Logger) *Scheduler {
	return &Scheduler{
		executor: executor,
		oracle:   oracle,
		logger:   logger,
		status:   make(map[*domain.Target]TargetStatus),
	}
}

// Status returns the target's state as of the last run.
func (s *Scheduler) Status(t *domain.Target) TargetStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if st, ok := s.status[t]; ok {
		return st
	}
	return StatusPending
}

func (s *Scheduler) setStatus(t *domain.Target, st TargetStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status[t] = st
}

type result struct {
	target *domain.Target
	err    error
}

type runState struct {
	s         *Scheduler
	graph     *domain.Graph
	opts      RunOptions
	inDegree  map[*domain.Target]int
	ready     []*domain.Target
	pending   int
	inFlight  int
	cancelled bool
	errs      error
}

// Run executes every target in the graph at most once, honoring
// dependency order. It blocks until all targets are processed or, after a
// fatal failure, until in-flight recipes have finished; queued but
// unstarted work is then drained unexecuted. The returned error joins all
// recipe failures; nil means overall success.
func (s *Scheduler) Run(ctx context.Context, graph *domain.Graph, opts RunOptions) error {
	jobs := max(opts.Jobs, 1)

	s.mu.Lock()
	s.status = make(map[*domain.Target]TargetStatus, graph.Len())
	for _, t := range graph.Targets() {
		s.status[t] = StatusPending
	}
	s.mu.Unlock()

	state := &runState{
		s:        s,
		graph:    graph,
		opts:     opts,
		inDegree: graph.InDegrees(),
		ready:    graph.Ready(),
		pending:  graph.Len(),
	}

	taskCh := make(chan *domain.Target)
	resultsCh := make(chan result, jobs)

	var g errgroup.Group
	for range jobs {
		g.Go(func() error {
			for t := range taskCh {
				resultsCh <- result{target: t, err: s.process(ctx, t, opts)}
			}
			return nil
		})
	}

	for state.pending > 0 {
		if state.cancelled && state.inFlight == 0 {
			break
		}

		var dispatch chan<- *domain.Target
		var next *domain.Target
		if !state.cancelled && len(state.ready) > 0 {
			next = state.ready[0]
			dispatch = taskCh
		}

		if dispatch == nil && state.inFlight == 0 {
			// Nothing ready, nothing running, targets left: cannot happen
			// for a graph that passed cycle detection.
			state.errs = errors.Join(state.errs, zerr.With(
				zerr.New("scheduler stalled with unprocessed targets"),
				"remaining", state.pending))
			break
		}

		var done <-chan struct{}
		if !state.cancelled {
			done = ctx.Done()
		}

		select {
		case dispatch <- next:
			state.ready = state.ready[1:]
			state.inFlight++
			s.setStatus(next, StatusRunning)
		case res := <-resultsCh:
			state.inFlight--
			state.pending--
			state.handleResult(res)
		case <-done:
			state.cancelled = true
			state.errs = errors.Join(state.errs, ctx.Err())
		}
	}

	// Stop the pool and let in-flight recipes run to completion;
	// cancellation is cooperative, never preemptive.
	close(taskCh)
	for state.inFlight > 0 {
		res := <-resultsCh
		state.inFlight--
		state.recordOutcome(res)
	}
	if err := g.Wait(); err != nil {
		state.errs = errors.Join(state.errs, err)
	}

	return state.errs
}

// handleResult is the single critical path where a finished target's
// dependents are counted down and newly ready targets are enqueued. A
// fatal failure flips the cancellation flag instead, so dependents of the
// failed target are never released.
func (state *runState) handleResult(res result) {
	state.recordOutcome(res)
	if res.err != nil && !state.opts.KeepGoing {
		state.cancelled = true
		return
	}
	for _, dependent := range state.graph.Dependents(res.target) {
		state.inDegree[dependent]--
		if state.inDegree[dependent] == 0 {
			state.ready = append(state.ready, dependent)
		}
	}
}

func (state *runState) recordOutcome(res result) {
	if res.err != nil {
		wrapped := zerr.With(zerr.Wrap(res.err, "recipe failed"), "target", res.target.String())
		state.errs = errors.Join(state.errs, wrapped)
		state.s.setStatus(res.target, StatusFailed)
		state.s.logger.Error(wrapped)
		return
	}
	if state.s.Status(res.target) == StatusRunning {
		state.s.setStatus(res.target, StatusCompleted)
	}
}

// process is the per-target worker body: consult the staleness oracle,
// then run (or echo) the recipe.
func (s *Scheduler) process(ctx context.Context, t *domain.Target, opts RunOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	recipe := t.Recipe()
	if recipe == nil {
		return nil
	}

	if !opts.AlwaysMake && !s.oracle.ShouldBuild(t) {
		s.logger.Debug("up to date: " + t.String())
		s.setStatus(t, StatusUpToDate)
		return nil
	}

	if opts.DryRun {
		s.logger.Command(recipe.String())
		return nil
	}

	s.logger.Debug("building " + t.String())
	return s.executor.Execute(ctx, recipe, ports.ExecOptions{Silent: opts.Silent})
}
