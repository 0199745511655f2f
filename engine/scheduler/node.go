package scheduler

import (
	"context"

	"github.com/bobmake/bob/adapters/fs"     //nolint:depguard // Wired in engine wiring
	"github.com/bobmake/bob/adapters/logger" //nolint:depguard // Wired in engine wiring
	"github.com/bobmake/bob/adapters/shell"  //nolint:depguard // Wired in engine wiring
	"github.com/bobmake/bob/core/ports"
	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the scheduler Graft node.
const NodeID graft.ID = "engine.scheduler"

func init() {
	graft.Register(graft.Node[*Scheduler]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			shell.NodeID,
			fs.OracleNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Scheduler, error) {
			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}

			oracle, err := graft.Dep[ports.Oracle](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewScheduler(executor, oracle, log), nil
		},
	})
}
