// Package wiring registers all Graft nodes and bundles the components the
// facade and CLI need.
package wiring

import (
	"context"

	"github.com/bobmake/bob/adapters/compiledb"
	"github.com/bobmake/bob/adapters/logger"
	"github.com/bobmake/bob/core/ports"
	"github.com/bobmake/bob/engine/scheduler"
	"github.com/grindlemire/graft"
)

// Components contains the initialized build components.
type Components struct {
	Scheduler *scheduler.Scheduler
	CompileDB *compiledb.Writer
	Logger    ports.Logger
}

// ComponentsNodeID is the unique identifier for the components Graft node.
const ComponentsNodeID graft.ID = "wiring.components"

func init() {
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			scheduler.NodeID,
			compiledb.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			sched, err := graft.Dep[*scheduler.Scheduler](ctx)
			if err != nil {
				return nil, err
			}

			db, err := graft.Dep[*compiledb.Writer](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{
				Scheduler: sched,
				CompileDB: db,
				Logger:    log,
			}, nil
		},
	})
}
