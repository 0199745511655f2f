package compiledb

import (
	"context"

	"github.com/bobmake/bob/adapters/logger" //nolint:depguard // Wired in adapter wiring
	"github.com/bobmake/bob/core/ports"
	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the compile database Graft node.
const NodeID graft.ID = "adapter.compiledb"

func init() {
	graft.Register(graft.Node[*Writer]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Writer, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewWriter(log), nil
		},
	})
}
