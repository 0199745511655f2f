package fs

import (
	"context"

	"github.com/bobmake/bob/core/ports"
	"github.com/grindlemire/graft"
)

// OracleNodeID is the unique identifier for the staleness oracle Graft node.
const OracleNodeID graft.ID = "adapter.fs.oracle"

func init() {
	graft.Register(graft.Node[ports.Oracle]{
		ID:        OracleNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.Oracle, error) {
			return NewOracle(), nil
		},
	})
}
