package scan

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/mason/internal/core/ports"
	"go.trai.ch/mason/internal/project"
)

const NodeID graft.ID = "adapter.dep_resolver"

func init() {
	graft.Register(graft.Node[ports.DepResolver]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{project.TokensNodeID},
		Run: func(ctx context.Context) (ports.DepResolver, error) {
			tokens, err := graft.Dep[*project.TokenRegistry](ctx)
			if err != nil {
				return nil, err
			}
			// A scanner format bump must invalidate cached temp state.
			tokens.Add(FormatVersion)
			return NewScanner(), nil
		},
	})
}
