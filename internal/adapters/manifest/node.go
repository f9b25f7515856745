package manifest

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/mason/internal/core/domain"
	"go.trai.ch/mason/internal/core/ports"
)

const NodeID graft.ID = "adapter.manifest_store"

func init() {
	graft.Register(graft.Node[ports.ManifestStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.ManifestStore, error) {
			store, err := NewStore(domain.DefaultManifestPath())
			if err != nil {
				return nil, err
			}
			return store, nil
		},
	})
}
