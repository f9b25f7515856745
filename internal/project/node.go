package project

import (
	"context"

	"github.com/grindlemire/graft"
)

// TokensNodeID is the unique identifier for the digest-token registry node.
const TokensNodeID graft.ID = "project.token_registry"

func init() {
	graft.Register(graft.Node[*TokenRegistry]{
		ID:        TokensNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (*TokenRegistry, error) {
			return NewTokenRegistry(), nil
		},
	})
}
