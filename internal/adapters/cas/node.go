package cas

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/rivebuild/internal/core/ports"
)

// NodeID is the unique identifier for the artifact store opener Graft node.
// The store path is only known once the project configuration is loaded.
const NodeID graft.ID = "adapter.artifact_store"

func init() {
	graft.Register(graft.Node[ports.StoreOpener]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.StoreOpener, error) {
			return Open, nil
		},
	})
}
