package ports

import (
	"context"

	"github.com/offerbook-network/offerbook-daemon/internal/core/domain"
)

// LivenessProber checks whether a peer is currently reachable at its claimed
// network address. The overlay consults it before honoring the removal of any
// payload whose owner must be online.
type LivenessProber interface {
	IsReachable(ctx context.Context, addr domain.NodeAddress) bool
}
