package ports

import (
	"github.com/offerbook-network/offerbook-daemon/internal/core/domain"
)

// RepoManager gives access to the repositories of the persistence layer and
// owns the lifecycle of the underlying store.
type RepoManager interface {
	OfferRepository() domain.OfferRepository

	Close() error
}
