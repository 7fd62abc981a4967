package inmemory

import (
	"github.com/offerbook-network/offerbook-daemon/internal/core/domain"
	"github.com/offerbook-network/offerbook-daemon/internal/core/ports"
)

type RepoManager struct {
	offerRepository domain.OfferRepository
}

func NewRepoManager() ports.RepoManager {
	return &RepoManager{
		offerRepository: NewOfferRepositoryImpl(),
	}
}

func (d *RepoManager) OfferRepository() domain.OfferRepository {
	return d.offerRepository
}

func (d *RepoManager) Close() error { return nil }
