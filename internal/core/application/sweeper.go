package application

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/offerbook-network/offerbook-daemon/internal/core/domain"
)

// Sweeper periodically evicts the book entries whose time to live elapsed.
// Eviction is cooperative: every storing node runs its own sweeper, so an
// expired record disappears network-wide without coordination.
type Sweeper struct {
	repo     domain.OfferRepository
	interval time.Duration
	quit     chan struct{}
	done     chan struct{}
}

// NewSweeper returns a sweeper evicting expired entries from the given
// repository at every interval.
func NewSweeper(repo domain.OfferRepository, interval time.Duration) *Sweeper {
	return &Sweeper{
		repo:     repo,
		interval: interval,
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start runs the sweep loop until Stop is called.
func (s *Sweeper) Start() {
	go func() {
		defer close(s.done)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.Sweep(context.Background())
			case <-s.quit:
				return
			}
		}
	}()
	log.WithField("interval", s.interval.String()).Debug("started offer sweeper")
}

// Stop terminates the sweep loop and waits for it to exit.
func (s *Sweeper) Stop() {
	close(s.quit)
	<-s.done
	log.Debug("stopped offer sweeper")
}

// Sweep evicts every expired entry once. A failing sweep is logged and
// retried at the next tick, it never aborts the loop.
func (s *Sweeper) Sweep(ctx context.Context) {
	count, err := s.repo.DeleteExpiredEntries(ctx, time.Now().Unix())
	if err != nil {
		log.WithError(err).Warn("failed to evict expired offer records")
		return
	}
	if count > 0 {
		offersExpiredCounter.Add(float64(count))
		log.WithField("count", count).Debug("evicted expired offer records")
	}
}
