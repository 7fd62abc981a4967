package liveness

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/offerbook-network/offerbook-daemon/internal/core/domain"
	"github.com/offerbook-network/offerbook-daemon/internal/core/ports"
	"github.com/offerbook-network/offerbook-daemon/pkg/circuitbreaker"
	log "github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"go.uber.org/ratelimit"
)

type tcpProber struct {
	dialTimeout time.Duration
	limiter     ratelimit.Limiter

	lock     *sync.Mutex
	breakers map[string]*gobreaker.CircuitBreaker
}

// NewTCPProber returns a LivenessProber that checks whether a maker node is
// online by dialing its overlay address. Probes are rate limited globally and
// guarded by a per-address circuit breaker so that a dead maker doesn't get
// hammered with new connections on every gossiped removal.
func NewTCPProber(dialTimeout time.Duration, probesPerSecond int) ports.LivenessProber {
	return &tcpProber{
		dialTimeout: dialTimeout,
		limiter:     ratelimit.New(probesPerSecond),
		lock:        &sync.Mutex{},
		breakers:    map[string]*gobreaker.CircuitBreaker{},
	}
}

func (p *tcpProber) IsReachable(ctx context.Context, addr domain.NodeAddress) bool {
	if addr.IsEmpty() {
		return false
	}

	p.limiter.Take()

	cb := p.breakerForAddress(addr.String())
	_, err := cb.Execute(func() (interface{}, error) {
		return nil, p.dial(ctx, addr.String())
	})
	if err != nil {
		log.WithField("address", addr.String()).Debugf(
			"liveness probe failed: %s", err,
		)
		return false
	}
	return true
}

func (p *tcpProber) dial(ctx context.Context, address string) error {
	dialer := net.Dialer{Timeout: p.dialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		return err
	}
	return conn.Close()
}

func (p *tcpProber) breakerForAddress(address string) *gobreaker.CircuitBreaker {
	p.lock.Lock()
	defer p.lock.Unlock()

	cb, ok := p.breakers[address]
	if !ok {
		cb = circuitbreaker.NewCircuitBreaker(address)
		p.breakers[address] = cb
	}
	return cb
}
