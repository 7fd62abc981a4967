package httpinterface

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/offerbook-network/offerbook-daemon/internal/core/application"
	"github.com/offerbook-network/offerbook-daemon/internal/interfaces"
)

const shutdownTimeout = 5 * time.Second

// ServiceOpts groups the dependencies of the HTTP interface.
type ServiceOpts struct {
	Address  string
	BookSvc  *application.BookService
	MakerSvc *application.MakerService
}

func (o ServiceOpts) validate() error {
	if o.Address == "" {
		return fmt.Errorf("missing listening address")
	}
	if o.BookSvc == nil {
		return fmt.Errorf("missing book service")
	}
	return nil
}

type service struct {
	opts   ServiceOpts
	server *http.Server
}

// NewService returns the REST interface of the daemon, exposing the local
// offer book and the prometheus metrics over plain HTTP.
func NewService(opts ServiceOpts) (interfaces.Service, error) {
	if err := opts.validate(); err != nil {
		return nil, fmt.Errorf("invalid opts: %s", err)
	}

	handler := &bookHandler{bookSvc: opts.BookSvc}

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/offers", handler.handleOffers)
	mux.HandleFunc("/v1/offers/", handler.handleOffer)
	mux.Handle("/metrics", promhttp.Handler())

	return &service{
		opts: opts,
		server: &http.Server{
			Addr:    opts.Address,
			Handler: mux,
		},
	}, nil
}

func (s *service) Start() error {
	listener, err := net.Listen("tcp", s.opts.Address)
	if err != nil {
		return err
	}

	go func() {
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("http interface exited with error")
		}
	}()

	log.Infof("http interface listening on %s", s.opts.Address)
	return nil
}

func (s *service) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		log.WithError(err).Warn("failed to gracefully stop http interface")
	}
	log.Debug("stopped http interface")
}
