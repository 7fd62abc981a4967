package main

import (
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/offerbook-network/offerbook-daemon/config"
	"github.com/offerbook-network/offerbook-daemon/internal/core/application"
	"github.com/offerbook-network/offerbook-daemon/internal/core/ports"
	"github.com/offerbook-network/offerbook-daemon/internal/infrastructure/liveness"
	dbbadger "github.com/offerbook-network/offerbook-daemon/internal/infrastructure/storage/db/badger"
	"github.com/offerbook-network/offerbook-daemon/internal/infrastructure/storage/db/inmemory"
	httpinterface "github.com/offerbook-network/offerbook-daemon/internal/interfaces/http"
)

func main() {
	if err := config.InitConfig(); err != nil {
		log.WithError(err).Fatal("invalid config")
	}
	log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))

	repoManager, err := newRepoManager()
	if err != nil {
		log.WithError(err).Fatal("error while opening db")
	}
	defer repoManager.Close()

	prober := liveness.NewTCPProber(
		config.GetDuration(config.ProbeTimeoutKey),
		config.GetInt(config.ProbesPerSecondKey),
	)

	bookSvc := application.NewBookService(repoManager.OfferRepository(), prober)
	makerSvc := application.NewMakerService(bookSvc)

	sweeper := application.NewSweeper(
		repoManager.OfferRepository(),
		config.GetDuration(config.SweepIntervalKey),
	)
	sweeper.Start()
	defer sweeper.Stop()

	// The public interface is started last and stopped first, nothing must be
	// reachable from outside while the rest of the daemon is not ready.
	svc, err := httpinterface.NewService(httpinterface.ServiceOpts{
		Address:  config.GetString(config.ListenAddrKey),
		BookSvc:  bookSvc,
		MakerSvc: makerSvc,
	})
	if err != nil {
		log.WithError(err).Fatal("error while setting up http interface")
	}
	if err := svc.Start(); err != nil {
		log.WithError(err).Fatal("error while starting http interface")
	}
	defer svc.Stop()

	log.Info("daemon started")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	<-sigChan

	log.Info("shutting down daemon")
}

func newRepoManager() (ports.RepoManager, error) {
	if config.GetString(config.DBTypeKey) == config.DBInMemory {
		return inmemory.NewRepoManager(), nil
	}
	return dbbadger.NewRepoManager(config.GetDbDir(), log.New())
}
