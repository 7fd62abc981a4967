package application

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	offersStoredCounter = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "offerbook",
		Name:      "offers_stored_total",
		Help:      "Number of offer records accepted into the local book.",
	})
	offersRefreshedCounter = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "offerbook",
		Name:      "offers_refreshed_total",
		Help:      "Number of re-gossiped offer records whose lifetime was refreshed.",
	})
	offersRejectedCounter = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "offerbook",
		Name:      "offers_rejected_total",
		Help:      "Number of received offer records rejected by validation.",
	})
	offersRemovedCounter = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "offerbook",
		Name:      "offers_removed_total",
		Help:      "Number of offer records removed on owner request.",
	})
	offersExpiredCounter = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "offerbook",
		Name:      "offers_expired_total",
		Help:      "Number of offer records evicted after their time to live elapsed.",
	})
)
