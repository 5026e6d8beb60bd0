// Package metrics registers the engine's Prometheus counters. Exposition is
// left to the embedding application; we only count.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Label values for Resolutions.
const (
	OutcomeResolved  = "resolved"
	OutcomeNotFound  = "not_found"
	OutcomeAmbiguous = "ambiguous"
)

var (
	// Resolutions counts resolver outcomes.
	Resolutions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "player_engine",
		Name:      "resolutions_total",
		Help:      "Player resolution attempts by outcome.",
	}, []string{"outcome"})

	// ProviderLoads counts calls into the data provider by dataset.
	ProviderLoads = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "player_engine",
		Name:      "provider_loads_total",
		Help:      "Data provider invocations by dataset.",
	}, []string{"dataset"})

	// CacheHits and CacheMisses track memoization effectiveness.
	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "player_engine",
		Name:      "cache_hits_total",
		Help:      "Cache hits by cache name.",
	}, []string{"cache"})

	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "player_engine",
		Name:      "cache_misses_total",
		Help:      "Cache misses by cache name.",
	}, []string{"cache"})
)
