// Package metrics exposes the Prometheus collectors of the NFT pipeline.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "nft_grinder"

var (
	// ProviderRequests counts provider HTTP calls by chain, endpoint and outcome.
	ProviderRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "provider",
		Name:      "requests_total",
		Help:      "Total number of NFT provider requests",
	}, []string{"chain", "endpoint", "status"})

	ProviderRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "provider",
		Name:      "request_duration_seconds",
		Help:      "Latency of NFT provider requests",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}, []string{"chain", "endpoint"})

	// SchemaStops counts pages that ended pagination because ownedNfts was missing.
	SchemaStops = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "fetcher",
		Name:      "schema_stops_total",
		Help:      "Pagination runs stopped by an unexpected response schema",
	}, []string{"chain"})

	PagesFetched = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "fetcher",
		Name:      "pages_total",
		Help:      "Total number of getNFTsForOwner pages fetched",
	}, []string{"chain"})

	// PairOutcomes counts (wallet, chain) pairs by result: ok, failed.
	PairOutcomes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "orchestrator",
		Name:      "pairs_total",
		Help:      "Wallet/chain pairs processed by outcome",
	}, []string{"chain", "outcome"})

	RunDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "orchestrator",
		Name:      "run_duration_seconds",
		Help:      "Duration of multi-wallet fetch runs",
		Buckets:   prometheus.ExponentialBuckets(0.25, 2, 10),
	}, []string{"result"})

	ImageCacheLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "image_cache",
		Name:      "lookups_total",
		Help:      "Image URL cache lookups by result",
	}, []string{"result"})
)

var registerOnce sync.Once

// MustRegisterMetrics registers every collector with the default registry. Safe to call twice.
func MustRegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			ProviderRequests,
			ProviderRequestDuration,
			SchemaStops,
			PagesFetched,
			PairOutcomes,
			RunDuration,
			ImageCacheLookups,
		)
	})
}
