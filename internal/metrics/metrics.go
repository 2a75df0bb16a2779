// Package metrics holds the service's prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RecordsProduced = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "golf_edge_records_total",
		Help: "Arbitrage records produced, by mode",
	}, []string{"mode"})

	OffersSkipped = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "golf_edge_skipped_total",
		Help: "Quotes or offers the engine could not score, by reason",
	}, []string{"reason"})

	QuotesRejected = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "golf_edge_quotes_rejected_total",
		Help: "Raw quotes rejected while building snapshots",
	})

	PlaceFallbacks = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "golf_edge_place_fallbacks_total",
		Help: "Records priced with the blended place reference instead of a projection",
	})

	// Unlabelled: one series per event would never be released
	PositiveEntities = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "golf_edge_positive_entities",
		Help: "Entities with at least one positive edge in the latest report",
	})

	AnalysisLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "golf_edge_analysis_latency_seconds",
		Help:    "Time to build snapshots and run the engine for one request",
		Buckets: prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(
		RecordsProduced,
		OffersSkipped,
		QuotesRejected,
		PlaceFallbacks,
		PositiveEntities,
		AnalysisLatency,
	)
}
