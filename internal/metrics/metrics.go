// Package metrics provides Prometheus metrics for the Lookout service.
// Scrape these at /metrics for Grafana dashboards and alerting.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lookout_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lookout_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Search Metrics
	SearchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lookout_searches_total",
			Help: "Total number of searches by item kind",
		},
		[]string{"kind"}, // "card", "keyword", "deck", "anything"
	)

	SearchMatches = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lookout_search_matches",
			Help:    "Number of matches returned per search",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100},
		},
		[]string{"kind"},
	)

	TranslationMissesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lookout_translation_misses_total",
			Help: "Matched items with no counterpart in the translation locale",
		},
		[]string{"kind"},
	)

	ChampionExpansionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lookout_champion_expansions_total",
			Help: "Champion tier expansions by outcome",
		},
		[]string{"outcome"}, // "tier2", "tier3", "ambiguous", "none"
	)

	// Catalog Metrics
	CatalogFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lookout_catalog_fetches_total",
			Help: "Catalog lookups by result",
		},
		[]string{"result"}, // "hit", "miss", "shared", "error", "canceled"
	)

	CatalogFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "lookout_catalog_fetch_duration_seconds",
			Help:    "Time taken to build a catalog snapshot",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	CatalogsCached = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "lookout_catalogs_cached",
			Help: "Number of catalog snapshots held in memory",
		},
	)

	DocumentFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lookout_document_fetches_total",
			Help: "Data Dragon document reads by source and result",
		},
		[]string{"source", "result"}, // source: "bundle", "redis", "http"; result: "hit", "miss", "error"
	)

	DataDragonRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lookout_datadragon_requests_total",
			Help: "Outbound Data Dragon HTTP requests by status code",
		},
		[]string{"status"},
	)

	// Guild Metrics
	GuildSettingUpdatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lookout_guild_setting_updates_total",
			Help: "Guild setting changes by setting",
		},
		[]string{"setting"}, // "prefix", "locale"
	)

	// Roll Metrics
	RollsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lookout_rolls_total",
			Help: "Random champion and deck rolls",
		},
		[]string{"kind"}, // "champions", "deck"
	)
)
