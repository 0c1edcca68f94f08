// Package metrics holds the prometheus collectors of the catalog.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	CacheHitsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "teerth_cache_hits_total",
		Help: "Cache lookups answered from a fresh entry",
	}, []string{"key"})
	CacheMissesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "teerth_cache_misses_total",
		Help: "Cache lookups that invoked the producer",
	}, []string{"key"})
	CacheStaleServedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "teerth_cache_stale_served_total",
		Help: "Expired entries served because the producer failed",
	}, []string{"key"})
	CacheWriteFailTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "teerth_cache_write_fail_total",
		Help: "Cache writes rejected by the key-value store",
	}, []string{"key"})
	SheetFetchTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "teerth_sheet_fetch_total",
		Help: "Spreadsheet range fetch attempts",
	}, []string{"range"})
	SheetFetchFailTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "teerth_sheet_fetch_fail_total",
		Help: "Spreadsheet range fetch failures by kind",
	}, []string{"range", "kind"})
	SheetFetchDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "teerth_sheet_fetch_duration_ms",
		Help:    "Spreadsheet range fetch duration in milliseconds",
		Buckets: []float64{50, 100, 200, 500, 1000, 2000, 5000, 10000},
	})
)

func init() {
	prometheus.MustRegister(CacheHitsTotal)
	prometheus.MustRegister(CacheMissesTotal)
	prometheus.MustRegister(CacheStaleServedTotal)
	prometheus.MustRegister(CacheWriteFailTotal)
	prometheus.MustRegister(SheetFetchTotal)
	prometheus.MustRegister(SheetFetchFailTotal)
	prometheus.MustRegister(SheetFetchDurationMs)
}

// Handler exposes the registered collectors for scraping.
func Handler() http.Handler { return promhttp.Handler() }
