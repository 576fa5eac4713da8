package server

import (
	"errors"
	"net/http"

	"github.com/bastiangx/anaserve/pkg/dictionary"
	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var RequestCount = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: "anaserve",
	Subsystem: "server",
	Name:      "requests_total",
}, []string{"action", "outcome"})

var SolveDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "anaserve",
	Subsystem: "server",
	Name:      "solve_duration_seconds",
	Buckets:   prometheus.ExponentialBuckets(0.00005, 4, 8),
}, []string{"mode"})

var CacheHits = prometheus.NewCounter(prometheus.CounterOpts{
	Namespace: "anaserve",
	Subsystem: "server",
	Name:      "cache_hits_total",
})

var IndexEntries = prometheus.NewGauge(prometheus.GaugeOpts{
	Namespace: "anaserve",
	Subsystem: "dictionary",
	Name:      "entries",
})

var IndexWords = prometheus.NewGauge(prometheus.GaugeOpts{
	Namespace: "anaserve",
	Subsystem: "dictionary",
	Name:      "words",
})

// RegisterMetrics registers all server collectors with reg.
// Collectors that are already registered are left alone.
func RegisterMetrics(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{RequestCount, SolveDuration, CacheHits, IndexEntries, IndexWords} {
		if err := reg.Register(c); err != nil {
			var already prometheus.AlreadyRegisteredError
			if errors.As(err, &already) {
				continue
			}
			return err
		}
	}
	return nil
}

// ServeMetrics exposes reg on addr under /metrics in the background.
func ServeMetrics(addr string, reg *prometheus.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	go func() {
		log.Debugf("Serving metrics on %s", addr)
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Errorf("Metrics listener stopped: %v", err)
		}
	}()
}

func observeIndex(idx *dictionary.Index) {
	IndexEntries.Set(float64(idx.Len()))
	IndexWords.Set(float64(idx.WordCount()))
}
