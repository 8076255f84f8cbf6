package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "forensic"

var (
	// analysesTotal counts completed analyses by kind
	analysesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "analyses_total",
		Help:      "Total analyses by kind",
	}, []string{"kind"})

	// analysisDuration tracks analysis latency
	analysisDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "analysis_duration_seconds",
		Help:      "Analysis duration in seconds",
		Buckets:   prometheus.ExponentialBuckets(0.00005, 2, 14), // 50µs to ~400ms
	}, []string{"kind"})

	verdictsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "verdicts_total",
		Help:      "Financial verdicts by level",
	}, []string{"level"})

	readabilityTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "readability_total",
		Help:      "Text readability verdicts",
	}, []string{"verdict"})

	simulationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "simulations_total",
		Help:      "Linguistic simulations by risk level",
	}, []string{"level"})

	// cacheLookups counts report cache lookups by result (hit, miss)
	cacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "cache",
		Name:      "lookups_total",
		Help:      "Report cache lookups by result",
	}, []string{"result"})

	// httpRequests counts handled requests by route and status class
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by route, method and status",
	}, []string{"route", "method", "status"})

	rateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "rate_limited_total",
		Help:      "Requests rejected by the rate limiter",
	})
)

// Analysis kinds
const (
	KindSolvency   = "solvency"
	KindIntegrity  = "integrity"
	KindQuality    = "quality"
	KindVerdict    = "verdict"
	KindReport     = "report"
	KindText       = "text"
	KindKeywords   = "keywords"
	KindSimulation = "simulation"
	KindBatch      = "batch"
)

// ObserveAnalysis records one analysis of kind that started at start.
func ObserveAnalysis(kind string, start time.Time) {
	analysesTotal.WithLabelValues(kind).Inc()
	analysisDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
}

func RecordVerdict(level string) {
	verdictsTotal.WithLabelValues(level).Inc()
}

func RecordReadability(verdict string) {
	readabilityTotal.WithLabelValues(verdict).Inc()
}

func RecordSimulation(level string) {
	simulationsTotal.WithLabelValues(level).Inc()
}

func RecordCacheLookup(hit bool) {
	if hit {
		cacheLookups.WithLabelValues("hit").Inc()
		return
	}
	cacheLookups.WithLabelValues("miss").Inc()
}

func RecordRequest(route, method, status string) {
	httpRequests.WithLabelValues(route, method, status).Inc()
}

func RecordRateLimited() {
	rateLimited.Inc()
}
