// Package metrics exposes Prometheus collectors for the scrape pipeline.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	pipelineRunsTotal      *prometheus.CounterVec
	candidatesTotal        *prometheus.CounterVec
	recordsNormalizedTotal *prometheus.CounterVec
	recordsRejectedTotal   *prometheus.CounterVec
	recordsInsertedTotal   *prometheus.CounterVec
	duplicatesSkippedTotal *prometheus.CounterVec
	crawlDurationSeconds   *prometheus.HistogramVec

	once sync.Once
)

// Init registers the collectors on the default registry. Safe to call more
// than once.
func Init() {
	once.Do(func() {
		pipelineRunsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scraper_pipeline_runs_total",
				Help: "Pipeline runs, labeled by listing kind and terminal state.",
			},
			[]string{"kind", "state"},
		)
		candidatesTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scraper_candidates_total",
				Help: "Raw candidates extracted from crawl markdown, by kind.",
			},
			[]string{"kind"},
		)
		recordsNormalizedTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scraper_records_normalized_total",
				Help: "Candidates that passed coercion, by kind.",
			},
			[]string{"kind"},
		)
		recordsRejectedTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scraper_records_rejected_total",
				Help: "Candidates dropped during normalization, by kind and field.",
			},
			[]string{"kind", "field"},
		)
		recordsInsertedTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scraper_records_inserted_total",
				Help: "Records persisted, by kind.",
			},
			[]string{"kind"},
		)
		duplicatesSkippedTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scraper_duplicates_skipped_total",
				Help: "Records skipped because their uniqueness key already existed, by kind.",
			},
			[]string{"kind"},
		)
		crawlDurationSeconds = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "scraper_crawl_duration_seconds",
				Help:    "Wall time of the crawl stage, by kind.",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"kind"},
		)
	})
}

// RecordRun increments the run counter for a terminal state.
func RecordRun(kind, state string) {
	if pipelineRunsTotal != nil {
		pipelineRunsTotal.WithLabelValues(kind, state).Inc()
	}
}

// RecordCandidates adds extracted candidate counts.
func RecordCandidates(kind string, n int) {
	if candidatesTotal != nil && n > 0 {
		candidatesTotal.WithLabelValues(kind).Add(float64(n))
	}
}

// RecordNormalized adds accepted record counts.
func RecordNormalized(kind string, n int) {
	if recordsNormalizedTotal != nil && n > 0 {
		recordsNormalizedTotal.WithLabelValues(kind).Add(float64(n))
	}
}

// RecordRejection counts one normalization rejection.
func RecordRejection(kind, field string) {
	if recordsRejectedTotal != nil {
		recordsRejectedTotal.WithLabelValues(kind, field).Inc()
	}
}

// RecordInserted adds persisted record counts.
func RecordInserted(kind string, n int) {
	if recordsInsertedTotal != nil && n > 0 {
		recordsInsertedTotal.WithLabelValues(kind).Add(float64(n))
	}
}

// RecordDuplicates adds duplicate-skip counts.
func RecordDuplicates(kind string, n int) {
	if duplicatesSkippedTotal != nil && n > 0 {
		duplicatesSkippedTotal.WithLabelValues(kind).Add(float64(n))
	}
}

// ObserveCrawlDuration records the crawl stage latency.
func ObserveCrawlDuration(kind string, d time.Duration) {
	if crawlDurationSeconds != nil {
		crawlDurationSeconds.WithLabelValues(kind).Observe(d.Seconds())
	}
}
