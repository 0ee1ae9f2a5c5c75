// SPDX-License-Identifier: MIT
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	contentScansTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tailcfg_content_scans_total",
		Help: "Total number of content scans by outcome",
	}, []string{"outcome"}) // outcome=success|failure

	contentFilesMatched = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tailcfg_content_files_matched",
		Help: "Number of files matched by the content patterns in the last scan",
	})

	contentCandidates = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tailcfg_content_candidates",
		Help: "Number of distinct class candidates found in the last extraction",
	})

	contentScanDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tailcfg_content_scan_duration_seconds",
		Help:    "Time spent walking the content root",
		Buckets: prometheus.DefBuckets,
	})
)

// RecordContentScan records one scan. files is ignored when err is non-nil.
func RecordContentScan(files int, duration time.Duration, err error) {
	contentScanDurationSeconds.Observe(duration.Seconds())
	if err != nil {
		contentScansTotal.WithLabelValues(OutcomeFailure).Inc()
		return
	}
	contentScansTotal.WithLabelValues(OutcomeSuccess).Inc()
	contentFilesMatched.Set(float64(files))
}

func RecordContentCandidates(n int) { contentCandidates.Set(float64(n)) }
