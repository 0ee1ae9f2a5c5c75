// SPDX-License-Identifier: MIT
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeNoop    = "noop"
)

var (
	configLoadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tailcfg_config_loads_total",
		Help: "Total number of configuration loads by outcome",
	}, []string{"outcome"}) // outcome=success|failure

	configReloadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tailcfg_config_reloads_total",
		Help: "Total number of configuration reloads by outcome",
	}, []string{"outcome"}) // outcome=success|failure|noop

	configValidationErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tailcfg_config_validation_errors_total",
		Help: "Total number of configuration validation errors",
	})

	configLastReloadTimestamp = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tailcfg_config_last_reload_timestamp_seconds",
		Help: "Unix time of the last successful configuration reload",
	})
)

func RecordConfigLoad(ok bool) {
	if ok {
		configLoadsTotal.WithLabelValues(OutcomeSuccess).Inc()
		return
	}
	configLoadsTotal.WithLabelValues(OutcomeFailure).Inc()
}

func RecordConfigReload(outcome string) {
	configReloadsTotal.WithLabelValues(outcome).Inc()
	if outcome == OutcomeSuccess {
		configLastReloadTimestamp.SetToCurrentTime()
	}
}

func IncConfigValidationError() { configValidationErrors.Inc() }
