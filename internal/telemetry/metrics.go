/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package telemetry holds the scheduler's Prometheus metrics and tracing
// setup.
package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler exposes the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

var (
	// InvocationsTotal counts scheduler invocations.
	InvocationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "workscheduler_invocations_total",
		Help: "Number of scheduler invocations.",
	})

	// InvocationErrorsTotal counts invocations aborted before launching,
	// labelled by the stage that failed.
	InvocationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "workscheduler_invocation_errors_total",
		Help: "Number of invocations aborted by stage.",
	}, []string{"stage"})

	// LaunchesTotal counts per-config launch outcomes.
	LaunchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "workscheduler_launches_total",
		Help: "Number of workstation launch attempts by result.",
	}, []string{"result"})

	// SessionLookupErrorsTotal counts failed active-session listings.
	SessionLookupErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "workscheduler_session_lookup_errors_total",
		Help: "Number of failed per-studio session listings.",
	})

	// EligibleConfigs records how many configs survived filtering on the
	// most recent invocation.
	EligibleConfigs = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "workscheduler_eligible_configs",
		Help: "Configs eligible to launch on the last invocation.",
	})

	// HTTPRequestsTotal counts daemon HTTP requests.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "workscheduler_http_requests_total",
		Help: "Number of HTTP requests handled by the daemon.",
	}, []string{"method", "endpoint", "status"})

	// HTTPRequestDuration observes daemon HTTP request latency.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "workscheduler_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "endpoint", "status"})
)
