// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package metrics owns the Prometheus collectors of the server. Collectors
// live in a private registry so tests can build independent instances.
//
// All recording methods are safe on a nil *Metrics, which records nothing.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "safeher"

// Result label values.
const (
	ResultOK       = "ok"
	ResultConflict = "conflict"
	ResultInvalid  = "invalid"
	ResultNotFound = "not_found"
	ResultError    = "error"
)

type Metrics struct {
	registry *prometheus.Registry

	httpInFlight        prometheus.Gauge
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	registrations    *prometheus.CounterVec
	qrRenderFailures prometheus.Counter
	scans            *prometheus.CounterVec
	adminLogins      *prometheus.CounterVec
	alertsCreated    *prometheus.CounterVec
	alertsResolved   prometheus.Counter
	storageUp        prometheus.Gauge
	buildInfo        *prometheus.GaugeVec
}

// New creates the collectors and registers them, along with the Go runtime
// and process collectors, in a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_in_flight_requests",
			Help:      "In-flight HTTP requests.",
		}),
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"method", "route", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latencies in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "identity_registrations_total",
			Help:      "Identity registrations by result.",
		}, []string{"result"}),
		qrRenderFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "qr_render_failures_total",
			Help:      "QR images that could not be rendered.",
		}),
		scans: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "qr_scans_total",
			Help:      "Admin QR scans by result.",
		}, []string{"result"}),
		adminLogins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "admin_logins_total",
			Help:      "Admin login attempts by result.",
		}, []string{"result"}),
		alertsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alerts_created_total",
			Help:      "Emergency alerts created by source.",
		}, []string{"source"}),
		alertsResolved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alerts_resolved_total",
			Help:      "Resolve operations applied to alerts.",
		}),
		storageUp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "storage_up",
			Help:      "1 when the last storage ping succeeded.",
		}),
		buildInfo: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "build_info",
			Help:      "Build information.",
		}, []string{"version", "commit"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpInFlight,
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.registrations,
		m.qrRenderFailures,
		m.scans,
		m.adminLogins,
		m.alertsCreated,
		m.alertsResolved,
		m.storageUp,
		m.buildInfo,
	)

	return m
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) SetBuildInfo(version, commit string) {
	if m == nil {
		return
	}
	m.buildInfo.WithLabelValues(version, commit).Set(1)
}

// RequestStarted increments the in-flight gauge and returns the function
// that records the finished request.
func (m *Metrics) RequestStarted() func(method, route, status string) {
	if m == nil {
		return func(string, string, string) {}
	}

	start := time.Now()
	m.httpInFlight.Inc()
	return func(method, route, status string) {
		m.httpInFlight.Dec()
		m.httpRequestDuration.WithLabelValues(method, route, status).Observe(time.Since(start).Seconds())
		m.httpRequestsTotal.WithLabelValues(method, route, status).Inc()
	}
}

func (m *Metrics) Registration(result string) {
	if m == nil {
		return
	}
	m.registrations.WithLabelValues(result).Inc()
}

func (m *Metrics) QRRenderFailed() {
	if m == nil {
		return
	}
	m.qrRenderFailures.Inc()
}

func (m *Metrics) Scan(result string) {
	if m == nil {
		return
	}
	m.scans.WithLabelValues(result).Inc()
}

func (m *Metrics) AdminLogin(result string) {
	if m == nil {
		return
	}
	m.adminLogins.WithLabelValues(result).Inc()
}

func (m *Metrics) AlertCreated(source string) {
	if m == nil {
		return
	}
	m.alertsCreated.WithLabelValues(source).Inc()
}

func (m *Metrics) AlertResolved() {
	if m == nil {
		return
	}
	m.alertsResolved.Inc()
}

func (m *Metrics) SetStorageUp(up bool) {
	if m == nil {
		return
	}
	if up {
		m.storageUp.Set(1)
		return
	}
	m.storageUp.Set(0)
}
