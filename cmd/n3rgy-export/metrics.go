package main

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics collects request and record counts for one export run. They are
// written out as a node-exporter textfile rather than served.
type Metrics struct {
	Registry        *prometheus.Registry
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	Records         *prometheus.GaugeVec
	LastSuccess     prometheus.Gauge
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "n3rgy_export_requests_total",
				Help: "Total number of n3rgy API requests by status code",
			},
			[]string{"code", "method"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "n3rgy_export_request_duration_seconds",
				Help:    "n3rgy API request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		Records: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "n3rgy_export_records",
				Help: "Number of records returned by the last run per energy and reading type",
			},
			[]string{"energy", "reading"},
		),
		LastSuccess: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "n3rgy_export_last_success_timestamp_seconds",
				Help: "Unix timestamp of the last successful export",
			},
		),
	}
}

// InstrumentRoundTripper wraps next with request counting and timing.
func (m *Metrics) InstrumentRoundTripper(next http.RoundTripper) http.RoundTripper {
	return promhttp.InstrumentRoundTripperCounter(m.RequestsTotal,
		promhttp.InstrumentRoundTripperDuration(m.RequestDuration, next))
}

// WriteTextfile writes all metrics to path in the Prometheus text format.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}
