package main

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Service counters, exposed on /metrics.
var (
	metricUploadsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dashboard_uploads_total",
		Help: "CSV uploads accepted",
	})
	metricUploadFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dashboard_upload_failures_total",
		Help: "CSV uploads rejected at parse time",
	})
	metricRowsParsed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dashboard_rows_parsed_total",
		Help: "Listing rows parsed across all uploads",
	})
	metricExportsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_exports_total",
		Help: "Downloads served, by format",
	}, []string{"format"})
	metricLoginsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_logins_total",
		Help: "Login attempts, by result",
	}, []string{"result"})
	metricAnalysisCache = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_analysis_cache_total",
		Help: "Analysis cache lookups, by outcome",
	}, []string{"outcome"})
)

func registerMetrics() {
	prometheus.MustRegister(
		metricUploadsTotal,
		metricUploadFailures,
		metricRowsParsed,
		metricExportsTotal,
		metricLoginsTotal,
		metricAnalysisCache,
	)
}

func metricsHandler() http.Handler {
	return promhttp.Handler()
}
