// Package metrics exposes prometheus instrumentation for the upload engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// UploadsTotal counts finished simulated uploads by status (success, failure).
	UploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flowdrop_uploads_total",
			Help: "Total number of finished uploads",
		},
		[]string{"status"},
	)

	// FilesRejectedTotal counts candidates rejected at validation by reason.
	FilesRejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flowdrop_files_rejected_total",
			Help: "Total number of rejected file candidates",
		},
		[]string{"reason"},
	)

	// UploadBytesTotal accumulates the byte size of successfully uploaded files.
	UploadBytesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "flowdrop_upload_bytes_total",
			Help: "Total bytes of successfully uploaded files",
		},
	)

	// ActiveUploads tracks simulations currently in flight.
	ActiveUploads = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "flowdrop_active_uploads",
			Help: "Number of uploads currently in flight",
		},
	)

	// HTTPRequestsTotal counts HTTP requests by method, path, and status code.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flowdrop_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
)
