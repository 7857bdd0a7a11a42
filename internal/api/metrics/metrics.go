// Package metrics defines all custom Prometheus metrics for the commerce
// API. It is the single source of truth for metric names, labels, and help
// strings; registration happens implicitly through promauto at import time.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "commerce"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "ok" or "rejected"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// ── Upload metrics ────────────────────────────────────────────────────────────

// UploadedFilesTotal counts files persisted by the upload pipeline.
// Label:
//   - strategy: "direct" or "resize"
var UploadedFilesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploaded_files_total",
		Help:      "Total number of files stored by the upload pipeline.",
	},
	[]string{"strategy"},
)

// UploadRejectedTotal counts uploads rejected before persistence.
// Label:
//   - reason: "bad_extension", "bad_mime_type", "too_large", "too_many_files"
var UploadRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upload_rejected_total",
		Help:      "Total number of uploads rejected by the filter, by reason.",
	},
	[]string{"reason"},
)

// UploadDuration measures how long a batch takes from filter pass to the last
// byte on disk.
// Label:
//   - strategy: "direct" or "resize"
var UploadDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upload_duration_seconds",
		Help:      "Duration of upload batch persistence, including transforms.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"strategy"},
)

// ── Cleanup metrics ───────────────────────────────────────────────────────────

// CleanupDeletedTotal counts background file deletions.
// Label:
//   - result: "ok" or "error"
var CleanupDeletedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cleanup_deleted_total",
		Help:      "Total number of background file deletions, labelled by result.",
	},
	[]string{"result"},
)

// CleanupQueueDepth tracks the number of paths waiting in the cleaner queue.
var CleanupQueueDepth = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "cleanup_queue_depth",
		Help:      "Current number of paths pending in the file cleaner queue.",
	},
)
