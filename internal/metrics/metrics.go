// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// KeyAllocationAttempts tracks how many draws an allocation needed.
	KeyAllocationAttempts = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "shortipy_key_allocation_attempts",
		Help:    "Number of candidate keys drawn per successful or failed allocation.",
		Buckets: []float64{1, 2, 3, 4, 8, 16, 32},
	})

	// KeyCollisionsTotal counts candidates rejected because the key already existed.
	KeyCollisionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shortipy_key_collisions_total",
		Help: "Total candidate keys discarded because they were already taken.",
	})

	// RedirectsTotal tracks short key resolutions by outcome.
	RedirectsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shortipy_redirects_total",
		Help: "Total short key resolution attempts.",
	}, []string{"status"})

	// AuthAttemptsTotal tracks login and token checks by outcome.
	AuthAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shortipy_auth_attempts_total",
		Help: "Total login and bearer token checks.",
	}, []string{"kind", "result"})

	// VersionRejectionsTotal counts requests refused for an unsupported API version.
	VersionRejectionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shortipy_version_rejections_total",
		Help: "Total requests rejected because of an unsupported Accept-Version.",
	}, []string{"path"})
)
