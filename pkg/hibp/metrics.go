package hibp

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pwnwatch",
			Subsystem: "hibp",
			Name:      "requests_total",
			Help:      "API requests by endpoint and normalized outcome.",
		},
		[]string{"endpoint", "outcome"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "pwnwatch",
			Subsystem: "hibp",
			Name:      "request_duration_seconds",
			Help:      "Latency of API requests that reached the server.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)
)

const (
	outcomeOK        = "ok"
	outcomeNotFound  = "not_found"
	outcomeTransport = "transport_error"
	outcomeDecode    = "decode_error"
)
