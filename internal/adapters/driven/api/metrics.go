package api

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// instrument wraps next with request counters and latency histograms.
func instrument(reg prometheus.Registerer, next http.RoundTripper) http.RoundTripper {
	requests := register(reg, prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "biasctl_api_requests_total",
			Help: "Total number of requests sent to the bias-detection API",
		},
		[]string{"code", "method"},
	))
	duration := register(reg, prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "biasctl_api_request_duration_seconds",
			Help:    "Time spent waiting for the bias-detection API",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"code", "method"},
	))
	inFlight := register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "biasctl_api_requests_in_flight",
		Help: "Requests currently waiting for the bias-detection API",
	}))

	return promhttp.InstrumentRoundTripperInFlight(inFlight,
		promhttp.InstrumentRoundTripperCounter(requests,
			promhttp.InstrumentRoundTripperDuration(duration, next)))
}

// register adds c to reg, reusing an identical collector that is already registered.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}
