package watch

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/custodia-labs/biasctl/internal/logger"
)

type metrics struct {
	analyzed prometheus.Counter
	failed   prometheus.Counter
	score    prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		analyzed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "biasctl_watch_documents_analyzed_total",
			Help: "Documents uploaded and analyzed by the folder watcher",
		}),
		failed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "biasctl_watch_documents_failed_total",
			Help: "Documents the folder watcher could not upload or analyze",
		}),
		score: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "biasctl_watch_bias_score",
			Help:    "Overall bias score of documents analyzed by the folder watcher",
			Buckets: []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1},
		}),
	}
	if reg == nil {
		return m
	}
	m.analyzed = register(reg, m.analyzed)
	m.failed = register(reg, m.failed)
	m.score = register(reg, m.score)
	return m
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

// ServeMetrics exposes g on addr at /metrics until ctx is cancelled.
func ServeMetrics(ctx context.Context, addr string, g prometheus.Gatherer) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	logger.Info("Serving metrics on %s/metrics", addr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
