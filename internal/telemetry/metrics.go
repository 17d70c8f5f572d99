package telemetry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"benchsweep/internal/benchmark"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics collects sweep metrics on a private registry so that textfile
// exports only carry benchsweep series. It implements benchmark.Progress.
type Metrics struct {
	registry *prometheus.Registry

	Invocations *prometheus.CounterVec
	Samples     prometheus.Histogram
	Mean        *prometheus.GaugeVec
	Aborts      prometheus.Counter
}

// NewMetrics creates and registers all sweep metrics
func NewMetrics() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.Invocations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "benchsweep_invocations_total",
			Help: "Total number of successful invocations of the program under test",
		},
		[]string{"phase"},
	)

	m.Samples = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "benchsweep_sample_microseconds",
			Help:    "Measured execution times reported by the program under test",
			Buckets: prometheus.ExponentialBuckets(1, 4, 12),
		},
	)

	m.Mean = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "benchsweep_mean_microseconds",
			Help: "Trimmed mean execution time per parameter value",
		},
		[]string{"n"},
	)

	m.Aborts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "benchsweep_aborts_total",
			Help: "Number of interrupted sweeps",
		},
	)

	m.registry.MustRegister(m.Invocations, m.Samples, m.Mean, m.Aborts)
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Before(benchmark.Invocation) {}

func (m *Metrics) After(inv benchmark.Invocation, us float64) {
	m.Invocations.WithLabelValues(inv.Phase.String()).Inc()
	if inv.Phase == benchmark.PhaseMeasure {
		m.Samples.Observe(us)
	}
}

func (m *Metrics) Done(run benchmark.ParameterRun) {
	stats, err := benchmark.Reduce(run.Samples)
	if err != nil {
		return
	}
	m.Mean.WithLabelValues(strconv.Itoa(run.Param)).Set(stats.Average)
}

func (m *Metrics) Aborted(int) {
	m.Aborts.Inc()
}

// WriteTextfile writes the current metrics in the text exposition format,
// for pickup by the node exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}

// Handler returns the Prometheus HTTP handler for this registry
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// MetricsServer serves /metrics while a sweep runs.
type MetricsServer struct {
	srv  *http.Server
	addr net.Addr
}

// StartMetricsServer binds addr and serves the metrics in the background.
// Bind errors are returned immediately.
func StartMetricsServer(addr string, m *Metrics) (*MetricsServer, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	s := &MetricsServer{
		srv:  &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second},
		addr: ln.Addr(),
	}

	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Metrics server stopped", "error", err)
		}
	}()

	slog.Info("Serving metrics", "addr", s.addr.String())
	return s, nil
}

// Addr returns the address the server is listening on.
func (s *MetricsServer) Addr() string {
	return s.addr.String()
}

// Shutdown stops the server, waiting for in-flight scrapes until ctx expires.
func (s *MetricsServer) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
