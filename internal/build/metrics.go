package build

import (
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	zxerrors "github.com/vango-dev/zx/internal/errors"
)

// MetricsConfig configures the builder metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "zx").
	Namespace string

	// Subsystem is the metrics subsystem (default: "build").
	Subsystem string

	// Buckets are the histogram buckets for per-file compile duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the builder metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "zx",
		Subsystem: "build",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics records builder activity.
//
// Metrics collected:
//   - zx_build_files_total: Counter of compiled files by result
//   - zx_build_file_duration_seconds: Histogram of per-file compile duration
//   - zx_build_errors_total: Counter of compile errors by error code
//   - zx_build_sourcemaps_published_total: Counter of uploaded source maps
type Metrics struct {
	filesTotal    *prometheus.CounterVec
	fileDuration  prometheus.Histogram
	errorsTotal   *prometheus.CounterVec
	mapsPublished prometheus.Counter
}

// NewMetrics registers the builder metrics.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		filesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Subsystem: config.Subsystem,
			Name:      "files_total",
			Help:      "Total number of .zx files compiled",
		}, []string{"result"}),
		fileDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: config.Namespace,
			Subsystem: config.Subsystem,
			Name:      "file_duration_seconds",
			Help:      "Time spent compiling a single .zx file",
			Buckets:   config.Buckets,
		}),
		errorsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Subsystem: config.Subsystem,
			Name:      "errors_total",
			Help:      "Total number of compile errors by error code",
		}, []string{"code"}),
		mapsPublished: factory.NewCounter(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Subsystem: config.Subsystem,
			Name:      "sourcemaps_published_total",
			Help:      "Total number of source maps uploaded",
		}),
	}
}

// observe records one compiled file. Safe on a nil receiver.
func (m *Metrics) observe(d time.Duration, err error) {
	if m == nil {
		return
	}
	m.fileDuration.Observe(d.Seconds())
	if err == nil {
		m.filesTotal.WithLabelValues("success").Inc()
		return
	}
	m.filesTotal.WithLabelValues("error").Inc()
	m.errorsTotal.WithLabelValues(errorCode(err)).Inc()
}

func (m *Metrics) published() {
	if m == nil {
		return
	}
	m.mapsPublished.Inc()
}

// errorCode keeps the errors label to the registered code set.
func errorCode(err error) string {
	var zerr *zxerrors.ZxError
	if errors.As(err, &zerr) && zerr.Code != "" {
		return zerr.Code
	}
	return "io"
}
