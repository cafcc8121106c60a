// Package metrics records toast lifecycle metrics with Prometheus.
//
//	obs := metrics.Prometheus(metrics.WithNamespace("myapp"))
//	t := toast.New(toast.WithObserver(obs))
//	http.Handle("/metrics", promhttp.Handler())
//
// Metrics collected:
//   - crispy_toasts_enqueued_total: toasts shown
//   - crispy_toasts_dismissed_total{source}: toasts hidden, by timer or manually
//   - crispy_toasts_removed_total: toasts dropped after their exit transition
//   - crispy_toasts_active: toasts currently in a store
//   - crispy_toast_visible_seconds: time from enqueue to dismissal
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/vango-dev/crispy/pkg/toast"
)

// Config configures the Prometheus observer.
type Config struct {
	// Namespace is the metrics namespace (default: "crispy").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for visible time.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// Option configures the Prometheus observer.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) Option {
	return func(c *Config) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

func defaultConfig() Config {
	return Config{
		Namespace: "crispy",
		Buckets:   []float64{0.3, 0.5, 1, 2, 3, 5, 10, 30},
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Observer is a toast.Observer that updates Prometheus metrics.
type Observer struct {
	enqueued  prometheus.Counter
	dismissed *prometheus.CounterVec
	removed   prometheus.Counter
	active    prometheus.Gauge
	visible   prometheus.Histogram
}

// Prometheus creates an observer and registers its metrics.
// Registering twice on the same registry panics, as promauto does.
func Prometheus(opts ...Option) *Observer {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Observer{
		enqueued: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "toasts_enqueued_total",
			Help:        "Total number of toasts shown",
			ConstLabels: config.ConstLabels,
		}),

		dismissed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "toasts_dismissed_total",
			Help:        "Total number of toasts hidden, by what hid them",
			ConstLabels: config.ConstLabels,
		}, []string{"source"}),

		removed: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "toasts_removed_total",
			Help:        "Total number of toasts removed after their exit transition",
			ConstLabels: config.ConstLabels,
		}),

		active: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "toasts_active",
			Help:        "Number of toasts currently held by a provider",
			ConstLabels: config.ConstLabels,
		}),

		visible: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "toast_visible_seconds",
			Help:        "Time from enqueue to dismissal in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),
	}
}

// Observe implements toast.Observer.
func (o *Observer) Observe(e toast.Event) {
	switch e.Kind {
	case toast.EventEnqueued:
		o.enqueued.Inc()
		o.active.Inc()
	case toast.EventDismissed:
		o.dismissed.WithLabelValues(e.Source.String()).Inc()
		o.visible.Observe(e.At.Sub(e.Record.CreatedAt).Seconds())
	case toast.EventRemoved:
		o.removed.Inc()
		o.active.Dec()
	}
}
