// internal/metrics/collector.go
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "tokenview"

// MetricType names one of the collector's metrics
type MetricType string

const (
	FetchCounterType  MetricType = "fetch_counter"
	FetchDurationType MetricType = "fetch_duration"
	StaleCounterType  MetricType = "stale_counter"
	InflightGaugeType MetricType = "inflight_gauge"
)

// Collector owns the fetch metrics and the registry they are exported from.
// A nil *Collector is valid and records nothing.
type Collector struct {
	metrics  sync.Map
	registry *prometheus.Registry
}

// NewCollector creates a collector with its own registry
func NewCollector() *Collector {
	c := &Collector{registry: prometheus.NewRegistry()}
	c.initializeMetrics()
	return c
}

func (c *Collector) initializeMetrics() {
	metricsMap := map[MetricType]prometheus.Collector{
		FetchCounterType: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "fetches_total",
				Help:      "Completed fetches by mode and outcome reason",
			},
			[]string{"mode", "reason"},
		),
		FetchDurationType: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "fetch_duration_seconds",
				Help:      "Fetch duration in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.025, 2, 10),
			},
			[]string{"mode"},
		),
		StaleCounterType: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "stale_responses_total",
				Help:      "Responses discarded because a newer request was issued",
			},
			[]string{"mode"},
		),
		InflightGaugeType: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "inflight_requests",
				Help:      "Requests currently waiting on the network",
			},
		),
	}

	for metricType, metric := range metricsMap {
		c.metrics.Store(metricType, metric)
		c.registry.MustRegister(metric)
	}
}

// Registry exposes the underlying registry for handlers and tests
func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

// Reset clears every vector metric.
func (c *Collector) Reset() {
	if c == nil {
		return
	}
	c.metrics.Range(func(_, value interface{}) bool {
		switch m := value.(type) {
		case *prometheus.CounterVec:
			m.Reset()
		case *prometheus.HistogramVec:
			m.Reset()
		case prometheus.Gauge:
			m.Set(0)
		}
		return true
	})
}

// FetchStarted marks one request as in flight.
func (c *Collector) FetchStarted() {
	if g, ok := c.gauge(InflightGaugeType); ok {
		g.Inc()
	}
}

// ObserveFetch records a finished fetch and releases its in-flight slot.
func (c *Collector) ObserveFetch(mode, reason string, duration time.Duration) {
	if c == nil {
		return
	}
	if g, ok := c.gauge(InflightGaugeType); ok {
		g.Dec()
	}
	if counter, ok := c.metrics.Load(FetchCounterType); ok {
		if counterVec, ok := counter.(*prometheus.CounterVec); ok {
			counterVec.WithLabelValues(mode, reason).Inc()
		}
	}
	if durationMetric, ok := c.metrics.Load(FetchDurationType); ok {
		if histVec, ok := durationMetric.(*prometheus.HistogramVec); ok {
			histVec.WithLabelValues(mode).Observe(duration.Seconds())
		}
	}
}

// ObserveStale counts a discarded out-of-order response
func (c *Collector) ObserveStale(mode string) {
	if c == nil {
		return
	}
	if counter, ok := c.metrics.Load(StaleCounterType); ok {
		if counterVec, ok := counter.(*prometheus.CounterVec); ok {
			counterVec.WithLabelValues(mode).Inc()
		}
	}
}

func (c *Collector) gauge(t MetricType) (prometheus.Gauge, bool) {
	if c == nil {
		return nil, false
	}
	v, ok := c.metrics.Load(t)
	if !ok {
		return nil, false
	}
	g, ok := v.(prometheus.Gauge)
	return g, ok
}
