package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterVec(t *testing.T, c *Collector, mt MetricType) *prometheus.CounterVec {
	t.Helper()
	v, ok := c.metrics.Load(mt)
	require.True(t, ok)
	vec, ok := v.(*prometheus.CounterVec)
	require.True(t, ok)
	return vec
}

func TestObserveFetch(t *testing.T) {
	c := NewCollector()

	c.FetchStarted()
	c.FetchStarted()
	c.ObserveFetch("search", "none", 120*time.Millisecond)

	fetches := counterVec(t, c, FetchCounterType)
	assert.Equal(t, 1.0, testutil.ToFloat64(fetches.WithLabelValues("search", "none")))
	assert.Equal(t, 0.0, testutil.ToFloat64(fetches.WithLabelValues("search", "timeout")))

	g, ok := c.gauge(InflightGaugeType)
	require.True(t, ok)
	assert.Equal(t, 1.0, testutil.ToFloat64(g))
}

func TestObserveStale(t *testing.T) {
	c := NewCollector()
	c.ObserveStale("polling")
	c.ObserveStale("polling")

	assert.Equal(t, 2.0, testutil.ToFloat64(counterVec(t, c, StaleCounterType).WithLabelValues("polling")))

	c.Reset()
	assert.Equal(t, 0, testutil.CollectAndCount(counterVec(t, c, StaleCounterType)))
}

func TestNilCollectorIsNoop(t *testing.T) {
	var c *Collector
	assert.NotPanics(t, func() {
		c.FetchStarted()
		c.ObserveFetch("search", "none", time.Second)
		c.ObserveStale("search")
		c.Reset()
	})
	assert.Nil(t, c.Registry())
}

func TestHandlerExportsMetrics(t *testing.T) {
	c := NewCollector()
	c.ObserveFetch("search", "empty_result", 10*time.Millisecond)

	srv := httptest.NewServer(c.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `tokenview_fetches_total{mode="search",reason="empty_result"} 1`)
}
