// internal/utils/metrics.go
package utils

import (
	"sync"
	"sync/atomic"
	"time"
)

// MetricsCollector keeps named counters and last-observed latencies.
// Counters use atomic operations for thread-safe updates.
type MetricsCollector struct {
	counters  map[string]*Counter
	latencies map[string]*latency

	mu sync.RWMutex
}

// Counter is a monotonically increasing metric.
type Counter struct {
	value int64
}

// Inc increments the counter by one.
func (c *Counter) Inc() {
	atomic.AddInt64(&c.value, 1)
}

// Value returns the current count.
func (c *Counter) Value() int64 {
	return atomic.LoadInt64(&c.value)
}

type latency struct {
	lastNanos int64
}

var (
	globalMetrics *MetricsCollector
	metricsOnce   sync.Once
)

// GetMetricsCollector returns the global metrics collector
func GetMetricsCollector() *MetricsCollector {
	metricsOnce.Do(func() {
		globalMetrics = NewMetricsCollector()
	})
	return globalMetrics
}

// NewMetricsCollector creates an empty collector. Tests use their own
// instance instead of the global one.
func NewMetricsCollector() *MetricsCollector {
	return &MetricsCollector{
		counters:  make(map[string]*Counter),
		latencies: make(map[string]*latency),
	}
}

// Counter returns the named counter, creating it on first use.
func (m *MetricsCollector) Counter(name string) *Counter {
	m.mu.RLock()
	c, exists := m.counters[name]
	m.mu.RUnlock()
	if exists {
		return c
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if c, exists = m.counters[name]; exists {
		return c
	}
	c = &Counter{}
	m.counters[name] = c
	return c
}

// ObserveLatency records the most recent duration for a named operation.
func (m *MetricsCollector) ObserveLatency(name string, d time.Duration) {
	m.mu.RLock()
	l, exists := m.latencies[name]
	m.mu.RUnlock()
	if !exists {
		m.mu.Lock()
		if l, exists = m.latencies[name]; !exists {
			l = &latency{}
			m.latencies[name] = l
		}
		m.mu.Unlock()
	}
	atomic.StoreInt64(&l.lastNanos, int64(d))
}

// LastLatency returns the most recent duration for a named operation,
// or zero if none was observed.
func (m *MetricsCollector) LastLatency(name string) time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if l, exists := m.latencies[name]; exists {
		return time.Duration(atomic.LoadInt64(&l.lastNanos))
	}
	return 0
}

// CounterSnapshot returns all counter values by name.
func (m *MetricsCollector) CounterSnapshot() map[string]int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snapshot := make(map[string]int64, len(m.counters))
	for name, c := range m.counters {
		snapshot[name] = c.Value()
	}
	return snapshot
}
