// internal/services/stats_service.go
package services

import (
	"time"

	"github.com/textlens/TextLensHub/internal/models"
	"github.com/textlens/TextLensHub/internal/utils"
)

// StatsService tracks per-kind usage counters for the dashboard footer.
// All methods tolerate a nil receiver so stats stay optional.
type StatsService struct {
	metrics *utils.MetricsCollector
}

// KindStats is the snapshot of one analysis kind.
type KindStats struct {
	Requests      int64 `json:"requests"`
	Successes     int64 `json:"successes"`
	Failures      int64 `json:"failures"`
	Throttled     int64 `json:"throttled"`
	LastLatencyMs int64 `json:"last_latency_ms"`
}

// NewStatsService creates a stats service over the global collector.
func NewStatsService() *StatsService {
	return &StatsService{metrics: utils.GetMetricsCollector()}
}

// NewStatsServiceWithCollector creates a stats service over a private
// collector. Used by tests.
func NewStatsServiceWithCollector(metrics *utils.MetricsCollector) *StatsService {
	return &StatsService{metrics: metrics}
}

// RecordRequest counts one dispatched request.
func (s *StatsService) RecordRequest(kind models.AnalysisKind) {
	if s == nil {
		return
	}
	s.metrics.Counter("analysis." + string(kind) + ".requests").Inc()
}

// RecordSuccess counts one successful analysis and its latency.
func (s *StatsService) RecordSuccess(kind models.AnalysisKind, elapsed time.Duration) {
	if s == nil {
		return
	}
	s.metrics.Counter("analysis." + string(kind) + ".successes").Inc()
	s.metrics.ObserveLatency("analysis."+string(kind), elapsed)
}

// RecordFailure counts one failed analysis.
func (s *StatsService) RecordFailure(kind models.AnalysisKind) {
	if s == nil {
		return
	}
	s.metrics.Counter("analysis." + string(kind) + ".failures").Inc()
}

// RecordThrottled counts one throttle denial.
func (s *StatsService) RecordThrottled(kind models.AnalysisKind) {
	if s == nil {
		return
	}
	s.metrics.Counter("analysis." + string(kind) + ".throttled").Inc()
}

// Snapshot returns current stats for every kind.
func (s *StatsService) Snapshot() map[models.AnalysisKind]KindStats {
	snapshot := make(map[models.AnalysisKind]KindStats)
	if s == nil {
		return snapshot
	}

	counters := s.metrics.CounterSnapshot()
	for _, kind := range models.AllKinds() {
		prefix := "analysis." + string(kind)
		snapshot[kind] = KindStats{
			Requests:      counters[prefix+".requests"],
			Successes:     counters[prefix+".successes"],
			Failures:      counters[prefix+".failures"],
			Throttled:     counters[prefix+".throttled"],
			LastLatencyMs: s.metrics.LastLatency(prefix).Milliseconds(),
		}
	}
	return snapshot
}
