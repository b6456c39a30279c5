// internal/services/analysis_service.go
package services

import (
	"context"
	"errors"
	"sync"
	"time"

	apperrors "github.com/textlens/TextLensHub/internal/errors"
	"github.com/textlens/TextLensHub/internal/models"
	"github.com/textlens/TextLensHub/internal/nlp"
	"github.com/textlens/TextLensHub/internal/utils"
)

// ErrStaleResponse marks a response that resolved after a newer request
// for the same kind had already been dispatched. Stale responses are
// discarded instead of racing the newer one (last-write-wins in the old
// dashboard was an accident, not a contract).
var ErrStaleResponse = errors.New("analysis response superseded by a newer request")

// ActivityEvent is one analysis lifecycle event for the live feed.
type ActivityEvent struct {
	Kind       models.AnalysisKind `json:"kind"`
	Status     string              `json:"status"`
	Message    string              `json:"message,omitempty"`
	DurationMs int64               `json:"duration_ms,omitempty"`
	Timestamp  time.Time           `json:"timestamp"`
}

// Activity statuses.
const (
	ActivityStarted   = "started"
	ActivityCompleted = "completed"
	ActivityFailed    = "failed"
	ActivityThrottled = "throttled"
)

// ActivityNotifier receives lifecycle events. The WebSocket hub
// implements it; a nil notifier disables the feed.
type ActivityNotifier interface {
	NotifyActivity(event ActivityEvent)
}

// AnalysisService runs the full request pipeline for one submission:
// validation, throttle gate, dispatch, normalization. All five failure
// classes surface as classified errors; none are swallowed.
type AnalysisService struct {
	client   *nlp.Client
	throttle *nlp.Throttle
	stats    *StatsService
	notifier ActivityNotifier

	// now is replaceable in tests.
	now func() time.Time

	mu  sync.Mutex
	seq map[models.AnalysisKind]uint64
}

// NewAnalysisService wires the pipeline. stats may be nil.
func NewAnalysisService(client *nlp.Client, throttle *nlp.Throttle, stats *StatsService) *AnalysisService {
	return &AnalysisService{
		client:   client,
		throttle: throttle,
		stats:    stats,
		now:      time.Now,
		seq:      make(map[models.AnalysisKind]uint64),
	}
}

// SetNotifier attaches the live activity feed.
func (s *AnalysisService) SetNotifier(notifier ActivityNotifier) {
	s.notifier = notifier
}

// InFlight reports whether a request for kind is currently pending.
func (s *AnalysisService) InFlight(kind models.AnalysisKind) bool {
	return s.client.InFlight(kind)
}

// nextSeq hands out the dispatch sequence number for a kind.
func (s *AnalysisService) nextSeq(kind models.AnalysisKind) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq[kind]++
	return s.seq[kind]
}

func (s *AnalysisService) currentSeq(kind models.AnalysisKind) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq[kind]
}

func (s *AnalysisService) notify(event ActivityEvent) {
	if s.notifier != nil {
		event.Timestamp = s.now()
		s.notifier.NotifyActivity(event)
	}
}

// Analyze runs one submission end to end and returns the normalized
// result. Validation runs before the throttle gate so invalid input
// never consumes a throttle slot; the gate runs before dispatch so a
// denial never reaches the network.
func (s *AnalysisService) Analyze(ctx context.Context, kind models.AnalysisKind, text string) (*models.AnalysisResult, error) {
	logger := utils.GetLogger()

	if err := nlp.Validate(text); err != nil {
		return nil, err
	}

	granted, remaining := s.throttle.TryAcquire(kind, s.now())
	if !granted {
		s.stats.RecordThrottled(kind)
		s.notify(ActivityEvent{Kind: kind, Status: ActivityThrottled})
		return nil, apperrors.NewThrottledError(remaining.Milliseconds())
	}

	seq := s.nextSeq(kind)
	s.stats.RecordRequest(kind)
	s.notify(ActivityEvent{Kind: kind, Status: ActivityStarted})

	start := s.now()
	raw, err := s.client.Analyze(ctx, kind, text)
	elapsed := s.now().Sub(start)

	if err != nil {
		s.stats.RecordFailure(kind)
		s.notify(ActivityEvent{
			Kind:       kind,
			Status:     ActivityFailed,
			Message:    nlp.UserMessage(err),
			DurationMs: elapsed.Milliseconds(),
		})
		return nil, err
	}

	// A newer dispatch for this kind makes this response stale.
	if s.currentSeq(kind) != seq {
		logger.Warnf("discarding stale response: kind=%s seq=%d", kind, seq)
		return nil, ErrStaleResponse
	}

	result, err := nlp.Normalize(kind, raw)
	if err != nil {
		s.stats.RecordFailure(kind)
		s.notify(ActivityEvent{
			Kind:       kind,
			Status:     ActivityFailed,
			Message:    nlp.UserMessage(err),
			DurationMs: elapsed.Milliseconds(),
		})
		return nil, err
	}

	s.stats.RecordSuccess(kind, elapsed)
	s.notify(ActivityEvent{
		Kind:       kind,
		Status:     ActivityCompleted,
		DurationMs: elapsed.Milliseconds(),
	})

	return result, nil
}
