// internal/nlp/throttle.go
package nlp

import (
	"sync"
	"time"

	"github.com/textlens/TextLensHub/internal/models"
)

// ThrottleWindow is the fixed client-side gate between repeat analysis
// requests of the same kind.
const ThrottleWindow = 60 * time.Second

// globalKey collapses all kinds onto one window when the throttle runs
// in global mode.
const globalKey models.AnalysisKind = "*"

// Throttle tracks the last granted invocation per analysis kind and
// decides whether a new request may proceed. Acquisition and recording
// are atomic: no two concurrent calls for the same kind can both be
// granted within one window.
type Throttle struct {
	mu     sync.Mutex
	window time.Duration
	global bool
	last   map[models.AnalysisKind]time.Time
}

// NewThrottle creates a per-kind throttle with the standard window.
func NewThrottle() *Throttle {
	return NewThrottleWithWindow(ThrottleWindow)
}

// NewThrottleWithWindow creates a per-kind throttle with a custom window.
func NewThrottleWithWindow(window time.Duration) *Throttle {
	return &Throttle{
		window: window,
		last:   make(map[models.AnalysisKind]time.Time),
	}
}

// NewGlobalThrottle creates a throttle where all kinds share one window.
func NewGlobalThrottle(window time.Duration) *Throttle {
	t := NewThrottleWithWindow(window)
	t.global = true
	return t
}

// TryAcquire reports whether a request for kind may proceed at now.
// On grant it records now as the new last-invocation timestamp; on
// denial the recorded timestamp is left untouched and remaining is the
// time left in the current window.
func (t *Throttle) TryAcquire(kind models.AnalysisKind, now time.Time) (granted bool, remaining time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	key := kind
	if t.global {
		key = globalKey
	}

	last, exists := t.last[key]
	if exists {
		elapsed := now.Sub(last)
		if elapsed < t.window {
			return false, t.window - elapsed
		}
	}

	t.last[key] = now
	return true, 0
}

// Reset clears all recorded timestamps. Lifecycle is per panel session,
// not global, so a new session starts from a clean gate.
func (t *Throttle) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.last = make(map[models.AnalysisKind]time.Time)
}
