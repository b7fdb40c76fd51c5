package pipeline

import (
	"context"
	"sync"

	"github.com/jonathan/nutriplan/internal/messages"
	"github.com/jonathan/nutriplan/internal/progress"
	"github.com/jonathan/nutriplan/internal/types"
)

// Status is the state of a Session.
type Status string

// Session states. Streaming and Validating are the in-flight states.
const (
	StatusIdle       Status = "idle"
	StatusStreaming  Status = "streaming"
	StatusValidating Status = "validating"
	StatusReady      Status = "ready"
	StatusFailed     Status = "failed"
)

// InFlight reports whether a generation attempt is running.
func (s Status) InFlight() bool {
	return s == StatusStreaming || s == StatusValidating
}

// Snapshot is a consistent copy of a session's state.
type Snapshot struct {
	Status   Status              `json:"status"`
	Progress progress.Progress   `json:"progress"`
	Result   *types.PlanResponse `json:"result,omitempty"`
	Error    string              `json:"error,omitempty"`
}

// Session holds the state a caller keeps between generation attempts: the in-flight
// flag, the latest progress and the current plan. A plan is replaced only by a newer
// successful attempt and cleared by a failed one.
type Session struct {
	aggregator *Aggregator

	mu       sync.Mutex
	status   Status
	progress progress.Progress
	result   *types.PlanResponse
	err      error
}

// NewSession creates an idle session backed by aggregator.
func NewSession(aggregator *Aggregator) *Session {
	return &Session{
		aggregator: aggregator,
		status:     StatusIdle,
	}
}

// Catalog returns the message table of the session's locale.
func (s *Session) Catalog() messages.Catalog {
	return s.aggregator.Catalog()
}

// Generate runs one attempt for profile. It returns ErrGenerationInFlight without
// side effects when another attempt has not finished yet.
func (s *Session) Generate(ctx context.Context, profile types.UserProfile, onProgress ProgressCallback) (*types.PlanResponse, error) {
	s.mu.Lock()
	if s.status.InFlight() {
		s.mu.Unlock()
		return nil, ErrGenerationInFlight
	}
	s.status = StatusStreaming
	s.progress = progress.Starting(s.aggregator.Catalog())
	s.err = nil
	s.mu.Unlock()

	plan, err := s.aggregator.Run(ctx, profile, func(event ProgressEvent) {
		s.mu.Lock()
		s.progress = event.Progress
		if event.Stage == progress.StageValidating {
			s.status = StatusValidating
		}
		s.mu.Unlock()
		emitProgress(onProgress, event)
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.status = StatusFailed
		s.result = nil
		s.err = err
		return nil, err
	}
	s.status = StatusReady
	s.result = plan
	return plan, nil
}

// Adopt makes plan the session's current result, as when a saved plan is loaded.
// It is ignored while an attempt is in flight.
func (s *Session) Adopt(plan *types.PlanResponse) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status.InFlight() || plan == nil {
		return false
	}
	s.status = StatusReady
	s.result = plan
	s.err = nil
	return true
}

// Snapshot returns the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{
		Status:   s.status,
		Progress: s.progress,
		Result:   s.result,
	}
	if s.err != nil {
		snap.Error = UserMessage(s.err, s.aggregator.Catalog())
	}
	return snap
}
