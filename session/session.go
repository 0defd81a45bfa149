package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"viralengine/config"
	"viralengine/types"
)

// Transport is the remote contract the session drives. *client.Client
// satisfies it; tests substitute fakes.
type Transport interface {
	Submit(ctx context.Context, req types.GenerationRequest) (*types.ProjectStatus, error)
	FetchStatus(ctx context.Context, projectID string) (*types.ProjectStatus, error)
}

// State represents the session state machine
type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
	StatePolling    State = "polling"
	StateCompleted  State = "completed"
	StateFailed     State = "failed"
)

// Terminal reports whether the state ends the session's lifecycle.
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateFailed
}

// ErrNotIdle is returned when Submit is called on a session that already
// owns a job.
var ErrNotIdle = errors.New("session: submit is only valid from idle")

// ErrCancelled is returned when the session was cancelled while the submit
// call was still in flight; the late response is discarded.
var ErrCancelled = errors.New("session: cancelled")

// LogEntry represents a single activity line with timestamp
type LogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
}

// Session owns one generation job's lifecycle from submission to terminal
// outcome. All state transitions happen under one mutex; network calls run
// outside the lock and an epoch counter invalidates results that arrive
// after cancellation.
type Session struct {
	mu sync.Mutex

	transport Transport
	interval  time.Duration

	state     State
	epoch     int
	request   types.GenerationRequest
	projectID string
	latest    *types.ProjectStatus
	resultURL string
	failure   *types.JobFailure
	pollErr   error
	poller    *Poller

	// Logs (ring buffer)
	logs    []LogEntry
	maxLogs int
}

// Snapshot is the presenter-facing view of the session at one instant.
type Snapshot struct {
	State     State
	Request   types.GenerationRequest
	ProjectID string
	Latest    *types.ProjectStatus
	ResultURL string
	Failure   string
	PollErr   string
	Logs      []LogEntry
}

// Option customizes a session.
type Option func(*Session)

// WithInterval overrides the fixed poll cadence. Used by tests.
func WithInterval(d time.Duration) Option {
	return func(s *Session) { s.interval = d }
}

// New creates an idle session bound to the given transport.
func New(transport Transport, opts ...Option) *Session {
	s := &Session{
		transport: transport,
		interval:  config.PollInterval,
		state:     StateIdle,
		maxLogs:   50, // Keep last 50 log entries
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit validates the request, sends it, and on success starts polling.
// Valid only from the idle state. A ValidationError never reaches the
// network; a transport failure leaves the session idle with nothing
// retained.
func (s *Session) Submit(ctx context.Context, req types.GenerationRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	if s.state != StateIdle {
		s.mu.Unlock()
		return ErrNotIdle
	}
	s.state = StateSubmitting
	s.request = req
	epoch := s.epoch
	s.addLogLocked(fmt.Sprintf("Submitting generation request: %q", req.Topic))
	s.mu.Unlock()

	status, err := s.transport.Submit(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.epoch != epoch || s.state != StateSubmitting {
		// Cancelled while the request was in flight; drop the response.
		return ErrCancelled
	}

	if err != nil {
		s.state = StateIdle
		s.request = types.GenerationRequest{}
		s.addLogLocked(fmt.Sprintf("Submission failed: %v", err))
		return err
	}

	s.latest = status
	s.projectID = status.ProjectID
	s.state = StatePolling
	s.addLogLocked(fmt.Sprintf("Project %s accepted (status=%s)", status.ProjectID, status.Status))

	s.poller = newPoller(s, s.transport, s.projectID, epoch, s.interval)
	s.poller.Start()
	return nil
}

// Cancel releases the poll timer and returns the session to idle without
// emitting an error. Valid from any non-terminal state; idle and terminal
// sessions are left untouched. A fetch still in flight when Cancel runs has
// its eventual result discarded.
func (s *Session) Cancel() {
	s.mu.Lock()
	if s.state == StateIdle || s.state.Terminal() {
		s.mu.Unlock()
		return
	}

	p := s.poller
	s.poller = nil
	s.epoch++
	s.state = StateIdle
	s.request = types.GenerationRequest{}
	s.projectID = ""
	s.latest = nil
	s.resultURL = ""
	s.failure = nil
	s.pollErr = nil
	s.addLogLocked("Generation cancelled")
	s.mu.Unlock()

	if p != nil {
		p.Stop()
	}
}

// State returns the current session state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Snapshot returns a copy of everything a presenter needs to render the
// session.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		State:     s.state,
		Request:   s.request,
		ProjectID: s.projectID,
		ResultURL: s.resultURL,
		Logs:      append([]LogEntry{}, s.logs...), // Copy slice
	}
	if s.latest != nil {
		latest := *s.latest
		snap.Latest = &latest
	}
	if s.failure != nil {
		snap.Failure = s.failure.Message
	}
	if s.pollErr != nil {
		snap.PollErr = s.pollErr.Error()
	}
	return snap
}

// applyPoll records one successfully fetched status, last-write-wins. It
// reports whether the poller should keep going. Results belonging to a
// cancelled epoch, or arriving when the session is no longer polling, are
// discarded.
func (s *Session) applyPoll(epoch int, status *types.ProjectStatus) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.epoch != epoch || s.state != StatePolling {
		return false
	}

	s.latest = status
	s.pollErr = nil

	switch status.Status {
	case types.StatusCompleted:
		s.resultURL = status.VideoURL
		s.state = StateCompleted
		s.poller = nil
		s.addLogLocked("Video ready: " + status.VideoURL)
		return false
	case types.StatusFailed:
		msg := status.Error
		if msg == "" {
			msg = types.FallbackFailureMessage
		}
		s.failure = &types.JobFailure{Message: msg}
		s.state = StateFailed
		s.poller = nil
		s.addLogLocked("Generation failed: " + msg)
		return false
	default:
		return true
	}
}

// notePollError records a transport-level failure during polling. It does
// not change the session state; the next tick proceeds normally.
func (s *Session) notePollError(epoch int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.epoch != epoch || s.state != StatePolling {
		return
	}
	s.pollErr = err
	s.addLogLocked(fmt.Sprintf("Status poll failed: %v (will retry)", err))
}

// addLogLocked appends a log entry. Caller must hold the lock.
func (s *Session) addLogLocked(message string) {
	s.logs = append(s.logs, LogEntry{Timestamp: time.Now(), Message: message})
	if len(s.logs) > s.maxLogs {
		s.logs = s.logs[len(s.logs)-s.maxLogs:]
	}
}
