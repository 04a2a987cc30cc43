// Package confirm provides the asynchronous user-confirmation port the
// reference rewriter is gated on: a bounded wait with a default-decline
// outcome, injected as a collaborator so the rewrite logic stays
// testable without any UI.
package confirm

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Request is one outstanding confirmation shown to the user.
type Request struct {
	ID      string `json:"id"`
	Summary string `json:"summary"`
}

// Confirmer asks the user a yes/no question and reports the answer.
// A decline, a timeout, and a cancelled context all report false; none
// of them is an error.
type Confirmer interface {
	Confirm(ctx context.Context, summary string) bool
}

// Static answers every confirmation the same way. Used by tests and by
// callers that have already collected consent out of band.
type Static struct {
	Answer bool
}

// Confirm returns the configured answer.
func (s Static) Confirm(context.Context, string) bool {
	return s.Answer
}

// Manager dispatches confirmation requests through a notify callback
// (e.g. an SSE event) and waits for an out-of-band Resolve call. If no
// answer arrives within the timeout the request auto-declines.
type Manager struct {
	timeout time.Duration
	notify  func(Request)

	mu      sync.Mutex
	pending map[string]chan bool
}

// NewManager creates a confirmation manager. notify is invoked once per
// request and must not block.
func NewManager(timeout time.Duration, notify func(Request)) *Manager {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Manager{
		timeout: timeout,
		notify:  notify,
		pending: make(map[string]chan bool),
	}
}

// Confirm publishes the request and blocks until it is resolved, times
// out, or the context is cancelled. Timeout and cancellation decline.
func (m *Manager) Confirm(ctx context.Context, summary string) bool {
	req := Request{ID: uuid.NewString(), Summary: summary}
	ch := make(chan bool, 1)

	m.mu.Lock()
	m.pending[req.ID] = ch
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		delete(m.pending, req.ID)
		m.mu.Unlock()
	}()

	if m.notify != nil {
		m.notify(req)
	}

	timer := time.NewTimer(m.timeout)
	defer timer.Stop()

	select {
	case answer := <-ch:
		return answer
	case <-timer.C:
		return false
	case <-ctx.Done():
		return false
	}
}

// Resolve answers an outstanding request. It reports false when the
// request is unknown or already answered.
func (m *Manager) Resolve(id string, accept bool) bool {
	m.mu.Lock()
	ch, ok := m.pending[id]
	if ok {
		delete(m.pending, id)
	}
	m.mu.Unlock()
	if !ok {
		return false
	}
	ch <- accept
	return true
}
