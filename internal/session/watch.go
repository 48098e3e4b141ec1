package session

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-rod/rod/lib/proto"
)

// ResponseInfo is the metadata of one network response seen on the page.
type ResponseInfo struct {
	URL       string
	Status    int
	MIMEType  string
	RequestID proto.NetworkRequestID
	When      time.Time
}

type expectation struct {
	pattern string
	done    chan struct{}
	info    *ResponseInfo
}

// ResponseWatch matches registered URL expectations against the stream of
// network responses. Registering and waiting happen on the dispatcher
// goroutine; Observe is called from page event listeners.
type ResponseWatch struct {
	mu      sync.Mutex
	expects map[string]*expectation
}

func NewResponseWatch() *ResponseWatch {
	return &ResponseWatch{expects: make(map[string]*expectation)}
}

// Expect registers an expectation for a response whose URL contains pattern.
// Re-registering an id replaces the previous expectation.
func (w *ResponseWatch) Expect(id, pattern string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.expects[id] = &expectation{pattern: pattern, done: make(chan struct{})}
}

// Observe feeds one response into the watcher, fulfilling the first
// unfulfilled expectation it matches.
func (w *ResponseWatch) Observe(info ResponseInfo) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, exp := range w.expects {
		if exp.info != nil {
			continue
		}
		if exp.pattern != "" && !containsFold(info.URL, exp.pattern) {
			continue
		}
		copied := info
		exp.info = &copied
		close(exp.done)
	}
}

// Wait blocks until the expectation with the given id is fulfilled or the
// timeout elapses. A fulfilled expectation is consumed. Timeout errors wrap
// context.DeadlineExceeded.
func (w *ResponseWatch) Wait(ctx context.Context, id string, timeout time.Duration) (*ResponseInfo, error) {
	w.mu.Lock()
	exp, ok := w.expects[id]
	w.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("no response expectation registered with id %q", id)
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-exp.done:
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
		return nil, fmt.Errorf("no response matching %q within %s: %w",
			exp.pattern, timeout, context.DeadlineExceeded)
	}

	w.mu.Lock()
	delete(w.expects, id)
	w.mu.Unlock()
	return exp.info, nil
}

// Forget drops an expectation without waiting for it.
func (w *ResponseWatch) Forget(id string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.expects, id)
}

// Pending lists the ids of registered expectations.
func (w *ResponseWatch) Pending() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, 0, len(w.expects))
	for id := range w.expects {
		out = append(out, id)
	}
	return out
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// Reset drops every expectation, e.g. when a fresh session starts.
func (w *ResponseWatch) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.expects = make(map[string]*expectation)
}
