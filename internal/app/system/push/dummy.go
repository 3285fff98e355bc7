// internal/app/system/push/dummy.go
package push

import (
	"context"
	"sync"
)

// DummySender records notifications instead of delivering them.
// Used in tests and when no relay URL is configured.
type DummySender struct {
	mu   sync.Mutex
	sent []Notification
}

// NewDummySender returns an empty recording sender.
func NewDummySender() *DummySender {
	return &DummySender{}
}

// Send records the notification and reports one device reached.
func (s *DummySender) Send(ctx context.Context, n Notification) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, n)
	return Result{Sent: 1}, nil
}

// Sent returns a copy of everything recorded so far.
func (s *DummySender) Sent() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Notification, len(s.sent))
	copy(out, s.sent)
	return out
}

// Reset clears the recording.
func (s *DummySender) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = nil
}
