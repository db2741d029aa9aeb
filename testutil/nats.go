package testutil

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/c360/ringbuf/errors"
)

type subscription struct {
	subject string
	ctx     context.Context
	handler func(context.Context, []byte)
}

// MockNATSClient is an in-memory stand-in for natsclient.Client's
// Subscribe, Publish and Close. Subjects match with NATS wildcards ("*" for
// one token, ">" for the rest). Handlers run synchronously in Publish.
// Thread-safe for concurrent use from multiple goroutines.
type MockNATSClient struct {
	mu            sync.RWMutex
	messages      map[string][][]byte
	subscriptions []subscription
	closed        bool
}

// NewMockNATSClient creates a new mock NATS client.
func NewMockNATSClient() *MockNATSClient {
	return &MockNATSClient{
		messages: make(map[string][][]byte),
	}
}

// Publish records data and delivers it to every matching subscription.
func (c *MockNATSClient) Publish(ctx context.Context, subject string, data []byte) error {
	c.mu.Lock()

	if c.closed {
		c.mu.Unlock()
		return errors.WrapTransient(errors.ErrNotConnected, "MockNATSClient", "Publish", "check connection")
	}

	c.messages[subject] = append(c.messages[subject], data)

	// Copy handlers to avoid holding lock during callbacks
	var matched []subscription
	for _, sub := range c.subscriptions {
		if SubjectMatches(sub.subject, subject) {
			matched = append(matched, sub)
		}
	}
	c.mu.Unlock()

	// Per-message context with 30s timeout, like the real client.
	for _, sub := range matched {
		if sub.ctx.Err() != nil {
			continue
		}
		msgCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		sub.handler(msgCtx, data)
		cancel()
	}

	return nil
}

// Subscribe registers handler for subject until ctx is done or the client
// is closed.
func (c *MockNATSClient) Subscribe(ctx context.Context, subject string, handler func(context.Context, []byte)) error {
	if err := ctx.Err(); err != nil {
		return errors.WrapTransient(err, "MockNATSClient", "Subscribe", "check context")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return errors.WrapTransient(errors.ErrNotConnected, "MockNATSClient", "Subscribe", "check connection")
	}

	c.subscriptions = append(c.subscriptions, subscription{subject: subject, ctx: ctx, handler: handler})
	return nil
}

// SubscriptionCount returns the number of live subscriptions on subject.
func (c *MockNATSClient) SubscriptionCount(subject string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	n := 0
	for _, sub := range c.subscriptions {
		if sub.subject == subject && sub.ctx.Err() == nil {
			n++
		}
	}
	return n
}

// GetMessages returns a copy of all messages published on a subject.
func (c *MockNATSClient) GetMessages(subject string) [][]byte {
	c.mu.RLock()
	defer c.mu.RUnlock()

	msgs := c.messages[subject]
	if msgs == nil {
		return nil
	}
	result := make([][]byte, len(msgs))
	copy(result, msgs)
	return result
}

// GetMessageCount returns the number of messages on a subject.
func (c *MockNATSClient) GetMessageCount(subject string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.messages[subject])
}

// ClearAll clears all messages from all subjects.
func (c *MockNATSClient) ClearAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = make(map[string][][]byte)
}

// Close drops all subscriptions. It is idempotent.
func (c *MockNATSClient) Close(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.subscriptions = nil
	return nil
}

// IsClosed returns whether the client is closed.
func (c *MockNATSClient) IsClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

// SubjectMatches reports whether subject matches pattern under NATS
// wildcard rules.
func SubjectMatches(pattern, subject string) bool {
	pt := strings.Split(pattern, ".")
	st := strings.Split(subject, ".")

	for i, tok := range pt {
		if tok == ">" {
			return i == len(pt)-1 && len(st) > i
		}
		if i >= len(st) {
			return false
		}
		if tok != "*" && tok != st[i] {
			return false
		}
	}
	return len(pt) == len(st)
}

// WaitForSubscription waits until subject has at least one live subscriber.
func WaitForSubscription(t *testing.T, client *MockNATSClient, subject string, timeout time.Duration) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for client.SubscriptionCount(subject) == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("timeout waiting for a subscription on %s", subject)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

// WaitForMessageCount waits for a specific number of messages (with timeout).
func WaitForMessageCount(t *testing.T, client *MockNATSClient, subject string, count int, timeout time.Duration) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()

	for {
		if client.GetMessageCount(subject) >= count {
			return
		}
		select {
		case <-ctx.Done():
			got := client.GetMessageCount(subject)
			t.Fatalf("timeout waiting for %d messages on subject %s (got %d)", count, subject, got)
			return
		case <-ticker.C:
		}
	}
}
