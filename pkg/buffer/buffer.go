package buffer

import (
	"context"
	"time"
)

// Buffer is a thread-safe FIFO of at most Capacity items with a fixed
// overflow policy.
type Buffer[T any] interface {
	// Write adds an item at the newest end. What happens on a full buffer
	// depends on the overflow policy.
	Write(item T) error

	// WriteWithContext is Write that, under the Block policy, gives up when
	// ctx is done. Other policies never wait and ignore ctx.
	WriteWithContext(ctx context.Context, item T) error

	// WriteWithTimeout is WriteWithContext with a deadline of timeout.
	WriteWithTimeout(item T, timeout time.Duration) error

	// Read removes and returns the oldest item. ok is false if the buffer
	// is empty.
	Read() (item T, ok bool)

	// ReadBatch removes and returns up to max items, oldest first.
	ReadBatch(max int) []T

	// Peek returns the oldest item without removing it.
	Peek() (item T, ok bool)

	// PeekNewest returns the most recently written item without removing it.
	PeekNewest() (item T, ok bool)

	// Snapshot returns a copy of the buffered items, oldest first.
	Snapshot() []T

	// SnapshotReverse returns a copy of the buffered items, newest first.
	SnapshotReverse() []T

	Size() int
	Capacity() int
	IsFull() bool
	IsEmpty() bool

	// Clear removes all items. Removed items are passed to the drop
	// callback.
	Clear()

	// Stats returns the buffer's statistics. They are always collected.
	Stats() *Statistics

	// Close wakes blocked writers and rejects further writes. Items already
	// buffered can still be read.
	Close() error
}

// OverflowPolicy defines how a full buffer treats a new item.
type OverflowPolicy int

const (
	// DropOldest evicts the oldest item to make room.
	DropOldest OverflowPolicy = iota

	// DropNewest discards the new item.
	DropNewest

	// Block makes the writer wait for room.
	Block
)

// String returns a human-readable representation of the overflow policy.
func (p OverflowPolicy) String() string {
	switch p {
	case DropOldest:
		return "DropOldest"
	case DropNewest:
		return "DropNewest"
	case Block:
		return "Block"
	default:
		return "Unknown"
	}
}

// ParseOverflowPolicy maps a policy name, as written in configuration, to an
// OverflowPolicy. It accepts both the String form and snake_case
// ("drop_oldest"). The empty string means DropOldest.
func ParseOverflowPolicy(s string) (OverflowPolicy, bool) {
	switch s {
	case "", "DropOldest", "drop_oldest":
		return DropOldest, true
	case "DropNewest", "drop_newest":
		return DropNewest, true
	case "Block", "block":
		return Block, true
	default:
		return DropOldest, false
	}
}

// DropCallback is called with each item the buffer discards.
type DropCallback[T any] func(item T)

// NewCircularBuffer creates a buffer holding at most capacity items.
// Statistics are always collected; Prometheus metrics are added with
// WithMetrics, and a registration failure is returned as an error.
func NewCircularBuffer[T any](capacity int, options ...Option[T]) (Buffer[T], error) {
	cb, err := newCircularBuffer(capacity, applyOptions(options...))
	if err != nil {
		return nil, err
	}
	return cb, nil
}
