package buffer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/c360/ringbuf/errors"
	"github.com/c360/ringbuf/pkg/ring"
)

// circularBuffer guards a ring.Static with a mutex and adds overflow
// policies, statistics and metrics on top of it.
type circularBuffer[T any] struct {
	mu      sync.RWMutex
	ring    *ring.Static[T]
	stats   *Statistics
	metrics *bufferMetrics // nil unless WithMetrics was given
	opts    *bufferOptions[T]

	notEmpty *sync.Cond
	notFull  *sync.Cond
	closed   bool
}

func newCircularBuffer[T any](capacity int, opts *bufferOptions[T]) (*circularBuffer[T], error) {
	r, err := ring.NewStatic[T](capacity)
	if err != nil {
		return nil, errors.WrapInvalid(err, "Buffer", "NewCircularBuffer",
			fmt.Sprintf("allocate ring of capacity %d", capacity))
	}

	var metrics *bufferMetrics
	if opts.metricsReg != nil && opts.metricsPrefix != "" {
		metrics, err = newBufferMetrics(opts.metricsReg, opts.metricsPrefix)
		if err != nil {
			return nil, errors.WrapTransient(err, "Buffer", "NewCircularBuffer", "metrics registration")
		}
	}

	cb := &circularBuffer[T]{
		ring:    r,
		stats:   NewStatistics(),
		metrics: metrics,
		opts:    opts,
	}
	cb.notEmpty = sync.NewCond(&cb.mu)
	cb.notFull = sync.NewCond(&cb.mu)

	return cb, nil
}

// Write adds an item according to the overflow policy. Under Block it waits
// until a reader makes room or the buffer is closed.
func (cb *circularBuffer[T]) Write(item T) error {
	return cb.WriteWithContext(context.Background(), item)
}

// WriteWithTimeout writes with a deadline when using the Block policy.
func (cb *circularBuffer[T]) WriteWithTimeout(item T, timeout time.Duration) error {
	if cb.opts.overflowPolicy != Block {
		return cb.Write(item)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	return cb.WriteWithContext(ctx, item)
}

// WriteWithContext writes with cancellation when using the Block policy.
func (cb *circularBuffer[T]) WriteWithContext(ctx context.Context, item T) error {
	cb.mu.Lock()
	dropped, hasDrop, err := cb.put(ctx, item)
	cb.mu.Unlock()

	// The callback runs without the lock so it may call back into the buffer.
	if hasDrop && cb.opts.dropCallback != nil {
		cb.opts.dropCallback(dropped)
	}
	return err
}

// put stores item and reports any item discarded to make room.
// cb.mu must be held.
func (cb *circularBuffer[T]) put(ctx context.Context, item T) (dropped T, hasDrop bool, err error) {
	if cb.closed {
		return dropped, false, errors.WrapInvalid(errors.ErrAlreadyStopped, "Buffer", "Write", "buffer closed")
	}

	if cb.ring.Full() {
		switch cb.opts.overflowPolicy {
		case DropNewest:
			cb.recordDrop()
			return item, true, nil

		case Block:
			if err := cb.waitForRoom(ctx); err != nil {
				return dropped, false, err
			}

		default:
			dropped, hasDrop = cb.ring.PopFront(), true
			cb.recordDrop()
		}
	}

	cb.ring.PushBack(item)

	cb.stats.Write()
	cb.stats.UpdateSize(int64(cb.ring.Len()))
	if cb.metrics != nil {
		cb.metrics.recordWrite(cb.ring.Len(), cb.ring.MaxSize())
	}

	cb.notEmpty.Signal()
	return dropped, hasDrop, nil
}

// waitForRoom blocks until the ring has a free slot. cb.mu must be held.
func (cb *circularBuffer[T]) waitForRoom(ctx context.Context) error {
	if ctx.Done() != nil {
		stop := context.AfterFunc(ctx, func() {
			cb.mu.Lock()
			cb.notFull.Broadcast()
			cb.mu.Unlock()
		})
		defer stop()
	}

	for cb.ring.Full() && !cb.closed {
		if err := ctx.Err(); err != nil {
			return errors.WrapTransient(err, "Buffer", "WriteWithContext", "wait for space")
		}
		cb.notFull.Wait()
	}

	if cb.closed {
		return errors.WrapInvalid(errors.ErrAlreadyStopped, "Buffer", "Write",
			"buffer closed during blocking wait")
	}
	return nil
}

func (cb *circularBuffer[T]) recordDrop() {
	cb.stats.Overflow()
	cb.stats.Drop()
	if cb.metrics != nil {
		cb.metrics.recordOverflow()
		cb.metrics.recordDrop()
	}
}

// Read retrieves and removes the oldest item.
func (cb *circularBuffer[T]) Read() (T, bool) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.ring.Empty() {
		var zero T
		return zero, false
	}

	item := cb.ring.PopFront()

	cb.stats.Read()
	cb.stats.UpdateSize(int64(cb.ring.Len()))
	if cb.metrics != nil {
		cb.metrics.recordRead(cb.ring.Len(), cb.ring.MaxSize())
	}

	cb.notFull.Signal()
	return item, true
}

// ReadBatch retrieves and removes up to max items, oldest first.
func (cb *circularBuffer[T]) ReadBatch(max int) []T {
	if max <= 0 {
		return nil
	}

	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.ring.Empty() {
		return nil
	}

	n := min(max, cb.ring.Len())
	result := make([]T, n)
	for i := range result {
		result[i] = cb.ring.PopFront()
		cb.stats.Read()
	}

	cb.stats.UpdateSize(int64(cb.ring.Len()))
	if cb.metrics != nil {
		cb.metrics.updateSize(cb.ring.Len(), cb.ring.MaxSize())
	}

	cb.notFull.Broadcast()
	return result
}

// Peek returns the oldest item without removing it.
func (cb *circularBuffer[T]) Peek() (T, bool) {
	cb.mu.RLock()
	defer cb.mu.RUnlock()

	if cb.ring.Empty() {
		var zero T
		return zero, false
	}

	cb.recordPeek()
	return cb.ring.Front(), true
}

// PeekNewest returns the most recently written item without removing it.
func (cb *circularBuffer[T]) PeekNewest() (T, bool) {
	cb.mu.RLock()
	defer cb.mu.RUnlock()

	if cb.ring.Empty() {
		var zero T
		return zero, false
	}

	cb.recordPeek()
	return cb.ring.Back(), true
}

func (cb *circularBuffer[T]) recordPeek() {
	cb.stats.Peek()
	if cb.metrics != nil {
		cb.metrics.recordPeek()
	}
}

// Snapshot copies the buffered items, oldest first.
func (cb *circularBuffer[T]) Snapshot() []T {
	cb.mu.RLock()
	defer cb.mu.RUnlock()
	return cb.ring.ToSlice()
}

// SnapshotReverse copies the buffered items, newest first.
func (cb *circularBuffer[T]) SnapshotReverse() []T {
	cb.mu.RLock()
	defer cb.mu.RUnlock()

	out := make([]T, 0, cb.ring.Len())
	for it, end := cb.ring.CRBegin(), cb.ring.CREnd(); !it.Equal(end); it.Next() {
		out = append(out, it.Value())
	}
	return out
}

// Size returns the current number of items in the buffer.
func (cb *circularBuffer[T]) Size() int {
	cb.mu.RLock()
	defer cb.mu.RUnlock()
	return cb.ring.Len()
}

// Capacity returns the maximum number of items the buffer can hold.
func (cb *circularBuffer[T]) Capacity() int {
	return cb.ring.MaxSize() // immutable
}

// IsFull returns true if the buffer is at maximum capacity.
func (cb *circularBuffer[T]) IsFull() bool {
	cb.mu.RLock()
	defer cb.mu.RUnlock()
	return cb.ring.Full()
}

// IsEmpty returns true if the buffer contains no items.
func (cb *circularBuffer[T]) IsEmpty() bool {
	cb.mu.RLock()
	defer cb.mu.RUnlock()
	return cb.ring.Empty()
}

// Clear removes all items from the buffer.
func (cb *circularBuffer[T]) Clear() {
	cb.mu.Lock()

	var dropped []T
	if cb.opts.dropCallback != nil {
		dropped = cb.ring.ToSlice()
	}
	cb.ring.Clear()

	cb.stats.UpdateSize(0)
	if cb.metrics != nil {
		cb.metrics.updateSize(0, cb.ring.MaxSize())
	}
	cb.notFull.Broadcast()
	cb.mu.Unlock()

	for _, item := range dropped {
		cb.opts.dropCallback(item)
	}
}

// Stats returns buffer statistics.
func (cb *circularBuffer[T]) Stats() *Statistics {
	return cb.stats
}

// Close marks the buffer closed and wakes every waiting writer.
func (cb *circularBuffer[T]) Close() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.closed {
		return nil
	}
	cb.closed = true

	cb.notEmpty.Broadcast()
	cb.notFull.Broadcast()
	return nil
}
