package main

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/c360/ringbuf/config"
	"github.com/c360/ringbuf/errors"
	"github.com/c360/ringbuf/metric"
	"github.com/c360/ringbuf/pkg/buffer"
	"github.com/c360/ringbuf/pkg/ring"
)

// Entry is one tailed record.
type Entry struct {
	ID     uuid.UUID `json:"id"`
	Seq    uint64    `json:"seq"`
	Time   time.Time `json:"time"`
	Source string    `json:"source"`
	Data   string    `json:"data"`
}

// store holds the most recent entries.
type store interface {
	Put(ctx context.Context, e Entry) error
	// Window returns the held entries without removing them.
	Window(reverse bool) []Entry
	// Drain removes and returns the held entries.
	Drain(reverse bool) []Entry
	Len() int
	Cap() int
	Close() error
}

// newStore builds the store for a ring configuration. onDrop is called for
// every entry the store discards.
func newStore(name string, rc config.RingConfig, registry *metric.MetricsRegistry, onDrop func(Entry)) (store, error) {
	switch rc.Variant {
	case "", config.VariantStatic:
		opts := []buffer.Option[Entry]{
			buffer.WithOverflowPolicy[Entry](rc.Policy()),
			buffer.WithDropCallback[Entry](onDrop),
		}
		if rc.Metrics {
			opts = append(opts, buffer.WithMetrics[Entry](registry, name))
		}
		buf, err := buffer.NewCircularBuffer[Entry](rc.Capacity, opts...)
		if err != nil {
			return nil, err
		}
		return &bufferStore{buf: buf}, nil

	case config.VariantDynamic:
		if rc.Policy() != buffer.DropOldest {
			return nil, errors.WrapInvalid(
				fmt.Errorf("%w: dynamic rings only support drop_oldest", errors.ErrInvalidConfig),
				"ringtail", "newStore", "check policy")
		}
		return newDynamicStore(rc.Capacity, onDrop)

	default:
		return nil, errors.WrapInvalid(
			fmt.Errorf("%w: unknown variant %q", errors.ErrInvalidConfig, rc.Variant),
			"ringtail", "newStore", "check variant")
	}
}

// bufferStore is the static variant, backed by the synchronized buffer so
// all three overflow policies are available.
type bufferStore struct {
	buf buffer.Buffer[Entry]
}

func (s *bufferStore) Put(ctx context.Context, e Entry) error {
	return s.buf.WriteWithContext(ctx, e)
}

func (s *bufferStore) Window(reverse bool) []Entry {
	if reverse {
		return s.buf.SnapshotReverse()
	}
	return s.buf.Snapshot()
}

func (s *bufferStore) Drain(reverse bool) []Entry {
	out := s.buf.ReadBatch(s.buf.Capacity())
	if reverse {
		slices.Reverse(out)
	}
	return out
}

func (s *bufferStore) Len() int     { return s.buf.Size() }
func (s *bufferStore) Cap() int     { return s.buf.Capacity() }
func (s *bufferStore) Close() error { return s.buf.Close() }

// dynamicStore reserves a ring.Dynamic at start-up and always evicts the
// oldest entry.
type dynamicStore struct {
	mu     sync.Mutex
	ring   *ring.Dynamic[Entry]
	closed bool
}

func newDynamicStore(capacity int, onDrop func(Entry)) (*dynamicStore, error) {
	r := ring.NewDynamic(ring.WithDropCallback(onDrop))
	if err := r.Reserve(capacity); err != nil {
		return nil, err
	}
	return &dynamicStore{ring: r}, nil
}

func (s *dynamicStore) Put(_ context.Context, e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return errors.WrapInvalid(errors.ErrAlreadyStopped, "dynamicStore", "Put", "store closed")
	}
	s.ring.PushBack(e)
	return nil
}

func (s *dynamicStore) Window(reverse bool) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Entry, 0, s.ring.Len())
	if !reverse {
		return append(out, s.ring.ToSlice()...)
	}
	for it, end := s.ring.CRBegin(), s.ring.CREnd(); !it.Equal(end); it.Next() {
		out = append(out, it.Value())
	}
	return out
}

func (s *dynamicStore) Drain(reverse bool) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Entry, 0, s.ring.Len())
	for !s.ring.Empty() {
		if reverse {
			out = append(out, s.ring.PopBack())
		} else {
			out = append(out, s.ring.PopFront())
		}
	}
	return out
}

func (s *dynamicStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ring.Len()
}

func (s *dynamicStore) Cap() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ring.Cap()
}

// Close stops further writes. Held entries stay readable.
func (s *dynamicStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
