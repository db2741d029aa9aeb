package ring

import (
	"fmt"
	"iter"

	"github.com/c360/ringbuf/errors"
)

// Static is a ring whose capacity is fixed when it is constructed. Its
// backing storage is allocated once and never reallocated.
//
// A Static is not safe for concurrent use.
type Static[T any] struct {
	core[T]
}

// NewStatic returns an empty ring that holds up to capacity elements.
// capacity must be at least one.
func NewStatic[T any](capacity int, opts ...Option[T]) (*Static[T], error) {
	if capacity < 1 {
		return nil, errors.WrapInvalid(errors.ErrZeroCapacity, "Static", "NewStatic",
			fmt.Sprintf("validate capacity %d", capacity))
	}
	s := &Static[T]{}
	s.init(capacity, applyOptions(opts...))
	return s, nil
}

// NewStaticFilled returns a ring holding count copies of value.
func NewStaticFilled[T any](capacity, count int, value T, opts ...Option[T]) (*Static[T], error) {
	if count < 0 {
		return nil, errors.WrapInvalid(errors.ErrInvalidData, "Static", "NewStaticFilled",
			fmt.Sprintf("validate count %d", count))
	}
	s, err := NewStatic(capacity, opts...)
	if err != nil {
		return nil, err
	}
	if count > capacity {
		return nil, errors.WrapRange(errors.ErrCapacityExceeded, "Static", "NewStaticFilled",
			fmt.Sprintf("fill %d elements into capacity %d", count, capacity))
	}
	s.fillN(count, value)
	return s, nil
}

// NewStaticFrom returns a ring holding copies of values, values[0] at the
// front.
func NewStaticFrom[T any](capacity int, values []T, opts ...Option[T]) (*Static[T], error) {
	s, err := NewStatic(capacity, opts...)
	if err != nil {
		return nil, err
	}
	if len(values) > capacity {
		return nil, errors.WrapRange(errors.ErrCapacityExceeded, "Static", "NewStaticFrom",
			fmt.Sprintf("copy %d elements into capacity %d", len(values), capacity))
	}
	for _, v := range values {
		s.pushBack(s.opts.copyOf(v))
	}
	return s, nil
}

// NewStaticFromSeq returns a ring holding copies of the values yielded by
// seq. It stops reading seq as soon as one value too many is yielded; the
// elements copied so far are destroyed and reported to the drop callback.
func NewStaticFromSeq[T any](capacity int, seq iter.Seq[T], opts ...Option[T]) (*Static[T], error) {
	s, err := NewStatic(capacity, opts...)
	if err != nil {
		return nil, err
	}
	if err := s.fillSeq(seq); err != nil {
		return nil, errors.WrapRange(err, "Static", "NewStaticFromSeq",
			fmt.Sprintf("copy sequence into capacity %d", capacity))
	}
	return s, nil
}

// Clone returns a ring with the same capacity and options holding copies of
// s's elements.
func (s *Static[T]) Clone() *Static[T] {
	out := &Static[T]{}
	out.init(s.MaxSize(), s.opts)
	out.copyFrom(&s.core)
	return out
}

// Assign replaces s's elements with copies of other's. The old elements are
// reported to s's drop callback. If other holds more elements than s can,
// s is left unchanged.
func (s *Static[T]) Assign(other *Static[T]) error {
	if s == other {
		return nil
	}
	if other.Len() > s.MaxSize() {
		return errors.WrapRange(errors.ErrCapacityExceeded, "Static", "Assign",
			fmt.Sprintf("copy %d elements into capacity %d", other.Len(), s.MaxSize()))
	}
	s.Clear()
	s.copyFrom(&other.core)
	return nil
}

// MoveFrom replaces s's elements with other's, leaving other empty. Moved
// elements are not copied and are not reported to any drop callback.
func (s *Static[T]) MoveFrom(other *Static[T]) error {
	if s == other {
		return nil
	}
	if other.Len() > s.MaxSize() {
		return errors.WrapRange(errors.ErrCapacityExceeded, "Static", "MoveFrom",
			fmt.Sprintf("move %d elements into capacity %d", other.Len(), s.MaxSize()))
	}
	s.Clear()
	s.moveFrom(&other.core)
	return nil
}

// Release destroys every element and frees the backing storage. The ring
// has no capacity afterwards; pushing into it panics.
func (s *Static[T]) Release() {
	s.release()
}
