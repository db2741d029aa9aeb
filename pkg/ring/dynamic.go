package ring

import (
	"fmt"
	"iter"
	"slices"

	"github.com/c360/ringbuf/errors"
)

// Dynamic is a ring whose capacity is chosen at run time by a single call to
// Reserve. Until then it has no capacity: it is empty, never full, and
// pushing into it panics. After Reserve the storage is never reallocated.
//
// A Dynamic is not safe for concurrent use.
type Dynamic[T any] struct {
	core[T]
}

// NewDynamic returns a ring with no capacity.
func NewDynamic[T any](opts ...Option[T]) *Dynamic[T] {
	d := &Dynamic[T]{}
	d.init(0, applyOptions(opts...))
	return d
}

// NewDynamicWithCapacity returns an empty ring with capacity reserved.
func NewDynamicWithCapacity[T any](capacity int, opts ...Option[T]) (*Dynamic[T], error) {
	d := NewDynamic(opts...)
	if err := d.Reserve(capacity); err != nil {
		return nil, err
	}
	return d, nil
}

// NewDynamicFilled returns a full ring of capacity count holding count
// copies of value. A count of zero returns a ring with no capacity.
func NewDynamicFilled[T any](count int, value T, opts ...Option[T]) (*Dynamic[T], error) {
	if count < 0 {
		return nil, errors.WrapInvalid(errors.ErrInvalidData, "Dynamic", "NewDynamicFilled",
			fmt.Sprintf("validate count %d", count))
	}
	d := NewDynamic(opts...)
	if count > 0 {
		d.init(count, d.opts)
		d.fillN(count, value)
	}
	return d, nil
}

// NewDynamicFrom returns a full ring of capacity len(values) holding copies
// of values, values[0] at the front.
func NewDynamicFrom[T any](values []T, opts ...Option[T]) *Dynamic[T] {
	d := NewDynamic(opts...)
	if len(values) > 0 {
		d.init(len(values), d.opts)
		for _, v := range values {
			d.pushBack(d.opts.copyOf(v))
		}
	}
	return d
}

// NewDynamicFromSeq returns a full ring holding copies of every value seq
// yields. The capacity is the number of values.
func NewDynamicFromSeq[T any](seq iter.Seq[T], opts ...Option[T]) *Dynamic[T] {
	return NewDynamicFrom(slices.Collect(seq), opts...)
}

// Reserve allocates storage for capacity elements. It may be called once;
// a second call fails with ErrAlreadyReserved and leaves the ring as is.
func (d *Dynamic[T]) Reserve(capacity int) error {
	if d.n > 0 {
		return errors.WrapLogic(errors.ErrAlreadyReserved, "Dynamic", "Reserve",
			fmt.Sprintf("reserve %d slots over %d", capacity, d.MaxSize()))
	}
	if capacity < 1 {
		return errors.WrapInvalid(errors.ErrZeroCapacity, "Dynamic", "Reserve",
			fmt.Sprintf("validate capacity %d", capacity))
	}
	d.init(capacity, d.opts)
	return nil
}

// Resize sets the number of elements to n. Growing appends zero values at
// the back; shrinking destroys elements from the back and reports them to
// the drop callback. n may not exceed MaxSize.
func (d *Dynamic[T]) Resize(n int) error {
	if n < 0 {
		return errors.WrapInvalid(errors.ErrInvalidData, "Dynamic", "Resize",
			fmt.Sprintf("validate size %d", n))
	}
	if n > d.MaxSize() {
		return errors.WrapRange(errors.ErrCapacityExceeded, "Dynamic", "Resize",
			fmt.Sprintf("resize to %d over capacity %d", n, d.MaxSize()))
	}

	var zero T
	for d.size < n {
		d.pushBack(zero)
	}
	for d.size > n {
		d.opts.drop(d.popBack())
	}
	return nil
}

// Clone returns a ring with the same capacity and options holding copies of
// d's elements.
func (d *Dynamic[T]) Clone() *Dynamic[T] {
	out := NewDynamic[T]()
	out.init(d.MaxSize(), d.opts)
	out.copyFrom(&d.core)
	return out
}

// adopt gives an unreserved d the capacity of other, or checks that the
// capacities already match.
func (d *Dynamic[T]) adopt(other *Dynamic[T], method string) error {
	if d.n == 0 && other.n > 0 {
		d.init(other.MaxSize(), d.opts)
		return nil
	}
	if d.n != other.n {
		return errors.WrapLogic(errors.ErrCapacityMismatch, "Dynamic", method,
			fmt.Sprintf("capacity %d from capacity %d", d.MaxSize(), other.MaxSize()))
	}
	return nil
}

// Assign replaces d's elements with copies of other's. An unreserved d
// takes other's capacity; otherwise the capacities must be equal.
func (d *Dynamic[T]) Assign(other *Dynamic[T]) error {
	if d == other {
		return nil
	}
	if err := d.adopt(other, "Assign"); err != nil {
		return err
	}
	d.Clear()
	d.copyFrom(&other.core)
	return nil
}

// MoveFrom replaces d's elements with other's, leaving other empty. The
// capacity rule is the same as for Assign.
func (d *Dynamic[T]) MoveFrom(other *Dynamic[T]) error {
	if d == other {
		return nil
	}
	if err := d.adopt(other, "MoveFrom"); err != nil {
		return err
	}
	d.Clear()
	d.moveFrom(&other.core)
	return nil
}

// Release destroys every element and frees the storage. The ring returns to
// the unreserved state and may be reserved again.
func (d *Dynamic[T]) Release() {
	d.release()
}
