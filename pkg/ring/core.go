package ring

import (
	"fmt"
	"iter"

	"github.com/c360/ringbuf/errors"
)

// core is the state and behavior shared by Static and Dynamic.
//
// Live elements occupy the circular path head..tail inclusive. An empty core
// keeps head one slot ahead of tail, so next(tail) == head holds for both the
// empty and the full ring and size tells them apart.
type core[T any] struct {
	head  int
	tail  int
	size  int
	n     wrap
	store slots[T]
	opts  options[T]
}

func (c *core[T]) init(capacity int, opts options[T]) {
	c.n = wrap(capacity)
	c.store = newSlots[T](capacity)
	c.opts = opts
	c.size = 0
	c.reset()
}

// reset moves head and tail to the canonical empty position: the next push
// to the back lands in physical slot 0.
func (c *core[T]) reset() {
	c.head = 0
	c.tail = 0
	if c.n > 0 {
		c.tail = c.n.prev(0)
	}
}

func (c *core[T]) mustHaveStorage(op string) {
	if c.n == 0 {
		panic("ring: " + op + " on a ring with no capacity")
	}
}

func (c *core[T]) mustNotBeEmpty(op string) {
	if c.size == 0 {
		panic("ring: " + op + " on an empty ring")
	}
}

// Empty reports whether the ring holds no elements.
func (c *core[T]) Empty() bool { return c.size == 0 }

// Full reports whether the ring holds MaxSize elements. A ring without
// capacity is never full.
func (c *core[T]) Full() bool { return c.n > 0 && c.size == int(c.n) }

// Len returns the number of live elements.
func (c *core[T]) Len() int { return c.size }

// MaxSize returns the number of elements the ring can hold.
func (c *core[T]) MaxSize() int { return int(c.n) }

// Cap is an alias of MaxSize.
func (c *core[T]) Cap() int { return int(c.n) }

// Front returns the oldest element. The ring must not be empty.
func (c *core[T]) Front() T {
	c.mustNotBeEmpty("Front")
	return *c.store.at(c.head)
}

// Back returns the newest element. The ring must not be empty.
func (c *core[T]) Back() T {
	c.mustNotBeEmpty("Back")
	return *c.store.at(c.tail)
}

// FrontRef returns a pointer to the oldest element's storage. The pointer is
// valid until that element leaves the ring.
func (c *core[T]) FrontRef() *T {
	c.mustNotBeEmpty("FrontRef")
	return c.store.at(c.head)
}

// BackRef returns a pointer to the newest element's storage.
func (c *core[T]) BackRef() *T {
	c.mustNotBeEmpty("BackRef")
	return c.store.at(c.tail)
}

// At returns the element i positions after the front.
func (c *core[T]) At(i int) T {
	return *c.Ref(i)
}

// Ref returns a pointer to the element i positions after the front.
func (c *core[T]) Ref(i int) *T {
	if i < 0 || i >= c.size {
		panic(fmt.Sprintf("ring: index %d out of range [0:%d]", i, c.size))
	}
	return c.store.at(c.n.advance(c.head, i))
}

// Data returns the physical backing array, slot 0 first. Only slots for
// which Live reports true hold elements; the rest hold zero values. The
// front of the ring is generally not Data()[0].
func (c *core[T]) Data() []T { return c.store.vals }

// Live reports whether physical slot i holds an element.
func (c *core[T]) Live(i int) bool { return c.store.live(i) }

// Slices returns the live elements as at most two views of the backing
// array, a followed by b in front-to-back order. b is nil unless the live
// range wraps past the last physical slot.
func (c *core[T]) Slices() (a, b []T) {
	if c.size == 0 {
		return nil, nil
	}
	if c.head <= c.tail {
		return c.store.vals[c.head : c.tail+1], nil
	}
	return c.store.vals[c.head:], c.store.vals[:c.tail+1]
}

// ToSlice returns a front-to-back copy of the live elements.
func (c *core[T]) ToSlice() []T {
	a, b := c.Slices()
	out := make([]T, 0, c.size)
	out = append(out, a...)
	return append(out, b...)
}

// String formats the live elements front to back.
func (c *core[T]) String() string {
	return fmt.Sprint(c.ToSlice())
}

// PushBack appends v. A full ring first evicts its front element.
func (c *core[T]) PushBack(v T) {
	c.mustHaveStorage("PushBack")
	c.pushBack(v)
}

// PushFront prepends v. A full ring first evicts its back element.
func (c *core[T]) PushFront(v T) {
	c.mustHaveStorage("PushFront")
	c.pushFront(v)
}

// EmplaceBack appends the element built by ctor. ctor runs before the ring
// is touched: if it fails or panics, no element is evicted and the ring is
// unchanged.
func (c *core[T]) EmplaceBack(ctor func() (T, error)) error {
	c.mustHaveStorage("EmplaceBack")
	v, err := ctor()
	if err != nil {
		return errors.Wrap(err, "ring", "EmplaceBack", "construct element")
	}
	c.pushBack(v)
	return nil
}

// EmplaceFront prepends the element built by ctor with the same guarantee
// as EmplaceBack.
func (c *core[T]) EmplaceFront(ctor func() (T, error)) error {
	c.mustHaveStorage("EmplaceFront")
	v, err := ctor()
	if err != nil {
		return errors.Wrap(err, "ring", "EmplaceFront", "construct element")
	}
	c.pushFront(v)
	return nil
}

// PopBack removes and returns the newest element. The ring must not be empty.
func (c *core[T]) PopBack() T {
	c.mustNotBeEmpty("PopBack")
	return c.popBack()
}

// PopFront removes and returns the oldest element. The ring must not be empty.
func (c *core[T]) PopFront() T {
	c.mustNotBeEmpty("PopFront")
	return c.popFront()
}

// Clear destroys every element, back to front, and resets the ring to its
// empty position. Destroyed elements are reported to the drop callback.
func (c *core[T]) Clear() {
	for c.size != 0 {
		c.opts.drop(c.popBack())
	}
	c.reset()
}

func (c *core[T]) pushBack(v T) {
	var evicted T
	full := c.size == int(c.n)
	if full {
		evicted = c.store.destroy(c.head)
		c.head = c.n.next(c.head)
		c.size--
	}

	c.tail = c.n.next(c.tail)
	c.store.construct(c.tail, v)
	c.size++

	if full {
		c.opts.drop(evicted)
	}
}

func (c *core[T]) pushFront(v T) {
	var evicted T
	full := c.size == int(c.n)
	if full {
		evicted = c.store.destroy(c.tail)
		c.tail = c.n.prev(c.tail)
		c.size--
	}

	c.head = c.n.prev(c.head)
	c.store.construct(c.head, v)
	c.size++

	if full {
		c.opts.drop(evicted)
	}
}

func (c *core[T]) popBack() T {
	v := c.store.destroy(c.tail)
	c.tail = c.n.prev(c.tail)
	c.size--
	return v
}

func (c *core[T]) popFront() T {
	v := c.store.destroy(c.head)
	c.head = c.n.next(c.head)
	c.size--
	return v
}

// fillN appends count copies of v. The caller has checked count against the
// capacity.
func (c *core[T]) fillN(count int, v T) {
	for i := 0; i < count; i++ {
		c.pushBack(c.opts.copyOf(v))
	}
}

// fillSeq appends every value of seq. If seq yields more values than fit,
// the partial fill is cleared and ErrCapacityExceeded is returned.
func (c *core[T]) fillSeq(seq iter.Seq[T]) error {
	for v := range seq {
		if c.size == int(c.n) {
			c.Clear()
			return errors.ErrCapacityExceeded
		}
		c.pushBack(c.opts.copyOf(v))
	}
	return nil
}

// copyFrom appends a copy of every element of src, front to back.
func (c *core[T]) copyFrom(src *core[T]) {
	for it, end := src.CBegin(), src.CEnd(); !it.Equal(end); it.Next() {
		c.pushBack(c.opts.copyOf(it.Value()))
	}
}

// moveFrom transfers every element of src, front to back, leaving src empty.
// Moved elements are not reported to either drop callback.
func (c *core[T]) moveFrom(src *core[T]) {
	for src.size != 0 {
		c.pushBack(src.popFront())
	}
	src.reset()
}

// release destroys every element and drops the backing storage.
func (c *core[T]) release() {
	c.Clear()
	c.n = 0
	c.store = slots[T]{}
	c.reset()
}
