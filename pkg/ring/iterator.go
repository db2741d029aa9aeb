package ring

// cursor walks physical slots in logical order. left counts the steps
// remaining in a forward traversal; it is what separates End from a live
// position that shares its physical index after the ring has wrapped.
type cursor[T any] struct {
	vals []T
	pos  int
	left int
}

func (c *cursor[T]) next() {
	c.pos = wrap(len(c.vals)).next(c.pos)
	c.left--
}

func (c *cursor[T]) prev() {
	c.pos = wrap(len(c.vals)).prev(c.pos)
	c.left++
}

func (c cursor[T]) equal(o cursor[T]) bool {
	return sameStorage(c.vals, o.vals) && c.pos == o.pos && c.left == o.left
}

func sameStorage[T any](a, b []T) bool {
	if len(a) == 0 || len(b) == 0 {
		return len(a) == len(b)
	}
	return &a[0] == &b[0]
}

// Iterator is a bidirectional position in a ring with mutable access to the
// element under it. Iterators stay valid while the ring is not mutated
// through anything other than Ref.
//
// Stepping past End or before Begin, and reading at End, are precondition
// violations and are not checked.
type Iterator[T any] struct {
	cur cursor[T]
}

// Next advances to the following element.
func (it *Iterator[T]) Next() { it.cur.next() }

// Prev retreats to the preceding element.
func (it *Iterator[T]) Prev() { it.cur.prev() }

// Value returns the element under the iterator.
func (it Iterator[T]) Value() T { return it.cur.vals[it.cur.pos] }

// Ref returns a pointer to the element under the iterator.
func (it Iterator[T]) Ref() *T { return &it.cur.vals[it.cur.pos] }

// Pos returns the physical slot index under the iterator.
func (it Iterator[T]) Pos() int { return it.cur.pos }

// Remaining returns how many elements a forward walk visits before End.
func (it Iterator[T]) Remaining() int { return it.cur.left }

// Equal reports whether both iterators address the same position of the
// same ring storage.
func (it Iterator[T]) Equal(o Iterator[T]) bool { return it.cur.equal(o.cur) }

// Const returns a read-only iterator at the same position.
func (it Iterator[T]) Const() ConstIterator[T] { return ConstIterator[T]{cur: it.cur} }

// ConstIterator is an Iterator without mutable access.
type ConstIterator[T any] struct {
	cur cursor[T]
}

// Next advances to the following element.
func (it *ConstIterator[T]) Next() { it.cur.next() }

// Prev retreats to the preceding element.
func (it *ConstIterator[T]) Prev() { it.cur.prev() }

// Value returns the element under the iterator.
func (it ConstIterator[T]) Value() T { return it.cur.vals[it.cur.pos] }

// Pos returns the physical slot index under the iterator.
func (it ConstIterator[T]) Pos() int { return it.cur.pos }

// Remaining returns how many elements a forward walk visits before End.
func (it ConstIterator[T]) Remaining() int { return it.cur.left }

// Equal reports whether both iterators address the same position.
func (it ConstIterator[T]) Equal(o ConstIterator[T]) bool { return it.cur.equal(o.cur) }

// ReverseIterator adapts an Iterator to walk back to front. It holds the
// base iterator one position after the element it reads, so RBegin wraps End
// and REnd wraps Begin.
type ReverseIterator[T any] struct {
	base Iterator[T]
}

// Next advances toward the front of the ring.
func (r *ReverseIterator[T]) Next() { r.base.Prev() }

// Prev retreats toward the back of the ring.
func (r *ReverseIterator[T]) Prev() { r.base.Next() }

// Value returns the element before the base position.
func (r ReverseIterator[T]) Value() T { return *r.Ref() }

// Ref returns a pointer to the element before the base position.
func (r ReverseIterator[T]) Ref() *T {
	b := r.base
	b.Prev()
	return b.Ref()
}

// Base returns the underlying forward iterator.
func (r ReverseIterator[T]) Base() Iterator[T] { return r.base }

// Equal reports whether both adapters wrap equal base iterators.
func (r ReverseIterator[T]) Equal(o ReverseIterator[T]) bool { return r.base.Equal(o.base) }

// ConstReverseIterator adapts a ConstIterator to walk back to front.
type ConstReverseIterator[T any] struct {
	base ConstIterator[T]
}

// Next advances toward the front of the ring.
func (r *ConstReverseIterator[T]) Next() { r.base.Prev() }

// Prev retreats toward the back of the ring.
func (r *ConstReverseIterator[T]) Prev() { r.base.Next() }

// Value returns the element before the base position.
func (r ConstReverseIterator[T]) Value() T {
	b := r.base
	b.Prev()
	return b.Value()
}

// Base returns the underlying forward iterator.
func (r ConstReverseIterator[T]) Base() ConstIterator[T] { return r.base }

// Equal reports whether both adapters wrap equal base iterators.
func (r ConstReverseIterator[T]) Equal(o ConstReverseIterator[T]) bool {
	return r.base.Equal(o.base)
}

// Begin returns an iterator at the front element, or End for an empty ring.
func (c *core[T]) Begin() Iterator[T] {
	if c.size == 0 {
		return c.End()
	}
	return Iterator[T]{cur: cursor[T]{vals: c.store.vals, pos: c.head, left: c.size}}
}

// End returns the position one past the back element.
func (c *core[T]) End() Iterator[T] {
	if c.n == 0 {
		return Iterator[T]{}
	}
	return Iterator[T]{cur: cursor[T]{vals: c.store.vals, pos: c.n.next(c.tail)}}
}

// CBegin is the read-only Begin.
func (c *core[T]) CBegin() ConstIterator[T] { return c.Begin().Const() }

// CEnd is the read-only End.
func (c *core[T]) CEnd() ConstIterator[T] { return c.End().Const() }

// RBegin returns a reverse iterator at the back element.
func (c *core[T]) RBegin() ReverseIterator[T] { return ReverseIterator[T]{base: c.End()} }

// REnd returns the reverse position one before the front element.
func (c *core[T]) REnd() ReverseIterator[T] { return ReverseIterator[T]{base: c.Begin()} }

// CRBegin is the read-only RBegin.
func (c *core[T]) CRBegin() ConstReverseIterator[T] {
	return ConstReverseIterator[T]{base: c.CEnd()}
}

// CREnd is the read-only REnd.
func (c *core[T]) CREnd() ConstReverseIterator[T] {
	return ConstReverseIterator[T]{base: c.CBegin()}
}
