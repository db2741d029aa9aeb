package ring

import "iter"

// All returns an iterator over (logical index, element) pairs, front to back.
// The ring must not be mutated during the walk.
func (c *core[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		i := 0
		for it, end := c.CBegin(), c.CEnd(); !it.Equal(end); it.Next() {
			if !yield(i, it.Value()) {
				return
			}
			i++
		}
	}
}

// Values returns an iterator over the elements, front to back.
func (c *core[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for it, end := c.CBegin(), c.CEnd(); !it.Equal(end); it.Next() {
			if !yield(it.Value()) {
				return
			}
		}
	}
}

// Backward returns an iterator over (logical index, element) pairs, back to
// front. Indexes count from the front, as in All.
func (c *core[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		i := c.size - 1
		for it, end := c.CRBegin(), c.CREnd(); !it.Equal(end); it.Next() {
			if !yield(i, it.Value()) {
				return
			}
			i--
		}
	}
}
