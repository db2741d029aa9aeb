package ring

// slots is the backing store of a ring. vals holds element storage and tags
// marks which physical slots currently hold a live element. A slot that is
// not live holds the zero value of T, so the ring never pins memory through
// dead slots.
type slots[T any] struct {
	vals []T
	tags []bool
}

func newSlots[T any](n int) slots[T] {
	if n == 0 {
		return slots[T]{}
	}
	return slots[T]{
		vals: make([]T, n),
		tags: make([]bool, n),
	}
}

// construct begins the lifetime of v at the empty slot i.
func (s *slots[T]) construct(i int, v T) {
	s.vals[i] = v
	s.tags[i] = true
}

// destroy ends the lifetime of the element at the live slot i and returns it.
func (s *slots[T]) destroy(i int) T {
	var zero T
	v := s.vals[i]
	s.vals[i] = zero
	s.tags[i] = false
	return v
}

// at returns the storage of the live slot i.
func (s *slots[T]) at(i int) *T {
	return &s.vals[i]
}

func (s *slots[T]) live(i int) bool {
	return s.tags[i]
}

func (s *slots[T]) len() int {
	return len(s.vals)
}
