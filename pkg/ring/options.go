package ring

// Option configures a ring using the functional options pattern.
type Option[T any] func(*options[T])

// options holds per-ring hooks. Both hooks are optional.
type options[T any] struct {
	// dropCallback receives every element whose lifetime ends inside the
	// ring rather than being handed back to the caller.
	dropCallback func(T)

	// cloneFunc copies an element when a ring copies from another ring or
	// from caller-owned values.
	cloneFunc func(T) T
}

// WithDropCallback sets a function called with each element the ring
// destroys on its own: overflow eviction, Clear, Resize shrinking, Release,
// and discarded partial fills. Elements returned by PopFront and PopBack are
// not reported. The callback runs after the ring has finished mutating.
func WithDropCallback[T any](fn func(T)) Option[T] {
	return func(o *options[T]) {
		o.dropCallback = fn
	}
}

// WithCloneFunc sets the element copy used by Clone, Assign and the copying
// constructors. Without it elements are copied by assignment, which is a
// shallow copy for pointer, slice and map types.
func WithCloneFunc[T any](fn func(T) T) Option[T] {
	return func(o *options[T]) {
		o.cloneFunc = fn
	}
}

func applyOptions[T any](opts ...Option[T]) options[T] {
	var o options[T]
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

func (o *options[T]) copyOf(v T) T {
	if o.cloneFunc != nil {
		return o.cloneFunc(v)
	}
	return v
}

func (o *options[T]) drop(v T) {
	if o.dropCallback != nil {
		o.dropCallback(v)
	}
}
