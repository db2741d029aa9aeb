package ring

// wrap maps adjacent-slot requests onto a ring of int(w) physical slots.
// A zero wrap has no slots and must not be stepped.
type wrap int

// next returns the physical index after i.
func (w wrap) next(i int) int {
	return (i + 1) % int(w)
}

// prev returns the physical index before i.
func (w wrap) prev(i int) int {
	return (i + int(w) - 1) % int(w)
}

// advance returns the physical index k slots after i.
func (w wrap) advance(i, k int) int {
	return (i + k) % int(w)
}
