// Package ring provides generic fixed-capacity circular buffers.
//
// A ring stores up to MaxSize elements in a single backing array that is
// allocated once. Pushing onto a full ring evicts the element at the
// opposite end, so PushBack on a full ring drops the front (FIFO overwrite)
// and PushFront drops the back.
//
// Two variants share one implementation:
//
//   - Static has its capacity fixed by its constructor.
//   - Dynamic starts without storage and gets its capacity from a single
//     call to Reserve.
//
// Basic usage:
//
//	r, err := ring.NewStatic[int](4)
//	if err != nil {
//		return err
//	}
//	for i := 1; i <= 6; i++ {
//		r.PushBack(i)
//	}
//	fmt.Println(r) // [3 4 5 6]
//
// Traversal is available three ways: bidirectional iterators (Begin/End,
// CBegin/CEnd, RBegin/REnd, CRBegin/CREnd), range-over-func sequences
// (All, Values, Backward) and the two-slice view returned by Slices.
//
// # Iterators
//
// An iterator carries the physical slot it points at and the number of
// forward steps left before End. The step count is what lets a full ring
// distinguish Begin from End even though both address the same slot.
// Iterators are plain values; stepping out of range is not checked.
//
// # Element lifetime
//
// Slots that hold no element are kept at the zero value of T. Elements the
// ring destroys by itself (eviction, Clear, Resize, Release) are passed to
// the callback installed with WithDropCallback. Elements removed with
// PopFront or PopBack are returned to the caller instead.
//
// # Errors
//
// Constructors and capacity-changing methods return errors classified with
// the errors package: invalid capacities are ErrorInvalid, overflowing
// copies are ErrorRange, and Reserve or Assign misuse on a Dynamic is
// ErrorLogic. Calling Front, Back, PopFront or PopBack on an empty ring, or
// pushing into a ring without capacity, panics.
//
// Rings are not safe for concurrent use. See pkg/buffer for a synchronized
// wrapper.
package ring
