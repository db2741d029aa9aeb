package ring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// wrapped returns a full ring of capacity 4 holding [3 4 5 6] whose live
// range crosses the end of the backing array.
func wrapped(t *testing.T) *Static[int] {
	t.Helper()
	r, err := NewStatic[int](4)
	require.NoError(t, err)
	for i := 1; i <= 6; i++ {
		r.PushBack(i)
	}
	return r
}

func TestIterator_EmptyRing(t *testing.T) {
	r, err := NewStatic[int](3)
	require.NoError(t, err)

	assert.True(t, r.Begin().Equal(r.End()))
	assert.True(t, r.CBegin().Equal(r.CEnd()))
	assert.True(t, r.RBegin().Equal(r.REnd()))
	assert.True(t, r.CRBegin().Equal(r.CREnd()))
	assert.Equal(t, 0, r.Begin().Remaining())
}

func TestIterator_FullRingBeginDiffersFromEnd(t *testing.T) {
	r := wrapped(t)

	begin, end := r.Begin(), r.End()
	assert.Equal(t, begin.Pos(), end.Pos(), "a full ring's begin and end share a slot")
	assert.False(t, begin.Equal(end))
	assert.Equal(t, 4, begin.Remaining())
	assert.Equal(t, 0, end.Remaining())
}

func TestIterator_ForwardWalkUnderWrap(t *testing.T) {
	r := wrapped(t)

	var got []int
	steps := 0
	for it, end := r.Begin(), r.End(); !it.Equal(end); it.Next() {
		got = append(got, it.Value())
		steps++
	}
	assert.Equal(t, r.Len(), steps)
	assert.Equal(t, []int{3, 4, 5, 6}, got)

	var cgot []int
	for it, end := r.CBegin(), r.CEnd(); !it.Equal(end); it.Next() {
		cgot = append(cgot, it.Value())
	}
	assert.Equal(t, got, cgot)
}

func TestIterator_ReverseMirrorsForward(t *testing.T) {
	r := wrapped(t)
	r.PopFront()

	var got []int
	for it, end := r.RBegin(), r.REnd(); !it.Equal(end); it.Next() {
		got = append(got, it.Value())
	}
	assert.Equal(t, []int{6, 5, 4}, got)

	var cgot []int
	for it, end := r.CRBegin(), r.CREnd(); !it.Equal(end); it.Next() {
		cgot = append(cgot, it.Value())
	}
	assert.Equal(t, got, cgot)

	assert.True(t, r.RBegin().Base().Equal(r.End()))
	assert.True(t, r.CREnd().Base().Equal(r.CBegin()))
}

func TestIterator_PrevFromEnd(t *testing.T) {
	r := wrapped(t)

	it := r.End()
	it.Prev()
	assert.Equal(t, 6, it.Value())
	assert.Equal(t, 1, it.Remaining())

	for i := 0; i < 3; i++ {
		it.Prev()
	}
	assert.True(t, it.Equal(r.Begin()))
	assert.Equal(t, 3, it.Value())

	rit := r.RBegin()
	rit.Next()
	rit.Prev()
	assert.True(t, rit.Equal(r.RBegin()))
}

func TestIterator_RefMutates(t *testing.T) {
	r := wrapped(t)

	for it, end := r.Begin(), r.End(); !it.Equal(end); it.Next() {
		*it.Ref() *= 10
	}
	assert.Equal(t, []int{30, 40, 50, 60}, r.ToSlice())

	rit := r.RBegin()
	*rit.Ref() = 1
	assert.Equal(t, 1, r.Back())
}

func TestIterator_DistinctRingsNeverEqual(t *testing.T) {
	a, err := NewStatic[int](2)
	require.NoError(t, err)
	b, err := NewStatic[int](2)
	require.NoError(t, err)

	assert.False(t, a.End().Equal(b.End()))
	assert.True(t, a.End().Equal(a.End()))
}

func TestIterator_ConstConversion(t *testing.T) {
	r := wrapped(t)

	it := r.Begin()
	it.Next()
	c := it.Const()
	assert.Equal(t, it.Value(), c.Value())
	assert.Equal(t, it.Pos(), c.Pos())
	assert.Equal(t, it.Remaining(), c.Remaining())

	c.Prev()
	assert.True(t, c.Equal(r.CBegin()))
}

func TestSeq_All(t *testing.T) {
	r := wrapped(t)

	var idx, vals []int
	for i, v := range r.All() {
		idx = append(idx, i)
		vals = append(vals, v)
	}
	assert.Equal(t, []int{0, 1, 2, 3}, idx)
	assert.Equal(t, []int{3, 4, 5, 6}, vals)

	for i, v := range r.All() {
		assert.Equal(t, r.At(i), v)
	}
}

func TestSeq_Values(t *testing.T) {
	r := wrapped(t)

	var got []int
	for v := range r.Values() {
		if v == 5 {
			break
		}
		got = append(got, v)
	}
	assert.Equal(t, []int{3, 4}, got)
}

func TestSeq_Backward(t *testing.T) {
	r := wrapped(t)

	var idx, vals []int
	for i, v := range r.Backward() {
		idx = append(idx, i)
		vals = append(vals, v)
	}
	assert.Equal(t, []int{3, 2, 1, 0}, idx)
	assert.Equal(t, []int{6, 5, 4, 3}, vals)

	empty := NewDynamic[int]()
	for range empty.Backward() {
		t.Fatal("unreserved ring yielded an element")
	}
}
