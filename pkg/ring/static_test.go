package ring

import (
	"fmt"
	"slices"
	"testing"

	cerrors "github.com/c360/ringbuf/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStaticInts(t *testing.T, capacity int, values ...int) *Static[int] {
	t.Helper()
	r, err := NewStaticFrom(capacity, values)
	require.NoError(t, err)
	return r
}

func TestNewStatic(t *testing.T) {
	r, err := NewStatic[int](4)
	require.NoError(t, err)

	assert.True(t, r.Empty())
	assert.False(t, r.Full())
	assert.Equal(t, 0, r.Len())
	assert.Equal(t, 4, r.MaxSize())
	assert.Equal(t, 4, r.Cap())
	assert.Len(t, r.Data(), 4)
}

func TestNewStatic_InvalidCapacity(t *testing.T) {
	for _, capacity := range []int{0, -1} {
		t.Run(fmt.Sprint(capacity), func(t *testing.T) {
			r, err := NewStatic[int](capacity)
			assert.Nil(t, r)
			require.Error(t, err)
			assert.ErrorIs(t, err, cerrors.ErrZeroCapacity)
			assert.True(t, cerrors.IsInvalid(err))
		})
	}
}

func TestStatic_OverwriteOldestOnOverflow(t *testing.T) {
	r, err := NewStatic[int](4)
	require.NoError(t, err)

	for i := 1; i <= 6; i++ {
		r.PushBack(i)
	}

	assert.True(t, r.Full())
	assert.Equal(t, []int{3, 4, 5, 6}, r.ToSlice())
	assert.Equal(t, 3, r.Front())
	assert.Equal(t, 6, r.Back())
	assert.Equal(t, "[3 4 5 6]", r.String())
}

func TestStatic_SymmetricEviction(t *testing.T) {
	r := newStaticInts(t, 4, 1, 2, 3, 4)

	r.PushBack(5)
	assert.Equal(t, []int{2, 3, 4, 5}, r.ToSlice())

	r.PushFront(0)
	assert.Equal(t, []int{0, 2, 3, 4}, r.ToSlice())
	assert.Equal(t, 4, r.Len())
}

func TestStatic_PushFrontIntoEmpty(t *testing.T) {
	r, err := NewStatic[string](3)
	require.NoError(t, err)

	r.PushFront("c")
	r.PushFront("b")
	r.PushFront("a")

	assert.Equal(t, []string{"a", "b", "c"}, r.ToSlice())
	assert.Equal(t, "a", r.Front())
	assert.Equal(t, "c", r.Back())
}

func TestStatic_SingleSlot(t *testing.T) {
	r, err := NewStatic[int](1)
	require.NoError(t, err)

	r.PushBack(1)
	assert.True(t, r.Full())
	assert.Equal(t, r.Front(), r.Back())

	r.PushBack(2)
	assert.Equal(t, []int{2}, r.ToSlice())

	r.PushFront(3)
	assert.Equal(t, []int{3}, r.ToSlice())

	assert.Equal(t, 3, r.PopBack())
	assert.True(t, r.Empty())
}

func TestStatic_Pop(t *testing.T) {
	r := newStaticInts(t, 4, 1, 2, 3)

	assert.Equal(t, 1, r.PopFront())
	assert.Equal(t, 3, r.PopBack())
	assert.Equal(t, []int{2}, r.ToSlice())

	assert.Equal(t, 2, r.PopFront())
	assert.True(t, r.Empty())

	// The emptied ring behaves like a fresh one.
	r.PushBack(9)
	assert.Equal(t, 9, r.Front())
	assert.Equal(t, 9, r.Back())
}

func TestStatic_EmptyPreconditionsPanic(t *testing.T) {
	r, err := NewStatic[int](2)
	require.NoError(t, err)

	assert.PanicsWithValue(t, "ring: Front on an empty ring", func() { r.Front() })
	assert.PanicsWithValue(t, "ring: Back on an empty ring", func() { r.Back() })
	assert.PanicsWithValue(t, "ring: PopFront on an empty ring", func() { r.PopFront() })
	assert.PanicsWithValue(t, "ring: PopBack on an empty ring", func() { r.PopBack() })
	assert.Panics(t, func() { r.At(0) })
}

func TestStatic_IndexedAccess(t *testing.T) {
	r := newStaticInts(t, 4, 1, 2, 3, 4)
	r.PushBack(5)
	r.PushBack(6)

	for i, want := range []int{3, 4, 5, 6} {
		assert.Equal(t, want, r.At(i))
	}

	*r.Ref(1) = 40
	assert.Equal(t, 40, r.At(1))

	*r.FrontRef() = 30
	*r.BackRef() = 60
	assert.Equal(t, []int{30, 40, 5, 60}, r.ToSlice())

	assert.PanicsWithValue(t, "ring: index 4 out of range [0:4]", func() { r.At(4) })
	assert.Panics(t, func() { r.Ref(-1) })
}

func TestStatic_SlicesAndData(t *testing.T) {
	r := newStaticInts(t, 4, 1, 2, 3, 4)

	a, b := r.Slices()
	assert.Equal(t, []int{1, 2, 3, 4}, a)
	assert.Nil(t, b)

	r.PushBack(5)
	r.PushBack(6)

	a, b = r.Slices()
	assert.Equal(t, []int{3, 4}, a)
	assert.Equal(t, []int{5, 6}, b)
	assert.Equal(t, []int{5, 6, 3, 4}, r.Data())

	for i := range r.Data() {
		assert.True(t, r.Live(i))
	}
}

func TestStatic_DeadSlotsAreZero(t *testing.T) {
	r := newStaticInts(t, 4, 1, 2)

	assert.Equal(t, 1, r.PopFront())
	assert.Equal(t, []int{0, 2, 0, 0}, r.Data())
	assert.False(t, r.Live(0))
	assert.True(t, r.Live(1))

	a, b := r.Slices()
	assert.Equal(t, []int{2}, a)
	assert.Nil(t, b)
}

func TestStatic_Emplace(t *testing.T) {
	r := newStaticInts(t, 3, 1, 2, 3)

	require.NoError(t, r.EmplaceBack(func() (int, error) { return 4, nil }))
	assert.Equal(t, []int{2, 3, 4}, r.ToSlice())

	require.NoError(t, r.EmplaceFront(func() (int, error) { return 1, nil }))
	assert.Equal(t, []int{1, 2, 3}, r.ToSlice())
}

func TestStatic_EmplaceFailureLeavesRingUnchanged(t *testing.T) {
	var dropped []int
	r, err := NewStaticFrom(3, []int{1, 2, 3}, WithDropCallback(func(v int) {
		dropped = append(dropped, v)
	}))
	require.NoError(t, err)

	boom := fmt.Errorf("boom")
	err = r.EmplaceBack(func() (int, error) { return 0, boom })
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "ring.EmplaceBack: construct element failed")

	err = r.EmplaceFront(func() (int, error) { return 0, boom })
	assert.ErrorIs(t, err, boom)

	assert.Panics(t, func() {
		_ = r.EmplaceBack(func() (int, error) { panic("ctor") })
	})

	assert.Equal(t, []int{1, 2, 3}, r.ToSlice())
	assert.Empty(t, dropped, "a failed construction must not evict")
}

func TestStatic_ClearReportsBackToFront(t *testing.T) {
	var dropped []int
	r, err := NewStaticFrom(4, []int{1, 2, 3}, WithDropCallback(func(v int) {
		dropped = append(dropped, v)
	}))
	require.NoError(t, err)

	r.Clear()
	assert.Equal(t, []int{3, 2, 1}, dropped)
	assert.True(t, r.Empty())
	assert.Equal(t, []int{0, 0, 0, 0}, r.Data())

	r.PushBack(7)
	assert.Equal(t, 7, r.Data()[0], "cleared ring restarts at slot 0")
}

func TestStatic_EvictionCallback(t *testing.T) {
	var dropped []int
	r, err := NewStatic(2, WithDropCallback(func(v int) {
		dropped = append(dropped, v)
	}))
	require.NoError(t, err)

	r.PushBack(1)
	r.PushBack(2)
	r.PushBack(3)
	r.PushFront(0)

	assert.Equal(t, []int{1, 3}, dropped)
	assert.Equal(t, []int{0, 2}, r.ToSlice())

	// Popped elements go back to the caller, not the callback.
	r.PopFront()
	assert.Equal(t, []int{1, 3}, dropped)
}

func TestNewStaticFilled(t *testing.T) {
	r, err := NewStaticFilled(4, 3, "x")
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "x", "x"}, r.ToSlice())
	assert.False(t, r.Full())

	_, err = NewStaticFilled(2, 3, "x")
	assert.ErrorIs(t, err, cerrors.ErrCapacityExceeded)
	assert.True(t, cerrors.IsRange(err))

	_, err = NewStaticFilled(2, -1, "x")
	assert.True(t, cerrors.IsInvalid(err))

	_, err = NewStaticFilled(0, 0, "x")
	assert.ErrorIs(t, err, cerrors.ErrZeroCapacity)
}

func TestNewStaticFrom_TooMany(t *testing.T) {
	r, err := NewStaticFrom(2, []int{1, 2, 3})
	assert.Nil(t, r)
	assert.ErrorIs(t, err, cerrors.ErrCapacityExceeded)
	assert.True(t, cerrors.IsRange(err))
}

func TestNewStaticFromSeq(t *testing.T) {
	r, err := NewStaticFromSeq(5, slices.Values([]int{1, 2, 3}))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, r.ToSlice())
}

func TestNewStaticFromSeq_Overflow(t *testing.T) {
	var dropped []int
	pulled := 0
	seq := func(yield func(int) bool) {
		for i := 1; i <= 10; i++ {
			pulled++
			if !yield(i) {
				return
			}
		}
	}

	r, err := NewStaticFromSeq(3, seq, WithDropCallback(func(v int) {
		dropped = append(dropped, v)
	}))
	assert.Nil(t, r)
	assert.ErrorIs(t, err, cerrors.ErrCapacityExceeded)
	assert.True(t, cerrors.IsRange(err))
	assert.Equal(t, 4, pulled, "reading stops at the first value that does not fit")
	assert.Equal(t, []int{3, 2, 1}, dropped)
}

func TestStatic_CloneIsIndependent(t *testing.T) {
	orig := newStaticInts(t, 4, 1, 2, 3, 4)
	orig.PushBack(5)

	cp := orig.Clone()
	assert.Equal(t, orig.ToSlice(), cp.ToSlice())
	assert.Equal(t, orig.MaxSize(), cp.MaxSize())

	cp.PushBack(6)
	*cp.FrontRef() = 100

	assert.Equal(t, []int{2, 3, 4, 5}, orig.ToSlice())
	assert.Equal(t, []int{100, 4, 5, 6}, cp.ToSlice())
}

func TestStatic_CloneUsesCloneFunc(t *testing.T) {
	clone := func(s []int) []int { return slices.Clone(s) }
	orig, err := NewStaticFrom(2, [][]int{{1, 2}}, WithCloneFunc(clone))
	require.NoError(t, err)

	cp := orig.Clone()
	cp.Front()[0] = 99

	assert.Equal(t, []int{1, 2}, orig.Front())
	assert.Equal(t, []int{99, 2}, cp.Front())
}

func TestStatic_Assign(t *testing.T) {
	var dropped []int
	dst, err := NewStaticFrom(4, []int{7, 8}, WithDropCallback(func(v int) {
		dropped = append(dropped, v)
	}))
	require.NoError(t, err)

	src := newStaticInts(t, 3, 1, 2, 3)
	require.NoError(t, dst.Assign(src))

	assert.Equal(t, []int{1, 2, 3}, dst.ToSlice())
	assert.Equal(t, 4, dst.MaxSize())
	assert.Equal(t, []int{8, 7}, dropped)
	assert.Equal(t, []int{1, 2, 3}, src.ToSlice())

	require.NoError(t, dst.Assign(dst))
	assert.Equal(t, []int{1, 2, 3}, dst.ToSlice())
}

func TestStatic_AssignTooLarge(t *testing.T) {
	dst := newStaticInts(t, 2, 9)
	src := newStaticInts(t, 3, 1, 2, 3)

	err := dst.Assign(src)
	assert.ErrorIs(t, err, cerrors.ErrCapacityExceeded)
	assert.True(t, cerrors.IsRange(err))
	assert.Equal(t, []int{9}, dst.ToSlice())
}

func TestStatic_MoveFrom(t *testing.T) {
	var dropped []int
	onDrop := WithDropCallback(func(v int) { dropped = append(dropped, v) })

	src, err := NewStaticFrom(3, []int{1, 2, 3}, onDrop)
	require.NoError(t, err)
	src.PushBack(4)

	dst, err := NewStatic(3, onDrop)
	require.NoError(t, err)

	dropped = nil
	require.NoError(t, dst.MoveFrom(src))

	assert.Equal(t, []int{2, 3, 4}, dst.ToSlice())
	assert.True(t, src.Empty())
	assert.Empty(t, dropped)

	src.PushBack(5)
	assert.Equal(t, []int{5}, src.ToSlice())

	small := newStaticInts(t, 1)
	assert.True(t, cerrors.IsRange(small.MoveFrom(dst)))
	assert.Equal(t, 3, dst.Len())
}

func TestStatic_Release(t *testing.T) {
	var dropped []int
	r, err := NewStaticFrom(3, []int{1, 2}, WithDropCallback(func(v int) {
		dropped = append(dropped, v)
	}))
	require.NoError(t, err)

	r.Release()
	assert.Equal(t, []int{2, 1}, dropped)
	assert.Equal(t, 0, r.MaxSize())
	assert.True(t, r.Empty())
	assert.False(t, r.Full())
	assert.Nil(t, r.Data())
	assert.PanicsWithValue(t, "ring: PushBack on a ring with no capacity", func() { r.PushBack(1) })
}
