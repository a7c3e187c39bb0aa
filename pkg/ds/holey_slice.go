package ds

import (
	"iter"
	"slices"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// holeySliceSlot is a single position in the backing storage of a
// HoleySlice. It is either occupied and holds a value, or it is a hole
// that was left behind by Remove(). Holes always hold the zero value.
type holeySliceSlot[T any] struct {
	value    T
	occupied bool
}

// HoleySlice is a growable sequence of values, where every value is
// identified by the index at which it was stored. Removing a value
// leaves a hole at its index instead of shifting subsequent values,
// meaning that the indices of all other values remain stable. Holes are
// reused by subsequent calls to Push(), with the most recently created
// hole being reused first. The backing storage never shrinks.
//
// An index only identifies a value up to the point it is removed. Once
// its slot has been reused, the same index refers to the new value.
// HoleySlice cannot detect the use of such stale indices. Callers that
// hold on to indices across removals are responsible for dropping them
// when the value is removed.
//
// The zero value is an empty HoleySlice that is ready for use.
// HoleySlice is not safe for concurrent use. Use
// NewSynchronizedContainer() when sharing it between goroutines.
type HoleySlice[T any] struct {
	slots []holeySliceSlot[T]
	free  Stack[int]
}

var _ Container[int] = (*HoleySlice[int])(nil)

// NewHoleySlice creates a HoleySlice that contains no values.
func NewHoleySlice[T any]() *HoleySlice[T] {
	return &HoleySlice[T]{}
}

// Push a value into the HoleySlice, returning the index at which it is
// stored. If holes are present, the most recently created one is
// filled. Otherwise the value is appended.
func (s *HoleySlice[T]) Push(value T) int {
	if s.free.Len() > 0 {
		index := s.free.Pop()
		s.slots[index] = holeySliceSlot[T]{value: value, occupied: true}
		return index
	}
	s.slots = append(s.slots, holeySliceSlot[T]{value: value, occupied: true})
	return len(s.slots) - 1
}

// getSlot returns the occupied slot at a given index.
func (s *HoleySlice[T]) getSlot(index int) (*holeySliceSlot[T], error) {
	if index < 0 || index >= len(s.slots) {
		return nil, status.Errorf(codes.OutOfRange, "Index %d is out of range, as the slice only has %d slots", index, len(s.slots))
	}
	slot := &s.slots[index]
	if !slot.occupied {
		return nil, status.Errorf(codes.NotFound, "Index %d refers to a hole", index)
	}
	return slot, nil
}

// Remove the value stored at a given index, returning it. The slot is
// converted to a hole, which is reused by the next call to Push().
//
// An error with code OUT_OF_RANGE is returned if the index lies beyond
// the end of the slice. An error with code NOT_FOUND is returned if the
// index refers to a hole. The HoleySlice is left unmodified in both
// cases.
func (s *HoleySlice[T]) Remove(index int) (T, error) {
	slot, err := s.getSlot(index)
	if err != nil {
		var defaultValue T
		return defaultValue, err
	}
	value := slot.value
	*slot = holeySliceSlot[T]{}
	s.free.Push(index)
	return value, nil
}

// Get the value stored at a given index. Errors are reported in the
// same way as Remove().
func (s *HoleySlice[T]) Get(index int) (T, error) {
	slot, err := s.getSlot(index)
	if err != nil {
		var defaultValue T
		return defaultValue, err
	}
	return slot.value, nil
}

// GetPointer returns a pointer to the value stored at a given index,
// allowing it to be modified in place. The pointer refers to the
// backing storage of the HoleySlice, and must not be used after the
// next call to Push() or Remove(). Errors are reported in the same way
// as Remove().
func (s *HoleySlice[T]) GetPointer(index int) (*T, error) {
	slot, err := s.getSlot(index)
	if err != nil {
		return nil, err
	}
	return &slot.value, nil
}

// MustGet is identical to Get(), except that it panics if the index
// does not refer to a value.
func (s *HoleySlice[T]) MustGet(index int) T {
	value, err := s.Get(index)
	if err != nil {
		panic(err)
	}
	return value
}

// IsHole returns true if the index lies within the bounds of the slice,
// and refers to a slot from which the value has been removed.
func (s *HoleySlice[T]) IsHole(index int) bool {
	return index >= 0 && index < len(s.slots) && !s.slots[index].occupied
}

// NextIndex returns the index at which the next call to Push() will
// store its value.
func (s *HoleySlice[T]) NextIndex() int {
	if index, ok := s.free.Peek(); ok {
		return index
	}
	return len(s.slots)
}

// Len returns the number of values stored in the HoleySlice, not
// counting holes.
func (s *HoleySlice[T]) Len() int {
	return len(s.slots) - s.free.Len()
}

// IsEmpty returns true if the HoleySlice does not contain any values.
// It may still contain holes.
func (s *HoleySlice[T]) IsEmpty() bool {
	return s.Len() == 0
}

// SlotCount returns the number of slots in the HoleySlice, including
// holes. All valid indices are less than this value.
func (s *HoleySlice[T]) SlotCount() int {
	return len(s.slots)
}

// Capacity returns the number of slots the HoleySlice is able to hold
// before its backing storage needs to be reallocated.
func (s *HoleySlice[T]) Capacity() int {
	return cap(s.slots)
}

// Grow the capacity of the HoleySlice, so that another n values can be
// appended to it without reallocating the backing storage. Holes are
// not taken into account. Grow panics if n is negative.
func (s *HoleySlice[T]) Grow(n int) {
	s.slots = slices.Grow(s.slots, n)
}

// Clone returns a shallow copy of the HoleySlice. Values and holes are
// stored at the same indices, and holes are reused in the same order.
func (s *HoleySlice[T]) Clone() *HoleySlice[T] {
	return &HoleySlice[T]{
		slots: slices.Clone(s.slots),
		free:  slices.Clone(s.free),
	}
}

// All returns a sequence of all values stored in the HoleySlice and
// their indices. Values are yielded in ascending index order, with
// holes skipped. The HoleySlice must not be modified while the
// sequence is being iterated.
func (s *HoleySlice[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for index := range s.slots {
			if slot := &s.slots[index]; slot.occupied {
				if !yield(index, slot.value) {
					return
				}
			}
		}
	}
}

// Values is identical to All(), except that only values are yielded.
func (s *HoleySlice[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range s.All() {
			if !yield(value) {
				return
			}
		}
	}
}

// AllPointers is identical to All(), except that it yields pointers to
// the values, allowing them to be modified in place.
func (s *HoleySlice[T]) AllPointers() iter.Seq2[int, *T] {
	return func(yield func(int, *T) bool) {
		for index := range s.slots {
			if slot := &s.slots[index]; slot.occupied {
				if !yield(index, &slot.value) {
					return
				}
			}
		}
	}
}
