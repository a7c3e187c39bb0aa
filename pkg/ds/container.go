package ds

import (
	"iter"
)

// Container of values that are addressed by a stable index. This
// interface is implemented by HoleySlice, and by decorators that add
// functionality such as locking and metrics on top of it.
type Container[T any] interface {
	Push(value T) int
	Remove(index int) (T, error)
	Get(index int) (T, error)
	GetPointer(index int) (*T, error)
	Len() int
	SlotCount() int
	All() iter.Seq2[int, T]
}
