package ds

import (
	"iter"
	"sync"
)

// SynchronizedContainer is a decorator for Container that serializes
// all operations using a mutex, making it safe to share a HoleySlice
// between goroutines.
type SynchronizedContainer[T any] struct {
	lock sync.Mutex
	base Container[T]
}

var _ Container[int] = (*SynchronizedContainer[int])(nil)

// NewSynchronizedContainer creates a SynchronizedContainer that
// forwards all operations to a base Container. The base Container must
// not be accessed directly afterwards.
func NewSynchronizedContainer[T any](base Container[T]) *SynchronizedContainer[T] {
	return &SynchronizedContainer[T]{
		base: base,
	}
}

func (c *SynchronizedContainer[T]) Push(value T) int {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.base.Push(value)
}

func (c *SynchronizedContainer[T]) Remove(index int) (T, error) {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.base.Remove(index)
}

func (c *SynchronizedContainer[T]) Get(index int) (T, error) {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.base.Get(index)
}

// GetPointer returns a pointer to the value stored at a given index.
// The pointer is obtained while holding the lock, but any access
// through it happens without it. Use Update() to modify values in
// place safely.
func (c *SynchronizedContainer[T]) GetPointer(index int) (*T, error) {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.base.GetPointer(index)
}

// Update the value stored at a given index in place, while holding the
// lock. The callback must not call into the SynchronizedContainer.
func (c *SynchronizedContainer[T]) Update(index int, update func(value *T)) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	value, err := c.base.GetPointer(index)
	if err != nil {
		return err
	}
	update(value)
	return nil
}

func (c *SynchronizedContainer[T]) Len() int {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.base.Len()
}

func (c *SynchronizedContainer[T]) SlotCount() int {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.base.SlotCount()
}

// Snapshot returns a copy of all values stored in the container, in
// ascending index order.
func (c *SynchronizedContainer[T]) Snapshot() []T {
	c.lock.Lock()
	defer c.lock.Unlock()
	values := make([]T, 0, c.base.Len())
	for _, value := range c.base.All() {
		values = append(values, value)
	}
	return values
}

// All returns a sequence of all values stored in the container and
// their indices. The lock is held for the duration of the iteration,
// meaning the loop body must not call into the SynchronizedContainer.
func (c *SynchronizedContainer[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		c.lock.Lock()
		defer c.lock.Unlock()
		c.base.All()(yield)
	}
}
