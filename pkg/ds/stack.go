package ds

// Stack is a last-in, first-out stack that is backed by Go's built-in
// slice type. The zero value is an empty stack that is ready for use.
type Stack[T any] []T

// Len returns the number of elements on the stack.
func (s Stack[T]) Len() int {
	return len(s)
}

// Swap two elements contained in the stack.
func (s Stack[T]) Swap(i, j int) {
	s[i], s[j] = s[j], s[i]
}

// Push a new element to the top of the stack.
func (s *Stack[T]) Push(x T) {
	*s = append(*s, x)
}

// Peek returns the element at the top of the stack without removing
// it. The boolean return value is false if the stack is empty.
func (s Stack[T]) Peek() (T, bool) {
	if len(s) == 0 {
		var defaultValue T
		return defaultValue, false
	}
	return s[len(s)-1], true
}

// Pop an element from the top of the stack. The element in the
// underlying slice is set to zero, so that any objects that were
// referenced by it may be garbage collected. Popping from an empty
// stack panics.
func (s *Stack[T]) Pop() T {
	last := (*s)[len(*s)-1]
	var defaultValue T
	(*s)[len(*s)-1] = defaultValue
	*s = (*s)[:len(*s)-1]
	return last
}
