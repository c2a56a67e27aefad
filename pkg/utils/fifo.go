package utils

import "errors"

var (
	// ErrFIFOOverflow is returned when pushing to a full FIFO.
	ErrFIFOOverflow = errors.New("FIFO buffer overflow")
	// ErrFIFOUnderflow is returned when popping from an empty FIFO.
	ErrFIFOUnderflow = errors.New("FIFO buffer underflow")
)

// FIFO is a fixed capacity first-in first-out ring buffer.
// Elements can also be accessed by their position from the
// head, which is used to mix values into queued elements.
type FIFO[T any] struct {
	buffer []T
	head   int
	size   int
}

// NewFIFO returns an empty FIFO holding up to capacity elements.
func NewFIFO[T any](capacity int) *FIFO[T] {
	return &FIFO[T]{buffer: make([]T, capacity)}
}

// Push adds value to the tail of the FIFO.
func (f *FIFO[T]) Push(value T) error {
	if f.size == len(f.buffer) {
		return ErrFIFOOverflow
	}
	f.buffer[(f.head+f.size)%len(f.buffer)] = value
	f.size++
	return nil
}

// Pop removes and returns the element at the head of the FIFO.
func (f *FIFO[T]) Pop() (T, error) {
	var value T
	if f.size == 0 {
		return value, ErrFIFOUnderflow
	}
	value = f.buffer[f.head]
	f.head = (f.head + 1) % len(f.buffer)
	f.size--
	return value, nil
}

// At returns the i-th element from the head. It panics if i is
// out of range.
func (f *FIFO[T]) At(i int) T {
	return f.buffer[f.index(i)]
}

// Set replaces the i-th element from the head. It panics if i
// is out of range.
func (f *FIFO[T]) Set(i int, value T) {
	f.buffer[f.index(i)] = value
}

func (f *FIFO[T]) index(i int) int {
	if i < 0 || i >= f.size {
		panic("utils: FIFO index out of range")
	}
	return (f.head + i) % len(f.buffer)
}

// Size returns the number of elements in the FIFO.
func (f *FIFO[T]) Size() int {
	return f.size
}

// Cap returns the capacity of the FIFO.
func (f *FIFO[T]) Cap() int {
	return len(f.buffer)
}

// Reset empties the FIFO.
func (f *FIFO[T]) Reset() {
	f.head = 0
	f.size = 0
}
