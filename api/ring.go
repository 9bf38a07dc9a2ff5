// Package api
// Author: momentics@gmail.com
//
// Fixed-capacity ring buffer contract over caller-provided storage.

package api

// Ring is a bounded FIFO over storage it does not own.
// Implementations are single-threaded; callers coordinate concurrent use.
type Ring[T any] interface {
	// Write copies *v into the slot at the tail.
	// Fails with ErrBufferFull when no slot is free.
	Write(v *T) error
	// Read copies the oldest element into *dst and removes it.
	// Fails with ErrBufferEmpty when nothing is stored.
	Read(dst *T) error
	// Peek copies the element at logical offset pos from the oldest one
	// into *dst without removing it.
	Peek(dst *T, pos int) error
	// IsEmpty reports Empty or NotEmpty.
	IsEmpty() (EmptyStatus, error)
	// IsFull reports Full or NotFull.
	IsFull() (FullStatus, error)
	// ElementsUsed returns the number of stored elements.
	ElementsUsed() (int, error)
	// ElementsAvailable returns the number of free slots.
	ElementsAvailable() (int, error)
}
