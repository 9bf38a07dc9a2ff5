// File: ring/ring.go
// Author: momentics <momentics@gmail.com>
//
// Fixed-capacity FIFO over caller-owned storage.
// Single-threaded. The head and tail cursors sit on separate cache lines;
// count and stats share a line and are written by both reads and writes.

package ring

import (
	"golang.org/x/sys/cpu"

	"github.com/momentics/ringbuf/api"
)

// Ensure compile-time interface compliance.
var _ api.Ring[any] = (*Buffer[any])(nil)

// Buffer is a bounded ring over a slice it borrows from the caller.
// The zero value is uninitialized: every operation fails with
// api.ErrNotInitialized.
type Buffer[T any] struct {
	storage []T
	count   int
	stats   Stats

	_    cpu.CacheLinePad
	head int // next read
	_    cpu.CacheLinePad
	tail int // next write
	_    cpu.CacheLinePad
}

// New builds a buffer over storage; capacity is len(storage).
// The buffer never allocates, copies or frees storage, and storage must not
// be modified by other means while the buffer is in use.
func New[T any](storage []T) (*Buffer[T], error) {
	if storage == nil {
		return nil, api.NewError(api.ErrCodeNotInitialized, "ring: nil storage")
	}
	if len(storage) == 0 {
		return nil, api.NewError(api.ErrCodeNotInitialized, "ring: zero capacity").
			WithContext("cap", cap(storage))
	}
	return &Buffer[T]{storage: storage}, nil
}

func (b *Buffer[T]) initialized() bool {
	return b != nil && len(b.storage) > 0
}

// Cap returns the capacity, 0 when uninitialized.
func (b *Buffer[T]) Cap() int {
	if !b.initialized() {
		return 0
	}
	return len(b.storage)
}

// Write copies *v into the tail slot.
func (b *Buffer[T]) Write(v *T) error {
	if !b.initialized() {
		return api.ErrNotInitialized
	}
	if b.count == len(b.storage) {
		b.stats.FullRejects++
		return api.ErrBufferFull
	}
	if v == nil {
		return api.ErrInvalidArgument
	}
	b.storage[b.tail] = *v
	b.tail = b.advance(b.tail)
	b.count++
	b.stats.Writes++
	if b.count > b.stats.HighWater {
		b.stats.HighWater = b.count
	}
	return nil
}

// Read moves the oldest element into *dst.
func (b *Buffer[T]) Read(dst *T) error {
	if !b.initialized() {
		return api.ErrNotInitialized
	}
	if b.count == 0 {
		b.stats.EmptyRejects++
		return api.ErrBufferEmpty
	}
	if dst == nil {
		return api.ErrInvalidArgument
	}
	*dst = b.storage[b.head]
	b.head = b.advance(b.head)
	b.count--
	b.stats.Reads++
	return nil
}

// Peek copies the element pos places after the oldest one into *dst.
// Position 0 is what the next Read would return.
func (b *Buffer[T]) Peek(dst *T, pos int) error {
	if !b.initialized() {
		return api.ErrNotInitialized
	}
	if pos < 0 || pos >= len(b.storage) || dst == nil {
		return api.ErrInvalidArgument
	}
	if b.count == 0 {
		b.stats.EmptyRejects++
		return api.ErrBufferEmpty
	}
	if pos >= b.count {
		return api.ErrPositionOutOfRange
	}
	idx := b.head + pos
	if idx >= len(b.storage) {
		idx -= len(b.storage)
	}
	*dst = b.storage[idx]
	b.stats.Peeks++
	return nil
}

// IsEmpty reports whether no element is stored.
func (b *Buffer[T]) IsEmpty() (api.EmptyStatus, error) {
	if !b.initialized() {
		return api.NotEmpty, api.ErrNotInitialized
	}
	if b.count == 0 {
		return api.Empty, nil
	}
	return api.NotEmpty, nil
}

// IsFull reports whether every slot is occupied.
func (b *Buffer[T]) IsFull() (api.FullStatus, error) {
	if !b.initialized() {
		return api.NotFull, api.ErrNotInitialized
	}
	if b.count == len(b.storage) {
		return api.Full, nil
	}
	return api.NotFull, nil
}

// ElementsUsed returns the number of stored elements.
func (b *Buffer[T]) ElementsUsed() (int, error) {
	if !b.initialized() {
		return 0, api.ErrNotInitialized
	}
	return b.count, nil
}

// ElementsAvailable returns the number of free slots.
func (b *Buffer[T]) ElementsAvailable() (int, error) {
	if !b.initialized() {
		return 0, api.ErrNotInitialized
	}
	return len(b.storage) - b.count, nil
}

// Reset drops every stored element. Storage contents are left as they are.
func (b *Buffer[T]) Reset() error {
	if !b.initialized() {
		return api.ErrNotInitialized
	}
	b.head, b.tail, b.count = 0, 0, 0
	return nil
}

// Push is Write for a value.
func (b *Buffer[T]) Push(v T) error {
	return b.Write(&v)
}

// Pop is Read returning the element.
func (b *Buffer[T]) Pop() (T, error) {
	var v T
	err := b.Read(&v)
	return v, err
}

// At is Peek returning the element.
func (b *Buffer[T]) At(pos int) (T, error) {
	var v T
	err := b.Peek(&v, pos)
	return v, err
}

// advance steps a cursor by one slot, wrapping at capacity.
func (b *Buffer[T]) advance(i int) int {
	i++
	if i == len(b.storage) {
		return 0
	}
	return i
}
