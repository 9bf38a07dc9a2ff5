// File: ring/stats.go
// Author: momentics <momentics@gmail.com>
//
// Operation counters and point-in-time snapshots for observers.

package ring

import "github.com/momentics/ringbuf/api"

// Stats counts buffer operations since construction.
// Rejections are counted without touching buffer contents or cursors.
type Stats struct {
	Writes       uint64
	Reads        uint64
	Peeks        uint64
	FullRejects  uint64 // writes refused with ErrBufferFull
	EmptyRejects uint64 // reads and peeks refused with ErrBufferEmpty
	HighWater    int    // largest element count observed
}

// Snapshot is the observable state of a buffer at one instant.
type Snapshot struct {
	Capacity  int
	Used      int
	Available int
	Full      bool
	Empty     bool
	Stats     Stats
}

// Stats returns a copy of the counters; zero for uninitialized buffers.
func (b *Buffer[T]) Stats() Stats {
	if !b.initialized() {
		return Stats{}
	}
	return b.stats
}

// Snapshot captures capacity, occupancy and counters in one value.
// Like every other method it must be called from the goroutine that owns
// the buffer.
func (b *Buffer[T]) Snapshot() (Snapshot, error) {
	if !b.initialized() {
		return Snapshot{}, api.ErrNotInitialized
	}
	return Snapshot{
		Capacity:  len(b.storage),
		Used:      b.count,
		Available: len(b.storage) - b.count,
		Full:      b.count == len(b.storage),
		Empty:     b.count == 0,
		Stats:     b.stats,
	}, nil
}
