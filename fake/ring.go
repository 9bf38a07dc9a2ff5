// Package fake
// Author: momentics <momentics@gmail.com>
//
// Fake ring inspector for testing observers without a live buffer.

package fake

import (
	"sync"

	"github.com/momentics/ringbuf/ring"
)

// Ring reports a programmable snapshot or error and counts inspections.
type Ring struct {
	mu    sync.Mutex
	snap  ring.Snapshot
	err   error
	calls int
}

// NewRing creates a fake ring reporting snap.
func NewRing(snap ring.Snapshot) *Ring {
	return &Ring{snap: snap}
}

// Snapshot returns the configured snapshot or error.
func (r *Ring) Snapshot() (ring.Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.err != nil {
		return ring.Snapshot{}, r.err
	}
	return r.snap, nil
}

// Set replaces the reported snapshot and clears any error.
func (r *Ring) Set(snap ring.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snap = snap
	r.err = nil
}

// Fail makes subsequent Snapshot calls return err.
func (r *Ring) Fail(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

// Calls returns how many times Snapshot was called.
func (r *Ring) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}
