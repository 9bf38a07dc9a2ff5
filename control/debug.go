// control/debug.go
// Author: momentics <momentics@gmail.com>
//
// Runtime debug handler and probe reflector for ring inspection.

package control

import (
	"sync"

	"github.com/momentics/ringbuf/api"
	"github.com/momentics/ringbuf/ring"
)

var _ api.Debug = (*DebugProbes)(nil)

// Inspector is anything that can report a ring snapshot.
type Inspector interface {
	Snapshot() (ring.Snapshot, error)
}

// DebugProbes holds registered probe functions.
type DebugProbes struct {
	mu     sync.RWMutex
	probes map[string]func() any
}

// NewDebugProbes creates a probe registry.
func NewDebugProbes() *DebugProbes {
	return &DebugProbes{
		probes: make(map[string]func() any),
	}
}

// RegisterProbe inserts a named debug hook.
func (dp *DebugProbes) RegisterProbe(name string, fn func() any) {
	dp.mu.Lock()
	defer dp.mu.Unlock()
	dp.probes[name] = fn
}

// RegisterRing registers a probe reporting the snapshot of r under
// "ring.<name>", or the error text when r cannot be inspected.
// Probes call into r, so DumpState must run on the goroutine owning r.
func (dp *DebugProbes) RegisterRing(name string, r Inspector) {
	dp.RegisterProbe("ring."+name, func() any {
		s, err := r.Snapshot()
		if err != nil {
			return err.Error()
		}
		return s
	})
}

// DumpState returns output of all probes.
func (dp *DebugProbes) DumpState() map[string]any {
	dp.mu.RLock()
	defer dp.mu.RUnlock()
	out := make(map[string]any)
	for k, fn := range dp.probes {
		out[k] = fn()
	}
	return out
}
