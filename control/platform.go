// control/platform.go
// Author: momentics <momentics@gmail.com>
//
// Platform facts relevant to ring layout, exposed as debug probes.

package control

import (
	"runtime"
	"unsafe"

	"golang.org/x/sys/cpu"
)

// RegisterPlatformProbes sets platform debug probes.
func RegisterPlatformProbes(dp *DebugProbes) {
	dp.RegisterProbe("platform.cpus", func() any {
		return runtime.NumCPU()
	})
	dp.RegisterProbe("platform.arch", func() any {
		return runtime.GOARCH
	})
	dp.RegisterProbe("platform.cache_line_pad", func() any {
		return int(unsafe.Sizeof(cpu.CacheLinePad{}))
	})
}
