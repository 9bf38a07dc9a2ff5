// Package control
// Author: momentics <momentics@gmail.com>
//
// Metrics, debug introspection and scenario configuration around ring
// buffers.
//
// Provides:
//   - MetricsRegistry: latest ring snapshots, exported as a Prometheus collector
//   - DebugProbes: named probes dumped on demand, ring and platform probes
//   - Scenario: YAML replay scripts consumed by ringctl
//
// Rings are single-threaded. Everything here that reads a ring directly
// (probes) runs on the ring's goroutine; metrics receive pushed copies.
package control
