// File: internal/replay/replay.go
// Package replay runs scripted operation sequences against a ring buffer
// and checks each outcome against the script's expectations.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package replay

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/momentics/ringbuf/api"
	"github.com/momentics/ringbuf/control"
	"github.com/momentics/ringbuf/ring"
)

// StepResult is the outcome of one execution of a scenario step.
type StepResult struct {
	Step      int // 1-based index into Scenario.Steps
	Iteration int // 0-based repetition of the step
	Op        control.Op
	Code      api.ErrorCode
	Value     int64
	HasValue  bool
	Status    string
	Count     int
	HasCount  bool
	Mismatch  string // empty when the expectation held
}

// Report collects every step outcome plus the final ring state.
type Report struct {
	Scenario    string
	Capacity    int
	Initialized bool
	Results     []StepResult
	Final       ring.Snapshot
}

// Failures returns the results whose expectation did not hold.
func (r *Report) Failures() []StepResult {
	var out []StepResult
	for _, res := range r.Results {
		if res.Mismatch != "" {
			out = append(out, res)
		}
	}
	return out
}

// Passed reports whether every expectation held.
func (r *Report) Passed() bool {
	return len(r.Failures()) == 0
}

type options struct {
	logger  *slog.Logger
	metrics *control.MetricsRegistry
	probes  *control.DebugProbes
}

// Option configures Run.
type Option func(*options)

// WithLogger sets the logger; by default nothing is logged.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics publishes the final ring snapshot under the scenario name.
func WithMetrics(reg *control.MetricsRegistry) Option {
	return func(o *options) { o.metrics = reg }
}

// WithProbes registers the ring as a debug probe; the probe state is
// logged at debug level once the script finishes.
func WithProbes(dp *control.DebugProbes) Option {
	return func(o *options) { o.probes = dp }
}

// Run executes sc against a fresh ring of sc.Capacity int64 slots.
// A zero capacity replays against an uninitialized ring.
// Cancellation is checked between step executions; the partial report is
// returned together with the context error.
func Run(ctx context.Context, sc *control.Scenario, opts ...Option) (*Report, error) {
	o := options{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(&o)
	}
	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}

	log := o.logger.With("scenario", sc.Name)
	rep := &Report{Scenario: sc.Name, Capacity: sc.Capacity, Initialized: true}

	rb, err := ring.New(make([]int64, sc.Capacity))
	if err != nil {
		log.Warn("ring construction refused, replaying against uninitialized ring", "error", err)
		rb = &ring.Buffer[int64]{}
		rep.Initialized = false
	}
	if o.probes != nil {
		o.probes.RegisterRing(sc.Name, rb)
	}

	for i, st := range sc.Steps {
		for it := 0; it < st.Times(); it++ {
			if err := ctx.Err(); err != nil {
				return rep, fmt.Errorf("replay: step %d: %w", i+1, err)
			}
			res := execute(rb, st, it)
			res.Step = i + 1
			res.Mismatch = mismatch(res, st.Expect)
			rep.Results = append(rep.Results, res)

			if res.Mismatch != "" {
				log.Warn("expectation failed", "step", res.Step, "iteration", it, "op", st.Op, "reason", res.Mismatch)
			} else {
				log.Debug("step", "step", res.Step, "iteration", it, "op", st.Op, "result", res.Code)
			}
		}
	}

	if snap, err := rb.Snapshot(); err == nil {
		rep.Final = snap
		if o.metrics != nil {
			o.metrics.Set(sc.Name, snap)
		}
	}
	if o.probes != nil && log.Enabled(ctx, slog.LevelDebug) {
		log.Debug("probe state", "state", o.probes.DumpState())
	}
	log.Info("scenario finished",
		"steps", len(rep.Results),
		"failures", len(rep.Failures()),
		"used", rep.Final.Used)
	return rep, nil
}

func execute(rb *ring.Buffer[int64], st control.Step, iteration int) StepResult {
	res := StepResult{Iteration: iteration, Op: st.Op}
	var err error
	switch st.Op {
	case control.OpWrite:
		v := st.Value + int64(iteration)
		res.Value, res.HasValue = v, true
		err = rb.Write(&v)
	case control.OpRead:
		var v int64
		if err = rb.Read(&v); err == nil {
			res.Value, res.HasValue = v, true
		}
	case control.OpPeek:
		var v int64
		if err = rb.Peek(&v, st.Position); err == nil {
			res.Value, res.HasValue = v, true
		}
	case control.OpIsFull:
		var s api.FullStatus
		if s, err = rb.IsFull(); err == nil {
			res.Status = s.String()
		}
	case control.OpIsEmpty:
		var s api.EmptyStatus
		if s, err = rb.IsEmpty(); err == nil {
			res.Status = s.String()
		}
	case control.OpUsed:
		if res.Count, err = rb.ElementsUsed(); err == nil {
			res.HasCount = true
		}
	case control.OpAvailable:
		if res.Count, err = rb.ElementsAvailable(); err == nil {
			res.HasCount = true
		}
	case control.OpReset:
		err = rb.Reset()
	}
	res.Code = api.CodeOf(err)
	return res
}

func mismatch(res StepResult, e *control.Expect) string {
	if want := e.Code(); res.Code != want {
		return fmt.Sprintf("got %s, want %s", res.Code, want)
	}
	if e == nil {
		return ""
	}
	if e.Value != nil && (!res.HasValue || res.Value != *e.Value) {
		return fmt.Sprintf("got value %s, want %d", describeValue(res), *e.Value)
	}
	if e.Status != "" && res.Status != e.Status {
		return fmt.Sprintf("got status %q, want %q", res.Status, e.Status)
	}
	if e.Count != nil && (!res.HasCount || res.Count != *e.Count) {
		return fmt.Sprintf("got count %d, want %d", res.Count, *e.Count)
	}
	return ""
}

func describeValue(res StepResult) string {
	if !res.HasValue {
		return "none"
	}
	return fmt.Sprint(res.Value)
}
