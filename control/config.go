// control/config.go
// Author: momentics <momentics@gmail.com>
//
// Replay scenario configuration: a YAML script of ring operations with
// optional expectations, decoded strictly and validated before use.

package control

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/momentics/ringbuf/api"
)

// Op names one ring operation in a scenario step.
type Op string

const (
	OpWrite     Op = "write"
	OpRead      Op = "read"
	OpPeek      Op = "peek"
	OpIsFull    Op = "is_full"
	OpIsEmpty   Op = "is_empty"
	OpUsed      Op = "used"
	OpAvailable Op = "available"
	OpReset     Op = "reset"
)

// Limits on scenario size. Replay provisions Capacity slots up front and
// keeps one result per step execution.
const (
	MaxCapacity = 1 << 16
	MaxRepeat   = 1 << 16
)

// Expect describes the outcome a step must produce. Empty fields are not
// checked, except Error which defaults to "ok".
type Expect struct {
	Error  string `yaml:"error,omitempty"`
	Value  *int64 `yaml:"value,omitempty"`
	Status string `yaml:"status,omitempty"`
	Count  *int   `yaml:"count,omitempty"`
}

// Code returns the expected error code.
func (e *Expect) Code() api.ErrorCode {
	if e == nil || e.Error == "" {
		return api.ErrCodeOK
	}
	c, _ := api.ParseErrorCode(e.Error)
	return c
}

// Step is one scripted operation. A write repeated n times writes
// Value, Value+1, ... Value+n-1.
type Step struct {
	Op       Op      `yaml:"op"`
	Value    int64   `yaml:"value,omitempty"`
	Position int     `yaml:"position,omitempty"`
	Repeat   int     `yaml:"repeat,omitempty"`
	Expect   *Expect `yaml:"expect,omitempty"`
}

// Times returns how often the step runs.
func (s Step) Times() int {
	if s.Repeat < 1 {
		return 1
	}
	return s.Repeat
}

// Scenario is a named script run against one ring of Capacity slots.
// Capacity 0 replays against an uninitialized ring.
type Scenario struct {
	Name     string `yaml:"name"`
	Capacity int    `yaml:"capacity"`
	Steps    []Step `yaml:"steps"`
}

// LoadScenario reads and validates a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("control: read scenario: %w", err)
	}
	sc, err := ParseScenario(data)
	if err != nil {
		return nil, fmt.Errorf("control: %s: %w", path, err)
	}
	return sc, nil
}

// ParseScenario decodes YAML, rejecting unknown fields, and validates it.
func ParseScenario(data []byte) (*Scenario, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var sc Scenario
	if err := dec.Decode(&sc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, invalid("empty scenario")
		}
		return nil, fmt.Errorf("decode scenario: %w", err)
	}
	if sc.Name == "" {
		sc.Name = "scenario"
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Validate checks the scenario for structural mistakes. Returned errors
// match api.ErrInvalidArgument.
func (sc *Scenario) Validate() error {
	if sc == nil {
		return invalid("nil scenario")
	}
	if sc.Capacity < 0 {
		return invalid("capacity %d is negative", sc.Capacity)
	}
	if sc.Capacity > MaxCapacity {
		return invalid("capacity %d exceeds %d", sc.Capacity, MaxCapacity)
	}
	if len(sc.Steps) == 0 {
		return invalid("scenario %q has no steps", sc.Name)
	}
	for i, st := range sc.Steps {
		if err := st.validate(); err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, st.Op, err)
		}
	}
	return nil
}

func (s Step) validate() error {
	switch s.Op {
	case OpWrite, OpRead, OpPeek, OpIsFull, OpIsEmpty, OpUsed, OpAvailable, OpReset:
	default:
		return invalid("unknown op %q", s.Op)
	}
	if s.Repeat < 0 {
		return invalid("repeat %d is negative", s.Repeat)
	}
	if s.Repeat > MaxRepeat {
		return invalid("repeat %d exceeds %d", s.Repeat, MaxRepeat)
	}
	if s.Op != OpWrite && s.Value != 0 {
		return invalid("value is only meaningful for write")
	}
	if s.Op != OpPeek && s.Position != 0 {
		return invalid("position is only meaningful for peek")
	}

	e := s.Expect
	if e == nil {
		return nil
	}
	if e.Error != "" {
		if _, ok := api.ParseErrorCode(e.Error); !ok {
			return invalid("unknown error code %q", e.Error)
		}
	}
	if e.Value != nil && s.Op != OpRead && s.Op != OpPeek {
		return invalid("expected value needs read or peek")
	}
	if e.Count != nil && s.Op != OpUsed && s.Op != OpAvailable {
		return invalid("expected count needs used or available")
	}
	switch e.Status {
	case "":
	case api.Full.String(), api.NotFull.String():
		if s.Op != OpIsFull {
			return invalid("status %q needs is_full", e.Status)
		}
	case api.Empty.String(), api.NotEmpty.String():
		if s.Op != OpIsEmpty {
			return invalid("status %q needs is_empty", e.Status)
		}
	default:
		return invalid("unknown status %q", e.Status)
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), api.ErrInvalidArgument)
}
