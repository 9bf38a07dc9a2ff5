// Copyright 2025 momentics@gmail.com
// Licensed under the Apache License, Version 2.0.

// property_test.go — Randomized state-machine checks against a reference FIFO.
package ring

import (
	"errors"
	"testing"

	"github.com/eapache/queue"
	"pgregory.net/rapid"

	"github.com/momentics/ringbuf/api"
)

// machine drives a Buffer and an eapache queue side by side.
type machine struct {
	rb    *Buffer[int32]
	model *queue.Queue
	n     int
}

func newMachine(t *rapid.T) *machine {
	n := rapid.IntRange(1, 64).Draw(t, "capacity")
	rb, err := New(make([]int32, n))
	if err != nil {
		t.Fatalf("New(%d): %v", n, err)
	}
	return &machine{rb: rb, model: queue.New(), n: n}
}

func (m *machine) write(t *rapid.T) {
	v := rapid.Int32().Draw(t, "value")
	err := m.rb.Write(&v)
	if m.model.Length() == m.n {
		if !errors.Is(err, api.ErrBufferFull) {
			t.Fatalf("write on full buffer: got %v", err)
		}
		return
	}
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	m.model.Add(v)
}

func (m *machine) read(t *rapid.T) {
	var got int32
	err := m.rb.Read(&got)
	if m.model.Length() == 0 {
		if !errors.Is(err, api.ErrBufferEmpty) {
			t.Fatalf("read on empty buffer: got %v", err)
		}
		return
	}
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if want := m.model.Remove().(int32); got != want {
		t.Fatalf("read %d, want %d", got, want)
	}
}

func (m *machine) peek(t *rapid.T) {
	pos := rapid.IntRange(-1, m.n).Draw(t, "position")
	var a, b int32
	err := m.rb.Peek(&a, pos)
	switch {
	case pos < 0 || pos >= m.n:
		if !errors.Is(err, api.ErrInvalidArgument) {
			t.Fatalf("peek(%d) outside capacity %d: got %v", pos, m.n, err)
		}
	case m.model.Length() == 0:
		if !errors.Is(err, api.ErrBufferEmpty) {
			t.Fatalf("peek(%d) on empty buffer: got %v", pos, err)
		}
	case pos >= m.model.Length():
		if !errors.Is(err, api.ErrPositionOutOfRange) {
			t.Fatalf("peek(%d) with %d stored: got %v", pos, m.model.Length(), err)
		}
	default:
		if err != nil {
			t.Fatalf("peek(%d): %v", pos, err)
		}
		if want := m.model.Get(pos).(int32); a != want {
			t.Fatalf("peek(%d) = %d, want %d", pos, a, want)
		}
		if err := m.rb.Peek(&b, pos); err != nil || a != b {
			t.Fatalf("repeated peek(%d) = %d (%v), first %d", pos, b, err, a)
		}
	}
}

func (m *machine) check(t *rapid.T) {
	used, err := m.rb.ElementsUsed()
	if err != nil {
		t.Fatal(err)
	}
	avail, err := m.rb.ElementsAvailable()
	if err != nil {
		t.Fatal(err)
	}
	if used != m.model.Length() {
		t.Fatalf("used %d, model holds %d", used, m.model.Length())
	}
	if used+avail != m.n {
		t.Fatalf("used %d + available %d != capacity %d", used, avail, m.n)
	}
	if m.rb.head < 0 || m.rb.head >= m.n || m.rb.tail < 0 || m.rb.tail >= m.n {
		t.Fatalf("cursor out of range: head %d tail %d capacity %d", m.rb.head, m.rb.tail, m.n)
	}
	if (m.rb.head+used)%m.n != m.rb.tail {
		t.Fatalf("tail %d is not head %d + used %d mod %d", m.rb.tail, m.rb.head, used, m.n)
	}

	full, _ := m.rb.IsFull()
	empty, _ := m.rb.IsEmpty()
	if (full == api.Full) != (used == m.n) {
		t.Fatalf("IsFull = %v with %d/%d used", full, used, m.n)
	}
	if (empty == api.Empty) != (used == 0) {
		t.Fatalf("IsEmpty = %v with %d used", empty, used)
	}
	if full == api.Full && empty == api.Empty {
		t.Fatal("buffer reports full and empty at once")
	}
	if st := m.rb.Stats(); st.HighWater < used || st.HighWater > m.n {
		t.Fatalf("high water %d outside [%d, %d]", st.HighWater, used, m.n)
	}
}

func TestBufferMatchesReferenceQueue(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		m := newMachine(t)
		t.Repeat(map[string]func(*rapid.T){
			"write": m.write,
			"read":  m.read,
			"peek":  m.peek,
			"":      m.check,
		})
	})
}

func TestFIFOOrderProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 255).Draw(t, "capacity")
		skew := rapid.IntRange(0, n-1).Draw(t, "skew")
		vals := rapid.SliceOfN(rapid.Byte(), 0, n).Draw(t, "values")

		rb, err := New(make([]byte, n))
		if err != nil {
			t.Fatal(err)
		}
		// rotate the cursors so the sequence may straddle the wrap point
		for i := 0; i < skew; i++ {
			_ = rb.Push(0)
			_, _ = rb.Pop()
		}
		for i := range vals {
			if err := rb.Write(&vals[i]); err != nil {
				t.Fatalf("write %d: %v", i, err)
			}
		}
		for i, want := range vals {
			got, err := rb.Pop()
			if err != nil || got != want {
				t.Fatalf("pop %d = %d (%v), want %d", i, got, err, want)
			}
		}
		if empty, _ := rb.IsEmpty(); empty != api.Empty {
			t.Fatal("buffer not empty after draining")
		}
	})
}
