// File: api/types.go
// Author: momentics <momentics@gmail.com>
//
// Shared API-level status enums returned by ring queries.

package api

// FullStatus is the answer of a Ring.IsFull query.
type FullStatus int

const (
	NotFull FullStatus = iota
	Full
)

func (s FullStatus) String() string {
	switch s {
	case Full:
		return "full"
	case NotFull:
		return "not_full"
	default:
		return "unknown"
	}
}

// EmptyStatus is the answer of a Ring.IsEmpty query.
type EmptyStatus int

const (
	NotEmpty EmptyStatus = iota
	Empty
)

func (s EmptyStatus) String() string {
	switch s {
	case Empty:
		return "empty"
	case NotEmpty:
		return "not_empty"
	default:
		return "unknown"
	}
}
