// Package api
// Author: momentics <momentics@gmail.com>
//
// Common error types and error handling utilities for ringbuf.

package api

import (
	"errors"
	"fmt"
)

// ErrorCode represents specific error conditions in the library.
type ErrorCode int

const (
	ErrCodeOK ErrorCode = iota
	ErrCodeNotInitialized
	ErrCodeInvalidArgument
	ErrCodeBufferFull
	ErrCodeBufferEmpty
	ErrCodePositionOutOfRange
	ErrCodeInternal
)

var codeNames = [...]string{
	ErrCodeOK:                 "ok",
	ErrCodeNotInitialized:     "not_initialized",
	ErrCodeInvalidArgument:    "invalid_argument",
	ErrCodeBufferFull:         "buffer_full",
	ErrCodeBufferEmpty:        "buffer_empty",
	ErrCodePositionOutOfRange: "position_out_of_range",
	ErrCodeInternal:           "internal",
}

func (c ErrorCode) String() string {
	if c >= 0 && int(c) < len(codeNames) {
		return codeNames[c]
	}
	return fmt.Sprintf("error_code(%d)", int(c))
}

// ParseErrorCode maps a name produced by ErrorCode.String back to its code.
func ParseErrorCode(name string) (ErrorCode, bool) {
	for i, n := range codeNames {
		if n == name {
			return ErrorCode(i), true
		}
	}
	return ErrCodeInternal, false
}

// Common errors returned by ring operations. They are allocated once;
// returning them never allocates.
var (
	ErrNotInitialized     = &Error{Code: ErrCodeNotInitialized, Message: "ring buffer not initialized"}
	ErrInvalidArgument    = &Error{Code: ErrCodeInvalidArgument, Message: "invalid argument"}
	ErrBufferFull         = &Error{Code: ErrCodeBufferFull, Message: "ring buffer full"}
	ErrBufferEmpty        = &Error{Code: ErrCodeBufferEmpty, Message: "ring buffer empty"}
	ErrPositionOutOfRange = &Error{Code: ErrCodePositionOutOfRange, Message: "peek position out of range"}
)

// Error represents a structured error with code and context.
type Error struct {
	Code    ErrorCode
	Message string
	Context map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if len(e.Context) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (context: %+v)", e.Message, e.Context)
}

// Is reports whether target is an *Error with the same code, so contextual
// errors match the package sentinels.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewError creates a new structured error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Context: make(map[string]any),
	}
}

// WithContext adds context information to the error.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// CodeOf extracts the ErrorCode carried by err. A nil error is ErrCodeOK,
// an error outside this package is ErrCodeInternal.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ErrCodeOK
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ErrCodeInternal
}
