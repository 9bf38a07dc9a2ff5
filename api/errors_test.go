// Copyright 2025 momentics@gmail.com
// Licensed under the Apache License, Version 2.0.

package api_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/momentics/ringbuf/api"
)

func TestError_IsMatchesByCode(t *testing.T) {
	err := api.NewError(api.ErrCodeBufferFull, "producer stalled").WithContext("capacity", 8)

	assert.ErrorIs(t, err, api.ErrBufferFull)
	assert.NotErrorIs(t, err, api.ErrBufferEmpty)
	assert.Contains(t, err.Error(), "capacity:8")

	wrapped := fmt.Errorf("ingest: %w", err)
	assert.ErrorIs(t, wrapped, api.ErrBufferFull)
	assert.Equal(t, api.ErrCodeBufferFull, api.CodeOf(wrapped))
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, api.ErrCodeOK, api.CodeOf(nil))
	assert.Equal(t, api.ErrCodeInternal, api.CodeOf(errors.New("boom")))
	assert.Equal(t, api.ErrCodeNotInitialized, api.CodeOf(api.ErrNotInitialized))
	assert.Equal(t, api.ErrCodePositionOutOfRange, api.CodeOf(api.ErrPositionOutOfRange))
}

func TestErrorCode_RoundTrip(t *testing.T) {
	for _, code := range []api.ErrorCode{
		api.ErrCodeOK,
		api.ErrCodeNotInitialized,
		api.ErrCodeInvalidArgument,
		api.ErrCodeBufferFull,
		api.ErrCodeBufferEmpty,
		api.ErrCodePositionOutOfRange,
	} {
		got, ok := api.ParseErrorCode(code.String())
		assert.True(t, ok, code.String())
		assert.Equal(t, code, got)
	}
	_, ok := api.ParseErrorCode("no_such_code")
	assert.False(t, ok)
	assert.Equal(t, "error_code(42)", api.ErrorCode(42).String())
}

func TestStatusStrings(t *testing.T) {
	assert.Equal(t, "full", api.Full.String())
	assert.Equal(t, "not_full", api.NotFull.String())
	assert.Equal(t, "empty", api.Empty.String())
	assert.Equal(t, "not_empty", api.NotEmpty.String())
}
