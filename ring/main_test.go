// Copyright 2025 momentics@gmail.com
// Licensed under the Apache License, Version 2.0.

package ring

import (
	"testing"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
