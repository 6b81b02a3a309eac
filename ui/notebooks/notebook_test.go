// Copyright 2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package notebooks

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNotebook(t *testing.T) {
	for _, key := range []string{bashKernelEnv, goNBKernelEnv} {
		if value, found := os.LookupEnv(key); found {
			t.Setenv(key, value)
			_ = os.Unsetenv(key)
		}
	}
	assert.False(t, IsNotebook())

	t.Setenv(goNBKernelEnv, "/tmp/gonb_pipe")
	assert.True(t, IsGoNB())
	assert.False(t, IsBashKernel())
	assert.True(t, IsNotebook())
}
