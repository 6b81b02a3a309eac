// Copyright 2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package rng

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewWithSeed(t *testing.T) {
	src0, src1 := NewWithSeed(42), NewWithSeed(42)
	for range 100 {
		require.Equal(t, src0.Float64(), src1.Float64())
		require.Equal(t, src0.NormFloat64(), src1.NormFloat64())
	}

	other := NewWithSeed(43)
	var differ bool
	for range 10 {
		if src0.Float64() != other.Float64() {
			differ = true
		}
	}
	require.True(t, differ, "different seeds should yield different streams")
}

func TestFloat64Range(t *testing.T) {
	src := New()
	for range 1000 {
		u := src.Float64()
		require.GreaterOrEqual(t, u, 0.0)
		require.Less(t, u, 1.0)
	}
}
