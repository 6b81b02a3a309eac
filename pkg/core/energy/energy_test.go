// Copyright 2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package energy

import (
	"testing"

	"github.com/gomlx/boltzmann/pkg/core/rng"
	"github.com/gomlx/boltzmann/pkg/core/shapes"
	"github.com/stretchr/testify/require"
)

var (
	fourWeights = [][]float64{
		{0, 4, 0, -8},
		{4, 0, 2, 10},
		{0, 2, 0, 4},
		{-8, 10, 4, 0},
	}
	fourBias = []float64{-8, 13, 2, -6}
)

// loopEnergy is the direct double loop over all (i, j) pairs.
func loopEnergy(w [][]float64, v []float64, n int, t []float64, c float64) float64 {
	e := c
	for i := range n {
		e += t[i] * v[i]
		for j := range n {
			e += -0.5 * w[i][j] * v[i] * v[j]
		}
	}
	return e
}

func TestComputeFourNodes(t *testing.T) {
	// 13 + Σθ (=1) − ½ ΣW (=24) = 2.
	got, err := Compute(fourWeights, []float64{1, 1, 1, 1}, 4, fourBias, 1, 13)
	require.NoError(t, err)
	require.Equal(t, 2.0, got)

	got, err = Compute(fourWeights, []float64{0, 0, 0, 0}, 4, fourBias, 1, 13)
	require.NoError(t, err)
	require.Equal(t, 13.0, got)

	// v = [1,0,0,1]: 13 + (−8−6) − ½(−8−8) = 7.
	got, err = Compute(fourWeights, []float64{1, 0, 0, 1}, 4, fourBias, 1, 13)
	require.NoError(t, err)
	require.Equal(t, 7.0, got)

	// x0 does not enter the energy.
	got, err = Compute(fourWeights, []float64{1, 0, 0, 1}, 4, fourBias, -3.5, 13)
	require.NoError(t, err)
	require.Equal(t, 7.0, got)
}

func TestComputeMatchesLoop(t *testing.T) {
	src := rng.NewWithSeed(3)
	const n = 6
	w := make([][]float64, n)
	for i := range w {
		w[i] = make([]float64, n)
		for j := range w[i] {
			w[i][j] = src.NormFloat64()
		}
	}
	bias := make([]float64, n)
	values := make([]float64, n)
	for i := range n {
		bias[i] = src.NormFloat64()
		values[i] = 1 / (src.NormFloat64() + 10)
	}
	got, err := Compute(w, values, n, bias, 1, 0.25)
	require.NoError(t, err)
	require.InDelta(t, loopEnergy(w, values, n, bias, 0.25), got, 1e-9)
}

func TestComputeRelabelingInvariance(t *testing.T) {
	values := []float64{1, 0, 1, 1}
	want, err := Compute(fourWeights, values, 4, fourBias, 1, 13)
	require.NoError(t, err)

	for _, perm := range [][]int{{3, 2, 1, 0}, {1, 0, 3, 2}, {2, 3, 0, 1}, {0, 2, 3, 1}} {
		pw := make([][]float64, 4)
		pb := make([]float64, 4)
		pv := make([]float64, 4)
		for i := range 4 {
			pw[i] = make([]float64, 4)
			for j := range 4 {
				pw[i][j] = fourWeights[perm[i]][perm[j]]
			}
			pb[i] = fourBias[perm[i]]
			pv[i] = values[perm[i]]
		}
		got, err := Compute(pw, pv, 4, pb, 1, 13)
		require.NoError(t, err)
		require.Equal(t, want, got, "permutation %v", perm)
	}
}

func TestComputeShapeMismatch(t *testing.T) {
	_, err := Compute(fourWeights, []float64{1, 1, 1}, 4, fourBias, 1, 13)
	require.ErrorIs(t, err, shapes.ErrShapeMismatch)

	_, err = Compute(fourWeights, []float64{1, 1, 1, 1}, 4, fourBias[:3], 1, 13)
	require.ErrorIs(t, err, shapes.ErrShapeMismatch)

	_, err = Compute(fourWeights, []float64{1, 1, 1}, 3, fourBias[:3], 1, 13)
	require.ErrorIs(t, err, shapes.ErrShapeMismatch)

	_, err = Compute(nil, nil, 0, nil, 1, 13)
	require.ErrorIs(t, err, shapes.ErrShapeMismatch)
}
