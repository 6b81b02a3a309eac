// Copyright 2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package energy scores a network configuration.
//
// For weights W, bias θ, node values v and a constant offset C, the energy is
//
//	E = C + Σ_i θ_i·v_i − ½ Σ_i Σ_j W_ij·v_i·v_j
//
// with both (i,j) and (j,i) included in the double sum: for symmetric weights the ½ compensates
// for counting every pair twice. Lower energies correspond to more stable configurations.
package energy

import (
	"github.com/gomlx/boltzmann/pkg/core/shapes"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Compute returns the energy of the configuration values for a network with n nodes.
//
// The bias-scaling constant x0 does not enter the energy: it is only used by the local field of the
// update rule.
//
// It returns an error wrapping shapes.ErrShapeMismatch if weights is not n×n, or bias or values
// don't have length n.
func Compute(weights [][]float64, values []float64, n int, bias []float64, x0, c float64) (float64, error) {
	if n <= 0 {
		return 0, errors.Wrapf(shapes.ErrShapeMismatch, "energy of a network with %d nodes", n)
	}
	if err := shapes.CheckSquare("weights", weights, n); err != nil {
		return 0, err
	}
	if err := shapes.CheckVector("values", values, n); err != nil {
		return 0, err
	}
	if err := shapes.CheckVector("bias", bias, n); err != nil {
		return 0, err
	}
	w := mat.NewDense(n, n, nil)
	for row := range weights {
		w.SetRow(row, weights[row])
	}
	return Dense(w, mat.NewVecDense(n, values), mat.NewVecDense(n, bias), c), nil
}

// Dense is the same as Compute, for gonum matrices and vectors whose shapes were already validated.
// It panics (from gonum) if the shapes don't match.
func Dense(weights mat.Matrix, values, bias mat.Vector, c float64) float64 {
	return c + mat.Dot(bias, values) - 0.5*mat.Inner(values, weights, values)
}
