// Copyright 2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package shapes validates the dimensions of a network's weights, biases and node values,
// and defines the errors reported when they don't match.
//
// Errors returned by this package wrap one of the sentinel errors below, so callers can
// test for them with errors.Is.
package shapes

import (
	"github.com/pkg/errors"
)

var (
	// ErrShapeMismatch is reported when the weights are not square, or when the bias or values
	// don't have one entry per node.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrIndexOutOfRange is reported when a node index is outside [0, n).
	ErrIndexOutOfRange = errors.New("node index out of range")
)

// CheckSquare returns an error if matrix is not n×n.
// The name is used in the error message.
func CheckSquare(name string, matrix [][]float64, n int) error {
	if len(matrix) != n {
		return errors.Wrapf(ErrShapeMismatch, "%s has %d rows, expected %d", name, len(matrix), n)
	}
	for row, values := range matrix {
		if len(values) != n {
			return errors.Wrapf(ErrShapeMismatch, "%s row %d has %d columns, expected %d", name, row, len(values), n)
		}
	}
	return nil
}

// CheckVector returns an error if vector doesn't have length n.
func CheckVector(name string, vector []float64, n int) error {
	if len(vector) != n {
		return errors.Wrapf(ErrShapeMismatch, "%s has length %d, expected %d", name, len(vector), n)
	}
	return nil
}

// CheckIndex returns an error if idx is not a valid node index for a network of n nodes.
func CheckIndex(idx, n int) error {
	if idx < 0 || idx >= n {
		return errors.Wrapf(ErrIndexOutOfRange, "index %d for a network with %d nodes", idx, n)
	}
	return nil
}

// CheckNetwork validates that weights is n×n and that bias and values have length n, where n is
// taken from the number of rows of weights.
//
// A nil values is accepted (it stands for "all zeros"). It returns the number of nodes n.
func CheckNetwork(weights [][]float64, bias, values []float64) (n int, err error) {
	n = len(weights)
	if n == 0 {
		return 0, errors.Wrap(ErrShapeMismatch, "network must have at least one node")
	}
	if err = CheckSquare("weights", weights, n); err != nil {
		return
	}
	if err = CheckVector("bias", bias, n); err != nil {
		return
	}
	if values != nil {
		if err = CheckVector("values", values, n); err != nil {
			return
		}
	}
	return
}
