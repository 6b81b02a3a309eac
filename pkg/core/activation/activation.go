// Copyright 2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package activation implements the rules that turn a node's local field into its new binary state.
package activation

import (
	"math"

	"github.com/gomlx/boltzmann/pkg/core/rng"
)

// Rule maps a local field to a new node value, 0 or 1.
type Rule func(s float64) float64

// Sigmoid returns the logistic function of s with the given gain alpha: 1 / (1 + exp(-alpha*s)).
//
// For large |alpha*s| it saturates to exactly 0 or 1.
func Sigmoid(s, alpha float64) float64 {
	return 1 / (1 + math.Exp(-alpha*s))
}

// Deterministic returns 1 if s > 0, and 0 otherwise (including s == 0).
func Deterministic(s float64) float64 {
	if s > 0 {
		return 1
	}
	return 0
}

// Stochastic returns 1 with probability Sigmoid(s, alpha), and 0 otherwise.
//
// It consumes exactly one uniform draw from src per call.
// Any finite alpha is accepted: alpha == 0 yields a fair coin, and alpha < 0 inverts the sigmoid.
func Stochastic(s, alpha float64, src rng.Source) float64 {
	p := Sigmoid(s, alpha)
	u := src.Float64()
	if p > u {
		return 1
	}
	return 0
}

// DeterministicRule returns Deterministic as a Rule.
func DeterministicRule() Rule {
	return Deterministic
}

// StochasticRule returns a Rule that applies Stochastic with the given gain and source.
func StochasticRule(alpha float64, src rng.Source) Rule {
	return func(s float64) float64 {
		return Stochastic(s, alpha, src)
	}
}

// NewRule returns StochasticRule(alpha, src) if stochastic is set, or DeterministicRule otherwise,
// in which case alpha and src are ignored.
func NewRule(stochastic bool, alpha float64, src rng.Source) Rule {
	if stochastic {
		return StochasticRule(alpha, src)
	}
	return DeterministicRule()
}
