// Copyright 2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package network

import (
	"fmt"
	"math"
	"strings"

	"github.com/gomlx/boltzmann/pkg/core/rng"
	"github.com/pkg/errors"
)

// Initializer selects how Network.RandomInit draws new node values.
type Initializer int

const (
	// InverseAbsNormal sets each value to 1/|z|, with z drawn from a standard normal distribution.
	//
	// This is the historical initializer and the default. Its values are positive reals, generally
	// outside {0, 1}, and they grow without bound as z approaches 0: only after the first sweep
	// does the network hold binary values.
	InverseAbsNormal Initializer = iota

	// Bernoulli sets each value to 1 with probability 0.5, and 0 otherwise.
	// Use it to start every trial from a binary configuration.
	Bernoulli

	// Zeros sets every value to 0. It consumes no random draws.
	Zeros
)

var initializerNames = []string{"inverse_abs_normal", "bernoulli", "zeros"}

// String implements fmt.Stringer.
func (init Initializer) String() string {
	if init < 0 || int(init) >= len(initializerNames) {
		return fmt.Sprintf("Initializer(%d)", int(init))
	}
	return initializerNames[init]
}

// InitializerNames lists the names accepted by ParseInitializer.
func InitializerNames() []string {
	return append([]string(nil), initializerNames...)
}

// ParseInitializer converts a name (as returned by Initializer.String) back to an Initializer.
// The match is case-insensitive.
func ParseInitializer(name string) (Initializer, error) {
	for ii, known := range initializerNames {
		if strings.EqualFold(name, known) {
			return Initializer(ii), nil
		}
	}
	return 0, errors.Errorf("unknown initializer %q, valid values are %q", name, initializerNames)
}

// fill draws new values in place.
func (init Initializer) fill(src rng.Source, values []float64) {
	switch init {
	case Bernoulli:
		for ii := range values {
			if src.Float64() < 0.5 {
				values[ii] = 1
			} else {
				values[ii] = 0
			}
		}
	case Zeros:
		clear(values)
	default:
		for ii := range values {
			values[ii] = 1 / math.Abs(src.NormFloat64())
		}
	}
}
