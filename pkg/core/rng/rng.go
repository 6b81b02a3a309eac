// Copyright 2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package rng defines the random source used by the network updates and initializers.
//
// Nothing in the core draws from a global generator: every random operation receives a Source,
// so tests and reproducible runs can seed it explicitly with NewWithSeed.
package rng

import (
	"math/rand"
	"time"
)

// Source of random values. It is satisfied by *rand.Rand.
type Source interface {
	// Float64 returns a uniform random value in [0, 1).
	Float64() float64

	// NormFloat64 returns a random value from a normal distribution with mean 0 and standard deviation 1.
	NormFloat64() float64
}

var _ Source = (*rand.Rand)(nil)

// New returns a Source seeded from the system clock.
// Two sources created this way produce different streams.
func New() *rand.Rand {
	return NewWithSeed(time.Now().UTC().UnixNano())
}

// NewWithSeed returns a Source whose stream is fully determined by seed.
func NewWithSeed(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
