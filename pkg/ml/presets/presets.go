// Copyright 2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package presets provides ready-made networks to experiment with.
//
// Each Preset carries the weights, bias, x0 and the energy offset C that makes the energy of its
// intended ground states easy to read (e.g. 0 for a perfect solution).
package presets

import (
	"github.com/gomlx/boltzmann/pkg/core/network"
	"github.com/gomlx/boltzmann/pkg/core/rng"
	"github.com/gomlx/boltzmann/pkg/support/xslices"
	"github.com/pkg/errors"
)

// Preset describes a network and its energy offset.
type Preset struct {
	Name, Description string

	Weights [][]float64
	Bias    []float64
	X0      float64

	// C is the constant offset passed to the energy function.
	C float64
}

// Build creates a network from the preset, with all values initialized to 0.
// The preset's slices are copied, so the preset is not affected by changes to the network.
func (p Preset) Build(src rng.Source) (*network.Network, error) {
	net, err := network.New(p.Weights, p.Bias, p.X0, nil, src)
	if err != nil {
		return nil, errors.WithMessagef(err, "building preset %q", p.Name)
	}
	return net, nil
}

// DefaultName is the preset used when none is selected.
const DefaultName = "four"

var registry = map[string]func() Preset{
	"four":      Four,
	"rook9":     Rook9,
	"complete9": Complete9,
	"triangle3": Triangle3,
}

// Names returns the names of all registered presets, sorted.
func Names() []string {
	return xslices.SortedKeys(registry)
}

// Lookup returns the preset registered under name.
func Lookup(name string) (Preset, error) {
	fn, found := registry[name]
	if !found {
		return Preset{}, errors.Errorf("unknown preset %q, valid presets are %q", name, Names())
	}
	return fn(), nil
}

// Four is a 4-node network with mixed excitatory and inhibitory couplings.
//
// With C = 13 its energies are small integers for binary configurations:
// all nodes on has energy 2.
func Four() Preset {
	return Preset{
		Name:        "four",
		Description: "4 nodes, mixed couplings",
		Weights: [][]float64{
			{0, 4, 0, -8},
			{4, 0, 2, 10},
			{0, 2, 0, 4},
			{-8, 10, 4, 0},
		},
		Bias: []float64{-8, 13, 2, -6},
		X0:   1,
		C:    13,
	}
}

// Rook9 is a 9-node network over the cells of a 3×3 grid: cells in the same row or column inhibit
// each other with weight −2, and every cell has bias −2.
//
// Configurations with exactly one active cell per row and per column (a placement of 3
// non-attacking rooks) have energy 0 with C = 6.
func Rook9() Preset {
	adjacency := xslices.Slice2DWithValue(0.0, 9, 9)
	for a := range 9 {
		for b := range 9 {
			if a != b && (a/3 == b/3 || a%3 == b%3) {
				adjacency[a][b] = 1
			}
		}
	}
	return Preset{
		Name:        "rook9",
		Description: "3x3 grid, one active cell per row and column",
		Weights:     xslices.Scale2D(adjacency, -2),
		Bias:        xslices.SliceWithValue(9, -2.0),
		X0:          1,
		C:           6,
	}
}

// Complete9 is a 9-node network where every pair of nodes inhibits each other with weight −2 and every
// node has bias −2.
//
// With C = 6 a configuration with k active nodes has energy 6 − 2k + k(k−1), lowest (4) for k = 2.
func Complete9() Preset {
	adjacency := xslices.Slice2DWithValue(1.0, 9, 9)
	for ii := range adjacency {
		adjacency[ii][ii] = 0
	}
	return Preset{
		Name:        "complete9",
		Description: "9 nodes, all pairs inhibit each other",
		Weights:     xslices.Scale2D(adjacency, -2),
		Bias:        xslices.SliceWithValue(9, -2.0),
		X0:          1,
		C:           6,
	}
}

// Triangle3 is a 3-node network where every pair inhibits each other with weight −1, and every node
// has bias 0.5.
//
// Its lowest energy, 0, is the all-off configuration: each active node adds 0.5 and each active pair
// adds 1.
func Triangle3() Preset {
	return Preset{
		Name:        "triangle3",
		Description: "3 nodes, all pairs inhibit each other",
		Weights: [][]float64{
			{0, -1, -1},
			{-1, 0, -1},
			{-1, -1, 0},
		},
		Bias: []float64{0.5, 0.5, 0.5},
		X0:   1,
		C:    0,
	}
}
