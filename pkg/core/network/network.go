// Copyright 2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package network implements a stochastic recurrent network of binary nodes (a Hopfield/Boltzmann
// machine).
//
// A Network holds n node values, an n×n weight matrix, a bias (theta) per node and a bias scaling
// constant x0. The local field of node i is
//
//	s_i = −θ_i·x0 + Σ_j W_ij·v_j
//
// and an update sets v_i to the activation of s_i: deterministic (s_i > 0) or stochastic (1 with
// probability sigmoid(alpha·s_i)).
//
// Updates are asynchronous: UpdateAll visits nodes in index order and writes each new value back
// before computing the next node's field. With symmetric weights this drives the network towards
// low-energy configurations, see package energy.
//
// A Network is not safe for concurrent use.
package network

import (
	"fmt"
	"io"

	"github.com/gomlx/boltzmann/pkg/core/activation"
	"github.com/gomlx/boltzmann/pkg/core/energy"
	"github.com/gomlx/boltzmann/pkg/core/rng"
	"github.com/gomlx/boltzmann/pkg/core/shapes"
	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"k8s.io/klog/v2"
)

// Network holds the state of a stochastic recurrent network. Create it with New.
type Network struct {
	n       int
	weights *mat.Dense
	bias    *mat.VecDense
	x0      float64
	values  *mat.VecDense

	src         rng.Source
	initializer Initializer
}

// New creates a network from the given weights (n×n), bias (length n), bias scaling x0 and initial
// values (length n, or nil for all zeros).
//
// The weights are not required to be symmetric, and the diagonal is not zeroed: a non-zero W_ii
// couples a node to itself.
//
// All the slices are copied. src is used by every stochastic operation; if nil, a generator
// seeded from the clock is used.
//
// It returns an error wrapping shapes.ErrShapeMismatch if the dimensions don't agree.
func New(weights [][]float64, bias []float64, x0 float64, values []float64, src rng.Source) (*Network, error) {
	n, err := shapes.CheckNetwork(weights, bias, values)
	if err != nil {
		return nil, errors.WithMessage(err, "network.New()")
	}
	if src == nil {
		src = rng.New()
	}
	net := &Network{
		n:       n,
		weights: mat.NewDense(n, n, nil),
		bias:    mat.NewVecDense(n, append([]float64(nil), bias...)),
		x0:      x0,
		values:  mat.NewVecDense(n, nil),
		src:     src,
	}
	for row := range weights {
		net.weights.SetRow(row, weights[row])
	}
	if values != nil {
		net.values.CopyVec(mat.NewVecDense(n, values))
	}
	return net, nil
}

// MustNew is like New, but panics on error.
func MustNew(weights [][]float64, bias []float64, x0 float64, values []float64, src rng.Source) *Network {
	net, err := New(weights, bias, x0, values, src)
	if err != nil {
		exceptions.Panicf("%+v", err)
	}
	return net
}

// WithInitializer sets the initializer used by RandomInit. The default is InverseAbsNormal.
// It returns the network itself, so calls can be chained.
func (net *Network) WithInitializer(init Initializer) *Network {
	net.initializer = init
	return net
}

// Initializer used by RandomInit.
func (net *Network) Initializer() Initializer {
	return net.initializer
}

// N returns the number of nodes.
func (net *Network) N() int {
	return net.n
}

// X0 returns the bias scaling constant.
func (net *Network) X0() float64 {
	return net.x0
}

// Values returns a copy of the current node values.
func (net *Network) Values() []float64 {
	return mat.Col(nil, 0, net.values)
}

// Weights returns a copy of the weight matrix, as a slice of rows.
func (net *Network) Weights() [][]float64 {
	rows := make([][]float64, net.n)
	for ii := range rows {
		rows[ii] = mat.Row(nil, ii, net.weights)
	}
	return rows
}

// Bias returns a copy of the bias (theta) vector.
func (net *Network) Bias() []float64 {
	return mat.Col(nil, 0, net.bias)
}

// LocalField returns −θ_idx·x0 + Σ_j W_idx,j·v_j for the current values.
// The sum includes j == idx.
func (net *Network) LocalField(idx int) (float64, error) {
	if err := shapes.CheckIndex(idx, net.n); err != nil {
		return 0, err
	}
	return net.localField(idx), nil
}

func (net *Network) localField(idx int) float64 {
	return -net.bias.AtVec(idx)*net.x0 + mat.Dot(net.weights.RowView(idx), net.values)
}

// UpdateSingle returns the new value of node idx given the current values, using the stochastic
// rule with gain alpha if stochastic is set, or the deterministic rule otherwise.
//
// It doesn't change the network: see UpdateAll and SetSingle.
// It returns an error wrapping shapes.ErrIndexOutOfRange if idx is not in [0, n).
func (net *Network) UpdateSingle(idx int, stochastic bool, alpha float64) (float64, error) {
	s, err := net.LocalField(idx)
	if err != nil {
		return 0, err
	}
	return activation.NewRule(stochastic, alpha, net.src)(s), nil
}

// UpdateAll performs one sweep: for idx = 0, 1, ..., n-1 it computes the new value of node idx and
// stores it immediately, so the nodes after idx already see it in the same sweep.
func (net *Network) UpdateAll(stochastic bool, alpha float64) {
	rule := activation.NewRule(stochastic, alpha, net.src)
	for idx := range net.n {
		net.values.SetVec(idx, rule(net.localField(idx)))
	}
}

// Sweep runs UpdateAll numSweeps times.
func (net *Network) Sweep(numSweeps int, stochastic bool, alpha float64) {
	for sweep := range numSweeps {
		net.UpdateAll(stochastic, alpha)
		if klog.V(3).Enabled() {
			klog.Infof("sweep %d/%d: values=%v", sweep+1, numSweeps, net.Values())
		}
	}
}

// RandomInit replaces all node values with new ones drawn by the network's Initializer.
func (net *Network) RandomInit() {
	net.initializer.fill(net.src, net.values.RawVector().Data)
}

// SetSingle sets the value of node idx.
// It returns an error wrapping shapes.ErrIndexOutOfRange if idx is not in [0, n).
func (net *Network) SetSingle(idx int, value float64) error {
	if err := shapes.CheckIndex(idx, net.n); err != nil {
		return err
	}
	net.values.SetVec(idx, value)
	return nil
}

// Energy returns the energy of the current values with the constant offset c.
func (net *Network) Energy(c float64) float64 {
	return energy.Dense(net.weights, net.values, net.bias, c)
}

// Show writes the current values to w, followed by an empty line.
func (net *Network) Show(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%v\n\n", net.Values())
	return err
}

// String implements fmt.Stringer.
func (net *Network) String() string {
	return fmt.Sprintf("Network(n=%d, x0=%g, values=%v)", net.n, net.x0, net.Values())
}
