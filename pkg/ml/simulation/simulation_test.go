// Copyright 2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package simulation

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/gomlx/boltzmann/pkg/core/network"
	"github.com/gomlx/boltzmann/pkg/core/rng"
	"github.com/gomlx/boltzmann/pkg/ml/presets"
	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFourLoop(t *testing.T, cfg Config, seed int64) *Loop {
	p := presets.Four()
	net := must.M1(p.Build(rng.NewWithSeed(seed)))
	cfg.C = p.C
	loop, err := NewLoop(net, cfg)
	require.NoError(t, err)
	return loop
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
	cfg := DefaultConfig()
	cfg.Trials = 0
	require.Error(t, cfg.Validate())
	cfg = DefaultConfig()
	cfg.SweepsPerTrial = -1
	require.Error(t, cfg.Validate())

	net := must.M1(presets.Four().Build(nil))
	_, err := NewLoop(net, cfg)
	require.Error(t, err)
}

func TestConfigFromParams(t *testing.T) {
	params := DefaultParams()
	cfg, err := ConfigFromParams(params)
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), cfg)

	_, err = params.Parse("trials=20;sweeps=5;alpha=1.5;stochastic=false;initializer=bernoulli;c=13")
	require.NoError(t, err)
	cfg, err = ConfigFromParams(params)
	require.NoError(t, err)
	assert.Equal(t, Config{
		Trials:         20,
		SweepsPerTrial: 5,
		Alpha:          1.5,
		Stochastic:     false,
		Initializer:    network.Bernoulli,
		C:              13,
	}, cfg)

	_, err = params.Parse("initializer=uniform")
	require.NoError(t, err)
	_, err = ConfigFromParams(params)
	require.ErrorContains(t, err, "unknown initializer")

	params = DefaultParams()
	_, err = params.Parse("trials=0")
	require.NoError(t, err)
	_, err = ConfigFromParams(params)
	require.Error(t, err)
}

func TestRun(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Trials = 200
	loop := newFourLoop(t, cfg, 42)

	var started, ended bool
	var order []string
	var trials []Trial
	loop.OnStart("start", 0, func(loop *Loop) error {
		started = true
		return nil
	})
	loop.OnTrial("second", 1, func(_ *Loop, trial Trial) error {
		order = append(order, "second")
		return nil
	})
	loop.OnTrial("first", -1, func(l *Loop, trial Trial) error {
		order = append(order, "first")
		assert.Equal(t, l.TrialIndex, trial.Index)
		trials = append(trials, trial)
		return nil
	})
	loop.OnEnd("end", 0, func(_ *Loop, result *Result) error {
		ended = true
		assert.Len(t, result.Energies, 200)
		return nil
	})

	result, err := loop.Run()
	require.NoError(t, err)
	assert.True(t, started)
	assert.True(t, ended)
	require.Len(t, trials, 200)
	assert.Equal(t, []string{"first", "second"}, order[:2])
	require.Len(t, result.Energies, 200)
	require.Len(t, result.FinalValues, 200)
	assert.Len(t, loop.TrialDurations, 200)
	assert.Greater(t, loop.MedianTrialDuration(), time.Duration(-1))

	for ii, trial := range trials {
		assert.Equal(t, ii, trial.Index)
		assert.Equal(t, trial.Energy, result.Energies[ii])
		for _, v := range trial.Values {
			require.True(t, v == 0 || v == 1)
		}
	}

	// With C=13 all binary configurations of the four-node preset have integer energies.
	summary := result.Summarize()
	assert.Equal(t, 200, summary.Count)
	assert.LessOrEqual(t, summary.Min, summary.Mean)
	assert.LessOrEqual(t, summary.Mean, summary.Max)
	assert.LessOrEqual(t, summary.DistinctStates, 16)
	for _, e := range result.Energies {
		assert.Equal(t, float64(int(e)), e)
	}
}

func TestRunIsReproducible(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Trials = 50
	r0 := must.M1(newFourLoop(t, cfg, 7).Run())
	r1 := must.M1(newFourLoop(t, cfg, 7).Run())
	assert.Equal(t, r0.Energies, r1.Energies)
	assert.NotEqual(t, r0.RunID, r1.RunID)
}

func TestRunDeterministic(t *testing.T) {
	// Deterministic sweeps from all-zero starts always end in the same state.
	cfg := DefaultConfig()
	cfg.Trials = 5
	cfg.Stochastic = false
	cfg.Initializer = network.Zeros
	result := must.M1(newFourLoop(t, cfg, 0).Run())
	states := result.States()
	require.Len(t, states, 1)
	assert.Equal(t, 5, states[0].Count)
}

func TestRunHookError(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Trials = 10
	loop := newFourLoop(t, cfg, 0)
	loop.OnTrial("failing", 0, func(l *Loop, _ Trial) error {
		if l.TrialIndex == 3 {
			return errors.New("boom")
		}
		return nil
	})
	_, err := loop.Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
	assert.Contains(t, err.Error(), `OnTrial(hook "failing")`)
	assert.Contains(t, err.Error(), "trial 3 of 10")
}

func TestHistogram(t *testing.T) {
	result := &Result{Energies: []float64{2, 0, 1, 1, 3, 3, 3}}
	h, err := result.Histogram(3)
	require.NoError(t, err)
	require.Len(t, h.Dividers, 4)
	assert.Equal(t, 0.0, h.Dividers[0])
	assert.Equal(t, []float64{1, 2, 4}, h.Counts)

	result = &Result{Energies: []float64{5, 5}}
	h, err = result.Histogram(2)
	require.NoError(t, err)
	assert.Equal(t, 4.5, h.Dividers[0])
	assert.Equal(t, []float64{0, 2}, h.Counts)

	_, err = result.Histogram(0)
	require.Error(t, err)
	_, err = (&Result{}).Histogram(3)
	require.Error(t, err)
}

func TestStatesAndDataFrame(t *testing.T) {
	result := &Result{
		Energies:    []float64{2, 7, 2, 13},
		FinalValues: [][]float64{{1, 1, 1, 1}, {1, 0, 0, 1}, {1, 1, 1, 1}, {0, 0, 0, 0}},
	}
	states := result.States()
	require.Len(t, states, 3)
	assert.Equal(t, "1111", states[0].Key())
	assert.Equal(t, 2, states[0].Count)
	assert.Equal(t, "1001", states[1].Key())
	assert.Equal(t, "0000", states[2].Key())

	assert.Equal(t, "[0.5 2]", StateCount{Values: []float64{0.5, 2}}.Key())

	df := result.DataFrame()
	require.NoError(t, df.Err)
	assert.Equal(t, 4, df.Nrow())
	assert.Equal(t, []string{"trial", "energy", "state"}, df.Names())

	var buf bytes.Buffer
	require.NoError(t, result.WriteCSV(&buf))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "trial,energy,state", lines[0])
}
