// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package commandline

import (
	"bytes"
	"flag"
	"strings"
	"testing"
	"time"

	"github.com/gomlx/boltzmann/pkg/core/network"
	"github.com/gomlx/boltzmann/pkg/core/rng"
	"github.com/gomlx/boltzmann/pkg/ml/presets"
	"github.com/gomlx/boltzmann/pkg/ml/simulation"
	"github.com/gomlx/boltzmann/pkg/support/settings"
	"github.com/janpfeifer/must"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// deterministicLoop returns a loop over the "four" preset that always settles to the state 1000,
// with energy 5.
func deterministicLoop(t *testing.T, trials int) *simulation.Loop {
	preset := presets.Four()
	net := must.M1(preset.Build(rng.NewWithSeed(42)))
	cfg := simulation.DefaultConfig()
	cfg.Trials = trials
	cfg.Stochastic = false
	cfg.Initializer = network.Zeros
	cfg.C = preset.C
	loop, err := simulation.NewLoop(net, cfg)
	require.NoError(t, err)
	return loop
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "1.50s", FormatDuration(1500*time.Millisecond))
	assert.Equal(t, "0.00s", FormatDuration(0))
	assert.Equal(t, "2.00ms", FormatDuration(2*time.Millisecond))
	assert.Equal(t, "1m30s", FormatDuration(90*time.Second))
}

func TestSettingsFlag(t *testing.T) {
	params := settings.New().Set("trials", 10).Set("alpha", 0.4)
	flags := flag.NewFlagSet("test", flag.ContinueOnError)
	settingsFlag := CreateSettingsFlag(flags, params, "")
	usage := flags.Lookup("set").Usage
	assert.Contains(t, usage, `"trials": default value is 10`)
	assert.Contains(t, usage, `"alpha": default value is 0.4`)

	require.NoError(t, flags.Parse([]string{"-set=trials=20;alpha=0.5;trials=30"}))
	paramsSet, err := params.Parse(*settingsFlag)
	require.NoError(t, err)
	assert.Equal(t, []string{"trials", "alpha", "trials"}, paramsSet)
	assert.Equal(t, "\t\"alpha\": (float64) 0.5\n\t\"trials\": (int) 30", SprintModifiedSettings(params, paramsSet))
}

func TestNetworkTables(t *testing.T) {
	DisableColors()
	net := must.M1(presets.Four().Build(rng.NewWithSeed(42)))

	weights := WeightsTable(net)
	assert.Contains(t, weights, "bias")
	assert.Contains(t, weights, "-8")
	assert.Contains(t, weights, "13")

	edges := EdgesTable(net)
	assert.Contains(t, edges, "weight")
	assert.Contains(t, edges, "10")
}

func TestReportResult(t *testing.T) {
	DisableColors()
	loop := deterministicLoop(t, 5)
	result, err := loop.Run()
	require.NoError(t, err)

	states := StatesTable(result, 0)
	assert.Contains(t, states, "1000")
	assert.Contains(t, states, "100.0%")

	var buf bytes.Buffer
	require.NoError(t, ReportResult(&buf, result, 10, 3))
	out := buf.String()
	assert.Contains(t, out, "Summary:")
	assert.Contains(t, out, "lowest energy")
	assert.Contains(t, out, "deterministic")
	assert.Contains(t, out, "zeros")
	assert.Contains(t, out, "Energy histogram:")
	assert.Contains(t, out, strings.Repeat("#", HistogramBarWidth))

	// Invalid number of bins.
	buf.Reset()
	require.NoError(t, ReportResult(&buf, result, 10, 0))
	assert.NotContains(t, buf.String(), "Energy histogram:")
}

func TestProgressBar(t *testing.T) {
	DisableColors()
	loop := deterministicLoop(t, 7)
	var buf bytes.Buffer
	AttachProgressBarToWriter(loop, &buf, func() (name, value string) {
		return "Preset", "four"
	})
	_, err := loop.Run()
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "7 of 7")
	assert.Contains(t, out, "Lowest energy")
	assert.Contains(t, out, "Distinct states")
	assert.Contains(t, out, "Preset")
}

func TestProgressBarInNotebook(t *testing.T) {
	t.Setenv("GONB_PIPE", "/tmp/gonb_pipe")
	loop := deterministicLoop(t, 3)
	var buf bytes.Buffer
	AttachProgressBarToWriter(loop, &buf)
	_, err := loop.Run()
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "[trial=3]")
	assert.Contains(t, out, "[lowest=5]")
	assert.NotContains(t, out, "Lowest energy")
}
