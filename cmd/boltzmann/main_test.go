// Copyright 2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gomlx/boltzmann/pkg/ml/simulation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	dir := t.TempDir()
	*flagSeed = 42
	*flagNoColor = true
	*flagNoProgress = true
	*flagCSV = filepath.Join(dir, "energies.csv")
	*flagTrace = filepath.Join(dir, "trace.svg")
	defer func() {
		*flagCSV, *flagTrace = "", ""
	}()

	var out bytes.Buffer
	require.NoError(t, run(&out, simulation.DefaultParams(), "trials=50;sweeps=5"))
	report := out.String()
	assert.Contains(t, report, `Preset "four"`)
	assert.Contains(t, report, "Summary:")
	assert.Contains(t, report, "Energy histogram:")
	assert.Contains(t, report, "Written to:")

	csv, err := os.ReadFile(*flagCSV)
	require.NoError(t, err)
	assert.Equal(t, 51, strings.Count(string(csv), "\n"), "header plus one line per trial")
	_, err = os.Stat(*flagTrace)
	require.NoError(t, err)
}

func TestRunShow(t *testing.T) {
	*flagSeed = 7
	*flagNoColor = true
	*flagShow = true
	defer func() { *flagShow = false }()

	var out bytes.Buffer
	require.NoError(t, run(&out, simulation.DefaultParams(), "trials=3;stochastic=false;initializer=zeros"))
	report := out.String()
	assert.Contains(t, report, "Trial 0, energy 5:")
	assert.Contains(t, report, "Trial 2, energy 5:")
}

func TestRunErrors(t *testing.T) {
	var out bytes.Buffer
	require.Error(t, run(&out, simulation.DefaultParams(), "unknown=1"))
	require.Error(t, run(&out, simulation.DefaultParams(), "trials=0"))

	*flagPreset = "does_not_exist"
	defer func() { *flagPreset = "four" }()
	require.Error(t, run(&out, simulation.DefaultParams(), ""))
}
