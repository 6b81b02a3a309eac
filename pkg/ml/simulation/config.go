// Copyright 2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package simulation

import (
	"math"

	"github.com/gomlx/boltzmann/pkg/core/network"
	"github.com/gomlx/boltzmann/pkg/support/settings"
	"github.com/pkg/errors"
)

// Config of a simulation run.
type Config struct {
	// Trials is the number of random restarts. Each one records one energy.
	Trials int

	// SweepsPerTrial is the number of full sweeps (Network.UpdateAll) after each restart.
	SweepsPerTrial int

	// Alpha is the sigmoid gain of the stochastic activation.
	Alpha float64

	// Stochastic selects the stochastic activation rule. If false the deterministic rule is used
	// and Alpha is ignored.
	Stochastic bool

	// Initializer used at the start of each trial.
	Initializer network.Initializer

	// C is the constant offset of the energy.
	C float64
}

// DefaultConfig returns 1000 trials of 3 stochastic sweeps with alpha 0.4, starting from the
// historical InverseAbsNormal initialization.
func DefaultConfig() Config {
	return Config{
		Trials:         1000,
		SweepsPerTrial: 3,
		Alpha:          0.4,
		Stochastic:     true,
		Initializer:    network.InverseAbsNormal,
	}
}

// Validate returns an error if the configuration can't be run.
func (cfg Config) Validate() error {
	if cfg.Trials <= 0 {
		return errors.Errorf("simulation needs a positive number of trials, got %d", cfg.Trials)
	}
	if cfg.SweepsPerTrial < 0 {
		return errors.Errorf("simulation needs a non-negative number of sweeps per trial, got %d", cfg.SweepsPerTrial)
	}
	if math.IsNaN(cfg.Alpha) || math.IsInf(cfg.Alpha, 0) {
		return errors.Errorf("alpha must be finite, got %g", cfg.Alpha)
	}
	if math.IsNaN(cfg.C) || math.IsInf(cfg.C, 0) {
		return errors.Errorf("energy offset C must be finite, got %g", cfg.C)
	}
	return nil
}

// Names of the parameters in DefaultParams.
const (
	ParamTrials         = "trials"
	ParamSweepsPerTrial = "sweeps"
	ParamAlpha          = "alpha"
	ParamStochastic     = "stochastic"
	ParamInitializer    = "initializer"
	ParamC              = "c"
)

// DefaultParams returns the DefaultConfig values as settings parameters, so they can be changed by
// the user with settings.Params.Parse.
func DefaultParams() *settings.Params {
	cfg := DefaultConfig()
	return settings.New().
		Set(ParamTrials, cfg.Trials).
		Set(ParamSweepsPerTrial, cfg.SweepsPerTrial).
		Set(ParamAlpha, cfg.Alpha).
		Set(ParamStochastic, cfg.Stochastic).
		Set(ParamInitializer, cfg.Initializer.String()).
		Set(ParamC, cfg.C)
}

// ConfigFromParams builds a Config from parameters created by DefaultParams.
// It returns an error if the initializer name is unknown or if the resulting Config is not valid.
func ConfigFromParams(params *settings.Params) (Config, error) {
	cfg := DefaultConfig()
	cfg.Trials = settings.GetOr(params, ParamTrials, cfg.Trials)
	cfg.SweepsPerTrial = settings.GetOr(params, ParamSweepsPerTrial, cfg.SweepsPerTrial)
	cfg.Alpha = settings.GetOr(params, ParamAlpha, cfg.Alpha)
	cfg.Stochastic = settings.GetOr(params, ParamStochastic, cfg.Stochastic)
	cfg.C = settings.GetOr(params, ParamC, cfg.C)
	init, err := network.ParseInitializer(settings.GetOr(params, ParamInitializer, cfg.Initializer.String()))
	if err != nil {
		return cfg, err
	}
	cfg.Initializer = init
	return cfg, cfg.Validate()
}
