// Copyright 2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package simulation runs repeated random restarts of a network, and collects the energy reached after
// a fixed number of sweeps in each one.
//
// A Loop runs the trials and calls the registered hooks, which is how progress bars, logging and
// per-trial printing are attached. The collected Result offers summary statistics, histograms, the
// distribution of final states and a dataframe export.
package simulation

import (
	"iter"
	"slices"
	"sort"
	"time"

	"github.com/gomlx/boltzmann/pkg/core/network"
	"github.com/gomlx/exceptions"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Priority for hooks, the lowest values are run first. Defaults to 0, but negative
// values are ok.
type Priority int

// OnStartFn is the type of OnStart hooks.
type OnStartFn func(loop *Loop) error

// OnTrialFn is the type of OnTrial hooks.
type OnTrialFn func(loop *Loop, trial Trial) error

// OnEndFn is the type of OnEnd hooks.
type OnEndFn func(loop *Loop, result *Result) error

// Trial holds the outcome of one random restart.
type Trial struct {
	// Index of the trial, from 0 to Config.Trials-1.
	Index int

	// Energy of the final configuration.
	Energy float64

	// Values of the nodes at the end of the trial.
	Values []float64

	// Duration of the trial.
	Duration time.Duration
}

// Key returns a compact representation of the final values, see StateCount.Key.
func (t Trial) Key() string {
	return stateKey(t.Values)
}

// Loop runs the trials of a simulation over one network.
//
// The public attributes are meant for reading only, don't change them.
type Loop struct {
	// Network being simulated. Its values are overwritten at every trial.
	Network *network.Network

	// Config of the run.
	Config Config

	// TrialIndex currently being executed.
	TrialIndex int

	// SharedData allows for cross-tools to publish and consume information.
	SharedData map[string]any

	// TrialDurations collected so far.
	TrialDurations []time.Duration

	onStart *priorityHooks[*hookWithName[OnStartFn]]
	onTrial *priorityHooks[*hookWithName[OnTrialFn]]
	onEnd   *priorityHooks[*hookWithName[OnEndFn]]
}

// NewLoop creates a simulation loop for net. It sets the network's initializer to cfg.Initializer.
func NewLoop(net *network.Network, cfg Config) (*Loop, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	net.WithInitializer(cfg.Initializer)
	return &Loop{
		Network:    net,
		Config:     cfg,
		SharedData: make(map[string]any),
		onStart:    newPriorityHooks[*hookWithName[OnStartFn]](),
		onTrial:    newPriorityHooks[*hookWithName[OnTrialFn]](),
		onEnd:      newPriorityHooks[*hookWithName[OnEndFn]](),
	}, nil
}

// Run executes all the trials and returns the collected result.
//
// Each trial calls Network.RandomInit, then Config.SweepsPerTrial times Network.UpdateAll, and records
// the energy of the final values.
//
// Errors returned by hooks interrupt the run and are returned.
func (loop *Loop) Run() (*Result, error) {
	result := &Result{
		RunID:       uuid.New(),
		Config:      loop.Config,
		Energies:    make([]float64, 0, loop.Config.Trials),
		FinalValues: make([][]float64, 0, loop.Config.Trials),
		Start:       time.Now(),
	}
	loop.TrialDurations = loop.TrialDurations[:0]
	err := exceptions.TryCatch[error](func() {
		loop.start()
		for loop.TrialIndex = 0; loop.TrialIndex < loop.Config.Trials; loop.TrialIndex++ {
			trial := loop.trial()
			result.Energies = append(result.Energies, trial.Energy)
			result.FinalValues = append(result.FinalValues, trial.Values)
			loop.postTrial(trial)
		}
		result.Duration = time.Since(result.Start)
		loop.end(result)
	})
	if err != nil {
		return nil, errors.WithMessagef(err, "simulation.Loop.Run() failed at trial %d of %d",
			loop.TrialIndex, loop.Config.Trials)
	}
	if klog.V(1).Enabled() {
		klog.Infof("simulation %s: %d trials in %s", result.RunID, len(result.Energies), result.Duration)
	}
	return result, nil
}

// trial runs one restart.
func (loop *Loop) trial() Trial {
	start := time.Now()
	cfg := loop.Config
	loop.Network.RandomInit()
	loop.Network.Sweep(cfg.SweepsPerTrial, cfg.Stochastic, cfg.Alpha)
	trial := Trial{
		Index:    loop.TrialIndex,
		Energy:   loop.Network.Energy(cfg.C),
		Values:   loop.Network.Values(),
		Duration: time.Since(start),
	}
	loop.TrialDurations = append(loop.TrialDurations, trial.Duration)
	if klog.V(2).Enabled() {
		klog.Infof("trial %d: energy=%g values=%v", trial.Index, trial.Energy, trial.Values)
	}
	return trial
}

// start calls the OnStart hooks. Errors are thrown as panics, and caught in Run.
func (loop *Loop) start() {
	for hook := range loop.onStart.All() {
		if err := hook.fn(loop); err != nil {
			panic(errors.WithMessagef(err, "OnStart(hook %q)", hook.name))
		}
	}
}

// postTrial calls the OnTrial hooks.
func (loop *Loop) postTrial(trial Trial) {
	for hook := range loop.onTrial.All() {
		if err := hook.fn(loop, trial); err != nil {
			panic(errors.WithMessagef(err, "OnTrial(hook %q)", hook.name))
		}
	}
}

// end calls the OnEnd hooks.
func (loop *Loop) end(result *Result) {
	for hook := range loop.onEnd.All() {
		if err := hook.fn(loop, result); err != nil {
			panic(errors.WithMessagef(err, "OnEnd(hook %q)", hook.name))
		}
	}
}

// MedianTrialDuration returns the median duration of the trials run so far. It returns 1 millisecond
// if no trial was recorded (to avoid potential division by 0).
func (loop *Loop) MedianTrialDuration() time.Duration {
	if len(loop.TrialDurations) == 0 {
		return time.Millisecond
	}
	times := slices.Clone(loop.TrialDurations)
	slices.Sort(times)
	return times[len(times)/2]
}

// OnStart adds a hook with given priority and name (for error reporting) to the start of the run.
func (loop *Loop) OnStart(name string, priority Priority, fn OnStartFn) {
	loop.onStart.Add(priority, &hookWithName[OnStartFn]{name: name, fn: fn})
}

// OnTrial adds a hook with given priority and name (for error reporting), called after each trial.
func (loop *Loop) OnTrial(name string, priority Priority, fn OnTrialFn) {
	loop.onTrial.Add(priority, &hookWithName[OnTrialFn]{name: name, fn: fn})
}

// OnEnd adds a hook with given priority and name (for error reporting) to the end of the run,
// after the last trial.
func (loop *Loop) OnEnd(name string, priority Priority, fn OnEndFn) {
	loop.onEnd.Add(priority, &hookWithName[OnEndFn]{name: name, fn: fn})
}

// hookWithName stores a hook name and function.
type hookWithName[F any] struct {
	name string
	fn   F
}

// priorityHooks organizes hooks for type F per priority.
type priorityHooks[H any] struct {
	hooks map[Priority][]H
}

func newPriorityHooks[H any]() *priorityHooks[H] {
	return &priorityHooks[H]{
		hooks: make(map[Priority][]H),
	}
}

// Add hook at the given priority.
func (h *priorityHooks[H]) Add(priority Priority, hook H) {
	h.hooks[priority] = append(h.hooks[priority], hook)
}

// All returns an iterator over all registered hooks in priority order.
func (h *priorityHooks[H]) All() iter.Seq[H] {
	return func(yield func(H) bool) {
		keys := make([]Priority, 0, len(h.hooks))
		for key := range h.hooks {
			keys = append(keys, key)
		}
		sort.Slice(keys, func(i, j int) bool {
			return keys[i] < keys[j]
		})
		for _, key := range keys {
			for _, hook := range h.hooks[key] {
				if !yield(hook) {
					return
				}
			}
		}
	}
}
