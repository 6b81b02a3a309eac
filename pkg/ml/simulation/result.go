// Copyright 2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package simulation

import (
	"fmt"
	"io"
	"math"
	"slices"
	"sort"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/gomlx/boltzmann/pkg/support/sets"
	"github.com/gomlx/boltzmann/pkg/support/xslices"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Result of a simulation run.
type Result struct {
	// RunID uniquely identifies the run, e.g. to name output files.
	RunID uuid.UUID

	// Config used for the run.
	Config Config

	// Energies reached at the end of each trial, in trial order.
	Energies []float64

	// FinalValues holds the node values at the end of each trial, in trial order.
	FinalValues [][]float64

	// Start time and Duration of the run.
	Start    time.Time
	Duration time.Duration
}

// Summary statistics of the energies of a run.
type Summary struct {
	Count          int
	Mean, StdDev   float64
	Min, Max       float64
	DistinctStates int
}

// Summarize the energies. StdDev is the unbiased sample standard deviation, NaN for a single trial.
func (r *Result) Summarize() Summary {
	if len(r.Energies) == 0 {
		return Summary{}
	}
	mean, std := stat.MeanStdDev(r.Energies, nil)
	return Summary{
		Count:          len(r.Energies),
		Mean:           mean,
		StdDev:         std,
		Min:            floats.Min(r.Energies),
		Max:            floats.Max(r.Energies),
		DistinctStates: len(r.distinctStates()),
	}
}

// Histogram of the energies: Counts[i] is the number of energies in [Dividers[i], Dividers[i+1]).
type Histogram struct {
	Dividers []float64
	Counts   []float64
}

// Histogram bins the energies in numBins equal-width bins spanning [min, max].
// If all energies are equal, the single value is centered in a range of width 1.
func (r *Result) Histogram(numBins int) (Histogram, error) {
	if numBins <= 0 {
		return Histogram{}, errors.Errorf("histogram needs a positive number of bins, got %d", numBins)
	}
	if len(r.Energies) == 0 {
		return Histogram{}, errors.New("histogram of an empty result")
	}
	sorted := slices.Clone(r.Energies)
	slices.Sort(sorted)
	low, high := sorted[0], sorted[len(sorted)-1]
	if math.IsInf(low, 0) || math.IsInf(high, 0) || math.IsNaN(low) || math.IsNaN(high) {
		return Histogram{}, errors.Errorf("can't bin non-finite energies (range [%g, %g])", low, high)
	}
	if low == high {
		low, high = low-0.5, high+0.5
	}
	dividers := floats.Span(make([]float64, numBins+1), low, high)
	// The last bin is closed: include the maximum.
	dividers[numBins] = math.Nextafter(high, math.Inf(1))
	counts := stat.Histogram(nil, dividers, sorted, nil)
	return Histogram{Dividers: dividers, Counts: counts}, nil
}

// StateCount is the number of trials that ended in one configuration.
type StateCount struct {
	Values []float64
	Energy float64
	Count  int
}

// Key returns a compact representation of the configuration, e.g. "0110" for binary values.
func (sc StateCount) Key() string {
	return stateKey(sc.Values)
}

func stateKey(values []float64) string {
	binary := true
	for _, v := range values {
		if v != 0 && v != 1 {
			binary = false
			break
		}
	}
	if !binary {
		return fmt.Sprint(values)
	}
	buf := make([]byte, len(values))
	for ii, v := range values {
		buf[ii] = '0' + byte(v)
	}
	return string(buf)
}

// distinctStates returns the keys of the final configurations reached.
func (r *Result) distinctStates() sets.Set[string] {
	keys := sets.Make[string]()
	for _, values := range r.FinalValues {
		keys.Insert(stateKey(values))
	}
	return keys
}

// States returns the distinct final configurations, sorted by decreasing count, then by increasing
// energy, then by key.
func (r *Result) States() []StateCount {
	index := make(map[string]int)
	var states []StateCount
	for trial, values := range r.FinalValues {
		key := stateKey(values)
		if idx, found := index[key]; found {
			states[idx].Count++
			continue
		}
		index[key] = len(states)
		states = append(states, StateCount{Values: values, Energy: r.Energies[trial], Count: 1})
	}
	sort.SliceStable(states, func(i, j int) bool {
		if states[i].Count != states[j].Count {
			return states[i].Count > states[j].Count
		}
		if states[i].Energy != states[j].Energy {
			return states[i].Energy < states[j].Energy
		}
		return states[i].Key() < states[j].Key()
	})
	return states
}

// DataFrame returns one row per trial, with columns "trial", "energy" and "state".
func (r *Result) DataFrame() dataframe.DataFrame {
	return dataframe.New(
		series.New(xslices.Iota(0, len(r.Energies)), series.Int, "trial"),
		series.New(r.Energies, series.Float, "energy"),
		series.New(xslices.Map(r.FinalValues, stateKey), series.String, "state"),
	)
}

// WriteCSV writes DataFrame as CSV to w, with a header line.
func (r *Result) WriteCSV(w io.Writer) error {
	df := r.DataFrame()
	if df.Err != nil {
		return errors.Wrap(df.Err, "failed to build dataframe of results")
	}
	if err := df.WriteCSV(w); err != nil {
		return errors.Wrapf(err, "failed to write results of run %s as CSV", r.RunID)
	}
	return nil
}
