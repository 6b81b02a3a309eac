// Copyright 2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// boltzmann runs repeated random restarts of a stochastic Hopfield/Boltzmann network and reports the
// distribution of the energies reached.
//
// Example:
//
//	boltzmann -preset=rook9 -seed=42 -set="trials=5_000;alpha=0.8" -histogram=/tmp/energies.png
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/gomlx/boltzmann/pkg/core/rng"
	"github.com/gomlx/boltzmann/pkg/ml/presets"
	"github.com/gomlx/boltzmann/pkg/ml/simulation"
	"github.com/gomlx/boltzmann/pkg/support/settings"
	"github.com/gomlx/boltzmann/ui/commandline"
	"github.com/gomlx/boltzmann/ui/plots"
	"github.com/janpfeifer/must"
	"k8s.io/klog/v2"
)

// maxTrialsToShow is the largest number of trials for which -show prints every final state.
const maxTrialsToShow = 100

var (
	flagPreset = flag.String("preset", presets.DefaultName,
		fmt.Sprintf("Network to simulate, one of %q.", presets.Names()))
	flagSeed = flag.Int64("seed", 0, "Seed for the random number generator. If 0 it is seeded with the current time.")
	flagBins = flag.Int("bins", 10, "Number of bins of the energy histogram.")
	flagShow = flag.Bool("show", false,
		fmt.Sprintf("Print the final values of the network after each trial (only if there are at most %d trials). "+
			"It disables the progress bar.", maxTrialsToShow))
	flagStates     = flag.Int("states", 10, "Maximum number of distinct final states to list. If <= 0 list all.")
	flagHistogram  = flag.String("histogram", "", "If set, save a PNG plot of the energy histogram to this file.")
	flagTrace      = flag.String("trace", "", "If set, save an SVG plot of the energy per trial to this file.")
	flagHTML       = flag.String("html", "", "If set, save an HTML page with interactive plots of the energies to this file.")
	flagCSV        = flag.String("csv", "", "If set, save the energy and final state of each trial as CSV to this file.")
	flagNoProgress = flag.Bool("no_progress", false, "Disable the progress bar.")
	flagNoColor    = flag.Bool("no_color", false, "Disable colors in the tables.")
)

func main() {
	klog.InitFlags(nil)
	params := simulation.DefaultParams()
	settingsFlag := commandline.CreateSettingsFlag(nil, params, "")
	flag.Parse()
	if len(flag.Args()) > 0 {
		klog.Errorf("Unexpected arguments %q. See 'boltzmann -help'.", flag.Args())
		os.Exit(1)
	}
	if err := run(os.Stdout, params, *settingsFlag); err != nil {
		klog.Errorf("Failed: %+v", err)
		os.Exit(1)
	}
}

func run(out io.Writer, params *settings.Params, settingsFlag string) error {
	if *flagNoColor {
		commandline.DisableColors()
	}
	preset, err := presets.Lookup(*flagPreset)
	if err != nil {
		return err
	}
	paramsSet, err := params.Parse(settingsFlag)
	if err != nil {
		return err
	}
	if !slices.Contains(paramsSet, simulation.ParamC) {
		params.Set(simulation.ParamC, preset.C)
	}
	cfg, err := simulation.ConfigFromParams(params)
	if err != nil {
		return err
	}

	var src rng.Source
	if *flagSeed != 0 {
		src = rng.NewWithSeed(*flagSeed)
	} else {
		src = rng.New()
	}
	net := must.M1(preset.Build(src))

	_, _ = fmt.Fprintf(out, "Preset %q: %s\n", preset.Name, preset.Description)
	_, _ = fmt.Fprintf(out, "Weights:\n%s\n", commandline.WeightsTable(net))
	_, _ = fmt.Fprintf(out, "Couplings:\n%s\n", commandline.EdgesTable(net))
	if len(paramsSet) > 0 {
		_, _ = fmt.Fprintf(out, "Settings:\n%s\n", commandline.SprintModifiedSettings(params, paramsSet))
	}
	_, _ = fmt.Fprintln(out)

	loop, err := simulation.NewLoop(net, cfg)
	if err != nil {
		return err
	}
	showTrials := *flagShow && cfg.Trials <= maxTrialsToShow
	if *flagShow && !showTrials {
		klog.Warningf("-show ignored: %d trials is more than %d", cfg.Trials, maxTrialsToShow)
	}
	if showTrials {
		loop.OnTrial("show", 0, func(loop *simulation.Loop, trial simulation.Trial) error {
			if _, err := fmt.Fprintf(out, "Trial %d, energy %g:\n", trial.Index, trial.Energy); err != nil {
				return err
			}
			return loop.Network.Show(out)
		})
	} else if !*flagNoProgress {
		commandline.AttachProgressBarToWriter(loop, out, func() (name, value string) {
			return "Preset", preset.Name
		})
	}

	result, err := loop.Run()
	if err != nil {
		return err
	}
	if err = commandline.ReportResult(out, result, *flagStates, *flagBins); err != nil {
		return err
	}
	return writeOutputs(out, result)
}

// writeOutputs saves the plots and the CSV requested by the flags.
func writeOutputs(out io.Writer, result *simulation.Result) error {
	title := fmt.Sprintf("%s: final energies of %d trials", *flagPreset, len(result.Energies))
	var written []string
	if *flagHistogram != "" {
		h, err := result.Histogram(*flagBins)
		if err != nil {
			return err
		}
		if err = plots.ToFile(*flagHistogram, func(w io.Writer) error { return plots.WriteHistogramPNG(w, h, title) }); err != nil {
			return err
		}
		written = append(written, *flagHistogram)
	}
	if *flagTrace != "" {
		if err := plots.ToFile(*flagTrace, func(w io.Writer) error { return plots.WriteTraceSVG(w, result.Energies, title) }); err != nil {
			return err
		}
		written = append(written, *flagTrace)
	}
	if *flagHTML != "" {
		if err := plots.ToFile(*flagHTML, func(w io.Writer) error {
			return plots.WriteResultHTML(w, result, *flagBins, title)
		}); err != nil {
			return err
		}
		written = append(written, *flagHTML)
	}
	if *flagCSV != "" {
		if err := plots.ToFile(*flagCSV, result.WriteCSV); err != nil {
			return err
		}
		written = append(written, *flagCSV)
	}
	if len(written) > 0 {
		_, _ = fmt.Fprintf(out, "\nWritten to:\n\t%s\n", strings.Join(written, "\n\t"))
	}
	return nil
}
