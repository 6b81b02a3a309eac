// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package commandline contains convenience UI tools to run simulations from the command line:
// a progress bar, the "-set" flag for simulation parameters and tables to report networks and results.
package commandline

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/gomlx/boltzmann/pkg/ml/simulation"
	"github.com/muesli/termenv"
)

// DisableColors makes all tables render as plain text, without ANSI escape sequences.
func DisableColors() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// ReportResult writes the summary of the result, the most frequent final states (up to maxStates) and
// the energy histogram with numBins bins (skipped if numBins <= 0).
func ReportResult(w io.Writer, result *simulation.Result, maxStates, numBins int) error {
	if _, err := fmt.Fprintf(w, "Summary:\n%s\n\n", SummaryTable(result)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Final states:\n%s\n\n", StatesTable(result, maxStates)); err != nil {
		return err
	}
	if numBins <= 0 {
		return nil
	}
	h, err := result.Histogram(numBins)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "Energy histogram:\n%s\n", HistogramTable(h))
	return err
}
