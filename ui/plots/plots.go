// Copyright 2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package plots renders the energies collected by a simulation: a histogram of the final energies
// (PNG with gonum/plot, or an interactive HTML page with Plotly) and the energy per trial trace
// (SVG with margaid).
package plots

import (
	"image/color"
	"io"
	"os"

	"github.com/gomlx/boltzmann/pkg/ml/simulation"
	"github.com/gomlx/boltzmann/pkg/support/fsutil"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var (
	// ImageWidth and ImageHeight are the dimensions of the PNG plots.
	ImageWidth, ImageHeight = 8 * vg.Inch, 5 * vg.Inch

	histogramFill = color.RGBA{R: 0x70, G: 0x50, B: 0x90, A: 0xff}
)

// ToFile creates fileName and calls write with it, closing it afterwards.
// A leading "~" in fileName is replaced by the home directory.
func ToFile(fileName string, write func(w io.Writer) error) (err error) {
	fileName, err = fsutil.ReplaceTildeInPath(fileName)
	if err != nil {
		return err
	}
	f, err := os.Create(fileName)
	if err != nil {
		return errors.Wrapf(err, "failed to create file %q", fileName)
	}
	defer func() {
		closeErr := f.Close()
		if err == nil && closeErr != nil {
			err = errors.Wrapf(closeErr, "failed to close file %q", fileName)
		}
	}()
	if err = write(f); err != nil {
		return errors.WithMessagef(err, "writing %q", fileName)
	}
	return nil
}

// WriteHistogramPNG renders the histogram of energies as a PNG image.
func WriteHistogramPNG(w io.Writer, h simulation.Histogram, title string) error {
	if len(h.Counts) == 0 || len(h.Dividers) != len(h.Counts)+1 {
		return errors.Errorf("invalid histogram with %d counts and %d dividers", len(h.Counts), len(h.Dividers))
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "energy"
	p.Y.Label.Text = "trials"
	p.Y.Min = 0

	bins := make([]plotter.HistogramBin, len(h.Counts))
	for ii, count := range h.Counts {
		bins[ii] = plotter.HistogramBin{Min: h.Dividers[ii], Max: h.Dividers[ii+1], Weight: count}
	}
	hist := &plotter.Histogram{
		Bins:      bins,
		Width:     h.Dividers[len(h.Dividers)-1] - h.Dividers[0],
		FillColor: histogramFill,
		LineStyle: plotter.DefaultLineStyle,
	}
	p.Add(hist, plotter.NewGrid())

	writerTo, err := p.WriterTo(ImageWidth, ImageHeight, "png")
	if err != nil {
		return errors.Wrap(err, "failed to render histogram plot")
	}
	if _, err = writerTo.WriteTo(w); err != nil {
		return errors.Wrap(err, "failed to write histogram plot")
	}
	return nil
}

// energyRange returns the range to plot energies, with some margin.
func energyRange(energies []float64) (low, high float64) {
	low, high = floats.Min(energies), floats.Max(energies)
	margin := (high - low) * 0.05
	if margin == 0 {
		margin = 0.5
	}
	return low - margin, high + margin
}
