// Copyright 2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package plots

import (
	"io"

	mg "github.com/erkkah/margaid"
	"github.com/pkg/errors"
)

// TraceWidth and TraceHeight are the dimensions of the SVG trace.
var TraceWidth, TraceHeight = 1024, 400

// WriteTraceSVG renders the energy reached at each trial, in trial order, as an SVG line plot.
func WriteTraceSVG(w io.Writer, energies []float64, title string) error {
	if len(energies) == 0 {
		return errors.New("no energies to plot")
	}
	series := mg.NewSeries(mg.Titled("energy"))
	for trial, e := range energies {
		series.Add(mg.MakeValue(float64(trial), e))
	}
	low, high := energyRange(energies)
	diagram := mg.New(TraceWidth, TraceHeight,
		mg.WithRange(mg.XAxis, 0, float64(max(len(energies)-1, 1))),
		mg.WithRange(mg.YAxis, low, high),
		mg.WithInset(70),
		mg.WithPadding(2),
		mg.WithColorScheme(90),
		mg.WithBackgroundColor("#f8f8f8"),
	)
	diagram.Line(series, mg.UsingAxes(mg.XAxis, mg.YAxis), mg.UsingMarker("circle"), mg.UsingStrokeWidth(1))
	diagram.Axis(series, mg.XAxis, diagram.ValueTicker('f', 0, 10), false, "Trial")
	diagram.Axis(series, mg.YAxis, diagram.ValueTicker('f', 2, 10), true, "Energy")
	diagram.Frame()
	if title != "" {
		diagram.Title(title)
	}
	if err := diagram.Render(w); err != nil {
		return errors.Wrap(err, "failed to render energy trace")
	}
	return nil
}
