// Copyright 2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package plots

import (
	"encoding/base64"
	"encoding/json"
	"html/template"
	"io"

	"github.com/gomlx/boltzmann/pkg/ml/simulation"
	"github.com/gomlx/boltzmann/pkg/support/xslices"
	"github.com/janpfeifer/gonb/gonbui/plotly"
	"github.com/pkg/errors"

	grob "github.com/MetalBlueberry/go-plotly/generated/v2.34.0/graph_objects"
	ptypes "github.com/MetalBlueberry/go-plotly/pkg/types"
)

var (
	singleFileHTML = `<!DOCTYPE html>
	<head>
		<meta charset="utf-8">
		<title>{{ .Title }}</title>
		<script src="{{ .CDN }}"></script>
	</head>
	<body>
{{- range $i, $f := .Figures }}
		<div id="plot{{ $i }}"></div>
{{- end }}
	<script>
{{- range $i, $f := .Figures }}
		data = JSON.parse(atob('{{ $f }}'))
		Plotly.newPlot('plot{{ $i }}', data);
{{- end }}
	</script>
	</body>
</html>`
	singleFileHTMLTmpl = template.Must(template.New("plotly").Parse(singleFileHTML))
)

// newFigure with a title and grids on both axes.
func newFigure(title string) *grob.Fig {
	return &grob.Fig{
		Layout: &grob.Layout{
			Title: &grob.LayoutTitle{
				Text: ptypes.S(title),
			},
			Xaxis: &grob.LayoutXaxis{
				Showgrid: ptypes.B(true),
			},
			Yaxis: &grob.LayoutYaxis{
				Showgrid: ptypes.B(true),
			},
		},
	}
}

// HistogramFigure creates a Plotly bar chart of the energy histogram.
func HistogramFigure(h simulation.Histogram, title string) *grob.Fig {
	centers := make([]float64, len(h.Counts))
	for ii := range centers {
		centers[ii] = (h.Dividers[ii] + h.Dividers[ii+1]) / 2
	}
	fig := newFigure(title)
	fig.Data = append(fig.Data, &grob.Bar{
		Name: ptypes.S("energy"),
		X:    ptypes.DataArray(centers),
		Y:    ptypes.DataArray(h.Counts),
	})
	return fig
}

// TraceFigure creates a Plotly line plot of the energy per trial.
func TraceFigure(energies []float64, title string) *grob.Fig {
	fig := newFigure(title)
	fig.Data = append(fig.Data, &grob.Scatter{
		Name: ptypes.S("energy"),
		Line: &grob.ScatterLine{
			Shape: grob.ScatterLineShapeLinear,
		},
		Mode: "lines+markers",
		X:    ptypes.DataArray(xslices.Iota(0.0, len(energies))),
		Y:    ptypes.DataArray(energies),
	})
	return fig
}

// WriteFiguresAsHTML renders the Plotly figures to a self-contained HTML page (Plotly itself is
// loaded from its CDN).
func WriteFiguresAsHTML(w io.Writer, title string, figures ...*grob.Fig) error {
	encoded := make([]string, 0, len(figures))
	for ii, fig := range figures {
		figAsJSON, err := json.Marshal(fig)
		if err != nil {
			return errors.Wrapf(err, "failed to marshal plotly figure #%d", ii)
		}
		encoded = append(encoded, base64.StdEncoding.EncodeToString(figAsJSON))
	}
	data := &struct {
		Title   string
		CDN     string
		Figures []string
	}{
		Title:   title,
		CDN:     plotly.PlotlySrc,
		Figures: encoded,
	}
	if err := singleFileHTMLTmpl.Execute(w, data); err != nil {
		return errors.Wrap(err, "failed to render plotly")
	}
	return nil
}

// WriteResultHTML writes an HTML page with the energy histogram (numBins bins) and the energy trace of
// the result.
func WriteResultHTML(w io.Writer, result *simulation.Result, numBins int, title string) error {
	h, err := result.Histogram(numBins)
	if err != nil {
		return err
	}
	return WriteFiguresAsHTML(w, title,
		HistogramFigure(h, "Final energy histogram"),
		TraceFigure(result.Energies, "Final energy per trial"))
}
