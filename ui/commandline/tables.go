// Copyright 2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package commandline

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/gomlx/boltzmann/pkg/core/network"
	"github.com/gomlx/boltzmann/pkg/ml/simulation"
	"github.com/gomlx/boltzmann/pkg/support/xslices"
)

var (
	headerRowStyle = lipgloss.NewStyle().Reverse(true).
			Padding(0, 2, 0, 2).Align(lipgloss.Center)
	oddRowStyle = lipgloss.NewStyle().Faint(false).
			PaddingLeft(1).PaddingRight(1)
	evenRowStyle = lipgloss.NewStyle().Faint(true).
			PaddingLeft(1).PaddingRight(1)
	highlightRowStyle = lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{Light: "9", Dark: "9"}).
				Bold(true).
				PaddingLeft(1).PaddingRight(1)
)

// HistogramBarWidth is the number of characters of the longest bar in HistogramTable.
var HistogramBarWidth = 40

// highlightTable is a lipgloss table where some rows can be highlighted.
type highlightTable struct {
	Table       *lgtable.Table
	Count       int
	Highlighted map[int]bool
}

// Row appends a row to the table, highlighted if requested.
func (t *highlightTable) Row(highlight bool, row ...string) {
	if highlight {
		t.Highlighted[t.Count] = true
	}
	t.Table.Row(row...)
	t.Count++
}

func newTable(alignments ...lipgloss.Position) *highlightTable {
	t := &highlightTable{
		Highlighted: make(map[int]bool),
	}
	t.Table = lgtable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("99"))).
		StyleFunc(func(row, col int) (s lipgloss.Style) {
			if row < 0 {
				return headerRowStyle
			}
			switch {
			case t.Highlighted[row]:
				s = highlightRowStyle
			case row%2 == 0:
				s = oddRowStyle
			default:
				s = evenRowStyle
			}
			alignment := lipgloss.Left
			if col < len(alignments) {
				alignment = alignments[col]
			} else if len(alignments) > 0 {
				alignment = alignments[len(alignments)-1]
			}
			return s.Align(alignment)
		})
	return t
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

// WeightsTable renders the weight matrix of the network, with the bias of each node as
// the last column.
func WeightsTable(net *network.Network) string {
	n := net.N()
	weights := net.Weights()
	bias := net.Bias()
	headers := make([]string, 0, n+2)
	headers = append(headers, "node")
	for j := range n {
		headers = append(headers, strconv.Itoa(j))
	}
	headers = append(headers, "bias")

	t := newTable(lipgloss.Right)
	t.Table.Headers(headers...)
	for i := range n {
		row := make([]string, 0, n+2)
		row = append(row, strconv.Itoa(i))
		row = append(row, xslices.Map(weights[i], formatFloat)...)
		row = append(row, formatFloat(bias[i]))
		t.Row(false, row...)
	}
	return t.Table.String()
}

// EdgesTable lists the non-zero couplings between distinct nodes (upper triangle of the weight
// matrix), along with the self-couplings on the diagonal if any are set.
func EdgesTable(net *network.Network) string {
	weights := net.Weights()
	t := newTable(lipgloss.Right, lipgloss.Right, lipgloss.Right)
	t.Table.Headers("from", "to", "weight")
	for i := range weights {
		for j := i; j < len(weights); j++ {
			w := weights[i][j]
			if w == 0 {
				continue
			}
			t.Row(i == j, strconv.Itoa(i), strconv.Itoa(j), formatFloat(w))
		}
	}
	return t.Table.String()
}

// SummaryTable renders the summary statistics of a simulation result.
func SummaryTable(result *simulation.Result) string {
	summary := result.Summarize()
	t := newTable(lipgloss.Right, lipgloss.Left)
	t.Row(false, "run", result.RunID.String())
	t.Row(false, "trials", humanize.Comma(int64(summary.Count)))
	t.Row(false, "sweeps per trial", humanize.Comma(int64(result.Config.SweepsPerTrial)))
	if result.Config.Stochastic {
		t.Row(false, "rule", fmt.Sprintf("stochastic (alpha=%s)", formatFloat(result.Config.Alpha)))
	} else {
		t.Row(false, "rule", "deterministic")
	}
	t.Row(false, "initializer", result.Config.Initializer.String())
	t.Row(false, "mean energy", formatFloat(summary.Mean))
	t.Row(false, "std energy", formatFloat(summary.StdDev))
	t.Row(true, "lowest energy", formatFloat(summary.Min))
	t.Row(false, "highest energy", formatFloat(summary.Max))
	t.Row(false, "distinct states", humanize.Comma(int64(summary.DistinctStates)))
	t.Row(false, "duration", FormatDuration(result.Duration))
	return t.Table.String()
}

// StatesTable lists the most frequent final states, up to maxRows (all if maxRows <= 0).
// The states with the lowest energy are highlighted.
func StatesTable(result *simulation.Result, maxRows int) string {
	states := result.States()
	if len(states) == 0 {
		return ""
	}
	lowest := states[0].Energy
	for _, sc := range states {
		lowest = min(lowest, sc.Energy)
	}
	if maxRows > 0 && len(states) > maxRows {
		states = states[:maxRows]
	}
	total := len(result.Energies)
	t := newTable(lipgloss.Left, lipgloss.Right)
	t.Table.Headers("state", "energy", "count", "share")
	for _, sc := range states {
		t.Row(sc.Energy == lowest, sc.Key(), formatFloat(sc.Energy), humanize.Comma(int64(sc.Count)),
			fmt.Sprintf("%.1f%%", 100*float64(sc.Count)/float64(total)))
	}
	return t.Table.String()
}

// HistogramTable renders the energy histogram as a table with a horizontal bar per bin.
func HistogramTable(h simulation.Histogram) string {
	var maxCount float64
	for _, c := range h.Counts {
		maxCount = max(maxCount, c)
	}
	t := newTable(lipgloss.Right, lipgloss.Right, lipgloss.Left)
	t.Table.Headers("energy", "count", "")
	for ii, c := range h.Counts {
		var barLen int
		if maxCount > 0 {
			barLen = int(float64(HistogramBarWidth)*c/maxCount + 0.5)
		}
		t.Row(false,
			fmt.Sprintf("[%s, %s)", formatFloat(h.Dividers[ii]), formatFloat(h.Dividers[ii+1])),
			humanize.Comma(int64(c)),
			strings.Repeat("#", barLen))
	}
	return t.Table.String()
}
