// Copyright 2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package commandline

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/gomlx/boltzmann/pkg/ml/simulation"
	"github.com/gomlx/boltzmann/pkg/support/sets"
	"github.com/gomlx/boltzmann/ui/notebooks"
	"github.com/muesli/termenv"
	"github.com/schollz/progressbar/v3"
)

// ExtraMetricFn is any function that will give extra values to display along the progress bar.
// It is called at each time the progress bar is updated, and it should return a name and the current value when it is called.
type ExtraMetricFn func() (name, value string)

// ProgressbarStyle to use. Defaults to the ASCII version.
// Consider "progressbar.ThemeUnicode" for a prettier version.
// But it requires some of the graphical symbols to be supported.
var ProgressbarStyle = progressbar.ThemeASCII

// maxUpdateFrequency is the time between updates to the commandline display of stats.
var maxUpdateFrequency = time.Millisecond * 200

// ProgressBarName is the name of the hooks registered by AttachProgressBar.
const ProgressBarName = "boltzmann.ui.commandline.progressBar"

var (
	normalStyle       = lipgloss.NewStyle().Padding(0, 1)
	rightAlignedStyle = lipgloss.NewStyle().Align(lipgloss.Right).Padding(0, 1)
	tableBorderColor  = "#705090"
)

// progressBar holds a progressbar being displayed, along with a table of running statistics.
type progressBar struct {
	out        io.Writer
	bar        *progressbar.ProgressBar
	termenv    *termenv.Output
	inNotebook bool
	suffix     string

	statsStyle    lipgloss.Style
	statsTable    *lgtable.Table
	isFirstOutput bool
	linesPrinted  int
	lastUpdate    time.Time
	lastReported  int

	// Running statistics of the energies and final states.
	count                int
	sum, lowest, lastOne float64
	states               sets.Set[string]

	extraMetricFns []ExtraMetricFn
}

// AttachProgressBar creates a commandline progress bar and attaches it to the Loop, so that
// everytime Loop is run, it will display a progress bar with progression and energy statistics.
//
// Optionally, one can provide extraMetrics: functions that are called at every update of
// the progress bar and should return a name (title) and a value to be included in the
// updated print-out.
func AttachProgressBar(loop *simulation.Loop, extraMetrics ...ExtraMetricFn) {
	AttachProgressBarToWriter(loop, os.Stdout, extraMetrics...)
}

// AttachProgressBarToWriter is like AttachProgressBar, but prints to the given writer.
func AttachProgressBarToWriter(loop *simulation.Loop, w io.Writer, extraMetrics ...ExtraMetricFn) {
	pBar := &progressBar{
		out:            w,
		inNotebook:     notebooks.IsNotebook(),
		termenv:        termenv.NewOutput(w),
		statsStyle:     lipgloss.NewStyle().PaddingLeft(8),
		extraMetricFns: extraMetrics,
	}
	pBar.statsTable = lgtable.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(tableBorderColor))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col == 0 {
				return rightAlignedStyle
			}
			return normalStyle
		})
	loop.OnStart(ProgressBarName, 0, pBar.onStart)
	loop.OnTrial(ProgressBarName, 0, pBar.onTrial)
	loop.OnEnd(ProgressBarName, 0, pBar.onEnd)
}

// Write implements io.Writer, and appends the current suffix to each line. It is used as the
// writer of the enclosed progressbar.ProgressBar, so the progress bar and its suffix are written
// in the same write operation: otherwise Jupyter Notebook may display them in different lines.
func (pBar *progressBar) Write(data []byte) (n int, err error) {
	n, err = pBar.out.Write(data)
	if err != nil {
		return n, err
	}
	_, err = io.WriteString(pBar.out, pBar.suffix)
	if err != nil {
		return 0, err
	}
	return
}

func (pBar *progressBar) onStart(loop *simulation.Loop) error {
	pBar.isFirstOutput = true
	pBar.linesPrinted = 0
	pBar.lastReported = 0
	pBar.lastUpdate = time.Time{}
	pBar.count, pBar.sum = 0, 0
	pBar.states = sets.Make[string]()
	pBar.suffix = ""
	pBar.bar = progressbar.NewOptions(loop.Config.Trials,
		progressbar.OptionSetDescription("      [bold]"),
		progressbar.OptionUseANSICodes(true),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("trials"),
		progressbar.OptionSetTheme(ProgressbarStyle),
		progressbar.OptionSetWriter(pBar),
	)
	return nil
}

func (pBar *progressBar) onTrial(loop *simulation.Loop, trial simulation.Trial) error {
	if pBar.count == 0 || trial.Energy < pBar.lowest {
		pBar.lowest = trial.Energy
	}
	pBar.count++
	pBar.sum += trial.Energy
	pBar.lastOne = trial.Energy
	pBar.states.Insert(trial.Key())

	isLast := trial.Index+1 >= loop.Config.Trials
	if !isLast && time.Since(pBar.lastUpdate) < maxUpdateFrequency {
		return nil
	}
	pBar.lastUpdate = time.Now()
	if pBar.inNotebook {
		pBar.renderSuffix(trial.Index + 1)
	} else {
		pBar.render(loop, trial.Index+1)
	}
	return nil
}

// renderSuffix updates the progress bar with the statistics in a suffix on the same line, for notebooks.
func (pBar *progressBar) renderSuffix(trialsDone int) {
	parts := []string{
		fmt.Sprintf(" [trial=%s]", humanize.Comma(int64(trialsDone))),
		fmt.Sprintf(" [mean=%s]", formatFloat(pBar.sum/float64(pBar.count))),
		fmt.Sprintf(" [lowest=%s]", formatFloat(pBar.lowest)),
	}
	for _, extraMetric := range pBar.extraMetricFns {
		name, value := extraMetric()
		parts = append(parts, fmt.Sprintf(" [%s=%s]", name, value))
	}
	// Erase to an end-of-line escape sequence ("\033[J") not supported in Jupyter notebooks.
	parts = append(parts, "        ")
	pBar.suffix = strings.Join(parts, "")
	_ = pBar.bar.Add(trialsDone - pBar.lastReported) // Triggers print, see progressBar.Write.
	pBar.lastReported = trialsDone
}

// render the statistics table and the progress bar, overwriting the previous print-out.
func (pBar *progressBar) render(loop *simulation.Loop, trialsDone int) {
	pBar.statsTable.Data(lgtable.NewStringData())
	pBar.statsTable.Row("Trial", fmt.Sprintf("%s of %s",
		humanize.Comma(int64(trialsDone)), humanize.Comma(int64(loop.Config.Trials))))
	pBar.statsTable.Row("Median trial duration", FormatDuration(loop.MedianTrialDuration()))
	pBar.statsTable.Row("Last energy", formatFloat(pBar.lastOne))
	pBar.statsTable.Row("Mean energy", formatFloat(pBar.sum/float64(pBar.count)))
	pBar.statsTable.Row("Lowest energy", formatFloat(pBar.lowest))
	pBar.statsTable.Row("Distinct states", humanize.Comma(int64(len(pBar.states))))
	for _, extraMetric := range pBar.extraMetricFns {
		name, value := extraMetric()
		pBar.statsTable.Row(name, value)
	}

	// Clear the previous lines that will be overwritten.
	pBar.termenv.HideCursor()
	if !pBar.isFirstOutput {
		pBar.termenv.CursorPrevLine(pBar.linesPrinted)
	}
	pBar.isFirstOutput = false

	rendered := pBar.statsStyle.Render(pBar.statsTable.String())
	_, _ = fmt.Fprintln(pBar.out, rendered)
	_ = pBar.bar.Add(trialsDone - pBar.lastReported) // Prints progress bar line.
	_, _ = fmt.Fprintln(pBar.out)
	pBar.termenv.ShowCursor()
	pBar.lastReported = trialsDone
	pBar.linesPrinted = strings.Count(rendered, "\n") + 2
}

func (pBar *progressBar) onEnd(_ *simulation.Loop, _ *simulation.Result) error {
	if !pBar.inNotebook {
		pBar.termenv.ShowCursor()
	}
	_, _ = fmt.Fprintln(pBar.out)
	return nil
}
