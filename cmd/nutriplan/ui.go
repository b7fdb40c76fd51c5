package main

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
)

// UI provides user-friendly output utilities.
type UI struct {
	out    io.Writer
	errOut io.Writer
}

// NewUI creates a UI writing results to out and transient progress to errOut.
func NewUI(out, errOut io.Writer) *UI {
	return &UI{out: out, errOut: errOut}
}

// Success prints a success message.
func (ui *UI) Success(format string, args ...any) {
	color.New(color.FgGreen).Fprintf(ui.out, "✓ %s\n", fmt.Sprintf(format, args...)) //nolint:errcheck
}

// Error prints an error message.
func (ui *UI) Error(format string, args ...any) {
	color.New(color.FgRed).Fprintf(ui.errOut, "✗ %s\n", fmt.Sprintf(format, args...)) //nolint:errcheck
}

// Warning prints a warning message.
func (ui *UI) Warning(format string, args ...any) {
	color.New(color.FgYellow).Fprintf(ui.errOut, "⚠ %s\n", fmt.Sprintf(format, args...)) //nolint:errcheck
}

// Info prints an info message.
func (ui *UI) Info(format string, args ...any) {
	color.New(color.FgCyan).Fprintf(ui.out, "ℹ %s\n", fmt.Sprintf(format, args...)) //nolint:errcheck
}

// DayBar shows generation progress as days out of the week.
type DayBar struct {
	bar *progressbar.ProgressBar
}

// NewDayBar creates a progress bar over total days.
func (ui *UI) NewDayBar(total int, description string) *DayBar {
	bar := progressbar.NewOptions(
		total,
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionSetWriter(ui.errOut),
		progressbar.OptionShowCount(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(ui.errOut, "\n")
		}),
		progressbar.OptionSetRenderBlankState(true),
	)
	return &DayBar{bar: bar}
}

// Advance moves the bar to day and shows message.
func (d *DayBar) Advance(day int, message string) {
	d.bar.Describe(message)
	_ = d.bar.Set(day)
}

// Finish completes the bar.
func (d *DayBar) Finish() {
	_ = d.bar.Finish()
}

// Abort leaves the bar where it is and ends the line.
func (d *DayBar) Abort() {
	_ = d.bar.Exit()
}

// Spinner wraps a spinner instance for indeterminate progress display.
type Spinner struct {
	spinner *spinner.Spinner
}

// NewSpinner creates a new spinner with the given message.
func (ui *UI) NewSpinner(message string) *Spinner {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(ui.errOut))
	s.Suffix = " " + message
	return &Spinner{spinner: s}
}

// Start starts the spinner animation.
func (s *Spinner) Start() {
	s.spinner.Start()
}

// Stop stops the spinner animation and clears the line.
func (s *Spinner) Stop() {
	s.spinner.Stop()
}
