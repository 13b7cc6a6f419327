package ui

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
)

// Banner printed at the top of interactive runs
const Banner = `
  ┌─┐┌─┐┬  ┬  ┌─┐┬ ┬┌─┐┬─┐┌─┐
  ├┤ │ ││  │  │ ││││├┤ ├┬┘└─┐
  └  └─┘┴─┘┴─┘└─┘└┴┘└─┘┴└─└─┘  twitter follower export
`

// Color functions for terminal output
var (
	Cyan    = color.New(color.FgCyan).SprintFunc()
	Yellow  = color.New(color.FgYellow).SprintFunc()
	Red     = color.New(color.FgRed).SprintFunc()
	Green   = color.New(color.FgGreen).SprintFunc()
	Magenta = color.New(color.FgMagenta).SprintFunc()
	Dim     = color.New(color.Faint).SprintFunc()
	Bold    = color.New(color.Bold).SprintFunc()
)

var (
	mu     sync.Mutex
	stdout io.Writer = color.Output
	stderr io.Writer = color.Error
	quiet  bool
)

// SetOutput redirects normal and error output, mainly for tests
func SetOutput(out, errOut io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	stdout = out
	stderr = errOut
}

// SetQuiet suppresses everything except errors and warnings
func SetQuiet(q bool) {
	mu.Lock()
	defer mu.Unlock()
	quiet = q
}

// IsQuiet reports whether quiet mode is on
func IsQuiet() bool {
	mu.Lock()
	defer mu.Unlock()
	return quiet
}

// SetNoColor disables or enables colored output globally
func SetNoColor(disabled bool) {
	color.NoColor = disabled
}

func out() io.Writer {
	mu.Lock()
	defer mu.Unlock()
	if quiet {
		return io.Discard
	}
	return stdout
}

func errOut() io.Writer {
	mu.Lock()
	defer mu.Unlock()
	return stderr
}

func PrintBanner() {
	fmt.Fprint(out(), Cyan(Banner))
}

// PrintError prints an error message in red to stderr
func PrintError(msg string, args ...interface{}) {
	if len(args) > 0 {
		fmt.Fprintln(errOut(), Red(msg+": "+fmt.Sprintf("%v", args[0])))
	} else {
		fmt.Fprintln(errOut(), Red(msg))
	}
}

func PrintSuccess(msg string) {
	fmt.Fprintln(out(), Green(msg))
}

// PrintInfo prints a label/value pair
func PrintInfo(label string, value string) {
	fmt.Fprintf(out(), "%s: %s\n", Cyan(label), Yellow(value))
}

// PrintWarning prints a warning in yellow to stderr
func PrintWarning(msg string, args ...interface{}) {
	if len(args) > 0 {
		fmt.Fprintln(errOut(), Yellow(msg+": "+fmt.Sprintf("%v", args[0])))
	} else {
		fmt.Fprintln(errOut(), Yellow(msg))
	}
}

func PrintHighlight(msg string) {
	fmt.Fprintln(out(), Magenta(msg))
}
