// Package console sets up logging for the command-line tools and prints
// compile diagnostics.
package console

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/term"
)

const (
	colorRed   = "\x1b[31m"
	colorBold  = "\x1b[1m"
	colorReset = "\x1b[0m"
)

// NewLogger returns a text logger on w, or a JSON logger when jsonOutput is
// set. Debug messages are shown only when verbose is set.
func NewLogger(w io.Writer, verbose, jsonOutput bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if verbose {
		opts.Level = slog.LevelDebug
	}
	if jsonOutput {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Error prints err to w. Compile errors span several lines, with a source
// excerpt whose offending line starts with "> "; on a terminal that line
// and the first line of the message are highlighted.
func Error(w io.Writer, err error) {
	color := IsTerminal(w)
	lines := strings.Split(strings.TrimRight(err.Error(), "\n"), "\n")
	for i, line := range lines {
		switch {
		case color && i == 0:
			fmt.Fprintln(w, colorBold+line+colorReset)
		case color && strings.HasPrefix(line, "> "):
			fmt.Fprintln(w, colorRed+line+colorReset)
		default:
			fmt.Fprintln(w, line)
		}
	}
}
