package watcher

import (
	"fmt"
	"io"
	"strings"

	"github.com/conneroisu/htmplate/internal/errors"
)

const (
	clearScreen = "\x1b[2J\x1b[H"
	green       = "\x1b[32m"
	yellow      = "\x1b[33m"
	red         = "\x1b[31m"
	reset       = "\x1b[0m"
)

// WriteStatus clears the terminal and prints one line per file followed by
// the error stack of failed files.
func WriteStatus(w io.Writer, root string, files []FileStatus, batches int) {
	var b strings.Builder
	b.WriteString(clearScreen)

	for _, file := range files {
		if file.Err != nil {
			fmt.Fprintf(&b, "%s✗%s %s `%s`\n", red, reset, file.Kind.FailureVerb(), file.Path)
			b.WriteString(indent(errors.FormatStack(file.Err, 2), 2))
			continue
		}

		fmt.Fprintf(&b, "%s✓%s %s `%s` (%d)\n", green, reset, file.Kind.Verb(), file.Path, file.Invocations)
		if file.Warning != nil {
			fmt.Fprintf(&b, "%s!%s could not format `%s`\n", yellow, reset, file.Output)
			b.WriteString(indent(errors.FormatStack(file.Warning, 2), 2))
		}
	}

	fmt.Fprintf(&b, "\nWatching `%s` press `Ctrl + C` to exit (%d)\n", root, batches)
	_, _ = io.WriteString(w, b.String())
}

func indent(text string, width int) string {
	if text == "" {
		return ""
	}
	pad := strings.Repeat(" ", width)
	lines := strings.SplitAfter(text, "\n")
	var b strings.Builder
	for _, line := range lines {
		if line == "" {
			continue
		}
		b.WriteString(pad)
		b.WriteString(line)
	}
	return b.String()
}
