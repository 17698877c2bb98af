package util

import (
	"os"

	"golang.org/x/term"
)

// IsTerminal reports whether the given file descriptor is a terminal.
// The fetch pool uses this to decide between a progress bar and plain
// text progress.
func IsTerminal(fd uintptr) bool {
	return term.IsTerminal(int(fd))
}

// TerminalWidth returns the width of stdout, or 80 when it is not a
// terminal.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 80
	}
	return width
}
