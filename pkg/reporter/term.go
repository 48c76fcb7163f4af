package reporter

import (
	"io"

	"golang.org/x/term"
)

// defaultTermWidth is used when terminal width cannot be determined.
const defaultTermWidth = 100

// terminalWidth attempts to get the terminal width from the writer.
func terminalWidth(writer io.Writer) int {
	if f, ok := writer.(interface{ Fd() uintptr }); ok {
		width, _, err := term.GetSize(int(f.Fd()))
		if err == nil && width > 0 {
			return width
		}
	}
	return defaultTermWidth
}
