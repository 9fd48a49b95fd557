package summarize

import (
	"fmt"
	"strings"
)

// splitLines splits text after each '\n', keeping terminators. A final line
// without a terminator is still a line; an empty text has none.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// OmissionMarker is the text placed between the head and tail of a long file.
func OmissionMarker(omitted int) string {
	return fmt.Sprintf("\n... %d lines omitted ...\n", omitted)
}

// truncateLines joins lines, keeping only the head and tail of anything longer
// than MaxLines.
func truncateLines(lines []string) (string, bool) {
	if len(lines) <= MaxLines {
		return strings.Join(lines, ""), false
	}
	var b strings.Builder
	for _, l := range lines[:HeadLines] {
		b.WriteString(l)
	}
	b.WriteString(OmissionMarker(len(lines) - MaxLines))
	for _, l := range lines[len(lines)-TailLines:] {
		b.WriteString(l)
	}
	return b.String(), true
}
