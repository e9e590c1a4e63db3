// Package strings holds small text helpers shared by the CLI output and the
// PuppetDB error messages.
package strings

import (
	"strings"
)

// ErrorBodyMaxLen bounds how much of a PuppetDB error body is shown to users.
const ErrorBodyMaxLen = 200

// CellMaxLen bounds a value rendered into a table cell.
const CellMaxLen = 100

// minSummaryLen leaves room for one character plus "...".
const minSummaryLen = 4

// Summarize collapses s onto a single line and shortens it to at most maxLen
// runes, marking a cut with "...". Runs of whitespace, including newlines
// from HTML error pages or pretty-printed JSON, become a single space.
func Summarize(s string, maxLen int) string {
	if maxLen < minSummaryLen {
		maxLen = minSummaryLen
	}

	s = strings.Join(strings.Fields(s), " ")

	runes := []rune(s)
	if len(runes) > maxLen {
		return string(runes[:maxLen-3]) + "..."
	}
	return s
}
