package text

import (
	"regexp"
	"strings"
)

var (
	paragraphPattern = regexp.MustCompile(`\n\s*\n\s*`)
	lineBreakPattern = regexp.MustCompile(`\n\s*`)
)

// Normalize collapses runs of whitespace while keeping line breaks.
func Normalize(text string) string {
	text = strings.TrimSpace(text)

	// \a marks line breaks while the remaining whitespace is collapsed
	text = strings.ReplaceAll(text, "\a", "")
	text = strings.ReplaceAll(text, "\r\n", "\n")

	text = paragraphPattern.ReplaceAllString(text, "\a")
	text = lineBreakPattern.ReplaceAllString(text, "\a")

	text = strings.Join(strings.Fields(text), " ")

	text = strings.ReplaceAll(text, " \a", "\a")
	text = strings.ReplaceAll(text, "\a ", "\a")
	text = strings.ReplaceAll(text, "\a", "\n")

	return strings.TrimSpace(text)
}
