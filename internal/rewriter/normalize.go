package rewriter

import (
	"regexp"
	"strings"
)

const markerPrefix = "<!-- generated by htmplate v"

var lineBreaks = regexp.MustCompile(`[\r\n]\s*`)

// Marker returns the comment line prepended to every rewritten document.
func Marker(version string) string {
	return markerPrefix + strings.TrimPrefix(version, "v") + " -->\n"
}

// StripMarker removes a leading marker line left by a previous run.
func StripMarker(document string) string {
	if !strings.HasPrefix(document, markerPrefix) {
		return document
	}
	end := strings.Index(document, "-->")
	if end < 0 {
		return document
	}
	rest := document[end+len("-->"):]
	rest = strings.TrimPrefix(rest, "\r")
	return strings.TrimPrefix(rest, "\n")
}

// Normalize collapses every line break and the indentation after it into a
// single space, then puts adjacent tags on their own lines.
func Normalize(document string) string {
	document = lineBreaks.ReplaceAllString(document, " ")
	return strings.ReplaceAll(document, "> <", ">\n<")
}
