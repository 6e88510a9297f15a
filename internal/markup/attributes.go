// Package markup edits attributes on the root tag of rendered HTML fragments.
package markup

import (
	"strings"

	"golang.org/x/net/html"
)

// InsertionIndex returns where a new attribute can be spliced into the first
// tag of fragment: the first ">" or "/>", whichever comes first. It returns
// -1 when the fragment has no tag to attach to.
func InsertionIndex(fragment string) int {
	end := strings.Index(fragment, ">")
	if end < 0 {
		return -1
	}
	if selfClosing := strings.Index(fragment, "/>"); selfClosing >= 0 && selfClosing < end {
		return selfClosing
	}
	return end
}

// ReplaceAttribute sets name to value on the root tag, replacing an existing
// value or inserting the attribute.
func ReplaceAttribute(fragment, name, value string) string {
	limit := InsertionIndex(fragment)
	if limit < 0 {
		return fragment
	}

	escaped := html.EscapeString(value)
	if start, end, ok := findAttributeValue(fragment[:limit], name); ok {
		return fragment[:start] + escaped + fragment[end:]
	}
	return insertAttribute(fragment, limit, name, escaped)
}

// PrependAttribute puts value in front of the existing value of name on the
// root tag, separated by delimiter, or inserts the attribute.
func PrependAttribute(fragment, name, value, delimiter string) string {
	limit := InsertionIndex(fragment)
	if limit < 0 {
		return fragment
	}

	escaped := html.EscapeString(value)
	if start, _, ok := findAttributeValue(fragment[:limit], name); ok {
		return fragment[:start] + escaped + delimiter + fragment[start:]
	}
	return insertAttribute(fragment, limit, name, escaped)
}

func insertAttribute(fragment string, index int, name, escaped string) string {
	return fragment[:index] + " " + name + `="` + escaped + `"` + fragment[index:]
}

// findAttributeValue locates the double quoted value of name within tag.
// The attribute name must be preceded by whitespace so that "id" does not
// match "data-id" or "aria-labelledby" does not match "labelledby".
func findAttributeValue(tag, name string) (start, end int, ok bool) {
	needle := name + `="`
	for from := 0; from < len(tag); {
		index := strings.Index(tag[from:], needle)
		if index < 0 {
			return 0, 0, false
		}
		index += from

		if index > 0 && isSpace(tag[index-1]) {
			start = index + len(needle)
			closing := strings.IndexByte(tag[start:], '"')
			if closing < 0 {
				return 0, 0, false
			}
			return start, start + closing, true
		}
		from = index + len(needle)
	}
	return 0, 0, false
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\n', '\r', '\t', '\f':
		return true
	}
	return false
}
