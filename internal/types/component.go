// Package types provides common type definitions used throughout htmplate.
// This package contains shared types to avoid circular dependencies between
// the registry, the error taxonomy and the rewriter.
package types

import (
	"fmt"
	"strings"
)

// Namespace is the tag prefix reserved for components.
const Namespace = "htmplate:"

// AttributeSpec describes one attribute a component accepts.
type AttributeSpec struct {
	// Name is the attribute name as written in HTML (e.g., "text", "new-tab")
	Name string `json:"name" yaml:"name"`
	// Description should flow on from "this should be ..."
	Description string `json:"description" yaml:"description"`
	// Required attributes produce a binding error when absent
	Required bool `json:"required" yaml:"required"`
}

// ComponentSpec is the schema of a component kind.
type ComponentSpec struct {
	// Tag is the dispatch key, always prefixed with Namespace
	Tag string `json:"tag" yaml:"tag"`
	// Description is a short human readable summary
	Description string `json:"description" yaml:"description"`
	// Attributes are listed in declaration order
	Attributes []AttributeSpec `json:"attributes" yaml:"attributes"`
}

// HasNamespace reports whether a tag name uses the component namespace.
func HasNamespace(tag string) bool {
	return strings.HasPrefix(strings.ToLower(tag), Namespace)
}

// RawElement is a matched tag as seen in the source document.
type RawElement struct {
	Tag        string
	Attributes map[string]string
	// Offset is the byte offset of the start tag in the source
	Offset int
}

// Attribute returns the raw value of an attribute and whether it was present.
func (e RawElement) Attribute(name string) (string, bool) {
	value, ok := e.Attributes[name]
	return value, ok
}

// Location points at a position in a source document. It starts out as a
// raw byte offset and is resolved to a line and column only when an error
// has to be displayed.
type Location struct {
	Offset   int
	Path     string
	Line     int
	Column   int
	resolved bool
}

// OffsetLocation creates an unresolved location.
func OffsetLocation(offset int) Location {
	return Location{Offset: offset}
}

// FilePosition creates a resolved location.
func FilePosition(offset int, path string, line, column int) Location {
	return Location{
		Offset:   offset,
		Path:     path,
		Line:     line,
		Column:   column,
		resolved: true,
	}
}

// Resolved reports whether the location carries a line and column.
func (l Location) Resolved() bool {
	return l.resolved
}

// String renders path:line:column, or the byte offset when unresolved.
func (l Location) String() string {
	if !l.resolved {
		return fmt.Sprintf("byte %d", l.Offset)
	}
	path := l.Path
	if path == "" {
		path = "<input>"
	}
	return fmt.Sprintf("%s:%d:%d", path, l.Line, l.Column)
}
