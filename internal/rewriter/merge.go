package rewriter

import (
	"github.com/conneroisu/htmplate/internal/markup"
	"github.com/conneroisu/htmplate/internal/types"
)

// replacedAttributes take the caller's value over the fragment's.
var replacedAttributes = []string{"id", "aria-label"}

// prependedAttributes put the caller's value in front of the fragment's,
// joined by the delimiter.
var prependedAttributes = []struct {
	name      string
	delimiter string
}{
	{"style", ";"},
	{"class", " "},
}

// InjectAttributes copies the presentational attributes of the component
// tag onto the root tag of its rendered fragment.
func InjectAttributes(fragment string, el types.RawElement) string {
	for _, name := range replacedAttributes {
		if value, ok := el.Attribute(name); ok {
			fragment = markup.ReplaceAttribute(fragment, name, value)
		}
	}
	for _, attribute := range prependedAttributes {
		if value, ok := el.Attribute(attribute.name); ok {
			fragment = markup.PrependAttribute(fragment, attribute.name, value, attribute.delimiter)
		}
	}
	return fragment
}
