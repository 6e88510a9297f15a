// Package rewriter expands component tags in HTML documents.
//
// The engine streams a document through the golang.org/x/net/html tokenizer
// and copies every token it does not touch byte for byte. The orchestrator
// builds one handler per registered component on top of it.
package rewriter

import (
	"bytes"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/conneroisu/htmplate/internal/errors"
	"github.com/conneroisu/htmplate/internal/types"
)

// Handler is called for every start or self-closing tag Match accepts.
// Returning an error stops the rewrite.
type Handler struct {
	Match  func(tag string) bool
	Handle func(el *Element) error
}

// Tag creates a handler for one lower-case tag name.
func Tag(name string, handle func(el *Element) error) Handler {
	return Handler{
		Match:  func(tag string) bool { return tag == name },
		Handle: handle,
	}
}

// Element is a mutable view of a matched start tag.
type Element struct {
	tag         string
	attributes  map[string]string
	offset      int
	selfClosing bool

	before  strings.Builder
	removed bool
}

// TagName returns the lower-cased tag name.
func (e *Element) TagName() string {
	return e.tag
}

// Attribute returns the unescaped value of an attribute. Names are lower case.
func (e *Element) Attribute(name string) (string, bool) {
	value, ok := e.attributes[name]
	return value, ok
}

// Offset returns the byte offset of the start tag in the document.
func (e *Element) Offset() int {
	return e.offset
}

// SelfClosing reports whether the tag was written as <tag/>.
func (e *Element) SelfClosing() bool {
	return e.selfClosing
}

// RemoveStartTag drops the tag from the output. The matching end tag, if
// any, is dropped as well.
func (e *Element) RemoveStartTag() {
	e.removed = true
}

// Before inserts raw HTML immediately before the tag.
func (e *Element) Before(html string) {
	e.before.WriteString(html)
}

// RawElement returns the tag name, attributes and offset of the element.
func (e *Element) RawElement() types.RawElement {
	attributes := make(map[string]string, len(e.attributes))
	for name, value := range e.attributes {
		attributes[name] = value
	}
	return types.RawElement{Tag: e.tag, Attributes: attributes, Offset: e.offset}
}

// Rewrite runs handlers over src in a single pass. The first handler error
// is returned unchanged; tokenizer failures are returned as
// *errors.EngineError.
func Rewrite(src string, handlers []Handler) (string, error) {
	z := html.NewTokenizer(strings.NewReader(src))

	var out strings.Builder
	out.Grow(len(src))

	offset := 0
	// end tags still to drop, by tag name
	pending := make(map[string]int)

	for {
		tokenType := z.Next()

		// TagName and TagAttr lower-case the buffer in place, so keep a copy
		// of the raw bytes first.
		raw := bytes.Clone(z.Raw())
		start := offset
		offset += len(raw)

		switch tokenType {
		case html.ErrorToken:
			out.Write(raw)
			if err := z.Err(); err != io.EOF {
				return "", &errors.EngineError{Cause: err}
			}
			return out.String(), nil

		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttributes := z.TagName()
			tag := string(name)

			matched := matching(handlers, tag)
			if len(matched) == 0 {
				out.Write(raw)
				continue
			}

			el := &Element{
				tag:         tag,
				attributes:  readAttributes(z, hasAttributes),
				offset:      start,
				selfClosing: tokenType == html.SelfClosingTagToken,
			}
			for _, handler := range matched {
				if err := handler.Handle(el); err != nil {
					return "", err
				}
			}

			out.WriteString(el.before.String())
			if !el.removed {
				out.Write(raw)
			} else if !el.selfClosing {
				pending[tag]++
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			if tag := string(name); pending[tag] > 0 {
				pending[tag]--
				continue
			}
			out.Write(raw)

		default:
			out.Write(raw)
		}
	}
}

func matching(handlers []Handler, tag string) []Handler {
	var matched []Handler
	for _, handler := range handlers {
		if handler.Match(tag) {
			matched = append(matched, handler)
		}
	}
	return matched
}

// readAttributes collects the attributes of the current tag. The first
// occurrence of a repeated attribute wins, as in browsers.
func readAttributes(z *html.Tokenizer, more bool) map[string]string {
	attributes := make(map[string]string)
	for more {
		var key, value []byte
		key, value, more = z.TagAttr()
		name := string(key)
		if _, seen := attributes[name]; !seen {
			attributes[name] = string(value)
		}
	}
	return attributes
}
