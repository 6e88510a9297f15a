package rewriter

import (
	"fmt"

	"github.com/conneroisu/htmplate/internal/errors"
	"github.com/conneroisu/htmplate/internal/registry"
	"github.com/conneroisu/htmplate/internal/types"
	"github.com/conneroisu/htmplate/internal/version"
)

// Options configure a single document rewrite.
type Options struct {
	// AssetPath is the path from the output document to the asset directory
	AssetPath string
}

// Rewriter expands the components of a registry.
type Rewriter struct {
	registry *registry.Registry
	version  string
}

// New creates a rewriter for the components of r.
func New(r *registry.Registry) *Rewriter {
	return &Rewriter{
		registry: r,
		version:  version.GetVersion(),
	}
}

// Replace expands every component tag in src and returns the normalized
// document with the version marker in front.
//
// The first binding, render or unknown component error aborts the rewrite;
// its location is resolved against src and path before it is returned.
func (rw *Rewriter) Replace(src []byte, path string, opts Options) (string, error) {
	document := StripMarker(string(src))
	// offsets in document are shifted by the stripped marker
	shift := len(src) - len(document)

	definitions := rw.registry.Definitions()
	handlers := make([]Handler, 0, len(definitions)+1)
	for _, definition := range definitions {
		handlers = append(handlers, Tag(definition.Tag, rw.expand(definition, shift, opts)))
	}
	handlers = append(handlers, rw.unknown(shift))

	rewritten, err := Rewrite(document, handlers)
	if err != nil {
		errors.ResolveIn(err, src, path)
		return "", err
	}

	return Marker(rw.version) + Normalize(rewritten), nil
}

// expand binds, renders and splices one component.
func (rw *Rewriter) expand(definition registry.Definition, shift int, opts Options) func(el *Element) error {
	return func(el *Element) error {
		raw := el.RawElement()
		raw.Offset += shift

		component := definition.New()
		if err := registry.Bind(component, raw); err != nil {
			return err
		}

		fragment, err := render(component, opts)
		if err != nil {
			renderErr, ok := errors.AsRenderError(err)
			if !ok {
				renderErr = &errors.RenderError{Message: err.Error()}
			}
			renderErr.Tag = definition.Tag
			renderErr.Location = types.OffsetLocation(raw.Offset)
			return renderErr
		}

		el.RemoveStartTag()
		el.Before(InjectAttributes(fragment, raw))
		return nil
	}
}

// unknown flags namespaced tags that no definition claimed.
func (rw *Rewriter) unknown(shift int) Handler {
	return Handler{
		Match: func(tag string) bool {
			if !types.HasNamespace(tag) {
				return false
			}
			_, known := rw.registry.Lookup(tag)
			return !known
		},
		Handle: func(el *Element) error {
			return &errors.UnknownComponentError{
				Tag:      el.TagName(),
				Location: types.OffsetLocation(el.Offset() + shift),
			}
		},
	}
}

func render(component registry.Component, opts Options) (string, error) {
	switch c := component.(type) {
	case registry.AssetRenderer:
		return c.RenderWithAssets(opts.AssetPath)
	case registry.Renderer:
		return c.Render()
	default:
		return "", fmt.Errorf("%T cannot be rendered", component)
	}
}
