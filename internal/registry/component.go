// Package registry describes the component kinds htmplate knows about: their
// attribute schemas, the binder that turns raw attributes into typed
// components, and the ordered registry used for dispatch and listing.
package registry

import (
	"fmt"
	"strings"

	"github.com/conneroisu/htmplate/internal/types"
)

// Component is a typed component whose attributes are described by fields.
// Fields must return descriptors that bind into the receiver.
type Component interface {
	Fields() []Field
}

// Renderer turns a bound component into an HTML fragment.
type Renderer interface {
	Render() (string, error)
}

// AssetRenderer is implemented by components that link to the shared asset
// directory. assetPath is relative from the output document to the assets.
type AssetRenderer interface {
	RenderWithAssets(assetPath string) (string, error)
}

// Definition registers one component kind.
type Definition struct {
	Tag         string
	Description string
	// New returns a zero component ready to be bound
	New func() Component
}

// Spec returns the schema of the definition.
func (d Definition) Spec() types.ComponentSpec {
	return types.ComponentSpec{
		Tag:         d.Tag,
		Description: d.Description,
		Attributes:  Attributes(d.New()),
	}
}

// Registry is an ordered, immutable set of component definitions.
type Registry struct {
	definitions []Definition
	byTag       map[string]int
}

// New creates a registry. Tags must be unique and use the component namespace.
func New(definitions ...Definition) (*Registry, error) {
	r := &Registry{
		definitions: make([]Definition, 0, len(definitions)),
		byTag:       make(map[string]int, len(definitions)),
	}

	for _, definition := range definitions {
		if !strings.HasPrefix(definition.Tag, types.Namespace) {
			return nil, fmt.Errorf("component tag %q must start with %q", definition.Tag, types.Namespace)
		}
		if definition.Tag != strings.ToLower(definition.Tag) {
			return nil, fmt.Errorf("component tag %q must be lower case", definition.Tag)
		}
		if _, exists := r.byTag[definition.Tag]; exists {
			return nil, fmt.Errorf("component tag %q registered twice", definition.Tag)
		}
		if definition.New == nil {
			return nil, fmt.Errorf("component tag %q has no constructor", definition.Tag)
		}

		r.byTag[definition.Tag] = len(r.definitions)
		r.definitions = append(r.definitions, definition)
	}

	return r, nil
}

// MustNew is like New but panics on an invalid definition set. It is meant
// for the static registry built at process start.
func MustNew(definitions ...Definition) *Registry {
	r, err := New(definitions...)
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup retrieves a definition by tag.
func (r *Registry) Lookup(tag string) (Definition, bool) {
	index, ok := r.byTag[tag]
	if !ok {
		return Definition{}, false
	}
	return r.definitions[index], true
}

// Definitions returns all definitions in registration order.
func (r *Registry) Definitions() []Definition {
	result := make([]Definition, len(r.definitions))
	copy(result, r.definitions)
	return result
}

// Tags returns all tags in registration order.
func (r *Registry) Tags() []string {
	tags := make([]string, len(r.definitions))
	for i, definition := range r.definitions {
		tags[i] = definition.Tag
	}
	return tags
}

// Specs returns every component schema in registration order.
func (r *Registry) Specs() []types.ComponentSpec {
	specs := make([]types.ComponentSpec, len(r.definitions))
	for i, definition := range r.definitions {
		specs[i] = definition.Spec()
	}
	return specs
}

// Search returns the schemas whose tag contains search, ignoring case.
func (r *Registry) Search(search string) []types.ComponentSpec {
	search = strings.ToLower(search)

	var specs []types.ComponentSpec
	for _, definition := range r.definitions {
		if strings.Contains(definition.Tag, search) {
			specs = append(specs, definition.Spec())
		}
	}
	return specs
}

// Count returns the number of registered components.
func (r *Registry) Count() int {
	return len(r.definitions)
}
