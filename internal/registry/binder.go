package registry

import (
	"github.com/conneroisu/htmplate/internal/errors"
	"github.com/conneroisu/htmplate/internal/types"
)

// Bind parses the raw attributes of el into c.
//
// Every declared field is checked before anything is reported, so the
// returned *errors.BindingError lists all missing and invalid attributes at
// once. c is only modified when binding succeeds.
func Bind(c Component, el types.RawElement) error {
	fields := c.Fields()

	var missing, invalid []types.AttributeSpec
	commits := make([]func(), 0, len(fields))

	for _, field := range fields {
		raw, ok := el.Attribute(field.Spec.Name)
		if !ok {
			if field.Spec.Required {
				missing = append(missing, field.Spec)
			}
			continue
		}

		commit, err := field.decode(raw)
		if err != nil {
			invalid = append(invalid, field.Spec)
			continue
		}
		commits = append(commits, commit)
	}

	if len(missing) > 0 || len(invalid) > 0 {
		return &errors.BindingError{
			Tag:      el.Tag,
			Missing:  missing,
			Invalid:  invalid,
			Location: types.OffsetLocation(el.Offset),
		}
	}

	for _, commit := range commits {
		commit()
	}
	return nil
}

// Attributes returns the schema of a component's fields.
func Attributes(c Component) []types.AttributeSpec {
	fields := c.Fields()
	specs := make([]types.AttributeSpec, len(fields))
	for i, field := range fields {
		specs[i] = field.Spec
	}
	return specs
}
