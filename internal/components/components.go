// Package components implements the htmplate component vocabulary. Each
// component is a plain struct whose fields are bound from the attributes of
// a matched tag and that renders itself to an HTML fragment.
package components

import (
	"fmt"
	"strings"

	"github.com/a-h/templ"
	"golang.org/x/text/cases"

	"github.com/conneroisu/htmplate/internal/registry"
)

// Default returns the registry of every built-in component.
func Default() *registry.Registry {
	return registry.MustNew(
		registry.Definition{
			Tag:         "htmplate:title",
			Description: "a page heading with an optional icon",
			New:         func() registry.Component { return &Title{} },
		},
		registry.Definition{
			Tag:         "htmplate:metadata",
			Description: "head metadata linking the shared favicon, stylesheet and script",
			New:         func() registry.Component { return &Metadata{} },
		},
		registry.Definition{
			Tag:         "htmplate:footer",
			Description: "the shared page footer",
			New:         func() registry.Component { return &Footer{} },
		},
		registry.Definition{
			Tag:         "htmplate:alert",
			Description: "an admonition with a status icon",
			New:         func() registry.Component { return &Alert{} },
		},
		registry.Definition{
			Tag:         "htmplate:hr",
			Description: "a divider with centred text",
			New:         func() registry.Component { return &HR{} },
		},
		registry.Definition{
			Tag:         "htmplate:icon",
			Description: "a bare svg icon",
			New:         func() registry.Component { return &IconElement{} },
		},
		registry.Definition{
			Tag:         "htmplate:icon-button",
			Description: "a button, or a link when given an href, with text and/or an icon",
			New:         func() registry.Component { return &IconButton{} },
		},
		registry.Definition{
			Tag:         "htmplate:form-alert",
			Description: "the error region of a form",
			New:         func() registry.Component { return &FormAlert{} },
		},
		registry.Definition{
			Tag:         "htmplate:form-submit",
			Description: "the submit button of a form",
			New:         func() registry.Component { return &FormSubmit{} },
		},
		registry.Definition{
			Tag:         "htmplate:form-text-input",
			Description: "a labelled text input with an error message",
			New:         func() registry.Component { return &FormTextInput{} },
		},
		registry.Definition{
			Tag:         "htmplate:form-check-input",
			Description: "a labelled checkbox with an error message",
			New:         func() registry.Component { return &FormCheckInput{} },
		},
	)
}

// AlertStyle is the status of an alert.
type AlertStyle string

// Alert styles.
const (
	AlertError   AlertStyle = "error"
	AlertWarning AlertStyle = "warning"
	AlertSuccess AlertStyle = "success"
	AlertInfo    AlertStyle = "info"
	AlertBasic   AlertStyle = "basic"
)

var alertIcons = map[AlertStyle]Icon{
	AlertError:   IconAlertCircle,
	AlertWarning: IconWarning,
	AlertSuccess: IconCheckmarkCircle,
	AlertInfo:    IconHelpCircle,
	AlertBasic:   IconInformationCircle,
}

// DecodeAlertStyle matches an alert status keyword, ignoring case.
func DecodeAlertStyle(raw string) (AlertStyle, error) {
	style := AlertStyle(cases.Fold().String(strings.TrimSpace(raw)))
	if _, ok := alertIcons[style]; !ok {
		return "", fmt.Errorf("unknown alert status %q", raw)
	}
	return style, nil
}

// Icon returns the icon shown for the style.
func (s AlertStyle) Icon() Icon {
	return alertIcons[s]
}

// FormID identifies a form by the path it submits to.
type FormID string

// DecodeFormID accepts ids starting with "/".
func DecodeFormID(raw string) (FormID, error) {
	if !strings.HasPrefix(raw, "/") {
		return "", fmt.Errorf("form id %q must start with /", raw)
	}
	return FormID(raw), nil
}

// Element derives the id of a named part of the form, e.g. "/login" and
// "/alert" give "/login/alert".
func (f FormID) Element(suffix string) string {
	return strings.TrimSuffix(string(f), "/") + suffix
}

// escape HTML-escapes user text.
func escape(text string) string {
	return templ.EscapeString(text)
}

// attr renders ` name="value"` with the value escaped.
func attr(name, value string) string {
	return " " + name + `="` + escape(value) + `"`
}
