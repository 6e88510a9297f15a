package components

import (
	"strings"

	"github.com/conneroisu/htmplate/internal/registry"
)

const (
	formDescription = "the path the form submits to, starting with /"
	idDescription   = "the name of the field, starting with /"
)

// FormAlert is the region a form reports submission errors in.
type FormAlert struct {
	Form FormID
}

func (c *FormAlert) Fields() []registry.Field {
	return []registry.Field{
		registry.Value("form", formDescription, &c.Form, DecodeFormID),
	}
}

func (c *FormAlert) Render() (string, error) {
	return `<div class="alert error collapse" role="alert" aria-live="polite"` + attr("id", c.Form.Element("/alert")) + `>` +
		AlertError.Icon().SVG() + `<p></p></div>`, nil
}

// FormSubmit submits a form.
type FormSubmit struct {
	Form FormID
}

func (c *FormSubmit) Fields() []registry.Field {
	return []registry.Field{
		registry.Value("form", formDescription, &c.Form, DecodeFormID),
	}
}

func (c *FormSubmit) Render() (string, error) {
	return `<button type="submit" class="submit"` + attr("id", c.Form.Element("/submit")) + `><span>Submit</span></button>`, nil
}

// FormTextInput is a labelled text input.
type FormTextInput struct {
	ID         FormID
	Form       FormID
	Label      string
	Required   registry.Optional[bool]
	Credential registry.Optional[bool]
}

func (c *FormTextInput) Fields() []registry.Field {
	return []registry.Field{
		registry.Value("id", idDescription, &c.ID, DecodeFormID),
		registry.Value("form", formDescription, &c.Form, DecodeFormID),
		registry.String("label", "the label shown above the input", &c.Label),
		registry.OptionalBool("required", `"true" if the input must be filled in`, &c.Required),
		registry.OptionalBool("credential", `"true" for usernames and passwords`, &c.Credential),
	}
}

func (c *FormTextInput) Render() (string, error) {
	var extra strings.Builder
	if c.Credential.Or(false) {
		extra.WriteString(` minlength="4" maxlength="64" autocapitalize="off" autocomplete="off"`)
	}
	return formInput(c.Form, c.ID, c.Label, "text", c.Required.Or(false), extra.String()), nil
}

// FormCheckInput is a labelled checkbox.
type FormCheckInput struct {
	ID       FormID
	Form     FormID
	Label    string
	Required registry.Optional[bool]
}

func (c *FormCheckInput) Fields() []registry.Field {
	return []registry.Field{
		registry.Value("id", idDescription, &c.ID, DecodeFormID),
		registry.Value("form", formDescription, &c.Form, DecodeFormID),
		registry.String("label", "the label shown next to the checkbox", &c.Label),
		registry.OptionalBool("required", `"true" if the box must be checked`, &c.Required),
	}
}

func (c *FormCheckInput) Render() (string, error) {
	return formInput(c.Form, c.ID, c.Label, "checkbox", c.Required.Or(false), ""), nil
}

func formInput(form, id FormID, label, inputType string, required bool, extra string) string {
	field := form.Element(string(id))
	labelID := field + "/label"
	inputID := field + "/input"
	errorID := field + "/error"

	var b strings.Builder
	b.WriteString(`<div` + attr("class", "input "+inputType) + `>`)
	b.WriteString(`<label` + attr("id", labelID) + attr("for", inputID) + `>` + escape(label))
	if required {
		b.WriteString(`<span class="required" aria-hidden="true">*</span>`)
	}
	b.WriteString(`</label>`)

	b.WriteString(`<input` + attr("id", inputID) + attr("name", strings.TrimPrefix(string(id), "/")) + attr("type", inputType))
	b.WriteString(attr("aria-labelledby", labelID) + attr("aria-describedby", errorID))
	if required {
		b.WriteString(` required`)
	}
	b.WriteString(extra + `>`)

	b.WriteString(`<small class="error" aria-live="polite"` + attr("id", errorID) + `></small>`)
	b.WriteString(`</div>`)
	return b.String()
}
