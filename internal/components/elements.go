package components

import (
	"strings"

	"github.com/a-h/templ"

	"github.com/conneroisu/htmplate/internal/errors"
	"github.com/conneroisu/htmplate/internal/registry"
)

// Alert is an admonition.
type Alert struct {
	Status AlertStyle
	Text   registry.Optional[string]
	Hidden registry.Optional[bool]
}

func (c *Alert) Fields() []registry.Field {
	return []registry.Field{
		registry.Value("status", "one of error, warning, success, info or basic", &c.Status, DecodeAlertStyle),
		registry.OptionalString("text", "the message", &c.Text),
		registry.OptionalBool("hidden", `"true" to collapse the alert until shown by script`, &c.Hidden),
	}
}

func (c *Alert) Render() (string, error) {
	classes := []string{"alert", string(c.Status)}
	if c.Hidden.Or(false) {
		classes = append(classes, "collapse")
	}

	return `<div role="alert"` + attr("class", strings.Join(classes, " ")) + `>` +
		c.Status.Icon().SVG() +
		`<p>` + escape(c.Text.Or("")) + `</p></div>`, nil
}

// HR is a divider with text in the middle.
type HR struct {
	Text string
}

func (c *HR) Fields() []registry.Field {
	return []registry.Field{
		registry.String("text", "the text shown in the divider", &c.Text),
	}
}

func (c *HR) Render() (string, error) {
	return `<div class="hr" role="separator"><hr><span>` + escape(c.Text) + `</span><hr></div>`, nil
}

// IconElement is a bare icon.
type IconElement struct {
	Icon Icon
}

func (c *IconElement) Fields() []registry.Field {
	return []registry.Field{
		registry.Value("icon", iconDescription(), &c.Icon, DecodeIcon),
	}
}

func (c *IconElement) Render() (string, error) {
	return c.Icon.SVG(), nil
}

// IconButton is a button, or a link when Href is set.
type IconButton struct {
	ID     registry.Optional[string]
	Text   registry.Optional[string]
	Icon   registry.Optional[Icon]
	Href   registry.Optional[string]
	NewTab registry.Optional[bool]
	Ghost  registry.Optional[bool]
}

func (c *IconButton) Fields() []registry.Field {
	return []registry.Field{
		registry.OptionalString("id", "the id of the button", &c.ID),
		registry.OptionalString("text", "the button label", &c.Text),
		registry.OptionalValue("icon", iconDescription(), &c.Icon, DecodeIcon),
		registry.OptionalString("href", "a url, turning the button into a link", &c.Href),
		registry.OptionalBool("new-tab", `"true" to open the link in a new tab`, &c.NewTab),
		registry.OptionalBool("ghost", `"true" for a borderless button`, &c.Ghost),
	}
}

func (c *IconButton) Render() (string, error) {
	text, hasText := c.Text.Get()
	icon, hasIcon := c.Icon.Get()
	href, hasHref := c.Href.Get()
	newTab := c.NewTab.Or(false)

	if !hasText && !hasIcon {
		return "", errors.NewRenderError("text", "an icon button needs text, an icon, or both")
	}
	if newTab && !hasHref {
		return "", errors.NewRenderError("new-tab", "only links can open in a new tab, add an href")
	}

	classes := []string{"icon-button"}
	if !hasText {
		classes = append(classes, "circle")
	}
	if c.Ghost.Or(false) {
		classes = append(classes, "ghost")
	}

	var attributes strings.Builder
	if id, ok := c.ID.Get(); ok {
		attributes.WriteString(attr("id", id))
	}
	attributes.WriteString(attr("class", strings.Join(classes, " ")))
	if !hasText {
		// icon only buttons still need an accessible name
		attributes.WriteString(attr("aria-label", string(icon)))
	}

	var content strings.Builder
	if hasIcon {
		content.WriteString(icon.SVG())
	}
	if hasText {
		content.WriteString("<span>" + escape(text) + "</span>")
	}

	if !hasHref {
		return `<button type="button"` + attributes.String() + `>` + content.String() + `</button>`, nil
	}

	attributes.WriteString(attr("href", string(templ.URL(href))))
	if newTab {
		attributes.WriteString(` target="_blank" rel="noopener noreferrer"`)
	}
	return `<a` + attributes.String() + `>` + content.String() + `</a>`, nil
}
