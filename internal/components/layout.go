package components

import (
	"path"
	"strings"

	"github.com/conneroisu/htmplate/internal/markup"
	"github.com/conneroisu/htmplate/internal/registry"
)

// SourceURL is linked from the footer.
const SourceURL = "https://github.com/conneroisu/htmplate"

// Title is a page heading.
type Title struct {
	Text registry.Optional[string]
	Icon registry.Optional[Icon]
}

func (c *Title) Fields() []registry.Field {
	return []registry.Field{
		registry.OptionalString("text", "the heading text", &c.Text),
		registry.OptionalValue("icon", iconDescription(), &c.Icon, DecodeIcon),
	}
}

func (c *Title) Render() (string, error) {
	var b strings.Builder
	b.WriteString(`<hgroup class="title">`)
	if icon, ok := c.Icon.Get(); ok {
		b.WriteString(markup.PrependAttribute(icon.SVG(), "class", "mauve", " "))
	}
	b.WriteString("<h1>")
	b.WriteString(escape(c.Text.Or("")))
	b.WriteString("</h1></hgroup>")
	return b.String(), nil
}

// Metadata links the shared assets from a document head.
type Metadata struct{}

func (c *Metadata) Fields() []registry.Field {
	return nil
}

func (c *Metadata) RenderWithAssets(assetPath string) (string, error) {
	asset := func(name string) string {
		return path.Join(assetPath, name)
	}

	var b strings.Builder
	b.WriteString(`<meta charset="utf-8">`)
	b.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
	b.WriteString(`<link rel="icon" type="image/svg+xml"` + attr("href", asset("favicon.svg")) + `>`)
	b.WriteString(`<link rel="stylesheet"` + attr("href", asset("lib.min.css")) + `>`)
	b.WriteString(`<script type="module"` + attr("src", asset("lib.js")) + `></script>`)
	return b.String(), nil
}

// Footer is the shared page footer.
type Footer struct{}

func (c *Footer) Fields() []registry.Field {
	return nil
}

func (c *Footer) Render() (string, error) {
	return `<footer class="footer"><a class="icon-link" target="_blank" rel="noopener noreferrer" aria-label="Source code"` +
		attr("href", SourceURL) + `>` + IconLogoGithub.SVG() + `</a></footer>`, nil
}
