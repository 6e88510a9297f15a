package rewriter

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/htmplate/internal/components"
	htmperrors "github.com/conneroisu/htmplate/internal/errors"
	"github.com/conneroisu/htmplate/internal/registry"
	"github.com/conneroisu/htmplate/internal/types"
)

type heading struct {
	Text string
}

func (h *heading) Fields() []registry.Field {
	return []registry.Field{registry.String("text", "the heading", &h.Text)}
}

func (h *heading) Render() (string, error) {
	return "<hgroup><h1>" + h.Text + "</h1></hgroup>", nil
}

func headingRewriter() *Rewriter {
	return New(registry.MustNew(registry.Definition{
		Tag:         "htmplate:title",
		Description: "a heading",
		New:         func() registry.Component { return &heading{} },
	}))
}

func TestReplaceEndToEnd(t *testing.T) {
	out, err := headingRewriter().Replace([]byte(`<htmplate:title text="Hi"/>`), "index.template.html", Options{})
	require.NoError(t, err)

	assert.Contains(t, out, "<h1>Hi</h1>")
	assert.NotContains(t, out, "htmplate:title")
	assert.True(t, strings.HasPrefix(out, markerPrefix))
}

func TestReplaceIsIdempotent(t *testing.T) {
	rw := New(components.Default())
	src := "<!DOCTYPE html>\n<html>\n  <head>\n    <htmplate:metadata/>\n  </head>\n  <body>\n" +
		"    <htmplate:title text=\"Hi\" icon=\"home\"/>\n    <htmplate:hr text=\"or\"></htmplate:hr>\n  </body>\n</html>\n"

	first, err := rw.Replace([]byte(src), "index.template.html", Options{AssetPath: "assets"})
	require.NoError(t, err)

	second, err := rw.Replace([]byte(first), "index.html", Options{AssetPath: "assets"})
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.NotContains(t, first, "</htmplate:hr>")
	assert.Equal(t, 1, strings.Count(second, markerPrefix))
}

func TestReplaceMergesCallerAttributes(t *testing.T) {
	rw := New(components.Default())
	out, err := rw.Replace([]byte(`<htmplate:hr text="or" class="wide" id="sep" style="margin: 0"/>`), "", Options{})
	require.NoError(t, err)
	assert.Contains(t, out, `<div class="wide hr" role="separator" id="sep" style="margin: 0">`)
}

func TestReplaceNormalizesWhitespace(t *testing.T) {
	out, err := headingRewriter().Replace([]byte("<main>\n    <p>a</p>\r\n\t<p>b</p>\n</main>"), "", Options{})
	require.NoError(t, err)

	body := StripMarker(out)
	assert.Equal(t, "<main>\n<p>a</p>\n<p>b</p>\n</main>", body)
}

func TestReplaceUnknownComponent(t *testing.T) {
	testCases := []struct {
		name    string
		src     string
		unknown bool
	}{
		{"unregistered namespaced tag", "<p>\n  <htmplate:nope/>", true},
		{"upper case namespace", "<p>\n  <HTMPLATE:Nope a=\"1\">", true},
		{"other namespace", `<custom:title text="x"/>`, false},
		{"namespaced attribute", `<div htmplate:title="x"></div>`, false},
		{"plain element", `<title>htmplate:title</title>`, false},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := headingRewriter().Replace([]byte(tt.src), "page.template.html", Options{})
			if !tt.unknown {
				assert.NoError(t, err)
				return
			}

			var unknownErr *htmperrors.UnknownComponentError
			require.True(t, errors.As(err, &unknownErr))
			assert.Equal(t, "htmplate:nope", unknownErr.Tag)
			assert.Equal(t, "page.template.html:2:3", unknownErr.Location.String())
		})
	}
}

func TestReplaceBindingErrorIsLocated(t *testing.T) {
	src := "<body>\n<htmplate:title/>\n</body>"
	_, err := headingRewriter().Replace([]byte(src), "a.template.html", Options{})

	var bindingErr *htmperrors.BindingError
	require.True(t, errors.As(err, &bindingErr))
	assert.Equal(t, []string{"text"}, bindingErr.MissingNames())
	assert.True(t, bindingErr.Location.Resolved())
	assert.Equal(t, 2, bindingErr.Location.Line)
	assert.Equal(t, 1, bindingErr.Location.Column)
}

func TestReplaceLocatesPastStrippedMarker(t *testing.T) {
	src := Marker("1.0.0") + "<htmplate:nope/>"
	_, err := headingRewriter().Replace([]byte(src), "a.html", Options{})

	var unknownErr *htmperrors.UnknownComponentError
	require.True(t, errors.As(err, &unknownErr))
	assert.Equal(t, 2, unknownErr.Location.Line)
	assert.Equal(t, 1, unknownErr.Location.Column)
}

func TestReplaceRenderErrorNamesComponent(t *testing.T) {
	rw := New(components.Default())
	_, err := rw.Replace([]byte(`<p><htmplate:icon-button href="/"/></p>`), "b.html", Options{})

	var renderErr *htmperrors.RenderError
	require.True(t, errors.As(err, &renderErr))
	assert.Equal(t, "htmplate:icon-button", renderErr.Tag)
	assert.Equal(t, types.FilePosition(3, "b.html", 1, 4), renderErr.Location)
	assert.True(t, htmperrors.IsDocumentError(err))
}

func TestReplaceStopsAtFirstError(t *testing.T) {
	_, err := headingRewriter().Replace([]byte(`<htmplate:title/><htmplate:nope/>`), "", Options{})

	var bindingErr *htmperrors.BindingError
	assert.True(t, errors.As(err, &bindingErr))
}
