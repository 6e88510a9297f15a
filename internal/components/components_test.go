package components

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	htmperrors "github.com/conneroisu/htmplate/internal/errors"
	"github.com/conneroisu/htmplate/internal/registry"
	"github.com/conneroisu/htmplate/internal/types"
)

func render(t *testing.T, tag string, attributes map[string]string) (string, error) {
	t.Helper()

	definition, ok := Default().Lookup(tag)
	require.True(t, ok, "component %s should be registered", tag)

	component := definition.New()
	require.NoError(t, registry.Bind(component, types.RawElement{Tag: tag, Attributes: attributes}))

	switch c := component.(type) {
	case registry.AssetRenderer:
		return c.RenderWithAssets("assets")
	case registry.Renderer:
		return c.Render()
	}
	t.Fatalf("component %s cannot render", tag)
	return "", nil
}

func TestDefaultRegistry(t *testing.T) {
	r := Default()
	assert.Equal(t, 11, r.Count())

	for _, spec := range r.Specs() {
		assert.True(t, types.HasNamespace(spec.Tag), spec.Tag)
		assert.NotEmpty(t, spec.Description, spec.Tag)
		for _, attribute := range spec.Attributes {
			assert.NotEmpty(t, attribute.Description, "%s %s", spec.Tag, attribute.Name)
		}
	}
}

func TestTitle(t *testing.T) {
	html, err := render(t, "htmplate:title", map[string]string{"text": "Hi"})
	require.NoError(t, err)
	assert.Equal(t, `<hgroup class="title"><h1>Hi</h1></hgroup>`, html)

	html, err = render(t, "htmplate:title", map[string]string{"text": "<b>", "icon": "Home"})
	require.NoError(t, err)
	assert.Contains(t, html, `<svg xmlns="http://www.w3.org/2000/svg" class="mauve icon"`)
	assert.Contains(t, html, `<h1>&lt;b&gt;</h1>`)
}

func TestMetadataUsesAssetPath(t *testing.T) {
	html, err := render(t, "htmplate:metadata", nil)
	require.NoError(t, err)
	assert.Contains(t, html, `href="assets/favicon.svg"`)
	assert.Contains(t, html, `href="assets/lib.min.css"`)
	assert.Contains(t, html, `src="assets/lib.js"`)
}

func TestAlert(t *testing.T) {
	testCases := []struct {
		status string
		icon   Icon
	}{
		{"error", IconAlertCircle},
		{"WARNING", IconWarning},
		{"Success", IconCheckmarkCircle},
		{"info", IconHelpCircle},
		{"basic", IconInformationCircle},
	}

	for _, tt := range testCases {
		t.Run(tt.status, func(t *testing.T) {
			html, err := render(t, "htmplate:alert", map[string]string{"status": tt.status, "text": "careful"})
			require.NoError(t, err)
			assert.Contains(t, html, tt.icon.SVG())
			assert.Contains(t, html, "<p>careful</p>")
			assert.NotContains(t, html, "collapse")
		})
	}

	html, err := render(t, "htmplate:alert", map[string]string{"status": "info", "hidden": "true"})
	require.NoError(t, err)
	assert.Contains(t, html, `class="alert info collapse"`)
}

func TestAlertRejectsUnknownStatus(t *testing.T) {
	err := registry.Bind(&Alert{}, types.RawElement{Tag: "htmplate:alert", Attributes: map[string]string{"status": "loud"}})

	var bindingErr *htmperrors.BindingError
	require.True(t, errors.As(err, &bindingErr))
	assert.Equal(t, []string{"status"}, bindingErr.InvalidNames())
}

func TestIconButton(t *testing.T) {
	testCases := []struct {
		name       string
		attributes map[string]string
		contains   []string
		errorAttr  string
	}{
		{
			name:       "text button",
			attributes: map[string]string{"text": "Save", "id": "save"},
			contains:   []string{`<button type="button" id="save" class="icon-button">`, "<span>Save</span>"},
		},
		{
			name:       "icon only link in new tab",
			attributes: map[string]string{"icon": "open", "href": "https://example.com", "new-tab": "true", "ghost": "true"},
			contains:   []string{`class="icon-button circle ghost"`, `aria-label="open"`, `href="https://example.com"`, `target="_blank"`},
		},
		{
			name:       "unsafe href is sanitized",
			attributes: map[string]string{"text": "x", "href": "javascript:alert(1)"},
			contains:   []string{`href="about:invalid#TemplFailedSanitizationURL"`},
		},
		{
			name:       "neither text nor icon",
			attributes: map[string]string{"href": "/"},
			errorAttr:  "text",
		},
		{
			name:       "new tab without href",
			attributes: map[string]string{"text": "x", "new-tab": "true"},
			errorAttr:  "new-tab",
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			html, err := render(t, "htmplate:icon-button", tt.attributes)
			if tt.errorAttr != "" {
				var renderErr *htmperrors.RenderError
				require.True(t, errors.As(err, &renderErr))
				assert.Equal(t, tt.errorAttr, renderErr.Attribute)
				return
			}
			require.NoError(t, err)
			for _, fragment := range tt.contains {
				assert.Contains(t, html, fragment)
			}
		})
	}
}

func TestFormTextInput(t *testing.T) {
	html, err := render(t, "htmplate:form-text-input", map[string]string{
		"id":         "/username",
		"form":       "/login",
		"label":      "Username",
		"required":   "true",
		"credential": "true",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(html, `<div class="input text">`))
	assert.Contains(t, html, `<label id="/login/username/label" for="/login/username/input">Username`)
	assert.Contains(t, html, `id="/login/username/input" name="username" type="text"`)
	assert.Contains(t, html, `aria-describedby="/login/username/error" required minlength="4" maxlength="64"`)
	assert.Contains(t, html, `<small class="error" aria-live="polite" id="/login/username/error"></small>`)
}

func TestFormCheckInputAndFriends(t *testing.T) {
	html, err := render(t, "htmplate:form-check-input", map[string]string{"id": "/remember", "form": "/login", "label": "Remember me"})
	require.NoError(t, err)
	assert.Contains(t, html, `type="checkbox"`)
	assert.NotContains(t, html, "required")

	html, err = render(t, "htmplate:form-alert", map[string]string{"form": "/login"})
	require.NoError(t, err)
	assert.Contains(t, html, `id="/login/alert"`)

	html, err = render(t, "htmplate:form-submit", map[string]string{"form": "/login"})
	require.NoError(t, err)
	assert.Contains(t, html, `id="/login/submit"`)
}

func TestDecodeFormID(t *testing.T) {
	_, err := DecodeFormID("login")
	assert.Error(t, err)

	id, err := DecodeFormID("/")
	require.NoError(t, err)
	assert.Equal(t, "/alert", id.Element("/alert"))
}

func TestDecodeIcon(t *testing.T) {
	icon, err := DecodeIcon("  Logo-GitHub ")
	require.NoError(t, err)
	assert.Equal(t, IconLogoGithub, icon)

	_, err = DecodeIcon("unicorn")
	assert.Error(t, err)

	names := IconNames()
	assert.IsIncreasing(t, names)
	assert.Contains(t, names, "information-circle")
}
