package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/htmplate/internal/types"
)

func TestHtmplateError(t *testing.T) {
	tests := []struct {
		name     string
		err      *HtmplateError
		expected string
	}{
		{
			name:     "basic error",
			err:      NewConfigError("TEST_ERROR", "test message"),
			expected: "[TEST_ERROR] test message",
		},
		{
			name:     "error with path",
			err:      NewConfigError("TEST_ERROR", "test message").WithPath("a.html"),
			expected: "[TEST_ERROR] a.html test message",
		},
		{
			name:     "error with cause",
			err:      NewFilesystemError("TEST_ERROR", "test message", errors.New("underlying error")),
			expected: "[TEST_ERROR] test message: underlying error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestHtmplateErrorIs(t *testing.T) {
	err := WrapFilesystem(errors.New("boom"), ErrCodeReadFailed, "could not read source file", "a.html")
	wrapped := fmt.Errorf("templating: %w", err)

	assert.True(t, errors.Is(wrapped, &HtmplateError{Type: ErrorTypeFilesystem, Code: ErrCodeReadFailed}))
	assert.False(t, errors.Is(wrapped, &HtmplateError{Type: ErrorTypeConfig, Code: ErrCodeReadFailed}))
	assert.Nil(t, Wrap(nil, ErrorTypeInternal, ErrCodeInternalError, "nothing"))
}

func TestBindingErrorListsEveryAttribute(t *testing.T) {
	err := &BindingError{
		Tag: "htmplate:alert",
		Missing: []types.AttributeSpec{
			{Name: "status", Description: "one of [error, warning, success, info, basic]", Required: true},
		},
		Invalid: []types.AttributeSpec{
			{Name: "hidden", Description: "\"true\" if the alert starts collapsed"},
		},
		Location: types.OffsetLocation(4),
	}

	err.ResolveAt([]byte("ab\ncd"), "page.template.html")

	assert.Equal(t, []string{"status"}, err.MissingNames())
	assert.Equal(t, []string{"hidden"}, err.InvalidNames())
	assert.Equal(t, "invalid `htmplate:alert` at page.template.html:2:2", err.Summary())
	require.Len(t, err.Details(), 2)
	assert.Contains(t, err.Details()[0], "missing required attribute `status`")
	assert.Contains(t, err.Details()[1], "invalid attribute `hidden`")
	assert.True(t, IsDocumentError(err))
}

func TestResolveInFindsWrappedError(t *testing.T) {
	unknown := &UnknownComponentError{Tag: "htmplate:nope", Location: types.OffsetLocation(3)}
	wrapped := fmt.Errorf("rewrite: %w", unknown)

	ResolveIn(wrapped, []byte("ab\ncd"), "x.html")

	assert.True(t, unknown.Location.Resolved())
	assert.Equal(t, "`htmplate:nope` at x.html:2:1 is not a known component", unknown.Error())
}

func TestSubprocessError(t *testing.T) {
	missing := NewToolMissingError("deno", errors.New("exec: \"deno\": executable file not found in $PATH"))
	assert.True(t, IsToolMissing(missing))
	assert.Equal(t, "the system does not have `deno`", missing.Error())
	assert.Nil(t, missing.Unwrap())

	failed := &SubprocessError{Tool: "deno", Status: 1, Stderr: "error: bad html\n\n"}
	assert.False(t, IsToolMissing(failed))
	assert.Equal(t, []string{"error: bad html"}, failed.Details())
	assert.Equal(t, "`deno` exited with code 1: error: bad html", failed.Error())
}

func TestFormatStack(t *testing.T) {
	binding := &BindingError{
		Tag:      "htmplate:hr",
		Missing:  []types.AttributeSpec{{Name: "text", Description: "the divider text", Required: true}},
		Location: types.FilePosition(0, "a.html", 1, 1),
	}
	err := WrapFilesystem(binding, ErrCodeWriteFailed, "failed templating source file", "a.html")

	stack := FormatStack(err, 2)
	lines := strings.Split(strings.TrimRight(stack, "\n"), "\n")

	require.Len(t, lines, 3)
	assert.Equal(t, "[ERR_WRITE_FAILED] a.html failed templating source file", lines[0])
	assert.Equal(t, "  invalid `htmplate:hr` at a.html:1:1", lines[1])
	assert.Equal(t, "    missing required attribute `text`, the divider text", lines[2])
}

func TestFormatStackStopsAtPlainErrors(t *testing.T) {
	inner := fmt.Errorf("outer: %w", errors.New("inner"))
	err := NewInternalError(ErrCodeInternalError, "failed", inner)

	stack := FormatStack(err, 2)
	assert.Equal(t, "[ERR_INTERNAL] failed\n  outer: inner\n", stack)
	assert.Empty(t, FormatStack(nil, 2))
	assert.Equal(t, "outer: inner", FormatError(inner))
}
