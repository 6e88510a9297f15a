package errors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/conneroisu/htmplate/internal/location"
	"github.com/conneroisu/htmplate/internal/types"
)

// ErrorType represents the layer an error originated in.
type ErrorType string

const (
	ErrorTypeBinding          ErrorType = "binding"
	ErrorTypeRender           ErrorType = "render"
	ErrorTypeUnknownComponent ErrorType = "unknown_component"
	ErrorTypeEngine           ErrorType = "engine"
	ErrorTypeSubprocess       ErrorType = "subprocess"
	ErrorTypeFilesystem       ErrorType = "filesystem"
	ErrorTypeConfig           ErrorType = "config"
	ErrorTypeInternal         ErrorType = "internal"
)

// Common error codes.
const (
	ErrCodeInvalidAttributes = "ERR_INVALID_ATTRIBUTES"
	ErrCodeRenderFailed      = "ERR_RENDER_FAILED"
	ErrCodeUnknownComponent  = "ERR_UNKNOWN_COMPONENT"
	ErrCodeRewriteFailed     = "ERR_REWRITE_FAILED"
	ErrCodeToolMissing       = "ERR_TOOL_MISSING"
	ErrCodeToolFailed        = "ERR_TOOL_FAILED"
	ErrCodeFileNotFound      = "ERR_FILE_NOT_FOUND"
	ErrCodeNotAFile          = "ERR_NOT_A_FILE"
	ErrCodeReadFailed        = "ERR_READ_FAILED"
	ErrCodeWriteFailed       = "ERR_WRITE_FAILED"
	ErrCodeWatchFailed       = "ERR_WATCH_FAILED"
	ErrCodeUnsafeDirectory   = "ERR_UNSAFE_DIRECTORY"
	ErrCodeConfigInvalid     = "ERR_CONFIG_INVALID"
	ErrCodeInternalError     = "ERR_INTERNAL"
)

// Summarizer is implemented by errors that can describe themselves without
// repeating the text of their cause.
type Summarizer interface {
	Summary() string
}

// Detailer is implemented by errors that carry indented detail lines.
type Detailer interface {
	Details() []string
}

// Resolver is implemented by errors that point into a source document.
type Resolver interface {
	ResolveAt(src []byte, path string)
}

// HtmplateError is a structured error type with context, used for the
// filesystem, configuration and internal layers.
type HtmplateError struct {
	Type        ErrorType
	Code        string
	Message     string
	Cause       error
	Context     map[string]interface{}
	FilePath    string
	Recoverable bool
}

// Error implements the error interface.
func (e *HtmplateError) Error() string {
	result := e.Summary()
	if e.Cause != nil {
		result += ": " + e.Cause.Error()
	}
	return result
}

// Summary returns the message without the cause chain.
func (e *HtmplateError) Summary() string {
	var parts []string
	if e.Code != "" {
		parts = append(parts, fmt.Sprintf("[%s]", e.Code))
	}
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	parts = append(parts, e.Message)
	return strings.Join(parts, " ")
}

// Unwrap returns the underlying cause error.
func (e *HtmplateError) Unwrap() error {
	return e.Cause
}

// Is implements error comparison.
func (e *HtmplateError) Is(target error) bool {
	var t *HtmplateError
	if errors.As(target, &t) {
		return e.Type == t.Type && e.Code == t.Code
	}
	return false
}

// WithContext adds context information to the error.
func (e *HtmplateError) WithContext(key string, value interface{}) *HtmplateError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// WithPath adds file path information.
func (e *HtmplateError) WithPath(path string) *HtmplateError {
	e.FilePath = path
	return e
}

// NewFilesystemError creates a filesystem error.
func NewFilesystemError(code, message string, cause error) *HtmplateError {
	return &HtmplateError{
		Type:    ErrorTypeFilesystem,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewConfigError creates a configuration error.
func NewConfigError(code, message string) *HtmplateError {
	return &HtmplateError{
		Type:    ErrorTypeConfig,
		Code:    code,
		Message: message,
	}
}

// NewInternalError creates an internal error.
func NewInternalError(code, message string, cause error) *HtmplateError {
	return &HtmplateError{
		Type:    ErrorTypeInternal,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// BindingError reports every attribute problem found on one element.
type BindingError struct {
	Tag      string
	Missing  []types.AttributeSpec
	Invalid  []types.AttributeSpec
	Location types.Location
}

// Error implements the error interface.
func (e *BindingError) Error() string {
	return strings.Join(append([]string{e.Summary()}, e.Details()...), "; ")
}

// Summary names the element and where it is.
func (e *BindingError) Summary() string {
	return fmt.Sprintf("invalid `%s` at %s", e.Tag, e.Location)
}

// Details lists each missing and invalid attribute.
func (e *BindingError) Details() []string {
	lines := make([]string, 0, len(e.Missing)+len(e.Invalid))
	for _, attribute := range e.Missing {
		lines = append(lines, fmt.Sprintf("missing required attribute `%s`, %s", attribute.Name, attribute.Description))
	}
	for _, attribute := range e.Invalid {
		lines = append(lines, fmt.Sprintf("invalid attribute `%s`, %s", attribute.Name, attribute.Description))
	}
	return lines
}

// MissingNames returns the names of the missing attributes.
func (e *BindingError) MissingNames() []string {
	return attributeNames(e.Missing)
}

// InvalidNames returns the names of the invalid attributes.
func (e *BindingError) InvalidNames() []string {
	return attributeNames(e.Invalid)
}

// ResolveAt resolves the error location against the rewritten source.
func (e *BindingError) ResolveAt(src []byte, path string) {
	e.Location = location.ResolveLocation(e.Location, src, path)
}

func attributeNames(attributes []types.AttributeSpec) []string {
	names := make([]string, len(attributes))
	for i, attribute := range attributes {
		names[i] = attribute.Name
	}
	return names
}

// RenderError is a semantic failure of a component whose attributes were
// individually valid.
type RenderError struct {
	Tag       string
	Attribute string
	Message   string
	Location  types.Location
}

// NewRenderError creates a render error for an attribute of the component.
func NewRenderError(attribute, message string) *RenderError {
	return &RenderError{Attribute: attribute, Message: message}
}

// Error implements the error interface.
func (e *RenderError) Error() string {
	return e.Summary() + ": " + e.Details()[0]
}

// Summary names the element and where it is.
func (e *RenderError) Summary() string {
	if e.Tag == "" {
		return "could not render component"
	}
	return fmt.Sprintf("could not template a `%s` at %s", e.Tag, e.Location)
}

// Details describes the offending attribute.
func (e *RenderError) Details() []string {
	if e.Attribute == "" {
		return []string{e.Message}
	}
	return []string{fmt.Sprintf("invalid attribute `%s`, %s", e.Attribute, e.Message)}
}

// ResolveAt resolves the error location against the rewritten source.
func (e *RenderError) ResolveAt(src []byte, path string) {
	e.Location = location.ResolveLocation(e.Location, src, path)
}

// UnknownComponentError is raised for namespaced tags that are not registered.
type UnknownComponentError struct {
	Tag      string
	Location types.Location
}

// Error implements the error interface.
func (e *UnknownComponentError) Error() string {
	return e.Summary()
}

// Summary names the element and where it is.
func (e *UnknownComponentError) Summary() string {
	return fmt.Sprintf("`%s` at %s is not a known component", e.Tag, e.Location)
}

// ResolveAt resolves the error location against the rewritten source.
func (e *UnknownComponentError) ResolveAt(src []byte, path string) {
	e.Location = location.ResolveLocation(e.Location, src, path)
}

// EngineError wraps failures of the rewrite mechanism itself.
type EngineError struct {
	Cause error
}

// Error implements the error interface.
func (e *EngineError) Error() string {
	return e.Summary() + ": " + e.Cause.Error()
}

// Summary implements Summarizer.
func (e *EngineError) Summary() string {
	return "could not rewrite the document"
}

// Unwrap returns the underlying cause error.
func (e *EngineError) Unwrap() error {
	return e.Cause
}

// SubprocessError reports a failed external tool.
type SubprocessError struct {
	Tool    string
	Missing bool
	Status  int
	Stderr  string
	Cause   error
}

// NewToolMissingError creates the error used when a tool is not on PATH.
func NewToolMissingError(tool string, cause error) *SubprocessError {
	return &SubprocessError{Tool: tool, Missing: true, Cause: cause}
}

// Error implements the error interface.
func (e *SubprocessError) Error() string {
	result := strings.Join(append([]string{e.Summary()}, e.Details()...), ": ")
	if e.Cause != nil && !e.Missing {
		result += ": " + e.Cause.Error()
	}
	return result
}

// Summary implements Summarizer.
func (e *SubprocessError) Summary() string {
	switch {
	case e.Missing:
		return fmt.Sprintf("the system does not have `%s`", e.Tool)
	case e.Cause != nil && e.Status == 0:
		return fmt.Sprintf("could not run `%s`", e.Tool)
	default:
		return fmt.Sprintf("`%s` exited with code %d", e.Tool, e.Status)
	}
}

// Details returns the non-empty lines of the tool's stderr.
func (e *SubprocessError) Details() []string {
	var lines []string
	for _, line := range strings.Split(e.Stderr, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// Unwrap returns the underlying cause error.
func (e *SubprocessError) Unwrap() error {
	if e.Missing {
		return nil
	}
	return e.Cause
}

// IsDocumentError reports whether err aborted a document's rewrite because
// of the document content (binding, render or unknown component).
func IsDocumentError(err error) bool {
	var binding *BindingError
	var render *RenderError
	var unknown *UnknownComponentError
	return errors.As(err, &binding) || errors.As(err, &render) || errors.As(err, &unknown)
}

// IsToolMissing reports whether err was caused by an external tool missing
// from PATH.
func IsToolMissing(err error) bool {
	var subprocess *SubprocessError
	if errors.As(err, &subprocess) {
		return subprocess.Missing
	}
	return false
}

// ResolveIn resolves the location of the first located error in err's chain.
func ResolveIn(err error, src []byte, path string) {
	var resolver Resolver
	if errors.As(err, &resolver) {
		resolver.ResolveAt(src, path)
	}
}

// AsRenderError returns the first RenderError in err's chain.
func AsRenderError(err error) (*RenderError, bool) {
	var render *RenderError
	if errors.As(err, &render) {
		return render, true
	}
	return nil, false
}
