package errors

import (
	"errors"
	"strings"
)

// Wrap wraps an error with additional context, creating an HtmplateError if
// the input is not already one.
func Wrap(err error, errType ErrorType, code, message string) *HtmplateError {
	if err == nil {
		return nil
	}

	var he *HtmplateError
	if errors.As(err, &he) {
		return &HtmplateError{
			Type:        errType,
			Code:        code,
			Message:     message,
			Cause:       err,
			Context:     he.Context,
			FilePath:    he.FilePath,
			Recoverable: he.Recoverable,
		}
	}

	return &HtmplateError{
		Type:        errType,
		Code:        code,
		Message:     message,
		Cause:       err,
		Recoverable: errType == ErrorTypeSubprocess,
	}
}

// WrapFilesystem wraps an error as a filesystem error for a path.
func WrapFilesystem(err error, code, message, path string) *HtmplateError {
	fsErr := Wrap(err, ErrorTypeFilesystem, code, message)
	if fsErr != nil {
		fsErr.FilePath = path
	}
	return fsErr
}

// WrapConfig wraps an error as a configuration error.
func WrapConfig(err error, code, message string) *HtmplateError {
	return Wrap(err, ErrorTypeConfig, code, message)
}

// WrapInternal wraps an error as an internal error.
func WrapInternal(err error, code, message string) *HtmplateError {
	return Wrap(err, ErrorTypeInternal, code, message)
}

// FormatError formats an error for a single line of user output.
func FormatError(err error) string {
	if err == nil {
		return ""
	}
	return summary(err)
}

// FormatStack renders err as a one line summary followed by its detail lines
// and cause chain, each level indented by indent more spaces.
func FormatStack(err error, indent int) string {
	if err == nil {
		return ""
	}

	var b strings.Builder
	depth := 0
	for current := err; current != nil; current = errors.Unwrap(current) {
		pad := strings.Repeat(" ", depth*indent)
		b.WriteString(pad)
		b.WriteString(summary(current))
		b.WriteByte('\n')

		if detailer, ok := current.(Detailer); ok {
			detailPad := strings.Repeat(" ", (depth+1)*indent)
			for _, line := range detailer.Details() {
				b.WriteString(detailPad)
				b.WriteString(line)
				b.WriteByte('\n')
			}
		}

		// Errors that do not summarize themselves already print their cause.
		if _, ok := current.(Summarizer); !ok {
			break
		}
		depth++
	}

	return b.String()
}

func summary(err error) string {
	if s, ok := err.(Summarizer); ok {
		return s.Summary()
	}
	return err.Error()
}
