package policyfile

import "fmt"

// Location is the source position of a YAML node in a policy file.
type Location struct {
	File   string
	Line   int
	Column int
}

// String returns "file:line:column".
func (l Location) String() string {
	if l.File == "" {
		return "<unknown>"
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// IsValid reports whether the location carries usable position information.
func (l Location) IsValid() bool {
	return l.File != "" && l.Line > 0
}

// ErrorType classifies policy-file errors.
type ErrorType string

const (
	// ErrorTypeIO covers file access failures.
	ErrorTypeIO ErrorType = "io"

	// ErrorTypeSyntax covers malformed YAML.
	ErrorTypeSyntax ErrorType = "syntax"

	// ErrorTypeStructural covers schema violations (missing required fields,
	// wrong node shapes).
	ErrorTypeStructural ErrorType = "structural"

	// ErrorTypeValidation covers well-formed files whose content is invalid
	// (unknown operators, wrong operand shapes, empty paths).
	ErrorTypeValidation ErrorType = "validation"
)

// Error is a policy-file error with source location.
type Error struct {
	Type     ErrorType
	Location Location
	Message  string
	Cause    error
}

// Error returns the error message.
func (e *Error) Error() string {
	msg := e.Message
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	if e.Location.IsValid() {
		return fmt.Sprintf("%s: %s error: %s", e.Location, e.Type, msg)
	}
	if e.Location.File != "" {
		return fmt.Sprintf("%s: %s error: %s", e.Location.File, e.Type, msg)
	}
	return fmt.Sprintf("%s error: %s", e.Type, msg)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

func newError(t ErrorType, loc Location, format string, args ...interface{}) *Error {
	return &Error{
		Type:     t,
		Location: loc,
		Message:  fmt.Sprintf(format, args...),
	}
}
