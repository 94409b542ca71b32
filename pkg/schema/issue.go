package schema

import "fmt"

// Machine-checkable issue codes. UIs can key remediation hints off
// these instead of parsing messages.
const (
	CodeRequired       = "required"
	CodeInvalidType    = "invalid_type"
	CodeInvalidLiteral = "invalid_literal"
	CodeInvalidEnum    = "invalid_enum"
	CodeInvalidString  = "invalid_string"
	CodeTooSmall       = "too_small"
	CodeTooBig         = "too_big"
	CodeInvalidUnion   = "invalid_union_discriminator"
)

// Issue is one field-level validation failure. Path is dot-joined from
// the document root ("steps.3.content"); an empty path refers to the
// root value itself.
type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

func (i Issue) String() string {
	if i.Path == "" {
		return fmt.Sprintf("%s (%s)", i.Message, i.Code)
	}
	return fmt.Sprintf("%s: %s (%s)", i.Path, i.Message, i.Code)
}

// Warning is an advisory finding on a structurally valid document. It
// never blocks validation.
type Warning struct {
	Path       string `json:"path"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// ValidationResult is the non-throwing contract of Validate: failures
// are values, collected exhaustively rather than fail-fast.
type ValidationResult struct {
	Valid    bool      `json:"valid"`
	Errors   []Issue   `json:"errors,omitempty"`
	Warnings []Warning `json:"warnings,omitempty"`
}

// SyntaxError reports input that is not well-formed JSON. It is a
// distinct failure kind from SchemaError so callers can tell malformed
// text apart from a well-formed but invalid document.
type SyntaxError struct {
	Err error
}

func (e *SyntaxError) Error() string {
	return "buildlog: malformed JSON: " + e.Err.Error()
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// SchemaError reports a well-formed document that failed schema
// validation. It carries the same issue list Validate would return.
type SchemaError struct {
	Issues []Issue
}

func (e *SchemaError) Error() string {
	if len(e.Issues) == 0 {
		return "buildlog: document failed validation"
	}
	return fmt.Sprintf("buildlog: document failed validation with %d issue(s), first: %s",
		len(e.Issues), e.Issues[0])
}
