package parser

import "fmt"

// The loader's failures are deliberately distinguishable: a missing file, a
// document that is not JSON at all, and JSON that is not a conversation log
// call for different operator responses, so each gets its own type and the
// CLI dispatches on them with errors.As.

// NotFoundError indicates the input path does not resolve to a readable
// file.
type NotFoundError struct {
	Path string
	Err  error
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("conversation log %s not found", e.Path)
}

// Unwrap returns the underlying filesystem error
func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// ParseError indicates the input is not well-formed JSON.
type ParseError struct {
	Message    string `json:"message"`
	Offset     int64  `json:"offset,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.Offset > 0 {
		return fmt.Sprintf("parse error at byte %d: %s", e.Offset, e.Message)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

// SchemaError indicates well-formed JSON whose shape is not a conversation
// log: a missing required top-level key or a top-level value of the wrong
// kind.
type SchemaError struct {
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// Error implements the error interface
func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema error: %s", e.Message)
}
