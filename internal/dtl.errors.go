package internal

import "fmt"

// SyntaxError is a compile-time grammar violation. Contents holds the raw
// tag or variable text that failed to compile.
type SyntaxError struct {
	Message  string
	Contents string
	Position Position
}

// NewSyntaxError creates a new syntax error
func NewSyntaxError(message, contents string, pos Position) *SyntaxError {
	return &SyntaxError{
		Message:  message,
		Contents: contents,
		Position: pos,
	}
}

// Error implements the error interface
func (e *SyntaxError) Error() string {
	if e.Contents != StringValueEmpty {
		return fmt.Sprintf(ErrFmtSyntax, e.Message, e.Contents, e.Position.String())
	}
	return fmt.Sprintf(ErrFmtWithPosition, e.Message, e.Position.String())
}

// RenderError is a failure while evaluating a node tree
type RenderError struct {
	Message  string
	Node     string
	Position Position
	Cause    error
}

// NewRenderError creates a new render error
func NewRenderError(message, node string, pos Position) *RenderError {
	return &RenderError{
		Message:  message,
		Node:     node,
		Position: pos,
	}
}

// NewRenderErrorWithCause creates a new render error with a cause
func NewRenderErrorWithCause(message, node string, pos Position, cause error) *RenderError {
	return &RenderError{
		Message:  message,
		Node:     node,
		Position: pos,
		Cause:    cause,
	}
}

// Error implements the error interface
func (e *RenderError) Error() string {
	var result string
	if e.Node != StringValueEmpty {
		result = fmt.Sprintf(ErrFmtWithNodeAndPosition, e.Message, e.Node, e.Position.String())
	} else {
		result = fmt.Sprintf(ErrFmtWithPosition, e.Message, e.Position.String())
	}
	if e.Cause != nil {
		result = fmt.Sprintf(ErrFmtWithCause, result, e.Cause)
	}
	return result
}

// Unwrap returns the underlying cause error
func (e *RenderError) Unwrap() error {
	return e.Cause
}
