package expr

import "fmt"

// ParseError reports malformed expression source.
type ParseError struct {
	Expression string
	Position   int
	Message    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %q at position %d: %s", e.Expression, e.Position, e.Message)
}

func newParseError(src string, pos int, format string, args ...any) error {
	return &ParseError{Expression: src, Position: pos, Message: fmt.Sprintf(format, args...)}
}

// EvaluationError reports an expression that parsed but could not be
// evaluated against its context.
type EvaluationError struct {
	Expression string
	Cause      error
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("evaluation error for expression %q: %v", e.Expression, e.Cause)
}

func (e *EvaluationError) Unwrap() error {
	return e.Cause
}
