package markup

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds carried by TemplateError.Kind. Use errors.Is to test them.
var (
	ErrConfiguration        = errors.New("configuration error")
	ErrMalformedDirective   = errors.New("malformed directive")
	ErrExpressionEvaluation = errors.New("expression evaluation error")
)

// TemplateError is returned by New and Render. It names the markup that
// failed and, when known, the source line and expression involved.
type TemplateError struct {
	Kind       error  // One of the Err* kinds above
	Markup     string // Opening tag of the offending element
	Line       int    // Estimated 1-based source line; 0 when unknown
	Expression string // Expression text for evaluation failures
	Err        error  // Underlying cause
}

func (e *TemplateError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.Line > 0 {
		fmt.Fprintf(&b, " at line %d", e.Line)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	if e.Markup != "" {
		b.WriteString(" in ")
		b.WriteString(e.Markup)
	}
	return b.String()
}

// Unwrap exposes both the kind and the cause, so errors.Is works with the
// kind sentinels and errors.As reaches expression errors.
func (e *TemplateError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func malformed(markup, format string, args ...any) error {
	return &TemplateError{
		Kind:   ErrMalformedDirective,
		Markup: markup,
		Err:    fmt.Errorf(format, args...),
	}
}

func evaluationFailed(markup, expression string, err error) error {
	return &TemplateError{
		Kind:       ErrExpressionEvaluation,
		Markup:     markup,
		Expression: expression,
		Err:        err,
	}
}
