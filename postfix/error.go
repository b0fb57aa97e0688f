package postfix

import (
	"errors"
	"fmt"
)

// ErrSyntax is matched by every error returned from Convert.
var ErrSyntax = errors.New("regex syntax error")

// Syntax error kinds. Each wraps ErrSyntax.
var (
	ErrEmptyPattern        = fmt.Errorf("%w: empty pattern", ErrSyntax)
	ErrPatternTooLong      = fmt.Errorf("%w: pattern too long", ErrSyntax)
	ErrNestingTooDeep      = fmt.Errorf("%w: groups nested too deeply", ErrSyntax)
	ErrUnbalancedParen     = fmt.Errorf("%w: unmatched ')'", ErrSyntax)
	ErrUnclosedGroup       = fmt.Errorf("%w: missing ')'", ErrSyntax)
	ErrMissingOperand      = fmt.Errorf("%w: missing operand", ErrSyntax)
	ErrDotLiteral          = fmt.Errorf("%w: '.' is not a valid literal", ErrSyntax)
	ErrTrailingAlternation = fmt.Errorf("%w: pattern ends with '|'", ErrSyntax)
)

// SyntaxError reports where a pattern was rejected.
type SyntaxError struct {
	Pattern string
	// Offset is the byte offset of the offending byte, or len(Pattern) when
	// the problem is only detected at the end of input.
	Offset int
	Kind   error
}

// Error implements the error interface
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%v at offset %d in %q", e.Kind, e.Offset, e.Pattern)
}

// Unwrap returns the error kind
func (e *SyntaxError) Unwrap() error {
	return e.Kind
}
