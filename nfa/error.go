// Package nfa provides a Thompson NFA (Non-deterministic Finite Automaton)
// built from postfix programs, and a Pike VM that simulates it.
//
// Construction follows Thompson's fragment technique: every operator of the
// postfix program combines one or two fragments into a new one, and edges
// whose targets do not exist yet are recorded in patch lists and resolved
// later. Simulation tracks every live state in parallel, so matching runs in
// O(states * len(haystack)) time with no backtracking.
package nfa

import (
	"errors"
	"fmt"
)

// Common NFA errors
var (
	// ErrInvalidState indicates an edge refers to a state outside the NFA
	ErrInvalidState = errors.New("invalid NFA state")

	// ErrArity indicates the postfix program does not reduce to exactly one
	// fragment (an operator without enough operands, or leftover operands)
	ErrArity = errors.New("postfix program arity mismatch")
)

// CompileError wraps compilation errors with additional context
type CompileError struct {
	Pattern string
	Err     error
}

// Error implements the error interface
func (e *CompileError) Error() string {
	if e.Pattern != "" {
		return fmt.Sprintf("NFA compilation failed for pattern %q: %v", e.Pattern, e.Err)
	}
	return fmt.Sprintf("NFA compilation failed: %v", e.Err)
}

// Unwrap returns the underlying error
func (e *CompileError) Unwrap() error {
	return e.Err
}

// BuildError represents an error during Thompson construction
type BuildError struct {
	Message string
	// Offset is the position in the postfix program where construction
	// failed, or -1 when the failure was detected after the last token.
	Offset  int
	StateID StateID
	Err     error
}

// Error implements the error interface
func (e *BuildError) Error() string {
	switch {
	case e.StateID != InvalidState:
		return fmt.Sprintf("NFA build error at state %d: %s", e.StateID, e.Message)
	case e.Offset >= 0:
		return fmt.Sprintf("NFA build error at token %d: %s", e.Offset, e.Message)
	default:
		return fmt.Sprintf("NFA build error: %s", e.Message)
	}
}

// Unwrap returns the error kind
func (e *BuildError) Unwrap() error {
	return e.Err
}
